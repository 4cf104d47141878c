package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Fallback piece used when a catalog has no usable entries.
const (
	FallbackTypeID TypeID = "dummy"
	FallbackColor         = "#888888"

	// DefaultBonusWeight is the draw weight of a bonus type with no explicit weight.
	DefaultBonusWeight = 4
)

// PieceType describes one piece variant in the catalog.
type PieceType struct {
	ID     TypeID
	Color  string // Display color, "#rrggbb" or an ANSI color number
	Weight int    // Draw weight; zero means 1 (or DefaultBonusWeight for bonus types)
	Bonus  bool   // Clearing this piece also removes its neighbors
}

// Catalog is an ordered, validated list of piece types.
type Catalog []PieceType

// CatalogIssue describes a catalog entry that was dropped or adjusted.
type CatalogIssue struct {
	Index  int
	ID     TypeID
	Reason string
}

func (i CatalogIssue) String() string {
	if i.ID == "" {
		return fmt.Sprintf("entry %d: %s", i.Index, i.Reason)
	}
	return fmt.Sprintf("entry %d (%s): %s", i.Index, i.ID, i.Reason)
}

var (
	hexColorPattern  = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	ansiColorPattern = regexp.MustCompile(`^[0-9]{1,3}$`)
)

// ValidColor reports whether s is a "#rgb"/"#rrggbb" hex color or an ANSI color number.
func ValidColor(s string) bool {
	if hexColorPattern.MatchString(s) {
		return true
	}
	if ansiColorPattern.MatchString(s) {
		n, err := strconv.Atoi(s)
		return err == nil && n <= 255
	}
	return false
}

// FallbackCatalog returns the single synthetic type used when nothing else is usable.
func FallbackCatalog() Catalog {
	return Catalog{{ID: FallbackTypeID, Color: FallbackColor, Weight: 1}}
}

// NormalizeCatalog validates raw entries and returns a usable catalog.
// Entries with an empty ID, an invalid color or a negative weight are dropped,
// and duplicate IDs keep the first occurrence. If nothing remains, the
// fallback catalog is returned. The result is never empty.
func NormalizeCatalog(raw []PieceType) (Catalog, []CatalogIssue) {
	var issues []CatalogIssue
	seen := make(map[TypeID]bool, len(raw))
	out := make(Catalog, 0, len(raw))

	for i, pt := range raw {
		pt.ID = TypeID(strings.TrimSpace(string(pt.ID)))
		pt.Color = strings.TrimSpace(pt.Color)

		switch {
		case pt.ID == "":
			issues = append(issues, CatalogIssue{Index: i, Reason: "missing id"})
			continue
		case seen[pt.ID]:
			issues = append(issues, CatalogIssue{Index: i, ID: pt.ID, Reason: "duplicate id, keeping first"})
			continue
		case !ValidColor(pt.Color):
			issues = append(issues, CatalogIssue{Index: i, ID: pt.ID, Reason: fmt.Sprintf("invalid color %q", pt.Color)})
			continue
		case pt.Weight < 0:
			issues = append(issues, CatalogIssue{Index: i, ID: pt.ID, Reason: fmt.Sprintf("negative weight %d", pt.Weight)})
			continue
		}

		if pt.Weight == 0 {
			pt.Weight = 1
			if pt.Bonus {
				pt.Weight = DefaultBonusWeight
			}
		}
		seen[pt.ID] = true
		out = append(out, pt)
	}

	if len(out) == 0 {
		issues = append(issues, CatalogIssue{Index: -1, ID: FallbackTypeID, Reason: "no usable piece types, using fallback"})
		return FallbackCatalog(), issues
	}
	return out, issues
}

// Lookup returns the piece type with the given ID.
func (c Catalog) Lookup(id TypeID) (PieceType, bool) {
	for _, pt := range c {
		if pt.ID == id {
			return pt, true
		}
	}
	return PieceType{}, false
}

// IsBonus reports whether id is a bonus type.
func (c Catalog) IsBonus(id TypeID) bool {
	pt, ok := c.Lookup(id)
	return ok && pt.Bonus
}

// IDs returns the type IDs in catalog order.
func (c Catalog) IDs() []TypeID {
	ids := make([]TypeID, len(c))
	for i, pt := range c {
		ids[i] = pt.ID
	}
	return ids
}

// DefaultCatalog returns the built-in set of piece types.
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: "red", Color: "#e74c3c", Weight: 1},
		{ID: "green", Color: "#2ecc71", Weight: 1},
		{ID: "blue", Color: "#3498db", Weight: 1},
		{ID: "yellow", Color: "#f1c40f", Weight: 1},
		{ID: "purple", Color: "#9b59b6", Weight: 1},
		{ID: "star", Color: "#ecf0f1", Weight: DefaultBonusWeight, Bonus: true},
	}
}
