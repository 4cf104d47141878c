// Package catalog loads piece-type catalogs for the Bubbles game from
// YAML or JSON files and the game config.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/bubble-arcade/internal/config"
	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles/core"
)

// file is the on-disk catalog shape. "avatars" is accepted as an alias of "pieces".
type file struct {
	Pieces  []config.PieceConfig `yaml:"pieces"`
	Avatars []config.PieceConfig `yaml:"avatars"`
}

// Parse decodes a catalog document. JSON documents are valid YAML and
// parse the same way. A bare list of pieces is also accepted.
func Parse(data []byte) ([]config.PieceConfig, error) {
	var list []config.PieceConfig
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	if len(f.Pieces) > 0 {
		return f.Pieces, nil
	}
	return f.Avatars, nil
}

// LoadFile reads and parses a catalog file.
func LoadFile(path string) ([]config.PieceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	pieces, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return pieces, nil
}

// NormalizeColor converts "#rgb", "#rrggbb" or an ANSI color number to the
// canonical form used by renderers. Invalid colors are returned unchanged
// so the core normalizer can reject them.
func NormalizeColor(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return s
	}
	return c.Hex()
}

// ToPieceTypes converts config entries to core piece types.
func ToPieceTypes(pieces []config.PieceConfig) []core.PieceType {
	out := make([]core.PieceType, 0, len(pieces))
	for _, p := range pieces {
		out = append(out, core.PieceType{
			ID:     core.TypeID(p.ID),
			Color:  NormalizeColor(p.Color),
			Weight: p.Weight,
			Bonus:  p.Bonus,
		})
	}
	return out
}

// Build returns a usable catalog and the issues found while normalizing it.
// A non-empty path takes precedence over the pieces from the game config.
// A file that cannot be read falls back to the config pieces.
func Build(path string, fromConfig []config.PieceConfig) (core.Catalog, []core.CatalogIssue, error) {
	pieces := fromConfig
	var loadErr error
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			loadErr = err
		} else {
			pieces = loaded
		}
	}
	cat, issues := core.NormalizeCatalog(ToPieceTypes(pieces))
	return cat, issues, loadErr
}

// Load is Build with every problem logged as a warning. It never fails.
func Load(logger *log.Logger, path string, fromConfig []config.PieceConfig) core.Catalog {
	cat, issues, err := Build(path, fromConfig)
	if err != nil {
		logger.Warn("catalog file unusable, using config pieces", "err", err)
	}
	for _, issue := range issues {
		logger.Warn("catalog entry skipped", "issue", issue.String())
	}
	logger.Debug("catalog loaded", "types", len(cat))
	return cat
}
