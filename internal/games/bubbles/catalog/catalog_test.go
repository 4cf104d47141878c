package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/bubble-arcade/internal/config"
	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles/core"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"yaml pieces", "pieces:\n  - id: a\n    color: \"#fff\"\n  - id: b\n    color: \"#000000\"\n"},
		{"json avatars", `{"avatars": [{"id": "a", "file": "a.png", "color": "#fff"}, {"id": "b", "color": "#000000"}]}`},
		{"bare list", "- id: a\n  color: \"#fff\"\n- id: b\n  color: \"#000000\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pieces, err := Parse([]byte(tt.data))
			require.NoError(t, err)
			require.Len(t, pieces, 2)
			assert.Equal(t, "a", pieces[0].ID)
			assert.Equal(t, "#000000", pieces[1].Color)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("pieces: [ {id: a"))
	assert.Error(t, err)
}

func TestNormalizeColor(t *testing.T) {
	assert.Equal(t, "#ffffff", NormalizeColor("#FFF"))
	assert.Equal(t, "#12ab34", NormalizeColor(" #12AB34 "))
	assert.Equal(t, "208", NormalizeColor("208"))
	assert.Equal(t, "#zz", NormalizeColor("#zz"))
}

func TestBuildPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avatars.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"avatars": [{"id": "x", "color": "#123"}, {"id": "x", "color": "#456"}]}`), 0o644))

	cat, issues, err := Build(path, config.DefaultBubblesConfig().Pieces)
	require.NoError(t, err)
	assert.Equal(t, []core.TypeID{"x"}, cat.IDs())
	assert.Equal(t, "#112233", cat[0].Color)
	require.Len(t, issues, 1)
}

func TestBuildMissingFileFallsBackToConfig(t *testing.T) {
	cat, _, err := Build(filepath.Join(t.TempDir(), "nope.json"), config.DefaultBubblesConfig().Pieces)
	assert.Error(t, err)
	assert.Len(t, cat, len(config.DefaultBubblesConfig().Pieces))
	assert.True(t, cat.IsBonus("star"))
}

func TestLoadLogsAndFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	cat := Load(logger, "", []config.PieceConfig{{ID: "", Color: "#fff"}})
	require.Len(t, cat, 1)
	assert.Equal(t, core.FallbackTypeID, cat[0].ID)
	assert.Contains(t, buf.String(), "catalog entry skipped")
}
