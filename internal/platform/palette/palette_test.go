package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	c, err := Parse("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", c.Hex())

	short, err := Parse(" #0f0 ")
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", short.Hex())
}

func TestParseXterm(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "#800000"},
		{"15", "#ffffff"},
		{"16", "#000000"},
		{"196", "#ff0000"},
		{"21", "#0000ff"},
		{"232", "#080808"},
		{"255", "#eeeeee"},
	}
	for _, tt := range tests {
		c, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, c.Hex(), tt.in)
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"", "red", "256", "-1", "#12", "#zzzzzz"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestRGBAFallback(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}, RGBA("nope"))
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, RGBA("#f00"))
}

func TestHighlightIsLighter(t *testing.T) {
	base := RGBA("#204080")
	hi := Highlight("#204080", 0.5)
	assert.Greater(t, int(hi.R)+int(hi.G)+int(hi.B), int(base.R)+int(base.G)+int(base.B))
}
