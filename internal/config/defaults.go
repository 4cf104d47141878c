package config

import (
	_ "embed"
)

//go:embed defaults/bubbles.yaml
var defaultBubblesYAML []byte

// DefaultBubblesConfig returns the default Bubbles configuration.
func DefaultBubblesConfig() BubblesConfig {
	return BubblesConfig{
		Board: BubblesBoard{
			Rows:        13,
			Cols:        8,
			InitialRows: 5,
		},
		Geometry: BubblesGeometry{
			Radius:     16,
			TopMargin:  32,
			SideMargin: 16,
		},
		Shooter: BubblesShooter{
			Speed:       720,
			MinAngleDeg: 8,
			AimStepDeg:  3,
		},
		Rules: BubblesRules{
			ClearThreshold: 3,
			DropInterval:   8,
			PointsPerPiece: 10,
		},
		Timing: BubblesTiming{
			MaxStep: 1.0 / 30,
		},
		Audio: BubblesAudio{
			Volume: 0.5,
		},
		Pieces: []PieceConfig{
			{ID: "red", Color: "#e74c3c"},
			{ID: "green", Color: "#2ecc71"},
			{ID: "blue", Color: "#3498db"},
			{ID: "yellow", Color: "#f1c40f"},
			{ID: "purple", Color: "#9b59b6"},
			{ID: "star", Color: "#ecf0f1", Weight: 4, Bonus: true},
		},
	}
}
