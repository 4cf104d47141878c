// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade platform.
package config

// BubblesConfig contains all configuration for the Bubbles shooter.
type BubblesConfig struct {
	Board    BubblesBoard    `yaml:"board"`
	Geometry BubblesGeometry `yaml:"geometry"`
	Shooter  BubblesShooter  `yaml:"shooter"`
	Rules    BubblesRules    `yaml:"rules"`
	Timing   BubblesTiming   `yaml:"timing"`
	Audio    BubblesAudio    `yaml:"audio"`
	Pieces   []PieceConfig   `yaml:"pieces"`
}

// BubblesBoard defines the grid dimensions.
type BubblesBoard struct {
	Rows        int `yaml:"rows"`
	Cols        int `yaml:"cols"`
	InitialRows int `yaml:"initial_rows"` // Rows stocked at game start
}

// BubblesGeometry defines playfield sizes in pixels.
type BubblesGeometry struct {
	Radius     float64 `yaml:"radius"`
	TopMargin  float64 `yaml:"top_margin"`
	SideMargin float64 `yaml:"side_margin"`
}

// BubblesShooter defines shot and aim parameters.
type BubblesShooter struct {
	Speed       float64 `yaml:"speed"`         // Pixels per second
	MinAngleDeg float64 `yaml:"min_angle_deg"` // Minimum deviation from horizontal
	AimStepDeg  float64 `yaml:"aim_step_deg"`  // Rotation per key press
}

// BubblesRules defines matching and ceiling rules.
type BubblesRules struct {
	ClearThreshold int `yaml:"clear_threshold"`
	DropInterval   int `yaml:"drop_interval"` // Shots between ceiling drops
	PointsPerPiece int `yaml:"points_per_piece"`
}

// BubblesTiming defines simulation step limits.
type BubblesTiming struct {
	MaxStep float64 `yaml:"max_step"` // Largest simulated step, seconds
}

// BubblesAudio defines the synthesized sound output.
type BubblesAudio struct {
	Mute   bool    `yaml:"mute"`
	Volume float64 `yaml:"volume"` // 0.0 to 1.0; zero means default
}

// PieceConfig is one piece type entry. The same shape is used by
// standalone catalog files.
type PieceConfig struct {
	ID     string `yaml:"id"`
	Color  string `yaml:"color"`
	Weight int    `yaml:"weight,omitempty"`
	Bonus  bool   `yaml:"bonus,omitempty"`
}

// Validate replaces missing or out-of-range values with defaults.
// Pieces are left as-is; the catalog normalizer handles them.
func (c *BubblesConfig) Validate() {
	d := DefaultBubblesConfig()

	if c.Board.Rows < 2 {
		c.Board.Rows = d.Board.Rows
	}
	if c.Board.Cols < 2 {
		c.Board.Cols = d.Board.Cols
	}
	if c.Board.InitialRows < 0 || c.Board.InitialRows >= c.Board.Rows {
		c.Board.InitialRows = d.Board.InitialRows
		if c.Board.InitialRows >= c.Board.Rows {
			c.Board.InitialRows = c.Board.Rows / 2
		}
	}

	if c.Geometry.Radius <= 0 {
		c.Geometry.Radius = d.Geometry.Radius
	}
	if c.Geometry.TopMargin < 0 {
		c.Geometry.TopMargin = d.Geometry.TopMargin
	}
	if c.Geometry.SideMargin < 0 {
		c.Geometry.SideMargin = d.Geometry.SideMargin
	}

	if c.Shooter.Speed <= 0 {
		c.Shooter.Speed = d.Shooter.Speed
	}
	if c.Shooter.MinAngleDeg <= 0 || c.Shooter.MinAngleDeg >= 90 {
		c.Shooter.MinAngleDeg = d.Shooter.MinAngleDeg
	}
	if c.Shooter.AimStepDeg <= 0 {
		c.Shooter.AimStepDeg = d.Shooter.AimStepDeg
	}

	if c.Rules.ClearThreshold < 2 {
		c.Rules.ClearThreshold = d.Rules.ClearThreshold
	}
	if c.Rules.DropInterval < 1 {
		c.Rules.DropInterval = d.Rules.DropInterval
	}
	if c.Rules.PointsPerPiece <= 0 {
		c.Rules.PointsPerPiece = d.Rules.PointsPerPiece
	}

	if c.Timing.MaxStep <= 0 {
		c.Timing.MaxStep = d.Timing.MaxStep
	}

	if c.Audio.Volume <= 0 {
		c.Audio.Volume = d.Audio.Volume
	}
	if c.Audio.Volume > 1 {
		c.Audio.Volume = 1
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// IsFixedPreset returns true if the preset keeps the configured values.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
