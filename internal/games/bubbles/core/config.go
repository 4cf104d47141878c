package core

import "math"

// Config holds the tunable parameters of a simulation session.
// Distances are in playfield pixels, speeds in pixels per second.
type Config struct {
	Rows        int // Board rows (fixed for the session)
	Cols        int // Board columns (fixed for the session)
	InitialRows int // Rows stocked with pieces at game start

	Radius     float64 // Piece radius
	TopMargin  float64 // Distance from the frame top to the ceiling
	SideMargin float64 // Distance from the frame edge to each wall

	ShotSpeed float64 // Projectile speed
	MinAngle  float64 // Minimum aim deviation from horizontal, radians

	DropInterval   int // Shots between ceiling drops
	ClearThreshold int // Minimum cluster size that clears
	PointsPerPiece int // Score per removed piece

	MaxStep float64 // Largest dt accepted by Advance, seconds
}

// DefaultConfig returns the standard board and physics parameters.
func DefaultConfig() Config {
	return Config{
		Rows:           13,
		Cols:           8,
		InitialRows:    5,
		Radius:         16,
		TopMargin:      32,
		SideMargin:     16,
		ShotSpeed:      720,
		MinAngle:       8 * math.Pi / 180,
		DropInterval:   8,
		ClearThreshold: 3,
		PointsPerPiece: 10,
		MaxStep:        1.0 / 30,
	}
}

// Normalized returns a copy with invalid values replaced by defaults.
func (c Config) Normalized() Config {
	d := DefaultConfig()
	if c.Rows < 2 {
		c.Rows = d.Rows
	}
	if c.Cols < 2 {
		c.Cols = d.Cols
	}
	if c.InitialRows < 0 {
		c.InitialRows = 0
	}
	if c.InitialRows > c.Rows-1 {
		c.InitialRows = c.Rows - 1
	}
	if c.Radius <= 0 {
		c.Radius = d.Radius
	}
	if c.TopMargin < 0 {
		c.TopMargin = d.TopMargin
	}
	if c.SideMargin < 0 {
		c.SideMargin = d.SideMargin
	}
	if c.ShotSpeed <= 0 {
		c.ShotSpeed = d.ShotSpeed
	}
	if c.MinAngle <= 0 || c.MinAngle >= math.Pi/2 {
		c.MinAngle = d.MinAngle
	}
	if c.DropInterval < 1 {
		c.DropInterval = d.DropInterval
	}
	if c.ClearThreshold < 2 {
		c.ClearThreshold = d.ClearThreshold
	}
	if c.PointsPerPiece < 0 {
		c.PointsPerPiece = d.PointsPerPiece
	}
	if c.MaxStep <= 0 {
		c.MaxStep = d.MaxStep
	}
	return c
}
