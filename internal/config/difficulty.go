package config

import (
	"fmt"
	"strings"
)

// presetValues holds what a preset changes.
type presetValues struct {
	dropInterval int
	initialRows  int
}

var presets = map[DifficultyPreset]presetValues{
	DifficultyEasy:   {dropInterval: 10, initialRows: 4},
	DifficultyNormal: {dropInterval: 8, initialRows: 5},
	DifficultyHard:   {dropInterval: 5, initialRows: 7},
}

// ParsePreset converts a flag value to a preset. An empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DifficultyNormal, nil
	}
	if _, ok := presets[p]; ok || p == DifficultyFixed {
		return p, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// ApplyBubblesPreset modifies the config based on a difficulty preset.
// The fixed preset leaves the configured values untouched.
func ApplyBubblesPreset(cfg *BubblesConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		return
	}
	v, ok := presets[preset]
	if !ok {
		return
	}
	cfg.Rules.DropInterval = v.dropInterval
	cfg.Board.InitialRows = v.initialRows
	if cfg.Board.InitialRows >= cfg.Board.Rows {
		cfg.Board.InitialRows = cfg.Board.Rows / 2
	}
}
