package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/bubble-arcade/internal/audio"
	"github.com/vovakirdan/bubble-arcade/internal/config"
	"github.com/vovakirdan/bubble-arcade/internal/core"
	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles"
	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles/catalog"
	bubblescore "github.com/vovakirdan/bubble-arcade/internal/games/bubbles/core"
	"github.com/vovakirdan/bubble-arcade/internal/platform/tui"
	"github.com/vovakirdan/bubble-arcade/internal/registry"
	"github.com/vovakirdan/bubble-arcade/internal/storage"
)

// newLogger builds the process logger. Terminal modes own stdout and
// stderr, so without --log-file their logs are discarded.
func newLogger(terminal bool) (*log.Logger, func()) {
	var out io.Writer = os.Stderr
	closeFn := func() {}

	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
			out = io.Discard
		} else {
			out = f
			closeFn = func() { f.Close() }
		}
	case terminal:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "bubbles",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger, closeFn
}

// loadSettings resolves config, difficulty and catalog from the flags and
// makes them the defaults for new games.
func loadSettings(logger *log.Logger) (config.BubblesConfig, config.DifficultyPreset, bubblescore.Catalog, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.BubblesConfig{}, "", nil, err
	}

	cfg, err := config.LoadBubbles(flagConfig)
	if err != nil {
		return config.BubblesConfig{}, "", nil, err
	}
	base := cfg
	config.ApplyBubblesPreset(&cfg, preset)

	cat := catalog.Load(logger, flagCatalog, cfg.Pieces)
	bubbles.Configure(base, cat)
	return cfg, preset, cat, nil
}

// gameFactory creates games for a menu-chosen difficulty.
func gameFactory() tui.GameFactory {
	return func(preset config.DifficultyPreset) (registry.Game, error) {
		s := bubbles.CurrentSettings()
		config.ApplyBubblesPreset(&s.Config, preset)
		return bubbles.NewWithSettings(s), nil
	}
}

// soundLoader opens the speaker on first use and hands the same sink to
// every later game. A failure yields a nil sink so callers fall back to
// silence.
func soundLoader(logger *log.Logger, cfg config.BubblesConfig) func() (bubblescore.SoundSink, error) {
	if cfg.Audio.Mute {
		return nil
	}
	var (
		mu   sync.Mutex
		sink *audio.Sink
	)
	return func() (bubblescore.SoundSink, error) {
		mu.Lock()
		defer mu.Unlock()
		if sink != nil {
			return sink, nil
		}
		s := audio.NewSink(logger, cfg.Audio.Volume)
		if err := s.Init(); err != nil {
			return nil, err
		}
		sink = s
		return sink, nil
	}
}

func verifyReplay(r storage.Replay) error {
	_, err := bubbles.VerifyReplay(r)
	return err
}

// openStore opens the replay database. Failure is not fatal.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		logger.Warn("replay database unavailable", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the session to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}
