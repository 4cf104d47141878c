// Package audio plays synthesized sound cues for the Bubbles game.
// It implements the simulation's SoundSink on top of a beep mixer.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles/core"
)

const sampleRate = beep.SampleRate(44100)

// Sink plays sound cues through the system speaker.
type Sink struct {
	mu          sync.Mutex
	logger      *log.Logger
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	played      map[core.SoundKind]int
}

// NewSink creates a sink. Call Init before sounds are audible.
func NewSink(logger *log.Logger, volume float64) *Sink {
	return &Sink{
		logger: logger,
		mixer:  &beep.Mixer{},
		volume: volume,
		played: make(map[core.SoundKind]int),
	}
}

// Init opens the speaker. It blocks while the audio device starts.
func (s *Sink) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	s.logger.Debug("audio ready", "rate", int(sampleRate), "volume", s.volume)
	return nil
}

// RequestSound implements core.SoundSink. Requests before Init are counted
// and dropped.
func (s *Sink) RequestSound(kind core.SoundKind, t core.TypeID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.played[kind]++
	if !s.initialized {
		return
	}
	cue := Cue(kind, t, sampleRate, s.volume)
	if cue == nil {
		s.logger.Debug("unknown sound cue", "kind", kind)
		return
	}
	speaker.Lock()
	s.mixer.Add(cue)
	speaker.Unlock()
}

// Requests returns how many cues of a kind were requested.
func (s *Sink) Requests(kind core.SoundKind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.played[kind]
}

// Close silences the mixer.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}
