package bubbles

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles/core"
	"github.com/vovakirdan/bubble-arcade/internal/storage"
)

// ReplaySaver stores finished games. *storage.Store satisfies it.
type ReplaySaver interface {
	SaveReplay(r storage.Replay) (string, error)
}

// PlayOptions configures a Play.
type PlayOptions struct {
	Config   core.Config
	Catalog  core.Catalog
	Seed     int64
	Dt       float64            // Fixed step, seconds
	Gated    bool               // Start in the loading phase
	Renderer core.FrameRenderer // Nil skips frames
	Saver    ReplaySaver        // Nil disables replay saving
	Logger   *log.Logger
}

// Play runs consecutive games for front ends that own their loop. Each game
// has its own session and recorder, so a retry starts a new game on the next
// seed and every saved replay holds exactly one game.
type Play struct {
	opts   PlayOptions
	logger *log.Logger
	sound  core.SoundSink

	session  *core.Session
	recorder *core.Recorder
	driver   *core.Driver
	saved    bool
}

// NewPlay starts the first game on opts.Seed.
func NewPlay(opts PlayOptions) *Play {
	if opts.Dt <= 0 {
		opts.Dt = 1.0 / 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	p := &Play{opts: opts, logger: logger}
	p.start(opts.Seed)
	return p
}

func (p *Play) start(seed int64) {
	var sessionOpts []core.Option
	if p.opts.Gated {
		sessionOpts = append(sessionOpts, core.WithLoadingGate())
	}
	p.session = core.NewSession(p.opts.Config, p.opts.Catalog, seed, sessionOpts...)
	p.recorder = core.NewRecorder(seed, p.opts.Dt)
	p.driver = core.NewDriver(p.session, p.sound, p.opts.Renderer)
	p.driver.Recorder = p.recorder
	p.saved = false
}

// Session returns the current game.
func (p *Play) Session() *core.Session { return p.session }

// SetSound routes sound cues of this and later games to sink.
func (p *Play) SetSound(sink core.SoundSink) {
	p.sound = sink
	p.driver.Sound = sink
}

// Sound returns the current sound sink, if any.
func (p *Play) Sound() core.SoundSink { return p.sound }

// FinishLoading releases the loading gate for this and later games.
func (p *Play) FinishLoading() {
	p.opts.Gated = false
	p.session.FinishLoading()
}

// Step advances the current game by one fixed tick. Retry saves the game
// being left and starts the next one. A game that ends is saved once.
func (p *Play) Step(in core.Input) []core.Event {
	if in.Retry && p.session.Phase() != core.PhaseLoading {
		p.Save()
		p.start(p.session.Seed() + 1)
		if p.opts.Renderer != nil {
			p.opts.Renderer.RenderFrame(p.session.Frame())
		}
		return []core.Event{{Kind: core.EventPhase, Phase: p.session.Phase()}}
	}

	evs := p.driver.Step(p.opts.Dt, in)
	if p.session.Phase().Terminal() {
		p.Save()
	}
	return evs
}

// Save stores the current game unless it was already saved or has no input.
// Failures are logged.
func (p *Play) Save() {
	if p.saved || p.opts.Saver == nil || p.recorder.Len() == 0 {
		return
	}
	p.saved = true

	r, err := BuildReplay(p.session, p.recorder)
	if err != nil {
		p.logger.Warn("could not build replay", "error", err)
		return
	}
	id, err := p.opts.Saver.SaveReplay(r)
	if err != nil {
		p.logger.Warn("could not save replay", "error", err)
		return
	}
	p.logger.Info("replay saved", "id", id, "score", r.Score, "outcome", r.Outcome)
}
