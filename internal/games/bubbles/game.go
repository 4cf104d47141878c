// Package bubbles provides the Bubbles shooter for the arcade.
package bubbles

import (
	"math"
	"sync"

	platformcore "github.com/vovakirdan/bubble-arcade/internal/core"
	"github.com/vovakirdan/bubble-arcade/internal/config"
	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles/catalog"
	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles/core"
	"github.com/vovakirdan/bubble-arcade/internal/registry"
)

// GameID is the registry identifier of the Bubbles shooter.
const GameID = "bubbles"

// Settings is the configuration new games start from.
type Settings struct {
	Config  config.BubblesConfig
	Catalog core.Catalog // Nil means build from Config.Pieces
}

// Package-level configuration, set once by the CLI before games are created.
var (
	settingsMu sync.RWMutex
	settings   = Settings{Config: config.DefaultBubblesConfig()}
)

// Configure sets the configuration and piece catalog used by new games.
func Configure(cfg config.BubblesConfig, cat core.Catalog) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = Settings{Config: cfg, Catalog: cat}
}

// CurrentSettings returns the configuration used by new games.
func CurrentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// SessionConfig converts the YAML configuration to simulation parameters.
func SessionConfig(cfg config.BubblesConfig) core.Config {
	return core.Config{
		Rows:           cfg.Board.Rows,
		Cols:           cfg.Board.Cols,
		InitialRows:    cfg.Board.InitialRows,
		Radius:         cfg.Geometry.Radius,
		TopMargin:      cfg.Geometry.TopMargin,
		SideMargin:     cfg.Geometry.SideMargin,
		ShotSpeed:      cfg.Shooter.Speed,
		MinAngle:       cfg.Shooter.MinAngleDeg * math.Pi / 180,
		DropInterval:   cfg.Rules.DropInterval,
		ClearThreshold: cfg.Rules.ClearThreshold,
		PointsPerPiece: cfg.Rules.PointsPerPiece,
		MaxStep:        cfg.Timing.MaxStep,
	}.Normalized()
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game adapts a simulation session to the arcade platform.
type Game struct {
	cfg     core.Config
	catalog core.Catalog
	aimStep float64 // Radians per rotate action

	session  *core.Session
	driver   *core.Driver
	recorder *core.Recorder
	frame    core.Frame
	sound    core.SoundSink
	dt       float64
	seed     int64

	// Loading gate
	gated bool
	ready bool

	screenW  int
	screenH  int
	tooSmall bool
	view     view
}

// New creates a Bubbles game from the current settings.
func New() *Game {
	return NewWithSettings(CurrentSettings())
}

// NewWithSettings creates a Bubbles game from explicit settings.
func NewWithSettings(s Settings) *Game {
	cat := s.Catalog
	if len(cat) == 0 {
		cat, _ = core.NormalizeCatalog(catalog.ToPieceTypes(s.Config.Pieces))
	}
	return &Game{
		cfg:     SessionConfig(s.Config),
		catalog: cat,
		aimStep: s.Config.Shooter.AimStepDeg * math.Pi / 180,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Bubbles"
}

// AwaitAssets makes the next Reset start behind the loading gate until
// AssetsReady is called.
func (g *Game) AwaitAssets() {
	g.gated = true
}

// AssetsReady releases the loading gate and attaches the sound sink.
// A nil sink leaves the game silent.
func (g *Game) AssetsReady(sink core.SoundSink) {
	g.ready = true
	g.sound = sink
	if g.driver != nil {
		g.driver.Sound = sink
	}
	if g.session != nil {
		g.session.FinishLoading()
		g.frame = g.session.Frame()
	}
}

// Reset starts a new session with the runtime seed.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	rate := cfg.TickRate
	if rate <= 0 {
		rate = 60
	}
	g.dt = 1 / float64(rate)
	g.seed = cfg.Seed

	var opts []core.Option
	if g.gated && !g.ready {
		opts = append(opts, core.WithLoadingGate())
	}
	g.session = core.NewSession(g.cfg, g.catalog, g.seed, opts...)
	g.recorder = core.NewRecorder(g.seed, g.dt)
	g.driver = core.NewDriver(g.session, g.sound, g)
	g.driver.Recorder = g.recorder
	g.frame = g.session.Frame()

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the terminal layout without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.view, g.tooSmall = fitView(g.cfg, w, h)
}

// Step advances the session by one fixed tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.session == nil || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}
	g.driver.Step(g.dt, g.translate(in))
	return platformcore.StepResult{State: g.State()}
}

// translate maps platform actions to session input.
func (g *Game) translate(in platformcore.InputFrame) core.Input {
	var out core.Input
	if in.Has(platformcore.ActionLeft) {
		out.Rotate += g.aimStep
	}
	if in.Has(platformcore.ActionRight) {
		out.Rotate -= g.aimStep
	}
	if in.Has(platformcore.ActionFire) || in.Has(platformcore.ActionConfirm) {
		out.Fire = true
	}
	out.Pause = in.Has(platformcore.ActionPause)
	out.Retry = in.Has(platformcore.ActionRestart)
	if in.Pointer.Valid {
		out.Point = true
		out.PointX, out.PointY = g.view.toPlayfield(g.frame.Layout, in.Pointer.X, in.Pointer.Y)
	}
	return out
}

// RenderFrame implements core.FrameRenderer.
func (g *Game) RenderFrame(f core.Frame) {
	g.frame = f
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{}
	}
	ph := g.session.Phase()
	return platformcore.GameState{
		Score:    g.session.Score(),
		GameOver: ph.Terminal(),
		Won:      ph == core.PhaseClear,
		Paused:   ph == core.PhasePaused,
		Loading:  ph == core.PhaseLoading,
	}
}

// Snapshot returns the session snapshot.
func (g *Game) Snapshot() core.Snapshot {
	if g.session == nil {
		return core.Snapshot{}
	}
	return g.session.Snapshot()
}

// Phase returns the session phase.
func (g *Game) Phase() core.Phase {
	if g.session == nil {
		return core.PhaseLoading
	}
	return g.session.Phase()
}
