// Package gui runs the Bubbles shooter in a desktop window with ebiten.
package gui

import (
	"errors"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles"
	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles/core"
	"github.com/vovakirdan/bubble-arcade/internal/storage"
)

// SoundLoader opens the sound output. It runs on its own goroutine.
type SoundLoader func() (core.SoundSink, error)

// Options configures a window session.
type Options struct {
	Config   core.Config
	Catalog  core.Catalog
	Seed     int64
	TickRate int
	Scale    float64 // Window pixels per playfield pixel
	AimSpeed float64 // Keyboard aim speed, radians per second

	Sound  SoundLoader     // Nil plays silently
	Store  *storage.Store  // Nil disables replay saving
	Logger *log.Logger
}

type soundResult struct {
	sink core.SoundSink
	err  error
}

// Window is an ebiten.Game driving consecutive games.
type Window struct {
	opts   Options
	logger *log.Logger
	play   *bubbles.Play
	frame  core.Frame
	dt     float64

	soundCh chan soundResult
	cursorX int
	cursorY int
}

// NewWindow creates a window session. Sound loading starts immediately and
// the session waits in the loading phase until it finishes.
func NewWindow(opts Options) *Window {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if opts.AimSpeed <= 0 {
		opts.AimSpeed = math.Pi / 2
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	w := &Window{
		opts:   opts,
		logger: logger,
		dt:     1 / float64(opts.TickRate),
	}

	playOpts := bubbles.PlayOptions{
		Config:   opts.Config,
		Catalog:  opts.Catalog,
		Seed:     opts.Seed,
		Dt:       w.dt,
		Gated:    opts.Sound != nil,
		Renderer: w,
		Logger:   logger,
	}
	if opts.Store != nil {
		playOpts.Saver = opts.Store
	}
	if opts.Sound != nil {
		w.soundCh = make(chan soundResult, 1)
		go func() {
			sink, err := opts.Sound()
			w.soundCh <- soundResult{sink: sink, err: err}
		}()
	}

	w.play = bubbles.NewPlay(playOpts)
	w.frame = w.play.Session().Frame()
	return w
}

// Size returns the window size in screen pixels.
func (w *Window) Size() (int, int) {
	l := w.play.Session().Layout()
	return int(l.Width * w.opts.Scale), int(l.Height * w.opts.Scale)
}

// RenderFrame implements core.FrameRenderer.
func (w *Window) RenderFrame(f core.Frame) {
	w.frame = f
}

// Update advances the session by one fixed tick.
func (w *Window) Update() error {
	w.pollSound()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		w.play.Save()
		return ebiten.Termination
	}

	w.play.Step(w.readInput())
	return nil
}

// pollSound releases the loading gate once the sound loader reports back.
func (w *Window) pollSound() {
	if w.soundCh == nil {
		return
	}
	select {
	case res := <-w.soundCh:
		w.soundCh = nil
		if res.err != nil || res.sink == nil {
			w.logger.Warn("sound unavailable, playing silently", "error", res.err)
		} else {
			w.play.SetSound(res.sink)
		}
		w.play.FinishLoading()
	default:
	}
}

// readInput collects this tick's mouse and keyboard state.
func (w *Window) readInput() core.Input {
	var in core.Input

	// Layout maps the window to playfield pixels, so the cursor needs no scaling.
	x, y := ebiten.CursorPosition()
	if x != w.cursorX || y != w.cursorY {
		w.cursorX, w.cursorY = x, y
		in.Point = true
		in.PointX, in.PointY = float64(x), float64(y)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.Point = true
		in.PointX, in.PointY = float64(x), float64(y)
		in.Fire = true
	}

	step := w.opts.AimSpeed * w.dt
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		in.Rotate += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		in.Rotate -= step
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		in.Fire = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		in.Pause = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		in.Retry = true
	}
	return in
}

// Layout reports the playfield as the logical screen size.
func (w *Window) Layout(_, _ int) (int, int) {
	l := w.play.Session().Layout()
	return int(math.Ceil(l.Width)), int(math.Ceil(l.Height))
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	w := NewWindow(opts)
	width, height := w.Size()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Bubbles")
	ebiten.SetTPS(w.opts.TickRate)

	err := ebiten.RunGame(w)
	if c, ok := w.play.Sound().(interface{ Close() }); ok {
		c.Close()
	}
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
