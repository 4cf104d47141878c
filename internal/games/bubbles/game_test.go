package bubbles

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformcore "github.com/vovakirdan/bubble-arcade/internal/core"
	"github.com/vovakirdan/bubble-arcade/internal/config"
	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles/core"
	"github.com/vovakirdan/bubble-arcade/internal/registry"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: seed})
	require.False(t, g.tooSmall)
	return g
}

func frameWith(actions ...platformcore.Action) platformcore.InputFrame {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// shoot fires once and steps until the shot resolves.
func shoot(t *testing.T, g *Game) {
	t.Helper()
	g.Step(frameWith(platformcore.ActionFire))
	require.Equal(t, core.PhaseFiring, g.Phase())
	for i := 0; i < 600 && g.Phase() == core.PhaseFiring; i++ {
		g.Step(platformcore.NewInputFrame())
	}
	require.NotEqual(t, core.PhaseFiring, g.Phase(), "shot never resolved")
}

func TestRegistered(t *testing.T) {
	assert.True(t, registry.Exists(GameID))

	g, err := registry.Create(GameID)
	require.NoError(t, err)
	assert.Equal(t, "Bubbles", g.Title())
}

func TestSessionConfigConvertsAngles(t *testing.T) {
	cfg := config.DefaultBubblesConfig()
	cfg.Shooter.MinAngleDeg = 10
	cfg.Board.Rows = 9

	sc := SessionConfig(cfg)
	assert.InDelta(t, 10*math.Pi/180, sc.MinAngle, 1e-12)
	assert.Equal(t, 9, sc.Rows)
}

func TestConfigureCatalog(t *testing.T) {
	prev := CurrentSettings()
	t.Cleanup(func() { Configure(prev.Config, prev.Catalog) })

	cat := core.Catalog{{ID: "only", Color: "#ff0000", Weight: 1}}
	Configure(config.DefaultBubblesConfig(), cat)

	g := newTestGame(t, 1)
	assert.Equal(t, core.TypeID("only"), g.frame.Queue.Current)
	assert.Equal(t, core.TypeID("only"), g.frame.Queue.Next)
}

func TestTooSmallScreen(t *testing.T) {
	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 10, ScreenH: 5, TickRate: 60, Seed: 1})
	assert.True(t, g.tooSmall)

	before := g.Snapshot()
	g.Step(frameWith(platformcore.ActionFire))
	assert.Equal(t, before, g.Snapshot(), "a too-small screen must not advance the session")

	screen := platformcore.NewScreen(10, 5)
	g.Render(screen)

	g.Resize(80, 30)
	assert.False(t, g.tooSmall)
}

func TestLoadingGate(t *testing.T) {
	g := New()
	g.AwaitAssets()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 5})
	assert.True(t, g.State().Loading)

	g.Step(frameWith(platformcore.ActionFire))
	assert.Equal(t, core.PhaseLoading, g.Phase())
	assert.Zero(t, g.Snapshot().Tick)

	g.AssetsReady(nil)
	assert.Equal(t, core.PhaseReady, g.Phase())
	assert.False(t, g.State().Loading)

	// Later resets skip the gate.
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 6})
	assert.Equal(t, core.PhaseReady, g.Phase())
}

func TestRotateActions(t *testing.T) {
	g := newTestGame(t, 3)
	start := g.Snapshot().Angle

	g.Step(frameWith(platformcore.ActionLeft))
	assert.Greater(t, g.Snapshot().Angle, start)

	g.Step(frameWith(platformcore.ActionRight))
	g.Step(frameWith(platformcore.ActionRight))
	assert.Less(t, g.Snapshot().Angle, start)
}

func TestPointerAims(t *testing.T) {
	g := newTestGame(t, 3)
	v := g.view

	left := platformcore.NewInputFrame()
	left.PointAt(v.originX(), v.originY())
	g.Step(left)
	assert.Greater(t, g.Snapshot().Angle, math.Pi/2)

	right := platformcore.NewInputFrame()
	right.PointAt(v.originX()+v.field.W-1, v.originY())
	g.Step(right)
	assert.Less(t, g.Snapshot().Angle, math.Pi/2)
}

func TestViewRoundTrip(t *testing.T) {
	g := newTestGame(t, 3)
	l := g.frame.Layout
	for _, c := range []core.Coord{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 4, Col: 7}, {Row: 12, Col: 3}} {
		x, y := l.CellCenterOf(c, 0)
		cx, cy := g.view.cellOf(l, x, y)
		assert.Equal(t, g.view.originX()+1+2*c.Col+c.Row%2, cx, "column of %v", c)
		assert.Equal(t, g.view.originY()+c.Row, cy, "line of %v", c)

		px, py := g.view.toPlayfield(l, cx, cy)
		assert.InDelta(t, x, px, l.Radius)
		assert.InDelta(t, y, py, 1e-9)
	}
}

func TestRenderDrawsBoard(t *testing.T) {
	g := newTestGame(t, 9)
	screen := platformcore.NewScreen(80, 30)
	g.Render(screen)

	v := g.view
	pieces := 0
	for y := v.originY(); y < v.originY()+g.cfg.Rows; y++ {
		for x := v.originX(); x < v.originX()+v.field.W; x++ {
			switch screen.Get(x, y) {
			case glyphPiece, glyphBonus:
				pieces++
			}
		}
	}
	assert.Equal(t, g.frame.Board.Count(), pieces)
	assert.Equal(t, '┄', screen.Get(v.originX(), v.originY()+g.cfg.Rows))
	assert.Contains(t, screen.Row(0), "Score: 0")
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t, 9)
	screen := platformcore.NewScreen(80, 30)

	g.Step(frameWith(platformcore.ActionPause))
	require.True(t, g.State().Paused)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Paused")

	g.Step(frameWith(platformcore.ActionPause))
	g.Render(screen)
	assert.NotContains(t, screen.String(), "Paused")
}

func TestRetryAction(t *testing.T) {
	g := newTestGame(t, 11)
	shoot(t, g)
	require.Equal(t, 1, g.Snapshot().Shots)

	g.Step(frameWith(platformcore.ActionRestart))
	assert.Zero(t, g.Snapshot().Shots)
	assert.Equal(t, core.PhaseReady, g.Phase())
}

func TestReplayVerifies(t *testing.T) {
	g := newTestGame(t, 42)
	shoot(t, g)
	g.Step(frameWith(platformcore.ActionLeft, platformcore.ActionLeft))
	shoot(t, g)
	g.Step(frameWith(platformcore.ActionRight))
	g.Step(frameWith(platformcore.ActionRight))
	shoot(t, g)

	r, err := g.Replay()
	require.NoError(t, err)
	assert.Equal(t, GameID, r.GameID)
	assert.Equal(t, int64(42), r.Seed)
	assert.Equal(t, g.Snapshot().Tick, r.Ticks)

	snap, err := VerifyReplay(r)
	require.NoError(t, err)
	assert.Equal(t, g.Snapshot(), snap)

	r.StateHash++
	_, err = VerifyReplay(r)
	assert.ErrorIs(t, err, ErrReplayMismatch)
}

func TestReplayAfterLoadingGate(t *testing.T) {
	g := New()
	g.AwaitAssets()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 77})
	for i := 0; i < 10; i++ {
		g.Step(frameWith(platformcore.ActionFire))
	}
	g.AssetsReady(core.NopSink{})
	shoot(t, g)

	r, err := g.Replay()
	require.NoError(t, err)
	_, err = VerifyReplay(r)
	assert.NoError(t, err)
}

func TestDecodeReplayErrors(t *testing.T) {
	_, err := DecodeReplay([]byte{0xc1})
	assert.Error(t, err)

	data, err := EncodeReplay(ReplayLog{Version: replayVersion + 1})
	require.NoError(t, err)
	_, err = DecodeReplay(data)
	assert.Error(t, err)

	_, err = New().Replay()
	assert.ErrorIs(t, err, ErrNoSession)
}
