package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionStocksInitialRows(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession(cfg, testCatalog(), 99)

	assert.Equal(t, PhaseReady, s.Phase())
	assert.Equal(t, cfg.InitialRows*cfg.Cols, s.Board().Count())
	assert.Equal(t, cfg.InitialRows-1, s.Board().LowestOccupiedRow())
	for _, c := range s.Board().OccupiedCoords() {
		p, _ := s.Board().At(c)
		assert.NotEqual(t, TypeID("star"), p.Type, "stocking uses ordinary types")
	}
	assert.Equal(t, DefaultAngle, s.Shooter().Angle)
	assert.NotEmpty(t, s.Queue().Current)
	assert.NotEmpty(t, s.Queue().Next)
	assert.Zero(t, s.CeilingOffset())
}

func TestBonusPieceReachesQueue(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		s := NewSession(DefaultConfig(), DefaultCatalog(), seed)
		found := false
		for shot := 0; shot < 40 && !found; shot++ {
			q := s.Queue()
			if q.Current == "star" || q.Next == "star" {
				found = true
				break
			}
			s.Advance(1.0/60, Input{Fire: true})
			for i := 0; i < 600 && s.Phase() == PhaseFiring; i++ {
				s.Advance(1.0/60, Input{})
			}
			if s.Phase() != PhaseReady {
				s.Reset()
			}
		}
		assert.True(t, found, "seed %d: no bonus piece queued", seed)
	}
}

func TestNewSessionEmptyCatalog(t *testing.T) {
	s := NewSession(DefaultConfig(), nil, 1)
	assert.Equal(t, FallbackTypeID, s.Queue().Current)
}

func TestFireSpawnsProjectileAndAdvancesQueue(t *testing.T) {
	s := NewSession(DefaultConfig(), testCatalog(), 4)
	q := s.Queue()

	evs := s.Advance(0, Input{Fire: true})
	require.Equal(t, PhaseFiring, s.Phase())

	p, ok := s.Projectile()
	require.True(t, ok)
	assert.Equal(t, q.Current, p.Type)
	assert.Equal(t, q.Next, s.Queue().Current)
	assert.InDelta(t, 0, p.VX, 1e-9)
	assert.InDelta(t, -s.Config().ShotSpeed, p.VY, 1e-9)

	sounds := Sounds(evs)
	require.Len(t, sounds, 2)
	assert.Equal(t, SoundShot, sounds[0].Sound)
	assert.Equal(t, SoundFireVoice, sounds[1].Sound)
	assert.Equal(t, q.Current, sounds[0].Type)

	evs = s.Advance(1.0/60, Input{Fire: true})
	assert.Zero(t, CountKind(evs, EventFired), "fire is ignored while a shot is in flight")
}

func TestAimAt(t *testing.T) {
	s := NewSession(DefaultConfig(), testCatalog(), 1)
	sh := s.Shooter()
	minA := s.Config().MinAngle

	s.AimAt(sh.X+100, sh.Y-100)
	assert.InDelta(t, math.Pi/4, s.Shooter().Angle, 1e-9)

	s.AimAt(sh.X-100, sh.Y-100)
	assert.InDelta(t, 3*math.Pi/4, s.Shooter().Angle, 1e-9)

	s.AimAt(sh.X+1000, sh.Y-1)
	assert.InDelta(t, minA, s.Shooter().Angle, 1e-9, "shallow aim is clamped")

	s.AimAt(sh.X+10, sh.Y+50)
	assert.InDelta(t, minA, s.Shooter().Angle, 1e-9, "below the shooter on the right")

	s.AimAt(sh.X-10, sh.Y+50)
	assert.InDelta(t, math.Pi-minA, s.Shooter().Angle, 1e-9)

	s.AimAt(sh.X, sh.Y)
	assert.Equal(t, DefaultAngle, s.Shooter().Angle, "zero-length aim points straight up")

	s.AimAt(math.NaN(), 3)
	s.AimAt(math.Inf(1), 3)
	assert.Equal(t, DefaultAngle, s.Shooter().Angle, "non-finite aim is ignored")
}

func TestRotateClamps(t *testing.T) {
	s := NewSession(DefaultConfig(), testCatalog(), 1)
	s.Advance(0, Input{Rotate: 10})
	assert.InDelta(t, math.Pi-s.Config().MinAngle, s.Shooter().Angle, 1e-9)
	s.Advance(0, Input{Rotate: -10})
	assert.InDelta(t, s.Config().MinAngle, s.Shooter().Angle, 1e-9)
	s.Advance(0, Input{Rotate: math.NaN()})
	assert.InDelta(t, s.Config().MinAngle, s.Shooter().Angle, 1e-9)
}

func TestFiredVelocityIsFinite(t *testing.T) {
	s := NewSession(DefaultConfig(), testCatalog(), 1)
	s.Advance(0, Input{Point: true, PointX: s.Shooter().X, PointY: s.Shooter().Y, Fire: true})
	p, ok := s.Projectile()
	require.True(t, ok)
	assert.False(t, math.IsNaN(p.VX) || math.IsNaN(p.VY))
}

func TestPauseFreezesProjectile(t *testing.T) {
	s := NewSession(DefaultConfig(), testCatalog(), 1)
	s.Advance(0, Input{Fire: true})
	before, _ := s.Projectile()

	s.Advance(1.0/60, Input{Pause: true})
	require.Equal(t, PhasePaused, s.Phase())
	for i := 0; i < 30; i++ {
		s.Advance(1.0/60, Input{Fire: true, Rotate: 0.5})
	}
	during, _ := s.Projectile()
	assert.Equal(t, before, during)
	assert.Equal(t, DefaultAngle, s.Shooter().Angle, "aim is frozen while paused")

	s.Advance(1.0/60, Input{Pause: true})
	require.Equal(t, PhaseFiring, s.Phase())
	resumed, _ := s.Projectile()
	assert.Equal(t, before, resumed, "first tick after resume integrates nothing")

	s.Advance(1.0/60, Input{})
	moved, _ := s.Projectile()
	assert.Less(t, moved.Y, before.Y)
}

func TestDtIsClamped(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession(cfg, testCatalog(), 1)
	s.Advance(0, Input{Fire: true})
	start, _ := s.Projectile()

	s.Advance(5, Input{})
	p, _ := s.Projectile()
	assert.InDelta(t, cfg.ShotSpeed*cfg.MaxStep, start.Y-p.Y, 1e-6)

	s.Advance(math.NaN(), Input{})
	q, _ := s.Projectile()
	assert.Equal(t, p, q)
}

func TestRetryDuringFiringDiscardsProjectile(t *testing.T) {
	s := NewSession(DefaultConfig(), testCatalog(), 1)
	s.Advance(0, Input{Fire: true})
	require.Equal(t, PhaseFiring, s.Phase())

	evs := s.Advance(1.0/60, Input{Retry: true})
	assert.Equal(t, PhaseReady, s.Phase())
	_, inFlight := s.Projectile()
	assert.False(t, inFlight)
	assert.Zero(t, CountKind(evs, EventPlaced))
	assert.Zero(t, s.Shots())
}

func TestLoadingGate(t *testing.T) {
	s := NewSession(DefaultConfig(), testCatalog(), 1, WithLoadingGate())
	require.Equal(t, PhaseLoading, s.Phase())

	assert.Empty(t, s.Advance(1.0/60, Input{Fire: true}))
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.Zero(t, s.Tick())

	s.Reset()
	assert.Equal(t, PhaseLoading, s.Phase(), "reset keeps the gate closed")

	s.FinishLoading()
	require.Equal(t, PhaseReady, s.Phase())
	s.Advance(1.0/60, Input{Fire: true})
	assert.Equal(t, PhaseFiring, s.Phase())

	s.FinishLoading()
	assert.Equal(t, PhaseFiring, s.Phase())
}

func TestClearingBoardEndsInClear(t *testing.T) {
	cfg := testConfig(6, 3)
	b := parseBoard(t, 6, 3, "r r .")
	s := sessionWithBoard(cfg, b)

	evs := fireAndLand(t, s, "red")

	assert.Equal(t, PhaseClear, s.Phase())
	assert.True(t, s.Board().IsEmpty())
	assert.Equal(t, 3*cfg.PointsPerPiece, s.Score())
	assert.Equal(t, 3, CountKind(evs, EventRemoved))

	var phases []Phase
	for _, ev := range evs {
		if ev.Kind == EventPhase {
			phases = append(phases, ev.Phase)
		}
	}
	assert.Equal(t, []Phase{PhaseFiring, PhaseClear}, phases)

	evs = s.Advance(1.0/60, Input{Fire: true})
	assert.Empty(t, evs, "terminal phase ignores fire")

	s.Advance(1.0/60, Input{Retry: true})
	assert.Equal(t, PhaseReady, s.Phase())
	assert.Zero(t, s.Score())
}

func TestLandingEmitsHitAndClearSounds(t *testing.T) {
	cfg := testConfig(6, 3)
	s := sessionWithBoard(cfg, parseBoard(t, 6, 3, "r r g"))

	evs := fireAndLand(t, s, "red")
	var kinds []SoundKind
	for _, ev := range Sounds(evs) {
		kinds = append(kinds, ev.Sound)
	}
	assert.Equal(t, []SoundKind{SoundShot, SoundFireVoice, SoundHit, SoundClearVoice}, kinds)
}

func TestCeilingDropsEveryInterval(t *testing.T) {
	cfg := testConfig(13, 8)
	cfg.DropInterval = 3
	s := sessionWithBoard(cfg, parseBoard(t, 13, 8, "r r r r r r r r"))
	rowH := s.Layout().RowHeight

	fireAndLand(t, s, "green")
	fireAndLand(t, s, "blue")
	assert.Zero(t, s.CeilingOffset())
	assert.Equal(t, 1, s.ShotsUntilDrop())

	evs := fireAndLand(t, s, "green")
	assert.Equal(t, 1, CountKind(evs, EventCeilingDrop))
	assert.Equal(t, rowH, s.CeilingOffset(), "exactly one row height")

	fireAndLand(t, s, "blue")
	assert.Equal(t, rowH, s.CeilingOffset())
	assert.Equal(t, 4, s.Shots())
	assert.Equal(t, PhaseReady, s.Phase())
}

func TestLossWhenRowsCrossLossLine(t *testing.T) {
	cfg := testConfig(6, 4)
	cfg.DropInterval = 1
	b := NewBoard(6, 4)
	for r := 0; r < 6; r++ {
		b.Place(At(r, 0), Piece{Type: "red"})
		b.Place(At(r, 3), Piece{Type: "green"})
	}
	s := sessionWithBoard(cfg, b)

	fireAndLand(t, s, "blue")
	assert.Equal(t, PhaseOver, s.Phase())
}

func TestBoardFullEndsGame(t *testing.T) {
	cfg := testConfig(3, 3)
	s := sessionWithBoard(cfg, parseBoard(t, 3, 3, "r g b", "g b r", "b r g"))

	s.Advance(0, Input{Fire: true})
	s.projectile.Y = s.layout.Top + s.layout.Radius + 1
	s.Advance(1.0/60, Input{})

	assert.Equal(t, PhaseOver, s.Phase())
	_, inFlight := s.Projectile()
	assert.False(t, inFlight)
}

func TestMissedShotReturnsToReady(t *testing.T) {
	s := NewSession(testConfig(6, 4), testCatalog(), 1)
	s.Advance(0, Input{Fire: true})
	s.projectile.VY = -s.projectile.VY

	var evs []Event
	for i := 0; i < 10 && s.Phase() == PhaseFiring; i++ {
		evs = append(evs, s.Advance(1.0/60, Input{})...)
	}
	assert.Equal(t, PhaseReady, s.Phase())
	assert.Equal(t, 1, CountKind(evs, EventMissed))
	assert.Zero(t, s.Shots())
}

func TestSessionsAreDeterministic(t *testing.T) {
	run := func() Snapshot {
		s := NewSession(DefaultConfig(), DefaultCatalog(), 2024)
		for i := 0; i < 600; i++ {
			in := Input{}
			switch {
			case i%45 == 0:
				in.Fire = true
			case i%7 == 0:
				in.Rotate = 0.05 * float64(i%3-1)
			}
			s.Advance(1.0/60, in)
		}
		return s.Snapshot()
	}
	assert.Equal(t, run(), run())
}

func TestFrameIsACopy(t *testing.T) {
	s := NewSession(DefaultConfig(), testCatalog(), 1)
	s.Advance(0, Input{Fire: true})
	f := s.Frame()

	require.NotNil(t, f.Projectile)
	f.Projectile.X = -100
	f.Board.Remove(At(0, 0))

	p, _ := s.Projectile()
	assert.NotEqual(t, -100.0, p.X)
	assert.True(t, s.Board().Occupied(At(0, 0)))
	assert.Equal(t, PhaseFiring, f.Phase)
}
