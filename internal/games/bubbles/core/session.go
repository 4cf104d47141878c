package core

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
)

// Shooter is the fixed emitter at the bottom of the playfield.
// Angle is measured from the positive x axis, counterclockwise, in radians;
// pi/2 points straight up.
type Shooter struct {
	X, Y  float64
	Angle float64
}

// DefaultAngle is the straight-up aim.
const DefaultAngle = math.Pi / 2

// Queue holds the piece about to be fired and the one after it.
type Queue struct {
	Current TypeID
	Next    TypeID
}

// Input is everything a caller can feed into one Advance call.
type Input struct {
	Point  bool    // PointX/PointY hold an absolute aim target
	PointX float64 // Playfield x of the aim target
	PointY float64 // Playfield y of the aim target
	Rotate float64 // Relative aim rotation, radians; positive turns left
	Fire   bool
	Pause  bool // Toggle pause
	Retry  bool // Start a new game
}

// Empty reports whether the input carries nothing.
func (in Input) Empty() bool {
	return !in.Point && in.Rotate == 0 && !in.Fire && !in.Pause && !in.Retry
}

// Option configures a new session.
type Option func(*Session)

// WithLoadingGate starts the session in the loading phase.
// FinishLoading releases it.
func WithLoadingGate() Option {
	return func(s *Session) {
		s.phase = PhaseLoading
	}
}

// Session is one game: board, shooter, queue and the in-flight projectile.
// Advance is the only operation that changes game state once running.
// A Session is not safe for concurrent use.
type Session struct {
	cfg     Config
	layout  Layout
	catalog Catalog
	rules   Rules
	seed    int64
	rng     *rand.Rand

	board      *Board
	phase      Phase
	resume     Phase // Phase restored when unpausing
	skipDt     bool  // Next running tick uses dt = 0
	offset     float64
	shooter    Shooter
	queue      Queue
	projectile *Projectile

	tick  uint64
	shots int
	score int
}

// NewSession creates a session ready to play. An empty catalog is replaced
// by the fallback type.
func NewSession(cfg Config, catalog Catalog, seed int64, opts ...Option) *Session {
	cfg = cfg.Normalized()
	if len(catalog) == 0 {
		catalog = FallbackCatalog()
	}
	s := &Session{
		cfg:     cfg,
		layout:  NewLayout(cfg),
		catalog: catalog,
		rules:   Rules{ClearThreshold: cfg.ClearThreshold, Catalog: catalog},
		seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
	}
	s.reset()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// reset starts a new game on the current random stream.
func (s *Session) reset() {
	s.board = NewBoard(s.cfg.Rows, s.cfg.Cols)
	s.stock()
	s.offset = 0
	s.shots = 0
	s.score = 0
	s.projectile = nil
	s.skipDt = false
	s.shooter = Shooter{X: s.layout.ShooterX, Y: s.layout.ShooterY, Angle: DefaultAngle}
	s.queue = Queue{
		Current: Draw(s.rng, s.board, s.catalog),
		Next:    Draw(s.rng, s.board, s.catalog),
	}
	s.phase = PhaseReady
}

// stock fills the initial rows uniformly from the ordinary piece types.
func (s *Session) stock() {
	var ids []TypeID
	for _, pt := range s.catalog {
		if !pt.Bonus {
			ids = append(ids, pt.ID)
		}
	}
	if len(ids) == 0 {
		ids = s.catalog.IDs()
	}
	for row := 0; row < s.cfg.InitialRows; row++ {
		for col := 0; col < s.cfg.Cols; col++ {
			s.board.Place(Coord{Row: row, Col: col}, Piece{Type: ids[s.rng.Intn(len(ids))]})
		}
	}
}

// Reset starts a new game. It is safe in any phase; a projectile in flight
// is discarded without snapping. A session still loading stays loading.
func (s *Session) Reset() {
	loading := s.phase == PhaseLoading
	s.reset()
	if loading {
		s.phase = PhaseLoading
	}
}

// FinishLoading moves a loading session to ready. It has no effect otherwise.
func (s *Session) FinishLoading() {
	if s.phase == PhaseLoading {
		s.phase = PhaseReady
	}
}

// Advance runs one tick of dt seconds with the given input and returns the
// events it produced. dt is clamped to [0, MaxStep]; the first running tick
// after unpausing integrates nothing. A loading session ignores all input
// and does not count ticks.
func (s *Session) Advance(dt float64, in Input) []Event {
	if s.phase == PhaseLoading {
		return nil
	}
	s.tick++
	var evs []Event

	if in.Retry {
		s.reset()
		return append(evs, Event{Kind: EventPhase, Phase: s.phase})
	}

	if in.Pause {
		switch s.phase {
		case PhaseReady, PhaseFiring:
			s.resume = s.phase
			s.phase = PhasePaused
			return append(evs, Event{Kind: EventPhase, Phase: s.phase})
		case PhasePaused:
			s.phase = s.resume
			s.skipDt = true
			evs = append(evs, Event{Kind: EventPhase, Phase: s.phase})
		}
	}

	if s.phase != PhaseReady && s.phase != PhaseFiring {
		return evs
	}

	if in.Point {
		s.AimAt(in.PointX, in.PointY)
	}
	if in.Rotate != 0 {
		s.Rotate(in.Rotate)
	}

	dt = s.clampDt(dt)

	if in.Fire && s.phase == PhaseReady {
		evs = s.fire(evs)
	}
	if s.phase == PhaseFiring {
		evs = s.fly(dt, evs)
	}
	return evs
}

func (s *Session) clampDt(dt float64) float64 {
	if s.skipDt {
		s.skipDt = false
		return 0
	}
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	if dt > s.cfg.MaxStep {
		return s.cfg.MaxStep
	}
	return dt
}

// AimAt points the shooter at a playfield position. A point at the shooter
// gives the straight-up aim, a point at or below it the nearest allowed
// angle on that side. Non-finite coordinates are ignored.
func (s *Session) AimAt(x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	dx := x - s.shooter.X
	dy := s.shooter.Y - y
	switch {
	case dx == 0 && dy == 0:
		s.shooter.Angle = DefaultAngle
	case dy <= 0 && dx >= 0:
		s.shooter.Angle = s.cfg.MinAngle
	case dy <= 0:
		s.shooter.Angle = math.Pi - s.cfg.MinAngle
	default:
		s.shooter.Angle = s.clampAngle(math.Atan2(dy, dx))
	}
}

// Rotate turns the aim by delta radians, positive to the left.
func (s *Session) Rotate(delta float64) {
	if !finite(delta) {
		return
	}
	s.shooter.Angle = s.clampAngle(s.shooter.Angle + delta)
}

func (s *Session) clampAngle(a float64) float64 {
	lo, hi := s.cfg.MinAngle, math.Pi-s.cfg.MinAngle
	if a < lo {
		return lo
	}
	if a > hi {
		return hi
	}
	return a
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (s *Session) fire(evs []Event) []Event {
	fired := s.queue.Current
	a := s.shooter.Angle
	s.projectile = &Projectile{
		X:    s.shooter.X,
		Y:    s.shooter.Y,
		VX:   s.cfg.ShotSpeed * math.Cos(a),
		VY:   -s.cfg.ShotSpeed * math.Sin(a),
		Type: fired,
	}
	s.queue.Current = s.queue.Next
	s.queue.Next = Draw(s.rng, s.board, s.catalog)
	s.phase = PhaseFiring

	return append(evs,
		Event{Kind: EventFired, Type: fired},
		Event{Kind: EventSound, Sound: SoundShot, Type: fired},
		Event{Kind: EventSound, Sound: SoundFireVoice, Type: fired},
		Event{Kind: EventPhase, Phase: s.phase},
	)
}

func (s *Session) fly(dt float64, evs []Event) []Event {
	flight := s.projectile.Advance(dt, s.layout, s.board, s.offset)
	for i := 0; i < flight.Bounces; i++ {
		evs = append(evs, Event{Kind: EventBounced, Type: s.projectile.Type})
	}

	switch flight.Contact {
	case ContactNone:
		return evs
	case ContactOut:
		evs = append(evs, Event{Kind: EventMissed, Type: s.projectile.Type})
		s.projectile = nil
		s.phase = PhaseReady
		return append(evs, Event{Kind: EventPhase, Phase: s.phase})
	default:
		return s.land(flight.Contact == ContactCeiling, evs)
	}
}

// land snaps the projectile, resolves clears and falls, then evaluates
// ceiling drop and terminal conditions.
func (s *Session) land(ceiling bool, evs []Event) []Event {
	p := s.projectile
	s.projectile = nil

	target, err := SnapTarget(s.layout, s.board, p.X, p.Y, s.offset, ceiling)
	if err != nil {
		s.phase = PhaseOver
		return append(evs, Event{Kind: EventPhase, Phase: s.phase})
	}

	s.board.Place(target, Piece{Type: p.Type})
	evs = append(evs,
		Event{Kind: EventPlaced, Type: p.Type, At: target},
		Event{Kind: EventSound, Sound: SoundHit, Type: p.Type},
	)

	res := Resolve(s.board, target, s.rules)
	for _, rm := range res.Removals {
		evs = append(evs, Event{Kind: EventRemoved, Type: rm.Piece.Type, At: rm.At, Cause: rm.Cause})
	}
	if res.Count() > 0 {
		s.score += res.Count() * s.cfg.PointsPerPiece
		evs = append(evs, Event{Kind: EventSound, Sound: SoundClearVoice, Type: p.Type})
	}

	s.shots++
	if s.shots%s.cfg.DropInterval == 0 {
		s.offset += s.layout.RowHeight
		evs = append(evs, Event{Kind: EventCeilingDrop})
	}

	switch {
	case s.board.IsEmpty():
		s.phase = PhaseClear
	case s.crossedLossLine():
		s.phase = PhaseOver
	default:
		s.phase = PhaseReady
	}
	return append(evs, Event{Kind: EventPhase, Phase: s.phase})
}

// crossedLossLine reports whether the lowest occupied row reaches the loss line.
func (s *Session) crossedLossLine() bool {
	row := s.board.LowestOccupiedRow()
	if row < 0 {
		return false
	}
	_, y := s.layout.CellCenter(row, 0, s.offset)
	return y+s.layout.Radius > s.layout.LossLine
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Shots returns the number of shots landed this game.
func (s *Session) Shots() int { return s.shots }

// CeilingOffset returns the current ceiling displacement in pixels.
func (s *Session) CeilingOffset() float64 { return s.offset }

// Shooter returns the shooter state.
func (s *Session) Shooter() Shooter { return s.shooter }

// Queue returns the upcoming pieces.
func (s *Session) Queue() Queue { return s.queue }

// Layout returns the playfield geometry.
func (s *Session) Layout() Layout { return s.layout }

// Catalog returns the piece types of this session.
func (s *Session) Catalog() Catalog { return s.catalog }

// Config returns the normalized session config.
func (s *Session) Config() Config { return s.cfg }

// Seed returns the seed the session was created with.
func (s *Session) Seed() int64 { return s.seed }

// Tick returns the number of Advance calls made after loading.
func (s *Session) Tick() uint64 { return s.tick }

// Board returns a copy of the board.
func (s *Session) Board() *Board { return s.board.Clone() }

// Projectile returns a copy of the projectile in flight, if any.
func (s *Session) Projectile() (Projectile, bool) {
	if s.projectile == nil {
		return Projectile{}, false
	}
	return *s.projectile, true
}

// ShotsUntilDrop returns how many landed shots remain before the ceiling drops.
func (s *Session) ShotsUntilDrop() int {
	return s.cfg.DropInterval - s.shots%s.cfg.DropInterval
}

// Frame is a read-only snapshot for renderers.
type Frame struct {
	Layout         Layout
	Catalog        Catalog
	Board          *Board
	CeilingOffset  float64
	Shooter        Shooter
	Projectile     *Projectile
	Queue          Queue
	Phase          Phase
	Score          int
	Shots          int
	ShotsUntilDrop int
	Tick           uint64
}

// Frame returns a snapshot of everything a renderer needs.
func (s *Session) Frame() Frame {
	f := Frame{
		Layout:         s.layout,
		Catalog:        s.catalog,
		Board:          s.board.Clone(),
		CeilingOffset:  s.offset,
		Shooter:        s.shooter,
		Queue:          s.queue,
		Phase:          s.phase,
		Score:          s.score,
		Shots:          s.shots,
		ShotsUntilDrop: s.ShotsUntilDrop(),
		Tick:           s.tick,
	}
	if s.projectile != nil {
		p := *s.projectile
		f.Projectile = &p
	}
	return f
}

// Snapshot captures the session state for determinism testing and replay.
type Snapshot struct {
	Tick          uint64
	Phase         Phase
	Score         int
	Shots         int
	Pieces        int
	CeilingOffset float64
	Angle         float64
	Queue         Queue
	InFlight      bool
	BoardHash     uint64
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Tick:          s.tick,
		Phase:         s.phase,
		Score:         s.score,
		Shots:         s.shots,
		Pieces:        s.board.Count(),
		CeilingOffset: s.offset,
		Angle:         s.shooter.Angle,
		Queue:         s.queue,
		InFlight:      s.projectile != nil,
		BoardHash:     s.board.Hash(),
	}
}

// Hash returns a hash of the full session state.
func (s *Session) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "B:%d;", s.board.Hash())
	fmt.Fprintf(h, "P:%s;S:%d;N:%d;O:%.6f;A:%.6f;", s.phase, s.score, s.shots, s.offset, s.shooter.Angle)
	fmt.Fprintf(h, "Q:%s,%s;", s.queue.Current, s.queue.Next)
	if s.projectile != nil {
		p := s.projectile
		fmt.Fprintf(h, "F:%.6f,%.6f,%.6f,%.6f,%s;", p.X, p.Y, p.VX, p.VY, p.Type)
	}
	fmt.Fprintf(h, "T:%d", s.tick)
	return h.Sum64()
}
