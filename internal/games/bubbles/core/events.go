package core

// Phase is the state of a session's turn cycle.
type Phase string

const (
	PhaseLoading Phase = "loading" // Waiting for assets; fire is ignored
	PhaseReady   Phase = "ready"   // Awaiting aim and fire
	PhaseFiring  Phase = "firing"  // Projectile in flight
	PhasePaused  Phase = "paused"
	PhaseOver    Phase = "over"  // Lost, terminal until retry
	PhaseClear   Phase = "clear" // Won, terminal until retry
)

// Terminal reports whether the phase ends a game.
func (p Phase) Terminal() bool {
	return p == PhaseOver || p == PhaseClear
}

// SoundKind names a sound cue requested from the audio collaborator.
type SoundKind string

const (
	SoundShot       SoundKind = "shot"
	SoundHit        SoundKind = "hit"
	SoundFireVoice  SoundKind = "fire-voice"
	SoundClearVoice SoundKind = "clear-voice"
)

// EventKind identifies what happened during Advance.
type EventKind int

const (
	EventSound       EventKind = iota // Sound cue request
	EventFired                        // Projectile spawned
	EventBounced                      // Projectile reflected off a wall
	EventPlaced                       // Projectile snapped into a cell
	EventRemoved                      // Piece cleared from the board
	EventCeilingDrop                  // Ceiling moved down one row
	EventMissed                       // Projectile left the playfield
	EventPhase                        // Phase changed
)

func (k EventKind) String() string {
	switch k {
	case EventSound:
		return "sound"
	case EventFired:
		return "fired"
	case EventBounced:
		return "bounced"
	case EventPlaced:
		return "placed"
	case EventRemoved:
		return "removed"
	case EventCeilingDrop:
		return "ceiling-drop"
	case EventMissed:
		return "missed"
	case EventPhase:
		return "phase"
	default:
		return "unknown"
	}
}

// Event is a declarative side effect emitted by the session.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind  EventKind
	Sound SoundKind
	Type  TypeID
	At    Coord
	Cause RemovalCause
	Phase Phase
}

// Sounds returns the sound events of evs in order.
func Sounds(evs []Event) []Event {
	var out []Event
	for _, ev := range evs {
		if ev.Kind == EventSound {
			out = append(out, ev)
		}
	}
	return out
}

// CountKind returns the number of events of the given kind.
func CountKind(evs []Event, kind EventKind) int {
	n := 0
	for _, ev := range evs {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
