package core

// SoundSink plays sound cues. Implementations decide playback and
// availability; a missing sound never affects the simulation.
type SoundSink interface {
	RequestSound(kind SoundKind, t TypeID)
}

// FrameRenderer draws a frame snapshot. The frame owns a private copy of
// the board, so renderers may keep it between calls.
type FrameRenderer interface {
	RenderFrame(f Frame)
}

// NopSink discards sound requests.
type NopSink struct{}

// RequestSound implements SoundSink.
func (NopSink) RequestSound(SoundKind, TypeID) {}

// Driver advances a session and forwards its side effects to collaborators.
type Driver struct {
	Session  *Session
	Sound    SoundSink
	Renderer FrameRenderer
	Recorder *Recorder
}

// NewDriver wires a session to its collaborators. Nil collaborators are skipped.
func NewDriver(s *Session, sound SoundSink, renderer FrameRenderer) *Driver {
	return &Driver{Session: s, Sound: sound, Renderer: renderer}
}

// Step advances the session once, dispatches sound events, renders the
// resulting frame and returns the events.
func (d *Driver) Step(dt float64, in Input) []Event {
	if d.Recorder != nil && d.Session.Phase() != PhaseLoading {
		d.Recorder.Record(d.Session.Tick()+1, in)
	}
	evs := d.Session.Advance(dt, in)
	if d.Sound != nil {
		for _, ev := range evs {
			if ev.Kind == EventSound {
				d.Sound.RequestSound(ev.Sound, ev.Type)
			}
		}
	}
	if d.Renderer != nil {
		d.Renderer.RenderFrame(d.Session.Frame())
	}
	return evs
}
