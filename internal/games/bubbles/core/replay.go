package core

import "fmt"

// InputRecord is one recorded non-empty input and the tick it was applied on.
type InputRecord struct {
	Tick  uint64 `msgpack:"t"`
	Input Input  `msgpack:"i"`
}

// Recorder collects the inputs of a session for deterministic replay.
// Replays always run at the fixed step Dt.
type Recorder struct {
	Seed   int64
	Dt     float64
	Inputs []InputRecord
}

// NewRecorder creates a recorder for a session started with seed and
// advanced at the fixed step dt.
func NewRecorder(seed int64, dt float64) *Recorder {
	return &Recorder{Seed: seed, Dt: dt}
}

// Record stores in if it carries anything.
func (r *Recorder) Record(tick uint64, in Input) {
	if in.Empty() {
		return
	}
	r.Inputs = append(r.Inputs, InputRecord{Tick: tick, Input: in})
}

// Reset clears recorded inputs and starts over with seed.
func (r *Recorder) Reset(seed int64) {
	r.Seed = seed
	r.Inputs = r.Inputs[:0]
}

// Len returns the number of recorded inputs.
func (r *Recorder) Len() int {
	return len(r.Inputs)
}

// Replay re-simulates a recorded game on a fresh session for ticks ticks and
// returns it. Inputs must be in tick order.
func Replay(cfg Config, catalog Catalog, seed int64, dt float64, inputs []InputRecord, ticks uint64) (*Session, error) {
	s := NewSession(cfg, catalog, seed)
	next := 0
	for t := uint64(1); t <= ticks; t++ {
		var in Input
		if next < len(inputs) {
			rec := inputs[next]
			if rec.Tick < t {
				return nil, fmt.Errorf("replay: input %d at tick %d is out of order", next, rec.Tick)
			}
			if rec.Tick == t {
				in = rec.Input
				next++
			}
		}
		s.Advance(dt, in)
	}
	if next < len(inputs) {
		return nil, fmt.Errorf("replay: %d inputs after final tick %d", len(inputs)-next, ticks)
	}
	return s, nil
}
