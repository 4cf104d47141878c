package bubbles

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles/core"
	"github.com/vovakirdan/bubble-arcade/internal/storage"
)

const replayVersion = 1

var (
	// ErrReplayMismatch means a replay did not reproduce its recorded state.
	ErrReplayMismatch = errors.New("bubbles: replay does not reproduce recorded state")
	// ErrNoSession means the game has not been reset yet.
	ErrNoSession = errors.New("bubbles: no session")
)

// ReplayLog is the payload of a stored replay: everything needed to
// re-simulate the game apart from the seed and tick count.
type ReplayLog struct {
	Version int                `msgpack:"v"`
	Config  core.Config        `msgpack:"cfg"`
	Catalog core.Catalog       `msgpack:"cat"`
	Dt      float64            `msgpack:"dt"`
	Inputs  []core.InputRecord `msgpack:"in"`
}

// EncodeReplay serializes a replay log.
func EncodeReplay(l ReplayLog) ([]byte, error) {
	data, err := msgpack.Marshal(&l)
	if err != nil {
		return nil, fmt.Errorf("bubbles: encode replay: %w", err)
	}
	return data, nil
}

// DecodeReplay parses a replay log.
func DecodeReplay(data []byte) (ReplayLog, error) {
	var l ReplayLog
	if err := msgpack.Unmarshal(data, &l); err != nil {
		return ReplayLog{}, fmt.Errorf("bubbles: decode replay: %w", err)
	}
	if l.Version != replayVersion {
		return ReplayLog{}, fmt.Errorf("bubbles: unsupported replay version %d", l.Version)
	}
	return l, nil
}

// Replay packages the current game for storage.
func (g *Game) Replay() (storage.Replay, error) {
	if g.session == nil {
		return storage.Replay{}, ErrNoSession
	}
	return BuildReplay(g.session, g.recorder)
}

// BuildReplay packages a session and the inputs recorded for it.
func BuildReplay(s *core.Session, rec *core.Recorder) (storage.Replay, error) {
	if s == nil || rec == nil {
		return storage.Replay{}, ErrNoSession
	}
	data, err := EncodeReplay(ReplayLog{
		Version: replayVersion,
		Config:  s.Config(),
		Catalog: s.Catalog(),
		Dt:      rec.Dt,
		Inputs:  rec.Inputs,
	})
	if err != nil {
		return storage.Replay{}, err
	}
	return storage.Replay{
		GameID:    GameID,
		Seed:      rec.Seed,
		Ticks:     s.Tick(),
		Score:     s.Score(),
		Outcome:   string(s.Phase()),
		StateHash: s.Hash(),
		Data:      data,
	}, nil
}

// VerifyReplay re-simulates a stored replay and checks that it ends in the
// recorded state. The final snapshot is returned either way when the
// simulation itself succeeded.
func VerifyReplay(r storage.Replay) (core.Snapshot, error) {
	if r.GameID != GameID {
		return core.Snapshot{}, fmt.Errorf("bubbles: replay belongs to %q", r.GameID)
	}
	l, err := DecodeReplay(r.Data)
	if err != nil {
		return core.Snapshot{}, err
	}
	s, err := core.Replay(l.Config, l.Catalog, r.Seed, l.Dt, l.Inputs, r.Ticks)
	if err != nil {
		return core.Snapshot{}, err
	}
	snap := s.Snapshot()
	if s.Hash() != r.StateHash {
		return snap, ErrReplayMismatch
	}
	return snap, nil
}
