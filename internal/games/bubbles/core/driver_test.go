package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type soundCall struct {
	kind SoundKind
	typ  TypeID
}

type fakeSink struct {
	calls []soundCall
}

func (f *fakeSink) RequestSound(kind SoundKind, t TypeID) {
	f.calls = append(f.calls, soundCall{kind, t})
}

type fakeRenderer struct {
	frames []Frame
}

func (f *fakeRenderer) RenderFrame(fr Frame) {
	f.frames = append(f.frames, fr)
}

func TestDriverDispatchesSoundsAndFrames(t *testing.T) {
	s := NewSession(DefaultConfig(), testCatalog(), 8)
	sink := &fakeSink{}
	renderer := &fakeRenderer{}
	d := NewDriver(s, sink, renderer)

	fired := s.Queue().Current
	d.Step(1.0/60, Input{Fire: true})
	d.Step(1.0/60, Input{})

	assert.Equal(t, []soundCall{{SoundShot, fired}, {SoundFireVoice, fired}}, sink.calls)
	require.Len(t, renderer.frames, 2)
	assert.Equal(t, PhaseFiring, renderer.frames[0].Phase)
	assert.Equal(t, uint64(2), renderer.frames[1].Tick)
}

func TestDriverWithoutCollaborators(t *testing.T) {
	d := NewDriver(NewSession(DefaultConfig(), testCatalog(), 8), nil, nil)
	assert.NotPanics(t, func() {
		d.Step(1.0/60, Input{Fire: true})
	})
	NopSink{}.RequestSound(SoundHit, "red")
}

func TestDriverRecordsAfterLoading(t *testing.T) {
	s := NewSession(DefaultConfig(), testCatalog(), 8, WithLoadingGate())
	d := NewDriver(s, NopSink{}, nil)
	d.Recorder = NewRecorder(8, 1.0/60)

	d.Step(1.0/60, Input{Fire: true})
	assert.Zero(t, d.Recorder.Len(), "inputs during loading do nothing and are not recorded")

	s.FinishLoading()
	d.Step(1.0/60, Input{})
	d.Step(1.0/60, Input{Fire: true})
	require.Equal(t, 1, d.Recorder.Len())
	assert.Equal(t, uint64(2), d.Recorder.Inputs[0].Tick)
}
