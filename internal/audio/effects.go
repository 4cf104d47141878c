package audio

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles/core"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Cue durations.
const (
	shotDuration  = 90 * time.Millisecond
	hitDuration   = 60 * time.Millisecond
	voiceDuration = 180 * time.Millisecond
	clearDuration = 320 * time.Millisecond
)

// oscillator generates a raw wave, optionally sweeping its frequency.
type oscillator struct {
	freq     float64
	sweep    float64 // Frequency change per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a fixed-frequency oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return newSweep(freq, 0, duration, wave, rate)
}

func newSweep(freq, sweep float64, duration time.Duration, wave WaveType, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:     freq,
		sweep:    sweep,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.rate)
		freq := o.freq + o.sweep*t
		if freq < 0 {
			freq = 0
		}
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream.
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	totalSamples int
}

// NewEnvelope wraps s with an attack/release envelope.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:     s,
		attack:       rate.N(attack),
		release:      rate.N(release),
		totalSamples: rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.totalSamples - e.position; remaining < e.release && e.release > 0 {
			vol = math.Min(vol, float64(remaining)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. Zero volume is silent, since
// math.Log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// typePitch maps a piece type to a stable note between A4 and G#5.
func typePitch(t core.TypeID) float64 {
	h := fnv.New32a()
	h.Write([]byte(t))
	semitone := float64(h.Sum32() % 12)
	return 440 * math.Pow(2, semitone/12)
}

// Cue builds the streamer for a sound request at the given volume.
// Voices are pitched per piece type so each type sounds distinct.
func Cue(kind core.SoundKind, t core.TypeID, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch kind {
	case core.SoundShot:
		osc := newSweep(900, -4000, shotDuration, WaveSaw, rate)
		s = newVolume(NewEnvelope(osc, shotDuration, 5*time.Millisecond, 40*time.Millisecond, rate), 0.4)
	case core.SoundHit:
		noise := newSweep(1, 0, hitDuration, WaveNoise, rate)
		s = newVolume(NewEnvelope(noise, hitDuration, 2*time.Millisecond, 50*time.Millisecond, rate), 0.5)
	case core.SoundFireVoice:
		f := typePitch(t)
		osc := newSweep(f, f, voiceDuration, WaveSquare, rate)
		s = newVolume(NewEnvelope(osc, voiceDuration, 10*time.Millisecond, 80*time.Millisecond, rate), 0.2)
	case core.SoundClearVoice:
		f := typePitch(t)
		first := NewEnvelope(NewOscillator(f, clearDuration, WaveSine, rate), clearDuration, 5*time.Millisecond, 200*time.Millisecond, rate)
		second := NewEnvelope(NewOscillator(f*1.5, clearDuration, WaveSine, rate), clearDuration, 60*time.Millisecond, 200*time.Millisecond, rate)
		s = beep.Take(rate.N(clearDuration), beep.Mix(newVolume(first, 0.5), newVolume(second, 0.35)))
	default:
		return nil
	}
	return newVolume(s, volume)
}
