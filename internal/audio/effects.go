package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a wave whose frequency slides linearly from
// freqFrom to freqTo over its duration.
type oscillator struct {
	freqFrom float64
	freqTo   float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a constant-pitch oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding between two pitches.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freqFrom: from,
		freqTo:   to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(1)),
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

		t := float64(o.position) / float64(o.duration)
		freq := o.freqFrom + (o.freqTo-o.freqFrom)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := max(e.totalSamples-e.releaseSamples, e.attackSamples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. math.Log2(0) is -Inf, so zero is silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// shaped is an oscillator with its envelope.
func shaped(from, to float64, wave WaveType, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewSweep(from, to, d, wave, rate), d, attack, release, rate)
}

// synthesize builds the built-in sound for a cue.
func synthesize(c Cue, rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueWing:
		// Short upward chirp.
		return newVolume(shaped(520, 880, WaveSine, 70*time.Millisecond, 5*time.Millisecond, 40*time.Millisecond, rate), 0.5)
	case CuePoint:
		// Two-note chime.
		n1 := shaped(987.77, 987.77, WaveSquare, 70*time.Millisecond, 2*time.Millisecond, 20*time.Millisecond, rate)
		n2 := shaped(1318.51, 1318.51, WaveSquare, 160*time.Millisecond, 2*time.Millisecond, 120*time.Millisecond, rate)
		return newVolume(beep.Seq(n1, n2), 0.25)
	case CueHit:
		noise := shaped(0, 0, WaveNoise, 90*time.Millisecond, time.Millisecond, 70*time.Millisecond, rate)
		thud := shaped(140, 90, WaveSquare, 90*time.Millisecond, time.Millisecond, 60*time.Millisecond, rate)
		return newVolume(beep.Mix(newVolume(noise, 0.6), newVolume(thud, 0.4)), 0.5)
	case CueDie:
		// Falling tone.
		return newVolume(shaped(440, 110, WaveSquare, 420*time.Millisecond, 5*time.Millisecond, 150*time.Millisecond, rate), 0.25)
	case CueSwoosh:
		return newVolume(shaped(0, 0, WaveNoise, 220*time.Millisecond, 90*time.Millisecond, 120*time.Millisecond, rate), 0.3)
	default:
		return nil
	}
}
