package term

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate is the rate every cue is rendered at.
const SampleRate = beep.SampleRate(44100)

const (
	chimeDuration = 180 * time.Millisecond
	blipDuration  = 40 * time.Millisecond
)

// chime is a sine tone with an exponential decay.
type chime struct {
	freq     float64
	phase    float64
	decay    float64
	gain     float64
	position int
	length   int
	rate     beep.SampleRate
}

// NewChime returns a decaying sine at freq lasting d.
func NewChime(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	n := rate.N(d)
	decay := 1.0
	if n > 0 {
		// Reach about -40 dB at the end of the tone.
		decay = math.Pow(0.01, 1/float64(n))
	}
	return &chime{freq: freq, decay: decay, gain: 1, length: n, rate: rate}
}

func (c *chime) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if c.position >= c.length {
			return i, i > 0
		}
		v := c.gain * math.Sin(2*math.Pi*c.phase)
		samples[i][0] = v
		samples[i][1] = v
		c.phase += c.freq / float64(c.rate)
		c.phase -= math.Floor(c.phase)
		c.gain *= c.decay
		c.position++
	}
	return len(samples), true
}

func (c *chime) Err() error { return nil }

// MergeCue is played when bodies fuse. Each extra merge in the same tick
// raises the pitch by a fifth, capped at two octaves.
func MergeCue(merges int, volume float64) beep.Streamer {
	if merges < 1 {
		merges = 1
	}
	freq := 523.25 * math.Pow(1.5, float64(min(merges-1, 3)))
	tone := NewChime(freq, chimeDuration, SampleRate)
	over := NewChime(freq*2, chimeDuration/2, SampleRate)
	return withVolume(beep.Mix(withVolume(tone, 0.7), withVolume(over, 0.3)), volume)
}

// CaptureCue is a short low blip for bodies swallowed by the anchor.
func CaptureCue(volume float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(SampleRate, 220)
	if err != nil {
		return nil, err
	}
	return withVolume(beep.Take(SampleRate.N(blipDuration), sine), volume), nil
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
