package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	fireDuration  = 120 * time.Millisecond
	hitDuration   = 350 * time.Millisecond
	missDuration  = 200 * time.Millisecond
	chimeBaseFreq = 523.25 // C5
)

// tone is a decaying sine that glides linearly from one frequency to another.
type tone struct {
	rate     beep.SampleRate
	from, to float64
	decay    float64
	phase    float64
	pos      int
	total    int
}

func newTone(rate beep.SampleRate, from, to float64, d time.Duration, decay float64) *tone {
	return &tone{rate: rate, from: from, to: to, decay: decay, total: rate.N(d)}
}

func (g *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		progress := float64(g.pos) / float64(g.total)
		freq := g.from + (g.to-g.from)*progress
		t := float64(g.pos) / float64(g.rate)
		v := math.Exp(-t*g.decay) * math.Sin(2*math.Pi*g.phase)

		samples[i][0] = v
		samples[i][1] = v
		g.phase += freq / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *tone) Err() error { return nil }

// thump is low-passed noise over a short rumble.
type thump struct {
	rate  beep.SampleRate
	seed  uint32
	last  float64
	pos   int
	total int
}

func newThump(rate beep.SampleRate, d time.Duration) *thump {
	return &thump{rate: rate, seed: 0x9e3779b9, total: rate.N(d)}
}

func (g *thump) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.rate)
		g.seed = g.seed*1664525 + 1013904223
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1
		g.last += 0.2 * (noise - g.last)
		v := math.Exp(-t*18) * (0.6*g.last + 0.4*math.Sin(2*math.Pi*70*t))

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *thump) Err() error { return nil }

// withVolume scales s by a linear gain; zero or less is silent.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// fireSound is the bowstring twang: a fast downward glide.
func fireSound(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		withVolume(newTone(rate, 330, 110, fireDuration, 25), 0.7),
		withVolume(newThump(rate, fireDuration/2), 0.3),
	)
}

// hitSound is a two-partial chime pitched up one semitone per score point.
func hitSound(rate beep.SampleRate, value int) beep.Streamer {
	f := chimeFrequency(value)
	return beep.Mix(
		withVolume(newTone(rate, f, f, hitDuration, 9), 0.7),
		withVolume(newTone(rate, 2*f, 2*f, hitDuration, 14), 0.3),
	)
}

func missSound(rate beep.SampleRate) beep.Streamer {
	return newThump(rate, missDuration)
}

func chimeFrequency(value int) float64 {
	if value < 0 {
		value = 0
	}
	return chimeBaseFreq * math.Pow(2, float64(value)/12)
}
