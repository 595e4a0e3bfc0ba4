package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const sampleRate = beep.SampleRate(44100)

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveSaw
	waveNoise
)

// note is one segment of a cue.
type note struct {
	freq float64
	dur  time.Duration
	wave wave
}

// tone renders a single note with a linear fade-out so segments do not click.
type tone struct {
	note
	phase float64
	pos   int
	total int
	rate  beep.SampleRate
}

func newTone(n note, rate beep.SampleRate) *tone {
	return &tone{note: n, total: rate.N(n.dur), rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case waveSquare:
			v = -1
			if t.phase < 0.5 {
				v = 1
			}
		case waveSaw:
			v = 2 * (t.phase - 0.5)
		case waveNoise:
			v = rand.Float64()*2 - 1
		}
		v *= 1 - float64(t.pos)/float64(t.total)

		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// score holds the notes of every cue.
var score = map[Cue][]note{
	CuePew: {
		{freq: 1320, dur: 30 * time.Millisecond, wave: waveSquare},
		{freq: 880, dur: 50 * time.Millisecond, wave: waveSquare},
	},
	CueExplode: {
		{dur: 250 * time.Millisecond, wave: waveNoise},
	},
	CueMove: {
		{freq: 98, dur: 70 * time.Millisecond, wave: waveSquare},
	},
	CueStartup: {
		{freq: 392, dur: 100 * time.Millisecond, wave: waveSine},
		{freq: 523, dur: 100 * time.Millisecond, wave: waveSine},
		{freq: 659, dur: 160 * time.Millisecond, wave: waveSine},
	},
	CueWin: {
		{freq: 523, dur: 120 * time.Millisecond, wave: waveSine},
		{freq: 659, dur: 120 * time.Millisecond, wave: waveSine},
		{freq: 784, dur: 120 * time.Millisecond, wave: waveSine},
		{freq: 1047, dur: 300 * time.Millisecond, wave: waveSine},
	},
	CueLose: {
		{freq: 392, dur: 180 * time.Millisecond, wave: waveSaw},
		{freq: 330, dur: 180 * time.Millisecond, wave: waveSaw},
		{freq: 262, dur: 400 * time.Millisecond, wave: waveSaw},
	},
}

// Duration returns how long a cue plays, 0 for an unknown cue.
func Duration(c Cue) time.Duration {
	var d time.Duration
	for _, n := range score[c] {
		d += n.dur
	}
	return d
}

// Synthesize builds the streamer for a cue at the given volume in [0, 1].
// Returns nil for an unknown cue.
func Synthesize(c Cue, volume float64, rate beep.SampleRate) beep.Streamer {
	notes, ok := score[c]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = newTone(n, rate)
	}
	return withVolume(beep.Seq(parts...), volume)
}

// withVolume scales a stream linearly. Volume 0 mutes it; log2(0) is -Inf.
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(min(volume, 1))}
}
