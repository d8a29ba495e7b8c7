package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// tone is a sine oscillator with a linear attack and release.
type tone struct {
	freq    float64
	phase   float64
	pos     int
	total   int
	attack  int
	release int
	rate    beep.SampleRate
}

func newTone(freq float64, d time.Duration, rate beep.SampleRate) *tone {
	total := rate.N(d)
	edge := min(rate.N(5*time.Millisecond), total/2)
	return &tone{freq: freq, total: total, attack: edge, release: edge, rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		vol := 1.0
		if t.attack > 0 && t.pos < t.attack {
			vol = float64(t.pos) / float64(t.attack)
		}
		if left := t.total - t.pos; t.release > 0 && left < t.release {
			vol = float64(left) / float64(t.release)
		}
		v := vol * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// note is one step of a cue. A zero frequency is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

var cueNotes = map[Cue][]note{
	CueUnlock:   {{523.25, 90 * time.Millisecond}, {659.25, 90 * time.Millisecond}, {783.99, 160 * time.Millisecond}},
	CueReject:   {{146.83, 120 * time.Millisecond}, {0, 30 * time.Millisecond}, {110, 160 * time.Millisecond}},
	CueRestDone: {{392, 120 * time.Millisecond}, {523.25, 200 * time.Millisecond}},
	CueFloor:    {{440, 70 * time.Millisecond}},
	CueTempo:    {{392, 100 * time.Millisecond}, {523.25, 100 * time.Millisecond}, {659.25, 100 * time.Millisecond}, {1046.5, 300 * time.Millisecond}},
}

// Streamer renders cue at rate, scaled to a quiet volume. Unknown cues
// yield nil.
func Streamer(c Cue, rate beep.SampleRate) beep.Streamer {
	notes, ok := cueNotes[c]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		if n.freq == 0 {
			parts = append(parts, beep.Silence(rate.N(n.dur)))
			continue
		}
		parts = append(parts, newTone(n.freq, n.dur, rate))
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: -3}
}

// Duration is the playing time of cue.
func Duration(c Cue) time.Duration {
	var d time.Duration
	for _, n := range cueNotes[c] {
		d += n.dur
	}
	return d
}
