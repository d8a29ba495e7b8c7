package audio

import (
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				panic("sample out of range")
			}
		}
		if !ok {
			return total
		}
	}
}

func TestCueLengths(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, c := range []Cue{CueUnlock, CueReject, CueRestDone, CueFloor, CueTempo} {
		t.Run(c.String(), func(t *testing.T) {
			s := Streamer(c, rate)
			if s == nil {
				t.Fatal("nil streamer")
			}
			want := 0
			for _, n := range cueNotes[c] {
				want += rate.N(n.dur)
			}
			if got := drain(s); got != want {
				t.Errorf("samples = %d; want %d", got, want)
			}
		})
	}
}

func TestUnknownCue(t *testing.T) {
	if s := Streamer(Cue(99), sampleRate); s != nil {
		t.Error("unknown cue produced a streamer")
	}
	if Cue(99).String() != "unknown" {
		t.Error("unexpected name")
	}
}

func TestToneEnvelope(t *testing.T) {
	rate := beep.SampleRate(1000)
	tn := newTone(250, 100*time.Millisecond, rate)
	buf := make([][2]float64, 100)
	n, ok := tn.Stream(buf)
	if n != 100 || !ok {
		t.Fatalf("Stream = %d, %v", n, ok)
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample %v; attack should start silent", buf[0][0])
	}
	if n, ok := tn.Stream(buf); n != 0 || ok {
		t.Errorf("exhausted tone streamed %d, %v", n, ok)
	}
}

func TestDuration(t *testing.T) {
	if got := Duration(CueFloor); got != 70*time.Millisecond {
		t.Errorf("Duration = %v", got)
	}
}

func TestOpenDisabledIsSilent(t *testing.T) {
	p := Open(false, slog.New(slog.DiscardHandler))
	if _, ok := p.(Silent); !ok {
		t.Fatalf("player %T", p)
	}
	p.Play(CueTempo)
	p.Close()
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Play(CueFloor)
	r.Play(CueTempo)
	if got := r.Played(); !slices.Equal(got, []Cue{CueFloor, CueTempo}) {
		t.Errorf("played %v", got)
	}
}
