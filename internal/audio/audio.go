// Package audio plays short cues for game events.
package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue names a sound.
type Cue int

const (
	CueUnlock Cue = iota
	CueReject
	CueRestDone
	CueFloor
	CueTempo
)

func (c Cue) String() string {
	switch c {
	case CueUnlock:
		return "unlock"
	case CueReject:
		return "reject"
	case CueRestDone:
		return "rest-done"
	case CueFloor:
		return "floor"
	case CueTempo:
		return "tempo"
	}
	return "unknown"
}

// Player plays cues. Play must not block.
type Player interface {
	Play(Cue)
	Close()
}

// Silent discards every cue.
type Silent struct{}

func (Silent) Play(Cue) {}
func (Silent) Close()   {}

// Speaker plays cues through the system audio device.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

// Open initialises the speaker. When enabled is false or no audio device is
// available it returns Silent, logging why.
func Open(enabled bool, log *slog.Logger) Player {
	if !enabled {
		return Silent{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		log.Warn("audio: disabled", "error", err)
		return Silent{}
	}
	s := &Speaker{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s
}

func (s *Speaker) Play(c Cue) {
	st := Streamer(c, sampleRate)
	if st == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Clear()
	speaker.Close()
}

// Recorder keeps every cue it is asked to play.
type Recorder struct {
	mu   sync.Mutex
	Cues []Cue
}

func (r *Recorder) Play(c Cue) {
	r.mu.Lock()
	r.Cues = append(r.Cues, c)
	r.mu.Unlock()
}

func (r *Recorder) Close() {}

// Played returns a copy of the recorded cues.
func (r *Recorder) Played() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.Cues...)
}
