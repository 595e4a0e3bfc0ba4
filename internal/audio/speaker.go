package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	speakerBuffer = 100 * time.Millisecond
	// drainTimeout bounds Wait in case the device stops pulling samples.
	drainTimeout = 3 * time.Second
)

// BeepSink plays cues through the system speaker.
// It owns the speaker from creation until Wait returns.
type BeepSink struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	volume  float64
	pending sync.WaitGroup
	closed  bool
	logger  *log.Logger
}

// NewBeepSink opens the speaker and starts the mixer.
func NewBeepSink(volume float64, logger *log.Logger) (*BeepSink, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := speaker.Init(sampleRate, sampleRate.N(speakerBuffer)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}

	s := &BeepSink{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
	}
	speaker.Play(s.mixer)
	return s, nil
}

// Play queues a cue on the mixer. Unknown cues are logged and skipped.
func (s *BeepSink) Play(c Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	st := Synthesize(c, s.volume, sampleRate)
	if st == nil {
		s.logger.Warn("unknown sound cue", "cue", c)
		return
	}

	s.pending.Add(1)
	speaker.Lock()
	s.mixer.Add(beep.Seq(st, beep.Callback(s.pending.Done)))
	speaker.Unlock()
}

// Wait lets queued cues finish, then closes the speaker.
func (s *BeepSink) Wait() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(drainTimeout):
		s.logger.Warn("sound cues did not finish, closing speaker")
	}
	speaker.Close()
}

// Open returns a speaker-backed sink, or Nop when audio is disabled or the
// device cannot be opened.
func Open(enabled bool, volume float64, logger *log.Logger) Sink {
	if !enabled {
		return Nop{}
	}
	s, err := NewBeepSink(volume, logger)
	if err != nil {
		if logger != nil {
			logger.Warn("audio disabled", "error", err)
		}
		return Nop{}
	}
	return s
}
