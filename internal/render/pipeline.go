// Package render moves frames from the game logic to the terminal.
//
// The logic goroutine hands each finished frame to a Pipeline over a small
// buffered channel and never waits for the terminal. A single render
// goroutine owns the Painter: it diffs every received frame against the last
// one it painted and writes only the cells that changed.
package render

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// DefaultQueueSize is the handoff capacity when none is configured.
const DefaultQueueSize = 2

// Stats are the pipeline counters since creation.
type Stats struct {
	Frames  int64 // frames painted
	Writes  int64 // cells written
	Dropped int64 // frames rejected because the queue was full
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithQueueSize sets the handoff capacity. Values below 1 are ignored.
func WithQueueSize(n int) Option {
	return func(p *Pipeline) {
		if n >= 1 {
			p.queueSize = n
		}
	}
}

// WithLogger sets the logger used for paint failures.
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// Pipeline is the bounded handoff between the logic and render goroutines.
type Pipeline struct {
	painter   Painter
	queueSize int
	logger    *log.Logger

	frames chan *core.Frame
	done   chan struct{}

	// mu guards closed against a concurrent Close while Send is queueing.
	mu     sync.RWMutex
	closed bool

	startOnce sync.Once
	closeOnce sync.Once
	started   atomic.Bool
	err       error // written by the render goroutine before done closes

	frameCount atomic.Int64
	writes     atomic.Int64
	dropped    atomic.Int64
}

// NewPipeline creates a pipeline painting to p. Call Start to launch the
// render goroutine and Close to shut it down.
func NewPipeline(p Painter, opts ...Option) *Pipeline {
	pl := &Pipeline{
		painter:   p,
		queueSize: DefaultQueueSize,
		logger:    log.New(io.Discard),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(pl)
	}
	pl.frames = make(chan *core.Frame, pl.queueSize)
	return pl
}

// Start launches the render goroutine. Extra calls are no-ops.
func (pl *Pipeline) Start() {
	pl.startOnce.Do(func() {
		pl.started.Store(true)
		go pl.run()
	})
}

// Send queues a frame without blocking. Ownership of f passes to the
// pipeline when Send returns true; the caller must not touch it again.
// Returns false when the queue is full (the frame is dropped), after Close,
// or once the render goroutine has stopped on a paint error.
func (pl *Pipeline) Send(f *core.Frame) bool {
	pl.mu.RLock()
	defer pl.mu.RUnlock()

	if pl.closed {
		return false
	}
	select {
	case <-pl.done:
		return false
	default:
	}

	select {
	case pl.frames <- f:
		return true
	default:
		pl.dropped.Add(1)
		return false
	}
}

// Close stops accepting frames, waits until every queued frame has been
// painted, and returns the first paint error. Safe to call more than once.
func (pl *Pipeline) Close() error {
	pl.closeOnce.Do(func() {
		pl.mu.Lock()
		pl.closed = true
		close(pl.frames)
		pl.mu.Unlock()
	})
	if !pl.started.Load() {
		return nil
	}
	<-pl.done
	return pl.err
}

// Stats returns a snapshot of the counters.
func (pl *Pipeline) Stats() Stats {
	return Stats{
		Frames:  pl.frameCount.Load(),
		Writes:  pl.writes.Load(),
		Dropped: pl.dropped.Load(),
	}
}

func (pl *Pipeline) run() {
	defer close(pl.done)

	var last *core.Frame
	for f := range pl.frames {
		if err := pl.paint(last, f); err != nil {
			pl.err = err
			pl.logger.Error("render stopped", "error", err)
			return
		}
		last = f
	}
}

// paint writes f to the painter. The first frame is a full repaint on a
// cleared screen; later frames write only the cells that differ from last.
func (pl *Pipeline) paint(last, f *core.Frame) error {
	var changes []core.CellChange
	if last == nil {
		if err := pl.painter.Clear(); err != nil {
			return fmt.Errorf("render: clear: %w", err)
		}
		changes = core.Cells(f)
	} else {
		changes = core.Diff(last, f)
	}

	for _, c := range changes {
		pl.painter.Put(c.X, c.Y, c.Glyph)
	}
	if err := pl.painter.Flush(); err != nil {
		return fmt.Errorf("render: flush: %w", err)
	}

	pl.frameCount.Add(1)
	pl.writes.Add(int64(len(changes)))
	return nil
}
