// Package game runs one invaders session: it drains player input, advances
// the player and the formation, and hands a fresh frame to the renderer on
// every tick until the formation is cleared or has landed.
package game

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/audio"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/invaders"
)

// FrameSink accepts finished frames without blocking.
// Send returns false when the frame was not taken.
type FrameSink interface {
	Send(f *core.Frame) bool
}

// Options configures a session.
type Options struct {
	Field     core.RuntimeConfig
	TickSleep time.Duration    // pause after sending each frame
	Now       func() time.Time // clock for tick deltas; nil means time.Now
}

// Session owns the game state for one player. It is driven by a single
// goroutine; frames leave it only through the FrameSink.
type Session struct {
	opts   Options
	events <-chan core.Action
	frames FrameSink
	cues   audio.Sink
	logger *log.Logger

	player    *invaders.Player
	formation *invaders.Formation
	initial   int

	state   State
	ticks   int
	elapsed time.Duration
	dropped int64
}

// NewSession creates a session with the starting formation and the player
// in the middle of the bottom row.
func NewSession(opts Options, events <-chan core.Action, frames FrameSink, cues audio.Sink, logger *log.Logger) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if cues == nil {
		cues = audio.Nop{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	formation := invaders.New(opts.Field.Cols, opts.Field.Rows)
	return &Session{
		opts:      opts,
		events:    events,
		frames:    frames,
		cues:      cues,
		logger:    logger,
		player:    invaders.NewPlayer(opts.Field.Cols, opts.Field.Rows),
		formation: formation,
		initial:   formation.Len(),
		state:     Running,
	}
}

// Run plays the startup cue and ticks until the game ends.
// Cancelling ctx ends the session as lost, without a cue, and returns the
// context error along with the partial result.
func (s *Session) Run(ctx context.Context) (Result, error) {
	s.cues.Play(audio.CueStartup)
	s.logger.Info("game started", "cols", s.opts.Field.Cols, "rows", s.opts.Field.Rows, "enemies", s.initial)

	last := s.opts.Now()
	for s.state == Running {
		if err := ctx.Err(); err != nil {
			s.state = LostExit
			s.logger.Info("game cancelled", "ticks", s.ticks)
			return s.Result(), err
		}

		now := s.opts.Now()
		delta := now.Sub(last)
		last = now

		actions, open := s.drain()
		s.tick(delta, actions, func() { s.sleep(ctx) })

		if s.state == Running && !open {
			s.state = LostExit
			s.logger.Info("input closed", "ticks", s.ticks)
		}
	}

	s.logger.Info("game over", "state", s.state, "destroyed", s.Result().Destroyed,
		"elapsed", s.elapsed, "dropped_frames", s.dropped)
	return s.Result(), nil
}

// Step runs one tick with the given delta and actions, without sleeping.
func (s *Session) Step(delta time.Duration, actions []core.Action) State {
	if s.state == Running {
		s.tick(delta, actions, func() {})
	}
	return s.state
}

// tick is one pass of the game loop.
func (s *Session) tick(delta time.Duration, actions []core.Action, sleep func()) {
	s.ticks++
	s.elapsed += delta

	for _, a := range actions {
		switch a {
		case core.ActionLeft:
			s.player.MoveLeft()
		case core.ActionRight:
			s.player.MoveRight()
		case core.ActionFire:
			if s.player.Shoot() {
				s.cues.Play(audio.CuePew)
			}
		case core.ActionQuit:
			s.cues.Play(audio.CueLose)
			s.state = LostExit
			return
		}
	}

	s.player.Update(delta)
	if s.formation.Advance(delta) {
		s.cues.Play(audio.CueMove)
	}
	if s.player.DetectHits(s.formation) {
		s.cues.Play(audio.CueExplode)
	}

	// Player first so a formation glyph wins a shared cell
	frame := core.Compose(s.opts.Field.Cols, s.opts.Field.Rows, s.player, s.formation)
	if !s.frames.Send(frame) {
		s.dropped++
	}

	sleep()

	switch {
	case s.formation.Cleared():
		s.cues.Play(audio.CueWin)
		s.state = WonExit
	case s.formation.HasLanded(s.opts.Field.LastRow()):
		s.cues.Play(audio.CueLose)
		s.state = LostExit
	}
}

// drain collects every pending action without blocking.
// open is false once the events channel has been closed.
func (s *Session) drain() (actions []core.Action, open bool) {
	for {
		select {
		case a, ok := <-s.events:
			if !ok {
				return actions, false
			}
			actions = append(actions, a)
		default:
			return actions, true
		}
	}
}

func (s *Session) sleep(ctx context.Context) {
	if s.opts.TickSleep <= 0 {
		return
	}
	t := time.NewTimer(s.opts.TickSleep)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// Result returns the session summary so far.
func (s *Session) Result() Result {
	return Result{
		State:         s.state,
		Destroyed:     s.initial - s.formation.Len(),
		Ticks:         s.ticks,
		Elapsed:       s.elapsed,
		DroppedFrames: s.dropped,
	}
}
