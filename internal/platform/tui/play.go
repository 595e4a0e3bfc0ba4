package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/audio"
	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/game"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/render"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// PlayConfig describes one game on one terminal.
type PlayConfig struct {
	Backend  string                // registered backend name
	Terminal registry.Options      // streams and size handed to the backend
	Config   config.InvadersConfig // field and render settings
	Cues     audio.Sink            // nil means silent
	Store    *storage.Store        // nil skips recording the result
	Player   string                // recorded with the result
	Logger   *log.Logger
}

// Play runs a complete game: it acquires the terminal, starts the render
// goroutine, runs the session and tears everything down again in order
// (render pipeline, sound cues, terminal). Teardown is deferred, so it also
// runs when the session panics. A cancelled context ends the game early;
// such a game is not recorded and is not an error.
func Play(ctx context.Context, pc PlayConfig) (res game.Result, err error) {
	logger := pc.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cues := pc.Cues
	if cues == nil {
		cues = audio.Nop{}
	}
	cfg := pc.Config

	opts := pc.Terminal
	if opts.Colors == nil {
		opts.Colors = cfg.Render.Colors
	}
	if opts.Logger == nil {
		opts.Logger = logger
	}

	backend, err := registry.Create(pc.Backend, opts)
	if err != nil {
		cues.Wait()
		return game.Result{}, err
	}
	if err := backend.Start(); err != nil {
		cues.Wait()
		return game.Result{}, err
	}

	// Deferred in reverse: pipeline, then cues, then the terminal
	defer func() {
		err = errors.Join(err, backend.Close())
	}()
	defer cues.Wait()
	var pipe *render.Pipeline
	defer func() {
		if pipe == nil {
			return
		}
		err = errors.Join(err, pipe.Close())
		stats := pipe.Stats()
		logger.Debug("render stats", "frames", stats.Frames, "writes", stats.Writes, "dropped", stats.Dropped)
	}()

	if cols, rows := backend.Size(); cols > 0 && rows > 0 && (cols < cfg.Field.Cols || rows < cfg.Field.Rows) {
		return game.Result{}, fmt.Errorf("terminal is %dx%d, the field needs %dx%d", cols, rows, cfg.Field.Cols, cfg.Field.Rows)
	}

	pipe = render.NewPipeline(backend.Painter(),
		render.WithQueueSize(cfg.Render.QueueSize),
		render.WithLogger(logger),
	)
	pipe.Start()

	session := game.NewSession(game.Options{
		Field:     cfg.Field.Runtime(),
		TickSleep: cfg.Render.TickSleep(),
	}, backend.Events(), pipe, cues, logger)

	res, err = session.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			err = nil
		}
		return res, err
	}

	if pc.Store != nil {
		if _, saveErr := pc.Store.SaveResult(toRecord(res, pc.Backend, pc.Player)); saveErr != nil {
			logger.Warn("could not save result", "error", saveErr)
		}
	}
	return res, nil
}

func toRecord(res game.Result, backend, player string) storage.Result {
	outcome := storage.OutcomeLost
	if res.State == game.WonExit {
		outcome = storage.OutcomeWon
	}
	return storage.Result{
		Outcome:   outcome,
		Destroyed: res.Destroyed,
		Duration:  res.Elapsed,
		Backend:   backend,
		Player:    player,
	}
}
