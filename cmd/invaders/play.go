package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/audio"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game in the current terminal.

Controls:
  Left/A/H     - Move left
  Right/D/L    - Move right
  Space/Enter  - Fire (two shots at most in flight)
  Q/Esc/Ctrl+C - Quit

Examples:
  invaders play
  invaders play --backend tcell
  invaders play --mute --config ./my-invaders.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	if !registry.Exists(flagBackend) {
		fmt.Fprintf(os.Stderr, "Error: unknown backend %q\n", flagBackend)
		fmt.Fprintln(os.Stderr, "Run 'invaders backends' to see available backends.")
		os.Exit(1)
	}

	cfg := loadConfig()

	logger, closeLog, err := newLogger(cfg.Log, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Open result storage
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	player := os.Getenv("USER")
	res, runErr := tui.Play(ctx, tui.PlayConfig{
		Backend: flagBackend,
		Config:  cfg,
		Cues:    audio.Open(cfg.Audio.Enabled, cfg.Audio.Volume, logger),
		Store:   store,
		Player:  player,
		Logger:  logger,
	})
	interrupted := ctx.Err() != nil
	stop()

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
	if interrupted {
		return
	}

	fmt.Println(tui.RenderResult(res))
}
