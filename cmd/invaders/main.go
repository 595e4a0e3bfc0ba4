// invaders is a terminal space-invaders game.
//
// Usage:
//
//	invaders play              - Play a game in this terminal
//	invaders scores            - Show recorded results
//	invaders serve             - Start SSH server for remote play
//	invaders backends          - List terminal backends
//
// Global flags:
//
//	--config <path>   - Custom config YAML
//	--db <path>       - Results database (default from config: ~/.invaders/results.db)
//	--backend <name>  - Terminal backend (default: ansi)
//	--log-file <path> - Write logs to a file
//	--mute            - Disable sound cues
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/config"

	// Import terminal to register backends
	_ "github.com/vovakirdan/tui-invaders/internal/terminal"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagBackend string
	flagLogFile string
	flagMute    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invaders",
	Short: "Invaders - defend the bottom row of your terminal",
	Long: `Invaders is a terminal game: a formation of enemies sweeps across the
screen and steps down at every edge, faster each time. Shoot them all before
they reach the bottom.

Available commands:
  play      - Play a game in this terminal
  scores    - View recorded results
  serve     - Start SSH server for remote play
  backends  - List terminal backends

Examples:
  invaders play
  invaders play --backend tcell --mute
  invaders scores --tui
  invaders serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "ansi", "Terminal backend (see 'invaders backends')")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound cues")

	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() config.InvadersConfig {
	cfg, err := config.LoadInvaders(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}
	return cfg
}

// newLogger builds a logger for the configured level. Without a log file the
// output is discarded, unless fallback is set.
// The returned closer releases the log file.
func newLogger(cfg config.LogConfig, fallback io.Writer) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("config: log level: %w", err)
	}

	var w io.Writer = io.Discard
	if fallback != nil {
		w = fallback
	}
	closer := func() error { return nil }
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "invaders",
		Level:           level,
	})
	return logger, closer, nil
}
