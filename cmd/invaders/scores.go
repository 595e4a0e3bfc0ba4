package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagScoresTUI    bool
	flagScoresRecent bool
	flagScoresLimit  int
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded results",
	Long: `Display the best recorded games and overall statistics.

Wins rank above losses, then more enemies destroyed, then the faster game.

Examples:
  invaders scores
  invaders scores --recent --limit 5
  invaders scores --tui`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "List the most recent games instead of the best")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to list")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded result")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	// Open result storage
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearResults(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing results: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Println("All results deleted.")
		return
	}

	if flagScoresTUI {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		return
	}

	if err := printResults(os.Stdout, store, flagScoresRecent, flagScoresLimit); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

// printResults writes the best (or most recent) results and the totals as a
// plain table.
func printResults(w io.Writer, store *storage.Store, recent bool, limit int) error {
	var (
		results []storage.Result
		err     error
	)
	title := "Best Games"
	if recent {
		title = "Recent Games"
		results, err = store.RecentResults(limit)
	} else {
		results, err = store.TopResults(limit)
	}
	if err != nil {
		return fmt.Errorf("retrieving results: %w", err)
	}

	fmt.Fprintf(w, "Invaders - %s\n", title)
	fmt.Fprintln(w)

	if len(results) == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'invaders play' to set the first result!")
		return nil
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %-6s  %-5s  %-7s  %-10s  %s\n", "Rank", "Result", "Kills", "Time", "Player", "Date")
	fmt.Fprintf(w, "  %-4s  %-6s  %-5s  %-7s  %-10s  %s\n", "----", "------", "-----", "----", "------", "----")

	for i, r := range tui.ResultRows(results) {
		fmt.Fprintf(w, "  %-4d  %-6s  %-5s  %-7s  %-10s  %s\n", i+1, r[1], r[2], r[3], r[4], results[i].CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Games: %d  Won: %d  Lost: %d  Best: %d destroyed\n",
		stats.Games, stats.Wins, stats.Losses(), stats.BestDestroyed)
	if stats.FastestWin > 0 {
		fmt.Fprintf(w, "Fastest win: %s\n", tui.FormatDuration(stats.FastestWin))
	}
	return nil
}
