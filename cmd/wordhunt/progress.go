package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordhunt/internal/storage"
)

var (
	flagProgressPlayer string
	flagReset          bool
	flagRecent         int
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show saved progress and recent results",
	Long: `Display the current level, win statistics and the most recent level
results for a player.

Examples:
  wordhunt progress
  wordhunt progress --player ssh:alice
  wordhunt progress --reset`,
	Args: cobra.NoArgs,
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().StringVar(&flagProgressPlayer, "player", storage.DefaultPlayer, "Progress profile name")
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete saved progress and results")
	progressCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent results to show")
}

func runProgress(_ *cobra.Command, _ []string) {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	player := flagProgressPlayer

	if flagReset {
		if err := store.ResetProgress(player); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting progress: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Progress for %s reset. Next game starts at level 1.\n", player)
		return
	}

	stats, err := store.Stats(player)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving progress: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Progress - %s\n", player)
	fmt.Println()

	level := stats.CurrentLevel
	if level == 0 {
		level = 1
	}
	fmt.Printf("  Current level: %d\n", level)
	fmt.Printf("  Levels played: %d (won %d)\n", stats.Played, stats.Won)
	fmt.Printf("  Best score:    %d\n", stats.BestScore)
	fmt.Printf("  Total score:   %d\n", stats.TotalScore)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("  Last played:   %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}

	results, err := store.RecentResults(player, flagRecent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	if len(results) == 0 {
		fmt.Println("No levels played yet.")
		fmt.Println()
		fmt.Println("Run 'wordhunt play' to start!")
		return
	}

	// Print header
	fmt.Printf("  %-5s  %-6s  %-11s  %-5s  %-5s  %s\n", "Level", "Result", "Score", "Words", "Time", "Date")
	fmt.Printf("  %-5s  %-6s  %-11s  %-5s  %-5s  %s\n", "-----", "------", "-----", "-----", "----", "----")

	for _, r := range results {
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		fmt.Printf("  %-5d  %-6s  %-11s  %-5d  %d:%02d  %s\n",
			r.Level,
			outcome,
			fmt.Sprintf("%d/%d", r.Score, r.Threshold),
			r.WordsFound,
			r.DurationSecs/60, r.DurationSecs%60,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
}
