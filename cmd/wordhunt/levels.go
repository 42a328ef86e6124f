package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordhunt/internal/puzzle"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the level catalog",
	Long: `Shows every level with its difficulty tier, minimum word length,
target score, time limit and score multiplier.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	levels := puzzle.NewCatalog().Levels()
	perLetter := cfg.ScorePerLetter()

	fmt.Println("Levels:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-5s  %-6s  %-3s  %-6s  %-5s  %-4s  %-6s  %s\n", "Level", "Tier", "Min", "Target", "Time", "x", "Letter", "Description")
	fmt.Printf("  %-5s  %-6s  %-3s  %-6s  %-5s  %-4s  %-6s  %s\n", "-----", "----", "---", "------", "----", "-", "------", "-----------")

	for _, lvl := range levels {
		fmt.Printf("  %-5d  %-6s  %-3d  %-6d  %d:%02d  %-4.1f  %-6d  %s\n",
			lvl.Level,
			lvl.Difficulty,
			lvl.MinWordLength,
			lvl.WinThreshold,
			lvl.TimeLimitSeconds/60, lvl.TimeLimitSeconds%60,
			lvl.ScoreMultiplier,
			perLetter[lvl.Difficulty],
			lvl.Description,
		)
	}

	fmt.Println()
	fmt.Println("Run 'wordhunt play --level <n>' to jump to a level.")
}
