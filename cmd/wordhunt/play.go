package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wordhunt/internal/platform/tui"
	"github.com/vovakirdan/wordhunt/internal/storage"
)

// Smallest terminal that fits the largest grid, HUD and help line.
const (
	minTermWidth  = 40
	minTermHeight = 24
)

var (
	flagLevel  int
	flagPlayer string
	flagPick   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Word Hunt",
	Long: `Start playing from your saved level.

Controls:
  Mouse drag         - Select letters, release to submit
  Arrows/WASD/HJKL   - Move the cursor (extends an active selection)
  Space/Enter        - Start a selection, or submit it
  Esc/Backspace      - Cancel the selection
  Tab                - Level picker
  ?                  - Toggle help
  Q/Ctrl+C           - Quit

Examples:
  wordhunt play
  wordhunt play --level 12
  wordhunt play --pick
  wordhunt play --seed 42 --db ./test.db`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start at this level instead of the saved one")
	playCmd.Flags().StringVar(&flagPlayer, "player", storage.DefaultPlayer, "Progress profile name")
	playCmd.Flags().BoolVar(&flagPick, "pick", false, "Open the level picker first")
}

func runPlay(_ *cobra.Command, _ []string) {
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if w < minTermWidth || h < minTermHeight {
			fmt.Fprintf(os.Stderr, "Error: terminal is %dx%d, need at least %dx%d\n", w, h, minTermWidth, minTermHeight)
			os.Exit(1)
		}
	}

	logger, closeLog := fileLogger("wordhunt")
	defer closeLog()

	// Open progress storage
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	runErr := tui.Run(tui.GameOptions{
		Config:     cfg,
		Validator:  newDictionaryClient(logger),
		Store:      store,
		Player:     flagPlayer,
		Seed:       flagSeed,
		Logger:     logger,
		StartLevel: flagLevel,
		OpenPicker: flagPick,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
