// wordhunt is a timed word-search game for the terminal.
//
// Usage:
//
//	wordhunt play              - Play from your saved level
//	wordhunt levels            - Show the level catalog
//	wordhunt progress          - Show saved progress and recent results
//	wordhunt check <word>      - Validate a single word against the dictionary
//	wordhunt dict              - Serve the offline word list as a dictionary API
//	wordhunt serve             - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible grids
//	--db <path>          - Set database path (default: ~/.wordhunt/wordhunt.db)
//	--config <path>      - Use a custom config YAML
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordhunt/internal/config"
	"github.com/vovakirdan/wordhunt/internal/dictionary"
	"github.com/vovakirdan/wordhunt/internal/words"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagEnvFile  string
)

// cfg is loaded once by the root command before any subcommand runs.
var cfg config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wordhunt",
	Short: "Word Hunt - Find words in a letter grid before time runs out",
	Long: `Word Hunt is a terminal word-search game. Drag across adjacent letters
(or steer with the keyboard) to spell words, and reach the target score
before the clock runs out to unlock the next level.

Available commands:
  play      - Play from your saved level
  levels    - Show the level catalog
  progress  - Show saved progress and recent results
  check     - Validate a word against the dictionary
  dict      - Serve the offline word list as a dictionary API
  serve     - Start SSH server for remote play

Examples:
  wordhunt play
  wordhunt play --level 5
  wordhunt check lantern
  wordhunt serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.LoadEnv(flagEnvFile); err != nil {
			return err
		}
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("db") || loaded.Storage.Path == "" {
			loaded.Storage.Path = flagDBPath
		}
		if flagLogLevel != "" {
			loaded.Log.Level = flagLogLevel
		}
		cfg = loaded
		return words.Init()
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.wordhunt/wordhunt.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Path to .env file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dictCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger writes to w at the configured level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// fileLogger logs to the configured file while the TUI owns the terminal.
// Returns a discarding logger if the file cannot be opened.
func fileLogger(prefix string) (*log.Logger, func()) {
	path := config.ExpandHome(cfg.Log.File)
	if path == "" {
		return log.New(io.Discard), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLogger(f, prefix), func() { f.Close() }
}

// newDictionaryClient builds the validator from the dictionary section, with
// the offline word list as fallback.
func newDictionaryClient(logger *log.Logger) *dictionary.Client {
	return dictionary.NewClient(dictionary.Options{
		URL:      cfg.Dictionary.URL,
		APIKey:   cfg.Dictionary.APIKey,
		Timeout:  time.Duration(cfg.Dictionary.TimeoutSeconds) * time.Second,
		Fallback: words.Contains,
		Logger:   logger,
	})
}
