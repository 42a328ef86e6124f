package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <word>...",
	Short: "Validate words against the dictionary",
	Long: `Look up one or more words the same way the game does: remote dictionary
first, offline word list when the dictionary cannot be reached.

Examples:
  wordhunt check lantern
  wordhunt check care cart xyzzy`,
	Args: cobra.MinimumNArgs(1),
	Run:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) {
	logger := newLogger(os.Stderr, "check")
	client := newDictionaryClient(logger)

	invalid := 0
	for _, word := range args {
		res := client.Validate(cmd.Context(), word, nil)
		verdict := "valid"
		if !res.Valid {
			verdict = "not a word"
			invalid++
		}
		fmt.Printf("%-16s %-10s (%s)\n", strings.ToUpper(res.Word), verdict, res.Source)
		if n := res.Notice(); n != "" {
			fmt.Printf("  %s\n", n)
		}
	}

	if invalid > 0 {
		os.Exit(1)
	}
}
