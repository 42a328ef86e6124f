package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordhunt/internal/dictionary"
	"github.com/vovakirdan/wordhunt/internal/words"
)

var flagDictAddr string

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Serve the offline word list as a dictionary API",
	Long: `Start an HTTP server that answers dictionary lookups from the built-in
word list, in the same JSON shape the game's dictionary client reads.

Point the game at it to play without an API key:

  wordhunt dict --http :8085
  WORDHUNT_DICTIONARY_URL=http://localhost:8085/json/%s wordhunt play

Endpoints:
  GET /health        - Liveness and word count
  GET /json/{word}   - Entries for a known word, suggestions otherwise`,
	Args: cobra.NoArgs,
	Run:  runDict,
}

func init() {
	dictCmd.Flags().StringVar(&flagDictAddr, "http", ":8085", "HTTP listen address (host:port)")
}

func runDict(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "wordhunt-dict")

	srv := &http.Server{
		Addr:              flagDictAddr,
		Handler:           dictionary.NewServer(words.List(), logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting dictionary server", "address", flagDictAddr, "words", words.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			done <- syscall.SIGTERM
		}
	}()

	<-done
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		os.Exit(1)
	}
}
