package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordhunt/internal/platform/tui"
	"github.com/vovakirdan/wordhunt/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Word Hunt SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game, starting with the level picker.
Progress is saved per SSH user name in the server's database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.wordhunt/host_key

Examples:
  wordhunt serve                           # Listen on :23234 with auto-generated key
  wordhunt serve --ssh :2222               # Listen on port 2222
  wordhunt serve --host-key ./my_host_key  # Use specific host key
  wordhunt serve --db ./server.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "wordhunt-ssh")

	sshCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open progress database, progress will not be saved", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(sshCfg, cfg, newDictionaryClient(logger), store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Word Hunt SSH server on %s\n", sshCfg.Address)
	if _, port, splitErr := net.SplitHostPort(sshCfg.Address); splitErr == nil {
		fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
