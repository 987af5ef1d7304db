package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/games/racer"
	"github.com/vovakirdan/tui-racer/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagSSHFPS      int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the racer SSH server",
	Long: `Start an SSH server that lets users connect and race.

Each SSH connection gets its own session with the race menu.
Results are stored per server (all users share the same results board).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.racer/host_key

Examples:
  racer serve                           # Listen on :23234 with auto-generated key
  racer serve --ssh :2222               # Listen on port 2222
  racer serve --host-key ./my_host_key  # Use specific host key
  racer serve --db ./results.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagSSHFPS, "session-fps", 30, "Tick rate per SSH session")
	addRaceFlags(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	raceCfg, err := config.LoadRace(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}
	opts, err := raceOptions("")
	if err != nil {
		fatalf("%v", err)
	}
	racer.SetOptions(opts)

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Tracks:      tui.TrackChoices(raceCfg),
		TickRate:    flagSSHFPS,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fatalf("creating server: %v", err)
	}

	fmt.Printf("Starting racer SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
