package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/games/racer"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "List all circuits",
	Long:  `Shows the circuits in the race configuration with your best lap on each.`,
	Run:   runTracks,
}

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "List legends you can drive as",
	Long: `Shows the legendary drivers whose ratings the player can borrow with
'racer race --driver <id>'.`,
	Run: runDrivers,
}

func runTracks(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadRace(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}
	if len(cfg.Tracks) == 0 {
		fmt.Println("No tracks configured.")
		return
	}

	// Best laps are optional
	store, _ := storage.Open(flagDBPath)
	if store != nil {
		defer store.Close()
	}

	maxIDLen, maxNameLen := 2, 4
	for _, t := range cfg.Tracks {
		maxIDLen = max(maxIDLen, len(t.ID))
		maxNameLen = max(maxNameLen, len(t.Name))
	}

	fmt.Println("Circuits:")
	fmt.Println()
	fmt.Printf("  %-*s  %-*s  %8s  %-8s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Length", "Tier", "Best lap")
	fmt.Printf("  %-*s  %-*s  %8s  %-8s  %s\n", maxIDLen, "--", maxNameLen, "----", "------", "----", "--------")
	for _, t := range cfg.Tracks {
		best := racer.FormatLapTime(0)
		if store != nil {
			if lap, err := store.BestLap(t.ID); err == nil {
				best = racer.FormatLapTime(lap)
			}
		}
		marker := " "
		if t.ID == cfg.DefaultTrack().ID {
			marker = "*"
		}
		fmt.Printf("%s %-*s  %-*s  %5.2f km  %-8s  %s\n", marker, maxIDLen, t.ID, maxNameLen, t.Name, t.LengthKm, t.Tier(), best)
	}

	fmt.Println()
	fmt.Println("* default track. Run 'racer race <id>' to race one.")
}

func runDrivers(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadRace(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}
	if len(cfg.Legends) == 0 {
		fmt.Println("No legends configured.")
		return
	}

	maxIDLen := 2
	for _, l := range cfg.Legends {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Println("Legends:")
	fmt.Println()
	fmt.Printf("  %-*s  %-22s  %5s  %8s  %5s\n", maxIDLen, "ID", "Name", "Speed", "Handling", "Accel")
	fmt.Printf("  %-*s  %-22s  %5s  %8s  %5s\n", maxIDLen, "--", "----", "-----", "--------", "-----")
	for _, l := range cfg.Legends {
		fmt.Printf("  %-*s  %-22s  %5.0f  %8.0f  %5.0f\n", maxIDLen, l.ID, l.Name, l.Stats.Speed, l.Stats.Handling, l.Stats.Acceleration)
	}
}
