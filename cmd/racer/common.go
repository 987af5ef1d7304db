package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/games/racer"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

// Race flags shared by race and sim.
var (
	flagLaps       int
	flagDifficulty string
	flagWeather    string
	flagDriver     string
	flagOpponents  int
	flagRivals     []string
	flagEndurance  bool
)

func addRaceFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagLaps, "laps", 0, "Number of laps (0 = config default)")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: track, easy, medium, hard, extreme")
	cmd.Flags().StringVar(&flagWeather, "weather", "", "Weather: random, clear, rain, storm, night")
	cmd.Flags().StringVar(&flagDriver, "driver", "", "Legend ID to drive as (see 'racer drivers')")
	cmd.Flags().IntVar(&flagOpponents, "opponents", 0, "Number of opponents (0 = config default)")
	cmd.Flags().StringSliceVar(&flagRivals, "rival", nil, "Opponent name to mark as a rival (repeatable)")
	cmd.Flags().BoolVar(&flagEndurance, "endurance", false, "Race the endurance distance")
}

// raceOptions builds race options from the flags.
func raceOptions(track string) (racer.Options, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return racer.Options{}, err
	}
	return racer.Options{
		ConfigPath: flagConfig,
		Track:      track,
		Laps:       flagLaps,
		Difficulty: preset,
		Weather:    flagWeather,
		Driver:     flagDriver,
		Opponents:  flagOpponents,
		Rivals:     flagRivals,
	}, nil
}

func raceMode() racer.Mode {
	if flagEndurance {
		return racer.ModeEndurance
	}
	return racer.ModeRace
}

// runtimeConfig sizes the race to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// newLogger logs to stderr, at debug level when verbose.
func newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "racer",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fileLogger logs to ~/.racer/racer.log while the terminal belongs to the
// race. The returned func closes the file.
func fileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".racer")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "racer.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "racer"})
	return logger, func() { f.Close() }
}

// openStore opens the results database. Races still run without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// requireStore opens the results database for commands that only read it.
func requireStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrNoStore, err)
	}
	return store, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
