package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/games/racer"
	"github.com/vovakirdan/tui-racer/internal/platform/tui"
	"github.com/vovakirdan/tui-racer/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a race from a menu",
	Long: `Start in interactive menu mode.

Pick the mode with Up/Down and the track with Left/Right, then press
Enter. Leaving a finished race returns to the menu.

Controls:
  Up/Down/j/k     - Mode
  Left/Right/h/l  - Track
  Enter/Space     - Race
  Tab             - Results board
  Q               - Quit

Examples:
  racer menu
  racer menu --fps 30
  racer menu --difficulty hard --weather random`,
	Run: runMenu,
}

func init() {
	addRaceFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	raceCfg, err := config.LoadRace(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}
	opts, err := raceOptions("")
	if err != nil {
		fatalf("%v", err)
	}
	racer.SetOptions(opts)
	tracks := tui.TrackChoices(raceCfg)

	logger, closeLog := fileLogger()
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		menuResult, err := tui.RunMenu(store, tracks, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsResults {
			goBack, err := tui.RunResults(store, tracks, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating race: %v\n", err)
			continue
		}
		tui.SelectTrack(game, menuResult.TrackID)

		cfg.Seed = flagSeed
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, store, logger, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running race: %v\n", err)
		}
	}
}
