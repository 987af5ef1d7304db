package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/games/racer"
	"github.com/vovakirdan/tui-racer/internal/platform/tui"
	"github.com/vovakirdan/tui-racer/internal/registry"
)

var raceCmd = &cobra.Command{
	Use:   "race [track]",
	Short: "Start a race",
	Long: `Start a race against the AI field on the given track, or on the
configured default track.

Controls:
  Up/W         - Throttle
  Down/S       - Brake
  Left/A       - Steer left
  Right/D      - Steer right
  Space        - Pit (inside the pit zone, under the pit speed)
  P            - Pause
  R            - Restart (after the finish)
  Esc/B        - Leave (when paused or finished)
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Examples:
  racer race
  racer race monaco --laps 5
  racer race spa --weather storm --difficulty extreme
  racer race --endurance --driver senna
  racer race suzuka --rival "Speed Demon" --opponents 3`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRace,
}

func init() {
	addRaceFlags(raceCmd)
}

func runRace(_ *cobra.Command, args []string) {
	track := ""
	if len(args) == 1 {
		track = args[0]
	}
	opts, err := raceOptions(track)
	if err != nil {
		fatalf("%v", err)
	}

	// Fail before taking over the terminal
	cfg, err := config.LoadRace(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}
	if _, err := racer.BuildPlan(cfg, opts, raceMode(), seed()); err != nil {
		fatalf("%v", err)
	}
	racer.SetOptions(opts)

	game, err := registry.Create(string(raceMode()))
	if err != nil {
		fatalf("creating race: %v", err)
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, logger, runtimeConfig()); err != nil {
		fatalf("running race: %v", err)
	}
}
