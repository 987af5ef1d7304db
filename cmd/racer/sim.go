package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/games/racer"
	"github.com/vovakirdan/tui-racer/internal/games/racer/sim"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

var (
	flagVerbose bool
	flagSave    bool
)

var simCmd = &cobra.Command{
	Use:   "sim [track]",
	Short: "Run a race headless with the autopilot",
	Long: `Run a whole race without a terminal UI. The autopilot drives the
player car, follows the pit wall's advice and dodges traffic. Laps, pit
stops, advice and the result are logged.

Examples:
  racer sim
  racer sim monaco --seed 7 --weather rain
  racer sim spa --endurance --verbose
  racer sim suzuka --save`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	addRaceFlags(simCmd)
	simCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log collisions and every piece of advice")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Store the result in the results database")
}

func runSim(_ *cobra.Command, args []string) {
	logger := newLogger(flagVerbose)

	track := ""
	if len(args) == 1 {
		track = args[0]
	}
	opts, err := raceOptions(track)
	if err != nil {
		logger.Fatal("invalid options", "error", err)
	}
	cfg, err := config.LoadRace(flagConfig)
	if err != nil {
		logger.Fatal("could not load race config", "error", err)
	}

	mode := raceMode()
	plan, err := racer.BuildPlan(cfg, opts, mode, seed())
	if err != nil {
		logger.Fatal("could not build race", "error", err)
	}
	h, err := racer.NewHeadless(plan)
	if err != nil {
		logger.Fatal("could not start race", "error", err)
	}

	names := map[string]string{sim.PlayerID: plan.Driver}
	for _, p := range h.Sim.Profiles() {
		names[p.ID] = p.Name
	}
	raceCfg := h.Sim.Config()
	logger.Info("lights out",
		"track", plan.Track.Name,
		"mode", mode,
		"laps", raceCfg.LapCount,
		"difficulty", raceCfg.Difficulty,
		"weather", raceCfg.Weather.Condition,
		"field", len(names),
		"seed", plan.Setup.Seed,
	)

	h.Observe = func(f sim.RaceFrame) {
		logFrame(logger, names, f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := h.Run(ctx)
	if err != nil {
		logger.Fatal("race aborted", "error", err)
	}

	logger.Info("result",
		"position", racer.Ordinal(res.FinalPosition),
		"winner", names[res.WinnerID],
		"time", racer.FormatLapTime(res.TotalTime),
		"best_lap", racer.FormatLapTime(res.BestLap),
		"prize", racer.FormatMoney(res.PrizeMoney),
	)
	for _, s := range res.Standings {
		logger.Debug("standing", "position", s.Position, "driver", names[s.ID], "distance", int(s.Distance))
	}

	if !flagSave {
		return
	}
	store, err := requireStore()
	if err != nil {
		logger.Fatal("could not save result", "error", err)
	}
	defer store.Close()
	rec := storage.RecordFromResult(plan.Track.ID, string(mode), plan.Driver, raceCfg, plan.Setup.Seed, res)
	id, err := store.SaveRaceResult(rec)
	if err != nil {
		logger.Error("could not save result", "error", err)
		return
	}
	logger.Info("result saved", "id", id)
}

// logFrame logs the events and advice of one frame.
func logFrame(logger *log.Logger, names map[string]string, f sim.RaceFrame) {
	for _, ev := range f.Events {
		switch e := ev.(type) {
		case sim.LapCompleted:
			logger.Info("lap",
				"lap", e.Record.Lap,
				"time", racer.FormatLapTime(e.Record.Time),
				"best", e.Personal,
				"position", f.Position,
				"fuel", int(f.Fuel),
				"tires", int(f.TireWear),
			)
		case sim.PitEntered:
			logger.Info("pit stop", "lap", e.Lap, "fuel", int(f.Fuel), "tires", int(f.TireWear))
		case sim.PitCompleted:
			logger.Info("pit stop complete", "lap", e.Lap)
		case sim.CollisionStarted:
			logger.Debug("contact",
				"with", names[e.Collision.OpponentID],
				"direction", e.Collision.Direction,
				"severity", e.Collision.Severity,
			)
		case sim.RaceFinished:
			logger.Info("chequered flag", "winner", names[e.WinnerID], "position", e.Position)
		}
	}
	if msg := f.Strategy; msg != nil {
		if msg.Urgency >= sim.UrgencyWarn {
			logger.Warn("pit wall", "advice", msg.Text, "category", msg.Category)
		} else {
			logger.Debug("pit wall", "advice", msg.Text, "category", msg.Category, "urgency", msg.Urgency)
		}
	}
}
