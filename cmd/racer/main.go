// racer is an arcade racing game for the terminal.
//
// Usage:
//
//	racer race [track]       - Race a grand prix (or --endurance)
//	racer menu               - Pick mode and track interactively
//	racer sim [track]        - Run a race headless with the autopilot
//	racer tracks             - List circuits
//	racer drivers            - List legends the player can drive as
//	racer results [track]    - Show stored results
//	racer serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible races
//	--db <path>      - Set database path (default: ~/.racer/results.db)
//	--config <path>  - Use a custom race config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import race modes to register them
	_ "github.com/vovakirdan/tui-racer/internal/games/racer"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "racer",
	Short: "TUI Racer - arcade racing in your terminal",
	Long: `TUI Racer is a terminal arcade racing game: race AI drivers over a
grand prix or an endurance distance, manage fuel and tires, and listen to
the pit wall.

Available commands:
  race     - Race directly
  menu     - Interactive race picker
  sim      - Headless race driven by the autopilot
  tracks   - Show all circuits
  drivers  - Show legends you can drive as
  results  - View stored results
  serve    - Start SSH server for remote play

Examples:
  racer race monaco --laps 5 --weather rain
  racer race --endurance --difficulty hard
  racer menu
  racer sim spa --seed 7
  racer results monza
  racer serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.racer/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom race config YAML")

	rootCmd.AddCommand(raceCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(tracksCmd)
	rootCmd.AddCommand(driversCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
}
