package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/games/racer"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

var (
	flagResultsLimit int
	flagClear        bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [track]",
	Short: "Show stored race results",
	Long: `Without a track, shows a summary per track and the latest races.
With a track, shows its best finishes and statistics.

Examples:
  racer results
  racer results monaco
  racer results monaco --limit 25
  racer results monaco --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 10, "Number of races to show")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the stored results of the track")
}

func runResults(_ *cobra.Command, args []string) {
	store, err := requireStore()
	if err != nil {
		fatalf("%v", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			fatalf("--clear needs a track")
		}
		showSummary(store)
		return
	}

	track := args[0]
	if flagClear {
		if err := store.ClearTrack(track); err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("Cleared results for %s.\n", track)
		return
	}
	showTrack(store, track)
}

func showTrack(store *storage.Store, track string) {
	top, err := store.TopResults(track, flagResultsLimit)
	if err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("Results - %s\n", track)
	fmt.Println()
	if len(top) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'racer race %s' to set the first one!\n", track)
		return
	}

	fmt.Printf("  %-4s  %-6s  %-10s  %-10s  %-9s  %-10s  %s\n", "#", "Pos", "Time", "Best lap", "Prize", "Mode", "Date")
	fmt.Printf("  %-4s  %-6s  %-10s  %-10s  %-9s  %-10s  %s\n", "-", "---", "----", "--------", "-----", "----", "----")
	for i, r := range top {
		fmt.Printf("  %-4d  %-6s  %-10s  %-10s  %-9s  %-10s  %s\n",
			i+1,
			fmt.Sprintf("P%d/%d", r.Position, r.FieldSize),
			racer.FormatLapTime(r.TotalTime),
			racer.FormatLapTime(r.BestLap),
			racer.FormatMoney(r.Prize),
			r.Mode,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.GetTrackStats(track)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Races: %d  Wins: %d  Podiums: %d  Best: %s  Winnings: %s\n",
		stats.Races, stats.Wins, stats.Podiums, racer.Ordinal(stats.BestPosition), racer.FormatMoney(int(stats.TotalPrize)))
	if stats.BestLap > 0 {
		fmt.Printf("Best lap: %s\n", racer.FormatLapTime(stats.BestLap))
	}
}

func showSummary(store *storage.Store) {
	all, err := store.GetAllTrackStats()
	if err != nil {
		fatalf("%v", err)
	}
	if len(all) == 0 {
		fmt.Println("No results recorded yet.")
		return
	}

	tracks := make([]string, 0, len(all))
	for id := range all {
		tracks = append(tracks, id)
	}
	sort.Strings(tracks)

	fmt.Println("Tracks:")
	fmt.Println()
	fmt.Printf("  %-12s  %5s  %4s  %7s  %-10s  %s\n", "Track", "Races", "Wins", "Podiums", "Best lap", "Last raced")
	for _, id := range tracks {
		s := all[id]
		fmt.Printf("  %-12s  %5d  %4d  %7d  %-10s  %s\n",
			id, s.Races, s.Wins, s.Podiums, racer.FormatLapTime(s.BestLap), s.LastRaced.Format("2006-01-02 15:04"))
	}

	recent, err := store.RecentResults(flagResultsLimit)
	if err != nil || len(recent) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Latest races:")
	fmt.Println()
	for _, r := range recent {
		fmt.Printf("  %s  %-12s  %-10s  %-5s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Track, r.Mode, racer.Ordinal(r.Position), racer.FormatLapTime(r.TotalTime))
	}
}
