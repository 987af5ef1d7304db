package racer

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-racer/internal/games/racer/sim"
)

// FormatLapTime renders seconds as m:ss.mmm. Zero or negative times render as
// a placeholder.
func FormatLapTime(seconds float64) string {
	if !(seconds > 0) || math.IsInf(seconds, 0) {
		return "-:--.---"
	}
	ms := int(math.Round(seconds * 1000))
	return fmt.Sprintf("%d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}

// FormatMoney renders a prize with thousands separators.
func FormatMoney(amount int) string {
	return "$" + humanize.Comma(int64(amount))
}

// Ordinal renders a race position as 1st, 2nd, 3rd...
func Ordinal(position int) string {
	return humanize.Ordinal(position)
}

// describe turns tick events into HUD notices.
func (g *Game) describe(events []sim.Event) []string {
	var out []string
	for _, ev := range events {
		switch e := ev.(type) {
		case sim.CollisionStarted:
			out = append(out, fmt.Sprintf("Contact with %s (%s)", g.DisplayName(e.Collision.OpponentID), e.Collision.Direction))
		case sim.LapCompleted:
			line := fmt.Sprintf("Lap %d: %s", e.Record.Lap, FormatLapTime(e.Record.Time))
			if e.Personal {
				line += " (best)"
			}
			out = append(out, line)
		case sim.PitEntered:
			out = append(out, "Pit stop: servicing")
		case sim.PitCompleted:
			out = append(out, "Pit stop complete: fuel and tires refilled")
		case sim.RaceFinished:
			out = append(out, fmt.Sprintf("Chequered flag! Finished %s, winner %s", Ordinal(e.Position), g.DisplayName(e.WinnerID)))
		}
	}
	return out
}
