package racer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/games/racer/sim"
)

const (
	hudRows        = 2
	footerRows     = 2
	metresPerRow   = 12.0
	minWidth       = 40
	minHeight      = 14
	maxTrackWidth  = 50
	standingsWidth = 26
	gaugeWidth     = 12
)

// Render draws the race: HUD, track view, standings and overlays.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	if w < minWidth || h < minHeight {
		dst.DrawTextCentered(h/2, "Terminal too small", core.ColorWarn)
		return
	}
	if g.sim == nil {
		dst.DrawTextCentered(h/2, "No race loaded", core.ColorWarn)
		return
	}

	f := g.frame
	trackW := core.Min(w-2, maxTrackWidth)
	panel := w-trackW-3 >= standingsWidth
	x0 := 1
	if !panel {
		x0 = (w - trackW) / 2
	}

	g.drawHUD(dst, f)
	g.drawTrack(dst, f, core.NewRect(x0, hudRows, trackW, h-hudRows-footerRows))
	if panel {
		g.drawStandings(dst, f, x0+trackW+2, hudRows)
	}
	g.drawFooter(dst, h-footerRows)

	switch {
	case f.Finished:
		g.drawResults(dst)
	case g.paused:
		dst.DrawTextCentered(h/2, " PAUSED - press P to resume ", core.ColorWarn)
	}
}

func (g *Game) drawHUD(dst *core.Screen, f sim.RaceFrame) {
	field := len(f.Opponents) + 1
	line := fmt.Sprintf("P%d/%d  LAP %d/%d  %s  SPD %3.0f", f.Position, field, f.LapIndex, f.LapCount, FormatLapTime(f.Clock), f.Player.Speed)
	dst.DrawTextColor(1, 0, line, core.ColorWhite)

	where := fmt.Sprintf("%s  %s", g.plan.Track.Name, weatherLabel(f.Weather))
	dst.DrawTextColor(dst.Width()-len([]rune(where))-1, 0, where, core.ColorDim)

	x := 1
	dst.DrawText(x, 1, "FUEL")
	dst.DrawBar(x+5, 1, gaugeWidth, f.Fuel/100, core.LevelColor(f.Fuel, 25, 10))
	dst.DrawText(x+6+gaugeWidth, 1, fmt.Sprintf("%3.0f%%", f.Fuel))

	x += 12 + gaugeWidth
	dst.DrawText(x, 1, "TIRE")
	dst.DrawBar(x+5, 1, gaugeWidth, f.TireWear/100, core.LevelColor(f.TireWear, 25, 10))
	dst.DrawText(x+6+gaugeWidth, 1, fmt.Sprintf("%3.0f%%", f.TireWear))

	x += 12 + gaugeWidth
	switch {
	case f.Pit.Mode == sim.PitPitting:
		dst.DrawTextColor(x, 1, "PIT", core.ColorPitLane)
		dst.DrawBar(x+4, 1, gaugeWidth, f.Pit.Progress/100, core.ColorPitLane)
	case f.InPitZone:
		dst.DrawTextColor(x, 1, "PIT LANE OPEN", core.ColorPitLane)
	}
}

func weatherLabel(w sim.Weather) string {
	if w.Condition == sim.ConditionClear || w.Condition == "" {
		return "clear"
	}
	return fmt.Sprintf("%s %.0f%%", w.Condition, w.Intensity*100)
}

// drawTrack draws the road scrolling with the player, who sits near the bottom.
func (g *Game) drawTrack(dst *core.Screen, f sim.RaceFrame, r core.Rect) {
	if f.LapCount <= 0 || r.H < 4 {
		return
	}
	lapLength := f.TotalDistance / float64(f.LapCount)
	zone := g.sim.PitZone()
	playerRow := r.Bottom() - 3
	left, right := r.X, r.Right()-1
	center := core.Scale(50, 0, 100, left+1, right-1)

	for y := r.Y; y < r.Bottom(); y++ {
		d := f.Player.Distance + float64(playerRow-y)*metresPerRow
		if d < 0 || d > f.TotalDistance+metresPerRow {
			continue
		}

		kerb := core.ColorKerb
		if int(d/(2*metresPerRow))%2 == 0 {
			kerb = core.ColorWhite
		}
		dst.SetColor(left, y, '▐', kerb)
		progress := math.Mod(d, lapLength) / lapLength
		if zone.Contains(progress) {
			dst.SetColor(right, y, '▒', core.ColorPitLane)
		} else {
			dst.SetColor(right, y, '▌', kerb)
		}

		if crossesLine(d, lapLength) {
			dst.DrawHLine(left+1, y, right-left-1, '═', core.ColorWhite)
			continue
		}
		if y%2 == 0 {
			dst.SetColor(center, y, '┊', core.ColorDim)
		}
		g.drawWeather(dst, f, left+1, right-1, y)
	}

	viewRows := float64(playerRow - r.Y)
	visible := viewRows * f.Weather.VisibilityModifier
	if f.Weather.VisibilityModifier == 0 {
		visible = viewRows
	}
	for _, op := range f.Opponents {
		rows := (op.Distance - f.Player.Distance) / metresPerRow
		if rows > visible {
			continue
		}
		y := playerRow - int(math.Round(rows))
		if y < r.Y || y >= r.Bottom() {
			continue
		}
		x := core.Scale(op.Lateral, 0, 100, left+1, right-1)
		c := core.ColorOpponent
		if g.rivals[op.ID] {
			c = core.ColorRival
		}
		ch := '▲'
		if op.Colliding {
			ch, c = '✱', core.ColorWarn
		}
		dst.SetColor(x, y, ch, c)
	}

	x := core.Scale(f.Player.Lateral, 0, 100, left+1, right-1)
	c := core.ColorPlayer
	switch {
	case f.Pit.Mode == sim.PitPitting:
		c = core.ColorPitLane
	case f.Player.Colliding:
		c = core.ColorCritical
	}
	dst.SetColor(x, playerRow, '█', c)
	dst.SetColor(x, playerRow-1, '▲', c)
}

// crossesLine reports whether a lap line lies inside the row ending at d.
func crossesLine(d, lapLength float64) bool {
	if d <= 0 {
		return false
	}
	return math.Floor(d/lapLength) != math.Floor((d-metresPerRow)/lapLength)
}

func (g *Game) drawWeather(dst *core.Screen, f sim.RaceFrame, x0, x1, y int) {
	var drop rune
	switch f.Weather.Condition {
	case sim.ConditionRain:
		drop = '\''
	case sim.ConditionStorm:
		drop = '/'
	default:
		return
	}
	density := int(30 - 20*f.Weather.Intensity)
	if density < 5 {
		density = 5
	}
	for x := x0; x <= x1; x++ {
		if (x*31+y*17+int(f.Tick))%density == 0 && dst.Get(x, y) == ' ' {
			dst.SetColor(x, y, drop, core.ColorBlue)
		}
	}
}

func (g *Game) drawStandings(dst *core.Screen, f sim.RaceFrame, x, y int) {
	dst.DrawTextColor(x, y, "STANDINGS", core.ColorWhite)
	for i, st := range f.Standings {
		c := core.ColorDefault
		switch {
		case st.Player:
			c = core.ColorPlayer
		case g.rivals[st.ID]:
			c = core.ColorRival
		}
		name := []rune(g.DisplayName(st.ID))
		if len(name) > standingsWidth-4 {
			name = name[:standingsWidth-4]
		}
		dst.DrawTextColor(x, y+1+i, fmt.Sprintf("%d. %s", st.Position, string(name)), c)
	}

	row := y + len(f.Standings) + 2
	dst.DrawTextColor(x, row, "LAP   "+FormatLapTime(f.CurrentLapTime), core.ColorDim)
	dst.DrawTextColor(x, row+1, "LAST  "+FormatLapTime(f.LastLapTime), core.ColorDim)
	dst.DrawTextColor(x, row+2, "BEST  "+FormatLapTime(f.BestLapTime), core.ColorDim)
}

func (g *Game) drawFooter(dst *core.Screen, y int) {
	if g.advice != nil && g.adviceLeft > 0 {
		c := core.ColorOK
		switch g.advice.Urgency {
		case sim.UrgencyWarn:
			c = core.ColorWarn
		case sim.UrgencyCritical:
			c = core.ColorCritical
		}
		dst.DrawTextColor(1, y, "PIT WALL: "+g.advice.Text, c)
	}
	if g.notice != "" && g.noticeLeft > 0 {
		dst.DrawTextColor(1, y+1, g.notice, core.ColorWhite)
		return
	}
	dst.DrawTextColor(1, y+1, "↑ throttle  ↓ brake  ←→ steer  SPACE pit  P pause  Q quit", core.ColorDim)
}

func (g *Game) drawResults(dst *core.Screen) {
	res, ok := g.sim.Result()
	if !ok {
		return
	}
	lines := []string{
		"RACE FINISHED",
		"",
		fmt.Sprintf("Position   %s", Ordinal(res.FinalPosition)),
		fmt.Sprintf("Prize      %s", FormatMoney(res.PrizeMoney)),
		fmt.Sprintf("Time       %s", FormatLapTime(res.TotalTime)),
		fmt.Sprintf("Best lap   %s", FormatLapTime(res.BestLap)),
		fmt.Sprintf("Winner     %s", g.DisplayName(res.WinnerID)),
		"",
		"R restart   Q quit",
	}
	boxW, boxH := 36, len(lines)+2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	for y := box.Y; y < box.Bottom(); y++ {
		dst.DrawHLine(box.X, y, box.W, ' ', core.ColorDefault)
	}
	dst.DrawBox(box, core.ColorWhite)
	for i, line := range lines {
		c := core.ColorDefault
		if i == 0 {
			c = core.ColorOK
		}
		dst.DrawTextColor(box.X+3, box.Y+1+i, line, c)
	}
}
