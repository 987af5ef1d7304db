package core

// Color is the foreground colour of a screen cell. The platform maps each
// value onto a terminal colour; ColorDefault leaves the terminal default.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)

// Semantic aliases used by the race renderer.
const (
	ColorPlayer   = ColorCyan
	ColorRival    = ColorMagenta
	ColorOpponent = ColorOrange
	ColorKerb     = ColorRed
	ColorPitLane  = ColorYellow
	ColorOK       = ColorGreen
	ColorWarn     = ColorYellow
	ColorCritical = ColorRed
	ColorDim      = ColorGray
)

// LevelColor picks a status colour for a 0..100 resource level.
func LevelColor(level, warnBelow, criticalBelow float64) Color {
	switch {
	case level < criticalBelow:
		return ColorCritical
	case level < warnBelow:
		return ColorWarn
	default:
		return ColorOK
	}
}
