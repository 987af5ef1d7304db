// Package core provides the host-facing building blocks shared by game modes
// and the terminal platform: input actions, a coloured character screen and
// small numeric helpers. It has no external dependencies.
package core

// Rect is an axis-aligned area on the screen.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Scale maps v from [inMin, inMax] onto the integer cells [outMin, outMax].
// Values outside the input range are clamped.
func Scale(v, inMin, inMax float64, outMin, outMax int) int {
	if inMax <= inMin {
		return outMin
	}
	t := ClampF((v-inMin)/(inMax-inMin), 0, 1)
	return outMin + int(t*float64(outMax-outMin)+0.5)
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
