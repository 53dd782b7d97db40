package game

import "math"

// Rect is an axis-aligned box anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether a and b intersect. Shared edges do not count.
func Overlaps(a, b Rect) bool {
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

// clamp pins v into [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// randomCoord returns a whole-number coordinate in [0, limit].
func randomCoord(rng Source, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return float64(rng.IntN(int(limit) + 1))
}
