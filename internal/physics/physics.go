// Package physics provides collision detection and distance utilities.
package physics

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap reports whether two circles strictly overlap
// (centre distance < r1 + r2). Touching circles do not overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Reflect returns the velocity v negated when a box of half-extent half
// centred at pos pokes outside [0, limit]. Each axis is checked on its own.
func Reflect(pos, v, half, limit float64) float64 {
	if pos-half < 0 || pos+half > limit {
		return -v
	}
	return v
}
