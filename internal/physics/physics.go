// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// CirclesOverlap checks if two circles overlap. Touching circles do not overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// RayDistance returns the perpendicular distance from (px, py) to the ray that
// starts at (ox, oy) and points along angle. ok is false when the point lies
// behind the origin or past length along the ray.
func RayDistance(px, py, ox, oy, angle, length float64) (dist float64, ok bool) {
	dx := math.Cos(angle)
	dy := math.Sin(angle)
	vx := px - ox
	vy := py - oy

	proj := vx*dx + vy*dy
	if proj < 0 || proj > length {
		return 0, false
	}
	// Magnitude of the 2D cross product with a unit vector.
	return math.Abs(vx*dy - vy*dx), true
}

// SegmentDistance returns the shortest distance from (px, py) to the segment
// (x1, y1)-(x2, y2).
func SegmentDistance(px, py, x1, y1, x2, y2 float64) float64 {
	sx := x2 - x1
	sy := y2 - y1
	lenSq := sx*sx + sy*sy
	if lenSq == 0 {
		return Distance(px, py, x1, y1)
	}
	t := ((px-x1)*sx + (py-y1)*sy) / lenSq
	t = Clamp(t, 0, 1)
	return Distance(px, py, x1+t*sx, y1+t*sy)
}

// Normalize returns the unit vector of (x, y). A zero vector is returned unchanged.
func Normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
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

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
