package geom

import "math"

// DistanceSq returns the squared euclidean distance between a and b.
func DistanceSq(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	return math.Sqrt(DistanceSq(a, b))
}

// NormalizeAngle maps theta into [0, 2π).
func NormalizeAngle(theta float64) float64 {
	a := math.Mod(theta, Tau)
	if a < 0 {
		a += Tau
	}
	// math.Mod can hand back Tau itself for tiny negative inputs after the add.
	if a >= Tau {
		a = 0
	}
	return a
}

// AngleTo returns the normalised heading from origin to p.
func AngleTo(origin, p Point) float64 {
	return NormalizeAngle(math.Atan2(p.Y-origin.Y, p.X-origin.X))
}

// PointInPolygon reports whether p lies inside the closed ring through
// polygon, by the even-odd rule. Points exactly on an edge may go either way.
func PointInPolygon(p Point, polygon []Point) bool {
	inside := false
	prev := len(polygon) - 1
	for i, cur := range polygon {
		a, b := cur, polygon[prev]
		prev = i
		if (a.Y > p.Y) == (b.Y > p.Y) {
			continue
		}
		// x where edge ab crosses the horizontal line through p.
		x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if p.X < x {
			inside = !inside
		}
	}
	return inside
}

// IsSimplePolygon reports whether the closed ring through polygon has no two
// non-adjacent edges that properly cross. Touching and collinear overlaps are
// tolerated since visibility rings routinely graze wall endpoints.
func IsSimplePolygon(polygon []Point) bool {
	n := len(polygon)
	if n < 4 {
		return true
	}

	for i := 0; i < n; i++ {
		a1, a2 := polygon[i], polygon[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // shares the closing vertex
			}
			b1, b2 := polygon[j], polygon[(j+1)%n]
			if properCross(a1, a2, b1, b2) {
				return false
			}
		}
	}

	return true
}

// cross returns the z component of (b-a) x (p-a).
func cross(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

const crossTolerance = 1e-9

func properCross(a1, a2, b1, b2 Point) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)

	return ((d1 > crossTolerance && d2 < -crossTolerance) || (d1 < -crossTolerance && d2 > crossTolerance)) &&
		((d3 > crossTolerance && d4 < -crossTolerance) || (d3 < -crossTolerance && d4 > crossTolerance))
}
