// Package geom holds the value types and intersection math used by the casters.
package geom

import "math"

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

// Point represents a 2D point in space
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add offsets the point by d scaled by s.
func (p Point) Add(d Direction, s float64) Point {
	return Point{X: p.X + d.X*s, Y: p.Y + d.Y*s}
}

// Eq reports whether p and q are within tol of each other on both axes.
func (p Point) Eq(q Point, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

// IsNaN reports whether either coordinate is NaN.
func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

// Direction is a unit-ish 2D vector.
type Direction struct {
	X, Y float64
}

// FromAngle returns (cos θ, sin θ).
func FromAngle(theta float64) Direction {
	return Direction{X: math.Cos(theta), Y: math.Sin(theta)}
}

// Segment represents a wall segment that can cast shadows.
// Segments are never mutated once handed to an obstacle registry.
type Segment struct {
	A, B Point
}

// Seg builds a segment from its endpoint coordinates.
func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{A: Point{X: x1, Y: y1}, B: Point{X: x2, Y: y2}}
}

// Endpoints returns A and B.
func (s Segment) Endpoints() [2]Point {
	return [2]Point{s.A, s.B}
}

// Ray is a half-line cast from Origin along Dir.
type Ray struct {
	Origin Point
	Dir    Direction
}

// NewRay builds a ray from (x, y) heading at angle theta.
func NewRay(x, y, theta float64) Ray {
	return Ray{Origin: Point{X: x, Y: y}, Dir: FromAngle(theta)}
}
