// Package scene builds the obstacle layouts a caster looks at: the default
// demo arena, tile grids, SVG drawings and scene files.
package scene

import (
	"math"

	"chosenoffset.com/shadowcast/internal/core/geom"
)

// CircleSlices is the number of segments approximating the default arena's
// centre circle.
const CircleSlices = 32

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p geom.Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Scene is a named obstacle layout with a starting observer position.
type Scene struct {
	Name     string
	Width    float64
	Height   float64
	Observer geom.Point
	Floor    Rect
	Segments []geom.Segment
}

// Padding returns the frame inset for a width x height arena: 10px at
// 800x600, scaled with the frame.
func Padding(width, height float64) (wPad, hPad float64) {
	return 10 * width / 800, 10 * height / 600
}

// Default builds the demo arena: a padded bounding frame, a pillar at each
// side and a circle in the middle.
func Default(width, height float64) *Scene {
	wPad, hPad := Padding(width, height)

	s := &Scene{
		Name:     "default",
		Width:    width,
		Height:   height,
		Observer: geom.Pt(width/2, height/2),
		Floor:    Rect{X: wPad, Y: hPad, W: width - 2*wPad, H: height - 2*hPad},
		Segments: make([]geom.Segment, 0, 12+CircleSlices),
	}

	// Frame
	s.addQuad(
		geom.Pt(wPad, hPad),
		geom.Pt(width-wPad, hPad),
		geom.Pt(width-wPad, height-hPad),
		geom.Pt(wPad, height-hPad),
	)

	w14, h14 := width/4, height/4
	w34, h34 := 3*width/4, 3*height/4

	// West and east pillars
	for _, cx := range []float64{w14, w34} {
		s.addQuad(
			geom.Pt(cx-wPad, h14-hPad),
			geom.Pt(cx+wPad, h14-hPad),
			geom.Pt(cx+wPad, h34+hPad),
			geom.Pt(cx-wPad, h34+hPad),
		)
	}

	s.Segments = append(s.Segments, Circle(geom.Pt(width/2, height/2), (h34-h14)/2, CircleSlices)...)
	return s
}

func (s *Scene) addQuad(a, b, c, d geom.Point) {
	s.Segments = append(s.Segments,
		geom.Segment{A: a, B: b},
		geom.Segment{A: b, B: c},
		geom.Segment{A: c, B: d},
		geom.Segment{A: d, B: a},
	)
}

// Circle approximates a circle with slices segments, each running from the
// newer point back to the previous one.
func Circle(center geom.Point, radius float64, slices int) []geom.Segment {
	if slices < 3 {
		return nil
	}
	slice := geom.Tau / float64(slices)
	segs := make([]geom.Segment, 0, slices)

	prev := geom.Pt(center.X+radius, center.Y)
	for i := 1; i <= slices; i++ {
		angle := float64(i) * slice
		next := geom.Pt(center.X+radius*math.Cos(angle), center.Y+radius*math.Sin(angle))
		segs = append(segs, geom.Segment{A: next, B: prev})
		prev = next
	}
	return segs
}

// Bounds returns the smallest rectangle containing every segment endpoint.
func Bounds(segs []geom.Segment) Rect {
	if len(segs) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range segs {
		for _, p := range s.Endpoints() {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
