package caster

import (
	"fmt"

	"chosenoffset.com/shadowcast/internal/core/geom"
)

// Angle casts a fixed number of rays at equal angular spacing. It is an
// approximation: walls thinner than the gap between two rays can be missed.
type Angle struct {
	apex     geom.Point
	headings []float64
	hits     []geom.Point
	scratch  []geom.Point
	looked   bool
	opts     options
}

// NewAngle creates an angle caster casting rays rays per Look.
func NewAngle(rays int, opts ...Option) (*Angle, error) {
	if rays <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRayCount, rays)
	}

	slice := geom.Tau / float64(rays)
	headings := make([]float64, rays)
	for i := range headings {
		headings[i] = float64(i) * slice
	}

	return &Angle{
		headings: headings,
		hits:     make([]geom.Point, rays),
		scratch:  make([]geom.Point, rays),
		opts:     applyOptions(opts),
	}, nil
}

// Kind returns KindAngle.
func (a *Angle) Kind() Kind { return KindAngle }

// Update moves the apex.
func (a *Angle) Update(x, y float64) {
	a.apex = geom.Point{X: x, Y: y}
}

// Apex returns the current apex.
func (a *Angle) Apex() geom.Point { return a.apex }

// Rays returns the fixed ray count.
func (a *Angle) Rays() int { return len(a.headings) }

// Headings returns the fixed ray headings in radians.
func (a *Angle) Headings() []float64 { return a.headings }

// Look casts every ray against segments.
func (a *Angle) Look(segments []geom.Segment) {
	castAll(a.scratch, a.apex, a.headings, segments, &a.opts)
	a.hits, a.scratch = a.scratch, a.hits
	a.looked = true
}

// Vertices returns the hit for each ray, starting at heading 0.
func (a *Angle) Vertices() ([]geom.Point, error) {
	if !a.looked {
		return nil, ErrNotLooked
	}
	return a.hits, nil
}

// Filled returns apex, hit0..hitR-1, hit0 as a triangle fan.
func (a *Angle) Filled() (Mesh, error) {
	if !a.looked {
		return Mesh{}, ErrNotLooked
	}
	return fan(a.apex, a.hits), nil
}

// Wireframe returns an apex->hit line for every ray.
func (a *Angle) Wireframe() (Mesh, error) {
	if !a.looked {
		return Mesh{}, ErrNotLooked
	}
	return spokes(a.apex, a.hits), nil
}
