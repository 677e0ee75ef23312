package caster

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"chosenoffset.com/shadowcast/internal/core/geom"
)

// Endpoint casts rays straight at every segment endpoint, plus one ray just
// either side of it. The visible boundary can only change direction at an
// endpoint, so after sorting the headings the hits trace the exact visibility
// polygon.
type Endpoint struct {
	apex     geom.Point
	capacity int // rays the buffers are allocated for
	rays     int // rays cast by the last Look
	headings []float64
	hits     []geom.Point
	scratch  []geom.Point
	looked   bool
	opts     options
}

// NewEndpoint creates an endpoint caster sized for expectedObstacles segments.
func NewEndpoint(expectedObstacles int, opts ...Option) (*Endpoint, error) {
	if expectedObstacles < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidObstacleCount, expectedObstacles)
	}

	e := &Endpoint{opts: applyOptions(opts)}
	e.allocate(RaysNeeded(expectedObstacles))
	return e, nil
}

// RaysNeeded returns the ray count for n segments.
func RaysNeeded(n int) int {
	return n * RaysPerSegment
}

// Kind returns KindEndpoint.
func (e *Endpoint) Kind() Kind { return KindEndpoint }

// Update moves the apex. Headings are only recomputed by Look.
func (e *Endpoint) Update(x, y float64) {
	e.apex = geom.Point{X: x, Y: y}
}

// Apex returns the current apex.
func (e *Endpoint) Apex() geom.Point { return e.apex }

// Rays returns the number of rays cast by the last Look.
func (e *Endpoint) Rays() int { return e.rays }

// Capacity returns the number of rays the caster currently has room for.
func (e *Endpoint) Capacity() int { return e.capacity }

// Epsilon returns the endpoint perturbation in radians.
func (e *Endpoint) Epsilon() float64 { return e.opts.epsilon }

// allocate sizes every buffer for exactly n rays.
func (e *Endpoint) allocate(n int) {
	e.headings = make([]float64, n)
	e.hits = make([]geom.Point, n)
	e.scratch = make([]geom.Point, n)
	e.capacity = n
}

// Look recomputes all headings from the current apex and segments, sorts them
// and casts a ray along each.
func (e *Endpoint) Look(segments []geom.Segment) {
	needed := RaysNeeded(len(segments))
	if needed > e.capacity {
		e.opts.logger.Debug("growing endpoint caster",
			zap.Int("from", e.capacity),
			zap.Int("to", needed))
		e.allocate(needed)
	}

	headings := e.headings[:needed]
	fillHeadings(headings, e.apex, segments, e.opts.epsilon)

	// Unsorted headings trace a scrambled, self-intersecting boundary.
	sort.Float64s(headings)

	next := e.scratch[:needed]
	castAll(next, e.apex, headings, segments, &e.opts)

	e.hits, e.scratch = e.scratch, e.hits
	e.rays = needed
	e.looked = true
}

// fillHeadings writes the six headings for each segment, in segment order.
func fillHeadings(dst []float64, apex geom.Point, segments []geom.Segment, eps float64) {
	for i, seg := range segments {
		a := geom.AngleTo(apex, seg.A)
		b := geom.AngleTo(apex, seg.B)

		h := dst[i*RaysPerSegment : (i+1)*RaysPerSegment]
		h[0], h[1], h[2] = a-eps, a, a+eps
		h[3], h[4], h[5] = b-eps, b, b+eps
	}
}

// Headings returns the sorted headings used by the last Look.
func (e *Endpoint) Headings() []float64 {
	return e.headings[:e.rays]
}

// Vertices returns the 6N hits in increasing heading order.
func (e *Endpoint) Vertices() ([]geom.Point, error) {
	if !e.looked {
		return nil, ErrNotLooked
	}
	return e.hits[:e.rays], nil
}

// Filled returns apex, hits..., hit0 as a triangle fan.
func (e *Endpoint) Filled() (Mesh, error) {
	if !e.looked {
		return Mesh{}, ErrNotLooked
	}
	return fan(e.apex, e.hits[:e.rays]), nil
}

// Wireframe returns the boundary as a closed line loop.
func (e *Endpoint) Wireframe() (Mesh, error) {
	if !e.looked {
		return Mesh{}, ErrNotLooked
	}
	return loop(e.hits[:e.rays]), nil
}
