// Package caster computes visibility polygons by casting rays from an apex
// against a set of obstacle segments.
//
// Two casters are provided. Angle samples a fixed number of evenly spaced
// headings and is cheap but approximate. Endpoint aims three rays at every
// segment endpoint and reconstructs the exact visibility boundary.
//
// A caster is driven once per frame: Update moves the apex, Look recomputes
// the hit points, and Filled or Wireframe hands the vertex sequence to a
// renderer. Vertices are always ordered by increasing ray heading.
package caster

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"chosenoffset.com/shadowcast/internal/core/geom"
)

const (
	// DefaultEpsilon is the angular offset, in radians, of the two rays cast
	// either side of each endpoint.
	DefaultEpsilon = 1e-4

	// RaysPerSegment is three rays for each of a segment's two endpoints.
	RaysPerSegment = 2 * 3

	// DefaultAngleRays is the ray count used by the angle caster unless configured.
	DefaultAngleRays = 64
)

var (
	// ErrInvalidRayCount is returned when an angle caster is built with fewer than one ray.
	ErrInvalidRayCount = errors.New("ray count must be positive")

	// ErrInvalidObstacleCount is returned for a negative expected obstacle count.
	ErrInvalidObstacleCount = errors.New("expected obstacle count must not be negative")

	// ErrNotLooked is returned when vertices are requested before the first Look.
	ErrNotLooked = errors.New("caster has not looked yet")
)

// Kind identifies one of the two caster implementations.
type Kind int

const (
	KindEndpoint Kind = iota
	KindAngle
)

func (k Kind) String() string {
	switch k {
	case KindEndpoint:
		return "endpoint"
	case KindAngle:
		return "angle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Caster is implemented by Angle and Endpoint.
type Caster interface {
	Kind() Kind

	// Update moves the apex. It does no other work.
	Update(x, y float64)

	// Look recasts every ray from the current apex against segments.
	// segments must not change while Look runs.
	Look(segments []geom.Segment)

	// Apex returns the current apex.
	Apex() geom.Point

	// Rays returns the number of rays cast by the most recent Look.
	Rays() int

	// Vertices returns one hit per ray in increasing heading order.
	// The slice is owned by the caster and is valid until the next Look.
	Vertices() ([]geom.Point, error)

	// Filled returns the vertices as a closed triangle fan around the apex.
	Filled() (Mesh, error)

	// Wireframe returns the vertices as lines: radial spokes for Angle,
	// the boundary loop for Endpoint.
	Wireframe() (Mesh, error)
}

// New builds a caster of the given kind. rays is only used by KindAngle and
// expectedObstacles only by KindEndpoint.
func New(kind Kind, rays, expectedObstacles int, opts ...Option) (Caster, error) {
	switch kind {
	case KindAngle:
		return NewAngle(rays, opts...)
	case KindEndpoint:
		return NewEndpoint(expectedObstacles, opts...)
	default:
		return nil, fmt.Errorf("unknown caster kind %v", kind)
	}
}

// Fallback decides where a ray that hits nothing ends.
type Fallback int

const (
	// FallbackApex collapses a missed ray onto the apex.
	FallbackApex Fallback = iota
	// FallbackRadius projects a missed ray a fixed distance from the apex.
	FallbackRadius
)

func (f Fallback) String() string {
	switch f {
	case FallbackApex:
		return "apex"
	case FallbackRadius:
		return "radius"
	default:
		return fmt.Sprintf("Fallback(%d)", int(f))
	}
}

// ParseFallback parses "apex" or "radius".
func ParseFallback(s string) (Fallback, error) {
	switch s {
	case "apex", "":
		return FallbackApex, nil
	case "radius":
		return FallbackRadius, nil
	default:
		return 0, fmt.Errorf("unknown fallback %q", s)
	}
}

// Option configures a caster.
type Option func(*options)

type options struct {
	epsilon  float64
	fallback Fallback
	radius   float64
	workers  int
	logger   *zap.Logger
}

func defaultOptions() options {
	return options{
		epsilon:  DefaultEpsilon,
		fallback: FallbackApex,
		radius:   1000,
		workers:  1,
		logger:   zap.NewNop(),
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithEpsilon sets the endpoint perturbation used by the endpoint caster.
func WithEpsilon(eps float64) Option {
	return func(o *options) {
		if eps > 0 {
			o.epsilon = eps
		}
	}
}

// WithFallback selects the no-hit policy.
func WithFallback(f Fallback) Option {
	return func(o *options) { o.fallback = f }
}

// WithFallbackRadius selects FallbackRadius with distance r.
func WithFallbackRadius(r float64) Option {
	return func(o *options) {
		o.fallback = FallbackRadius
		if r > 0 {
			o.radius = r
		}
	}
}

// WithWorkers spreads the per-ray loop over n goroutines. n <= 1 keeps Look
// on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithLogger attaches a logger for capacity changes.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// miss returns where a ray that hit nothing ends.
func (o *options) miss(ray geom.Ray) geom.Point {
	if o.fallback == FallbackRadius {
		return ray.Origin.Add(ray.Dir, o.radius)
	}
	return ray.Origin
}

// cast resolves the ray from apex at theta to its nearest hit or fallback point.
func (o *options) cast(apex geom.Point, theta float64, segments []geom.Segment) geom.Point {
	ray := geom.Ray{Origin: apex, Dir: geom.FromAngle(theta)}
	if hit, ok := geom.Nearest(ray, segments); ok {
		return hit
	}
	return o.miss(ray)
}
