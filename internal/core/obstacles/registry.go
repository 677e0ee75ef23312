// Package obstacles stores the wall segments a scene casts shadows against.
package obstacles

import (
	"chosenoffset.com/shadowcast/internal/core/geom"
)

// Registry is an ordered, append-only collection of segments.
// Indices handed out by Add stay valid for the lifetime of the registry.
//
// Registry is not safe for concurrent mutation. Casters read Segments during
// Look; anything added mid-frame should go through Queue and be applied with
// Commit once the frame has been drawn.
type Registry struct {
	segments []geom.Segment
	pending  []geom.Segment
	index    *endpointIndex
}

// New creates an empty registry with room for capacityHint segments.
func New(capacityHint int) *Registry {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &Registry{
		segments: make([]geom.Segment, 0, capacityHint),
		index:    newEndpointIndex(),
	}
}

// FromSegments creates a registry holding segs in order.
func FromSegments(segs []geom.Segment) *Registry {
	r := New(len(segs))
	r.AddAll(segs...)
	return r
}

// Add appends seg and returns its index.
func (r *Registry) Add(seg geom.Segment) int {
	r.segments = append(r.segments, seg)
	r.index.insert(seg)
	return len(r.segments) - 1
}

// AddAll appends segs in order.
func (r *Registry) AddAll(segs ...geom.Segment) {
	for _, s := range segs {
		r.Add(s)
	}
}

// Len returns the number of registered segments.
func (r *Registry) Len() int {
	return len(r.segments)
}

// At returns the segment registered at index i.
func (r *Registry) At(i int) geom.Segment {
	return r.segments[i]
}

// Segments returns the registered segments in insertion order.
// The returned slice is shared with the registry and must not be modified.
func (r *Registry) Segments() []geom.Segment {
	return r.segments[:len(r.segments):len(r.segments)]
}

// Queue schedules seg to be appended by the next Commit.
func (r *Registry) Queue(seg geom.Segment) {
	r.pending = append(r.pending, seg)
}

// Pending returns the number of queued segments.
func (r *Registry) Pending() int {
	return len(r.pending)
}

// Commit appends every queued segment and returns how many were added.
func (r *Registry) Commit() int {
	n := len(r.pending)
	for _, s := range r.pending {
		r.Add(s)
	}
	r.pending = r.pending[:0]
	return n
}

// Snap returns the registered endpoint nearest to p if one lies within radius.
func (r *Registry) Snap(p geom.Point, radius float64) (geom.Point, bool) {
	return r.index.nearest(p, radius)
}
