package obstacles

import (
	"errors"
	"fmt"

	"chosenoffset.com/shadowcast/internal/core/geom"
)

// ErrCapacityExceeded is returned when a fixed-capacity buffer is full.
// It signals a misconfigured maximum and should be treated as fatal.
var ErrCapacityExceeded = errors.New("obstacle capacity exceeded")

// Buffer is a fixed-capacity segment store whose flat vertex layout is sized
// once, up front, for upload by a renderer.
type Buffer struct {
	segments []geom.Segment
	capacity int
}

// NewBuffer creates a buffer that holds at most capacity segments.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{
		segments: make([]geom.Segment, 0, capacity),
		capacity: capacity,
	}
}

// Add appends seg, failing with ErrCapacityExceeded once the buffer is full.
func (b *Buffer) Add(seg geom.Segment) error {
	if len(b.segments) == b.capacity {
		return fmt.Errorf("%w: buffer holds %d segments", ErrCapacityExceeded, b.capacity)
	}
	b.segments = append(b.segments, seg)
	return nil
}

// Len returns the number of stored segments.
func (b *Buffer) Len() int { return len(b.segments) }

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return b.capacity }

// Full reports whether another Add would fail.
func (b *Buffer) Full() bool { return len(b.segments) == b.capacity }

// Segments returns the stored segments. The slice must not be modified.
func (b *Buffer) Segments() []geom.Segment {
	return b.segments[:len(b.segments):len(b.segments)]
}

// Flat returns x1,y1,x2,y2 for every slot in the buffer. Unused slots are zero
// so the slice length is always 4*Cap.
func (b *Buffer) Flat() []float32 {
	out := make([]float32, 4*b.capacity)
	for i, s := range b.segments {
		out[i*4+0] = float32(s.A.X)
		out[i*4+1] = float32(s.A.Y)
		out[i*4+2] = float32(s.B.X)
		out[i*4+3] = float32(s.B.Y)
	}
	return out
}
