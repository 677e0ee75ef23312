package caster

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"chosenoffset.com/shadowcast/internal/core/geom"
)

// Topology tells a renderer how to connect a Mesh's vertices.
type Topology int

const (
	// LineList pairs vertices: (0,1), (2,3), ...
	LineList Topology = iota
	// LineLoop connects consecutive vertices; the last vertex repeats the first.
	LineLoop
	// TriangleFan connects vertex 0 to every consecutive pair after it.
	TriangleFan
)

func (t Topology) String() string {
	switch t {
	case LineList:
		return "lines"
	case LineLoop:
		return "line-loop"
	case TriangleFan:
		return "triangle-fan"
	default:
		return fmt.Sprintf("Topology(%d)", int(t))
	}
}

// Mesh is an ordered vertex sequence plus the topology it should be drawn with.
type Mesh struct {
	Topology Topology
	Vertices []geom.Point
}

// Triangle indices are uint16, which bounds how large a fan can get.
const (
	MaxFanVertices = math.MaxUint16 + 1
	// MaxFanRays is the largest ray count whose fan (apex, hits, first hit)
	// is still indexable.
	MaxFanRays = MaxFanVertices - 2
	// MaxFanObstacles is the most segments an endpoint fan can be built for.
	MaxFanObstacles = MaxFanRays / RaysPerSegment
)

// ErrFanTooLarge is returned by FanIndices when a vertex index would not fit
// in a uint16.
var ErrFanTooLarge = errors.New("triangle fan exceeds uint16 index range")

// FanIndices returns triangle indices (0, i, i+1) for a TriangleFan mesh.
func (m Mesh) FanIndices() ([]uint16, error) {
	if m.Topology != TriangleFan || len(m.Vertices) < 3 {
		return nil, nil
	}
	if len(m.Vertices) > MaxFanVertices {
		return nil, fmt.Errorf("%w: %d vertices, max %d", ErrFanTooLarge, len(m.Vertices), MaxFanVertices)
	}
	indices := make([]uint16, 0, 3*(len(m.Vertices)-2))
	for i := 1; i < len(m.Vertices)-1; i++ {
		indices = append(indices, 0, uint16(i), uint16(i+1))
	}
	return indices, nil
}

// Lines returns the mesh as independent line segments regardless of topology.
func (m Mesh) Lines() []geom.Segment {
	v := m.Vertices
	var out []geom.Segment
	switch m.Topology {
	case LineList:
		out = make([]geom.Segment, 0, len(v)/2)
		for i := 0; i+1 < len(v); i += 2 {
			out = append(out, geom.Segment{A: v[i], B: v[i+1]})
		}
	case LineLoop:
		for i := 0; i+1 < len(v); i++ {
			out = append(out, geom.Segment{A: v[i], B: v[i+1]})
		}
	case TriangleFan:
		for i := 1; i+1 < len(v); i++ {
			out = append(out, geom.Segment{A: v[i], B: v[i+1]})
		}
	}
	return out
}

// fan builds apex, hits..., hits[0].
func fan(apex geom.Point, hits []geom.Point) Mesh {
	v := make([]geom.Point, 0, len(hits)+2)
	v = append(v, apex)
	v = append(v, hits...)
	if len(hits) > 0 {
		v = append(v, hits[0])
	}
	return Mesh{Topology: TriangleFan, Vertices: v}
}

// spokes builds apex->hit line pairs.
func spokes(apex geom.Point, hits []geom.Point) Mesh {
	v := make([]geom.Point, 0, 2*len(hits))
	for _, h := range hits {
		v = append(v, apex, h)
	}
	return Mesh{Topology: LineList, Vertices: v}
}

// loop builds hits..., hits[0].
func loop(hits []geom.Point) Mesh {
	v := make([]geom.Point, 0, len(hits)+1)
	v = append(v, hits...)
	if len(hits) > 0 {
		v = append(v, hits[0])
	}
	return Mesh{Topology: LineLoop, Vertices: v}
}

// Mode is one of the four ways a scene can be lit: either caster, drawn
// filled or as wireframe.
type Mode int

const (
	ModeFilledEndpoint Mode = iota
	ModeLineEndpoint
	ModeFilledAngle
	ModeLineAngle

	modeCount
)

// Modes lists every Mode in key-binding order.
func Modes() []Mode {
	return []Mode{ModeFilledEndpoint, ModeLineEndpoint, ModeFilledAngle, ModeLineAngle}
}

var modeNames = [...]string{
	ModeFilledEndpoint: "filled-endpoint",
	ModeLineEndpoint:   "line-endpoint",
	ModeFilledAngle:    "filled-angle",
	ModeLineAngle:      "line-angle",
}

func (m Mode) String() string {
	if m < 0 || m >= modeCount {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode parses a mode name such as "filled-endpoint".
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown render mode %q", s)
}

// Kind returns the caster kind the mode draws from.
func (m Mode) Kind() Kind {
	if m == ModeFilledAngle || m == ModeLineAngle {
		return KindAngle
	}
	return KindEndpoint
}

// Filled reports whether the mode draws a filled region.
func (m Mode) Filled() bool {
	return m == ModeFilledEndpoint || m == ModeFilledAngle
}

// Mesh returns c's output in the presentation this mode calls for.
func (m Mode) Mesh(c Caster) (Mesh, error) {
	if m.Filled() {
		return c.Filled()
	}
	return c.Wireframe()
}
