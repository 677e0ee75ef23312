package obstacles

import (
	"github.com/dhconnelly/rtreego"

	"chosenoffset.com/shadowcast/internal/core/geom"
)

const (
	treeMinChildren = 25
	treeMaxChildren = 50

	// endpointExtent is the half-size of the box stored for each endpoint.
	endpointExtent = 0.001
)

// endpoint is a single segment endpoint stored in the R-tree.
type endpoint struct {
	p    geom.Point
	rect rtreego.Rect
}

func (e *endpoint) Bounds() rtreego.Rect {
	return e.rect
}

// endpointIndex is a spatial index over every endpoint in a registry.
type endpointIndex struct {
	tree *rtreego.Rtree
}

func newEndpointIndex() *endpointIndex {
	return &endpointIndex{tree: rtreego.NewTree(2, treeMinChildren, treeMaxChildren)}
}

func (x *endpointIndex) insert(seg geom.Segment) {
	for _, p := range seg.Endpoints() {
		x.tree.Insert(&endpoint{
			p:    p,
			rect: rtreego.Point{p.X, p.Y}.ToRect(endpointExtent),
		})
	}
}

// nearest finds the closest stored endpoint within radius of p.
func (x *endpointIndex) nearest(p geom.Point, radius float64) (geom.Point, bool) {
	if radius <= 0 || x.tree.Size() == 0 {
		return geom.Point{}, false
	}

	bb, err := rtreego.NewRect(rtreego.Point{p.X - radius, p.Y - radius}, []float64{2 * radius, 2 * radius})
	if err != nil {
		return geom.Point{}, false
	}

	var (
		best     geom.Point
		bestDist = radius * radius
		found    bool
	)
	for _, obj := range x.tree.SearchIntersect(bb) {
		e := obj.(*endpoint)
		if d := geom.DistanceSq(p, e.p); d <= bestDist {
			best, bestDist, found = e.p, d, true
		}
	}

	return best, found
}
