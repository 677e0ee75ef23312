package caster

import (
	"golang.org/x/sync/errgroup"

	"chosenoffset.com/shadowcast/internal/core/geom"
)

// minRaysPerWorker keeps tiny ray sets on one goroutine.
const minRaysPerWorker = 32

// castAll writes the resolved point for headings[i] into dst[i].
// dst and headings must have the same length.
func castAll(dst []geom.Point, apex geom.Point, headings []float64, segments []geom.Segment, o *options) {
	n := len(headings)
	workers := o.workers
	if limit := n / minRaysPerWorker; workers > limit {
		workers = limit
	}

	if workers <= 1 {
		for i, theta := range headings {
			dst[i] = o.cast(apex, theta, segments)
		}
		return
	}

	// Each worker owns a disjoint index range of dst.
	var g errgroup.Group
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				dst[i] = o.cast(apex, headings[i], segments)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail
}
