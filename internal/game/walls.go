package game

import (
	"go.uber.org/zap"

	"chosenoffset.com/shadowcast/internal/core/geom"
)

// Anchor returns the first end of the wall being drawn, if any.
func (g *Game) Anchor() (geom.Point, bool) {
	if g.anchor == nil {
		return geom.Point{}, false
	}
	return *g.anchor, true
}

// snap pulls p onto the nearest registered endpoint within the snap radius.
func (g *Game) snap(p geom.Point) geom.Point {
	if g.snapRadius <= 0 {
		return p
	}
	if q, ok := g.Obstacles.Snap(p, g.snapRadius); ok {
		return q
	}
	return p
}

// placeWallEnd handles a wall-drawing click. The first click anchors a wall;
// the second queues it. Queued walls join the scene once the frame is drawn.
func (g *Game) placeWallEnd(p geom.Point) {
	if !g.Scene.Floor.Contains(p) {
		return
	}
	p = g.snap(p)

	if g.anchor == nil {
		g.anchor = &p
		return
	}
	a := *g.anchor
	g.anchor = nil

	if a.Eq(p, 1e-9) {
		return
	}
	if g.Bounds.Len()+g.Obstacles.Pending() >= g.Bounds.Cap() {
		g.log.Warn("obstacle buffer full, wall ignored", zap.Int("capacity", g.Bounds.Cap()))
		g.ShowMessage("Obstacle buffer full")
		return
	}
	g.Obstacles.Queue(geom.Segment{A: a, B: p})
}

// commitWalls applies queued walls. It runs after Draw so no caster sees the
// registry change mid-frame.
func (g *Game) commitWalls() {
	n := g.Obstacles.Commit()
	if n == 0 {
		return
	}
	all := g.Obstacles.Segments()
	for _, s := range all[len(all)-n:] {
		if err := g.Bounds.Add(s); err != nil {
			// placeWallEnd reserves room, so this means the two stores diverged.
			g.log.Error("bounds buffer rejected wall", zap.Error(err))
			continue
		}
		g.log.Info("wall added",
			zap.Float64("x1", s.A.X), zap.Float64("y1", s.A.Y),
			zap.Float64("x2", s.B.X), zap.Float64("y2", s.B.Y),
			zap.Int("segments", len(all)))
	}
}
