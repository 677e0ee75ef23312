package scene

import (
	"fmt"
	"math"

	"chosenoffset.com/shadowcast/internal/core/geom"
)

// Wall is the grid cell character that blocks sight.
const Wall = '#'

// Coord is a grid cell position.
type Coord struct {
	X, Y int
}

type edgeSide int

const (
	sideTop edgeSide = iota
	sideRight
	sideBottom
	sideLeft
)

// edge is a perimeter segment tagged with the side of the cell it came from,
// so only edges facing the same way are merged.
type edge struct {
	seg  geom.Segment
	side edgeSide
}

// Grid is a rectangular tile map. Rows may be ragged; missing cells are open.
type Grid struct {
	rows     []string
	width    int
	tileSize float64
}

// NewGrid wraps rows of cells tileSize pixels square.
func NewGrid(rows []string, tileSize float64) (*Grid, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("invalid tile size: %v", tileSize)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("grid has no rows")
	}
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	return &Grid{rows: rows, width: width, tileSize: tileSize}, nil
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (width, height int) {
	return g.width, len(g.rows)
}

// BlocksSight reports whether the cell at (x, y) is a wall.
func (g *Grid) BlocksSight(x, y int) bool {
	if y < 0 || y >= len(g.rows) || x < 0 || x >= len(g.rows[y]) {
		return false
	}
	return g.rows[y][x] == Wall
}

// FromGrid converts the wall cells of rows into obstacle segments. Touching
// wall cells are treated as one region; only edges facing open cells are kept,
// and colinear neighbours are merged into single walls.
func FromGrid(rows []string, tileSize float64) ([]geom.Segment, error) {
	g, err := NewGrid(rows, tileSize)
	if err != nil {
		return nil, err
	}
	return g.Segments(), nil
}

// Segments extracts the merged wall outline of g.
func (g *Grid) Segments() []geom.Segment {
	var edges []edge
	for _, region := range g.regions() {
		edges = append(edges, g.perimeter(region)...)
	}

	merged := mergeEdges(edges)
	segs := make([]geom.Segment, len(merged))
	for i, e := range merged {
		segs[i] = e.seg
	}
	return segs
}

// regions groups the wall cells into 4-connected regions, scanning row by row.
func (g *Grid) regions() [][]Coord {
	visited := make(map[Coord]bool)
	var regions [][]Coord

	for y := range g.rows {
		for x := 0; x < g.width; x++ {
			c := Coord{X: x, Y: y}
			if visited[c] || !g.BlocksSight(x, y) {
				continue
			}
			regions = append(regions, g.floodFill(c, visited))
		}
	}
	return regions
}

func (g *Grid) floodFill(start Coord, visited map[Coord]bool) []Coord {
	var region []Coord
	queue := []Coord{start}
	visited[start] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		region = append(region, cur)

		for _, n := range [...]Coord{
			{X: cur.X, Y: cur.Y - 1},
			{X: cur.X + 1, Y: cur.Y},
			{X: cur.X, Y: cur.Y + 1},
			{X: cur.X - 1, Y: cur.Y},
		} {
			if visited[n] || !g.BlocksSight(n.X, n.Y) {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}
	return region
}

// perimeter returns the exposed edges of region, wound clockwise in screen
// coordinates.
func (g *Grid) perimeter(region []Coord) []edge {
	in := make(map[Coord]bool, len(region))
	for _, c := range region {
		in[c] = true
	}

	ts := g.tileSize
	var edges []edge
	for _, c := range region {
		left, top := float64(c.X)*ts, float64(c.Y)*ts
		right, bottom := left+ts, top+ts

		if !in[Coord{X: c.X, Y: c.Y - 1}] {
			edges = append(edges, edge{geom.Seg(left, top, right, top), sideTop})
		}
		if !in[Coord{X: c.X + 1, Y: c.Y}] {
			edges = append(edges, edge{geom.Seg(right, top, right, bottom), sideRight})
		}
		if !in[Coord{X: c.X, Y: c.Y + 1}] {
			edges = append(edges, edge{geom.Seg(right, bottom, left, bottom), sideBottom})
		}
		if !in[Coord{X: c.X - 1, Y: c.Y}] {
			edges = append(edges, edge{geom.Seg(left, bottom, left, top), sideLeft})
		}
	}
	return edges
}

const mergeTolerance = 0.001

// mergeEdges joins edges that face the same way, share a line and touch end
// to end. Output order follows the first edge of each merged run.
func mergeEdges(edges []edge) []edge {
	used := make([]bool, len(edges))
	var out []edge

	for i := range edges {
		if used[i] {
			continue
		}
		cur := edges[i]
		used[i] = true

		for grown := true; grown; {
			grown = false
			for j := range edges {
				if used[j] || !canMerge(cur, edges[j]) {
					continue
				}
				cur = merge(cur, edges[j])
				used[j] = true
				grown = true
				break
			}
		}
		out = append(out, cur)
	}
	return out
}

func canMerge(a, b edge) bool {
	if a.side != b.side {
		return false
	}
	near := func(p, q float64) bool { return math.Abs(p-q) < mergeTolerance }

	switch a.side {
	case sideTop, sideBottom:
		if !near(a.seg.A.Y, b.seg.A.Y) {
			return false
		}
		return near(a.seg.B.X, b.seg.A.X) || near(a.seg.A.X, b.seg.B.X)
	default:
		if !near(a.seg.A.X, b.seg.A.X) {
			return false
		}
		return near(a.seg.B.Y, b.seg.A.Y) || near(a.seg.A.Y, b.seg.B.Y)
	}
}

// merge extends a over b, keeping a's winding.
func merge(a, b edge) edge {
	s := a.seg
	switch a.side {
	case sideTop:
		s.A.X = min(s.A.X, b.seg.A.X)
		s.B.X = max(s.B.X, b.seg.B.X)
	case sideBottom:
		s.A.X = max(s.A.X, b.seg.A.X)
		s.B.X = min(s.B.X, b.seg.B.X)
	case sideRight:
		s.A.Y = min(s.A.Y, b.seg.A.Y)
		s.B.Y = max(s.B.Y, b.seg.B.Y)
	case sideLeft:
		s.A.Y = max(s.A.Y, b.seg.A.Y)
		s.B.Y = min(s.B.Y, b.seg.B.Y)
	}
	return edge{seg: s, side: a.side}
}
