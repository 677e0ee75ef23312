package geom

// Intersects tests ray against seg.
//
// The segment runs (x1,y1)-(x2,y2); the ray passes through its origin (x3,y3)
// and origin+direction (x4,y4). t parameterises the segment and u the ray, so a
// hit needs 0 <= t <= 1 and u >= 0. Parallel and collinear pairs (den == 0)
// never hit.
func Intersects(ray Ray, seg Segment) (Point, bool) {
	x1, y1 := seg.A.X, seg.A.Y
	x2, y2 := seg.B.X, seg.B.Y

	x3, y3 := ray.Origin.X, ray.Origin.Y
	x4, y4 := x3+ray.Dir.X, y3+ray.Dir.Y

	den := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if den == 0 {
		return Point{}, false
	}

	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / den
	u := -((x1-x2)*(y1-y3) - (y1-y2)*(x1-x3)) / den

	if t >= 0 && t <= 1 && u >= 0 {
		return Point{X: x1 + t*(x2-x1), Y: y1 + t*(y2-y1)}, true
	}

	return Point{}, false
}

// Params returns the raw (t, u) solution for ray against seg and whether the
// system was solvable. It exists for callers that need the ray distance as well
// as the hit point.
func Params(ray Ray, seg Segment) (t, u float64, ok bool) {
	x1, y1 := seg.A.X, seg.A.Y
	x2, y2 := seg.B.X, seg.B.Y

	x3, y3 := ray.Origin.X, ray.Origin.Y
	x4, y4 := x3+ray.Dir.X, y3+ray.Dir.Y

	den := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if den == 0 {
		return 0, 0, false
	}

	t = ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / den
	u = -((x1-x2)*(y1-y3) - (y1-y2)*(x1-x3)) / den
	return t, u, true
}

// Closest returns the candidate nearest to origin by squared distance.
// On ties the earliest candidate wins. ok is false for an empty slice.
func Closest(origin Point, candidates []Point) (Point, bool) {
	if len(candidates) == 0 {
		return Point{}, false
	}

	best := candidates[0]
	bestDist := DistanceSq(origin, best)
	for _, c := range candidates[1:] {
		if d := DistanceSq(origin, c); d < bestDist {
			best = c
			bestDist = d
		}
	}

	return best, true
}

// Nearest casts ray against every segment and keeps the closest hit without
// collecting candidates. Iteration follows segment order, so the first of two
// equidistant hits wins, matching Closest.
func Nearest(ray Ray, segments []Segment) (Point, bool) {
	var (
		best     Point
		bestDist float64
		found    bool
	)

	for _, seg := range segments {
		hit, ok := Intersects(ray, seg)
		if !ok {
			continue
		}
		d := DistanceSq(ray.Origin, hit)
		if !found || d < bestDist {
			best = hit
			bestDist = d
			found = true
		}
	}

	return best, found
}
