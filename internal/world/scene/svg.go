package scene

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/JoshVarga/svgparser"

	"chosenoffset.com/shadowcast/internal/core/geom"
)

// FromSVG reads obstacle segments from an SVG drawing. Every <line>,
// <polyline>, <polygon> and <rect> element contributes its edges; polygons
// and rects are closed. Transforms and curves are ignored.
func FromSVG(r io.Reader) ([]geom.Segment, error) {
	root, err := svgparser.Parse(r, true)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	var segs []geom.Segment
	if err := walkSVG(root, &segs); err != nil {
		return nil, err
	}
	return segs, nil
}

// walkSVG visits elements in document order so segment order is stable.
func walkSVG(el *svgparser.Element, segs *[]geom.Segment) error {
	var err error
	switch el.Name {
	case "line":
		err = svgLine(el, segs)
	case "polyline":
		err = svgPoly(el, segs, false)
	case "polygon":
		err = svgPoly(el, segs, true)
	case "rect":
		err = svgRect(el, segs)
	}
	if err != nil {
		return err
	}

	for _, child := range el.Children {
		if err := walkSVG(child, segs); err != nil {
			return err
		}
	}
	return nil
}

func svgLine(el *svgparser.Element, segs *[]geom.Segment) error {
	v, err := attrs(el, "x1", "y1", "x2", "y2")
	if err != nil {
		return err
	}
	*segs = append(*segs, geom.Seg(v[0], v[1], v[2], v[3]))
	return nil
}

func svgRect(el *svgparser.Element, segs *[]geom.Segment) error {
	v, err := attrs(el, "x", "y", "width", "height")
	if err != nil {
		return err
	}
	x, y, w, h := v[0], v[1], v[2], v[3]
	if w <= 0 || h <= 0 {
		return nil
	}
	*segs = append(*segs,
		geom.Seg(x, y, x+w, y),
		geom.Seg(x+w, y, x+w, y+h),
		geom.Seg(x+w, y+h, x, y+h),
		geom.Seg(x, y+h, x, y),
	)
	return nil
}

func svgPoly(el *svgparser.Element, segs *[]geom.Segment, closed bool) error {
	pts, err := parsePoints(el.Attributes["points"])
	if err != nil {
		return fmt.Errorf("<%s>: %w", el.Name, err)
	}
	if len(pts) < 2 {
		return nil
	}
	for i := 1; i < len(pts); i++ {
		*segs = append(*segs, geom.Segment{A: pts[i-1], B: pts[i]})
	}
	if closed && len(pts) > 2 && pts[0] != pts[len(pts)-1] {
		*segs = append(*segs, geom.Segment{A: pts[len(pts)-1], B: pts[0]})
	}
	return nil
}

// attrs parses the named numeric attributes. Missing attributes read as 0,
// as SVG defaults them.
func attrs(el *svgparser.Element, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		raw, ok := el.Attributes[name]
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(raw), "px"), 64)
		if err != nil {
			return nil, fmt.Errorf("<%s> attribute %s=%q: %w", el.Name, name, raw, err)
		}
		out[i] = v
	}
	return out, nil
}

// parsePoints parses an SVG points list such as "0,0 10,0 10 10".
func parsePoints(s string) ([]geom.Point, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates in %q", s)
	}

	pts := make([]geom.Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x value %q: %w", fields[i], err)
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid y value %q: %w", fields[i+1], err)
		}
		pts = append(pts, geom.Pt(x, y))
	}
	return pts, nil
}
