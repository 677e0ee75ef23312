package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"chosenoffset.com/shadowcast/internal/core/geom"
)

// File is the on-disk scene description. Segments, grid and svg sources are
// concatenated in that order.
type File struct {
	Name     string       `mapstructure:"name"`
	Width    float64      `mapstructure:"width"`
	Height   float64      `mapstructure:"height"`
	Observer *PointFile   `mapstructure:"observer"`
	Segments [][]float64  `mapstructure:"segments"`
	Grid     []string     `mapstructure:"grid"`
	TileSize float64      `mapstructure:"tile_size"`
	SVG      string       `mapstructure:"svg"`
	Circles  []CircleFile `mapstructure:"circles"`
}

// PointFile is an x/y pair in a scene file.
type PointFile struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
}

// CircleFile describes a circle approximated by Slices segments.
type CircleFile struct {
	X      float64 `mapstructure:"x"`
	Y      float64 `mapstructure:"y"`
	Radius float64 `mapstructure:"radius"`
	Slices int     `mapstructure:"slices"`
}

// Load reads a JSON or YAML scene file. The format follows the extension.
// An svg path is resolved relative to the scene file.
func Load(path string) (*Scene, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read scene file %s: %w", path, err)
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, err)
	}

	if err := validateFile(&f); err != nil {
		return nil, fmt.Errorf("invalid scene data in %s: %w", path, err)
	}

	s, err := f.build(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return s, nil
}

func validateFile(f *File) error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("invalid scene dimensions: %vx%v", f.Width, f.Height)
	}
	if len(f.Segments) == 0 && len(f.Grid) == 0 && f.SVG == "" && len(f.Circles) == 0 {
		return fmt.Errorf("scene has no obstacles")
	}
	for i, s := range f.Segments {
		if len(s) != 4 {
			return fmt.Errorf("segment %d: expected 4 coordinates, got %d", i, len(s))
		}
	}
	if len(f.Grid) > 0 && f.TileSize <= 0 {
		return fmt.Errorf("invalid tile size: %v", f.TileSize)
	}
	for i, c := range f.Circles {
		if c.Radius <= 0 || c.Slices < 3 {
			return fmt.Errorf("circle %d: need radius > 0 and at least 3 slices", i)
		}
	}
	if o := f.Observer; o != nil {
		if o.X < 0 || o.X > f.Width || o.Y < 0 || o.Y > f.Height {
			return fmt.Errorf("observer (%v, %v) outside %vx%v scene", o.X, o.Y, f.Width, f.Height)
		}
	}
	return nil
}

func (f *File) build(dir string) (*Scene, error) {
	s := &Scene{
		Name:     f.Name,
		Width:    f.Width,
		Height:   f.Height,
		Observer: geom.Pt(f.Width/2, f.Height/2),
		Floor:    Rect{W: f.Width, H: f.Height},
	}
	if f.Observer != nil {
		s.Observer = geom.Pt(f.Observer.X, f.Observer.Y)
	}

	for _, c := range f.Segments {
		s.Segments = append(s.Segments, geom.Seg(c[0], c[1], c[2], c[3]))
	}

	if len(f.Grid) > 0 {
		segs, err := FromGrid(f.Grid, f.TileSize)
		if err != nil {
			return nil, err
		}
		s.Segments = append(s.Segments, segs...)
	}

	if f.SVG != "" {
		svgPath := f.SVG
		if !filepath.IsAbs(svgPath) {
			svgPath = filepath.Join(dir, svgPath)
		}
		r, err := os.Open(svgPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open svg %s: %w", svgPath, err)
		}
		defer r.Close()

		segs, err := FromSVG(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", svgPath, err)
		}
		s.Segments = append(s.Segments, segs...)
	}

	for _, c := range f.Circles {
		s.Segments = append(s.Segments, Circle(geom.Pt(c.X, c.Y), c.Radius, c.Slices)...)
	}

	return s, nil
}
