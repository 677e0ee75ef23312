package cli

import (
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chosenoffset.com/shadowcast/internal/core/geom"
	"chosenoffset.com/shadowcast/internal/world/scene"
)

// Trace is the dump printed by the trace command.
type Trace struct {
	Scene    string
	Mode     string
	Apex     geom.Point
	Segments int
	Extent   scene.Rect
	Rays     int
	Headings []float64
	Vertices []geom.Point

	Simple       bool
	ContainsApex bool
}

func newTraceCmd(a *app) *cobra.Command {
	var x, y float64
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Cast once and dump the ray headings and hit points.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.loadScene()
			if err != nil {
				return err
			}
			mode := a.cfg.Mode()

			c, err := a.newCaster(mode, len(sc.Segments))
			if err != nil {
				return err
			}
			apex := observer(cmd, sc.Observer, x, y)
			c.Update(apex.X, apex.Y)

			start := time.Now()
			c.Look(sc.Segments)
			took := time.Since(start)

			vertices, err := c.Vertices()
			if err != nil {
				return err
			}

			t := Trace{
				Scene:    sc.Name,
				Mode:     mode.String(),
				Apex:     apex,
				Segments: len(sc.Segments),
				Extent:   scene.Bounds(sc.Segments),
				Rays:     c.Rays(),
				Vertices: vertices,
			}
			t.Simple, t.ContainsApex = a.checkPolygon(apex, vertices)
			if h, ok := c.(interface{ Headings() []float64 }); ok {
				t.Headings = h.Headings()
			}

			spew.Fdump(cmd.OutOrStdout(), t)
			a.log.Info("trace complete", zap.Duration("look", took), zap.Int("rays", t.Rays))
			return nil
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "observer x (default: scene observer)")
	cmd.Flags().Float64Var(&y, "y", 0, "observer y (default: scene observer)")
	return cmd
}

// checkPolygon logs whether vertices form a simple ring around apex. A
// fallback to the apex puts the apex on the ring itself, so failures are
// logged, not returned.
func (a *app) checkPolygon(apex geom.Point, vertices []geom.Point) (simple, containsApex bool) {
	simple = geom.IsSimplePolygon(vertices)
	containsApex = geom.PointInPolygon(apex, vertices)
	a.log.Debug("visibility polygon",
		zap.Int("vertices", len(vertices)),
		zap.Bool("simple", simple),
		zap.Bool("contains_apex", containsApex))
	return simple, containsApex
}

// observer returns the --x/--y position when either flag was given, else def.
func observer(cmd *cobra.Command, def geom.Point, x, y float64) geom.Point {
	fx, fy := cmd.Flags().Changed("x"), cmd.Flags().Changed("y")
	if !fx && !fy {
		return def
	}
	if fx {
		def.X = x
	}
	if fy {
		def.Y = y
	}
	return def
}
