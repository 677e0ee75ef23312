package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chosenoffset.com/shadowcast/internal/game"
	"chosenoffset.com/shadowcast/internal/render/snapshot"
)

func newSnapshotCmd(a *app) *cobra.Command {
	var (
		out  string
		x, y float64
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one frame to a PNG without opening a window.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.loadScene()
			if err != nil {
				return err
			}

			r := snapshot.NewRenderer()
			g, err := game.New(sc, r, nil, a.gameOptions())
			if err != nil {
				return err
			}
			apex := observer(cmd, sc.Observer, x, y)
			g.LookFrom(apex.X, apex.Y)
			if vertices, err := g.Caster().Vertices(); err == nil {
				a.checkPolygon(apex, vertices)
			}

			img := r.NewImage(g.ScreenWidth, g.ScreenHeight)
			defer img.Dispose()
			g.Draw(img)

			if err := snapshot.Save(img, out); err != nil {
				return err
			}
			a.log.Info("snapshot written",
				zap.String("file", out),
				zap.Stringer("mode", g.Mode()),
				zap.Int("rays", g.Caster().Rays()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "shadowcast.png", "output PNG path")
	cmd.Flags().Float64Var(&x, "x", 0, "observer x (default: scene observer)")
	cmd.Flags().Float64Var(&y, "y", 0, "observer y (default: scene observer)")
	return cmd
}
