package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"chosenoffset.com/shadowcast/internal/game"
	ebitenrender "chosenoffset.com/shadowcast/internal/render/ebiten"
)

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Open a window and light the scene from the cursor.",
		Long: `Keys: 1-4 switch render mode, B toggles obstacle outlines, Space pauses
cursor tracking, Escape quits. Right-click twice to draw a wall.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.loadScene()
			if err != nil {
				return err
			}

			g, err := game.New(sc, ebitenrender.NewRenderer(), ebitenrender.NewInputManager(), a.gameOptions())
			if err != nil {
				return err
			}

			engine := ebitenrender.NewEngine()
			engine.SetWindowSize(g.ScreenWidth, g.ScreenHeight)
			engine.SetWindowTitle(a.cfg.Window.Title)
			engine.SetWindowResizable(false)

			a.log.Info("starting window")
			if err := engine.RunGame(g); err != nil && !errors.Is(err, game.ErrQuit) {
				return err
			}
			return nil
		},
	}
}
