// Package cli wires configuration, logging and the scene into the
// shadowcast commands.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"chosenoffset.com/shadowcast/internal/config"
	"chosenoffset.com/shadowcast/internal/core/caster"
	"chosenoffset.com/shadowcast/internal/core/obstacles"
	"chosenoffset.com/shadowcast/internal/game"
	"chosenoffset.com/shadowcast/internal/observability"
	"chosenoffset.com/shadowcast/internal/world/scene"
)

// app carries state shared by the subcommands of one root command.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
}

// NewRootCmd builds the command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)

	root := &cobra.Command{
		Use:           "shadowcast",
		Short:         "2D visibility polygons and dynamic shadows.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./shadowcast.yaml)")
	root.PersistentFlags().String("scene", "", "scene file (JSON or YAML); empty uses the built-in arena")
	root.PersistentFlags().String("mode", "", "render mode: filled-endpoint, line-endpoint, filled-angle, line-angle")
	_ = a.v.BindPFlag("scene.file", root.PersistentFlags().Lookup("scene"))
	_ = a.v.BindPFlag("window.mode", root.PersistentFlags().Lookup("mode"))

	root.AddCommand(newPlayCmd(a), newSnapshotCmd(a), newTraceCmd(a))
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	defer observability.Sync()
	if err := NewRootCmd().Execute(); err != nil {
		if errors.Is(err, obstacles.ErrCapacityExceeded) {
			observability.GetLogger().Fatal("scene does not fit the obstacle buffer; raise scene.max_obstacles", zap.Error(err))
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) initialize() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("shadowcast")
	}
	config.BindEnv(a.v)

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg, err := config.FromViper(a.v)
	if err != nil {
		observability.InitializeLogger(config.DefaultConfig().Logger)
		return err
	}
	a.cfg = cfg

	observability.InitializeLogger(cfg.Logger)
	a.log = observability.GetLogger()
	a.log.Debug("configuration loaded", zap.String("file", a.v.ConfigFileUsed()))
	return nil
}

// loadScene returns the configured scene file or the built-in arena.
func (a *app) loadScene() (*scene.Scene, error) {
	if a.cfg.Scene.File == "" {
		return scene.Default(float64(a.cfg.Window.Width), float64(a.cfg.Window.Height)), nil
	}
	sc, err := scene.Load(a.cfg.Scene.File)
	if err != nil {
		return nil, err
	}
	a.log.Info("scene loaded",
		zap.String("file", a.cfg.Scene.File),
		zap.Int("segments", len(sc.Segments)))
	return sc, nil
}

func (a *app) gameOptions() game.Options {
	light := config.ParseColor(a.cfg.Window.LightColor, game.DefaultOptions().LightColor)
	return game.Options{
		Mode:          a.cfg.Mode(),
		ShowBounds:    a.cfg.Window.ShowBounds,
		FollowMouse:   a.cfg.Window.FollowMouse,
		AngleRays:     a.cfg.Caster.AngleRays,
		CasterOptions: a.cfg.CasterOptions(),
		MaxObstacles:  a.cfg.Scene.MaxObstacles,
		SnapRadius:    a.cfg.Scene.SnapRadius,
		LightColor:    light,
		Logger:        a.log,
	}
}

// newCaster builds a standalone caster for mode, sized for n obstacles.
func (a *app) newCaster(mode caster.Mode, n int) (caster.Caster, error) {
	opts := append(a.cfg.CasterOptions(), caster.WithLogger(a.log.Named("caster")))
	return caster.New(mode.Kind(), a.cfg.Caster.AngleRays, n, opts...)
}
