package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/shadowcast/internal/core/caster"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, caster.ModeFilledEndpoint, cfg.Mode())
	assert.True(t, cfg.Window.FollowMouse)
	assert.Equal(t, caster.DefaultAngleRays, cfg.Caster.AngleRays)
	assert.Equal(t, caster.DefaultEpsilon, cfg.Caster.Epsilon)
	assert.Equal(t, "apex", cfg.Caster.Fallback)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Empty(t, cfg.Scene.File)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shadowcast.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  width: 1024
  mode: line-angle
caster:
  angle_rays: 360
  fallback: radius
  fallback_radius: 50
logger:
  format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height, "unset keys keep their defaults")
	assert.Equal(t, caster.ModeLineAngle, cfg.Mode())
	assert.Equal(t, 360, cfg.Caster.AngleRays)
	assert.Equal(t, "json", cfg.Logger.Format)

	a, err := caster.NewAngle(4, cfg.CasterOptions()...)
	require.NoError(t, err)
	a.Update(0, 0)
	a.Look(nil)
	v, err := a.Vertices()
	require.NoError(t, err)
	assert.InDelta(t, 50, v[0].X, 1e-9, "radius fallback comes from the file")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SHADOWCAST_WINDOW_HEIGHT", "720")
	t.Setenv("SHADOWCAST_CASTER_WORKERS", "4")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, 4, cfg.Caster.Workers)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("caster:\n  angle_rays: 0\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, caster.ErrInvalidRayCount)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"window":        func(c *Config) { c.Window.Width = 0 },
		"mode":          func(c *Config) { c.Window.Mode = "dark" },
		"epsilon":       func(c *Config) { c.Caster.Epsilon = 0 },
		"fallback":      func(c *Config) { c.Caster.Fallback = "edge" },
		"obstacles":     func(c *Config) { c.Scene.MaxObstacles = 0 },
		"obstacles max": func(c *Config) { c.Scene.MaxObstacles = caster.MaxFanObstacles + 1 },
		"angle max":     func(c *Config) { c.Caster.AngleRays = caster.MaxFanRays + 1 },
		"light":         func(c *Config) { c.Window.LightColor = "pink" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#b6174b")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0xb6, 0x17, 0x4b, 0xff}, c)

	c, err = ParseHexColor("00ff0080")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0xff, 0, 0x80}, c)

	_, err = ParseHexColor("#12345")
	assert.Error(t, err)
	_, err = ParseHexColor("#gggggg")
	assert.Error(t, err)

	def := color.RGBA{1, 2, 3, 4}
	assert.Equal(t, def, ParseColor("nope", def))

	for v := 0; v <= 0xff; v++ {
		c, err := ParseHexColor(fmt.Sprintf("#%02x%02x%02x", v, 0xff-v, v))
		require.NoError(t, err)
		require.Equal(t, color.RGBA{uint8(v), uint8(0xff - v), uint8(v), 0xff}, c)
	}
}

func TestValidateFanLimits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene.MaxObstacles = caster.MaxFanObstacles
	cfg.Caster.AngleRays = caster.MaxFanRays
	assert.NoError(t, cfg.Validate())

	cfg.Scene.MaxObstacles = 11000
	assert.ErrorContains(t, cfg.Validate(), "scene.max_obstacles")
}
