// Package config holds the application settings: window, casters, scene and
// logging. Values come from defaults, an optional YAML/JSON file and
// SHADOWCAST_* environment variables, in increasing priority.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"chosenoffset.com/shadowcast/internal/core/caster"
)

// EnvPrefix prefixes every environment override, e.g. SHADOWCAST_WINDOW_WIDTH.
const EnvPrefix = "SHADOWCAST"

// Config is the root configuration.
type Config struct {
	Window WindowConfig `mapstructure:"window" yaml:"window"`
	Caster CasterConfig `mapstructure:"caster" yaml:"caster"`
	Scene  SceneConfig  `mapstructure:"scene" yaml:"scene"`
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
}

// WindowConfig controls the interactive window and the starting view state.
type WindowConfig struct {
	Width       int    `mapstructure:"width" yaml:"width"`
	Height      int    `mapstructure:"height" yaml:"height"`
	Title       string `mapstructure:"title" yaml:"title"`
	Mode        string `mapstructure:"mode" yaml:"mode"`
	ShowBounds  bool   `mapstructure:"show_bounds" yaml:"show_bounds"`
	FollowMouse bool   `mapstructure:"follow_mouse" yaml:"follow_mouse"`
	LightColor  string `mapstructure:"light_color" yaml:"light_color"`
}

// CasterConfig tunes both casters.
type CasterConfig struct {
	AngleRays      int     `mapstructure:"angle_rays" yaml:"angle_rays"`
	Epsilon        float64 `mapstructure:"epsilon" yaml:"epsilon"`
	Fallback       string  `mapstructure:"fallback" yaml:"fallback"`
	FallbackRadius float64 `mapstructure:"fallback_radius" yaml:"fallback_radius"`
	Workers        int     `mapstructure:"workers" yaml:"workers"`
}

// SceneConfig selects the obstacle layout.
type SceneConfig struct {
	// File is a JSON or YAML scene; empty means the built-in arena.
	File         string  `mapstructure:"file" yaml:"file"`
	MaxObstacles int     `mapstructure:"max_obstacles" yaml:"max_obstacles"`
	SnapRadius   float64 `mapstructure:"snap_radius" yaml:"snap_radius"`
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	// -- Window --
	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)
	v.SetDefault("window.title", "Shadowcast")
	v.SetDefault("window.mode", caster.ModeFilledEndpoint.String())
	v.SetDefault("window.show_bounds", true)
	v.SetDefault("window.follow_mouse", true)
	v.SetDefault("window.light_color", "#b6174b")

	// -- Caster --
	v.SetDefault("caster.angle_rays", caster.DefaultAngleRays)
	v.SetDefault("caster.epsilon", caster.DefaultEpsilon)
	v.SetDefault("caster.fallback", caster.FallbackApex.String())
	v.SetDefault("caster.fallback_radius", 1000.0)
	v.SetDefault("caster.workers", 1)

	// -- Scene --
	v.SetDefault("scene.file", "")
	v.SetDefault("scene.max_obstacles", 256)
	v.SetDefault("scene.snap_radius", 8.0)

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "shadowcast")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// BindEnv makes v read SHADOWCAST_* overrides for every key.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load builds a Config from defaults, the file at path (if any) and the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	return FromViper(v)
}

// FromViper unmarshals and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later, mid-frame.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size: %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := caster.ParseMode(c.Window.Mode); err != nil {
		return err
	}
	if _, err := ParseHexColor(c.Window.LightColor); err != nil {
		return err
	}
	if c.Caster.AngleRays <= 0 || c.Caster.AngleRays > caster.MaxFanRays {
		return fmt.Errorf("%w: caster.angle_rays=%d, want 1..%d",
			caster.ErrInvalidRayCount, c.Caster.AngleRays, caster.MaxFanRays)
	}
	if c.Caster.Epsilon <= 0 {
		return fmt.Errorf("caster.epsilon must be positive, got %v", c.Caster.Epsilon)
	}
	if _, err := caster.ParseFallback(c.Caster.Fallback); err != nil {
		return err
	}
	if c.Scene.MaxObstacles <= 0 || c.Scene.MaxObstacles > caster.MaxFanObstacles {
		return fmt.Errorf("scene.max_obstacles must be in 1..%d, got %d",
			caster.MaxFanObstacles, c.Scene.MaxObstacles)
	}
	return nil
}

// CasterOptions converts the caster section into constructor options.
func (c *Config) CasterOptions() []caster.Option {
	fallback, _ := caster.ParseFallback(c.Caster.Fallback)
	opts := []caster.Option{
		caster.WithEpsilon(c.Caster.Epsilon),
		caster.WithWorkers(c.Caster.Workers),
	}
	if fallback == caster.FallbackRadius {
		opts = append(opts, caster.WithFallbackRadius(c.Caster.FallbackRadius))
	}
	return opts
}

// Mode returns the parsed starting render mode.
func (c *Config) Mode() caster.Mode {
	m, err := caster.ParseMode(c.Window.Mode)
	if err != nil {
		return caster.ModeFilledEndpoint
	}
	return m
}
