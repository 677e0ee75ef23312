package game

import (
	"image/color"

	"go.uber.org/zap"

	"chosenoffset.com/shadowcast/internal/core/caster"
)

// casterSlot is one render mode's caster plus the cursor position it last
// looked from, so switching modes never disturbs another mode's view.
type casterSlot struct {
	caster caster.Caster
	prevX  float64
	prevY  float64
	seen   int // registry length at the last Look
}

// Message is an on-screen notice that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// Options configures a Game.
type Options struct {
	Mode        caster.Mode
	ShowBounds  bool
	FollowMouse bool

	// AngleRays is the angle casters' fixed ray count.
	AngleRays     int
	CasterOptions []caster.Option

	// MaxObstacles caps the bounds buffer, scene walls included.
	MaxObstacles int
	// SnapRadius pulls drawn wall ends onto existing endpoints within range.
	SnapRadius float64

	LightColor color.RGBA
	Logger     *zap.Logger
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Mode:         caster.ModeFilledEndpoint,
		ShowBounds:   true,
		FollowMouse:  true,
		AngleRays:    caster.DefaultAngleRays,
		MaxObstacles: 256,
		SnapRadius:   8,
		LightColor:   color.RGBA{0xb6, 0x17, 0x4b, 0xff},
	}
}
