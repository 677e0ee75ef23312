package config

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
)

// ParseHexColor parses "#rrggbb" or "#rrggbbaa". The leading '#' is optional.
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #rrggbb or #rrggbbaa", s)
	}
	// gg.Hex reads bad digits as zero rather than failing.
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	c := gg.Hex(h)
	return color.RGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}, nil
}

func channel(v float64) uint8 {
	return uint8(math.Round(v * 0xff))
}

// ParseColor is ParseHexColor with a fallback for bad input.
func ParseColor(s string, def color.RGBA) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return def
	}
	return c
}
