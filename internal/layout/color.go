package layout

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// NormalizeColor parses a hex color string and returns its canonical
// lowercase "#rrggbb" form.
func NormalizeColor(s string) (string, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("parsing color %q: %w", s, err)
	}
	return c.Hex(), nil
}

// BlendColors mixes two hex colors in Luv space; t=0 yields a, t=1
// yields b. Unparseable inputs fall back to a.
func BlendColors(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendLuv(cb, t).Clamped().Hex()
}

// ColorRGB returns the 8-bit RGB components of a hex color, or zeros
// when it cannot be parsed.
func ColorRGB(s string) (r, g, b int32) {
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, 0, 0
	}
	ri, gi, bi := c.RGB255()
	return int32(ri), int32(gi), int32(bi)
}
