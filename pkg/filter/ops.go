package filter

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// satHuePixel builds the combined saturation+hue stage. sat is the raw slider
// value (-100..100, scaled by 1/50 into a relative saturation change) and
// hueDeg the hue shift in degrees.
func satHuePixel(sat, hueDeg float64) func(color.RGBA) color.RGBA {
	unit := sat / 50
	return func(c color.RGBA) color.RGBA {
		h, s, l := rgbaToColorful(c).Hsl()
		h = math.Mod(h+hueDeg, 360)
		if h < 0 {
			h += 360
		}
		s = clamp01(s * (1 + unit))
		r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
		return color.RGBA{R: r, G: g, B: b, A: c.A}
	}
}

// balancePixel builds the combined temperature+tint stage. Warm temperatures
// push red up and blue down, cool ones the channel-swapped inverse; magenta
// tints push red and blue up at green's expense, green tints the inverse.
func balancePixel(temperature, tint float64) func(color.RGBA) color.RGBA {
	warm := math.Max(0, temperature) / 100
	cool := math.Max(0, -temperature) / 100
	magenta := math.Max(0, tint) / 100
	green := math.Max(0, -tint) / 100

	dr := warm*45 - cool*30 + magenta*30 - green*25
	dg := -magenta*40 + green*45
	db := -warm*30 + cool*45 + magenta*30 - green*25

	return func(c color.RGBA) color.RGBA {
		return color.RGBA{
			R: clamp255(float64(c.R) + dr),
			G: clamp255(float64(c.G) + dg),
			B: clamp255(float64(c.B) + db),
			A: c.A,
		}
	}
}

func rgbaToColorful(c color.RGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}
