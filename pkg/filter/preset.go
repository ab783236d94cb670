package filter

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// blackWhitePixel replaces each channel with the ITU-R BT.601 luminance.
func blackWhitePixel(c color.RGBA) color.RGBA {
	lum := clamp255(0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B))
	return color.RGBA{R: lum, G: lum, B: lum, A: c.A}
}

// sepiaPixel applies the classic sepia matrix, clamping each channel.
func sepiaPixel(c color.RGBA) color.RGBA {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	return color.RGBA{
		R: clamp255(0.393*r + 0.769*g + 0.189*b),
		G: clamp255(0.349*r + 0.686*g + 0.168*b),
		B: clamp255(0.272*r + 0.534*g + 0.131*b),
		A: c.A,
	}
}

// monochromePixel recolors every pixel with the target color's hue and
// saturation (saturation scaled down to keep highlights from screaming)
// while preserving the pixel's own lightness.
func monochromePixel(target colorful.Color) func(color.RGBA) color.RGBA {
	th, ts, _ := target.Hsl()
	ts *= 0.8
	return func(c color.RGBA) color.RGBA {
		_, _, l := rgbaToColorful(c).Hsl()
		r, g, b := colorful.Hsl(th, ts, l).Clamped().RGB255()
		return color.RGBA{R: r, G: g, B: b, A: c.A}
	}
}
