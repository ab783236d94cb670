// Package filter builds and applies the fixed-order per-pixel filter chain
// for an image assignment.
//
// The chain order never varies: brightness, contrast, combined
// saturation+hue, combined temperature+tint, then at most one preset.
// Stages whose value is zero or whose enable flag is off are skipped, and
// the whole chain is empty when the master toggle is off. The compositing
// surface receives the ordered op list and may apply it itself at render or
// export time; Apply runs it over a raster directly.
package filter

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/clone"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/slot-compose/pkg/state"
)

// Op names, in chain order.
const (
	OpBrightness       = "brightness"
	OpContrast         = "contrast"
	OpSaturationHue    = "saturation-hue"
	OpTemperatureTint  = "temperature-tint"
	OpPresetBlackWhite = "preset:black-white"
	OpPresetSepia      = "preset:sepia"
	OpPresetMonochrome = "preset:monochrome"
)

// Op is one per-pixel stage of the chain. Name and Params describe the stage
// for external consumers; Apply runs it.
type Op struct {
	Name   string             `json:"name"`
	Params map[string]float64 `json:"params,omitempty"`

	apply func(image.Image) *image.RGBA
}

// Apply runs the stage over src and returns the result.
func (op Op) Apply(src image.Image) *image.RGBA {
	return op.apply(src)
}

// Chain builds the ordered op list for an assignment. A nil result means the
// image passes through untouched.
func Chain(a state.Assignment) []Op {
	if !a.Enabled {
		return nil
	}
	var ops []Op

	if b := a.Brightness; b.Enabled && b.Value != 0 {
		unit := b.Value / 100
		ops = append(ops, Op{
			Name:   OpBrightness,
			Params: map[string]float64{"value": unit},
			apply: func(src image.Image) *image.RGBA {
				return adjust.Brightness(src, unit)
			},
		})
	}

	if c := a.Contrast; c.Enabled && c.Value != 0 {
		value := c.Value // raw -100..100, as consumers expect it
		ops = append(ops, Op{
			Name:   OpContrast,
			Params: map[string]float64{"value": value},
			apply: func(src image.Image) *image.RGBA {
				return adjust.Contrast(src, value/100)
			},
		})
	}

	sat, hue := 0.0, 0.0
	if s := a.Saturation; s.Enabled && s.Value != 0 {
		sat = s.Value
	}
	if h := a.Hue; h.Enabled && h.Value != 0 {
		hue = h.Value
	}
	if sat != 0 || hue != 0 {
		ops = append(ops, Op{
			Name:   OpSaturationHue,
			Params: map[string]float64{"saturation": sat / 50, "hue": hue},
			apply: pixelStage(satHuePixel(sat, hue)),
		})
	}

	temperature, tint := 0.0, 0.0
	if t := a.Temperature; t.Enabled && t.Value != 0 {
		temperature = t.Value
	}
	if t := a.Tint; t.Enabled && t.Value != 0 {
		tint = t.Value
	}
	if temperature != 0 || tint != 0 {
		ops = append(ops, Op{
			Name:   OpTemperatureTint,
			Params: map[string]float64{"temperature": temperature / 100, "tint": tint / 100},
			apply: pixelStage(balancePixel(temperature, tint)),
		})
	}

	if op, ok := presetOp(a.Preset); ok {
		ops = append(ops, op)
	}
	return ops
}

// presetOp returns the chain stage for the active preset, if any. An
// unparseable monochrome color makes the preset a no-op rather than an error.
func presetOp(p state.Preset) (Op, bool) {
	switch p.Kind {
	case state.PresetBlackWhite:
		return Op{Name: OpPresetBlackWhite, apply: pixelStage(blackWhitePixel)}, true
	case state.PresetSepia:
		return Op{Name: OpPresetSepia, apply: pixelStage(sepiaPixel)}, true
	case state.PresetMonochrome:
		target, err := colorful.Hex(p.Color)
		if err != nil {
			return Op{}, false
		}
		return Op{Name: OpPresetMonochrome, apply: pixelStage(monochromePixel(target))}, true
	}
	return Op{}, false
}

func pixelStage(fn func(color.RGBA) color.RGBA) func(image.Image) *image.RGBA {
	return func(src image.Image) *image.RGBA {
		return adjust.Apply(src, fn)
	}
}

// Apply folds the ops over src in order. With no ops the source is returned
// as an untouched RGBA copy.
func Apply(src image.Image, ops []Op) *image.RGBA {
	if len(ops) == 0 {
		return clone.AsRGBA(src)
	}
	out := ops[0].Apply(src)
	for _, op := range ops[1:] {
		out = op.Apply(out)
	}
	return out
}
