package state

import "github.com/ironsheep/slot-compose/pkg/geom"

// Record is the flat persistence shape of an Assignment: numeric fields,
// booleans, and one hex color string. The catalog stores and syncs this
// record as-is; no versioned wire format is defined here.
//
// The three preset booleans are kept independent for compatibility with
// stored records. Decoding applies the blackWhite > sepia > monochrome
// priority, so a record that somehow carries more than one active preset
// still produces a single treatment.
type Record struct {
	SourceID string  `json:"source_id"`
	CropX    float64 `json:"crop_x"`
	CropY    float64 `json:"crop_y"`
	CropW    float64 `json:"crop_w"`
	CropH    float64 `json:"crop_h"`
	Rotation float64 `json:"rotation"`
	Mirror   bool    `json:"mirror"`

	Brightness  float64 `json:"brightness"`
	Contrast    float64 `json:"contrast"`
	Saturation  float64 `json:"saturation"`
	Hue         float64 `json:"hue"`
	Temperature float64 `json:"temperature"`
	Tint        float64 `json:"tint"`

	BrightnessOn  bool `json:"brightness_on"`
	ContrastOn    bool `json:"contrast_on"`
	SaturationOn  bool `json:"saturation_on"`
	HueOn         bool `json:"hue_on"`
	TemperatureOn bool `json:"temperature_on"`
	TintOn        bool `json:"tint_on"`
	Enabled       bool `json:"enabled"`

	BlackWhite      bool   `json:"black_white"`
	Sepia           bool   `json:"sepia"`
	Monochrome      bool   `json:"monochrome"`
	MonochromeColor string `json:"monochrome_color,omitempty"`
}

// ToRecord flattens the assignment for persistence.
func ToRecord(a Assignment) Record {
	return Record{
		SourceID: a.SourceID,
		CropX:    a.Crop.X,
		CropY:    a.Crop.Y,
		CropW:    a.Crop.Width,
		CropH:    a.Crop.Height,
		Rotation: a.Rotation,
		Mirror:   a.Mirror,

		Brightness:  a.Brightness.Value,
		Contrast:    a.Contrast.Value,
		Saturation:  a.Saturation.Value,
		Hue:         a.Hue.Value,
		Temperature: a.Temperature.Value,
		Tint:        a.Tint.Value,

		BrightnessOn:  a.Brightness.Enabled,
		ContrastOn:    a.Contrast.Enabled,
		SaturationOn:  a.Saturation.Enabled,
		HueOn:         a.Hue.Enabled,
		TemperatureOn: a.Temperature.Enabled,
		TintOn:        a.Tint.Enabled,
		Enabled:       a.Enabled,

		BlackWhite:      a.Preset.Kind == PresetBlackWhite,
		Sepia:           a.Preset.Kind == PresetSepia,
		Monochrome:      a.Preset.Kind == PresetMonochrome,
		MonochromeColor: a.Preset.Color,
	}
}

// FromRecord rebuilds an Assignment from its flat persistence shape. Values
// are clamped to their documented ranges at this boundary; stored records may
// come from untrusted or older writers.
func FromRecord(r Record) Assignment {
	a := Assignment{
		SourceID: r.SourceID,
		Crop: geom.Rect{
			X:      clamp(r.CropX, 0, 100),
			Y:      clamp(r.CropY, 0, 100),
			Width:  clamp(r.CropW, 0, 100),
			Height: clamp(r.CropH, 0, 100),
		},
		Rotation: clamp(r.Rotation, -180, 180),
		Mirror:   r.Mirror,

		Brightness:  FilterSetting{Value: clamp(r.Brightness, -100, 100), Enabled: r.BrightnessOn},
		Contrast:    FilterSetting{Value: clamp(r.Contrast, -100, 100), Enabled: r.ContrastOn},
		Saturation:  FilterSetting{Value: clamp(r.Saturation, -100, 100), Enabled: r.SaturationOn},
		Hue:         FilterSetting{Value: clamp(r.Hue, -180, 180), Enabled: r.HueOn},
		Temperature: FilterSetting{Value: clamp(r.Temperature, -100, 100), Enabled: r.TemperatureOn},
		Tint:        FilterSetting{Value: clamp(r.Tint, -100, 100), Enabled: r.TintOn},
		Enabled:     r.Enabled,
	}

	switch {
	case r.BlackWhite:
		a.Preset = Preset{Kind: PresetBlackWhite}
	case r.Sepia:
		a.Preset = Preset{Kind: PresetSepia}
	case r.Monochrome:
		a.Preset = Preset{Kind: PresetMonochrome, Color: r.MonochromeColor}
	default:
		a.Preset = Preset{Kind: PresetNone}
	}
	return a
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
