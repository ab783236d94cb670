// Package state holds the per-slot adjustment state of a placed image: crop,
// rotation, mirror, the six tone/color filter values, and the preset selector.
//
// All mutation goes through Manager so crop validity is re-derived whenever a
// geometric field changes. Filter values are trusted to be in range inside the
// process (the editing surface validates them); the persistence boundary in
// record.go clamps defensively.
package state

import (
	"github.com/ironsheep/slot-compose/pkg/crop"
	"github.com/ironsheep/slot-compose/pkg/geom"
)

// PresetKind selects the mutually exclusive tone treatment. Modeling the
// selector as a tagged variant makes the "two presets active" state
// unrepresentable.
type PresetKind int

const (
	PresetNone PresetKind = iota
	PresetBlackWhite
	PresetSepia
	PresetMonochrome
)

// String returns the persistence name of the preset kind.
func (k PresetKind) String() string {
	switch k {
	case PresetBlackWhite:
		return "blackWhite"
	case PresetSepia:
		return "sepia"
	case PresetMonochrome:
		return "monochrome"
	default:
		return "none"
	}
}

// Preset is the active tone treatment. Color is the monochrome target as a
// "#RRGGBB" hex string and is meaningful only for PresetMonochrome.
type Preset struct {
	Kind  PresetKind `json:"kind"`
	Color string     `json:"color,omitempty"`
}

// FilterName identifies one of the six adjustable filters.
type FilterName string

const (
	Brightness  FilterName = "brightness"
	Contrast    FilterName = "contrast"
	Saturation  FilterName = "saturation"
	Hue         FilterName = "hue"
	Temperature FilterName = "temperature"
	Tint        FilterName = "tint"
)

// FilterSetting is one slider value with its individual enable flag.
// Brightness, contrast, saturation, temperature and tint range over
// [-100, 100]; hue over [-180, 180].
type FilterSetting struct {
	Value   float64 `json:"value"`
	Enabled bool    `json:"enabled"`
}

// Assignment is the per-slot record of everything applied to a placed image.
// All transforms are parametric and replayable; the source pixels are never
// mutated.
type Assignment struct {
	SourceID string `json:"source_id"`

	// Crop in percentages of the rotated bounding box.
	Crop     geom.Rect `json:"crop"`
	Rotation float64   `json:"rotation"` // degrees, -180..180
	Mirror   bool      `json:"mirror"`

	Brightness  FilterSetting `json:"brightness"`
	Contrast    FilterSetting `json:"contrast"`
	Saturation  FilterSetting `json:"saturation"`
	Hue         FilterSetting `json:"hue"`
	Temperature FilterSetting `json:"temperature"`
	Tint        FilterSetting `json:"tint"`

	// Enabled is the master toggle over the whole filter chain.
	Enabled bool   `json:"enabled"`
	Preset  Preset `json:"preset"`
}

// Filter returns the setting for the named filter, or a zero setting for an
// unknown name.
func (a *Assignment) Filter(name FilterName) FilterSetting {
	if s := a.filterRef(name); s != nil {
		return *s
	}
	return FilterSetting{}
}

func (a *Assignment) filterRef(name FilterName) *FilterSetting {
	switch name {
	case Brightness:
		return &a.Brightness
	case Contrast:
		return &a.Contrast
	case Saturation:
		return &a.Saturation
	case Hue:
		return &a.Hue
	case Temperature:
		return &a.Temperature
	case Tint:
		return &a.Tint
	}
	return nil
}

// Manager owns one Assignment and the crop controller deriving its crop.
// It is the only mutation path for the assignment (single logical owner).
type Manager struct {
	assignment Assignment
	cropper    *crop.Controller
}

// NewManager creates the state for an image of the given pixel size placed
// into a slot with the given aspect ratio: rotation 0, mirror off, all filter
// values 0 with individual flags on, master flag on, preset none, and the
// maximal valid crop at the slot aspect ratio.
func NewManager(sourceID string, srcW, srcH, slotAspect float64) *Manager {
	m := &Manager{
		cropper: crop.New(srcW, srcH, slotAspect),
	}
	m.assignment = defaultAssignment(sourceID)
	m.syncCrop()
	return m
}

func defaultAssignment(sourceID string) Assignment {
	on := FilterSetting{Enabled: true}
	return Assignment{
		SourceID:    sourceID,
		Brightness:  on,
		Contrast:    on,
		Saturation:  on,
		Hue:         on,
		Temperature: on,
		Tint:        on,
		Enabled:     true,
		Preset:      Preset{Kind: PresetNone},
	}
}

// Assignment returns a copy of the current state.
func (m *Manager) Assignment() Assignment { return m.assignment }

// Cropper exposes the crop controller for gesture handling. Gesture edits go
// directly to the controller; call SyncCrop afterwards (the session does this)
// to fold the result back into the assignment.
func (m *Manager) Cropper() *crop.Controller { return m.cropper }

// SyncCrop copies the controller's percentage crop into the assignment.
func (m *Manager) SyncCrop() { m.syncCrop() }

func (m *Manager) syncCrop() {
	m.assignment.Crop = m.cropper.Crop()
	m.assignment.Rotation = m.cropper.Rotation()
}

// SetValue updates one filter slider.
func (m *Manager) SetValue(name FilterName, v float64) {
	if s := m.assignment.filterRef(name); s != nil {
		s.Value = v
	}
}

// SetRotation updates the rotation, re-deriving a valid crop for the new
// angle through the controller's rotation path.
func (m *Manager) SetRotation(deg float64) {
	m.cropper.SetRotation(deg)
	m.syncCrop()
}

// SetMirror sets the presentation-time horizontal flip. Crop and rotation
// coordinates are mirror-invariant, so no geometry changes.
func (m *Manager) SetMirror(on bool) { m.assignment.Mirror = on }

// ToggleFilter flips the named filter's individual enable flag.
func (m *Manager) ToggleFilter(name FilterName) {
	if s := m.assignment.filterRef(name); s != nil {
		s.Enabled = !s.Enabled
	}
}

// SetEnabled sets the master filter toggle.
func (m *Manager) SetEnabled(on bool) { m.assignment.Enabled = on }

// SetPreset selects a preset with radio semantics: selecting the already
// active kind clears back to none. Selecting PresetMonochrome records the
// target color; slider values are untouched, presets compose with them and
// apply last in the chain.
func (m *Manager) SetPreset(kind PresetKind, color string) {
	if m.assignment.Preset.Kind == kind && kind != PresetNone {
		m.assignment.Preset = Preset{Kind: PresetNone}
		return
	}
	p := Preset{Kind: kind}
	if kind == PresetMonochrome {
		p.Color = color
	}
	m.assignment.Preset = p
}

// ResetAll restores every adjustment to its initial value: filters zeroed
// with all flags on, preset none, rotation 0, mirror off, and a fresh maximal
// crop at the slot aspect ratio.
func (m *Manager) ResetAll() {
	id := m.assignment.SourceID
	m.assignment = defaultAssignment(id)
	m.cropper.SetRotation(0)
	m.cropper.ResetCrop()
	m.syncCrop()
}
