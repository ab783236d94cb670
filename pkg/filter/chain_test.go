package filter

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/slot-compose/pkg/state"
)

// testAssignment returns an all-enabled assignment with zero values.
func testAssignment() state.Assignment {
	on := state.FilterSetting{Enabled: true}
	return state.Assignment{
		Brightness:  on,
		Contrast:    on,
		Saturation:  on,
		Hue:         on,
		Temperature: on,
		Tint:        on,
		Enabled:     true,
		Preset:      state.Preset{Kind: state.PresetNone},
	}
}

func opNames(ops []Op) []string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	return names
}

func TestChain_FixedOrder(t *testing.T) {
	a := testAssignment()
	a.Brightness.Value = 10
	a.Saturation.Value = -20

	got := opNames(Chain(a))
	want := []string{OpBrightness, OpSaturationHue}
	if len(got) != len(want) {
		t.Fatalf("ops: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("op %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestChain_AllStages(t *testing.T) {
	a := testAssignment()
	a.Brightness.Value = 5
	a.Contrast.Value = 5
	a.Hue.Value = 30
	a.Tint.Value = -10
	a.Preset = state.Preset{Kind: state.PresetSepia}

	got := opNames(Chain(a))
	want := []string{OpBrightness, OpContrast, OpSaturationHue, OpTemperatureTint, OpPresetSepia}
	if len(got) != len(want) {
		t.Fatalf("ops: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("op %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestChain_SkipsDisabledAndZero(t *testing.T) {
	a := testAssignment()
	a.Brightness.Value = 50
	a.Brightness.Enabled = false
	a.Contrast.Value = 0 // zero value, enabled

	if ops := Chain(a); len(ops) != 0 {
		t.Errorf("got %v, want no ops", opNames(ops))
	}
}

func TestChain_MasterToggleOff(t *testing.T) {
	a := testAssignment()
	a.Brightness.Value = 50
	a.Preset = state.Preset{Kind: state.PresetBlackWhite}
	a.Enabled = false

	if ops := Chain(a); ops != nil {
		t.Errorf("got %v, want nil chain", opNames(ops))
	}
}

func TestChain_CombinedSaturationHue(t *testing.T) {
	a := testAssignment()
	a.Saturation.Value = 40
	a.Hue.Value = 90

	ops := Chain(a)
	if len(ops) != 1 {
		t.Fatalf("got %d ops, want one combined stage", len(ops))
	}
	op := ops[0]
	if op.Name != OpSaturationHue {
		t.Fatalf("name: got %s, want %s", op.Name, OpSaturationHue)
	}
	if got := op.Params["saturation"]; got != 40.0/50 {
		t.Errorf("saturation unit: got %v, want %v", got, 40.0/50)
	}
	if got := op.Params["hue"]; got != 90.0 {
		t.Errorf("hue: got %v, want 90 (degrees, passed through)", got)
	}
}

func TestChain_DisabledHalfOfCombinedStage(t *testing.T) {
	a := testAssignment()
	a.Saturation.Value = 40
	a.Hue.Value = 90
	a.Hue.Enabled = false

	ops := Chain(a)
	if len(ops) != 1 {
		t.Fatalf("got %d ops, want 1", len(ops))
	}
	if got := ops[0].Params["hue"]; got != 0.0 {
		t.Errorf("disabled hue leaked into the stage: got %v", got)
	}
}

func TestChain_ContrastCarriesRawValue(t *testing.T) {
	a := testAssignment()
	a.Contrast.Value = -35

	ops := Chain(a)
	if len(ops) != 1 || ops[0].Name != OpContrast {
		t.Fatalf("ops: %v", opNames(ops))
	}
	if got := ops[0].Params["value"]; got != -35.0 {
		t.Errorf("contrast param: got %v, want raw -35", got)
	}
}

func TestChain_UnparseableMonochromeColor(t *testing.T) {
	a := testAssignment()
	a.Preset = state.Preset{Kind: state.PresetMonochrome, Color: "not-a-color"}

	if ops := Chain(a); len(ops) != 0 {
		t.Errorf("unparseable color should make the preset a no-op, got %v", opNames(ops))
	}
}

func TestApply_EmptyChainCopies(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(1, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	out := Apply(src, nil)
	if out == nil {
		t.Fatal("nil result")
	}
	if got := out.RGBAAt(1, 2); got != src.RGBAAt(1, 2) {
		t.Errorf("pixel changed: got %+v", got)
	}
	// Must be a copy, not the source raster.
	out.SetRGBA(1, 2, color.RGBA{A: 255})
	if src.RGBAAt(1, 2).R != 10 {
		t.Error("Apply mutated the source image")
	}
}

func TestApply_RunsStagesInOrder(t *testing.T) {
	a := testAssignment()
	a.Brightness.Value = 100
	a.Preset = state.Preset{Kind: state.PresetBlackWhite}

	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 200, G: 10, B: 10, A: 255})

	out := Apply(src, Chain(a))
	got := out.RGBAAt(0, 0)
	if got.R != got.G || got.G != got.B {
		t.Errorf("black & white applied last should leave gray, got %+v", got)
	}
}
