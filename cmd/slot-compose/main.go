// Command slot-compose applies a slot assignment to a source image and
// exports the composed result: rotate-then-crop rasterization followed by the
// ordered tone/color filter chain.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/slot-compose/internal/loader"
	"github.com/ironsheep/slot-compose/pkg/render"
	"github.com/ironsheep/slot-compose/pkg/session"
	"github.com/ironsheep/slot-compose/pkg/state"
)

func main() {
	var in, out, ratio, cropSpec, preset, monoColor, overlayPath string
	var rotation, brightness, contrast, saturation, hue, temperature, tint float64
	var mirror, lossless bool
	var outW, outH, quality int

	flag.StringVar(&in, "in", "", "input image path (png/jpg/gif/webp)")
	flag.StringVar(&out, "out", "", "output image path (format by extension: png/jpg/webp)")
	flag.StringVar(&ratio, "ratio", "4:3", "slot aspect ratio, W:H or a decimal")
	flag.StringVar(&cropSpec, "crop", "", "crop rect as x,y,w,h percentages of the rotated bounding box (default: maximal)")
	flag.Float64Var(&rotation, "rotation", 0, "rotation in degrees (-180..180)")
	flag.BoolVar(&mirror, "mirror", false, "horizontal presentation flip")

	flag.Float64Var(&brightness, "brightness", 0, "brightness (-100..100)")
	flag.Float64Var(&contrast, "contrast", 0, "contrast (-100..100)")
	flag.Float64Var(&saturation, "saturation", 0, "saturation (-100..100)")
	flag.Float64Var(&hue, "hue", 0, "hue shift in degrees (-180..180)")
	flag.Float64Var(&temperature, "temperature", 0, "temperature (-100..100)")
	flag.Float64Var(&tint, "tint", 0, "tint (-100..100)")

	flag.StringVar(&preset, "preset", "", "preset: bw|sepia|mono")
	flag.StringVar(&monoColor, "mono-color", "#8d6e63", "monochrome target color as #RRGGBB")

	flag.IntVar(&outW, "width", 0, "explicit output width (0 = native crop size)")
	flag.IntVar(&outH, "height", 0, "explicit output height (0 = native crop size)")
	flag.IntVar(&quality, "quality", 90, "JPEG/WebP output quality (1-100)")
	flag.BoolVar(&lossless, "lossless", false, "WebP lossless mode")
	flag.StringVar(&overlayPath, "overlay", "", "also write a crop-geometry debug overlay to this path")

	flag.Parse()
	if in == "" || out == "" {
		log.Fatalf("usage: %s -in input.jpg -out output.jpg [-ratio 16:9] [-rotation 30] [-crop x,y,w,h] ...", filepath.Base(os.Args[0]))
	}

	aspect, err := parseRatio(ratio)
	if err != nil {
		log.Fatalf("bad -ratio: %v", err)
	}

	cache := loader.NewCache()
	src, err := cache.Load(in)
	if err != nil {
		log.Fatal(err)
	}

	sess := session.New(in, src, aspect, nil)
	defer sess.Close()

	if rotation != 0 {
		sess.SetRotation(rotation)
	}
	if cropSpec != "" {
		x, y, w, h, err := parseCrop(cropSpec)
		if err != nil {
			log.Fatalf("bad -crop: %v", err)
		}
		sess.SetCrop(x, y, w, h)
	}
	sess.SetMirror(mirror)
	sess.SetValue(state.Brightness, brightness)
	sess.SetValue(state.Contrast, contrast)
	sess.SetValue(state.Saturation, saturation)
	sess.SetValue(state.Hue, hue)
	sess.SetValue(state.Temperature, temperature)
	sess.SetValue(state.Tint, tint)

	switch strings.ToLower(preset) {
	case "":
	case "bw", "blackwhite", "black-white":
		sess.SetPreset(state.PresetBlackWhite, "")
	case "sepia":
		sess.SetPreset(state.PresetSepia, "")
	case "mono", "monochrome":
		sess.SetPreset(state.PresetMonochrome, monoColor)
	default:
		log.Fatalf("unknown -preset %q (use bw, sepia or mono)", preset)
	}

	result, err := sess.Export(outW, outH)
	if err != nil {
		log.Fatal(err)
	}
	if err := saveImage(result, out, quality, lossless); err != nil {
		log.Fatal(err)
	}
	b := result.Bounds()
	log.Printf("wrote %s (%dx%d)", out, b.Dx(), b.Dy())

	if overlayPath != "" {
		a := sess.Assignment()
		dbg := render.Overlay(src, a.Rotation, a.Crop, "#00ff00")
		if err := saveImage(dbg, overlayPath, quality, lossless); err != nil {
			log.Printf("overlay save failed: %v", err)
		} else {
			log.Printf("wrote %s", overlayPath)
		}
	}
}

// parseRatio accepts "16:9" or a plain decimal like "1.778".
func parseRatio(s string) (float64, error) {
	if w, h, ok := strings.Cut(s, ":"); ok {
		wf, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return 0, err
		}
		hf, err := strconv.ParseFloat(h, 64)
		if err != nil {
			return 0, err
		}
		if wf <= 0 || hf <= 0 {
			return 0, fmt.Errorf("ratio sides must be positive")
		}
		return wf / hf, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, fmt.Errorf("ratio must be positive")
	}
	return f, nil
}

func parseCrop(s string) (x, y, w, h float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("want 4 comma-separated values, got %d", len(parts))
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		vals[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, 0, 0, 0, err
		}
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

func saveImage(img image.Image, path string, quality int, lossless bool) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return webp.Encode(f, img, &webp.Options{Lossless: lossless, Quality: float32(quality)})
	case ".png":
		return imaging.Save(img, path)
	default: // jpg/jpeg
		return imaging.Save(img, path, imaging.JPEGQuality(quality))
	}
}
