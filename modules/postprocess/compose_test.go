package postprocess

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func grayImage(t *testing.T, w, h int, level uint8) image.Image {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: level, G: level, B: level, A: 255})
		}
	}
	return img
}

func TestRegionBrightnessUniformGray(t *testing.T) {
	bright := RegionBrightness(grayImage(t, 200, 200, 200))
	if bright < 199 || bright > 201 {
		t.Errorf("expected brightness ~200, got %.1f", bright)
	}

	dark := RegionBrightness(grayImage(t, 200, 200, 50))
	if dark < 49 || dark > 51 {
		t.Errorf("expected brightness ~50, got %.1f", dark)
	}
}

func TestSchemeForBrightness(t *testing.T) {
	light := SchemeForBrightness(200)
	if light.Name != "light" {
		t.Errorf("expected light scheme for brightness 200, got %s", light.Name)
	}
	if light.Pill.R != 255 || light.Text.R == 255 {
		t.Errorf("light scheme should use white pills and dark text: %+v", light)
	}

	dark := SchemeForBrightness(50)
	if dark.Name != "dark" {
		t.Errorf("expected dark scheme for brightness 50, got %s", dark.Name)
	}

	// The threshold itself belongs to the light scheme.
	if SchemeForBrightness(BrightnessThreshold).Name != "light" {
		t.Errorf("brightness at threshold should pick the light scheme")
	}
}

func TestComposeTextProducesPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, grayImage(t, 640, 360, 60)); err != nil {
		t.Fatalf("failed to encode background: %v", err)
	}

	out, err := ComposeText(buf.Bytes(), Overlay{
		Title:    "Graphic Design Fundamentals",
		Subtitle: "From sketch to screen",
		Info:     "Mar 3 - Apr 14 • Mon, Wed 18:00-20:00",
		CTA:      "Sign Up Now",
	})
	if err != nil {
		t.Fatalf("ComposeText failed: %v", err)
	}

	composed, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	if composed.Bounds().Dx() != 640 || composed.Bounds().Dy() != 360 {
		t.Errorf("composed image changed dimensions: %v", composed.Bounds())
	}
}

func TestComposeTextSkipsEmptyBoxes(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, grayImage(t, 320, 180, 220)); err != nil {
		t.Fatalf("failed to encode background: %v", err)
	}

	out, err := ComposeText(buf.Bytes(), Overlay{Title: "Title Only"})
	if err != nil {
		t.Fatalf("ComposeText failed: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(out)); err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
}

func TestComposeTextMalformedBackground(t *testing.T) {
	if _, err := ComposeText([]byte("not an image"), Overlay{Title: "x"}); err == nil {
		t.Fatal("expected error for malformed background")
	}
}
