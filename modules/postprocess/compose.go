package postprocess

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// BrightnessThreshold - region brightness at or above this picks the light
// overlay scheme (white pills, dark text).
const BrightnessThreshold = 128.0

// Overlay - the text boxes composited onto a clean background. Empty fields
// are skipped; at most four pills are drawn.
type Overlay struct {
	Title    string
	Subtitle string
	Info     string
	CTA      string
}

// Scheme - pill and text colors chosen from the background brightness.
type Scheme struct {
	Name string
	Pill color.NRGBA
	Text color.NRGBA
}

var (
	fontOnce   sync.Once
	parsedFont *opentype.Font
	fontErr    error
)

func loadFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		parsedFont, fontErr = opentype.Parse(goregular.TTF)
	})
	return parsedFont, fontErr
}

// RegionBrightness - average luminance of the central 50%-wide, 60%-tall
// region, sampling every 10th pixel.
func RegionBrightness(img image.Image) float64 {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return 0
	}

	x0 := bounds.Min.X + width/4
	x1 := x0 + width/2
	y0 := bounds.Min.Y + height/5
	y1 := y0 + height*3/5

	var sum float64
	var count int
	for y := y0; y < y1; y += 10 {
		for x := x0; x < x1; x += 10 {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r := float64(r16 >> 8)
			g := float64(g16 >> 8)
			b := float64(b16 >> 8)
			sum += 0.299*r + 0.587*g + 0.114*b
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// SchemeForBrightness - light backgrounds get semi-opaque white pills with
// dark text; dark backgrounds get dark pills with white text.
func SchemeForBrightness(brightness float64) Scheme {
	if brightness >= BrightnessThreshold {
		return Scheme{
			Name: "light",
			Pill: color.NRGBA{R: 255, G: 255, B: 255, A: 200},
			Text: color.NRGBA{R: 26, G: 26, B: 46, A: 255},
		}
	}
	return Scheme{
		Name: "dark",
		Pill: color.NRGBA{R: 26, G: 26, B: 46, A: 200},
		Text: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// ComposeText - render up to four rounded text pills onto a clean background
// and return the result as PNG. The CTA pill is filled with a color extracted
// from the background itself (gold fallback) so it stands out from the
// brightness-driven scheme.
func ComposeText(background []byte, overlay Overlay) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(background))
	if err != nil {
		return nil, fmt.Errorf("failed to decode background: %w", err)
	}

	bounds := img.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, img, bounds.Min, draw.Src)

	brightness := RegionBrightness(img)
	scheme := SchemeForBrightness(brightness)
	log.Printf("🎨 [Compose] Region brightness %.1f, using %s scheme", brightness, scheme.Name)

	ctaColors := ExtractColorsWithDefaults(background, ComposePrimary, DefaultAccent)
	ctaFill, err := parseHexColor(ctaColors.Primary)
	if err != nil {
		ctaFill = color.NRGBA{R: 255, G: 215, B: 0, A: 255}
	}
	ctaFill.A = 230
	ctaText := color.NRGBA{R: 26, G: 26, B: 46, A: 255}

	boxes := []struct {
		text    string
		sizePct float64
		centerY float64
		pill    color.NRGBA
		ink     color.NRGBA
	}{
		{overlay.Title, 0.09, 0.22, scheme.Pill, scheme.Text},
		{overlay.Subtitle, 0.05, 0.36, scheme.Pill, scheme.Text},
		{overlay.Info, 0.04, 0.50, scheme.Pill, scheme.Text},
		{overlay.CTA, 0.05, 0.88, ctaFill, ctaText},
	}

	height := float64(bounds.Dy())
	for _, box := range boxes {
		if box.text == "" {
			continue
		}
		if err := drawPill(canvas, box.text, height*box.sizePct, box.centerY, box.pill, box.ink); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode composed image: %w", err)
	}
	return buf.Bytes(), nil
}

// drawPill - rounded rectangle sized to the measured text, centered
// horizontally, with the text baseline inside.
func drawPill(canvas *image.RGBA, text string, fontSize, centerYPct float64, pill, ink color.NRGBA) error {
	f, err := loadFont()
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("failed to create font face: %w", err)
	}
	defer face.Close()

	bounds := canvas.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	textWidth := font.MeasureString(face, text).Ceil()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	padX := int(fontSize / 2)
	padY := int(fontSize / 4)

	pillW := textWidth + 2*padX
	pillH := ascent + descent + 2*padY
	pillX := bounds.Min.X + (width-pillW)/2
	pillY := bounds.Min.Y + int(float64(height)*centerYPct) - pillH/2

	rect := image.Rect(pillX, pillY, pillX+pillW, pillY+pillH)
	fillRoundedRect(canvas, rect, pillH/2, pill)

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot:  fixed.P(pillX+padX, pillY+padY+ascent),
	}
	drawer.DrawString(text)
	return nil
}

// fillRoundedRect - alpha-masked rounded rectangle fill.
func fillRoundedRect(dst *image.RGBA, rect image.Rectangle, radius int, fill color.NRGBA) {
	mask := image.NewAlpha(rect)
	rr := radius * radius

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dx, dy := 0, 0
			if x < rect.Min.X+radius {
				dx = rect.Min.X + radius - x
			} else if x >= rect.Max.X-radius {
				dx = x - (rect.Max.X - radius - 1)
			}
			if y < rect.Min.Y+radius {
				dy = rect.Min.Y + radius - y
			} else if y >= rect.Max.Y-radius {
				dy = y - (rect.Max.Y - radius - 1)
			}
			if dx > 0 && dy > 0 && dx*dx+dy*dy > rr {
				continue
			}
			mask.SetAlpha(x, y, color.Alpha{A: fill.A})
		}
	}

	src := image.NewUniform(color.NRGBA{R: fill.R, G: fill.G, B: fill.B, A: 255})
	draw.DrawMask(dst, rect, src, image.Point{}, mask, rect.Min, draw.Over)
}

func parseHexColor(s string) (color.NRGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
