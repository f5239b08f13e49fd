package postprocess

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"math"

	_ "image/jpeg" // JPEG 디코더 등록
	_ "image/png"  // PNG 디코더 등록

	_ "github.com/kolesa-team/go-webp/decoder" // WebP 디코더 등록
)

// Fallback colors when palette extraction fails.
const (
	DefaultPrimary = "#13ecda"
	DefaultAccent  = "#1a1a2e"

	// Fallback primary for the text-compositing flow.
	ComposePrimary = "#FFD700"
)

// ColorPair - extracted (or fallback) theme colors.
type ColorPair struct {
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
}

// swatch - one coarse palette bucket.
type swatch struct {
	count int
	sumR  uint64
	sumG  uint64
	sumB  uint64
}

func (s *swatch) average() (r, g, b uint8) {
	n := uint64(s.count)
	return uint8(s.sumR / n), uint8(s.sumG / n), uint8(s.sumB / n)
}

// ExtractColors - pick a vibrant primary and a dark-vibrant (or muted) accent
// from a generated banner. Any failure falls back to the default pair; this
// never returns an error.
func ExtractColors(imageData []byte) ColorPair {
	return ExtractColorsWithDefaults(imageData, DefaultPrimary, DefaultAccent)
}

// ExtractColorsWithDefaults - same extraction with caller-supplied fallbacks
// (the compositing flow defaults to the gold pair).
func ExtractColorsWithDefaults(imageData []byte, fallbackPrimary, fallbackAccent string) ColorPair {
	pair := ColorPair{Primary: fallbackPrimary, Accent: fallbackAccent}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		log.Printf("⚠️ [Colors] Failed to decode image, using fallback colors: %v", err)
		return pair
	}

	vibrant, darkVibrant, muted := buildPalette(img)

	if vibrant != nil {
		r, g, b := vibrant.average()
		pair.Primary = hexColor(r, g, b)
	}
	if darkVibrant != nil {
		r, g, b := darkVibrant.average()
		pair.Accent = hexColor(r, g, b)
	} else if muted != nil {
		r, g, b := muted.average()
		pair.Accent = hexColor(r, g, b)
	}

	return pair
}

// buildPalette - coarse 4-bit-per-channel palette over a pixel sample grid,
// returning the most populous swatch of each class.
func buildPalette(img image.Image) (vibrant, darkVibrant, muted *swatch) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, nil, nil
	}

	stepX := width / 128
	if stepX < 1 {
		stepX = 1
	}
	stepY := height / 128
	if stepY < 1 {
		stepY = 1
	}

	buckets := make(map[uint32]*swatch)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 < 0x8000 {
				continue
			}
			r, g, b := uint8(r16>>8), uint8(g16>>8), uint8(b16>>8)

			key := uint32(r>>4)<<8 | uint32(g>>4)<<4 | uint32(b>>4)
			bucket, ok := buckets[key]
			if !ok {
				bucket = &swatch{}
				buckets[key] = bucket
			}
			bucket.count++
			bucket.sumR += uint64(r)
			bucket.sumG += uint64(g)
			bucket.sumB += uint64(b)
		}
	}

	var vibrantCount, darkCount, mutedCount int
	for _, bucket := range buckets {
		r, g, b := bucket.average()
		_, s, l := rgbToHSL(r, g, b)

		switch {
		case s >= 0.35 && l >= 0.35 && l <= 0.7:
			if bucket.count > vibrantCount {
				vibrant, vibrantCount = bucket, bucket.count
			}
		case s >= 0.35 && l >= 0.05 && l < 0.35:
			if bucket.count > darkCount {
				darkVibrant, darkCount = bucket, bucket.count
			}
		case s >= 0.08 && s < 0.35 && l >= 0.2 && l <= 0.8:
			if bucket.count > mutedCount {
				muted, mutedCount = bucket, bucket.count
			}
		}
	}

	return vibrant, darkVibrant, muted
}

func rgbToHSL(r, g, b uint8) (h, s, l float64) {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}
	h /= 6

	return h, s, l
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
