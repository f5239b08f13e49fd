package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"

	_ "image/jpeg" // JPEG 디코더 등록

	_ "github.com/kolesa-team/go-webp/decoder" // WebP 디코더 등록
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// EncodeDataURL - wrap raw image bytes as a data URL.
func EncodeDataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// DecodeDataURL - decode a data URL (or bare base64 string) into raw bytes
// plus the declared mime type.
func DecodeDataURL(s string) ([]byte, string, error) {
	mimeType := "image/png"
	payload := s

	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ";base64,")
		if idx < 0 {
			return nil, "", fmt.Errorf("data URL without base64 payload")
		}
		mimeType = s[len("data:"):idx]
		payload = s[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode base64 image: %w", err)
	}
	return data, mimeType, nil
}

// ConvertPNGToWebP - re-encode a PNG as lossy WebP for storage uploads.
func ConvertPNGToWebP(pngData []byte, quality float32) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG: %w", err)
	}

	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to create WebP encoder options: %w", err)
	}

	var webpBuffer bytes.Buffer
	if err := webp.Encode(&webpBuffer, img, options); err != nil {
		return nil, fmt.Errorf("failed to encode WebP: %w", err)
	}

	return webpBuffer.Bytes(), nil
}
