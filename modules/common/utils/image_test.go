package utils

import (
	"strings"
	"testing"
)

func TestEncodeDecodeDataURL(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0xff}

	url := EncodeDataURL("image/png", data)
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("unexpected data URL prefix: %q", url)
	}

	decoded, mimeType, err := DecodeDataURL(url)
	if err != nil {
		t.Fatalf("DecodeDataURL failed: %v", err)
	}
	if mimeType != "image/png" {
		t.Errorf("mime type = %q, want image/png", mimeType)
	}
	if string(decoded) != string(data) {
		t.Errorf("round trip mismatch: %v", decoded)
	}
}

func TestEncodeDataURLDefaultsMimeType(t *testing.T) {
	url := EncodeDataURL("", []byte("x"))
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("empty mime type should default to image/png: %q", url)
	}
}

func TestDecodeDataURLBareBase64(t *testing.T) {
	decoded, mimeType, err := DecodeDataURL("aGVsbG8=")
	if err != nil {
		t.Fatalf("DecodeDataURL failed: %v", err)
	}
	if string(decoded) != "hello" || mimeType != "image/png" {
		t.Errorf("unexpected result: %q %q", decoded, mimeType)
	}
}

func TestDecodeDataURLErrors(t *testing.T) {
	if _, _, err := DecodeDataURL("data:image/png,rawpayload"); err == nil {
		t.Error("expected error for data URL without base64 marker")
	}
	if _, _, err := DecodeDataURL("not!!base64"); err == nil {
		t.Error("expected error for invalid base64")
	}
}
