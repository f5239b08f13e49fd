package postprocess

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"courseflow-server/modules/common/utils"
)

func postCompose(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/compose-banner", strings.NewReader(body))
	rec := httptest.NewRecorder()
	HandleCompose(rec, req)
	return rec
}

func TestHandleComposeInvalidJSON(t *testing.T) {
	if rec := postCompose(t, "{not json"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleComposeMissingFields(t *testing.T) {
	if rec := postCompose(t, `{"title":"x"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without background, got %d", rec.Code)
	}
	if rec := postCompose(t, `{"background":"aGVsbG8="}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without title, got %d", rec.Code)
	}
}

func TestHandleComposeBadBackground(t *testing.T) {
	body, _ := json.Marshal(ComposeRequest{
		Background: utils.EncodeDataURL("image/png", []byte("not an image")),
		Title:      "Graphic Design Fundamentals",
	})

	if rec := postCompose(t, string(body)); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for undecodable background, got %d", rec.Code)
	}
}

func TestHandleComposeRenderingFailure(t *testing.T) {
	orig := composeText
	composeText = func(_ []byte, _ Overlay) ([]byte, error) {
		return nil, errors.New("failed to load font")
	}
	defer func() { composeText = orig }()

	var buf bytes.Buffer
	if err := png.Encode(&buf, grayImage(t, 64, 36, 40)); err != nil {
		t.Fatalf("failed to encode background: %v", err)
	}

	body, _ := json.Marshal(ComposeRequest{
		Background: utils.EncodeDataURL("image/png", buf.Bytes()),
		Title:      "Graphic Design Fundamentals",
	})

	// A decodable background with a failing renderer is a server-side error.
	if rec := postCompose(t, string(body)); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestHandleComposeSuccess(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, grayImage(t, 640, 360, 40)); err != nil {
		t.Fatalf("failed to encode background: %v", err)
	}

	body, _ := json.Marshal(ComposeRequest{
		Background: utils.EncodeDataURL("image/png", buf.Bytes()),
		Title:      "Graphic Design Fundamentals",
		Subtitle:   "From sketch to screen",
		CTA:        "Sign Up Now",
	})

	rec := postCompose(t, string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ComposeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success || !strings.HasPrefix(resp.Banner, "data:image/png;base64,") {
		t.Errorf("unexpected response: success=%v banner prefix=%q", resp.Success, resp.Banner[:min(len(resp.Banner), 30)])
	}

	// The composed banner must itself decode as PNG.
	data, _, err := utils.DecodeDataURL(resp.Banner)
	if err != nil {
		t.Fatalf("composed banner is not a data URL: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("composed banner is not valid PNG: %v", err)
	}

	// Uniform gray carries no vibrant swatch: the compose-flow fallback applies.
	if resp.Colors == nil || resp.Colors.Primary != ComposePrimary {
		t.Errorf("expected gold fallback primary, got %+v", resp.Colors)
	}
}
