package banner

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"courseflow-server/modules/common/config"
	"courseflow-server/modules/postprocess"
)

type stubGenerator struct {
	resp *GenerateResponse
	err  error
}

func (s *stubGenerator) GenerateBannerSet(_ context.Context, _ *GenerateRequest) (*GenerateResponse, error) {
	return s.resp, s.err
}

func loadTestConfig(t *testing.T, apiKey string) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", apiKey)
	if _, err := config.LoadConfig(); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
}

func postGenerate(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/generate-banner", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)
	return rec
}

func TestHandleGenerateMissingCredential(t *testing.T) {
	loadTestConfig(t, "")
	h := &Handler{service: nil}

	rec := postGenerate(h, `{"courseDetails":{"title":"Graphic Design Fundamentals"}}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestHandleGenerateInvalidJSON(t *testing.T) {
	loadTestConfig(t, "test-key")
	h := &Handler{service: &stubGenerator{}}

	rec := postGenerate(h, "{not json")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleGenerateMissingTitle(t *testing.T) {
	loadTestConfig(t, "test-key")
	h := &Handler{service: &stubGenerator{}}

	rec := postGenerate(h, `{"courseDetails":{"title":"   "}}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Success || resp.ErrorMessage == "" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandleGenerateProviderFailure(t *testing.T) {
	loadTestConfig(t, "test-key")
	h := &Handler{service: &stubGenerator{err: errors.New("no image returned from model gemini-2.5-flash-image")}}

	rec := postGenerate(h, `{"courseDetails":{"title":"Graphic Design Fundamentals"}}`)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}

	var resp GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !strings.Contains(resp.ErrorMessage, "Failed to generate images") {
		t.Errorf("unexpected error message: %q", resp.ErrorMessage)
	}
}

func TestHandleGenerateSuccess(t *testing.T) {
	loadTestConfig(t, "test-key")

	stub := &stubGenerator{resp: &GenerateResponse{
		Success:    true,
		Banner:     "data:image/png;base64,aGVsbG8=",
		Background: "data:image/png;base64,d29ybGQ=",
		Colors: &postprocess.ColorPair{
			Primary: postprocess.DefaultPrimary,
			Accent:  postprocess.DefaultAccent,
		},
		GeneratedAt: time.Now().UTC(),
	}}
	h := &Handler{service: stub}

	rec := postGenerate(h, `{"courseDetails":{"title":"Graphic Design Fundamentals"}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success: %+v", resp)
	}
	if !strings.HasPrefix(resp.Banner, "data:image/") || !strings.HasPrefix(resp.Background, "data:image/") {
		t.Errorf("expected data URL assets, got banner=%q background=%q", resp.Banner, resp.Background)
	}
	if resp.Colors == nil || resp.Colors.Primary != postprocess.DefaultPrimary {
		t.Errorf("colors not carried through: %+v", resp.Colors)
	}
}

func TestHandleGenerateCORSPreflight(t *testing.T) {
	loadTestConfig(t, "test-key")
	h := &Handler{service: &stubGenerator{}}

	req := httptest.NewRequest("OPTIONS", "/api/generate-banner", nil)
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header on preflight")
	}
}
