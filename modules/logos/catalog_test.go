package logos

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCatalogLoaded(t *testing.T) {
	entries := Catalog()
	if len(entries) == 0 {
		t.Fatal("embedded catalog is empty")
	}

	for _, entry := range entries {
		if entry.ID == "" || entry.Name == "" || entry.URL == "" {
			t.Errorf("incomplete catalog entry: %+v", entry)
		}
	}
}

func TestHandleList(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/logos", nil)
	rec := httptest.NewRecorder()

	HandleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success || len(resp.Logos) != len(Catalog()) {
		t.Errorf("unexpected response: %+v", resp)
	}
}
