package landing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func newTestService(t *testing.T, remoteURL string) *Service {
	t.Helper()
	s := &Service{
		baseURL: "http://localhost:8080",
		local:   NewFileStore(t.TempDir()),
	}
	if remoteURL != "" {
		s.remote = NewSheetStore(remoteURL)
	}
	return s
}

func TestCreateSucceedsWhenRemoteDown(t *testing.T) {
	// Unreachable remote: the forward attempt must not fail the request.
	svc := newTestService(t, "http://127.0.0.1:1/sheets")

	resp := svc.Create(context.Background(), &CreateRequest{})

	if !resp.Success {
		t.Fatalf("expected success despite remote failure: %+v", resp)
	}
	if len(resp.ID) != 8 {
		t.Errorf("expected 8-character id, got %q", resp.ID)
	}
	if resp.URL != "http://localhost:8080/l/"+resp.ID {
		t.Errorf("unexpected URL: %q", resp.URL)
	}

	// The local copy must exist even though the forward failed.
	if _, err := svc.local.Load(context.Background(), resp.ID); err != nil {
		t.Errorf("local copy missing: %v", err)
	}
}

func TestCreateForwardsToRemote(t *testing.T) {
	var calls int32
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("remote received invalid JSON: %v", err)
		}
		if payload["action"] != "createLanding" {
			t.Errorf("expected createLanding action, got %v", payload["action"])
		}
		w.Write([]byte(`{"success":true}`))
	}))
	defer remote.Close()

	svc := newTestService(t, remote.URL)

	resp := svc.Create(context.Background(), &CreateRequest{})
	if !resp.Success {
		t.Fatalf("create failed: %+v", resp)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("expected 1 remote forward, got %d", calls)
	}
}

func TestGetPrefersLocalOverRemote(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("remote should not be queried when the local copy exists")
	}))
	defer remote.Close()

	svc := newTestService(t, remote.URL)
	ctx := context.Background()

	rec := testRecord("abcd1234")
	if err := svc.local.Save(ctx, rec); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	loaded, err := svc.Get(ctx, "abcd1234")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loaded.CourseDetails.Title != rec.CourseDetails.Title {
		t.Errorf("unexpected record: %+v", loaded)
	}
}

func TestGetFallsBackToRemote(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("action") != "getLanding" {
			t.Errorf("expected getLanding action, got %q", r.URL.Query().Get("action"))
		}
		if r.URL.Query().Get("id") != "remote99" {
			t.Errorf("unexpected id: %q", r.URL.Query().Get("id"))
		}
		json.NewEncoder(w).Encode(sheetEnvelope{
			Success: true,
			Landing: testRecord("remote99"),
		})
	}))
	defer remote.Close()

	svc := newTestService(t, remote.URL)

	loaded, err := svc.Get(context.Background(), "remote99")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loaded.ID != "remote99" {
		t.Errorf("unexpected record id: %q", loaded.ID)
	}
}

func TestGetMissEverywhere(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sheetEnvelope{Success: false, Error: "not found"})
	}))
	defer remote.Close()

	svc := newTestService(t, remote.URL)

	_, err := svc.Get(context.Background(), "zzzzzzzz")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegisterRequiresRemote(t *testing.T) {
	svc := newTestService(t, "")

	_, err := svc.Register(context.Background(), &RegisterRequest{Name: "Dana"})
	if err == nil {
		t.Fatal("expected error without a registration backend")
	}
	if !strings.Contains(err.Error(), "not configured") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRegisterForwardsAndReturnsRawBody(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("remote received invalid JSON: %v", err)
		}
		if payload["action"] != "register" {
			t.Errorf("expected register action, got %v", payload["action"])
		}
		if payload["email"] != "dana@example.com" {
			t.Errorf("registration fields not forwarded: %v", payload)
		}
		w.Write([]byte(`{"success":true,"row":42}`))
	}))
	defer remote.Close()

	svc := newTestService(t, remote.URL)

	raw, err := svc.Register(context.Background(), &RegisterRequest{
		LandingID: "abcd1234",
		Name:      "Dana",
		Email:     "dana@example.com",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if string(raw) != `{"success":true,"row":42}` {
		t.Errorf("raw body not passed through: %s", raw)
	}
}
