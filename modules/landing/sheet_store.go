package landing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// SheetStore - remote spreadsheet backend speaking the Apps Script style
// action protocol: POST bodies carry an "action" field, reads use query
// parameters.
type SheetStore struct {
	apiURL string
	client *http.Client
}

func NewSheetStore(apiURL string) *SheetStore {
	return &SheetStore{
		apiURL: apiURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type sheetEnvelope struct {
	Success bool    `json:"success"`
	Landing *Record `json:"landing,omitempty"`
	Error   string  `json:"error,omitempty"`
}

func (s *SheetStore) post(ctx context.Context, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sheet payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build sheet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheet API call failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet API returned status %d", resp.StatusCode)
	}
	return raw, nil
}

func (s *SheetStore) Save(ctx context.Context, rec *Record) error {
	payload := struct {
		Action  string  `json:"action"`
		Landing *Record `json:"landing"`
	}{Action: "createLanding", Landing: rec}

	if _, err := s.post(ctx, payload); err != nil {
		return err
	}
	return nil
}

func (s *SheetStore) Load(ctx context.Context, id string) (*Record, error) {
	u, err := url.Parse(s.apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid sheet API URL: %w", err)
	}
	q := u.Query()
	q.Set("action", "getLanding")
	q.Set("id", id)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sheet request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheet API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet API returned status %d", resp.StatusCode)
	}

	var envelope sheetEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to parse sheet response: %w", err)
	}
	if !envelope.Success || envelope.Landing == nil {
		return nil, ErrNotFound
	}
	return envelope.Landing, nil
}

// Register - forward a visitor registration and return the backend's raw
// response body so the caller can pass it through.
func (s *SheetStore) Register(ctx context.Context, req *RegisterRequest) ([]byte, error) {
	payload := struct {
		Action string `json:"action"`
		*RegisterRequest
	}{Action: "register", RegisterRequest: req}

	return s.post(ctx, payload)
}
