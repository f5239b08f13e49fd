package landing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"courseflow-server/modules/common/config"
)

// Service - landing persistence across the store chain. Creation is
// best-effort: the local file store is authoritative, the remote spreadsheet
// and Supabase backup only get forwarded copies.
type Service struct {
	baseURL string
	local   Store
	remote  *SheetStore
	backup  Store
}

func NewService() *Service {
	cfg := config.GetConfig()

	s := &Service{
		baseURL: cfg.PublicBaseURL,
		local:   NewFileStore(cfg.DataDir),
	}

	if cfg.SheetsAPIURL != "" {
		s.remote = NewSheetStore(cfg.SheetsAPIURL)
	}
	if cfg.HasSupabase() {
		if store := NewSupabaseStore(); store != nil {
			s.backup = store
		}
	}

	log.Printf("✅ [Landing] Service initialized (remote: %v, backup: %v)",
		s.remote != nil, s.backup != nil)
	return s
}

// Create - publish a landing page. Store failures are logged but never fail
// the request: the caller gets an id and URL regardless.
func (s *Service) Create(ctx context.Context, req *CreateRequest) *CreateResponse {
	rec := &Record{
		ID:            NewID(),
		CourseDetails: req.CourseDetails,
		Assets:        req.Assets,
		Theme:         req.Theme,
		Form:          req.Form,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.local.Save(ctx, rec); err != nil {
		log.Printf("⚠️ [Landing] Local save failed for %s: %v", rec.ID, err)
	}
	if s.backup != nil {
		if err := s.backup.Save(ctx, rec); err != nil {
			log.Printf("⚠️ [Landing] Supabase save failed for %s: %v", rec.ID, err)
		}
	}
	if s.remote != nil {
		if err := s.remote.Save(ctx, rec); err != nil {
			log.Printf("⚠️ [Landing] Remote forward failed for %s: %v", rec.ID, err)
		}
	}

	url := fmt.Sprintf("%s/l/%s", s.baseURL, rec.ID)
	log.Printf("✅ [Landing] Created landing %s (%s)", rec.ID, url)

	return &CreateResponse{
		Success: true,
		ID:      rec.ID,
		URL:     url,
	}
}

// Get - resolve a landing id, local store first, then the backup and the
// remote backend.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	rec, err := s.local.Load(ctx, id)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrNotFound) {
		log.Printf("⚠️ [Landing] Local read failed for %s: %v", id, err)
	}

	var fallbacks []Store
	if s.backup != nil {
		fallbacks = append(fallbacks, s.backup)
	}
	if s.remote != nil {
		fallbacks = append(fallbacks, s.remote)
	}

	for _, store := range fallbacks {
		rec, err := store.Load(ctx, id)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, ErrNotFound) {
			log.Printf("⚠️ [Landing] Fallback read failed for %s: %v", id, err)
		}
	}

	return nil, ErrNotFound
}

// Register - forward a visitor registration to the remote backend. Unlike
// creation this is remote-only and fails when no backend is configured.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) ([]byte, error) {
	if s.remote == nil {
		return nil, fmt.Errorf("registration backend is not configured")
	}
	return s.remote.Register(ctx, req)
}
