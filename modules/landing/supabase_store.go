package landing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/supabase-community/supabase-go"

	"courseflow-server/modules/common/config"
)

// SupabaseStore - optional landing backup in a Supabase table. Each row keeps
// the full record as a JSON column so schema changes stay in one place.
type SupabaseStore struct {
	supabase *supabase.Client
	table    string
}

type landingRow struct {
	ID        string    `json:"id"`
	Record    *Record   `json:"record"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSupabaseStore() *SupabaseStore {
	cfg := config.GetConfig()

	supabaseClient, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, &supabase.ClientOptions{})
	if err != nil {
		log.Printf("❌ [Landing] Failed to create Supabase client: %v", err)
		return nil
	}

	return &SupabaseStore{
		supabase: supabaseClient,
		table:    cfg.SupabaseLandingTable,
	}
}

func (s *SupabaseStore) Save(_ context.Context, rec *Record) error {
	row := landingRow{
		ID:        rec.ID,
		Record:    rec,
		CreatedAt: rec.CreatedAt,
	}

	_, _, err := s.supabase.From(s.table).
		Insert(row, false, "", "", "").
		Execute()

	if err != nil {
		return fmt.Errorf("failed to insert landing into Supabase: %w", err)
	}
	return nil
}

func (s *SupabaseStore) Load(_ context.Context, id string) (*Record, error) {
	var rows []landingRow

	data, _, err := s.supabase.From(s.table).
		Select("*", "exact", false).
		Eq("id", id).
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to query Supabase: %w", err)
	}

	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse Supabase response: %w", err)
	}

	if len(rows) == 0 || rows[0].Record == nil {
		return nil, ErrNotFound
	}
	return rows[0].Record, nil
}
