package landing

import (
	"context"
	"errors"
)

// ErrNotFound - the landing id does not exist in the queried store.
var ErrNotFound = errors.New("landing not found")

// Store - one landing persistence backend. The service layers a local file
// store, an optional Supabase table and an optional remote spreadsheet
// endpoint behind this interface.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Load(ctx context.Context, id string) (*Record, error)
}
