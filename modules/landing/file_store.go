package landing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// FileStore - one JSON file per landing under the data directory. This is the
// authoritative local store: reads always try it first.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("⚠️ [Landing] Failed to create data dir %s: %v", dir, err)
	}
	return &FileStore{dir: dir}
}

func (s *FileStore) path(id string) (string, error) {
	if !isValidID(id) {
		return "", fmt.Errorf("invalid landing id: %q", id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

func (s *FileStore) Save(_ context.Context, rec *Record) error {
	path, err := s.path(rec.ID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal landing %s: %w", rec.ID, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write landing %s: %w", rec.ID, err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context, id string) (*Record, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read landing %s: %w", id, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse landing %s: %w", id, err)
	}
	return &rec, nil
}
