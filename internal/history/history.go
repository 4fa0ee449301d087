// Package history records completed track exports so earlier documents can
// be looked up after the output file has been overwritten.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"
	"time"
)

var ErrNotFound = errors.New("export not found")

// Record is one completed export.
type Record struct {
	ID         string          `json:"id"`
	Track      string          `json:"track"`
	Path       string          `json:"path,omitempty"`
	Tracks     int             `json:"tracks"`
	Hotspots   int             `json:"hotspots"`
	Skipped    int             `json:"skipped"`
	ExportedBy string          `json:"exportedBy,omitempty"`
	Document   json.RawMessage `json:"document"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type Store interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (*Record, error)
	ListByTrack(ctx context.Context, track string, limit int) ([]Record, error)
}

// MemoryStore keeps records in process. It is used when no database is
// configured.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		if s.records[i].ID == id {
			rec := s.records[i]
			return &rec, nil
		}
	}
	return nil, ErrNotFound
}

// ListByTrack returns the newest records first.
func (s *MemoryStore) ListByTrack(_ context.Context, track string, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Record
	for _, rec := range slices.Backward(s.records) {
		if rec.Track != track {
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
