package memstore

import (
	"sort"
	"sync"

	"ansify/internal/domain"
)

// MemoryStore is a port.StateStore that lives only as long as the process.
type MemoryStore struct {
	mu   sync.RWMutex
	recs map[string]domain.ConversionRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		recs: make(map[string]domain.ConversionRecord),
	}
}

func (s *MemoryStore) Get(path string) (domain.ConversionRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[path]
	return rec, ok, nil
}

func (s *MemoryStore) Put(rec domain.ConversionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[rec.Path] = rec
	return nil
}

func (s *MemoryStore) Delete(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.recs, path)
	return nil
}

// List returns every record in path order, matching BoltStore.
func (s *MemoryStore) List() ([]domain.ConversionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]domain.ConversionRecord, 0, len(s.recs))
	for _, rec := range s.recs {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Path < recs[j].Path
	})
	return recs, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = make(map[string]domain.ConversionRecord)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
