package memstore

import (
	"testing"

	"ansify/internal/domain"
	"ansify/internal/port"
)

var _ port.StateStore = (*MemoryStore)(nil)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	for _, p := range []string{"b.c", "a.c"} {
		if err := s.Put(domain.ConversionRecord{Path: p, Hash: "h-" + p}); err != nil {
			t.Fatal(err)
		}
	}

	rec, found, err := s.Get("a.c")
	if err != nil || !found {
		t.Fatalf("expected a.c, got found=%v err=%v", found, err)
	}
	if rec.Hash != "h-a.c" {
		t.Errorf("unexpected hash %s", rec.Hash)
	}

	recs, _ := s.List()
	if len(recs) != 2 || recs[0].Path != "a.c" {
		t.Errorf("expected sorted records, got %+v", recs)
	}

	if err := s.Delete("a.c"); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := s.Get("a.c"); found {
		t.Error("expected a.c to be deleted")
	}

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if recs, _ := s.List(); len(recs) != 0 {
		t.Errorf("expected empty store, got %d", len(recs))
	}
}
