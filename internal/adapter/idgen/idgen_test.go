package idgen

import (
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestULIDGenerator(t *testing.T) {
	g := NewULIDGenerator()

	a := g.Generate()
	b := g.Generate()

	if a == b {
		t.Fatalf("expected distinct ids, got %q twice", a)
	}
	if _, err := ulid.Parse(a); err != nil {
		t.Fatalf("expected valid ulid, got %q: %v", a, err)
	}
}

func TestSequence(t *testing.T) {
	s := NewSequence("toast-")

	if got := s.Generate(); got != "toast-1" {
		t.Fatalf("expected toast-1, got %q", got)
	}
	if got := s.Generate(); got != "toast-2" {
		t.Fatalf("expected toast-2, got %q", got)
	}
}

func TestSequenceConcurrent(t *testing.T) {
	s := NewSequence("")

	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
		wg   sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := s.Generate()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != 50 {
		t.Fatalf("expected 50 unique ids, got %d", len(seen))
	}
}
