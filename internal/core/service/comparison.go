package service

import (
	"context"
	"slices"
	"sync"

	"github.com/likmaa/ejs-market/internal/core/domain"
	"github.com/likmaa/ejs-market/internal/core/port"
)

var _ port.ComparisonStore = (*ComparisonService)(nil)

// A ComparisonService holds up to [domain.MaxComparisonItems] products.
// At capacity the oldest entry is evicted first, the container never
// rejects an insert.
type ComparisonService struct {
	mu      sync.Mutex
	entries []domain.ComparisonEntry
	mirror  mirror
}

func NewComparisonService(storage port.SnapshotStorage) *ComparisonService {
	return &ComparisonService{
		mirror: newMirror("ComparisonService", SnapshotKeyComparison, storage),
	}
}

// Rehydrate loads the last persisted snapshot, truncating anything
// beyond the container bound.
func (s *ComparisonService) Rehydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []domain.ComparisonEntry
	if !s.mirror.load(ctx, &entries) {
		entries = nil
	}
	if len(entries) > domain.MaxComparisonItems {
		entries = entries[:domain.MaxComparisonItems]
	}
	s.entries = entries
}

func (s *ComparisonService) Entries() []domain.ComparisonEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

func (s *ComparisonService) Has(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(productID) >= 0
}

func (s *ComparisonService) CanAddMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries) < domain.MaxComparisonItems
}

// Add is a no-op when the product is already present.
// A full container evicts the oldest entry before appending.
func (s *ComparisonService) Add(entry domain.ComparisonEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(entry.ProductID) >= 0 {
		return
	}
	if len(s.entries) >= domain.MaxComparisonItems {
		s.entries = slices.Delete(s.entries, 0, 1)
	}
	s.entries = append(s.entries, entry)
	s.persistLocked()
}

func (s *ComparisonService) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	s.persistLocked()
}

func (s *ComparisonService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.persistLocked()
}

func (s *ComparisonService) indexOf(productID string) int {
	return slices.IndexFunc(s.entries, func(e domain.ComparisonEntry) bool {
		return e.ProductID == productID
	})
}

func (s *ComparisonService) persistLocked() {
	s.mirror.persist(slices.Clone(s.entries))
}
