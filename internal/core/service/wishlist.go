package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/likmaa/ejs-market/internal/core/domain"
	"github.com/likmaa/ejs-market/internal/core/port"
)

var _ port.WishlistStore = (*WishlistService)(nil)

// A WishlistService tracks liked-but-not-purchased products.
type WishlistService struct {
	mu      sync.Mutex
	entries []domain.WishlistEntry
	loaded  bool
	mirror  mirror
}

func NewWishlistService(storage port.SnapshotStorage) *WishlistService {
	return &WishlistService{
		mirror: newMirror("WishlistService", SnapshotKeyWishlist, storage),
	}
}

func (s *WishlistService) Rehydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []domain.WishlistEntry
	if !s.mirror.load(ctx, &entries) {
		entries = nil
	}
	s.entries = entries
	s.loaded = true
}

func (s *WishlistService) Entries() []domain.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

func (s *WishlistService) Has(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(productID) >= 0
}

// Add is a no-op when the product is already present.
func (s *WishlistService) Add(entry domain.WishlistEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(entry)
}

func (s *WishlistService) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
}

// Toggle removes the entry when present, adds it otherwise.
// The membership check and the mutation happen under one lock hold.
func (s *WishlistService) Toggle(entry domain.WishlistEntry) (added bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(entry.ProductID) >= 0 {
		s.removeLocked(entry.ProductID)
		return false
	}
	s.addLocked(entry)
	return true
}

func (s *WishlistService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.persistLocked()
}

func (s *WishlistService) addLocked(entry domain.WishlistEntry) {
	if s.indexOf(entry.ProductID) >= 0 {
		return
	}
	entry.AddedAt = time.Now().UnixMilli()
	s.entries = append(s.entries, entry)
	s.persistLocked()
}

func (s *WishlistService) removeLocked(productID string) {
	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	s.persistLocked()
}

func (s *WishlistService) indexOf(productID string) int {
	return slices.IndexFunc(s.entries, func(e domain.WishlistEntry) bool {
		return e.ProductID == productID
	})
}

func (s *WishlistService) persistLocked() {
	if !s.loaded {
		return
	}
	s.mirror.persist(slices.Clone(s.entries))
}
