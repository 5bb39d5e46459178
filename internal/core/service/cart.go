package service

import (
	"context"
	"slices"
	"sync"

	"github.com/likmaa/ejs-market/internal/core/domain"
	"github.com/likmaa/ejs-market/internal/core/port"
)

var _ port.CartStore = (*CartService)(nil)

// A CartService tracks pending purchase selections for the lifetime
// of a client session, mirroring every mutation to durable storage.
type CartService struct {
	mu     sync.Mutex
	lines  []domain.CartLine
	loaded bool
	mirror mirror
}

func NewCartService(storage port.SnapshotStorage) *CartService {
	return &CartService{
		mirror: newMirror("CartService", SnapshotKeyCart, storage),
	}
}

// Rehydrate loads the last persisted snapshot. Until it runs,
// mutations are kept in memory only, so a fresh process never
// overwrites an existing snapshot with an empty one.
func (s *CartService) Rehydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lines []domain.CartLine
	if !s.mirror.load(ctx, &lines) {
		lines = nil
	}
	s.lines = lines
	s.loaded = true
}

func (s *CartService) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines)
}

func (s *CartService) Totals() domain.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CalcCartTotals(s.lines)
}

// Add appends a new line or, when the product is already present,
// increments the existing quantity.
func (s *CartService) Add(line domain.CartLine, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(line.ProductID); i >= 0 {
		s.lines[i].Quantity += quantity
	} else {
		line.Quantity = quantity
		s.lines = append(s.lines, line)
	}
	s.persistLocked()
}

func (s *CartService) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.lines = slices.Delete(s.lines, i, i+1)
	s.persistLocked()
}

// SetQuantity overwrites the line's quantity.
// A quantity of zero or less removes the line entirely.
func (s *CartService) SetQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		s.lines = slices.Delete(s.lines, i, i+1)
	} else {
		s.lines[i].Quantity = quantity
	}
	s.persistLocked()
}

func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persistLocked()
}

func (s *CartService) indexOf(productID string) int {
	return slices.IndexFunc(s.lines, func(l domain.CartLine) bool {
		return l.ProductID == productID
	})
}

func (s *CartService) persistLocked() {
	if !s.loaded {
		return
	}
	s.mirror.persist(slices.Clone(s.lines))
}
