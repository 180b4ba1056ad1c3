package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"apparel-store-service/internal/domain"
)

// Predefined errors for catalog operations
var (
	ErrDuplicateProductID = errors.New("catalog: duplicate product id")
	ErrProductNotFound    = errors.New("catalog: product not found")
)

// Store holds the immutable product list for the session. Load replaces the
// whole catalog; individual products are never mutated in place. Reads and the
// occasional reload can race (the HTTP server is concurrent), hence the RWMutex.
type Store struct {
	mu       sync.RWMutex
	products []domain.Product
	byID     map[int64]int // product id -> index into products
}

// NewStore creates an empty catalog store.
func NewStore() *Store {
	return &Store{byID: make(map[int64]int)}
}

// Load replaces the in-memory catalog with the given products. Ids must be
// unique; on violation the store is left unchanged and ErrDuplicateProductID
// is returned. The baseline browse order (name ascending) is applied once
// here, before any user-driven sorting.
func (s *Store) Load(products []domain.Product) error {
	loaded := make([]domain.Product, len(products))
	copy(loaded, products)
	sort.SliceStable(loaded, func(i, j int) bool {
		return loaded[i].Name < loaded[j].Name
	})

	byID := make(map[int64]int, len(loaded))
	for i, p := range loaded {
		if _, exists := byID[p.ID]; exists {
			return fmt.Errorf("%w: id %d", ErrDuplicateProductID, p.ID)
		}
		byID[p.ID] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = loaded
	s.byID = byID
	return nil
}

// All returns the catalog in its baseline order. The returned slice is shared,
// not copied; callers must treat it as read-only.
func (s *Store) All() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// Get returns the product with the given id.
func (s *Store) Get(id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return s.products[i], nil
}

// Len returns the number of products currently loaded.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}
