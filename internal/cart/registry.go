package cart

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrCartNotFound is returned when a cart id is unknown to the registry.
var ErrCartNotFound = errors.New("cart: cart not found")

// Registry tracks the live carts of the service, one Ledger per cart id.
// Carts are created on demand and live for the duration of the process; there
// is no durability requirement.
type Registry struct {
	mu    sync.RWMutex
	carts map[string]*Ledger
}

// NewRegistry creates an empty cart registry.
func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Ledger)}
}

// Create registers a new empty cart and returns its id.
func (r *Registry) Create() string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[id] = NewLedger()
	return id
}

// Get returns the ledger for the given cart id.
func (r *Registry) Get(id string) (*Ledger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ledger, ok := r.carts[id]
	if !ok {
		return nil, ErrCartNotFound
	}
	return ledger, nil
}

// Delete removes the cart from the registry. Deleting an unknown id is a no-op.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, id)
}
