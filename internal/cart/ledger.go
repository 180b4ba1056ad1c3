package cart

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"apparel-store-service/internal/domain"
)

// Predefined errors for cart operations
var (
	ErrSelectionRequired = errors.New("cart: size and color must be selected")
	ErrSelectionUnknown  = errors.New("cart: product is not offered in the selected size or color")
	ErrInvalidQuantity   = errors.New("cart: quantity must be at least 1")
	ErrLineNotFound      = errors.New("cart: line not found")
)

// LineKey identifies a cart line: the same product added in a different size
// or color is a separate line.
type LineKey struct {
	ProductID int64  `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// Line is one cart entry. Name and Price are snapshots taken from the product
// at Add time, so a catalog reload never retroactively changes a line that is
// already in the cart.
type Line struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
}

// Key returns the identity of the line.
func (l Line) Key() LineKey {
	return LineKey{ProductID: l.ProductID, Size: l.Size, Color: l.Color}
}

// Ledger maintains the lines of a single cart. There is at most one line per
// LineKey. All methods serialize through an internal mutex because HTTP
// requests for the same cart can run concurrently.
type Ledger struct {
	mu    sync.Mutex
	lines []Line        // insertion order, for stable rendering
	index map[LineKey]int
}

// NewLedger creates an empty cart ledger.
func NewLedger() *Ledger {
	return &Ledger{index: make(map[LineKey]int)}
}

// Add puts one unit of the product in the given size and color into the cart.
// Both size and color must be explicitly selected and must be offered by the
// product. A repeat Add of the same (product, size, color) increments the
// existing line's quantity instead of creating a second line. Returns the
// resulting line.
func (c *Ledger) Add(p domain.Product, size, color string) (Line, error) {
	if size == "" || color == "" {
		return Line{}, ErrSelectionRequired
	}
	if !p.HasSize(size) || !p.HasColor(color) {
		return Line{}, ErrSelectionUnknown
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := LineKey{ProductID: p.ID, Size: size, Color: color}
	if i, ok := c.index[key]; ok {
		c.lines[i].Quantity++
		return c.lines[i], nil
	}

	line := Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Size:      size,
		Color:     color,
		Quantity:  1,
	}
	c.index[key] = len(c.lines)
	c.lines = append(c.lines, line)
	return line, nil
}

// SetQuantity overwrites the quantity of an existing line with a user-entered
// value. Quantities below 1 are rejected and leave the cart unchanged;
// removing a line is an explicit Remove, never a side effect of quantity math.
func (c *Ledger) SetQuantity(key LineKey, quantity int) (Line, error) {
	if quantity < 1 {
		return Line{}, ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[key]
	if !ok {
		return Line{}, ErrLineNotFound
	}
	c.lines[i].Quantity = quantity
	return c.lines[i], nil
}

// Remove deletes the line with the given key. Removing an absent key is a
// no-op, not an error.
func (c *Ledger) Remove(key LineKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[key]
	if !ok {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, key)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].Key()] = j
	}
}

// Clear empties the cart. Used when a checkout completes.
func (c *Ledger) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.index = make(map[LineKey]int)
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Ledger) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalItemCount returns the sum of quantities across all lines.
func (c *Ledger) TotalItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Ledger) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}
