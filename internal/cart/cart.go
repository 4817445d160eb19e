// Package cart holds the per-user shopping cart. Carts live in memory
// only; they are not persisted across restarts.
package cart

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrInvalidQuantity is returned when an add specifies a quantity below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrLineNotFound is returned when an update targets a product not in the cart.
	ErrLineNotFound = errors.New("cart line not found")
)

// Line is a single cart entry. OriginalPrice is zero when the product
// has no promotional strike-through price.
type Line struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	UnitPrice     float64 `json:"unit_price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Quantity      int     `json:"quantity"`
}

// Snapshot is a read-only view of one user's cart. Total is always
// recomputed from the lines, never cached.
type Snapshot struct {
	Lines []Line  `json:"lines"`
	Total float64 `json:"total"`
}

// Summary is the checkout math shown on the cart page: free shipping
// from $35, otherwise $5.99, plus 8% tax.
type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

const (
	freeShippingThreshold = 35.0
	shippingFee           = 5.99
	taxRate               = 0.08
)

type userCart struct {
	order []string
	lines map[string]*Line
}

// Store keeps one cart per user, keyed by user id.
type Store struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*userCart
}

// NewStore returns an empty cart store.
func NewStore() *Store {
	return &Store{carts: make(map[uuid.UUID]*userCart)}
}

func (s *Store) cart(userID uuid.UUID) *userCart {
	c, ok := s.carts[userID]
	if !ok {
		c = &userCart{lines: make(map[string]*Line)}
		s.carts[userID] = c
	}
	return c
}

// Add inserts a line or, when the product is already present, merges
// the quantities additively. Insertion order is preserved for display.
func (s *Store) Add(userID uuid.UUID, line Line) error {
	if line.Quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(userID)
	if existing, ok := c.lines[line.ProductID]; ok {
		existing.Quantity += line.Quantity
		return nil
	}

	added := line
	c.lines[line.ProductID] = &added
	c.order = append(c.order, line.ProductID)
	return nil
}

// Remove deletes a line. Removing an absent product is a no-op.
func (s *Store) Remove(userID uuid.UUID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart(userID).remove(productID)
}

// UpdateQuantity sets the quantity of an existing line. A quantity of
// zero or below removes the line instead.
func (s *Store) UpdateQuantity(userID uuid.UUID, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(userID)
	line, ok := c.lines[productID]
	if !ok {
		return ErrLineNotFound
	}

	if quantity <= 0 {
		c.remove(productID)
		return nil
	}

	line.Quantity = quantity
	return nil
}

// Clear empties the user's cart.
func (s *Store) Clear(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// Snapshot returns the cart lines in insertion order with the
// recomputed total.
func (s *Store) Snapshot(userID uuid.UUID) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(userID)
	snap := Snapshot{Lines: make([]Line, 0, len(c.order))}
	for _, id := range c.order {
		line := c.lines[id]
		snap.Lines = append(snap.Lines, *line)
		snap.Total += line.UnitPrice * float64(line.Quantity)
	}
	return snap
}

// Summarize computes the checkout summary for the user's current cart.
func (s *Store) Summarize(userID uuid.UUID) Summary {
	snap := s.Snapshot(userID)

	sum := Summary{Subtotal: snap.Total}
	if sum.Subtotal > 0 && sum.Subtotal < freeShippingThreshold {
		sum.Shipping = shippingFee
	}
	sum.Tax = sum.Subtotal * taxRate
	sum.Total = sum.Subtotal + sum.Shipping + sum.Tax
	return sum
}

func (c *userCart) remove(productID string) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
