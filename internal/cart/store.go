// Package cart holds the session cart and its single-vendor invariant.
// Every mutation runs synchronously under the store lock; callers get back
// a snapshot, never a reference into live state.
package cart

import (
	"errors"
	"sync"

	"github.com/fjod/go_market/internal/domain"
)

var (
	// ErrVendorMismatch means the cart already holds items from another
	// shop. The caller is expected to confirm with the user and retry via
	// Replace; the cart is left untouched.
	ErrVendorMismatch = errors.New("cart holds items from another shop")

	// ErrOutOfStock means the product has no available stock at all.
	ErrOutOfStock = errors.New("product is out of stock")

	// ErrLineNotFound means no cart line exists for the given product id.
	ErrLineNotFound = errors.New("cart line not found")
)

// ChangeResult reports what a cart mutation actually did. Applied is the
// quantity on the affected line after clamping; Clamped is set when the
// requested quantity exceeded the product's available stock, so the caller
// can surface "only N available" uniformly.
type ChangeResult struct {
	Cart    domain.Cart
	Applied int
	Clamped bool
}

type Store struct {
	mu   sync.RWMutex
	cart domain.Cart
}

func NewStore() *Store {
	return &Store{}
}

// Add upserts a line for the product. An empty cart adopts the product's
// shop; a cart bound to another shop rejects the add with ErrVendorMismatch.
// Re-adding an existing product increments its quantity. The quantity is
// clamped into [1, stock at add time].
func (s *Store) Add(p domain.Product, quantity int) (ChangeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !p.InStock() {
		return ChangeResult{Cart: s.snapshotLocked()}, ErrOutOfStock
	}
	if !s.cart.IsEmpty() && s.cart.ShopID != p.ShopID {
		return ChangeResult{Cart: s.snapshotLocked()}, ErrVendorMismatch
	}
	if quantity < 1 {
		quantity = 1
	}

	if i := s.lineIndexLocked(p.ID); i >= 0 {
		requested := s.cart.Lines[i].Quantity + quantity
		applied, clamped := clamp(requested, s.cart.Lines[i].Product.Quantity)
		s.cart.Lines[i].Quantity = applied
		return ChangeResult{Cart: s.snapshotLocked(), Applied: applied, Clamped: clamped}, nil
	}

	applied, clamped := clamp(quantity, p.Quantity)
	s.cart.ShopID = p.ShopID
	s.cart.Lines = append(s.cart.Lines, domain.CartLine{Product: p, Quantity: applied})
	return ChangeResult{Cart: s.snapshotLocked(), Applied: applied, Clamped: clamped}, nil
}

// Replace discards the current cart and starts a fresh one holding only the
// given product. Used after the user confirms dropping a foreign-vendor cart.
func (s *Store) Replace(p domain.Product, quantity int) (ChangeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !p.InStock() {
		return ChangeResult{Cart: s.snapshotLocked()}, ErrOutOfStock
	}
	if quantity < 1 {
		quantity = 1
	}
	applied, clamped := clamp(quantity, p.Quantity)
	s.cart = domain.Cart{
		ShopID: p.ShopID,
		Lines:  []domain.CartLine{{Product: p, Quantity: applied}},
	}
	return ChangeResult{Cart: s.snapshotLocked(), Applied: applied, Clamped: clamped}, nil
}

// Remove drops the line for the product. Removing the last line resets the
// shop binding, so any vendor may be added next.
func (s *Store) Remove(productID string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.lineIndexLocked(productID)
	if i < 0 {
		return s.snapshotLocked(), ErrLineNotFound
	}
	s.cart.Lines = append(s.cart.Lines[:i], s.cart.Lines[i+1:]...)
	if len(s.cart.Lines) == 0 {
		s.cart = domain.Cart{}
	}
	return s.snapshotLocked(), nil
}

// UpdateQuantity sets the line's quantity, clamped to the product's stock.
// A quantity of zero or less removes the line.
func (s *Store) UpdateQuantity(productID string, quantity int) (ChangeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.lineIndexLocked(productID)
	if i < 0 {
		return ChangeResult{Cart: s.snapshotLocked()}, ErrLineNotFound
	}
	if quantity <= 0 {
		s.cart.Lines = append(s.cart.Lines[:i], s.cart.Lines[i+1:]...)
		if len(s.cart.Lines) == 0 {
			s.cart = domain.Cart{}
		}
		return ChangeResult{Cart: s.snapshotLocked()}, nil
	}
	applied, clamped := clamp(quantity, s.cart.Lines[i].Product.Quantity)
	s.cart.Lines[i].Quantity = applied
	return ChangeResult{Cart: s.snapshotLocked(), Applied: applied, Clamped: clamped}, nil
}

// Clear resets the store to an empty cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = domain.Cart{}
}

// Snapshot returns a copy of the current cart.
func (s *Store) Snapshot() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Restore overwrites the store with a previously saved cart, dropping any
// line that no longer satisfies the invariants. Used to rehydrate a session.
func (s *Store) Restore(c domain.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = domain.Cart{}
	for _, l := range c.Lines {
		if l.Product.ShopID != c.ShopID || l.Quantity < 1 || !l.Product.InStock() {
			continue
		}
		if s.lineIndexLocked(l.Product.ID) >= 0 {
			continue
		}
		applied, _ := clamp(l.Quantity, l.Product.Quantity)
		s.cart.ShopID = c.ShopID
		s.cart.Lines = append(s.cart.Lines, domain.CartLine{Product: l.Product, Quantity: applied})
	}
}

func (s *Store) lineIndexLocked(productID string) int {
	for i, l := range s.cart.Lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() domain.Cart {
	out := domain.Cart{ShopID: s.cart.ShopID}
	if len(s.cart.Lines) > 0 {
		out.Lines = make([]domain.CartLine, len(s.cart.Lines))
		copy(out.Lines, s.cart.Lines)
	}
	return out
}

func clamp(requested, stock int) (applied int, clamped bool) {
	if requested > stock {
		return stock, true
	}
	return requested, false
}
