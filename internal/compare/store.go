// Package compare holds the ephemeral side-by-side comparison list: at most
// MaxEntries products, all from one category. The category lock is an
// explicit field set by the first insert and cleared when the list empties,
// so removing the first entry does not relax the constraint for the rest.
package compare

import (
	"errors"
	"sync"

	"github.com/fjod/go_market/internal/domain"
)

// MaxEntries caps how many products can be compared at once.
const MaxEntries = 3

var (
	ErrCompareFull      = errors.New("comparison list is full")
	ErrCategoryMismatch = errors.New("product belongs to another category")
	ErrAlreadyCompared  = errors.New("product is already in the comparison list")
)

// List is a snapshot of the comparison state.
type List struct {
	LockedCategoryID string           `json:"lockedCategoryId,omitempty"`
	Entries          []domain.Product `json:"entries"`
}

type Store struct {
	mu               sync.RWMutex
	lockedCategoryID string
	entries          []domain.Product
}

func NewStore() *Store {
	return &Store{}
}

// Add inserts the product snapshot. Rejections leave the list unchanged:
// a full list, a category other than the locked one, or a duplicate id.
// The first insert locks the list to the product's category.
func (s *Store) Add(p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= MaxEntries {
		return ErrCompareFull
	}
	if len(s.entries) > 0 && p.Category.ID != s.lockedCategoryID {
		return ErrCategoryMismatch
	}
	for _, e := range s.entries {
		if e.ID == p.ID {
			return ErrAlreadyCompared
		}
	}

	if len(s.entries) == 0 {
		s.lockedCategoryID = p.Category.ID
	}
	s.entries = append(s.entries, p)
	return nil
}

// Remove deletes by product id. It is idempotent; emptying the list clears
// the category lock so the next Add defines a new category.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.ID == productID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	if len(s.entries) == 0 {
		s.lockedCategoryID = ""
		s.entries = nil
	}
}

// Clear empties the list and releases the category lock.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockedCategoryID = ""
	s.entries = nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Snapshot returns a copy of the current list.
func (s *Store) Snapshot() List {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := List{LockedCategoryID: s.lockedCategoryID}
	if len(s.entries) > 0 {
		out.Entries = make([]domain.Product, len(s.entries))
		copy(out.Entries, s.entries)
	}
	return out
}
