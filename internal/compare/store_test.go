package compare

import (
	"fmt"
	"testing"

	"github.com/fjod/go_market/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, categoryID string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "product " + id,
		Price:    50,
		Quantity: 10,
		ShopID:   "S1",
		Category: domain.Category{ID: categoryID, Name: categoryID},
	}
}

func TestAdd_FirstInsertLocksCategory(t *testing.T) {
	sut := NewStore()

	require.NoError(t, sut.Add(product("A", "electronics")))

	snap := sut.Snapshot()
	assert.Equal(t, "electronics", snap.LockedCategoryID)
	require.Len(t, snap.Entries, 1)
}

func TestAdd_RejectsOtherCategory(t *testing.T) {
	sut := NewStore()
	require.NoError(t, sut.Add(product("A", "electronics")))

	err := sut.Add(product("B", "books"))
	require.ErrorIs(t, err, ErrCategoryMismatch)

	snap := sut.Snapshot()
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, "A", snap.Entries[0].ID)
}

func TestAdd_RejectsDuplicate(t *testing.T) {
	sut := NewStore()
	require.NoError(t, sut.Add(product("A", "electronics")))

	err := sut.Add(product("A", "electronics"))
	require.ErrorIs(t, err, ErrAlreadyCompared)
	assert.Equal(t, 1, sut.Len())
}

func TestAdd_NeverExceedsCap(t *testing.T) {
	sut := NewStore()
	for i := 0; i < MaxEntries; i++ {
		require.NoError(t, sut.Add(product(fmt.Sprintf("P%d", i), "electronics")))
	}

	err := sut.Add(product("P99", "electronics"))
	require.ErrorIs(t, err, ErrCompareFull)
	assert.Equal(t, MaxEntries, sut.Len())
}

func TestRemove_FirstEntryKeepsLock(t *testing.T) {
	sut := NewStore()
	require.NoError(t, sut.Add(product("A", "electronics")))
	require.NoError(t, sut.Add(product("B", "electronics")))

	sut.Remove("A")

	// The remaining entry still pins the category.
	assert.Equal(t, "electronics", sut.Snapshot().LockedCategoryID)
	err := sut.Add(product("C", "books"))
	require.ErrorIs(t, err, ErrCategoryMismatch)
}

func TestRemove_EmptyingClearsLock(t *testing.T) {
	sut := NewStore()
	require.NoError(t, sut.Add(product("A", "electronics")))

	sut.Remove("A")
	assert.Empty(t, sut.Snapshot().LockedCategoryID)

	// The next add defines a new category.
	require.NoError(t, sut.Add(product("B", "books")))
	assert.Equal(t, "books", sut.Snapshot().LockedCategoryID)
}

func TestRemove_IsIdempotent(t *testing.T) {
	sut := NewStore()
	require.NoError(t, sut.Add(product("A", "electronics")))

	sut.Remove("A")
	sut.Remove("A") // no-op, no panic
	assert.Equal(t, 0, sut.Len())
}

func TestClear(t *testing.T) {
	sut := NewStore()
	require.NoError(t, sut.Add(product("A", "electronics")))
	require.NoError(t, sut.Add(product("B", "electronics")))

	sut.Clear()
	assert.Equal(t, 0, sut.Len())
	assert.Empty(t, sut.Snapshot().LockedCategoryID)
}

func TestSnapshot_IsACopy(t *testing.T) {
	sut := NewStore()
	require.NoError(t, sut.Add(product("A", "electronics")))

	snap := sut.Snapshot()
	snap.Entries[0].Name = "mutated"

	assert.Equal(t, "product A", sut.Snapshot().Entries[0].Name)
}
