package cart

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id string, price float64, qty int) Line {
	return Line{ProductID: id, Name: "item " + id, UnitPrice: price, Quantity: qty}
}

func TestAddMergesQuantities(t *testing.T) {
	store := NewStore()
	user := uuid.New()

	require.NoError(t, store.Add(user, line("p1", 9.99, 1)))
	require.NoError(t, store.Add(user, line("p1", 9.99, 2)))

	snap := store.Snapshot(user)
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 3, snap.Lines[0].Quantity)
	assert.InDelta(t, 29.97, snap.Total, 1e-9)
}

func TestAddRejectsInvalidQuantity(t *testing.T) {
	store := NewStore()
	user := uuid.New()

	assert.ErrorIs(t, store.Add(user, line("p1", 5, 0)), ErrInvalidQuantity)
	assert.ErrorIs(t, store.Add(user, line("p1", 5, -3)), ErrInvalidQuantity)
	assert.Empty(t, store.Snapshot(user).Lines)
}

func TestInsertionOrderPreserved(t *testing.T) {
	store := NewStore()
	user := uuid.New()

	require.NoError(t, store.Add(user, line("a", 1, 1)))
	require.NoError(t, store.Add(user, line("b", 2, 1)))
	require.NoError(t, store.Add(user, line("c", 3, 1)))
	require.NoError(t, store.Add(user, line("a", 1, 1)))

	snap := store.Snapshot(user)
	ids := []string{snap.Lines[0].ProductID, snap.Lines[1].ProductID, snap.Lines[2].ProductID}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	store := NewStore()
	user := uuid.New()

	require.NoError(t, store.Add(user, line("p1", 5, 1)))
	store.Remove(user, "nope")

	assert.Len(t, store.Snapshot(user).Lines, 1)
}

func TestUpdateQuantity(t *testing.T) {
	store := NewStore()
	user := uuid.New()

	require.NoError(t, store.Add(user, line("p1", 4.50, 2)))

	require.NoError(t, store.UpdateQuantity(user, "p1", 5))
	assert.Equal(t, 5, store.Snapshot(user).Lines[0].Quantity)

	// zero or below behaves as removal
	require.NoError(t, store.UpdateQuantity(user, "p1", 0))
	assert.Empty(t, store.Snapshot(user).Lines)

	assert.ErrorIs(t, store.UpdateQuantity(user, "gone", 3), ErrLineNotFound)
}

func TestClear(t *testing.T) {
	store := NewStore()
	user := uuid.New()

	require.NoError(t, store.Add(user, line("p1", 1, 1)))
	require.NoError(t, store.Add(user, line("p2", 2, 1)))
	store.Clear(user)

	snap := store.Snapshot(user)
	assert.Empty(t, snap.Lines)
	assert.Zero(t, snap.Total)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	store := NewStore()
	alice := uuid.New()
	bob := uuid.New()

	require.NoError(t, store.Add(alice, line("p1", 10, 1)))

	assert.Len(t, store.Snapshot(alice).Lines, 1)
	assert.Empty(t, store.Snapshot(bob).Lines)
}

// The total must always equal the recomputed sum over the lines, for
// any sequence of operations.
func TestTotalInvariantUnderOperationSequences(t *testing.T) {
	store := NewStore()
	user := uuid.New()

	ops := []func(){
		func() { _ = store.Add(user, line("a", 3.25, 2)) },
		func() { _ = store.Add(user, line("b", 10.00, 1)) },
		func() { _ = store.UpdateQuantity(user, "a", 7) },
		func() { store.Remove(user, "b") },
		func() { _ = store.Add(user, line("c", 0.99, 4)) },
		func() { _ = store.UpdateQuantity(user, "c", 0) },
		func() { _ = store.Add(user, line("a", 3.25, 1)) },
	}

	for _, op := range ops {
		op()

		snap := store.Snapshot(user)
		want := 0.0
		for _, l := range snap.Lines {
			want += l.UnitPrice * float64(l.Quantity)
		}
		assert.True(t, math.Abs(snap.Total-want) < 1e-9, "total drifted from recomputed sum")
	}
}

func TestSummaryMath(t *testing.T) {
	store := NewStore()
	user := uuid.New()

	// below the free-shipping threshold
	require.NoError(t, store.Add(user, line("p1", 10, 2)))
	sum := store.Summarize(user)
	assert.InDelta(t, 20.0, sum.Subtotal, 1e-9)
	assert.InDelta(t, 5.99, sum.Shipping, 1e-9)
	assert.InDelta(t, 1.60, sum.Tax, 1e-9)
	assert.InDelta(t, 27.59, sum.Total, 1e-9)

	// above the threshold shipping is free
	require.NoError(t, store.Add(user, line("p2", 30, 1)))
	sum = store.Summarize(user)
	assert.Zero(t, sum.Shipping)

	// empty cart owes nothing
	store.Clear(user)
	sum = store.Summarize(user)
	assert.Zero(t, sum.Total)
	assert.Zero(t, sum.Shipping)
}
