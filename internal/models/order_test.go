package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to ItemStatus
		want     bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusComplete, true},
		{StatusInProgress, StatusComplete, true},
		{StatusInProgress, StatusPending, false},
		{StatusComplete, StatusInProgress, false},
		{StatusComplete, StatusPending, false},
		{StatusPending, StatusSkipped, true},
		{StatusInProgress, StatusSkipped, true},
		{StatusComplete, StatusSkipped, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestAdvanceRejectsIllegalTransition(t *testing.T) {
	it := NewItem(KindBagel, "Bagel", 1)
	require.NoError(t, it.Advance(StatusComplete))
	assert.Error(t, it.Advance(StatusInProgress))
	assert.Equal(t, StatusComplete, it.Status)
}

func TestAdvanceIsIdempotentOnSameStatus(t *testing.T) {
	it := NewItem(KindBagel, "Bagel", 1)
	require.NoError(t, it.Advance(StatusInProgress))
	assert.NoError(t, it.Advance(StatusInProgress))
}

func TestNewItemInitializesVariant(t *testing.T) {
	assert.NotNil(t, NewItem(KindBagel, "Bagel", 1).Bagel)
	assert.NotNil(t, NewItem(KindSizedBeverage, "Latte", 1).Drink)
	assert.NotNil(t, NewItem(KindSpeedMenu, "Lox Special", 1).Speed)
	g := NewItem(KindGeneric, "Turkey Club", 1)
	require.NotNil(t, g.Generic)
	assert.NotNil(t, g.Generic.AttributeValues)
}

func TestMarkSkippedPreservesHistory(t *testing.T) {
	o := NewOrder()
	id := o.AddItem(NewItem(KindBagel, "Bagel", 1))
	o.AddItem(NewItem(KindSizedBeverage, "Coffee", 1))

	require.NoError(t, o.MarkSkipped(id))

	assert.Len(t, o.Items, 2, "skipped items stay in the order history")
	assert.Len(t, o.ActiveItems(), 1)
	assert.Equal(t, "Coffee", o.ActiveItems()[0].Name)
}

func TestMarkSkippedClearsPendingState(t *testing.T) {
	o := NewOrder()
	id := o.AddItem(NewItem(KindSizedBeverage, "Latte", 1))
	o.PendingItemID = id
	o.PendingField = "size"
	o.EnqueueItem(id)

	require.NoError(t, o.MarkSkipped(id))

	assert.Empty(t, o.PendingItemID)
	assert.Empty(t, o.PendingField)
	assert.Nil(t, o.NextQueued())
}

func TestMarkSkippedUnknownID(t *testing.T) {
	o := NewOrder()
	assert.Error(t, o.MarkSkipped("nope"))
}

func TestNextQueuedSkipsCancelledItems(t *testing.T) {
	o := NewOrder()
	a := o.AddItem(NewItem(KindBagel, "Bagel", 1))
	b := o.AddItem(NewItem(KindSizedBeverage, "Coffee", 1))
	o.EnqueueItem(a)
	o.EnqueueItem(b)

	require.NoError(t, o.ItemByID(a).Advance(StatusSkipped))
	o.DequeueItem(a)

	next := o.NextQueued()
	require.NotNil(t, next)
	assert.Equal(t, b, next.ID)
	assert.Nil(t, o.NextQueued())
}

func TestAllItemsCompleteIgnoresSkipped(t *testing.T) {
	o := NewOrder()
	done := NewItem(KindBagel, "Bagel", 1)
	require.NoError(t, done.Advance(StatusComplete))
	o.AddItem(done)

	half := NewItem(KindSizedBeverage, "Latte", 1)
	id := o.AddItem(half)
	assert.False(t, o.AllItemsComplete())

	require.NoError(t, o.MarkSkipped(id))
	assert.True(t, o.AllItemsComplete())
}

func TestTotalSumsActiveLineTotals(t *testing.T) {
	o := NewOrder()
	bagel := NewItem(KindBagel, "Bagel", 3)
	bagel.UnitPrice = 2.00
	o.AddItem(bagel)

	latte := NewItem(KindSizedBeverage, "Latte", 1)
	latte.UnitPrice = 4.25
	id := o.AddItem(latte)

	assert.InDelta(t, 10.25, o.Total(), 0.001)

	require.NoError(t, o.MarkSkipped(id))
	assert.InDelta(t, 6.00, o.Total(), 0.001)
}
