package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagelbot/internal/models"
)

func completedOrder(t *testing.T) *models.Order {
	t.Helper()
	o := models.NewOrder()
	it := models.NewItem(models.KindBagel, "Plain Bagel", 2)
	it.Status = models.StatusComplete
	o.AddItem(it)
	o.Delivery.Method = models.OrderTypePickup
	o.Customer.Name = "Sam"
	o.Checkout.Confirmed = true
	o.Payment.Method = "cash"
	return &o
}

func smoothTurns(n int) []Turn {
	turns := make([]Turn, n)
	for i := range turns {
		turns[i] = Turn{UserText: "two plain bagels", Reply: "Got it. Anything else?"}
	}
	return turns
}

func TestEvaluateCompletedConversation(t *testing.T) {
	e := NewEvaluator()
	r := e.Evaluate(completedOrder(t), smoothTurns(8))

	assert.True(t, r.Completed)
	assert.Equal(t, 8, r.Turns)
	assert.Equal(t, 1, r.ItemsOrdered)
	assert.Equal(t, 0, r.ItemsCancelled)
	assert.Equal(t, 0, r.FallbackTurns)
	assert.InDelta(t, 1.0, r.SlotCompleteness, 1e-9)
	assert.InDelta(t, 8.0, r.TurnsPerItem, 1e-9)
	assert.InDelta(t, 1.0, r.Score, 1e-9)
}

func TestEvaluateAbandonedConversation(t *testing.T) {
	o := models.NewOrder()
	it := models.NewItem(models.KindBagel, "Plain Bagel", 1)
	o.AddItem(it)

	turns := []Turn{
		{UserText: "a plain bagel", Reply: "Would you like that toasted?"},
		{UserText: "qwzzt", Reply: "I'm sorry, I didn't quite catch that — could you rephrase?"},
		{UserText: "uh", Reply: "I'm sorry, I didn't quite catch that — could you rephrase?"},
	}

	r := NewEvaluator().Evaluate(&o, turns)

	assert.False(t, r.Completed)
	assert.Equal(t, 2, r.FallbackTurns)
	assert.InDelta(t, 2.0/3.0, r.FallbackRate, 1e-9)
	assert.InDelta(t, 0.0, r.SlotCompleteness, 1e-9)
	// Completion and slots contribute nothing; clarity 1/3, efficiency full.
	assert.InDelta(t, 0.17, r.Score, 1e-9)
}

func TestCancelledItemsAreCountedSeparately(t *testing.T) {
	o := completedOrder(t)
	skipped := models.NewItem(models.KindSizedBeverage, "Latte", 1)
	id := o.AddItem(skipped)
	require.NoError(t, o.MarkSkipped(id))

	r := NewEvaluator().Evaluate(o, smoothTurns(10))
	assert.Equal(t, 1, r.ItemsOrdered)
	assert.Equal(t, 1, r.ItemsCancelled)
}

func TestLongConversationsLoseEfficiency(t *testing.T) {
	e := NewEvaluator()
	short := e.Evaluate(completedOrder(t), smoothTurns(8))
	long := e.Evaluate(completedOrder(t), smoothTurns(32))

	assert.Greater(t, short.Score, long.Score)
	assert.True(t, long.Completed)
}

func TestQuestionTurnsAreNotFallbacks(t *testing.T) {
	turns := []Turn{
		{UserText: "a latte", Reply: "What size would you like?"},
		{UserText: "large", Reply: "Hot or iced?"},
	}
	assert.Equal(t, 0, countFallbacks(turns))
	assert.Equal(t, 2, countQuestions(turns))
}
