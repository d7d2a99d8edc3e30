package modifiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagelbot/internal/menu"
	"bagelbot/internal/models"
)

func newTestEngine() *Engine {
	snap := menu.DefaultSnapshot()
	return NewEngine(menu.NewTablePricing(snap), menu.NewIngredientCache(snap))
}

func newTestBagel() *models.Item {
	it := models.NewItem(models.KindBagel, "Bagel", 1)
	it.UnitPrice = 1.75
	it.Bagel.BagelType = "plain"
	return it
}

func newTestLatte() *models.Item {
	it := models.NewItem(models.KindSizedBeverage, "Latte", 1)
	it.UnitPrice = 4.25
	return it
}

func TestApplySpreadAddsPrice(t *testing.T) {
	eng := newTestEngine()
	it := newTestBagel()

	require.NoError(t, eng.Apply(it, "spread", "cream cheese", 1))
	assert.Equal(t, "cream cheese", it.Bagel.Spread)
	assert.InDelta(t, 1.50, it.Bagel.SpreadPrice, 0.001)
	assert.InDelta(t, 3.25, it.UnitPrice, 0.001)
}

func TestApplyReplacingSpreadSwapsPrice(t *testing.T) {
	eng := newTestEngine()
	it := newTestBagel()

	require.NoError(t, eng.Apply(it, "spread", "cream cheese", 1))
	require.NoError(t, eng.Apply(it, "spread", "butter", 1))

	assert.Equal(t, "butter", it.Bagel.Spread)
	assert.InDelta(t, 0.75, it.Bagel.SpreadPrice, 0.001)
	assert.InDelta(t, 2.50, it.UnitPrice, 0.001)
}

func TestApplySyrupMultipliesQuantity(t *testing.T) {
	eng := newTestEngine()
	it := newTestLatte()

	require.NoError(t, eng.Apply(it, "syrup", "vanilla", 2))

	require.Len(t, it.Drink.Syrups, 1)
	assert.Equal(t, 2, it.Drink.Syrups[0].Quantity)
	assert.InDelta(t, 5.25, it.UnitPrice, 0.001)
}

func TestApplyUnknownFieldErrors(t *testing.T) {
	eng := newTestEngine()
	it := newTestLatte()
	assert.Error(t, eng.Apply(it, "spread", "butter", 1))
}

func TestRemoveScalarClearsValueAndPriceTogether(t *testing.T) {
	eng := newTestEngine()
	it := newTestBagel()
	require.NoError(t, eng.Apply(it, "spread", "cream cheese", 1))

	res := eng.RemoveByText(it, "the cream cheese")
	require.True(t, res.Success)
	assert.Equal(t, "cream cheese", res.Removed)
	assert.Empty(t, it.Bagel.Spread)
	assert.Zero(t, it.Bagel.SpreadPrice)
	assert.InDelta(t, 1.75, it.UnitPrice, 0.001)
}

func TestRemoveMissingModifierMutatesNothing(t *testing.T) {
	eng := newTestEngine()
	it := newTestBagel()
	require.NoError(t, eng.Apply(it, "spread", "cream cheese", 1))
	before := *it
	beforeBagel := *it.Bagel

	res := eng.RemoveByText(it, "pickles")
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
	assert.Equal(t, beforeBagel, *it.Bagel)
	assert.Equal(t, before, *it)
}

func TestRemoveNilMatchFails(t *testing.T) {
	eng := newTestEngine()
	it := newTestBagel()

	res := eng.Remove(it, nil)
	assert.False(t, res.Success)
}

func TestRemoveSpecificSyrupAdjustsPrice(t *testing.T) {
	eng := newTestEngine()
	it := newTestLatte()
	require.NoError(t, eng.Apply(it, "syrup", "vanilla", 2))
	require.NoError(t, eng.Apply(it, "syrup", "caramel", 1))

	res := eng.RemoveByText(it, "the vanilla")
	require.True(t, res.Success)
	require.Len(t, it.Drink.Syrups, 1)
	assert.Equal(t, "caramel", it.Drink.Syrups[0].Flavor)
	assert.InDelta(t, 4.75, it.UnitPrice, 0.001)
}

func TestRemoveAllSyrupsByFieldName(t *testing.T) {
	eng := newTestEngine()
	it := newTestLatte()
	require.NoError(t, eng.Apply(it, "syrup", "vanilla", 1))
	require.NoError(t, eng.Apply(it, "syrup", "caramel", 1))

	res := eng.RemoveByText(it, "syrup")
	require.True(t, res.Success)
	assert.Empty(t, it.Drink.Syrups)
	assert.InDelta(t, 4.25, it.UnitPrice, 0.001)
}

func TestFindOnAnyPrefersMostRecentItem(t *testing.T) {
	eng := newTestEngine()
	first := newTestBagel()
	require.NoError(t, eng.Apply(first, "spread", "butter", 1))
	second := newTestBagel()
	require.NoError(t, eng.Apply(second, "spread", "butter", 1))

	it, m := eng.FindOnAny([]*models.Item{first, second}, "butter")
	require.NotNil(t, m)
	assert.Same(t, second, it)
}

func TestRemoveDefaultIngredient(t *testing.T) {
	eng := newTestEngine()
	it := models.NewItem(models.KindSpeedMenu, "Bacon Egg and Cheese", 1)
	it.UnitPrice = 6.50

	res := eng.RemoveByText(it, "bacon")
	require.True(t, res.Success)
	assert.Contains(t, it.Speed.RemovedIngredients, "bacon")

	// Already removed, so a second attempt finds nothing.
	res = eng.RemoveByText(it, "bacon")
	assert.False(t, res.Success)
}

func TestRemoveIngredientNotOnItem(t *testing.T) {
	eng := newTestEngine()
	it := models.NewItem(models.KindSpeedMenu, "Bacon Egg and Cheese", 1)
	it.UnitPrice = 6.50

	res := eng.RemoveIngredient(it, "lox")
	assert.False(t, res.Success)
	assert.Empty(t, it.Speed.RemovedIngredients)
}
