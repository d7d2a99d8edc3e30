package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagelbot/internal/menu"
	"bagelbot/internal/models"
)

func completeBagel() *models.Item {
	it := models.NewItem(models.KindBagel, "Bagel", 1)
	it.Bagel.BagelType = "plain"
	toasted := true
	it.Bagel.Toasted = &toasted
	it.Status = models.StatusComplete
	return it
}

func TestNextAsksForItemsFirst(t *testing.T) {
	o := models.NewOrder()
	s := Next(&o)
	require.NotNil(t, s)
	assert.Equal(t, "items", s.Category)
}

func TestNextTreatsHalfConfiguredCartAsUnfilled(t *testing.T) {
	o := models.NewOrder()
	it := models.NewItem(models.KindBagel, "Bagel", 1)
	o.AddItem(it)

	s := Next(&o)
	require.NotNil(t, s)
	assert.Equal(t, "items", s.Category)
}

func TestNextSequencesCheckoutSlots(t *testing.T) {
	o := models.NewOrder()
	o.AddItem(completeBagel())

	s := Next(&o)
	require.NotNil(t, s)
	assert.Equal(t, "delivery_method", s.Category)

	o.Delivery.Method = models.OrderTypePickup
	s = Next(&o)
	require.NotNil(t, s)
	assert.Equal(t, "customer_name", s.Category, "pickup skips the address slot")

	o.Customer.Name = "Sam"
	s = Next(&o)
	require.NotNil(t, s)
	assert.Equal(t, "order_confirm", s.Category)

	o.Checkout.Confirmed = true
	s = Next(&o)
	require.NotNil(t, s)
	assert.Equal(t, "payment_method", s.Category)

	o.Payment.Method = "cash"
	assert.Nil(t, Next(&o))
	assert.True(t, IsComplete(&o))
}

func TestDeliveryRequiresAddress(t *testing.T) {
	o := models.NewOrder()
	o.AddItem(completeBagel())
	o.Delivery.Method = models.OrderTypeDelivery

	s := Next(&o)
	require.NotNil(t, s)
	assert.Equal(t, "delivery_address", s.Category)
}

func TestCardPaymentNeedsNotificationChannel(t *testing.T) {
	o := models.NewOrder()
	o.AddItem(completeBagel())
	o.Delivery.Method = models.OrderTypePickup
	o.Customer.Name = "Sam"
	o.Checkout.Confirmed = true
	o.Payment.Method = "card"

	s := Next(&o)
	require.NotNil(t, s)
	assert.Equal(t, "notification", s.Category)

	o.Customer.Phone = "555-123-4567"
	assert.Nil(t, Next(&o))
}

func TestRepeatCustomerGreetingInDeliveryQuestion(t *testing.T) {
	o := models.NewOrder()
	o.Customer.Name = "Sam"
	o.Customer.RepeatCustomer = true

	for i := range OrderSlots {
		if OrderSlots[i].Category == "delivery_method" {
			q := OrderSlots[i].Question(&o)
			assert.Contains(t, q, "Sam")
			return
		}
	}
	t.Fatal("no delivery_method slot")
}

func TestNextForItemBagel(t *testing.T) {
	snap := menu.DefaultSnapshot()
	it := models.NewItem(models.KindBagel, "Bagel", 1)

	s := NextForItem(it, snap)
	require.NotNil(t, s)
	assert.Equal(t, "bagel_type", s.Field)

	it.Bagel.BagelType = "plain"
	s = NextForItem(it, snap)
	require.NotNil(t, s)
	assert.Equal(t, "toasted", s.Field)

	toasted := false
	it.Bagel.Toasted = &toasted
	assert.Nil(t, NextForItem(it, snap), "a no answer still fills the slot")
}

func TestNextForItemDrink(t *testing.T) {
	snap := menu.DefaultSnapshot()
	it := models.NewItem(models.KindSizedBeverage, "Latte", 1)

	s := NextForItem(it, snap)
	require.NotNil(t, s)
	assert.Equal(t, "size", s.Field)

	it.Drink.Size = "large"
	s = NextForItem(it, snap)
	require.NotNil(t, s)
	assert.Equal(t, "temperature", s.Field)

	it.Drink.Temperature = "iced"
	assert.Nil(t, NextForItem(it, snap))
}

func TestGenericBagelChoiceOnlyAfterBagelSide(t *testing.T) {
	snap := menu.DefaultSnapshot()
	it := models.NewItem(models.KindGeneric, "Western Omelette", 1)

	s := NextForItem(it, snap)
	require.NotNil(t, s)
	assert.Equal(t, "side_choice", s.Field)

	it.Generic.AttributeValues["side_choice"] = "fruit salad"
	assert.Nil(t, NextForItem(it, snap), "non-bagel side needs no bagel choice")

	it.Generic.AttributeValues["side_choice"] = "bagel"
	s = NextForItem(it, snap)
	require.NotNil(t, s)
	assert.Equal(t, "bagel_choice", s.Field)

	it.Generic.AttributeValues["bagel_choice"] = "sesame"
	assert.Nil(t, NextForItem(it, snap))
}

func TestSyncStatusAdvancesOnlyForward(t *testing.T) {
	snap := menu.DefaultSnapshot()

	it := models.NewItem(models.KindSpeedMenu, "Bacon Egg and Cheese", 1)
	SyncStatus(it, snap)
	assert.Equal(t, models.StatusPending, it.Status)

	toasted := true
	it.Speed.Toasted = &toasted
	SyncStatus(it, snap)
	assert.Equal(t, models.StatusComplete, it.Status)

	skipped := models.NewItem(models.KindSpeedMenu, "Bacon Egg and Cheese", 1)
	skipped.Speed.Toasted = &toasted
	require.NoError(t, skipped.Advance(models.StatusSkipped))
	SyncStatus(skipped, snap)
	assert.Equal(t, models.StatusSkipped, skipped.Status)
}
