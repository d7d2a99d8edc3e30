package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bagelbot/internal/llm"
	"bagelbot/internal/menu"
	"bagelbot/internal/models"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) ParseOrder(ctx context.Context, req llm.Request) (*llm.Response, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*llm.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func newMockedPipeline(client llm.Client) *Pipeline {
	snap := menu.DefaultSnapshot()
	return NewPipeline(snap, menu.NewLookup(snap), client, 0)
}

func orderWithPendingDrink(field string) (*models.Order, *models.Item) {
	order := newOrder()
	it := models.NewItem(models.KindSizedBeverage, "Latte", 1)
	order.AddItem(it)
	order.PendingItemID = it.ID
	order.PendingField = field
	return order, order.ItemByID(it.ID)
}

func TestPendingItemSizeAnswer(t *testing.T) {
	p := newTestPipeline()
	order, _ := orderWithPendingDrink("size")

	r := parse(t, p, "large please", order)
	require.Equal(t, ResultSlotAnswer, r.Kind)
	assert.Equal(t, "size", r.Answer.Field)
	assert.Equal(t, "large", r.Answer.Value)
}

func TestPendingItemToastedAnswers(t *testing.T) {
	p := newTestPipeline()
	cases := []struct {
		text string
		want string
	}{
		{"yes", "yes"},
		{"yeah toasted", "yes"},
		{"not toasted", "no"},
		{"no thanks", "no"},
	}
	for _, tc := range cases {
		order := newOrder()
		it := models.NewItem(models.KindBagel, "Bagel", 1)
		order.AddItem(it)
		order.PendingItemID = it.ID
		order.PendingField = "toasted"

		r := parse(t, p, tc.text, order)
		require.Equal(t, ResultSlotAnswer, r.Kind, "text %q", tc.text)
		assert.Equal(t, "toasted", r.Answer.Field)
		assert.Equal(t, tc.want, r.Answer.Value, "text %q", tc.text)
	}
}

func TestExtrasAnswerCarriesQuantity(t *testing.T) {
	p := newTestPipeline()
	order, _ := orderWithPendingDrink("extras")

	r := parse(t, p, "two vanilla syrups", order)
	require.Equal(t, ResultSlotAnswer, r.Kind)
	assert.Equal(t, "syrup", r.Answer.Field)
	assert.Equal(t, "vanilla", r.Answer.Value)
	assert.Equal(t, 2, r.Answer.Quantity)
}

func TestExtrasDeclineIsConfirmNoChange(t *testing.T) {
	p := newTestPipeline()
	order, _ := orderWithPendingDrink("extras")

	r := parse(t, p, "no that's it", order)
	assert.Equal(t, ResultConfirmNoChange, r.Kind)
}

func TestExtrasRemovalTargetsPendingItem(t *testing.T) {
	p := newTestPipeline()
	order, _ := orderWithPendingDrink("extras")

	r := parse(t, p, "take off the vanilla", order)
	require.Equal(t, ResultModifyItem, r.Kind)
	assert.Equal(t, "Latte", r.Modify.ItemRef)
	assert.Equal(t, FieldRemove, r.Modify.Field)
}

func TestCancelEscapesItemConfiguration(t *testing.T) {
	p := newTestPipeline()
	order, _ := orderWithPendingDrink("size")

	r := parse(t, p, "cancel that", order)
	require.Equal(t, ResultCancelItem, r.Kind)
	assert.True(t, r.Cancel.Last)
}

func TestPendingItemBlocksNewItemsWithoutModel(t *testing.T) {
	p := newTestPipeline()
	order, _ := orderWithPendingDrink("size")

	// Mid-configuration the input must answer the pending slot; a fresh
	// order can't be started here.
	r := parse(t, p, "a plain bagel", order)
	assert.Equal(t, ResultUnclear, r.Kind)
	assert.Len(t, order.ActiveItems(), 1)
}

func TestDisambiguationByNumber(t *testing.T) {
	p := newTestPipeline()
	order := newOrder()
	order.SetAmbiguous([]string{"Orange Juice Large", "Orange Juice Small", "Fresh Squeezed Orange Juice"}, 2)

	r := parse(t, p, "2", order)
	require.Equal(t, ResultNewItem, r.Kind)
	require.Len(t, r.Items, 1)
	assert.Equal(t, "Orange Juice Small", r.Items[0].MenuItem.Name)
	assert.Equal(t, 2, r.Items[0].Quantity)
}

func TestDisambiguationByDistinguishingWord(t *testing.T) {
	p := newTestPipeline()
	order := newOrder()
	order.SetAmbiguous([]string{"Orange Juice Large", "Orange Juice Small", "Fresh Squeezed Orange Juice"}, 1)

	r := parse(t, p, "the large one", order)
	require.Equal(t, ResultNewItem, r.Kind)
	require.Len(t, r.Items, 1)
	assert.Equal(t, "Orange Juice Large", r.Items[0].MenuItem.Name)
}

func TestDisambiguationFallsThroughToOtherIntent(t *testing.T) {
	p := newTestPipeline()
	order := newOrder()
	order.SetAmbiguous([]string{"Orange Juice Large", "Orange Juice Small"}, 1)

	r := parse(t, p, "actually just a coffee", order)
	require.Equal(t, ResultNewItem, r.Kind)
	require.Len(t, r.Items, 1)
	assert.Equal(t, "Coffee", r.Items[0].MenuItem.Name)
}

func TestDeliveryMethodAnswer(t *testing.T) {
	p := newTestPipeline()
	order := newOrder()
	order.PendingField = "delivery_method"

	r := parse(t, p, "i'll pick it up", order)
	require.Equal(t, ResultSlotAnswer, r.Kind)
	assert.Equal(t, "delivery_method", r.Answer.Field)
	assert.Equal(t, "pickup", r.Answer.Value)

	r = parse(t, p, "deliver it please", order)
	require.Equal(t, ResultSlotAnswer, r.Kind)
	assert.Equal(t, "delivery", r.Answer.Value)
}

func TestCustomerNameAnswerKeepsCasing(t *testing.T) {
	p := newTestPipeline()
	order := newOrder()
	order.PendingField = "customer_name"

	r := parse(t, p, "it's Sam Levin", order)
	require.Equal(t, ResultSlotAnswer, r.Kind)
	assert.Equal(t, "customer_name", r.Answer.Field)
	assert.Equal(t, "Sam Levin", r.Answer.Value)
}

func TestCustomerNameSlotDoesNotSwallowOrders(t *testing.T) {
	p := newTestPipeline()
	order := newOrder()
	order.PendingField = "customer_name"

	// An order-shaped reply during the name question is still an order.
	r := parse(t, p, "two plain bagels", order)
	require.Equal(t, ResultNewItem, r.Kind)
	require.Len(t, r.Items, 1)
	assert.Equal(t, 2, r.Items[0].Quantity)
}

func TestOrderConfirmNegativeBeatsAffirmative(t *testing.T) {
	p := newTestPipeline()
	order := newOrder()
	order.PendingField = "order_confirm"

	r := parse(t, p, "no", order)
	require.Equal(t, ResultSlotAnswer, r.Kind)
	assert.Equal(t, "no", r.Answer.Value)

	r = parse(t, p, "looks good", order)
	require.Equal(t, ResultSlotAnswer, r.Kind)
	assert.Equal(t, "yes", r.Answer.Value)
}

func TestNotificationAnswers(t *testing.T) {
	p := newTestPipeline()
	order := newOrder()
	order.PendingField = "notification"

	r := parse(t, p, "text me at 555-123-4567", order)
	require.Equal(t, ResultSlotAnswer, r.Kind)
	assert.Equal(t, "notification_phone", r.Answer.Field)
	assert.Equal(t, "555-123-4567", r.Answer.Value)

	r = parse(t, p, "email sam@example.com", order)
	require.Equal(t, ResultSlotAnswer, r.Kind)
	assert.Equal(t, "notification_email", r.Answer.Field)
	assert.Equal(t, "sam@example.com", r.Answer.Value)
}

func TestLLMFallbackValidatesItems(t *testing.T) {
	client := new(mockClient)
	client.On("ParseOrder", mock.Anything, mock.Anything).Return(&llm.Response{
		Intent: llm.IntentNewItem,
		Items: []llm.ItemGuess{
			{Name: "Latte", Quantity: 2, Modifiers: []llm.ModifierGuess{{Field: "size", Value: "large"}}},
		},
	}, nil)
	p := newMockedPipeline(client)

	r := parse(t, p, "my usual double order", newOrder())
	require.Equal(t, ResultNewItem, r.Kind)
	require.Len(t, r.Items, 1)
	assert.Equal(t, "Latte", r.Items[0].MenuItem.Name)
	assert.Equal(t, 2, r.Items[0].Quantity)
	require.Len(t, r.Items[0].Modifiers, 1)
	assert.Equal(t, "large", r.Items[0].Modifiers[0].Value)
	client.AssertExpectations(t)
}

func TestLLMFallbackRejectsOutOfVocabularyModifier(t *testing.T) {
	client := new(mockClient)
	client.On("ParseOrder", mock.Anything, mock.Anything).Return(&llm.Response{
		Intent: llm.IntentNewItem,
		Items: []llm.ItemGuess{
			{Name: "Latte", Quantity: 1, Modifiers: []llm.ModifierGuess{{Field: "size", Value: "venti"}}},
		},
	}, nil)
	p := newMockedPipeline(client)

	r := parse(t, p, "my venti please", newOrder())
	assert.Equal(t, ResultUnclear, r.Kind)
}

func TestLLMFallbackRejectsNewItemMidConfiguration(t *testing.T) {
	client := new(mockClient)
	client.On("ParseOrder", mock.Anything, mock.Anything).Return(&llm.Response{
		Intent: llm.IntentNewItem,
		Items:  []llm.ItemGuess{{Name: "Coffee", Quantity: 1}},
	}, nil)
	p := newMockedPipeline(client)
	order, _ := orderWithPendingDrink("size")

	r := parse(t, p, "hmm how about a coffee instead", order)
	assert.Equal(t, ResultUnclear, r.Kind)
}

func TestLLMErrorDegradesToUnclear(t *testing.T) {
	client := new(mockClient)
	client.On("ParseOrder", mock.Anything, mock.Anything).Return(nil, errors.New("model timeout"))
	p := newMockedPipeline(client)

	r := parse(t, p, "zzzzz something incomprehensible", newOrder())
	assert.Equal(t, ResultUnclear, r.Kind)
}

func TestLLMQuantityClamp(t *testing.T) {
	client := new(mockClient)
	client.On("ParseOrder", mock.Anything, mock.Anything).Return(&llm.Response{
		Intent: llm.IntentNewItem,
		Items:  []llm.ItemGuess{{Name: "Bagel", Quantity: 5000}},
	}, nil)
	p := newMockedPipeline(client)

	r := parse(t, p, "five thousand of your finest", newOrder())
	assert.Equal(t, ResultUnclear, r.Kind)
}
