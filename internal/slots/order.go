package slots

import (
	"fmt"

	"bagelbot/internal/models"
)

// Definition is one order-level slot: a category of information the dialogue
// needs, with an applicability predicate and a fill-check. The same list is
// walked to decide what to ask next and whether the order is complete.
type Definition struct {
	Category string
	Question func(o *models.Order) string
	Applies  func(o *models.Order) bool
	Filled   func(o *models.Order) bool
}

func always(*models.Order) bool { return true }

// OrderSlots is the fixed-priority slot list. Order matters: the first
// applicable unfilled slot is the next question.
var OrderSlots = []Definition{
	{
		Category: "items",
		Question: func(*models.Order) string {
			return "What can I get started for you?"
		},
		Applies: always,
		// Not merely non-empty: a half-configured cart never looks done.
		Filled: func(o *models.Order) bool {
			return len(o.ActiveItems()) >= 1 && o.AllItemsComplete()
		},
	},
	{
		Category: "delivery_method",
		Question: func(o *models.Order) string {
			if o.Customer.RepeatCustomer && o.Customer.Name != "" {
				return fmt.Sprintf("Good to hear from you again, %s! Pickup again, or delivery?", o.Customer.Name)
			}
			return "Will this be pickup or delivery?"
		},
		Applies: always,
		Filled:  func(o *models.Order) bool { return o.Delivery.Method != "" },
	},
	{
		Category: "delivery_address",
		Question: func(*models.Order) string {
			return "What address should we deliver to?"
		},
		Applies: func(o *models.Order) bool { return o.Delivery.Method == models.OrderTypeDelivery },
		Filled:  func(o *models.Order) bool { return o.Delivery.Address != "" },
	},
	{
		Category: "customer_name",
		Question: func(*models.Order) string {
			return "Can I get a name for the order?"
		},
		Applies: always,
		Filled:  func(o *models.Order) bool { return o.Customer.Name != "" },
	},
	{
		Category: "order_confirm",
		Question: func(*models.Order) string {
			return "Does that look right?"
		},
		Applies: always,
		Filled:  func(o *models.Order) bool { return o.Checkout.Confirmed },
	},
	{
		Category: "payment_method",
		Question: func(*models.Order) string {
			return "How would you like to pay — cash, card, or in store?"
		},
		Applies: always,
		Filled:  func(o *models.Order) bool { return o.Payment.Method != "" },
	},
	{
		Category: "notification",
		Question: func(*models.Order) string {
			return "What's the best phone number or email for your payment link?"
		},
		Applies: func(o *models.Order) bool { return o.Payment.RequiresLink() },
		// Either channel suffices.
		Filled: func(o *models.Order) bool { return o.Customer.Phone != "" || o.Customer.Email != "" },
	},
}

// Next returns the first applicable unfilled slot, or nil when the order
// needs nothing more. Purely a read of the order; no side effects.
func Next(o *models.Order) *Definition {
	for i := range OrderSlots {
		s := &OrderSlots[i]
		if s.Applies(o) && !s.Filled(o) {
			return s
		}
	}
	return nil
}

// IsComplete reports whether every applicable slot is filled
func IsComplete(o *models.Order) bool {
	return Next(o) == nil
}

// Progress reports the fill state of each applicable slot by category
func Progress(o *models.Order) map[string]bool {
	out := make(map[string]bool)
	for i := range OrderSlots {
		s := &OrderSlots[i]
		if s.Applies(o) {
			out[s.Category] = s.Filled(o)
		}
	}
	return out
}
