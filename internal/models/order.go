package models

import (
	"fmt"

	"github.com/google/uuid"
)

// OrderType represents how the customer receives the order
type OrderType string

const (
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDelivery OrderType = "delivery"
)

// DeliveryInfo captures the delivery-method sub-task
type DeliveryInfo struct {
	Method  OrderType `json:"method"`
	Address string    `json:"address"`
	Zip     string    `json:"zip"`
}

// CustomerInfo captures who the order is for
type CustomerInfo struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	RepeatCustomer bool   `json:"repeat_customer"`
}

// CheckoutInfo captures the review/confirmation sub-task
type CheckoutInfo struct {
	SummaryShown bool `json:"summary_shown"`
	Confirmed    bool `json:"confirmed"`
}

// PaymentInfo captures the payment sub-task. Methods that pay by link
// (text or email) additionally need a notification channel.
type PaymentInfo struct {
	Method string `json:"method"`
}

// RequiresLink reports whether the chosen payment method is settled by a
// payment link sent to the customer.
func (p PaymentInfo) RequiresLink() bool {
	return p.Method == "card" || p.Method == "link"
}

// Order is the root aggregate for one conversation session. The engine is
// stateless across turns: the full Order value is passed in and returned on
// every call, and the dialogue-scoped fields below carry the conversation
// state between turns.
type Order struct {
	ID       string       `json:"id"`
	Items    []Item       `json:"items"`
	Delivery DeliveryInfo `json:"delivery"`
	Customer CustomerInfo `json:"customer"`
	Checkout CheckoutInfo `json:"checkout"`
	Payment  PaymentInfo  `json:"payment"`

	// Dialogue-scoped state.
	PendingField     string   `json:"pending_field"`
	PendingItemID    string   `json:"pending_item_id"`
	ConfigQueue      []string `json:"config_queue"`
	AmbiguousOptions []string `json:"ambiguous_options"`
	AmbiguousQty     int      `json:"ambiguous_qty"`
	Greeted          bool     `json:"greeted"`
}

// NewOrder creates an empty order for a new conversation session
func NewOrder() Order {
	return Order{ID: uuid.NewString()}
}

// AddItem appends an item to the order and returns its id
func (o *Order) AddItem(it *Item) string {
	o.Items = append(o.Items, *it)
	return it.ID
}

// ItemByID returns a pointer into the order's item slice, or nil
func (o *Order) ItemByID(id string) *Item {
	for i := range o.Items {
		if o.Items[i].ID == id {
			return &o.Items[i]
		}
	}
	return nil
}

// ActiveItems returns the items still counting toward the order, excluding
// anything marked skipped.
func (o *Order) ActiveItems() []*Item {
	var out []*Item
	for i := range o.Items {
		if o.Items[i].Active() {
			out = append(out, &o.Items[i])
		}
	}
	return out
}

// MarkSkipped cancels an item. Items are never physically deleted; skipping
// preserves order history so an undo can restore state deterministically.
func (o *Order) MarkSkipped(id string) error {
	it := o.ItemByID(id)
	if it == nil {
		return fmt.Errorf("no item with id %s", id)
	}
	if err := it.Advance(StatusSkipped); err != nil {
		return err
	}
	if o.PendingItemID == id {
		o.PendingItemID = ""
		o.PendingField = ""
	}
	o.DequeueItem(id)
	return nil
}

// AllItemsComplete reports whether every active item finished configuration
func (o *Order) AllItemsComplete() bool {
	for _, it := range o.ActiveItems() {
		if it.Status != StatusComplete {
			return false
		}
	}
	return true
}

// LastActiveItem returns the most recently added active item, or nil
func (o *Order) LastActiveItem() *Item {
	for i := len(o.Items) - 1; i >= 0; i-- {
		if o.Items[i].Active() {
			return &o.Items[i]
		}
	}
	return nil
}

// EnqueueItem adds an item id to the configuration queue
func (o *Order) EnqueueItem(id string) {
	o.ConfigQueue = append(o.ConfigQueue, id)
}

// DequeueItem removes an item id from the configuration queue if present
func (o *Order) DequeueItem(id string) {
	for i, qid := range o.ConfigQueue {
		if qid == id {
			o.ConfigQueue = append(o.ConfigQueue[:i], o.ConfigQueue[i+1:]...)
			return
		}
	}
}

// NextQueued pops the next item awaiting configuration, skipping ids that no
// longer resolve to an active item.
func (o *Order) NextQueued() *Item {
	for len(o.ConfigQueue) > 0 {
		id := o.ConfigQueue[0]
		o.ConfigQueue = o.ConfigQueue[1:]
		if it := o.ItemByID(id); it != nil && it.Active() {
			return it
		}
	}
	return nil
}

// SetAmbiguous buffers menu candidates awaiting the user's choice
func (o *Order) SetAmbiguous(options []string, qty int) {
	o.AmbiguousOptions = append([]string(nil), options...)
	o.AmbiguousQty = qty
}

// ClearAmbiguous drops any buffered disambiguation candidates
func (o *Order) ClearAmbiguous() {
	o.AmbiguousOptions = nil
	o.AmbiguousQty = 0
}

// Total returns the grand total over active items
func (o *Order) Total() float64 {
	var sum float64
	for _, it := range o.ActiveItems() {
		sum += it.LineTotal()
	}
	return sum
}
