package models

import (
	"fmt"

	"github.com/google/uuid"
)

// ItemKind represents the variant of an order item
type ItemKind string

const (
	KindBagel         ItemKind = "bagel"
	KindSizedBeverage ItemKind = "sized_beverage"
	KindSpeedMenu     ItemKind = "speed_menu"
	KindGeneric       ItemKind = "generic"
)

// Item represents a single line in the order. It is a tagged union over the
// item kinds: exactly one of the variant field structs is non-nil, selected
// by Kind.
type Item struct {
	ID        string     `json:"id"`
	Kind      ItemKind   `json:"kind"`
	Name      string     `json:"name"`
	Status    ItemStatus `json:"status"`
	Quantity  int        `json:"quantity"`
	UnitPrice float64    `json:"unit_price"`

	Bagel   *BagelFields   `json:"bagel,omitempty"`
	Drink   *DrinkFields   `json:"drink,omitempty"`
	Speed   *SpeedFields   `json:"speed,omitempty"`
	Generic *GenericFields `json:"generic,omitempty"`
}

// BagelFields holds the configuration of a bagel item
type BagelFields struct {
	BagelType    string   `json:"bagel_type"`
	TypeUpcharge float64  `json:"type_upcharge"`
	Toasted      *bool    `json:"toasted,omitempty"`
	Spread       string   `json:"spread"`
	SpreadPrice  float64  `json:"spread_price"`
	Toppings     []string `json:"toppings"`
	Protein      string   `json:"protein"`
	ProteinPrice float64  `json:"protein_price"`
}

// SyrupEntry is one flavored-syrup addition on a sized beverage
type SyrupEntry struct {
	Flavor   string  `json:"flavor"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// DrinkFields holds the configuration of a sized beverage (coffee, tea,
// espresso drinks and the like)
type DrinkFields struct {
	Size        string       `json:"size"`
	Temperature string       `json:"temperature"`
	Milk        string       `json:"milk"`
	MilkPrice   float64      `json:"milk_price"`
	Syrups      []SyrupEntry `json:"syrups"`
	Sweeteners  []string     `json:"sweeteners"`
}

// SpeedFields holds the configuration of a speed-menu item, a pre-configured
// signature sandwich that only needs a toasted yes/no. Customization is
// recorded as removed default ingredients, same as generic items.
type SpeedFields struct {
	Toasted            *bool    `json:"toasted,omitempty"`
	RemovedIngredients []string `json:"removed_ingredients"`
}

// GenericFields holds the configuration of an attribute-schema-driven item
// such as an omelette or a deli sandwich. Defaults come from the menu's
// ingredient table; customization is recorded as removed ingredients.
type GenericFields struct {
	AttributeValues    map[string]string `json:"attribute_values"`
	RemovedIngredients []string          `json:"removed_ingredients"`
}

// NewItem creates a pending item of the given kind with its variant struct
// initialized.
func NewItem(kind ItemKind, name string, quantity int) *Item {
	it := &Item{
		ID:       uuid.NewString(),
		Kind:     kind,
		Name:     name,
		Status:   StatusPending,
		Quantity: quantity,
	}
	switch kind {
	case KindBagel:
		it.Bagel = &BagelFields{}
	case KindSizedBeverage:
		it.Drink = &DrinkFields{}
	case KindSpeedMenu:
		it.Speed = &SpeedFields{}
	case KindGeneric:
		it.Generic = &GenericFields{AttributeValues: make(map[string]string)}
	}
	return it
}

// Advance moves the item to a new status, enforcing the lifecycle rules.
func (it *Item) Advance(to ItemStatus) error {
	if it.Status == to {
		return nil
	}
	if !CanTransition(it.Status, to) {
		return fmt.Errorf("item %s: illegal status transition %s -> %s", it.ID, it.Status, to)
	}
	it.Status = to
	return nil
}

// Active reports whether the item still counts toward the order
func (it *Item) Active() bool {
	return it.Status != StatusSkipped
}

// LineTotal returns the extended price for the line
func (it *Item) LineTotal() float64 {
	return it.UnitPrice * float64(it.Quantity)
}
