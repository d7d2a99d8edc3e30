package modifiers

import "bagelbot/internal/models"

// Field declares one customizable attribute of an item kind. The declarations
// below are the single source of truth for what can be added to or removed
// from each item: matching, removal, and pricing all key off them.
type Field struct {
	Name       string
	Display    string
	Aliases    []string
	IsList     bool
	Related    []string
	PriceField string
	PriceGroup string
}

var bagelFields = []Field{
	{
		Name:    "spread",
		Display: "spread",
		Aliases: []string{
			"spread", "cream cheese", "schmear", "shmear", "butter",
			"peanut butter", "scallion cream cheese",
		},
		PriceField: "spread_price",
		PriceGroup: "spread",
	},
	{
		Name:    "protein",
		Display: "protein",
		Aliases: []string{
			"protein", "lox", "smoked salmon", "nova", "bacon", "turkey",
			"sausage", "ham",
		},
		PriceField: "protein_price",
		PriceGroup: "protein",
	},
	{
		Name:    "topping",
		Display: "topping",
		IsList:  true,
		Aliases: []string{"topping", "toppings"},
	},
}

var drinkFields = []Field{
	{
		Name:    "milk",
		Display: "milk",
		Aliases: []string{
			"milk", "oat milk", "almond milk", "soy milk", "whole milk",
			"skim milk", "half and half", "cream",
		},
		PriceField: "milk_price",
		PriceGroup: "milk",
	},
	{
		Name:       "syrup",
		Display:    "syrup",
		IsList:     true,
		Aliases:    []string{"syrup", "syrups", "flavor", "flavor shot"},
		PriceGroup: "syrup",
	},
	{
		Name:    "sweetener",
		Display: "sweetener",
		IsList:  true,
		Aliases: []string{"sweetener", "sugar", "splenda", "stevia", "honey"},
	},
}

var genericFields = []Field{
	{
		Name:    "ingredient",
		Display: "ingredient",
		IsList:  true,
		Aliases: []string{"ingredient", "ingredients"},
	},
}

// FieldsFor returns the modifier field declarations for an item's kind group.
// Speed-menu items customize like generic items: their defaults come from the
// menu's ingredient table.
func FieldsFor(it *models.Item) []Field {
	switch it.Kind {
	case models.KindBagel:
		return bagelFields
	case models.KindSizedBeverage:
		return drinkFields
	case models.KindSpeedMenu, models.KindGeneric:
		return genericFields
	default:
		return nil
	}
}
