package menu

import "strings"

// PricingEngine resolves prices for items and modifiers. The engine treats it
// as a black box so stores can plug in their own price lists.
type PricingEngine interface {
	LookupBagelPrice(bagelType string) float64
	LookupModifierPrice(slug, group string) (float64, bool)
	MinPriceForCategory(itemType string) float64
}

// TablePricing is a PricingEngine backed by in-memory price tables plus the
// snapshot's per-item prices.
type TablePricing struct {
	snap           *Snapshot
	BagelBase      float64
	BagelUpcharges map[string]float64
	ModifierPrices map[string]map[string]float64
}

// NewTablePricing creates the default pricing used by the demo store
func NewTablePricing(snap *Snapshot) *TablePricing {
	return &TablePricing{
		snap:      snap,
		BagelBase: 1.75,
		BagelUpcharges: map[string]float64{
			"gluten free": 1.00,
			"rainbow":     0.50,
		},
		ModifierPrices: map[string]map[string]float64{
			"spread": {
				"cream cheese":          1.50,
				"scallion cream cheese": 2.00,
				"butter":                0.75,
				"peanut butter":         1.25,
			},
			"protein": {
				"lox":    6.00,
				"bacon":  2.50,
				"turkey": 3.00,
			},
			"milk": {
				"oat milk":    0.75,
				"almond milk": 0.75,
				"soy milk":    0.50,
			},
			"syrup": {
				"vanilla":  0.50,
				"caramel":  0.50,
				"hazelnut": 0.50,
			},
		},
	}
}

// LookupBagelPrice returns the unit price for a bagel of the given type
func (p *TablePricing) LookupBagelPrice(bagelType string) float64 {
	price := p.BagelBase
	if up, ok := p.BagelUpcharges[strings.ToLower(bagelType)]; ok {
		price += up
	}
	return price
}

// LookupModifierPrice returns the price of a modifier slug within its group,
// or false when the modifier carries no charge.
func (p *TablePricing) LookupModifierPrice(slug, group string) (float64, bool) {
	groupPrices, ok := p.ModifierPrices[group]
	if !ok {
		return 0, false
	}
	price, ok := groupPrices[strings.ToLower(slug)]
	return price, ok
}

// MinPriceForCategory returns the cheapest price among items of a type, used
// for "how much is a coffee" style answers.
func (p *TablePricing) MinPriceForCategory(itemType string) float64 {
	items := p.snap.ItemsByType[itemType]
	if len(items) == 0 {
		return 0
	}
	min := items[0].Price
	for _, it := range items[1:] {
		if it.Price < min {
			min = it.Price
		}
	}
	return min
}
