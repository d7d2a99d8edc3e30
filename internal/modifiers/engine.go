package modifiers

import (
	"fmt"
	"strings"

	"bagelbot/internal/menu"
	"bagelbot/internal/models"
)

// Match identifies what a free-text fragment referred to on one item: a
// whole field, or one specific entry of a list field.
type Match struct {
	Field Field
	// Entry is the specific list entry (or current scalar value) that
	// matched; empty for a list field means "all entries of this field".
	Entry string
}

// RemovalResult reports the outcome of a removal attempt
type RemovalResult struct {
	Success bool
	Removed string
	Message string
}

// Engine performs generic add/find/remove of per-item modifiers, driven by
// the Field declarations and the menu's pricing and ingredient tables.
type Engine struct {
	pricing  menu.PricingEngine
	defaults *menu.IngredientCache
}

// NewEngine creates a modifier engine
func NewEngine(pricing menu.PricingEngine, defaults *menu.IngredientCache) *Engine {
	return &Engine{pricing: pricing, defaults: defaults}
}

// FindMatch locates the modifier a fragment of text refers to on one item.
// For list fields a specific entry match wins over the whole-field match.
func (e *Engine) FindMatch(it *models.Item, text string) *Match {
	norm := normalizeFragment(text)
	if norm == "" {
		return nil
	}
	for _, f := range FieldsFor(it) {
		if f.IsList {
			entries := e.listEntries(it, f)
			for _, entry := range entries {
				if containsEither(norm, strings.ToLower(entry)) {
					return &Match{Field: f, Entry: entry}
				}
			}
			if len(entries) > 0 && aliasMatch(norm, f.Aliases) {
				return &Match{Field: f}
			}
			continue
		}
		value := scalarValue(it, f.Name)
		if value == "" {
			continue
		}
		if containsEither(norm, strings.ToLower(value)) || aliasMatch(norm, f.Aliases) {
			return &Match{Field: f, Entry: value}
		}
	}
	return nil
}

// FindOnAny searches items last-to-first and returns the first match, so
// "remove the bacon" with two sandwiches in the cart lands on the most
// recently discussed one.
func (e *Engine) FindOnAny(items []*models.Item, text string) (*models.Item, *Match) {
	for i := len(items) - 1; i >= 0; i-- {
		if m := e.FindMatch(items[i], text); m != nil {
			return items[i], m
		}
	}
	return nil, nil
}

// Remove clears the matched modifier. Scalar fields are cleared together
// with their price field and related fields in one step; a nil match mutates
// nothing and reports failure.
func (e *Engine) Remove(it *models.Item, m *Match) RemovalResult {
	if m == nil {
		return RemovalResult{
			Success: false,
			Message: "I don't see that on this item, so there's nothing to take off.",
		}
	}
	if m.Field.IsList {
		return e.removeList(it, m)
	}
	return e.removeScalar(it, m)
}

// RemoveByText is FindMatch followed by Remove, with a not-found explanation
// naming what the user asked for.
func (e *Engine) RemoveByText(it *models.Item, text string) RemovalResult {
	m := e.FindMatch(it, text)
	if m == nil {
		return RemovalResult{
			Success: false,
			Message: fmt.Sprintf("I don't see %s on the %s, so there's nothing to take off.",
				strings.TrimSpace(text), it.Name),
		}
	}
	return e.Remove(it, m)
}

// Apply adds or sets a modifier value on an item, pricing it through the
// pricing engine and folding any charge into the item's unit price.
func (e *Engine) Apply(it *models.Item, field, value string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	switch {
	case it.Kind == models.KindBagel && field == "spread":
		e.clearScalarPrice(it, "spread")
		it.Bagel.Spread = value
		if price, ok := e.pricing.LookupModifierPrice(value, "spread"); ok {
			it.Bagel.SpreadPrice = price
			it.UnitPrice += price
		}
	case it.Kind == models.KindBagel && field == "protein":
		e.clearScalarPrice(it, "protein")
		it.Bagel.Protein = value
		if price, ok := e.pricing.LookupModifierPrice(value, "protein"); ok {
			it.Bagel.ProteinPrice = price
			it.UnitPrice += price
		}
	case it.Kind == models.KindBagel && field == "topping":
		it.Bagel.Toppings = append(it.Bagel.Toppings, value)
	case it.Kind == models.KindSizedBeverage && field == "milk":
		e.clearScalarPrice(it, "milk")
		it.Drink.Milk = value
		if price, ok := e.pricing.LookupModifierPrice(value, "milk"); ok {
			it.Drink.MilkPrice = price
			it.UnitPrice += price
		}
	case it.Kind == models.KindSizedBeverage && field == "syrup":
		price, _ := e.pricing.LookupModifierPrice(value, "syrup")
		it.Drink.Syrups = append(it.Drink.Syrups, models.SyrupEntry{
			Flavor:   value,
			Quantity: qty,
			Price:    price,
		})
		it.UnitPrice += price * float64(qty)
	case it.Kind == models.KindSizedBeverage && field == "sweetener":
		it.Drink.Sweeteners = append(it.Drink.Sweeteners, value)
	default:
		return fmt.Errorf("item kind %s has no modifier field %q", it.Kind, field)
	}
	return nil
}

// RemoveIngredient records a default ingredient as removed on a generic or
// speed-menu item.
func (e *Engine) RemoveIngredient(it *models.Item, ingredient string) RemovalResult {
	removed := e.removedList(it)
	if removed == nil {
		return RemovalResult{Success: false, Message: "That item can't be customized that way."}
	}
	for _, ing := range e.listEntries(it, genericFields[0]) {
		if strings.EqualFold(ing, ingredient) {
			*removed = append(*removed, ing)
			return RemovalResult{
				Success: true,
				Removed: ing,
				Message: fmt.Sprintf("Got it, no %s on the %s.", ing, it.Name),
			}
		}
	}
	return RemovalResult{
		Success: false,
		Message: fmt.Sprintf("The %s doesn't come with %s, so there's nothing to take off.", it.Name, ingredient),
	}
}

func (e *Engine) removeList(it *models.Item, m *Match) RemovalResult {
	switch {
	case it.Kind == models.KindBagel && m.Field.Name == "topping":
		if m.Entry != "" {
			it.Bagel.Toppings = removeEntry(it.Bagel.Toppings, m.Entry)
			return removedResult(m.Entry, it.Name)
		}
		it.Bagel.Toppings = nil
		return removedAllResult("toppings", it.Name)
	case it.Kind == models.KindSizedBeverage && m.Field.Name == "syrup":
		if m.Entry != "" {
			for i, s := range it.Drink.Syrups {
				if strings.EqualFold(s.Flavor, m.Entry) {
					it.UnitPrice -= s.Price * float64(s.Quantity)
					it.Drink.Syrups = append(it.Drink.Syrups[:i], it.Drink.Syrups[i+1:]...)
					return removedResult(m.Entry+" syrup", it.Name)
				}
			}
			return RemovalResult{Success: false, Message: fmt.Sprintf("I don't see %s syrup on the %s.", m.Entry, it.Name)}
		}
		// No flavor named: clear every syrup on the drink.
		for _, s := range it.Drink.Syrups {
			it.UnitPrice -= s.Price * float64(s.Quantity)
		}
		it.Drink.Syrups = nil
		return removedAllResult("syrups", it.Name)
	case it.Kind == models.KindSizedBeverage && m.Field.Name == "sweetener":
		if m.Entry != "" {
			it.Drink.Sweeteners = removeEntry(it.Drink.Sweeteners, m.Entry)
			return removedResult(m.Entry, it.Name)
		}
		it.Drink.Sweeteners = nil
		return removedAllResult("sweeteners", it.Name)
	case m.Field.Name == "ingredient":
		if m.Entry != "" {
			return e.RemoveIngredient(it, m.Entry)
		}
		return RemovalResult{Success: false, Message: "Which ingredient should I leave off?"}
	}
	return RemovalResult{Success: false, Message: "I couldn't remove that."}
}

func (e *Engine) removeScalar(it *models.Item, m *Match) RemovalResult {
	value := scalarValue(it, m.Field.Name)
	if value == "" {
		return RemovalResult{
			Success: false,
			Message: fmt.Sprintf("There's no %s on the %s to remove.", m.Field.Display, it.Name),
		}
	}
	// The value, its price field, and any related fields clear together so a
	// stale upcharge can never outlive the modifier it belonged to.
	e.clearScalarPrice(it, m.Field.Name)
	setScalar(it, m.Field.Name, "")
	for _, rel := range m.Field.Related {
		e.clearScalarPrice(it, rel)
		setScalar(it, rel, "")
	}
	return removedResult(value, it.Name)
}

func (e *Engine) clearScalarPrice(it *models.Item, fieldName string) {
	switch {
	case it.Kind == models.KindBagel && fieldName == "spread":
		it.UnitPrice -= it.Bagel.SpreadPrice
		it.Bagel.SpreadPrice = 0
	case it.Kind == models.KindBagel && fieldName == "protein":
		it.UnitPrice -= it.Bagel.ProteinPrice
		it.Bagel.ProteinPrice = 0
	case it.Kind == models.KindSizedBeverage && fieldName == "milk":
		it.UnitPrice -= it.Drink.MilkPrice
		it.Drink.MilkPrice = 0
	}
}

// listEntries returns the current removable entries of a list field. For
// ingredient fields these are the menu defaults minus what was already
// removed.
func (e *Engine) listEntries(it *models.Item, f Field) []string {
	switch {
	case it.Kind == models.KindBagel && f.Name == "topping":
		return it.Bagel.Toppings
	case it.Kind == models.KindSizedBeverage && f.Name == "syrup":
		flavors := make([]string, len(it.Drink.Syrups))
		for i, s := range it.Drink.Syrups {
			flavors[i] = s.Flavor
		}
		return flavors
	case it.Kind == models.KindSizedBeverage && f.Name == "sweetener":
		return it.Drink.Sweeteners
	case f.Name == "ingredient":
		removed := e.removedList(it)
		if removed == nil {
			return nil
		}
		var out []string
		for _, ing := range e.defaults.Defaults(it.Name) {
			if !containsFold(*removed, ing) {
				out = append(out, ing)
			}
		}
		return out
	}
	return nil
}

func (e *Engine) removedList(it *models.Item) *[]string {
	switch it.Kind {
	case models.KindSpeedMenu:
		return &it.Speed.RemovedIngredients
	case models.KindGeneric:
		return &it.Generic.RemovedIngredients
	}
	return nil
}

func scalarValue(it *models.Item, fieldName string) string {
	switch {
	case it.Kind == models.KindBagel && fieldName == "spread":
		return it.Bagel.Spread
	case it.Kind == models.KindBagel && fieldName == "protein":
		return it.Bagel.Protein
	case it.Kind == models.KindSizedBeverage && fieldName == "milk":
		return it.Drink.Milk
	}
	return ""
}

func setScalar(it *models.Item, fieldName, value string) {
	switch {
	case it.Kind == models.KindBagel && fieldName == "spread":
		it.Bagel.Spread = value
	case it.Kind == models.KindBagel && fieldName == "protein":
		it.Bagel.Protein = value
	case it.Kind == models.KindSizedBeverage && fieldName == "milk":
		it.Drink.Milk = value
	}
}

func removedResult(what, itemName string) RemovalResult {
	return RemovalResult{
		Success: true,
		Removed: what,
		Message: fmt.Sprintf("Okay, took the %s off the %s.", what, itemName),
	}
}

func removedAllResult(what, itemName string) RemovalResult {
	return RemovalResult{
		Success: true,
		Removed: what,
		Message: fmt.Sprintf("Okay, removed all the %s from the %s.", what, itemName),
	}
}

func normalizeFragment(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "the ")
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func aliasMatch(text string, aliases []string) bool {
	for _, a := range aliases {
		if containsEither(text, a) {
			return true
		}
	}
	return false
}

func removeEntry(list []string, entry string) []string {
	for i, v := range list {
		if strings.EqualFold(v, entry) {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func containsFold(list []string, v string) bool {
	for _, x := range list {
		if strings.EqualFold(x, v) {
			return true
		}
	}
	return false
}
