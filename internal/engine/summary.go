package engine

import (
	"fmt"
	"strings"

	"bagelbot/internal/models"
)

// BuildSummary renders the checkout review of an order. It is a pure
// function of the Order: identical items consolidate under one line with a
// quantity multiplier, and calling it twice on an unmodified order yields
// byte-identical strings.
func BuildSummary(o *models.Order) string {
	type line struct {
		desc  string
		qty   int
		total float64
	}

	var lines []line
	index := make(map[string]int)
	for _, it := range o.ActiveItems() {
		desc := describeItem(it)
		key := fmt.Sprintf("%s|%.2f", desc, it.UnitPrice)
		if i, ok := index[key]; ok {
			lines[i].qty += it.Quantity
			lines[i].total += it.LineTotal()
			continue
		}
		index[key] = len(lines)
		lines = append(lines, line{desc: desc, qty: it.Quantity, total: it.LineTotal()})
	}

	var parts []string
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%d x %s — $%.2f", l.qty, l.desc, l.total))
	}
	return fmt.Sprintf("Here's what I have: %s. Order total: $%.2f.",
		strings.Join(parts, "; "), o.Total())
}

// describeItem renders one item's configuration in a stable order
func describeItem(it *models.Item) string {
	var details []string
	switch it.Kind {
	case models.KindBagel:
		b := it.Bagel
		name := it.Name
		if b.BagelType != "" {
			name = titleCase(b.BagelType) + " " + it.Name
		}
		details = appendToasted(details, b.Toasted)
		if b.Spread != "" {
			details = append(details, b.Spread)
		}
		if b.Protein != "" {
			details = append(details, b.Protein)
		}
		details = append(details, b.Toppings...)
		return withDetails(name, details)

	case models.KindSizedBeverage:
		d := it.Drink
		if d.Size != "" {
			details = append(details, d.Size)
		}
		if d.Temperature != "" {
			details = append(details, d.Temperature)
		}
		if d.Milk != "" {
			details = append(details, d.Milk)
		}
		for _, s := range d.Syrups {
			if s.Quantity > 1 {
				details = append(details, fmt.Sprintf("%d %s syrup", s.Quantity, s.Flavor))
			} else {
				details = append(details, s.Flavor+" syrup")
			}
		}
		details = append(details, d.Sweeteners...)
		return withDetails(it.Name, details)

	case models.KindSpeedMenu:
		details = appendToasted(details, it.Speed.Toasted)
		for _, ing := range it.Speed.RemovedIngredients {
			details = append(details, "no "+ing)
		}
		return withDetails(it.Name, details)

	case models.KindGeneric:
		g := it.Generic
		if side := g.AttributeValues["side_choice"]; side != "" {
			if bagel := g.AttributeValues["bagel_choice"]; bagel != "" && side == "bagel" {
				details = append(details, bagel+" bagel side")
			} else {
				details = append(details, side+" side")
			}
		}
		for _, ing := range g.RemovedIngredients {
			details = append(details, "no "+ing)
		}
		return withDetails(it.Name, details)
	}
	return it.Name
}

func appendToasted(details []string, toasted *bool) []string {
	if toasted == nil {
		return details
	}
	if *toasted {
		return append(details, "toasted")
	}
	return append(details, "not toasted")
}

func withDetails(name string, details []string) string {
	if len(details) == 0 {
		return name
	}
	return name + " (" + strings.Join(details, ", ") + ")"
}
