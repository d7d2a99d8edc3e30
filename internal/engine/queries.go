package engine

import (
	"fmt"
	"sort"
	"strings"

	"bagelbot/internal/models"
	"bagelbot/internal/parser"
)

// handleQuery answers informational questions. Queries never mutate the
// order; after answering, the engine re-asks whatever was pending.
func (e *Engine) handleQuery(q *parser.Query, o *models.Order) string {
	var answer string
	switch q.Kind {
	case parser.QueryStoreHours:
		answer = fmt.Sprintf("We're open %s.", e.store.Hours)

	case parser.QueryStoreLocation:
		answer = fmt.Sprintf("You can find us at %s.", e.store.Address)

	case parser.QueryDeliveryZone:
		answer = e.answerDeliveryZone(q.Subject)

	case parser.QueryPrice:
		answer = e.answerPrice(q.Subject)

	case parser.QueryMenu:
		answer = e.answerMenu(q.Subject)

	case parser.QueryRecommendation:
		answer = fmt.Sprintf("The %s is a favorite around here, and you can't go wrong with an everything bagel and a coffee.",
			e.recommendation())

	case parser.QueryItemDescription:
		answer = e.answerDescription(q.Subject)

	default:
		answer = fallbackReply
	}
	return e.withPendingQuestion(o, answer)
}

func (e *Engine) answerDeliveryZone(subject string) string {
	if subject == "" {
		return "We deliver nearby — what's the address and I'll check?"
	}
	if e.geo == nil {
		return "We do local delivery; give me the address when you order and we'll confirm."
	}
	zip, ok := e.geo.ResolveZip(subject)
	if !ok {
		// Geocoding failures degrade to a deterministic answer.
		return "I couldn't place that address — could you give me the street and zip?"
	}
	if containsString(e.store.DeliveryZips, zip) {
		return fmt.Sprintf("Yes, %s is in our delivery area!", zip)
	}
	return fmt.Sprintf("I'm sorry, %s is outside our delivery area, but pickup is always an option.", zip)
}

func (e *Engine) answerPrice(subject string) string {
	if subject == "" {
		return "Which item would you like a price for?"
	}
	if it := e.lookup.LookupOne(subject); it != nil {
		return fmt.Sprintf("The %s is $%.2f.", it.Name, it.Price)
	}
	if category, ok := e.lookup.InferCategory(subject); ok {
		min := e.pricing.MinPriceForCategory(category)
		if min > 0 {
			return fmt.Sprintf("Our %s options start at $%.2f.", category, min)
		}
	}
	return fmt.Sprintf("I couldn't find %s on the menu — we have %s.", subject, e.lookup.Suggest("", 5))
}

func (e *Engine) answerMenu(subject string) string {
	if subject != "" {
		if category, ok := e.lookup.InferCategory(subject); ok {
			if list := e.lookup.Suggest(category, 8); list != "" {
				return fmt.Sprintf("For %s we have %s.", subject, list)
			}
		}
	}
	types := make([]string, 0, len(e.snap.ItemsByType))
	for t := range e.snap.ItemsByType {
		types = append(types, t)
	}
	sort.Strings(types)
	var parts []string
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%s (%s)", t, e.lookup.Suggest(t, 4)))
	}
	return "Here's what we have: " + strings.Join(parts, "; ") + "."
}

func (e *Engine) answerDescription(subject string) string {
	if subject == "" {
		return "Which item did you want to hear about?"
	}
	it := e.lookup.LookupOne(subject)
	if it == nil {
		return fmt.Sprintf("I couldn't find %s on the menu.", subject)
	}
	if len(it.DefaultIngredients) > 0 {
		return fmt.Sprintf("The %s comes with %s.", it.Name, joinNatural(it.DefaultIngredients))
	}
	if it.Description != "" {
		return fmt.Sprintf("The %s is %s.", it.Name, it.Description)
	}
	return fmt.Sprintf("The %s is $%.2f.", it.Name, it.Price)
}

func (e *Engine) recommendation() string {
	for _, t := range []string{"speed", "omelette", "sandwich"} {
		if items := e.snap.ItemsByType[t]; len(items) > 0 {
			return items[0].Name
		}
	}
	return "coffee"
}
