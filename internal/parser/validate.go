package parser

import (
	"context"
	"strings"

	"bagelbot/internal/llm"
	"bagelbot/internal/menu"
	"bagelbot/internal/models"
)

const maxItemQuantity = 144

// llmParse invokes the structured parser and validates everything it says
// against the engine's own option lists. Any error or out-of-range field
// degrades to unclear: the engine asks again instead of guessing.
func (p *Pipeline) llmParse(ctx context.Context, text string, order *models.Order) Result {
	if p.client == nil {
		return Result{Kind: ResultUnclear}
	}

	var pendingItem string
	if it := order.ItemByID(order.PendingItemID); it != nil {
		pendingItem = it.Name
	}
	names := make([]string, 0)
	for _, it := range p.snap.AllItems() {
		names = append(names, it.Name)
	}

	resp, err := p.client.ParseOrder(ctx, llm.Request{
		Text:         text,
		MenuNames:    names,
		PendingField: order.PendingField,
		PendingItem:  pendingItem,
		Timeout:      p.llmTimeout,
	})
	if err != nil {
		if p.recorder != nil {
			p.recorder.RecordLLMFailure()
		}
		return Result{Kind: ResultUnclear, ViaLLM: true}
	}
	r := p.validateResponse(resp, order)
	r.ViaLLM = true
	return r
}

func (p *Pipeline) validateResponse(resp *llm.Response, order *models.Order) Result {
	switch resp.Intent {
	case llm.IntentGreeting:
		return Result{Kind: ResultGreeting}

	case llm.IntentConfirm:
		return Result{Kind: ResultConfirmNoChange}

	case llm.IntentNewItem:
		// Mid-configuration no new item may be created, whatever the model
		// thinks it saw.
		if order.PendingItemID != "" {
			return Result{Kind: ResultUnclear}
		}
		items, ok := p.validateItems(resp.Items)
		if !ok {
			return Result{Kind: ResultUnclear}
		}
		kind := ResultNewItem
		if len(items) > 1 {
			kind = ResultMultiItem
		}
		return Result{Kind: kind, Items: items}

	case llm.IntentModify:
		if resp.Field != FieldRemove && !validModifierField(resp.Field, resp.Value) {
			return Result{Kind: ResultUnclear}
		}
		return Result{Kind: ResultModifyItem, Modify: &ModifyItem{
			ItemRef: resp.ItemRef,
			Field:   resp.Field,
			Value:   strings.ToLower(strings.TrimSpace(resp.Value)),
		}}

	case llm.IntentCancel:
		if resp.ItemRef == "" || strings.EqualFold(resp.ItemRef, "last") {
			return Result{Kind: ResultCancelItem, Cancel: &CancelItem{Last: true}}
		}
		for _, it := range order.ActiveItems() {
			if strings.EqualFold(it.Name, resp.ItemRef) {
				return Result{Kind: ResultCancelItem, Cancel: &CancelItem{ItemRef: it.Name}}
			}
		}
		return Result{Kind: ResultUnclear}

	case llm.IntentQuery:
		kind := QueryKind(resp.QueryKind)
		switch kind {
		case QueryMenu, QueryPrice, QueryStoreHours, QueryStoreLocation,
			QueryDeliveryZone, QueryRecommendation, QueryItemDescription:
			return Result{Kind: ResultQuery, Query: &Query{Kind: kind, Subject: resp.Value}}
		}
		return Result{Kind: ResultUnclear}

	case llm.IntentSlotAnswer:
		return p.validateSlotAnswer(resp, order)
	}

	return Result{Kind: ResultUnclear}
}

func (p *Pipeline) validateItems(guesses []llm.ItemGuess) ([]NewItem, bool) {
	if len(guesses) == 0 {
		return nil, false
	}
	var items []NewItem
	for _, g := range guesses {
		menuItem := p.lookup.Exact(g.Name)
		if menuItem == nil {
			menuItem = p.lookup.LookupOne(g.Name)
		}
		if menuItem == nil {
			return nil, false
		}
		qty := g.Quantity
		if qty < 1 {
			qty = 1
		}
		if qty > maxItemQuantity {
			return nil, false
		}
		var mods []InlineModifier
		for _, m := range g.Modifiers {
			field := strings.ToLower(strings.TrimSpace(m.Field))
			value := strings.ToLower(strings.TrimSpace(m.Value))
			if !validModifierField(field, value) {
				return nil, false
			}
			mqty := m.Quantity
			if mqty < 1 {
				mqty = 1
			}
			mods = append(mods, InlineModifier{Field: field, Value: value, Quantity: mqty})
		}
		items = append(items, NewItem{
			MenuItem:  *menuItem,
			Kind:      kindFor(menuItem.Type),
			Quantity:  qty,
			Modifiers: mods,
		})
	}
	return items, true
}

func (p *Pipeline) validateSlotAnswer(resp *llm.Response, order *models.Order) Result {
	field := strings.ToLower(strings.TrimSpace(resp.Field))
	value := strings.ToLower(strings.TrimSpace(resp.Value))

	// Free-form order-level slots keep the model's casing.
	switch field {
	case "delivery_address", "customer_name":
		if strings.TrimSpace(resp.Value) == "" {
			return Result{Kind: ResultUnclear}
		}
		return Result{Kind: ResultSlotAnswer, Answer: &SlotAnswer{Field: field, Value: strings.TrimSpace(resp.Value), Quantity: 1}}
	case "notification_phone", "notification_email":
		return Result{Kind: ResultSlotAnswer, Answer: &SlotAnswer{Field: field, Value: strings.TrimSpace(resp.Value), Quantity: 1}}
	}

	if !validModifierField(field, value) {
		return Result{Kind: ResultUnclear}
	}
	qty := 1
	for _, g := range resp.Items {
		for _, m := range g.Modifiers {
			if strings.EqualFold(m.Field, field) && m.Quantity > 1 {
				qty = m.Quantity
			}
		}
	}
	return Result{Kind: ResultSlotAnswer, Answer: &SlotAnswer{Field: field, Value: value, Quantity: qty}}
}

// validModifierField checks a field/value pair against the declared option
// sets, covering both modifier fields and the configuration slots.
func validModifierField(field, value string) bool {
	switch field {
	case "bagel_type", "bagel_choice":
		for _, bt := range menu.BagelTypes {
			if bt == value {
				return true
			}
		}
		return false
	case "toasted":
		return value == "yes" || value == "no"
	case "side_choice":
		return value != ""
	case "delivery_method":
		return value == string(models.OrderTypePickup) || value == string(models.OrderTypeDelivery)
	case "order_confirm":
		return value == "yes" || value == "no"
	case "payment_method":
		return value == "cash" || value == "card" || value == "link" || value == "in_store"
	}
	return validOption(field, value)
}
