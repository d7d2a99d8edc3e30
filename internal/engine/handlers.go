package engine

import (
	"fmt"
	"strings"

	"bagelbot/internal/models"
	"bagelbot/internal/parser"
	"bagelbot/internal/slots"
)

func (e *Engine) handleGreeting(o *models.Order) string {
	o.Greeted = true
	welcome := "Hi there, welcome to " + e.store.Name + "!"
	if len(o.ActiveItems()) == 0 {
		return welcome + " What can I get started for you?"
	}
	return e.withPendingQuestion(o, welcome)
}

// handleNewItems adds parsed items to the order and either starts configuring
// the first incomplete one or asks for more.
func (e *Engine) handleNewItems(items []parser.NewItem, o *models.Order) string {
	o.ClearAmbiguous()
	added, notes := e.addItems(items, o)
	if len(added) == 0 {
		msg := strings.Join(notes, " ")
		if msg == "" {
			msg = fallbackReply
		}
		return e.withPendingQuestion(o, msg)
	}

	reply := "Got it — " + joinNatural(added) + "."
	if len(notes) > 0 {
		reply += " " + strings.Join(notes, " ")
	}
	if q := e.continueConfiguration(o); q != "" {
		return reply + " " + q
	}
	return reply + " Anything else today?"
}

// addItems builds and attaches order items, returning descriptions of what
// was added plus any 86'd-availability notes.
func (e *Engine) addItems(items []parser.NewItem, o *models.Order) (added, notes []string) {
	for _, ni := range items {
		if e.snap.ItemUnavailable(ni.MenuItem.Name) {
			notes = append(notes, fmt.Sprintf("Sorry, we're out of %s today.", ni.MenuItem.Name))
			continue
		}
		it, itemNotes := e.buildItem(ni)
		notes = append(notes, itemNotes...)
		slots.SyncStatus(it, e.snap)
		o.AddItem(it)
		if it.Status != models.StatusComplete {
			o.EnqueueItem(it.ID)
		}
		added = append(added, describeQuantity(it.Quantity, it.Name))
	}
	return added, notes
}

func (e *Engine) buildItem(ni parser.NewItem) (*models.Item, []string) {
	it := models.NewItem(ni.Kind, ni.MenuItem.Name, ni.Quantity)
	it.UnitPrice = ni.MenuItem.Price
	var notes []string
	for _, m := range ni.Modifiers {
		if note := e.applyInline(it, m.Field, m.Value, m.Quantity); note != "" {
			notes = append(notes, note)
		}
	}
	return it, notes
}

// applyInline applies one modifier to an item, whether it arrived inline at
// creation or as a slot answer. Returns a user-facing note on refusal.
func (e *Engine) applyInline(it *models.Item, field, value string, qty int) string {
	switch field {
	case "bagel_type":
		e.setBagelType(it, value)
	case "toasted":
		toasted := value == "yes"
		switch it.Kind {
		case models.KindBagel:
			it.Bagel.Toasted = &toasted
		case models.KindSpeedMenu:
			it.Speed.Toasted = &toasted
		}
	case "size":
		if it.Kind == models.KindSizedBeverage {
			it.Drink.Size = value
		}
	case "temperature":
		if it.Kind == models.KindSizedBeverage {
			it.Drink.Temperature = value
		}
	case "side_choice", "bagel_choice":
		if it.Kind == models.KindGeneric {
			it.Generic.AttributeValues[field] = value
		}
	default:
		if e.snap.IngredientUnavailable(value) {
			return fmt.Sprintf("Sorry, we're out of %s today.", value)
		}
		if err := e.mods.Apply(it, field, value, qty); err != nil {
			return fmt.Sprintf("I couldn't add %s to the %s.", value, it.Name)
		}
	}
	return ""
}

// setBagelType changes a bagel's variety, repricing the line so the old
// type's upcharge never lingers.
func (e *Engine) setBagelType(it *models.Item, bagelType string) {
	if it.Kind != models.KindBagel {
		return
	}
	base := e.pricing.LookupBagelPrice("")
	oldPrice := base
	if it.Bagel.BagelType != "" {
		oldPrice = e.pricing.LookupBagelPrice(it.Bagel.BagelType)
	}
	newPrice := e.pricing.LookupBagelPrice(bagelType)
	it.Bagel.BagelType = bagelType
	it.Bagel.TypeUpcharge = newPrice - base
	it.UnitPrice += newPrice - oldPrice
}

// continueConfiguration advances the item-configuration conversation: keep
// asking about the pending item, or pull the next queued one. Empty string
// means nothing is left to configure.
func (e *Engine) continueConfiguration(o *models.Order) string {
	if o.PendingItemID != "" {
		it := o.ItemByID(o.PendingItemID)
		if it != nil && it.Active() {
			if slot := slots.NextForItem(it, e.snap); slot != nil {
				o.PendingField = slot.Field
				return slot.Question
			}
			if o.PendingField == "extras" {
				return fmt.Sprintf("Anything else for the %s?", it.Name)
			}
		}
		o.PendingItemID = ""
		o.PendingField = ""
	}

	for {
		next := o.NextQueued()
		if next == nil {
			o.PendingItemID = ""
			o.PendingField = ""
			return ""
		}
		slot := slots.NextForItem(next, e.snap)
		if slot == nil {
			slots.SyncStatus(next, e.snap)
			continue
		}
		_ = next.Advance(models.StatusInProgress)
		o.PendingItemID = next.ID
		o.PendingField = slot.Field
		if strings.Contains(strings.ToLower(slot.Question), strings.ToLower(next.Name)) {
			return slot.Question
		}
		return fmt.Sprintf("For the %s: %s", strings.ToLower(next.Name), lowerFirst(slot.Question))
	}
}

// handleAmbiguous buffers menu candidates and asks the user to choose rather
// than guessing between them.
func (e *Engine) handleAmbiguous(r parser.Result, o *models.Order) string {
	var reply string
	if added, _ := e.addItems(r.Items, o); len(added) > 0 {
		reply = "Got it — " + joinNatural(added) + ". "
	}

	names := make([]string, len(r.Ambiguous))
	var choices []string
	for i, it := range r.Ambiguous {
		names[i] = it.Name
		choices = append(choices, fmt.Sprintf("%d) %s", i+1, it.Name))
	}
	o.SetAmbiguous(names, r.AmbiguousQty)
	return reply + "We have a few options: " + strings.Join(choices, ", ") +
		". Which one would you like?"
}

func (e *Engine) handleModify(m *parser.ModifyItem, o *models.Order) string {
	active := o.ActiveItems()
	if len(active) == 0 {
		return "There's nothing on your order yet. What can I get you?"
	}

	if m.Field == parser.FieldRemove {
		if m.ItemRef != "" {
			it := findActiveByName(o, m.ItemRef)
			if it == nil {
				return fmt.Sprintf("I don't see a %s on your order.", m.ItemRef)
			}
			res := e.mods.RemoveByText(it, m.Value)
			return e.withPendingQuestion(o, res.Message)
		}
		it, match := e.mods.FindOnAny(active, m.Value)
		if it == nil {
			return e.withPendingQuestion(o,
				fmt.Sprintf("I don't see %s on anything in your order, so there's nothing to take off.", m.Value))
		}
		res := e.mods.Remove(it, match)
		return e.withPendingQuestion(o, res.Message)
	}

	it := findActiveByName(o, m.ItemRef)
	if it == nil {
		it = o.LastActiveItem()
	}
	if note := e.applyInline(it, m.Field, m.Value, 1); note != "" {
		return e.withPendingQuestion(o, note)
	}
	slots.SyncStatus(it, e.snap)
	return e.withPendingQuestion(o, fmt.Sprintf("Done — updated the %s.", it.Name))
}

func (e *Engine) handleCancel(c *parser.CancelItem, o *models.Order) string {
	var it *models.Item
	if c.Last || c.ItemRef == "" {
		it = o.LastActiveItem()
	} else {
		it = findActiveByName(o, c.ItemRef)
	}
	if it == nil {
		return "I don't see that on your order, so there's nothing to cancel."
	}
	if err := o.MarkSkipped(it.ID); err != nil {
		return e.withPendingQuestion(o, "I couldn't cancel that.")
	}
	reply := fmt.Sprintf("No problem, I took the %s off your order.", it.Name)
	if q := e.continueConfiguration(o); q != "" {
		return reply + " " + q
	}
	if len(o.ActiveItems()) == 0 {
		return reply + " What else can I get you?"
	}
	return reply + " Anything else?"
}

// handleConfirmNoChange is the "no, nothing else" path. With an item mid-
// configuration it completes that item without ever duplicating it; with a
// finished cart it moves the order into checkout.
func (e *Engine) handleConfirmNoChange(o *models.Order) string {
	o.ClearAmbiguous()

	if o.PendingItemID != "" {
		it := o.ItemByID(o.PendingItemID)
		o.PendingItemID = ""
		o.PendingField = ""
		if it != nil {
			slots.SyncStatus(it, e.snap)
			if it.Status != models.StatusComplete {
				_ = it.Advance(models.StatusComplete)
			}
		}
		if q := e.continueConfiguration(o); q != "" {
			return "Sounds good. " + q
		}
		return "Sounds good. Anything else today?"
	}

	if len(o.ActiveItems()) == 0 {
		return "No problem. Just let me know when you're ready to order."
	}
	if !o.AllItemsComplete() {
		if q := e.continueConfiguration(o); q != "" {
			return q
		}
	}
	return e.advanceCheckout(o)
}

func (e *Engine) handleSlotAnswer(a *parser.SlotAnswer, o *models.Order) string {
	if o.PendingItemID != "" {
		return e.handleItemSlotAnswer(a, o)
	}

	switch a.Field {
	case "delivery_method":
		o.Delivery.Method = models.OrderType(a.Value)
		return e.advanceCheckout(o)

	case "delivery_address":
		address := a.Value
		if e.geo != nil && len(e.store.DeliveryZips) > 0 {
			if zip, ok := e.geo.ResolveZip(address); ok {
				if !containsString(e.store.DeliveryZips, zip) {
					return fmt.Sprintf("I'm sorry, %s is outside our delivery area. Would pickup work instead?", zip)
				}
				o.Delivery.Zip = zip
			}
		}
		o.Delivery.Address = address
		return e.advanceCheckout(o)

	case "customer_name":
		o.Customer.Name = titleCase(a.Value)
		return e.advanceCheckout(o)

	case "order_confirm":
		if a.Value == "yes" {
			o.Checkout.Confirmed = true
			return e.advanceCheckout(o)
		}
		o.Checkout.SummaryShown = false
		o.PendingField = ""
		return "No problem — what should I change?"

	case "payment_method":
		o.Payment.Method = a.Value
		return e.advanceCheckout(o)

	case "notification_phone":
		o.Customer.Phone = a.Value
		return e.advanceCheckout(o)

	case "notification_email":
		o.Customer.Email = a.Value
		return e.advanceCheckout(o)
	}

	return e.withPendingQuestion(o, fallbackReply)
}

// handleItemSlotAnswer fills the pending item's slot. Required fields come
// first; once they're done the item gets one open "anything else on it"
// round before completing.
func (e *Engine) handleItemSlotAnswer(a *parser.SlotAnswer, o *models.Order) string {
	it := o.ItemByID(o.PendingItemID)
	if it == nil {
		o.PendingItemID = ""
		o.PendingField = ""
		return fallbackReply
	}

	var addedNote string
	switch a.Field {
	case "bagel_type", "toasted", "size", "temperature", "side_choice", "bagel_choice":
		if a.Field == "bagel_choice" && it.Kind == models.KindGeneric {
			it.Generic.AttributeValues["bagel_choice"] = a.Value
		} else if note := e.applyInline(it, a.Field, a.Value, a.Quantity); note != "" {
			return e.withPendingQuestion(o, note)
		}
	default:
		// A modifier addition during the open round.
		if note := e.applyInline(it, a.Field, a.Value, a.Quantity); note != "" {
			return e.withPendingQuestion(o, note)
		}
		addedNote = fmt.Sprintf("Added %s.", describeModifier(a.Field, a.Value, a.Quantity))
	}

	if slot := slots.NextForItem(it, e.snap); slot != nil {
		o.PendingField = slot.Field
		if addedNote != "" {
			return addedNote + " " + slot.Question
		}
		return slot.Question
	}

	if o.PendingField != "extras" {
		o.PendingField = "extras"
		return fmt.Sprintf("Anything else for the %s?", it.Name)
	}
	if addedNote != "" {
		return fmt.Sprintf("%s Anything else for the %s?", addedNote, it.Name)
	}
	return fmt.Sprintf("Anything else for the %s?", it.Name)
}

// advanceCheckout is the transition handler: it maps the orchestrator's next
// slot to the concrete next question, building the summary exactly once
// before confirmation.
func (e *Engine) advanceCheckout(o *models.Order) string {
	next := slots.Next(o)
	if next == nil {
		o.PendingField = ""
		return e.finalMessage(o)
	}

	if next.Category == "items" {
		o.PendingField = ""
		if q := e.continueConfiguration(o); q != "" {
			return q
		}
		return next.Question(o)
	}

	o.PendingField = next.Category
	if next.Category == "order_confirm" && !o.Checkout.SummaryShown {
		o.Checkout.SummaryShown = true
		return BuildSummary(o) + " Does that look right?"
	}
	return next.Question(o)
}

func (e *Engine) finalMessage(o *models.Order) string {
	total := fmt.Sprintf("$%.2f", o.Total())
	name := o.Customer.Name
	if name != "" {
		name = ", " + name
	}
	if o.Delivery.Method == models.OrderTypeDelivery {
		return fmt.Sprintf("You're all set%s! Your total is %s and your order is on its way to %s shortly.",
			name, total, o.Delivery.Address)
	}
	return fmt.Sprintf("You're all set%s! Your total is %s — see you soon.", name, total)
}

// pendingQuestion re-derives whatever question is currently outstanding
func (e *Engine) pendingQuestion(o *models.Order) string {
	if o.PendingItemID != "" {
		it := o.ItemByID(o.PendingItemID)
		if it == nil {
			return ""
		}
		if o.PendingField == "extras" {
			return fmt.Sprintf("Anything else for the %s?", it.Name)
		}
		if slot := slots.NextForItem(it, e.snap); slot != nil {
			return slot.Question
		}
		return ""
	}
	if len(o.AmbiguousOptions) > 0 {
		var choices []string
		for i, name := range o.AmbiguousOptions {
			choices = append(choices, fmt.Sprintf("%d) %s", i+1, name))
		}
		return "Which one would you like: " + strings.Join(choices, ", ") + "?"
	}
	if o.PendingField != "" {
		for i := range slots.OrderSlots {
			if slots.OrderSlots[i].Category == o.PendingField {
				return slots.OrderSlots[i].Question(o)
			}
		}
	}
	return ""
}

func findActiveByName(o *models.Order, name string) *models.Item {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := len(o.Items) - 1; i >= 0; i-- {
		it := &o.Items[i]
		if !it.Active() {
			continue
		}
		if strings.EqualFold(it.Name, name) || strings.Contains(strings.ToLower(it.Name), name) {
			return it
		}
	}
	return nil
}

// describeModifier phrases an addition like "2 vanilla syrups" or "oat milk".
// Countable fields carry the field name; scalar fields read naturally alone.
func describeModifier(field, value string, qty int) string {
	switch field {
	case "syrup", "topping", "sweetener":
		if qty > 1 {
			return fmt.Sprintf("%d %s %s", qty, value, pluralize(field))
		}
		return value + " " + field
	}
	return value
}

func describeQuantity(qty int, name string) string {
	if qty <= 1 {
		return article(name) + " " + strings.ToLower(name)
	}
	return fmt.Sprintf("%d %s", qty, pluralize(strings.ToLower(name)))
}

func article(name string) string {
	if name == "" {
		return "a"
	}
	switch strings.ToLower(name)[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}

func pluralize(name string) string {
	switch {
	case strings.HasSuffix(name, "s"), strings.HasSuffix(name, "x"), strings.HasSuffix(name, "ch"):
		return name + "es"
	case strings.HasSuffix(name, "y") && len(name) > 1 && !strings.ContainsRune("aeiou", rune(name[len(name)-2])):
		return name[:len(name)-1] + "ies"
	default:
		return name + "s"
	}
}

func joinNatural(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func containsString(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
