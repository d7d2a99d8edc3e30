package parser

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bagelbot/internal/llm"
	"bagelbot/internal/menu"
	"bagelbot/internal/models"
)

// Pipeline turns raw user text into a ParseResult. Deterministic pattern
// parsers always run first; the language model is consulted only when they
// produce nothing, and its output goes through the same validation as any
// other path.
type Pipeline struct {
	snap       *menu.Snapshot
	lookup     *menu.Lookup
	client     llm.Client
	llmTimeout time.Duration
	recorder   PathRecorder
}

// PathRecorder observes which parser produced each result. Implementations
// must be safe for concurrent use.
type PathRecorder interface {
	RecordPath(path string)
	RecordLLMFailure()
}

// NewPipeline creates a parsing pipeline. A nil client disables the LLM
// fallback; unresolvable input then parses as unclear.
func NewPipeline(snap *menu.Snapshot, lookup *menu.Lookup, client llm.Client, llmTimeout time.Duration) *Pipeline {
	return &Pipeline{snap: snap, lookup: lookup, client: client, llmTimeout: llmTimeout}
}

// SetRecorder attaches parse-path instrumentation
func (p *Pipeline) SetRecorder(r PathRecorder) { p.recorder = r }

// Parse classifies one turn of user input against the current order state
func (p *Pipeline) Parse(ctx context.Context, text string, order *models.Order) Result {
	r := p.classify(ctx, text, order)
	if p.recorder != nil {
		if r.ViaLLM {
			p.recorder.RecordPath("llm")
		} else {
			p.recorder.RecordPath("deterministic")
		}
	}
	return r
}

func (p *Pipeline) classify(ctx context.Context, text string, order *models.Order) Result {
	norm := strings.ToLower(strings.TrimSpace(text))
	if norm == "" {
		return Result{Kind: ResultUnclear}
	}

	// While an item is mid-configuration, everything the user says is an
	// answer for that item's pending slot. No new item can be created here.
	if order.PendingItemID != "" {
		return p.parsePendingItemAnswer(ctx, text, norm, order)
	}

	if len(order.AmbiguousOptions) > 0 {
		if r := p.parseDisambiguation(norm, order); r != nil {
			return *r
		}
	}

	if order.PendingField != "" {
		if r := p.parseOrderSlotAnswer(text, norm, order); r != nil {
			return *r
		}
	}

	if r := parseGreeting(norm); r != nil {
		return *r
	}
	if r := p.parseQuery(norm); r != nil {
		return *r
	}
	if r := p.parseCancelOrRemove(norm, order); r != nil {
		return *r
	}
	if isNegative(norm) {
		return Result{Kind: ResultConfirmNoChange}
	}
	if r, ok := p.parseNewItems(norm); ok {
		return r
	}

	return p.llmParse(ctx, text, order)
}

// parsePendingItemAnswer interprets input as the answer to the pending slot
// of the item currently being configured.
func (p *Pipeline) parsePendingItemAnswer(ctx context.Context, raw, norm string, order *models.Order) Result {
	it := order.ItemByID(order.PendingItemID)
	if it == nil {
		return Result{Kind: ResultUnclear}
	}

	answer := func(field, value string, qty int) Result {
		return Result{Kind: ResultSlotAnswer, Answer: &SlotAnswer{Field: field, Value: value, Quantity: qty}}
	}

	// "never mind, cancel that" is an escape hatch even mid-configuration.
	if cancelRe.MatchString(norm) {
		if r := p.parseCancelOrRemove(norm, order); r != nil {
			return *r
		}
	}

	switch order.PendingField {
	case "bagel_type", "bagel_choice":
		if bt, ok := matchOption(norm, menu.BagelTypes); ok {
			return answer(order.PendingField, bt, 1)
		}
	case "toasted":
		switch {
		case strings.Contains(norm, "untoasted") || strings.Contains(norm, "not toasted"):
			return answer("toasted", "no", 1)
		case strings.Contains(norm, "toasted"):
			return answer("toasted", "yes", 1)
		case isNegative(norm):
			return answer("toasted", "no", 1)
		case isAffirmative(norm):
			return answer("toasted", "yes", 1)
		}
	case "size":
		if size, ok := matchOption(norm, sizeOptions); ok {
			return answer("size", size, 1)
		}
	case "temperature":
		switch {
		case strings.Contains(norm, "iced") || strings.Contains(norm, "cold"):
			return answer("temperature", "iced", 1)
		case strings.Contains(norm, "hot"):
			return answer("temperature", "hot", 1)
		}
	case "side_choice":
		if side, ok := matchOption(norm, p.attrOptions(it, "side_choice")); ok {
			return answer("side_choice", side, 1)
		}
	case "extras":
		if r := p.parseExtrasAnswer(norm, it); r != nil {
			return *r
		}
	}

	return p.llmParse(ctx, raw, order)
}

// parseExtrasAnswer handles the open "anything else on it?" slot: a decline
// completes the item, a modifier phrase adds to it, a removal phrase takes
// off something already on it.
func (p *Pipeline) parseExtrasAnswer(norm string, it *models.Item) *Result {
	if cancelRe.MatchString(norm) || removeRe.MatchString(norm) {
		fragment := removeRe.ReplaceAllString(cancelRe.ReplaceAllString(norm, ""), "")
		return &Result{Kind: ResultModifyItem, Modify: &ModifyItem{
			ItemRef: it.Name,
			Field:   FieldRemove,
			Value:   trimRemovalSuffixes(fragment),
		}}
	}
	// "no bacon" is a removal; "no"/"no thanks" is a decline.
	if rest, ok := strings.CutPrefix(norm, "no "); ok {
		rest = trimRemovalSuffixes(rest)
		if removalTarget(rest) {
			return &Result{Kind: ResultModifyItem, Modify: &ModifyItem{
				ItemRef: it.Name,
				Field:   FieldRemove,
				Value:   rest,
			}}
		}
	}
	if isNegative(norm) {
		return &Result{Kind: ResultConfirmNoChange}
	}

	qty, rest := quantityOf(stripLeadIn(norm))
	for _, field := range []string{"spread", "protein", "milk", "syrup", "sweetener", "topping"} {
		if v, ok := matchOption(rest, fieldOptions[field]); ok {
			return &Result{Kind: ResultSlotAnswer, Answer: &SlotAnswer{Field: field, Value: v, Quantity: qty}}
		}
	}
	if strings.Contains(rest, "toasted") {
		v := "yes"
		if strings.Contains(rest, "untoasted") || strings.Contains(rest, "not toasted") {
			v = "no"
		}
		return &Result{Kind: ResultSlotAnswer, Answer: &SlotAnswer{Field: "toasted", Value: v, Quantity: 1}}
	}
	return nil
}

var ordinalWords = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"1st": 1, "2nd": 2, "3rd": 3, "4th": 4, "5th": 5,
}

// parseDisambiguation resolves a buffered menu ambiguity by number or by a
// distinguishing word. Returns nil when the reply doesn't pick an option, so
// the rest of the chain can interpret it.
func (p *Pipeline) parseDisambiguation(norm string, order *models.Order) *Result {
	options := order.AmbiguousOptions

	pick := 0
	if n, err := strconv.Atoi(strings.Trim(norm, ".!? ")); err == nil {
		pick = n
	} else {
		for word, n := range ordinalWords {
			if strings.Contains(norm, word) {
				pick = n
				break
			}
		}
	}
	if pick < 1 || pick > len(options) {
		pick = 0
		// Match by distinguishing word: exactly one option may contain the
		// reply's meaningful tokens.
		matched := 0
		for i, name := range options {
			lname := strings.ToLower(name)
			for _, tok := range strings.Fields(norm) {
				if len(tok) >= 3 && strings.Contains(lname, tok) {
					matched++
					pick = i + 1
					break
				}
			}
		}
		if matched != 1 {
			return nil
		}
	}

	item, ok := p.snap.ItemByName(options[pick-1])
	if !ok {
		return nil
	}
	qty := order.AmbiguousQty
	if qty < 1 {
		qty = 1
	}
	return &Result{Kind: ResultNewItem, Items: []NewItem{{
		MenuItem: item,
		Kind:     kindFor(item.Type),
		Quantity: qty,
	}}}
}

var (
	phoneRe = regexp.MustCompile(`\d{3}[-. ]?\d{3}[-. ]?\d{4}`)
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
)

var namePrefixes = []string{"my name is", "the name is", "name is", "it's", "its", "this is", "i'm", "im"}

// parseOrderSlotAnswer interprets input as the answer to the order-level
// slot last asked about. Unlike item configuration this is not exclusive:
// nil falls through so the user can still add items or ask questions
// mid-checkout.
func (p *Pipeline) parseOrderSlotAnswer(raw, norm string, order *models.Order) *Result {
	answer := func(field, value string) *Result {
		return &Result{Kind: ResultSlotAnswer, Answer: &SlotAnswer{Field: field, Value: value, Quantity: 1}}
	}

	switch order.PendingField {
	case "delivery_method":
		if strings.Contains(norm, "pickup") || strings.Contains(norm, "pick up") ||
			strings.Contains(norm, "pick it up") || strings.Contains(norm, "carry out") {
			return answer("delivery_method", string(models.OrderTypePickup))
		}
		if strings.Contains(norm, "deliver") {
			return answer("delivery_method", string(models.OrderTypeDelivery))
		}
	case "delivery_address":
		if len(strings.Fields(raw)) >= 3 || regexp.MustCompile(`\d`).MatchString(raw) {
			return answer("delivery_address", strings.TrimSpace(raw))
		}
	case "customer_name":
		name := strings.TrimSpace(strings.Trim(raw, ".!,"))
		lower := strings.ToLower(name)
		for _, prefix := range namePrefixes {
			if strings.HasPrefix(lower, prefix+" ") {
				name = strings.TrimSpace(name[len(prefix):])
				break
			}
		}
		// A reply that mentions a menu item is an order change, not a name.
		if len(lower) >= 4 && len(p.lookup.LookupAll(lower)) > 0 {
			return nil
		}
		if name != "" && len(strings.Fields(name)) <= 4 {
			return answer("customer_name", name)
		}
	case "order_confirm":
		if isNegative(norm) {
			return answer("order_confirm", "no")
		}
		if isAffirmative(norm) {
			return answer("order_confirm", "yes")
		}
	case "payment_method":
		switch {
		case strings.Contains(norm, "cash"):
			return answer("payment_method", "cash")
		case strings.Contains(norm, "card") || strings.Contains(norm, "credit"):
			return answer("payment_method", "card")
		case strings.Contains(norm, "link") || strings.Contains(norm, "online"):
			return answer("payment_method", "link")
		case strings.Contains(norm, "in store") || strings.Contains(norm, "at the store") ||
			strings.Contains(norm, "at the register"):
			return answer("payment_method", "in_store")
		}
	case "notification":
		if phone := phoneRe.FindString(raw); phone != "" {
			return answer("notification_phone", phone)
		}
		if email := emailRe.FindString(raw); email != "" {
			return answer("notification_email", email)
		}
	}
	return nil
}

func (p *Pipeline) attrOptions(it *models.Item, attr string) []string {
	menuItem, ok := p.snap.ItemByName(it.Name)
	if !ok {
		return nil
	}
	for _, def := range p.snap.AttributeSchemas[menuItem.Type] {
		if def.Name == attr {
			return def.Options
		}
	}
	return nil
}
