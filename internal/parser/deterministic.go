package parser

import (
	"regexp"
	"strings"

	"bagelbot/internal/menu"
	"bagelbot/internal/models"
)

var (
	greetingRe = regexp.MustCompile(`^(hi|hiya|hello|hey|howdy|yo|good (morning|afternoon|evening))\b`)
	cancelRe   = regexp.MustCompile(`^(cancel|scratch|forget|nevermind|never mind)\b\s*`)
	removeRe   = regexp.MustCompile(`^(remove|take off|take|hold|without|no more)\b\s*`)
	// "also" is a discourse marker ("can i also get..."), not a list
	// conjunction, so it never splits.
	segmentRe = regexp.MustCompile(`\s*,\s*(?:and\s+)?|\s+and\s+|\s+plus\s+`)
)

var leadInPhrases = []string{
	"oh wait", "oh", "wait", "actually", "also",
	"i would like", "i'd like", "id like", "i will have", "i'll have",
	"ill have", "i'll take", "can i get", "could i get", "can i have",
	"could i have", "may i have", "can i also get", "can i also have",
	"could i also get", "could i also have", "let me get", "lemme get",
	"give me", "gimme", "i want", "i need", "get me", "we'll have",
	"we would like", "order", "add",
}

var trailingPolite = []string{"please", "thanks", "thank you"}

// stripLeadIn drops conversational openers so the rest of the text is just
// the order.
func stripLeadIn(text string) string {
	text = strings.TrimSpace(text)
	for changed := true; changed; {
		changed = false
		for _, p := range leadInPhrases {
			if strings.HasPrefix(text, p+" ") {
				text = strings.TrimSpace(strings.TrimPrefix(text, p))
				changed = true
			}
		}
	}
	for _, p := range trailingPolite {
		text = strings.TrimSuffix(strings.TrimSpace(text), " "+p)
	}
	return strings.TrimSpace(strings.Trim(text, ".!?,"))
}

// splitSegments breaks conjunction lists into independent item fragments
// while protecting fixed multi-word phrases: "bacon egg and cheese" never
// splits.
func (p *Pipeline) splitSegments(text string) []string {
	protected := p.protectedPhrases()
	for i, phrase := range protected {
		placeholder := protectedToken(i)
		text = strings.ReplaceAll(text, phrase, placeholder)
	}
	parts := segmentRe.Split(text, -1)
	var out []string
	for _, part := range parts {
		for i, phrase := range protected {
			part = strings.ReplaceAll(part, protectedToken(i), phrase)
		}
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func protectedToken(i int) string {
	return "\x00p" + string(rune('a'+i)) + "\x00"
}

// protectedPhrases are menu names (and their synonyms) containing
// conjunctions that must survive the splitter.
func (p *Pipeline) protectedPhrases() []string {
	var out []string
	for _, it := range p.snap.AllItems() {
		name := strings.ToLower(it.Name)
		if strings.Contains(name, " and ") {
			out = append(out, name)
		}
	}
	out = append(out, "half and half")
	return out
}

// parseGreeting matches conversational openers on an otherwise empty message
func parseGreeting(text string) *Result {
	if greetingRe.MatchString(text) {
		return &Result{Kind: ResultGreeting}
	}
	return nil
}

// parseCancelOrRemove distinguishes cancelling a whole item from removing a
// modifier. A fragment naming an active cart item cancels it; anything else
// is handed to the modifier engine as a removal.
func (p *Pipeline) parseCancelOrRemove(text string, order *models.Order) *Result {
	var fragment string
	isCancel := false
	switch {
	case cancelRe.MatchString(text):
		fragment = cancelRe.ReplaceAllString(text, "")
		isCancel = true
	case removeRe.MatchString(text):
		fragment = removeRe.ReplaceAllString(text, "")
	case strings.HasPrefix(text, "no "):
		// "no bacon" is a removal; bare declines belong to isNegative.
		fragment = strings.TrimPrefix(text, "no ")
		if !removalTarget(trimRemovalSuffixes(fragment)) {
			return nil
		}
	default:
		return nil
	}
	fragment = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(fragment), "the "))
	fragment = strings.TrimSuffix(fragment, " from my order")
	fragment = trimRemovalSuffixes(fragment)

	if fragment == "" || fragment == "that" || fragment == "it" ||
		fragment == "last" || fragment == "the last one" || fragment == "last one" {
		return &Result{Kind: ResultCancelItem, Cancel: &CancelItem{Last: true}}
	}
	for _, it := range order.ActiveItems() {
		// "remove the bacon" with a Bacon Egg and Cheese in the cart means
		// the ingredient, not the item; a removal verb only cancels a whole
		// item when the fragment names it exactly.
		if strings.EqualFold(it.Name, fragment) ||
			(isCancel && strings.Contains(strings.ToLower(it.Name), fragment)) {
			return &Result{Kind: ResultCancelItem, Cancel: &CancelItem{ItemRef: it.Name}}
		}
	}
	if isCancel {
		return &Result{Kind: ResultCancelItem, Cancel: &CancelItem{ItemRef: fragment}}
	}
	return &Result{Kind: ResultModifyItem, Modify: &ModifyItem{Field: FieldRemove, Value: fragment}}
}

// trimRemovalSuffixes drops the conversational tail of a removal phrase
func trimRemovalSuffixes(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	for _, suffix := range []string{" on that", " on it", " on mine", " please"} {
		fragment = strings.TrimSuffix(fragment, suffix)
	}
	return strings.TrimSpace(strings.TrimPrefix(fragment, "the "))
}

// removalTarget reports whether the remainder of a "no ..." phrase names
// something to take off rather than being a plain decline.
func removalTarget(rest string) bool {
	switch rest {
	case "", "thanks", "thank you", "changes", "problem", "worries", "more":
		return false
	}
	return !isNegative(rest)
}

// parseQuery matches informational questions that mutate nothing
func (p *Pipeline) parseQuery(text string) *Result {
	q := func(kind QueryKind, subject string) *Result {
		return &Result{Kind: ResultQuery, Query: &Query{Kind: kind, Subject: strings.TrimSpace(subject)}}
	}
	switch {
	case strings.Contains(text, "hour") || strings.Contains(text, "when are you open") ||
		strings.Contains(text, "when do you close") || strings.Contains(text, "when do you open"):
		return q(QueryStoreHours, "")
	case strings.Contains(text, "where are you") || strings.Contains(text, "your address") ||
		strings.Contains(text, "located"):
		return q(QueryStoreLocation, "")
	case strings.Contains(text, "do you deliver"):
		subject := text[strings.Index(text, "do you deliver")+len("do you deliver"):]
		subject = strings.TrimPrefix(strings.TrimSpace(subject), "to ")
		return q(QueryDeliveryZone, subject)
	case strings.Contains(text, "how much") || strings.Contains(text, "price of") ||
		strings.Contains(text, "what does") && strings.Contains(text, "cost"):
		return q(QueryPrice, priceSubject(text))
	case strings.Contains(text, "recommend") || strings.Contains(text, "what's good") ||
		strings.Contains(text, "whats good") || strings.Contains(text, "suggest"):
		return q(QueryRecommendation, "")
	case strings.Contains(text, "what's on the") || strings.Contains(text, "whats on the") ||
		strings.Contains(text, "what comes on") || strings.Contains(text, "what's in the") ||
		strings.Contains(text, "whats in the"):
		return q(QueryItemDescription, descriptionSubject(text))
	case strings.Contains(text, "menu") || strings.Contains(text, "what do you have") ||
		strings.Contains(text, "what do you sell") || strings.Contains(text, "what kind of"):
		return q(QueryMenu, menuSubject(text))
	}
	return nil
}

func priceSubject(text string) string {
	for _, marker := range []string{"how much is", "how much are", "how much for", "price of"} {
		if idx := strings.Index(text, marker); idx >= 0 {
			s := text[idx+len(marker):]
			s = strings.TrimSpace(strings.Trim(s, "?.!"))
			s = strings.TrimPrefix(s, "a ")
			s = strings.TrimPrefix(s, "an ")
			s = strings.TrimPrefix(s, "the ")
			return s
		}
	}
	return ""
}

func descriptionSubject(text string) string {
	for _, marker := range []string{"what's on the", "whats on the", "what comes on the", "what comes on", "what's in the", "whats in the"} {
		if idx := strings.Index(text, marker); idx >= 0 {
			return strings.TrimSpace(strings.Trim(text[idx+len(marker):], "?.!"))
		}
	}
	return ""
}

func menuSubject(text string) string {
	if idx := strings.Index(text, "what kind of"); idx >= 0 {
		s := strings.TrimSpace(strings.Trim(text[idx+len("what kind of"):], "?.!"))
		s = strings.TrimSuffix(s, " do you have")
		s = strings.TrimSuffix(s, " do you sell")
		return s
	}
	return ""
}

// extractModifiers pulls inline modifier words out of an item fragment and
// returns what is left as the item name query.
func extractModifiers(text string) ([]InlineModifier, string) {
	var mods []InlineModifier
	add := func(field, value string, qty int) {
		mods = append(mods, InlineModifier{Field: field, Value: value, Quantity: qty})
	}

	if strings.Contains(text, "untoasted") || strings.Contains(text, "not toasted") {
		add("toasted", "no", 1)
		text = strings.ReplaceAll(text, "untoasted", "")
		text = strings.ReplaceAll(text, "not toasted", "")
	} else if strings.Contains(text, "toasted") {
		add("toasted", "yes", 1)
		text = strings.ReplaceAll(text, "toasted", "")
	}

	if strings.Contains(text, "iced") {
		add("temperature", "iced", 1)
		text = strings.ReplaceAll(text, "iced", "")
	} else if strings.Contains(text, "hot ") || strings.HasSuffix(text, " hot") {
		add("temperature", "hot", 1)
		text = strings.Replace(text, "hot", "", 1)
	}

	if size, ok := matchOption(text, sizeOptions); ok {
		add("size", size, 1)
		text = strings.Replace(text, size, "", 1)
	}

	// "with" introduces the modifier clause; everything before it is the name.
	var modClause string
	if idx := strings.Index(text, " with "); idx >= 0 {
		modClause = text[idx+len(" with "):]
		text = text[:idx]
	}

	if bt, ok := matchOption(text, menu.BagelTypes); ok {
		add("bagel_type", bt, 1)
		text = strings.Replace(text, bt, "", 1)
	}
	if flavor, ok := matchOption(text, syrupOptions); ok {
		add("syrup", flavor, 1)
		text = strings.Replace(text, flavor, "", 1)
	}

	for _, clause := range strings.Split(modClause, " and ") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		qty, rest := quantityOf(clause)
		switch {
		case matchInto(rest, spreadOptions, "spread", qty, add):
		case matchInto(rest, proteinOptions, "protein", qty, add):
		case matchInto(rest, milkOptions, "milk", qty, add):
		case matchInto(rest, syrupOptions, "syrup", qty, add):
		case matchInto(rest, sweetenerOptions, "sweetener", qty, add):
		case matchInto(rest, toppingOptions, "topping", qty, add):
		case matchInto(rest, menu.BagelTypes, "bagel_type", qty, add):
		}
	}

	text = strings.Join(strings.Fields(text), " ")
	return mods, strings.TrimSpace(text)
}

func matchInto(text string, options []string, field string, qty int, add func(string, string, int)) bool {
	if v, ok := matchOption(text, options); ok {
		add(field, v, qty)
		return true
	}
	return false
}

// parseNewItems runs the deterministic multi-item parser. It reports ok=false
// when any fragment is unintelligible, in which case the whole utterance goes
// to the language model instead.
func (p *Pipeline) parseNewItems(text string) (Result, bool) {
	segments := p.splitSegments(text)
	if len(segments) == 0 {
		return Result{}, false
	}

	var items []NewItem
	for _, seg := range segments {
		qty, rest := quantityOf(stripLeadIn(seg))
		rest = strings.TrimPrefix(rest, "cup of ")
		rest = strings.TrimPrefix(rest, "cups of ")

		// The splitter can't tell "...and a coffee" from "...and lox": a
		// fragment that is exactly one modifier word for the previous item
		// continues that item's with-clause.
		if len(items) > 0 {
			if m, ok := bareModifier(rest, items[len(items)-1].Kind); ok {
				m.Quantity = qty
				items[len(items)-1].Modifiers = append(items[len(items)-1].Modifiers, m)
				continue
			}
		}

		// A fragment matching a full menu name needs no modifier extraction;
		// this is what keeps "bacon egg and cheese" from being read as bacon.
		if one := p.lookup.Exact(rest); one != nil {
			items = append(items, NewItem{MenuItem: *one, Kind: kindFor(one.Type), Quantity: qty})
			continue
		}

		mods, nameText := extractModifiers(rest)
		if nameText == "" && hasField(mods, "bagel_type") {
			nameText = "bagel"
		}
		if nameText == "" {
			// A bare modifier fragment ("and tomato") belongs to the item
			// before it, not to a new item.
			if len(mods) > 0 && len(items) > 0 {
				items[len(items)-1].Modifiers = append(items[len(items)-1].Modifiers, mods...)
				continue
			}
			return Result{}, false
		}

		// An exact name match wins outright even when other menu names
		// contain it ("latte" is never ambiguous with "Chai Latte").
		if one := p.lookup.Exact(nameText); one != nil {
			items = append(items, NewItem{MenuItem: *one, Kind: kindFor(one.Type), Quantity: qty, Modifiers: mods})
			continue
		}

		candidates := p.lookup.LookupAll(nameText)
		switch len(candidates) {
		case 0:
			if len(mods) > 0 && len(items) > 0 {
				items[len(items)-1].Modifiers = append(items[len(items)-1].Modifiers, mods...)
				continue
			}
			return Result{}, false
		case 1:
			items = append(items, NewItem{
				MenuItem:  candidates[0],
				Kind:      kindFor(candidates[0].Type),
				Quantity:  qty,
				Modifiers: mods,
			})
		default:
			// Multiple distinct menu items: the engine must ask, not guess.
			return Result{
				Kind:         ResultAmbiguousItem,
				Items:        items,
				Ambiguous:    candidates,
				AmbiguousQty: qty,
			}, true
		}
	}

	kind := ResultNewItem
	if len(items) > 1 {
		kind = ResultMultiItem
	}
	return Result{Kind: kind, Items: items}, true
}

// bareModifierFields pairs each modifier vocabulary with the item kind it
// applies to, for conjunction fragments like "and lox" or "and tomato".
var bareModifierFields = []struct {
	field   string
	options []string
	kind    models.ItemKind
}{
	{"spread", spreadOptions, models.KindBagel},
	{"protein", proteinOptions, models.KindBagel},
	{"topping", toppingOptions, models.KindBagel},
	{"milk", milkOptions, models.KindSizedBeverage},
	{"syrup", syrupOptions, models.KindSizedBeverage},
	{"sweetener", sweetenerOptions, models.KindSizedBeverage},
}

// bareModifier matches a fragment that is exactly one modifier option valid
// for the given item kind. Only whole-fragment matches count; "turkey club"
// is an item, not a turkey.
func bareModifier(text string, prev models.ItemKind) (InlineModifier, bool) {
	singular := strings.TrimSuffix(text, "s")
	for _, f := range bareModifierFields {
		if f.kind != prev {
			continue
		}
		for _, opt := range f.options {
			if strings.EqualFold(text, opt) || strings.EqualFold(singular, opt) {
				return InlineModifier{Field: f.field, Value: opt, Quantity: 1}, true
			}
		}
	}
	return InlineModifier{}, false
}

func hasField(mods []InlineModifier, field string) bool {
	for _, m := range mods {
		if m.Field == field {
			return true
		}
	}
	return false
}

// kindFor maps a menu type to the item variant that models it
func kindFor(menuType string) models.ItemKind {
	switch menuType {
	case "bagel":
		return models.KindBagel
	case "coffee", "tea":
		return models.KindSizedBeverage
	case "speed":
		return models.KindSpeedMenu
	default:
		return models.KindGeneric
	}
}
