package parser

import "strings"

// Option vocabularies for inline modifiers and slot answers. These double as
// the validation lists for everything the language model returns: a value
// outside its field's set is rejected and re-asked, never applied.
var (
	spreadOptions = []string{
		"scallion cream cheese", "cream cheese", "peanut butter", "butter",
	}
	proteinOptions = []string{
		"lox", "smoked salmon", "bacon", "turkey", "sausage", "ham",
	}
	toppingOptions = []string{
		"tomato", "red onion", "onion", "capers", "lettuce", "cucumber",
	}
	milkOptions = []string{
		"oat milk", "almond milk", "soy milk", "whole milk", "skim milk",
		"half and half",
	}
	syrupOptions = []string{
		"vanilla", "caramel", "hazelnut",
	}
	sweetenerOptions = []string{
		"sugar", "splenda", "stevia", "honey",
	}
	sizeOptions = []string{"small", "medium", "large"}
)

// fieldOptions maps modifier/slot fields to their allowed values
var fieldOptions = map[string][]string{
	"spread":      spreadOptions,
	"protein":     proteinOptions,
	"topping":     toppingOptions,
	"milk":        milkOptions,
	"syrup":       syrupOptions,
	"sweetener":   sweetenerOptions,
	"size":        sizeOptions,
	"temperature": {"hot", "iced"},
}

// matchOption finds the longest option whose name appears in the text.
// Longest first so "scallion cream cheese" beats "cream cheese".
func matchOption(text string, options []string) (string, bool) {
	best := ""
	for _, opt := range options {
		if strings.Contains(text, opt) && len(opt) > len(best) {
			best = opt
		}
	}
	return best, best != ""
}

// validOption reports whether a value is inside a field's declared option set
func validOption(field, value string) bool {
	opts, ok := fieldOptions[field]
	if !ok {
		return false
	}
	value = strings.ToLower(strings.TrimSpace(value))
	for _, opt := range opts {
		if opt == value {
			return true
		}
	}
	return false
}

var affirmativeWords = []string{
	"yes", "yeah", "yep", "yup", "sure", "correct", "right", "sounds good",
	"looks good", "that's right", "thats right", "perfect", "please",
}

var negativeWords = []string{
	"no", "nope", "nah", "nothing", "nothing else", "that's it", "thats it",
	"that's all", "thats all", "that's everything", "thats everything",
	"that is everything", "that'll be all", "thatll be all",
	"that will be all", "no thanks", "no thank you", "all set",
	"i'm good", "im good", "no changes",
}

func isAffirmative(text string) bool { return matchesAny(text, affirmativeWords) }
func isNegative(text string) bool    { return matchesAny(text, negativeWords) }

func matchesAny(text string, phrases []string) bool {
	text = strings.ToLower(strings.TrimSpace(strings.Trim(text, ".!,")))
	for _, p := range phrases {
		if text == p || strings.HasPrefix(text, p+" ") || strings.HasPrefix(text, p+",") {
			return true
		}
	}
	return false
}
