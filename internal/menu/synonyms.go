package menu

// synonymGroups are alternate names customers use for the same thing. A query
// matching any member expands to the whole group before lookup.
var synonymGroups = [][]string{
	{"oj", "orange juice"},
	{"coffee", "drip coffee", "regular coffee"},
	{"soda", "pop", "soft drink"},
	{"lox", "smoked salmon", "nova"},
	{"cream cheese", "schmear", "shmear"},
	{"bec", "bacon egg and cheese"},
	{"sec", "sausage egg and cheese"},
	{"latte", "cafe latte"},
	{"water", "bottled water"},
}

// categoryKeywords map words in a query to a menu type when no item matched
var categoryKeywords = map[string]string{
	"bagel":    "bagel",
	"coffee":   "coffee",
	"latte":    "coffee",
	"espresso": "coffee",
	"cappucc":  "coffee",
	"tea":      "tea",
	"juice":    "juice",
	"omelette": "omelette",
	"omelet":   "omelette",
	"sandwich": "sandwich",
	"drink":    "coffee",
}

// expandSynonyms returns the query plus every member of any synonym group it
// belongs to.
func expandSynonyms(query string) []string {
	out := []string{query}
	for _, group := range synonymGroups {
		member := false
		for _, name := range group {
			if name == query {
				member = true
				break
			}
		}
		if !member {
			continue
		}
		for _, name := range group {
			if name != query {
				out = append(out, name)
			}
		}
	}
	return out
}
