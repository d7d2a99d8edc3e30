package menu

import (
	"sort"
	"strings"
)

// Lookup resolves free-text menu references against a snapshot. The passes
// run in strict order; a later pass only runs when the earlier one produced
// nothing. Auto-application is conservative: when a pass leaves more than one
// equally good candidate, Lookup returns nothing and the caller is expected
// to disambiguate via LookupAll.
type Lookup struct {
	snap *Snapshot
}

// NewLookup creates a lookup over a menu snapshot
func NewLookup(snap *Snapshot) *Lookup {
	return &Lookup{snap: snap}
}

// LookupOne resolves a name to a single menu item, or nil when the name is
// unknown or ambiguous. Only an exact match or a sole candidate is returned;
// the engine never guesses between candidates.
func (l *Lookup) LookupOne(name string) *Item {
	query := normalizeQuery(name)
	if query == "" {
		return nil
	}

	// Pass 1: exact match on the query and its singular/plural variants.
	if it := l.exactMatch(query); it != nil {
		return it
	}

	// Pass 2: query contained in item name, most specific (shortest) wins.
	if it := pickShortest(l.containedMatches(query, true)); it != nil {
		return it
	}

	// Pass 3: item name contained in query, most complete (longest) wins.
	if it := pickLongest(l.containedMatches(query, false)); it != nil {
		return it
	}

	// Pass 4: compacted matching catches near-miss spellings like
	// "blue berry" for "blueberry".
	return l.compactMatch(query)
}

// LookupAll returns every distinct menu item the name could refer to, with
// known synonym groups expanded, deduplicated by item name and sorted
// shortest name first. More than one result means the caller must ask the
// user to choose.
func (l *Lookup) LookupAll(name string) []Item {
	query := normalizeQuery(name)
	if query == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []Item
	for _, q := range expandSynonyms(query) {
		for _, it := range l.candidates(q) {
			key := strings.ToLower(it.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Name) != len(out[j].Name) {
			return len(out[i].Name) < len(out[j].Name)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// InferCategory guesses which menu type a name refers to
func (l *Lookup) InferCategory(name string) (string, bool) {
	matches := l.LookupAll(name)
	counts := make(map[string]int)
	for _, it := range matches {
		counts[it.Type]++
	}
	best, bestN := "", 0
	for t, n := range counts {
		if n > bestN {
			best, bestN = t, n
		}
	}
	if best != "" {
		return best, true
	}

	query := normalizeQuery(name)
	for keyword, category := range categoryKeywords {
		if strings.Contains(query, keyword) {
			return category, true
		}
	}
	return "", false
}

// Suggest renders a natural-language list of items from a category, for
// fallback replies when nothing matched.
func (l *Lookup) Suggest(category string, limit int) string {
	items := l.snap.ItemsByType[category]
	if len(items) == 0 {
		items = l.snap.AllItems()
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}
}

// Exact resolves only a full case-insensitive name match (or its
// singular/plural variant), never a partial one.
func (l *Lookup) Exact(name string) *Item {
	return l.exactMatch(normalizeQuery(name))
}

func (l *Lookup) exactMatch(query string) *Item {
	for _, v := range nameVariants(query) {
		for _, it := range l.snap.AllItems() {
			if strings.EqualFold(it.Name, v) {
				found := it
				return &found
			}
		}
	}
	return nil
}

// containedMatches collects items where the query appears inside the item
// name (queryInName) or the item name appears inside the query.
func (l *Lookup) containedMatches(query string, queryInName bool) []Item {
	var out []Item
	for _, it := range l.snap.AllItems() {
		lname := strings.ToLower(it.Name)
		for _, v := range nameVariants(query) {
			var hit bool
			if queryInName {
				hit = strings.Contains(lname, v)
			} else {
				hit = strings.Contains(v, lname)
			}
			if hit {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

func (l *Lookup) compactMatch(query string) *Item {
	cq := compact(query)
	var matches []Item
	for _, it := range l.snap.AllItems() {
		cn := compact(it.Name)
		for _, v := range nameVariants(cq) {
			if cn == v {
				matches = append(matches, it)
				break
			}
		}
	}
	if len(matches) == 1 {
		return &matches[0]
	}
	return nil
}

// candidates is the broad matcher behind LookupAll: containment in either
// direction plus compact containment.
func (l *Lookup) candidates(query string) []Item {
	var out []Item
	cq := compact(query)
	for _, it := range l.snap.AllItems() {
		lname := strings.ToLower(it.Name)
		cn := compact(it.Name)
		matched := false
		for _, v := range nameVariants(query) {
			if strings.Contains(lname, v) || strings.Contains(v, lname) {
				matched = true
				break
			}
		}
		if !matched && cq != "" && (strings.Contains(cn, cq) || strings.Contains(cq, cn)) {
			matched = true
		}
		if matched {
			out = append(out, it)
		}
	}
	return out
}

// pickShortest returns the unique shortest-named item, or nil when the set
// is empty or the minimum is shared (ambiguous, do not guess).
func pickShortest(items []Item) *Item {
	return pickByLength(items, func(a, b int) bool { return a < b })
}

// pickLongest returns the unique longest-named item under the same rule
func pickLongest(items []Item) *Item {
	return pickByLength(items, func(a, b int) bool { return a > b })
}

func pickByLength(items []Item, better func(a, b int) bool) *Item {
	if len(items) == 0 {
		return nil
	}
	best := 0
	tied := false
	for i := 1; i < len(items); i++ {
		li, lb := len(items[i].Name), len(items[best].Name)
		if li == lb && !strings.EqualFold(items[i].Name, items[best].Name) {
			tied = true
		} else if better(li, lb) {
			best = i
			tied = false
		}
	}
	if tied {
		return nil
	}
	return &items[best]
}

func normalizeQuery(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "the ")
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// nameVariants returns the query plus naive singular/plural forms
func nameVariants(q string) []string {
	variants := []string{q}
	switch {
	case strings.HasSuffix(q, "ies"):
		variants = append(variants, strings.TrimSuffix(q, "ies")+"y")
	case strings.HasSuffix(q, "es"):
		variants = append(variants, strings.TrimSuffix(q, "es"), strings.TrimSuffix(q, "s"))
	case strings.HasSuffix(q, "s"):
		variants = append(variants, strings.TrimSuffix(q, "s"))
	default:
		variants = append(variants, q+"s")
	}
	return variants
}

func compact(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
