package menu

import (
	"strings"
	"sync"
)

// Item represents one orderable entry on the menu
type Item struct {
	Name               string   `json:"name"`
	Type               string   `json:"type"`
	Price              float64  `json:"price"`
	Description        string   `json:"description"`
	DefaultIngredients []string `json:"default_ingredients"`
}

// AttributeDef describes one configurable attribute of a schema-driven menu
// item type (omelettes, deli sandwiches)
type AttributeDef struct {
	Name     string   `json:"name"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
}

// Snapshot is the read-only menu view the engine works against for one turn.
// A reload replaces the whole snapshot; it is never partially mutated while
// in use.
type Snapshot struct {
	ItemsByType            map[string][]Item         `json:"items_by_type"`
	AttributeSchemas       map[string][]AttributeDef `json:"attribute_schemas"`
	UnavailableIngredients []string                  `json:"unavailable_ingredients"`
	UnavailableMenuItems   []string                  `json:"unavailable_menu_items"`
}

// AllItems returns every item across all types
func (s *Snapshot) AllItems() []Item {
	var out []Item
	for _, items := range s.ItemsByType {
		out = append(out, items...)
	}
	return out
}

// ItemByName returns the menu item with the given name, case-insensitively
func (s *Snapshot) ItemByName(name string) (Item, bool) {
	for _, it := range s.AllItems() {
		if strings.EqualFold(it.Name, name) {
			return it, true
		}
	}
	return Item{}, false
}

// IngredientUnavailable reports whether an ingredient is 86'd
func (s *Snapshot) IngredientUnavailable(name string) bool {
	return containsFold(s.UnavailableIngredients, name)
}

// ItemUnavailable reports whether a whole menu item is 86'd
func (s *Snapshot) ItemUnavailable(name string) bool {
	return containsFold(s.UnavailableMenuItems, name)
}

func containsFold(list []string, name string) bool {
	for _, v := range list {
		if strings.EqualFold(v, name) {
			return true
		}
	}
	return false
}

// IngredientCache memoizes per-menu-item default-ingredient lookups. It is
// the only cross-turn mutable state besides the snapshot itself and can be
// invalidated wholesale on menu reload.
type IngredientCache struct {
	mu     sync.RWMutex
	snap   *Snapshot
	byName map[string][]string
}

// NewIngredientCache creates a cache over the given snapshot
func NewIngredientCache(snap *Snapshot) *IngredientCache {
	return &IngredientCache{snap: snap, byName: make(map[string][]string)}
}

// Defaults returns the default ingredients for a menu item by name
func (c *IngredientCache) Defaults(name string) []string {
	key := strings.ToLower(name)
	c.mu.RLock()
	if ings, ok := c.byName[key]; ok {
		c.mu.RUnlock()
		return ings
	}
	c.mu.RUnlock()

	var ings []string
	if it, ok := c.snap.ItemByName(name); ok {
		ings = append([]string(nil), it.DefaultIngredients...)
	}
	c.mu.Lock()
	c.byName[key] = ings
	c.mu.Unlock()
	return ings
}

// Invalidate drops all memoized entries and repoints the cache at a new
// snapshot.
func (c *IngredientCache) Invalidate(snap *Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
	c.byName = make(map[string][]string)
}
