package slots

import (
	"fmt"

	"bagelbot/internal/menu"
	"bagelbot/internal/models"
)

// FieldSlot is one required field an item still needs before it counts as
// configured.
type FieldSlot struct {
	Field    string
	Question string
}

// NextForItem returns the first unfilled required field for an item, per its
// kind, or nil when the item is fully configured. The snapshot supplies the
// attribute schema for generic items.
func NextForItem(it *models.Item, snap *menu.Snapshot) *FieldSlot {
	switch it.Kind {
	case models.KindBagel:
		if it.Bagel.BagelType == "" {
			return &FieldSlot{Field: "bagel_type", Question: fmt.Sprintf("What kind of bagel would you like? We have %s.", joinOptions(menu.BagelTypes))}
		}
		if it.Bagel.Toasted == nil {
			return &FieldSlot{Field: "toasted", Question: "Would you like that toasted?"}
		}
	case models.KindSizedBeverage:
		if it.Drink.Size == "" {
			return &FieldSlot{Field: "size", Question: fmt.Sprintf("What size %s — small, medium, or large?", it.Name)}
		}
		if it.Drink.Temperature == "" {
			return &FieldSlot{Field: "temperature", Question: "Hot or iced?"}
		}
	case models.KindSpeedMenu:
		if it.Speed.Toasted == nil {
			return &FieldSlot{Field: "toasted", Question: fmt.Sprintf("Would you like the %s toasted?", it.Name)}
		}
	case models.KindGeneric:
		return nextGenericSlot(it, snap)
	}
	return nil
}

// nextGenericSlot walks the menu's attribute schema for the item's type.
// bagel_choice only applies after a bagel side was chosen; a fruit-salad
// side short-circuits straight to complete.
func nextGenericSlot(it *models.Item, snap *menu.Snapshot) *FieldSlot {
	menuItem, ok := snap.ItemByName(it.Name)
	if !ok {
		return nil
	}
	for _, def := range snap.AttributeSchemas[menuItem.Type] {
		if def.Name == "bagel_choice" {
			if it.Generic.AttributeValues["side_choice"] != "bagel" {
				continue
			}
		} else if !def.Required {
			continue
		}
		if it.Generic.AttributeValues[def.Name] == "" {
			return &FieldSlot{Field: def.Name, Question: def.Question}
		}
	}
	return nil
}

// Configured reports whether every required field of the item is filled
func Configured(it *models.Item, snap *menu.Snapshot) bool {
	return NextForItem(it, snap) == nil
}

// SyncStatus re-derives the item's completeness from its required fields and
// advances pending or in-progress items that are fully configured. The
// lifecycle only moves forward; skipped and complete items are left alone.
func SyncStatus(it *models.Item, snap *menu.Snapshot) {
	if it.Status == models.StatusComplete || it.Status == models.StatusSkipped {
		return
	}
	if Configured(it, snap) {
		_ = it.Advance(models.StatusComplete)
	}
}

func joinOptions(options []string) string {
	switch len(options) {
	case 0:
		return ""
	case 1:
		return options[0]
	default:
		out := ""
		for i, o := range options {
			switch {
			case i == 0:
				out = o
			case i == len(options)-1:
				out += ", and " + o
			default:
				out += ", " + o
			}
		}
		return out
	}
}
