package parser

import (
	"bagelbot/internal/menu"
	"bagelbot/internal/models"
)

// ResultKind discriminates the parse-result union
type ResultKind string

const (
	ResultGreeting        ResultKind = "greeting"
	ResultNewItem         ResultKind = "new_item"
	ResultMultiItem       ResultKind = "multi_item"
	ResultModifyItem      ResultKind = "modify_item"
	ResultCancelItem      ResultKind = "cancel_item"
	ResultConfirmNoChange ResultKind = "confirm_no_change"
	ResultQuery           ResultKind = "query"
	ResultSlotAnswer      ResultKind = "slot_answer"
	ResultAmbiguousItem   ResultKind = "ambiguous_item"
	ResultUnclear         ResultKind = "unclear"
)

// QueryKind discriminates informational questions
type QueryKind string

const (
	QueryMenu            QueryKind = "menu"
	QueryPrice           QueryKind = "price"
	QueryStoreHours      QueryKind = "store_hours"
	QueryStoreLocation   QueryKind = "store_location"
	QueryDeliveryZone    QueryKind = "delivery_zone"
	QueryRecommendation  QueryKind = "recommendation"
	QueryItemDescription QueryKind = "item_description"
)

// InlineModifier is a modifier named in the same breath as the item
// ("everything bagel with scallion cream cheese")
type InlineModifier struct {
	Field    string
	Value    string
	Quantity int
}

// NewItem is one resolved menu item the user asked to add
type NewItem struct {
	MenuItem  menu.Item
	Kind      models.ItemKind
	Quantity  int
	Modifiers []InlineModifier
}

// FieldRemove marks a ModifyItem as a removal of whatever Value names
const FieldRemove = "remove"

// ModifyItem is a change to an existing item
type ModifyItem struct {
	ItemRef string
	Field   string
	Value   string
}

// CancelItem cancels an item by reference, or the most recent one
type CancelItem struct {
	ItemRef string
	Last    bool
}

// Query is an informational question that mutates nothing
type Query struct {
	Kind    QueryKind
	Subject string
}

// SlotAnswer fills the slot currently being asked about
type SlotAnswer struct {
	Field    string
	Value    string
	Quantity int
}

// Result is the discriminated union every parser path produces. Exactly the
// fields selected by Kind are meaningful; downstream code is agnostic to
// whether a deterministic parser or the language model built it.
type Result struct {
	Kind         ResultKind
	Items        []NewItem
	Modify       *ModifyItem
	Cancel       *CancelItem
	Query        *Query
	Answer       *SlotAnswer
	Ambiguous    []menu.Item
	AmbiguousQty int

	// ViaLLM marks results produced by the language-model fallback rather
	// than the deterministic parsers.
	ViaLLM bool
}
