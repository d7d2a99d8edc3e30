package llm

import (
	"context"
	"time"
)

// Intent values the model is allowed to return. Anything else is rejected by
// the parsing pipeline.
const (
	IntentGreeting   = "greeting"
	IntentNewItem    = "new_item"
	IntentModify     = "modify_item"
	IntentCancel     = "cancel_item"
	IntentConfirm    = "confirm_no_change"
	IntentQuery      = "query"
	IntentSlotAnswer = "slot_answer"
	IntentUnclear    = "unclear"
)

// Request carries one utterance to the structured parser together with the
// option sets the response must stay inside.
type Request struct {
	Text         string
	MenuNames    []string
	PendingField string
	PendingItem  string
	Timeout      time.Duration
}

// ModifierGuess is one inline modifier the model extracted
type ModifierGuess struct {
	Field    string `json:"field"`
	Value    string `json:"value"`
	Quantity int    `json:"quantity,omitempty"`
}

// ItemGuess is one menu item the model extracted
type ItemGuess struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Modifiers []ModifierGuess `json:"modifiers,omitempty"`
}

// Response is the constrained output schema of the structured parser. Every
// field is validated against the engine's own option lists before it is
// trusted; the model's output is never applied blindly.
type Response struct {
	Intent    string      `json:"intent"`
	Items     []ItemGuess `json:"items,omitempty"`
	Field     string      `json:"field,omitempty"`
	Value     string      `json:"value,omitempty"`
	ItemRef   string      `json:"item_ref,omitempty"`
	QueryKind string      `json:"query_kind,omitempty"`
}

// Client is the narrow boundary to the language model. Implementations must
// honor the request timeout and return an error rather than block; the
// engine never retries a failed call.
type Client interface {
	ParseOrder(ctx context.Context, req Request) (*Response, error)
}
