package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const defaultTimeout = 8 * time.Second

// LangChainClient implements Client over any langchaingo model
type LangChainClient struct {
	model       llms.Model
	temperature float64
}

// NewLangChainClient wraps an initialized langchaingo model
func NewLangChainClient(model llms.Model) *LangChainClient {
	return &LangChainClient{model: model, temperature: 0.0}
}

// NewOpenAIClient initializes an OpenAI-backed client
func NewOpenAIClient(modelName, apiKey string) (*LangChainClient, error) {
	model, err := openai.New(
		openai.WithModel(modelName),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return NewLangChainClient(model), nil
}

// ParseOrder sends one utterance to the model and decodes its structured
// reply. The call is bounded by the request timeout and is never retried.
func (c *LangChainClient) ParseOrder(ctx context.Context, req Request) (*Response, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := llms.GenerateFromSinglePrompt(ctx, c.model, buildPrompt(req),
		llms.WithTemperature(c.temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		return nil, fmt.Errorf("structured parse call failed: %w", err)
	}

	var resp Response
	if err := json.Unmarshal([]byte(stripFences(raw)), &resp); err != nil {
		return nil, fmt.Errorf("structured parse returned invalid JSON: %w", err)
	}
	return &resp, nil
}

func buildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("You are the order parser for a bagel shop. ")
	b.WriteString("Classify the customer's message and extract its details.\n\n")
	b.WriteString("Menu items: ")
	b.WriteString(strings.Join(req.MenuNames, ", "))
	b.WriteString("\n")
	if req.PendingField != "" {
		fmt.Fprintf(&b, "The customer is currently being asked for %q on the %s; treat the message as an answer to that question if at all possible.\n",
			req.PendingField, req.PendingItem)
	}
	b.WriteString(`
Respond with only a JSON object of this shape:
{
  "intent": "greeting|new_item|modify_item|cancel_item|confirm_no_change|query|slot_answer|unclear",
  "items": [{"name": "<menu item name>", "quantity": 1, "modifiers": [{"field": "spread|protein|topping|milk|syrup|sweetener|size|temperature|bagel_type|toasted", "value": "...", "quantity": 1}]}],
  "field": "<slot field for slot_answer or modify_item>",
  "value": "<slot value>",
  "item_ref": "<menu item name being modified or cancelled, or 'last'>",
  "query_kind": "menu|price|store_hours|store_location|delivery_zone|recommendation|item_description"
}
Item names must come from the menu list above. Omit fields that do not apply.

Customer message: `)
	b.WriteString(strings.TrimSpace(req.Text))
	return b.String()
}

// stripFences tolerates models that wrap JSON in a markdown code block
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
