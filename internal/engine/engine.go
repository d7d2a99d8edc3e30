package engine

import (
	"context"

	"bagelbot/internal/menu"
	"bagelbot/internal/models"
	"bagelbot/internal/modifiers"
	"bagelbot/internal/parser"
)

// Geocoder resolves a partial address to a zip code. Only the delivery-zone
// query handler consumes it; the engine treats it as a black box.
type Geocoder interface {
	ResolveZip(partial string) (string, bool)
}

// StoreInfo is the static store facts the query handlers answer from
type StoreInfo struct {
	Name         string   `yaml:"name"`
	Hours        string   `yaml:"hours"`
	Address      string   `yaml:"address"`
	DeliveryZips []string `yaml:"delivery_zips"`
}

const fallbackReply = "I'm sorry, I didn't quite catch that — could you rephrase?"

// Engine is the order-capture dialogue engine. It is stateless across turns:
// every call receives the full Order value and returns the updated one, so
// concurrent sessions need no locking and a session's turns are inherently
// sequential.
type Engine struct {
	snap    *menu.Snapshot
	lookup  *menu.Lookup
	pricing menu.PricingEngine
	mods    *modifiers.Engine
	pipe    *parser.Pipeline
	geo     Geocoder
	store   StoreInfo
}

// New wires an engine over a menu snapshot
func New(snap *menu.Snapshot, lookup *menu.Lookup, pricing menu.PricingEngine,
	mods *modifiers.Engine, pipe *parser.Pipeline, geo Geocoder, store StoreInfo) *Engine {
	return &Engine{
		snap:    snap,
		lookup:  lookup,
		pricing: pricing,
		mods:    mods,
		pipe:    pipe,
		geo:     geo,
		store:   store,
	}
}

// Process handles one turn of the conversation. Every branch terminates in a
// (message, order) pair: ambiguity, parse failure, removal failure, and
// external failures all degrade to a clarifying message, never to an error
// or panic surfaced to the caller.
func (e *Engine) Process(ctx context.Context, text string, order models.Order) (reply string, out models.Order) {
	out = order
	defer func() {
		if r := recover(); r != nil {
			reply = fallbackReply
		}
	}()

	result := e.pipe.Parse(ctx, text, &out)
	reply = e.apply(ctx, result, &out)
	return reply, out
}

// apply routes a parse result to its handler
func (e *Engine) apply(ctx context.Context, r parser.Result, o *models.Order) string {
	switch r.Kind {
	case parser.ResultGreeting:
		return e.handleGreeting(o)
	case parser.ResultNewItem, parser.ResultMultiItem:
		return e.handleNewItems(r.Items, o)
	case parser.ResultAmbiguousItem:
		return e.handleAmbiguous(r, o)
	case parser.ResultModifyItem:
		return e.handleModify(r.Modify, o)
	case parser.ResultCancelItem:
		return e.handleCancel(r.Cancel, o)
	case parser.ResultConfirmNoChange:
		return e.handleConfirmNoChange(o)
	case parser.ResultSlotAnswer:
		return e.handleSlotAnswer(r.Answer, o)
	case parser.ResultQuery:
		return e.handleQuery(r.Query, o)
	default:
		return e.withPendingQuestion(o, fallbackReply)
	}
}

// withPendingQuestion re-asks whatever is currently being asked, so a failed
// turn never strands the conversation.
func (e *Engine) withPendingQuestion(o *models.Order, msg string) string {
	if q := e.pendingQuestion(o); q != "" {
		return msg + " " + q
	}
	return msg
}
