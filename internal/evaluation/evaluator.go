package evaluation

import (
	"math"

	"bagelbot/internal/models"
)

// Evaluator scores recorded ordering conversations. It reads a finished (or
// abandoned) order plus its transcript and produces a Report; it never
// mutates either input. Weights are fractions of the final score and should
// sum to 1.
type Evaluator struct {
	CompletionWeight float64
	SlotWeight       float64
	ClarityWeight    float64
	EfficiencyWeight float64
}

// NewEvaluator returns an evaluator with the default score weights
func NewEvaluator() *Evaluator {
	return &Evaluator{
		CompletionWeight: 0.4,
		SlotWeight:       0.3,
		ClarityWeight:    0.2,
		EfficiencyWeight: 0.1,
	}
}

// baselineTurnsPerItem is the turn cost of a fully smooth single-item
// conversation: order, configure, then walk the checkout questions.
const baselineTurnsPerItem = 8.0

// Evaluate scores one conversation
func (e *Evaluator) Evaluate(o *models.Order, turns []Turn) Report {
	r := Report{
		Turns:         len(turns),
		FallbackTurns: countFallbacks(turns),
		QuestionTurns: countQuestions(turns),
	}
	r.ItemsOrdered, r.ItemsCancelled = countItems(o)
	r.SlotCompleteness = slotCompleteness(o)
	r.Completed = o.Checkout.Confirmed && o.Payment.Method != ""

	if r.Turns > 0 {
		r.FallbackRate = float64(r.FallbackTurns) / float64(r.Turns)
	}
	if r.ItemsOrdered > 0 {
		r.TurnsPerItem = float64(r.Turns) / float64(r.ItemsOrdered)
	}

	r.Score = e.score(r)
	return r
}

// score blends the report's component metrics into one [0, 1] number
func (e *Evaluator) score(r Report) float64 {
	completion := 0.0
	if r.Completed {
		completion = 1.0
	}

	clarity := 1.0 - r.FallbackRate

	// A conversation at or under the baseline turn count is fully efficient;
	// beyond it, efficiency decays toward zero.
	efficiency := 0.0
	if r.TurnsPerItem > 0 {
		efficiency = math.Min(1.0, baselineTurnsPerItem/r.TurnsPerItem)
	}

	score := e.CompletionWeight*completion +
		e.SlotWeight*r.SlotCompleteness +
		e.ClarityWeight*clarity +
		e.EfficiencyWeight*efficiency
	return math.Round(score*100) / 100
}
