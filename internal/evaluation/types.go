package evaluation

// Turn is one recorded exchange of an ordering conversation: what the
// customer said and what the engine replied.
type Turn struct {
	UserText string `json:"user_text"`
	Reply    string `json:"reply"`
}

// Report scores a captured conversation. All rates are in [0, 1]; Score is
// the weighted blend used for ranking sessions.
type Report struct {
	Turns            int     `json:"turns"`
	ItemsOrdered     int     `json:"items_ordered"`
	ItemsCancelled   int     `json:"items_cancelled"`
	Completed        bool    `json:"completed"`
	FallbackTurns    int     `json:"fallback_turns"`
	QuestionTurns    int     `json:"question_turns"`
	FallbackRate     float64 `json:"fallback_rate"`
	SlotCompleteness float64 `json:"slot_completeness"`
	TurnsPerItem     float64 `json:"turns_per_item"`
	Score            float64 `json:"score"`
}
