package evaluation

import (
	"strings"

	"bagelbot/internal/models"
	"bagelbot/internal/slots"
)

// unclearMarkers are reply fragments that indicate the engine could not act
// on a turn. The evaluator works on transcripts alone, so detection is
// textual by design of the input, not of the engine.
var unclearMarkers = []string{
	"didn't quite catch",
	"could you rephrase",
}

func isFallbackReply(reply string) bool {
	lower := strings.ToLower(reply)
	for _, m := range unclearMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// countFallbacks returns how many replies failed to act on the user's turn
func countFallbacks(turns []Turn) int {
	n := 0
	for _, t := range turns {
		if isFallbackReply(t.Reply) {
			n++
		}
	}
	return n
}

// countQuestions returns how many replies asked the customer something.
// Questions are the normal mechanics of slot filling, so this is reported
// but not penalized.
func countQuestions(turns []Turn) int {
	n := 0
	for _, t := range turns {
		if strings.Contains(t.Reply, "?") {
			n++
		}
	}
	return n
}

// slotCompleteness is the fraction of applicable checkout slots the
// conversation managed to fill.
func slotCompleteness(o *models.Order) float64 {
	progress := slots.Progress(o)
	if len(progress) == 0 {
		return 0
	}
	filled := 0
	for _, done := range progress {
		if done {
			filled++
		}
	}
	return float64(filled) / float64(len(progress))
}

// countItems splits the cart into ordered (active) and cancelled lines
func countItems(o *models.Order) (ordered, cancelled int) {
	for i := range o.Items {
		if o.Items[i].Status == models.StatusSkipped {
			cancelled++
		} else {
			ordered++
		}
	}
	return ordered, cancelled
}
