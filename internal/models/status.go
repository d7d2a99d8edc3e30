package models

// ItemStatus represents the configuration lifecycle state of an order item
type ItemStatus string

const (
	StatusPending    ItemStatus = "pending"
	StatusInProgress ItemStatus = "in_progress"
	StatusComplete   ItemStatus = "complete"
	StatusSkipped    ItemStatus = "skipped"
)

// CanTransition reports whether an item may move from one status to another.
// Configuration only advances: an in-progress item never goes back to pending,
// and any item can be skipped at any time.
func CanTransition(from, to ItemStatus) bool {
	if to == StatusSkipped {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusInProgress || to == StatusComplete
	case StatusInProgress:
		return to == StatusComplete
	default:
		return false
	}
}
