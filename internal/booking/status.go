package booking

import "fmt"

const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// transitions is the whole lifecycle: completed and cancelled are terminal.
var transitions = map[string][]string{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ValidStatus reports whether s is one of the five known statuses.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether current -> next is an allowed move.
func CanTransition(current, next string) bool {
	for _, allowed := range transitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CheckTransition returns an error naming both states when the move is not
// allowed, for diagnostics in API responses.
func CheckTransition(current, next string) error {
	if !CanTransition(current, next) {
		return fmt.Errorf("booking: cannot transition from %s to %s", current, next)
	}
	return nil
}
