package game

import "fmt"

// ValidationError reports a deck that cannot start a practice session.
type ValidationError struct {
	Size int
	Want int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("deck has %d cards, need exactly %d", e.Size, e.Want)
}
