/*
Package card
File: errors.go
Description:
    Errors returned by adventure cards.
*/

package card

import (
	"errors"
	"fmt"
)

// ErrUnknownState is matched by every UnknownStateError.
var ErrUnknownState = errors.New("unknown card state")

// UnknownStateError is returned by Play when the card has no transition for
// its current state. It always means the caller played out of sequence.
type UnknownStateError struct {
	Card  Kind
	State State
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("%s card has no transition from %s", e.Card, e.State)
}

func (e *UnknownStateError) Is(target error) bool {
	return target == ErrUnknownState
}
