package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownState is returned when a state is referenced but has no entry in the
// transition system or in the partitioning.
var ErrUnknownState = errors.New("unknown state")

// ErrMissingTarget is returned when a transition points to a state that is not a key of
// the transition system.
var ErrMissingTarget = errors.New("transition target is not a state")

// ErrGraphNotFound is returned when a loader has no graph under the requested name.
var ErrGraphNotFound = errors.New("graph not found")

// ErrResultNotFound is returned when a result ID cannot be found in the store.
var ErrResultNotFound = errors.New("result not found")

// StateError identifies the state that violated a precondition.
// Target is set when the violation is a dangling transition.
type StateError struct {
	State  State
	Target State
	Err    error
}

func (e *StateError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("state %q -> %q: %v", e.State, e.Target, e.Err)
	}
	return fmt.Sprintf("state %q: %v", e.State, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}
