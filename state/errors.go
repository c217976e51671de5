package state

import "errors"

// ErrActionPanicked indicates an action that panicked and was settled as rejected
var ErrActionPanicked = errors.New("action panicked")
