package filter

import (
	"errors"
	"fmt"
)

// ErrUnknownPreset is returned for a preset name that was never registered
var ErrUnknownPreset = errors.New("unknown filter preset")

// CompilationError indicates a filter expression could not be compiled
type CompilationError struct {
	Expression string
	Reason     string
	Err        error
}

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compilation error in '%s': %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}
