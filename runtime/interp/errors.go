package interp

import (
	"fmt"
)

// DirectiveError reports the directive at which a run failed.  Position is
// the zero-based index in the executed sequence; earlier directives remain
// applied - there is no rollback.
type DirectiveError struct {
	Position int
	Name     string
	Line     int
	Err      error
}

func (e *DirectiveError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("directive %d (%s) at line %d: %v", e.Position, e.Name, e.Line, e.Err)
	}
	return fmt.Sprintf("directive %d (%s): %v", e.Position, e.Name, e.Err)
}

func (e *DirectiveError) Unwrap() error {
	return e.Err
}

func newDirectiveError(position int, name string, line int, err error) *DirectiveError {
	return &DirectiveError{Position: position, Name: name, Line: line, Err: err}
}
