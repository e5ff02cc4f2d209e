package types

import (
	"errors"
	"fmt"
)

// Failure taxonomy for a script run.  All are fatal: the run aborts at the
// first directive whose handler returns an error wrapping one of these.
var (
	// ErrUnknownDirective - a directive name has no registered handler
	ErrUnknownDirective = errors.New("unknown directive")
	// ErrMalformedArgument - an argument cannot be parsed into the handler input
	ErrMalformedArgument = errors.New("malformed argument")
	// ErrPathResolution - a referenced file or directory does not exist
	ErrPathResolution = errors.New("path not found")
	// ErrExternalInvocation - an invoked external program failed or is missing
	ErrExternalInvocation = errors.New("external invocation failed")
)

func NewMethodNotFoundError(name string) error {
	return fmt.Errorf("method %v not found", name)
}

func NewInvalidInputError(in interface{}) error {
	return fmt.Errorf("invalid input %T", in)
}

func NewInvalidOutputError(in interface{}) error {
	return fmt.Errorf("invalid output %T", in)
}
