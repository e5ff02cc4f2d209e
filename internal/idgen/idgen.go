package idgen

import "github.com/google/uuid"

// NewFunc mints run identifiers.  Tests replace it to get stable IDs.
var NewFunc = func() string { return uuid.New().String() }

// New returns a fresh identifier via NewFunc.
func New() string { return NewFunc() }
