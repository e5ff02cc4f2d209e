package extension

import (
	"github.com/viant/x"
)

// Types is a registry of Go types usable as directive handler inputs and
// outputs.  Directive scripts carry no qualified type names, so lookup is by
// plain registered name.
type Types struct {
	x.Registry
}

// Register adds a data type to the registry
func (t *Types) Register(dataType *x.Type) {
	t.Registry.Register(dataType)
}

// Lookup returns a data type from the registry or nil
func (t *Types) Lookup(dataType string) *x.Type {
	return t.Registry.Lookup(dataType)
}

// NewTypes creates a new types
func NewTypes(options ...x.RegistryOption) *Types {
	return &Types{
		Registry: *x.NewRegistry(options...),
	}
}
