package model

import (
	"fmt"
)

// Source provides information about the origin of a script
type Source struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Script represents a parsed map-styling script: an ordered directive
// sequence.  Directives are applied strictly in file order; the slice order
// is the execution order.
type Script struct {
	// Source provides information about the origin of the script
	Source *Source `json:"source,omitempty" yaml:"source,omitempty"`

	// Name is the script identifier, by default the file name without extension
	Name string `json:"name" yaml:"name"`

	// Directives holds the ordered command sequence
	Directives []*Directive `json:"directives,omitempty" yaml:"directives,omitempty"`
}

// Validate performs a best-effort structural validation of the script.  The
// returned slice is empty when the script is sound; otherwise it contains
// human-readable error descriptions.
func (s *Script) Validate() []error {
	var issues []error
	if len(s.Directives) == 0 {
		return issues
	}
	for i, directive := range s.Directives {
		if directive == nil {
			issues = append(issues, fmt.Errorf("directive %d is nil", i))
			continue
		}
		if directive.Name == "" {
			issues = append(issues, fmt.Errorf("directive %d has empty name (line %d)", i, directive.Line))
		}
	}
	return issues
}
