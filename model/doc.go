// Package model defines the declarative representation of a map-styling
// script: an ordered list of directives, each a name plus key=value
// arguments.  The model is produced by the parser and consumed by the
// interpreter; it carries no execution state.
package model
