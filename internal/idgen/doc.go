// Package idgen centralises run and event identifier generation so tests can
// substitute a deterministic source.
package idgen
