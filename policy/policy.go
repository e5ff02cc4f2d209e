// Package policy provides an optional gate for directives that invoke
// external programs.  It is attached to a run via context; a nil *Policy
// keeps the default "auto" behaviour at zero cost.
package policy

import (
	"context"
	"strings"
)

// Execution modes recognised by the interpreter.
const (
	ModeAsk  = "ask"  // ask before every external invocation
	ModeAuto = "auto" // execute automatically (default)
	ModeDeny = "deny" // block external invocations
)

// AskFunc is invoked when Mode==ask.  Returning true approves the directive,
// false rejects it.  Implementations may mutate the policy, for example
// switching to ModeAuto after the first approval.
type AskFunc func(
	ctx context.Context,
	directive string, // directive name, e.g. run-script
	args map[string]interface{}, // directive arguments - may be nil
	p *Policy,
) bool

// Policy represents the approval settings for the current run.
//
//   - Mode controls the high-level behaviour (ask / auto / deny).
//   - AllowList, BlockList filter by directive name regardless of Mode.
//   - Ask is only used when Mode==ask.
type Policy struct {
	Mode      string
	AllowList []string
	BlockList []string
	Ask       AskFunc
}

// Config represents the declarative, serialisable part of a Policy.
type Config struct {
	Mode      string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	AllowList []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockList []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{
		Mode:      p.Mode,
		AllowList: append([]string(nil), p.AllowList...),
		BlockList: append([]string(nil), p.BlockList...),
	}
}

// FromConfig converts a stored Config back to a runtime Policy (without
// AskFunc).
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{
		Mode:      c.Mode,
		AllowList: append([]string(nil), c.AllowList...),
		BlockList: append([]string(nil), c.BlockList...),
	}
}

// IsAllowed decides whether the directive may invoke its external program.
func (p *Policy) IsAllowed(ctx context.Context, directive string, args map[string]interface{}) bool {
	if p == nil {
		return true
	}
	if matches(p.BlockList, directive) {
		return false
	}
	if len(p.AllowList) > 0 && !matches(p.AllowList, directive) {
		return false
	}
	switch strings.ToLower(p.Mode) {
	case ModeDeny:
		return false
	case ModeAsk:
		if p.Ask == nil {
			return false
		}
		return p.Ask(ctx, directive, args, p)
	default:
		return true
	}
}

func matches(list []string, directive string) bool {
	for _, item := range list {
		if strings.EqualFold(item, directive) {
			return true
		}
	}
	return false
}

type policyContextKey string

// ContextKey carries the policy through a run
var ContextKey = policyContextKey("mapscript-policy")

// WithPolicy returns a context carrying the policy
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	return context.WithValue(ctx, ContextKey, p)
}

// FromContext retrieves the policy from the context, nil when unset
func FromContext(ctx context.Context) *Policy {
	p, _ := ctx.Value(ContextKey).(*Policy)
	return p
}
