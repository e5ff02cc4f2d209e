// Package progress provides a lightweight tracker that keeps aggregated
// directive counters for a single script run.  The tracker lives in the run
// context, so every component receiving the context can update the counters
// without a global registry.
package progress

import (
	"context"
	"sync"
	"time"
)

// Delta represents an incremental counter change emitted by the interpreter.
type Delta struct {
	Total     int
	Completed int
	Failed    int
}

// Progress keeps aggregated directive counters for a run.  It is safe for
// concurrent use.
type Progress struct {
	RunID     string
	Script    string
	StartedAt time.Time

	TotalDirectives     int
	CompletedDirectives int
	FailedDirectives    int

	sync.Mutex
	onChange func(Progress)
}

// Update applies the supplied delta to the tracker.  If an onChange callback
// has been registered it is invoked with a copy of the updated tracker
// outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.Lock()
	p.TotalDirectives += d.Total
	p.CompletedDirectives += d.Completed
	p.FailedDirectives += d.Failed
	snapshot := p.snapshot()
	callback := p.onChange
	p.Unlock()

	if callback != nil {
		callback(snapshot)
	}
}

// OnChange registers a callback invoked after every update.
func (p *Progress) OnChange(fn func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = fn
	p.Unlock()
}

// Snapshot returns a consistent copy of the counters.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.snapshot()
}

func (p *Progress) snapshot() Progress {
	return Progress{
		RunID:               p.RunID,
		Script:              p.Script,
		StartedAt:           p.StartedAt,
		TotalDirectives:     p.TotalDirectives,
		CompletedDirectives: p.CompletedDirectives,
		FailedDirectives:    p.FailedDirectives,
	}
}

type progressContextKey string

// ContextKey carries the tracker through a run
var ContextKey = progressContextKey("mapscript-progress")

// WithProgress returns a context carrying the tracker
func WithProgress(ctx context.Context, p *Progress) context.Context {
	return context.WithValue(ctx, ContextKey, p)
}

// FromContext retrieves the tracker from the context, nil when unset
func FromContext(ctx context.Context) *Progress {
	p, _ := ctx.Value(ContextKey).(*Progress)
	return p
}
