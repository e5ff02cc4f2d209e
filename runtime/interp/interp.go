// Package interp implements the directive interpreter: it applies a parsed
// script to a session one directive at a time, in file order.  The
// interpreter itself is stateless between runs; all effects land on the
// session or on external collaborators behind the handler services.
package interp

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/osmkit/mapscript/extension"
	"github.com/osmkit/mapscript/internal/clock"
	"github.com/osmkit/mapscript/model"
	"github.com/osmkit/mapscript/model/types"
	"github.com/osmkit/mapscript/policy"
	"github.com/osmkit/mapscript/progress"
	"github.com/osmkit/mapscript/runtime/session"
	"github.com/osmkit/mapscript/service/event"
	"github.com/osmkit/mapscript/tracing"
	"github.com/viant/structology/conv"
)

// Listener is invoked once a directive completes, regardless of whether it
// returned an error.  Implementations can log, collect metrics or perform
// any other side effects they require.
type Listener func(directive *model.Directive, input, output interface{}, err error)

// Outcome records the result of a single directive
type Outcome struct {
	Position    int         `json:"position"`
	Name        string      `json:"name"`
	Line        int         `json:"line,omitempty"`
	Service     string      `json:"service,omitempty"`
	Method      string      `json:"method,omitempty"`
	Output      interface{} `json:"output,omitempty"`
	Error       string      `json:"error,omitempty"`
	TimeTakenMs int         `json:"timeTakenMs,omitempty"`
}

// Report aggregates a run: one outcome per executed directive and, when the
// run aborted, the directive it failed at
type Report struct {
	RunID      string          `json:"runID"`
	Script     string          `json:"script,omitempty"`
	Outcomes   []*Outcome      `json:"outcomes,omitempty"`
	Failed     *DirectiveError `json:"-"`
	FailedAt   int             `json:"failedAt,omitempty"`
	DurationMs int             `json:"durationMs,omitempty"`
}

// Service is the directive interpreter
type Service struct {
	actions   *extension.Actions
	converter *conv.Converter
	bindings  map[string]*Binding
	events    *event.Service
	listener  Listener
	logger    *slog.Logger
}

// Option customises the interpreter
type Option func(*Service)

// WithListener sets a completion callback invoked after every directive
func WithListener(l Listener) Option {
	return func(s *Service) {
		s.listener = l
	}
}

// Directive lifecycle event types
const (
	EventStarted  = "started"
	EventExecuted = "executed"
	EventFailed   = "failed"
)

// WithEvents attaches an event service publishing directive lifecycle
// events.  Events only flow once a listener consumes them; until then the
// interpreter skips publishing so a run never stalls on a full queue.
func WithEvents(events *event.Service) Option {
	return func(s *Service) {
		s.events = events
	}
}

// WithBinding registers or overrides a directive binding
func WithBinding(name string, binding *Binding) Option {
	return func(s *Service) {
		s.bindings[name] = binding
	}
}

// WithLogger overrides the interpreter logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a new interpreter over the supplied handler registry
func New(actions *extension.Actions, opts ...Option) *Service {
	options := conv.DefaultOptions()
	options.ClonePointerData = true
	options.IgnoreUnmapped = true
	options.AccessUnexported = true
	ret := &Service{
		actions:   actions,
		converter: conv.NewConverter(options),
		bindings:  DefaultBindings(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Run applies the script to the session, directive by directive, aborting at
// the first failure.  The returned report always covers every directive that
// ran, including the failing one.
func (s *Service) Run(ctx context.Context, script *model.Script, sess *session.Session) (*Report, error) {
	started := clock.Now()
	report := &Report{RunID: sess.ID, Script: script.Name, FailedAt: -1}

	ctx = session.WithContext(ctx, sess)
	tracker := progress.FromContext(ctx)
	if tracker == nil {
		tracker = &progress.Progress{RunID: sess.ID, Script: script.Name, StartedAt: started}
		ctx = progress.WithProgress(ctx, tracker)
	}
	tracker.Update(progress.Delta{Total: len(script.Directives)})

	ctx, span := tracing.StartSpan(ctx, "run "+script.Name)
	defer span.End()

	for i, directive := range script.Directives {
		outcome, err := s.execute(ctx, script.Name, i, directive)
		report.Outcomes = append(report.Outcomes, outcome)
		if err != nil {
			tracker.Update(progress.Delta{Failed: 1})
			dErr := newDirectiveError(i, directive.Name, directive.Line, err)
			report.Failed = dErr
			report.FailedAt = i
			report.DurationMs = int(clock.Now().Sub(started).Milliseconds())
			span.SetStatus(dErr)
			s.logger.Error("run aborted", "script", script.Name, "directive", directive.Name, "position", i, "err", err)
			return report, dErr
		}
		tracker.Update(progress.Delta{Completed: 1})
	}
	span.SetStatus(nil)
	report.DurationMs = int(clock.Now().Sub(started).Milliseconds())
	return report, nil
}

func (s *Service) execute(ctx context.Context, script string, position int, directive *model.Directive) (*Outcome, error) {
	outcome := &Outcome{Position: position, Name: directive.Name, Line: directive.Line}
	s.publish(ctx, script, directive, outcome, EventStarted)
	started := clock.Now()
	input, output, err := s.dispatch(ctx, position, directive, outcome)
	outcome.TimeTakenMs = int(clock.Now().Sub(started).Milliseconds())
	outcome.Output = output
	if err != nil {
		outcome.Error = err.Error()
	}
	if s.listener != nil {
		s.listener(directive, input, output, err)
	}
	eventType := EventExecuted
	if err != nil {
		eventType = EventFailed
	}
	s.publish(ctx, script, directive, outcome, eventType)
	return outcome, err
}

func (s *Service) dispatch(ctx context.Context, position int, directive *model.Directive, outcome *Outcome) (interface{}, interface{}, error) {
	binding, ok := s.bindings[directive.Name]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", types.ErrUnknownDirective, directive.Name)
	}
	outcome.Service = binding.Service
	outcome.Method = binding.Method

	if binding.External {
		if allowed := policy.FromContext(ctx).IsAllowed(ctx, directive.Name, directive.Args); !allowed {
			return nil, nil, fmt.Errorf("directive %s blocked by policy", directive.Name)
		}
	}

	handlerService := s.actions.Lookup(binding.Service)
	if handlerService == nil {
		return nil, nil, fmt.Errorf("service %v not found", binding.Service)
	}
	method, err := handlerService.Method(binding.Method)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find method %v for service %v: %w", binding.Method, binding.Service, err)
	}
	signature := handlerService.Methods().Lookup(binding.Method)
	if signature == nil {
		return nil, nil, fmt.Errorf("method %v not declared by service %v", binding.Method, binding.Service)
	}

	input := reflect.New(signature.Input.Elem()).Interface()
	if err := s.converter.Convert(binding.Arguments(directive.Args), input); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", types.ErrMalformedArgument, err)
	}
	output := reflect.New(signature.Output.Elem()).Interface()

	ctx, span := tracing.StartSpan(ctx, directive.Name)
	err = method(ctx, input, output)
	span.SetStatus(err)
	span.End()
	return input, output, err
}

func (s *Service) publish(ctx context.Context, script string, directive *model.Directive, outcome *Outcome, eventType string) {
	if s.events == nil || !event.HasListenerOf[*Outcome](s.events) {
		return
	}
	publisher, pubErr := event.PublisherOf[*Outcome](s.events)
	if pubErr != nil {
		return
	}
	sess, _ := session.FromContext(ctx)
	eCtx := &event.Context{
		Script:      script,
		Directive:   directive.Name,
		Line:        directive.Line,
		Position:    outcome.Position,
		Service:     outcome.Service,
		Method:      outcome.Method,
		EventType:   eventType,
		TimeTakenMs: outcome.TimeTakenMs,
	}
	if sess != nil {
		eCtx.RunID = sess.ID
	}
	if publishErr := publisher.Publish(ctx, event.NewEvent(eCtx, outcome)); publishErr != nil {
		s.logger.Warn("failed to publish directive event", "err", publishErr)
	}
}
