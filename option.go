package mapscript

import (
	"io"

	"github.com/osmkit/mapscript/dao/script"
	"github.com/osmkit/mapscript/model/types"
	"github.com/osmkit/mapscript/policy"
	"github.com/osmkit/mapscript/runtime/interp"
	aexec "github.com/osmkit/mapscript/service/action/system/exec"
	"github.com/osmkit/mapscript/service/event"
	"github.com/osmkit/mapscript/tracing"
	"github.com/viant/afs/storage"
	"github.com/viant/x"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the mapscript service
type Option func(s *Service)

// WithExtensionTypes sets the extension types
func WithExtensionTypes(types ...*x.Type) Option {
	return func(s *Service) {
		s.extensionTypes = types
	}
}

// WithExtensionServices sets custom directive handler services
func WithExtensionServices(services ...types.Service) Option {
	return func(s *Service) {
		s.extensionServices = services
	}
}

// WithEventService sets the event service
func WithEventService(service *event.Service) Option {
	return func(s *Service) {
		s.eventService = service
	}
}

// WithScriptDAO sets the script loader
func WithScriptDAO(dao *script.Service) Option {
	return func(s *Service) {
		s.scriptDAO = dao
	}
}

// WithScriptBaseURL sets the base URL relative script locations resolve
// against
func WithScriptBaseURL(url string) Option {
	return func(s *Service) {
		s.scriptBaseURL = url
	}
}

// WithScriptFsOptions sets script loader file system options (e.g. an
// embedded file system)
func WithScriptFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.scriptFsOptions = options
	}
}

// WithPolicy sets the execution policy applied to directives that invoke
// external programs
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithInterpreterOptions lets the caller supply additional options passed to
// interp.New (e.g. a completion listener).
func WithInterpreterOptions(opts ...interp.Option) Option {
	return func(s *Service) {
		s.interpreterOptions = append(s.interpreterOptions, opts...)
	}
}

// WithExecOptions lets the caller supply options passed to the system/exec
// service (e.g. a custom runner factory).
func WithExecOptions(opts ...aexec.Option) Option {
	return func(s *Service) {
		s.execOptions = append(s.execOptions, opts...)
	}
}

// WithPrinterWriter redirects log directive output
func WithPrinterWriter(writer io.Writer) Option {
	return func(s *Service) {
		s.printerWriter = writer
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file path. The function is
// safe to call multiple times – the first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter. This enables
// integrations with exporters other than the built-in stdout exporter, for example OTLP, Jaeger or
// Zipkin. The function is safe to call multiple times – the first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
