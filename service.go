package mapscript

import (
	"io"

	"github.com/osmkit/mapscript/dao/script"
	"github.com/osmkit/mapscript/extension"
	"github.com/osmkit/mapscript/model/types"
	"github.com/osmkit/mapscript/policy"
	"github.com/osmkit/mapscript/runtime/interp"
	"github.com/osmkit/mapscript/service/action/layers"
	"github.com/osmkit/mapscript/service/action/nav"
	"github.com/osmkit/mapscript/service/action/pause"
	"github.com/osmkit/mapscript/service/action/printer"
	"github.com/osmkit/mapscript/service/action/settings"
	aexec "github.com/osmkit/mapscript/service/action/system/exec"
	astorage "github.com/osmkit/mapscript/service/action/system/storage"
	"github.com/osmkit/mapscript/service/event"
	"github.com/osmkit/mapscript/service/messaging"
	"github.com/osmkit/mapscript/service/messaging/fs"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/x"
)

// Service is the high-level mapscript façade wiring the script loader, the
// directive interpreter and the built-in handler services together.
type Service struct {
	runtime            *Runtime
	scriptDAO          *script.Service
	actions            *extension.Actions
	extensionTypes     []*x.Type
	extensionServices  []types.Service
	eventService       *event.Service
	interpreterOptions []interp.Option
	execOptions        []aexec.Option
	printerWriter      io.Writer
	policy             *policy.Policy
	scriptBaseURL      string
	scriptFsOptions    []storage.Option
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	s.actions = extension.NewActions(s.extensionTypes...)
	s.actions.Register(nav.New())
	s.actions.Register(layers.New())
	s.actions.Register(aexec.New(s.execOptions...))
	s.actions.Register(astorage.New())
	s.actions.Register(pause.New())
	s.actions.Register(settings.New())
	if s.printerWriter != nil {
		s.actions.Register(printer.NewWithWriter(s.printerWriter))
	} else {
		s.actions.Register(printer.New())
	}
	for _, service := range s.extensionServices {
		s.actions.Register(service)
	}
	interpreterOptions := append([]interp.Option{interp.WithEvents(s.eventService)}, s.interpreterOptions...)
	s.runtime = &Runtime{
		scriptDAO:   s.scriptDAO,
		interpreter: interp.New(s.actions, interpreterOptions...),
		policy:      s.policy,
	}
}

func (s *Service) ensureBaseSetup() {
	if s.scriptDAO == nil {
		s.scriptDAO = script.New(afs.New(), s.scriptBaseURL, s.scriptFsOptions...)
	}
	if s.eventService == nil {
		s.eventService, _ = event.New(messaging.VendorMemory)
	}
}

// NewFromConfig builds a service from a serialisable configuration
func NewFromConfig(config *Config, options ...Option) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	var configured []Option
	if config.Scripts.BaseURL != "" {
		configured = append(configured, WithScriptBaseURL(config.Scripts.BaseURL))
	}
	if messaging.Vendor(config.Events.Vendor) == messaging.VendorFS {
		eventService, err := event.New(messaging.VendorFS,
			event.WithNewFsQueueConfig(func(name string) fs.Config {
				queueConfig := fs.DefaultConfig()
				queueConfig.BaseURL = url.Join(config.Events.QueueURL, name)
				return queueConfig
			}))
		if err != nil {
			return nil, err
		}
		configured = append(configured, WithEventService(eventService))
	}
	if config.Policy != nil {
		configured = append(configured, WithPolicy(policy.FromConfig(config.Policy)))
	}
	if config.Tracing.Enabled {
		configured = append(configured, WithTracing(config.Tracing.Service, config.Tracing.Version, config.Tracing.OutputFile))
	}
	return New(append(configured, options...)...), nil
}

// RegisterExtensionTypes registers go types used by custom handler inputs
func (s *Service) RegisterExtensionTypes(types ...*x.Type) {
	for i := range types {
		s.actions.Types().Register(types[i])
	}
}

// RegisterExtensionServices registers custom directive handler services
func (s *Service) RegisterExtensionServices(services ...types.Service) {
	for i := range services {
		s.actions.Register(services[i])
	}
}

// Runtime returns the script runtime
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Events returns the per-directive event service
func (s *Service) Events() *event.Service {
	return s.eventService
}

// New creates a mapscript service with the supplied options
func New(options ...Option) *Service {
	ret := &Service{}
	ret.init(options)
	return ret
}
