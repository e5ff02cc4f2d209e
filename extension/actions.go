package extension

import (
	"sync"

	"github.com/osmkit/mapscript/model/types"
	"github.com/viant/x"
)

// Actions provides the directive handler service registry
type Actions struct {
	types    *Types
	services map[string]types.Service
	mux      sync.RWMutex
}

func (s *Actions) Types() *Types {
	return s.types
}

// Lookup returns a service by name
func (s *Actions) Lookup(name string) types.Service {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.services[name]
}

// Register registers a service
func (s *Actions) Register(service types.Service) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.services[service.Name()] = service
}

// Services returns registered service names
func (s *Actions) Services() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret := make([]string, 0, len(s.services))
	for name := range s.services {
		ret = append(ret, name)
	}
	return ret
}

// NewActions creates a new action service registry
func NewActions(goTypes ...*x.Type) *Actions {
	ret := &Actions{
		types:    NewTypes(),
		services: make(map[string]types.Service),
	}
	for _, t := range goTypes {
		if t != nil {
			ret.types.Register(t)
		}
	}
	return ret
}
