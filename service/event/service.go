package event

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/osmkit/mapscript/service/messaging"
	"github.com/osmkit/mapscript/service/messaging/fs"
	"github.com/osmkit/mapscript/service/messaging/memory"
	"github.com/viant/afs"
)

// Service fans typed events out over the configured queue vendor
type Service struct {
	typedPublishers   map[reflect.Type]any
	typedListener     map[reflect.Type]any
	mux               *sync.RWMutex
	queueVendor       messaging.Vendor
	fsNewQueueConfig  func(name string) fs.Config
	memNewQueueConfig func(name string) memory.Config
}

func New(queueVendor messaging.Vendor, opts ...Option) (*Service, error) {
	ret := &Service{
		queueVendor:     queueVendor,
		typedPublishers: make(map[reflect.Type]any),
		typedListener:   make(map[reflect.Type]any),
		mux:             &sync.RWMutex{},
	}
	for _, opt := range opts {
		opt(ret)
	}

	switch queueVendor {
	case messaging.VendorFS:
		if ret.fsNewQueueConfig == nil {
			return nil, fmt.Errorf("fs queue vendor requires fsNewQueueConfig")
		}
	case messaging.VendorMemory:
		if ret.memNewQueueConfig == nil {
			ret.memNewQueueConfig = func(string) memory.Config { return memory.DefaultConfig() }
		}
	default:
		return nil, fmt.Errorf("unsupported queue vendor: %s", queueVendor)
	}
	return ret, nil
}

func QueueOf[T any](s *Service, name string) (messaging.Queue[T], error) {
	switch s.queueVendor {
	case messaging.VendorFS:
		return fs.NewQueue[T](afs.New(), s.fsNewQueueConfig(name))
	case messaging.VendorMemory:
		return memory.NewQueue[T](s.memNewQueueConfig(name)), nil
	}
	return nil, fmt.Errorf("unsupported queue vendor: %s", s.queueVendor)
}

func keyOf[T any]() reflect.Type {
	var t T
	rType := reflect.TypeOf(t)
	if rType != nil && rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	if rType == nil {
		rType = reflect.TypeOf((*T)(nil)).Elem()
	}
	return rType
}

// SetListenerOf attaches a handler consuming events of type T
func SetListenerOf[T any](s *Service, handler func(*Event[T])) error {
	key := keyOf[T]()
	s.mux.RLock()
	existing, ok := s.typedListener[key]
	s.mux.RUnlock()
	if ok {
		existing.(*Listener[T]).Stop()
	}
	publisher, err := PublisherOf[T](s)
	if err != nil {
		return err
	}
	listener := NewListener[T](publisher, handler)
	s.mux.Lock()
	s.typedListener[key] = listener
	listener.Start()
	s.mux.Unlock()
	return nil
}

// HasListenerOf reports whether a listener currently consumes events of
// type T.  Publishers of fire-and-forget events should check it before
// publishing so unconsumed events do not pile up in the queue.
func HasListenerOf[T any](s *Service) bool {
	key := keyOf[T]()
	s.mux.RLock()
	defer s.mux.RUnlock()
	_, ok := s.typedListener[key]
	return ok
}

// PublisherOf returns a publisher for the provided type
func PublisherOf[T any](s *Service) (*Publisher[T], error) {
	key := keyOf[T]()
	s.mux.RLock()
	ret, ok := s.typedPublishers[key]
	s.mux.RUnlock()
	if !ok {
		queue, err := QueueOf[Event[T]](s, key.String())
		if err != nil {
			return nil, err
		}
		publisher := NewPublisher[T](queue)
		s.mux.Lock()
		s.typedPublishers[key] = publisher
		s.mux.Unlock()
		return publisher, nil
	}
	return ret.(*Publisher[T]), nil
}
