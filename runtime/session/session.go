package session

import (
	"path"
	"strings"
	"sync"

	"github.com/osmkit/mapscript/model/geo"
)

// Layer represents a data source loaded into the session.  Layers are kept
// in load order; loading the same location twice yields two layers.
type Layer struct {
	Location string
	Bounds   *geo.BoundingBox
}

// Session represents the mutable rendering-session state directives act on:
// working directory, geographic bounds, loaded data layers and named
// settings.  It is created per run and never shared between runs.
type Session struct {
	ID string

	workDir      string
	scriptDir    string
	relativeMode bool

	bounds   *geo.BoundingBox
	layers   []*Layer
	settings map[string]interface{}

	mu        sync.RWMutex
	listeners []SettingListener
}

// SettingListener is invoked every time SetSetting overwrites an existing
// key or inserts a new one.
type SettingListener func(s *Session, name string, oldValue, newValue interface{})

// RegisterListeners attaches callbacks invoked on every SetSetting.  The
// call is made synchronously after the session mutex is released; listeners
// must not call back into SetSetting from another goroutine mid-run.
func (s *Session) RegisterListeners(fn ...SettingListener) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn...)
}

// SetSetting adds or updates a named setting; last write wins
func (s *Session) SetSetting(name string, value interface{}) {
	s.mu.Lock()
	old := s.settings[name]
	s.settings[name] = value
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(s, name, old, value)
	}
}

// Setting retrieves a named setting
func (s *Session) Setting(name string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.settings[name]
	return value, ok
}

// Settings returns a copy of all settings
func (s *Session) Settings() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := make(map[string]interface{}, len(s.settings))
	for k, v := range s.settings {
		ret[k] = v
	}
	return ret
}

// WorkDir returns the current working directory
func (s *Session) WorkDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workDir
}

// ScriptDir returns the directory of the running script
func (s *Session) ScriptDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scriptDir
}

// UseScriptDir switches the session into relative-path mode: subsequent
// relative paths resolve against the script's own directory
func (s *Session) UseScriptDir() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relativeMode = true
}

// RelativeMode reports whether relative-path mode is active
func (s *Session) RelativeMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.relativeMode
}

// ChangeDir appends a relative segment to the working directory
func (s *Session) ChangeDir(segment string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workDir = joinPath(s.workDir, segment)
	return s.workDir
}

// ResolveDir returns the working directory a ChangeDir with the given
// segment would produce, without committing it.
func (s *Session) ResolveDir(segment string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return joinPath(s.workDir, segment)
}

// SetWorkDir replaces the working directory
func (s *Session) SetWorkDir(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workDir = dir
}

// Resolve resolves a path argument against the session: absolute paths and
// URLs pass through, relative paths resolve against the script directory in
// relative-path mode, otherwise against the working directory.
func (s *Session) Resolve(location string) string {
	if location == "" {
		return location
	}
	if strings.Contains(location, "://") || strings.HasPrefix(location, "/") {
		return location
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	base := s.workDir
	if s.relativeMode && s.scriptDir != "" {
		base = s.scriptDir
	}
	return joinPath(base, location)
}

// AddLayer appends a loaded data layer; duplicates accumulate
func (s *Session) AddLayer(layer *Layer) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layers = append(s.layers, layer)
	return len(s.layers)
}

// Layer returns the layer with the given 1-based source index
func (s *Session) Layer(index int) (*Layer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 1 || index > len(s.layers) {
		return nil, false
	}
	return s.layers[index-1], true
}

// Layers returns a copy of the loaded-layer list in load order
func (s *Session) Layers() []*Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Layer(nil), s.layers...)
}

// SetBounds sets the active geographic bounds
func (s *Session) SetBounds(bounds *geo.BoundingBox) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = bounds
}

// Bounds returns the active geographic bounds, nil when unset
func (s *Session) Bounds() *geo.BoundingBox {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bounds
}

func joinPath(base, segment string) string {
	if base == "" {
		return path.Clean(segment)
	}
	return path.Clean(path.Join(base, segment))
}

// New creates a new session
func New(id string, opts ...Option) *Session {
	ret := &Session{
		ID:       id,
		settings: make(map[string]interface{}),
	}
	for _, o := range opts {
		o(ret)
	}
	return ret
}
