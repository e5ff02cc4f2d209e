// Package script loads directive scripts from any afs-addressable location
// (file, embed, s3, mem) and caches the parsed form.
package script

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/osmkit/mapscript/model"
	"github.com/osmkit/mapscript/parser"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// DefaultExtension is appended to script URLs that carry no extension
const DefaultExtension = ".mscript"

// Service loads, parses and caches scripts
type Service struct {
	fs        afs.Service
	baseURL   string
	fsOptions []storage.Option
	mux       sync.RWMutex
	cache     map[string]*model.Script
}

// New creates a script dao; baseURL may be empty, in which case URLs are
// used as given
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	return &Service{
		fs:        fs,
		baseURL:   baseURL,
		fsOptions: options,
		cache:     make(map[string]*model.Script),
	}
}

// Load returns the script at URL, parsing it on first use
func (s *Service) Load(ctx context.Context, URL string) (*model.Script, error) {
	URL = s.normalizeURL(URL)
	s.mux.RLock()
	cached, ok := s.cache[URL]
	s.mux.RUnlock()
	if ok {
		return cached, nil
	}
	return s.Refresh(ctx, URL)
}

// Refresh re-reads the script at URL bypassing the cache
func (s *Service) Refresh(ctx context.Context, URL string) (*model.Script, error) {
	URL = s.normalizeURL(URL)
	data, err := s.fs.DownloadWithURL(ctx, URL, s.fsOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load script from %s: %w", URL, err)
	}
	parsed, err := s.decode(URL, data)
	if err != nil {
		return nil, err
	}
	s.mux.Lock()
	s.cache[URL] = parsed
	s.mux.Unlock()
	return parsed, nil
}

// Upsert stores the script source at URL and caches the parsed form
func (s *Service) Upsert(ctx context.Context, URL string, data []byte) (*model.Script, error) {
	URL = s.normalizeURL(URL)
	parsed, err := s.decode(URL, data)
	if err != nil {
		return nil, err
	}
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("failed to store script at %s: %w", URL, err)
	}
	s.mux.Lock()
	s.cache[URL] = parsed
	s.mux.Unlock()
	return parsed, nil
}

// DecodeText parses script source without touching storage or the cache
func (s *Service) DecodeText(encoded []byte) (*model.Script, error) {
	return s.decode("", encoded)
}

// Evict removes the cached script for URL, if any
func (s *Service) Evict(URL string) {
	URL = s.normalizeURL(URL)
	s.mux.Lock()
	delete(s.cache, URL)
	s.mux.Unlock()
}

func (s *Service) decode(URL string, data []byte) (*model.Script, error) {
	expanded := expandEnvExpr(string(data))
	parsed, err := parser.Parse([]byte(expanded))
	if err != nil {
		if URL != "" {
			return nil, fmt.Errorf("failed to parse script %s: %w", URL, err)
		}
		return nil, err
	}
	parsed.Source = &model.Source{URL: URL}
	parsed.Name = scriptName(URL)
	if issues := parsed.Validate(); len(issues) > 0 {
		return nil, issues[0]
	}
	return parsed, nil
}

func (s *Service) normalizeURL(URL string) string {
	if filepath.Ext(URL) == "" {
		URL += DefaultExtension
	}
	if s.baseURL == "" || strings.Contains(URL, "://") || strings.HasPrefix(URL, "/") {
		return URL
	}
	return url.Join(s.baseURL, URL)
}

// scriptName extracts the script name from its URL (file name without
// extension)
func scriptName(URL string) string {
	if URL == "" {
		return ""
	}
	base := filepath.Base(URL)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
