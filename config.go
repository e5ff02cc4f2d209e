package mapscript

import (
	"context"
	"fmt"

	"github.com/osmkit/mapscript/policy"
	"github.com/osmkit/mapscript/service/messaging"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the interpreter configuration.
// It can be populated from YAML or JSON.  The zero-value is useful – all
// nested fields inherit their package defaults.
type Config struct {
	Scripts ScriptsConfig  `json:"scripts" yaml:"scripts"`
	Events  EventsConfig   `json:"events" yaml:"events"`
	Tracing TracingConfig  `json:"tracing" yaml:"tracing"`
	Policy  *policy.Config `json:"policy,omitempty" yaml:"policy,omitempty"`
}

// ScriptsConfig configures the script loader
type ScriptsConfig struct {
	// BaseURL is prepended to relative script locations
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
}

// EventsConfig configures the per-directive event queue
type EventsConfig struct {
	Vendor string `json:"vendor" yaml:"vendor"`
	// QueueURL is required for the fs vendor
	QueueURL string `json:"queueURL,omitempty" yaml:"queueURL,omitempty"`
}

// TracingConfig configures OpenTelemetry trace export
type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	Service    string `json:"service,omitempty" yaml:"service,omitempty"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// DefaultConfig returns a Config mirroring the constructors' defaults.
// Callers may modify the returned struct before passing it to NewFromConfig.
func DefaultConfig() *Config {
	return &Config{
		Events: EventsConfig{
			Vendor: string(messaging.VendorMemory),
		},
		Tracing: TracingConfig{
			Service: "mapscript",
		},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch messaging.Vendor(c.Events.Vendor) {
	case "", messaging.VendorMemory:
	case messaging.VendorFS:
		if c.Events.QueueURL == "" {
			return fmt.Errorf("events.queueURL is required for the fs vendor")
		}
	default:
		return fmt.Errorf("unsupported events.vendor: %s", c.Events.Vendor)
	}
	return nil
}

// LoadConfig reads a YAML config from any afs-addressable URL
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", URL, err)
	}
	config := DefaultConfig()
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", URL, err)
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
