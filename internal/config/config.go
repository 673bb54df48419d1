package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"autocomplete/internal/domain"
	"autocomplete/internal/engine"
	"autocomplete/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version    int           `toml:"version"`
	DataFile   string        `toml:"data_file,omitempty"` // TOML option set; empty uses the built-in one
	LogFile    string        `toml:"log_file"`
	DebounceMS int           `toml:"debounce_ms"`
	Fields     []FieldConfig `toml:"fields"`
}

// FieldConfig describes one autocomplete field of the demo
type FieldConfig struct {
	Label       string   `toml:"label"`
	Description string   `toml:"description,omitempty"`
	Placeholder string   `toml:"placeholder,omitempty"`
	SearchType  string   `toml:"search_type"`
	Multiple    bool     `toml:"multiple"`
	Disabled    bool     `toml:"disabled"`
	Loading     bool     `toml:"loading"`
	Filter      string   `toml:"filter,omitempty"`
	Width       int      `toml:"width,omitempty"`
	Value       []string `toml:"value,omitempty"` // labels of initially selected options
}

// Debounce returns the async filtering quiet period
func (c *Config) Debounce() time.Duration {
	if c.DebounceMS <= 0 {
		return engine.DefaultDebounce
	}
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Validate checks the settings the fields are built from
func (c *Config) Validate() error {
	if len(c.Fields) == 0 {
		return errors.New("no fields configured")
	}
	for i, f := range c.Fields {
		if _, err := engine.ParseSearchType(f.SearchType); err != nil {
			return fmt.Errorf("field %d (%s): %w", i, f.Label, err)
		}
		if _, err := engine.FilterByName(f.Filter); err != nil {
			return fmt.Errorf("field %d (%s): %w", i, f.Label, err)
		}
	}
	return nil
}

// ResolveValue maps configured labels onto options. Labels that name no
// option are skipped.
func (f FieldConfig) ResolveValue(options []domain.Option) []domain.Option {
	var value []domain.Option
	for _, label := range f.Value {
		for _, opt := range options {
			if opt.Label == label {
				value = append(value, opt)
				break
			}
		}
	}
	return value
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "autocomplete", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service bound to a specific file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// WithBus attaches an event bus to a config service
func WithBus(svc ConfigService, bus eventbus.EventBus) ConfigService {
	if cs, ok := svc.(*configService); ok {
		cs.bus = bus
	}
	return svc
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publish(eventbus.ConfigLoadedEvent{Path: "", Fields: len(cfg.Fields)})
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	cs.publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, Fields: len(cfg.Fields)})
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	cs.publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Fields = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// A file without fields still gets the demo pair
	if len(cfg.Fields) == 0 {
		cfg.Fields = DefaultFields()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (cs *configService) publish(e eventbus.DomainEvent) {
	if cs.bus != nil {
		cs.bus.Publish(e)
	}
}

// DefaultFields returns the sync and async demo fields
func DefaultFields() []FieldConfig {
	return []FieldConfig{
		{
			Label:       "Sync Search",
			Description: "This search bar uses sync search.",
			Placeholder: "Search for fruits and vegetables...",
			SearchType:  string(engine.SearchSync),
			Multiple:    true,
			Filter:      engine.FilterSubstring,
		},
		{
			Label:       "Async Search",
			Description: "This search bar uses async search.",
			Placeholder: "Search for fruits and vegetables...",
			SearchType:  string(engine.SearchAsync),
			Multiple:    true,
			Filter:      engine.FilterSubstring,
		},
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:    1,
		LogFile:    "autocomplete.log",
		DebounceMS: int(engine.DefaultDebounce / time.Millisecond),
		Fields:     DefaultFields(),
	}
}
