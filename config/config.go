// Package config defines the navtree library configuration: send-queue
// resume timing, run-loop sizing, event streaming, and state store selection.
// Configuration loads from JSON or YAML files and validates before use.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeroxpunk/navtree/errors"
)

// Store backend constants
const (
	StoreMemory = "memory" // In-process only, lost on restart
	StoreSQLite = "sqlite" // Single-file durable store
)

// Config represents the complete navtree configuration.
type Config struct {
	Navigation NavigationConfig `json:"navigation" yaml:"navigation"`
	RunLoop    RunLoopConfig    `json:"run_loop" yaml:"run_loop"`
	Events     EventsConfig     `json:"events" yaml:"events"`
	Store      StoreConfig      `json:"store" yaml:"store"`
	LogLevel   string           `json:"log_level" yaml:"log_level"`
}

// NavigationConfig controls send-queue behavior.
type NavigationConfig struct {
	// ResumeDelayMillis is the delay applied by the "auto" resume decision,
	// giving the embedding UI time to settle between queue steps.
	ResumeDelayMillis int `json:"resume_delay_millis" yaml:"resume_delay_millis"`
}

// ResumeDelay returns the auto-resume delay as a duration.
func (nc NavigationConfig) ResumeDelay() time.Duration {
	return time.Duration(nc.ResumeDelayMillis) * time.Millisecond
}

// RunLoopConfig controls the serial executor.
type RunLoopConfig struct {
	QueueSize int `json:"queue_size" yaml:"queue_size"`
}

// EventsConfig controls the optional NATS navigation event stream.
type EventsConfig struct {
	Enabled       bool    `json:"enabled" yaml:"enabled"`
	SubjectPrefix string  `json:"subject_prefix" yaml:"subject_prefix"`
	RatePerSecond float64 `json:"rate_per_second" yaml:"rate_per_second"`
	Burst         int     `json:"burst" yaml:"burst"`
}

// StoreConfig selects the persisted-state backend.
type StoreConfig struct {
	Backend string `json:"backend" yaml:"backend"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Navigation: NavigationConfig{ResumeDelayMillis: 700},
		RunLoop:    RunLoopConfig{QueueSize: 256},
		Events: EventsConfig{
			Enabled:       false,
			SubjectPrefix: "nav",
			RatePerSecond: 50,
			Burst:         100,
		},
		Store:    StoreConfig{Backend: StoreMemory},
		LogLevel: "info",
	}
}

// applyDefaults fills zero-valued fields from Default.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Navigation.ResumeDelayMillis == 0 {
		c.Navigation.ResumeDelayMillis = def.Navigation.ResumeDelayMillis
	}
	if c.RunLoop.QueueSize == 0 {
		c.RunLoop.QueueSize = def.RunLoop.QueueSize
	}
	if c.Events.SubjectPrefix == "" {
		c.Events.SubjectPrefix = def.Events.SubjectPrefix
	}
	if c.Events.RatePerSecond == 0 {
		c.Events.RatePerSecond = def.Events.RatePerSecond
	}
	if c.Events.Burst == 0 {
		c.Events.Burst = def.Events.Burst
	}
	if c.Store.Backend == "" {
		c.Store.Backend = def.Store.Backend
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Navigation.ResumeDelayMillis < 0 {
		return errors.WrapInvalid(
			fmt.Errorf("resume_delay_millis must be non-negative, got %d", c.Navigation.ResumeDelayMillis),
			"Config", "Validate", "navigation validation")
	}
	if c.RunLoop.QueueSize < 0 {
		return errors.WrapInvalid(
			fmt.Errorf("queue_size must be non-negative, got %d", c.RunLoop.QueueSize),
			"Config", "Validate", "run loop validation")
	}
	if c.Events.RatePerSecond < 0 || c.Events.Burst < 0 {
		return errors.WrapInvalid(
			fmt.Errorf("event rate limits must be non-negative"),
			"Config", "Validate", "events validation")
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StoreSQLite:
		if c.Store.Path == "" {
			return errors.WrapInvalid(errors.ErrMissingConfig,
				"Config", "Validate", "sqlite store path validation")
		}
	default:
		return errors.WrapInvalid(
			fmt.Errorf("unknown store backend %q", c.Store.Backend),
			"Config", "Validate", "store backend validation")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return errors.WrapInvalid(
			fmt.Errorf("unknown log level %q", c.LogLevel),
			"Config", "Validate", "log level validation")
	}

	return nil
}

// Load reads, defaults, and validates a configuration file. YAML files are
// recognized by their .yaml/.yml extension; everything else parses as JSON.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.WrapInvalid(err, "Config", "Load", "config file read")
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.WrapInvalid(err, "Config", "Load", "yaml parse")
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.WrapInvalid(err, "Config", "Load", "json parse")
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
