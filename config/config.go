package config

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/blazelint/analyzer/eventmap"
	"github.com/viant/blazelint/analyzer/executor"
	"github.com/viant/blazelint/inspector"
	"github.com/viant/blazelint/inspector/repository"
	"github.com/viant/blazelint/telemetry/tracing"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the project root
const DefaultFile = ".blazelint.yaml"

type (
	// Config represents linter configuration
	Config struct {
		Rule        eventmap.Config `yaml:"rule"`
		Guards      Guards          `yaml:"guards"`
		Environment Environment     `yaml:"environment"`
		Extensions  []string        `yaml:"extensions,omitempty"`
		Log         Log             `yaml:"log"`
		Tracing     tracing.Config  `yaml:"tracing,omitempty"`
	}

	// Guards lists dotted member paths recognized as executor guards
	Guards struct {
		Client []string `yaml:"client,omitempty"`
		Server []string `yaml:"server,omitempty"`
	}

	// Environment configures per-file environment classification
	Environment struct {
		// Force applies one environment to every file, bypassing layout conventions
		Force     *executor.Environment  `yaml:"force,omitempty"`
		Overrides []*repository.Override `yaml:"overrides,omitempty"`
	}

	// Log configures logging
	Log struct {
		Level  string `yaml:"level,omitempty"`
		Format string `yaml:"format,omitempty"`
	}
)

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Rule: eventmap.DefaultConfig(),
		Guards: Guards{
			Client: []string{"Meteor.isClient"},
			Server: []string{"Meteor.isServer"},
		},
		Extensions: append([]string{}, inspector.DefaultExtensions...),
		Log:        Log{Level: "info", Format: "text"},
	}
}

// Parse decodes YAML configuration over the defaults; unknown keys are rejected
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.init()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configuration from URL
func Load(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", URL, err)
	}
	return cfg, nil
}

// LoadOrDefault reads configuration from URL, or returns defaults if it does not exist
func LoadOrDefault(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	if ok, _ := fs.Exists(ctx, URL); !ok {
		return Default(), nil
	}
	return Load(ctx, URL)
}

func (c *Config) init() {
	defaults := Default()
	if c.Rule.EventParamName == "" {
		c.Rule.EventParamName = defaults.Rule.EventParamName
	}
	if c.Rule.TemplateInstanceParamName == "" {
		c.Rule.TemplateInstanceParamName = defaults.Rule.TemplateInstanceParamName
	}
	if c.Rule.Callee == nil {
		c.Rule.Callee = defaults.Rule.Callee
	}
	if len(c.Extensions) == 0 {
		c.Extensions = defaults.Extensions
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
}

// Validate checks configuration values
func (c *Config) Validate() error {
	for _, paths := range [][]string{c.Guards.Client, c.Guards.Server} {
		for _, guard := range paths {
			if !validPath(guard) {
				return fmt.Errorf("invalid guard: %q", guard)
			}
		}
	}
	for i, override := range c.Environment.Overrides {
		if override == nil || override.Pattern == "" {
			return fmt.Errorf("environment.overrides[%d]: pattern was empty", i)
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level: %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %q", c.Log.Format)
	}
	return c.Tracing.Validate()
}

// ExecutorGuards returns the configured guard predicates
func (c *Config) ExecutorGuards() executor.Guards {
	return executor.Guards{
		IsClient: executor.MemberGuard(c.Guards.Client...),
		IsServer: executor.MemberGuard(c.Guards.Server...),
	}
}

func validPath(guard string) bool {
	if guard == "" {
		return false
	}
	for _, part := range strings.Split(guard, ".") {
		if part == "" || strings.ContainsAny(part, " \t()[]") {
			return false
		}
	}
	return true
}
