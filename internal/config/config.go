// Package config loads and validates the tagpages.yaml configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/tagpages/internal/foundation/errors"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "tagpages.yaml"

// Config represents the application configuration
type Config struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
	// Clean removes the destination before writing.
	Clean bool `yaml:"clean"`
	// Layouts enables the layouts plugin when set.
	Layouts string `yaml:"layouts,omitempty"`
	// Markdown enables the markdown plugin; nil means enabled.
	Markdown *bool `yaml:"markdown,omitempty"`
	// Plugins overrides the plugin order.
	Plugins []string `yaml:"plugins,omitempty"`
	// Site is free-form metadata handed to layouts.
	Site        map[string]any               `yaml:"site,omitempty"`
	Collections OrderedMap[CollectionConfig] `yaml:"collections,omitempty"`
	Tags        OrderedMap[TagsConfig]       `yaml:"tags,omitempty"`
	Metrics     MetricsConfig                `yaml:"metrics,omitempty"`
	Logging     LoggingConfig                `yaml:"logging,omitempty"`
}

// CollectionConfig defines one collection.
type CollectionConfig struct {
	Pattern string `yaml:"pattern,omitempty"`
	SortBy  string `yaml:"sort_by,omitempty"`
	Reverse bool   `yaml:"reverse,omitempty"`
}

// TagsConfig holds the tag page options of one collection.
type TagsConfig struct {
	Handle       string         `yaml:"handle,omitempty"`
	SkipMetadata bool           `yaml:"skip_metadata,omitempty"`
	Path         string         `yaml:"path,omitempty"`
	PathPage     string         `yaml:"path_page,omitempty"`
	PerPage      int            `yaml:"per_page,omitempty"`
	Template     string         `yaml:"template,omitempty"`
	Metadata     map[string]any `yaml:"metadata,omitempty"`
	Slugify      bool           `yaml:"slugify,omitempty"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	// Textfile receives the metrics in text exposition format after a build.
	Textfile string `yaml:"textfile,omitempty"`
}

// LoggingConfig sets the default log level; TAGPAGES_LOG_LEVEL overrides it.
type LoggingConfig struct {
	Level LogLevel `yaml:"level,omitempty"`
}

// MarkdownEnabled reports whether the markdown plugin runs.
func (c *Config) MarkdownEnabled() bool {
	return c.Markdown == nil || *c.Markdown
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	LoadEnvFiles()

	data, err := os.ReadFile(configPath) // #nosec G304 -- path is the user supplied config file
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, derrors.ConfigError("configuration file not found").
				WithContext("config", configPath).
				Build()
		}
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "read configuration").
			WithContext("config", configPath).
			Build()
	}

	cfg, err := Parse(ExpandEnv(data))
	if err != nil {
		if _, ok := derrors.AsClassified(err); ok {
			return nil, err
		}
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "invalid configuration").
			WithContext("config", configPath).
			Build()
	}
	return cfg, nil
}

// Parse decodes YAML, applies defaults and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	if err := NewDefaultApplier().ApplyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return derrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("config", configPath).
			Build()
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "write configuration").
			WithContext("config", configPath).
			Build()
	}
	return nil
}

// Example returns the configuration written by Init.
func Example() *Config {
	return &Config{
		Source:      "./src",
		Destination: "./build",
		Clean:       true,
		Layouts:     "./layouts",
		Site:        map[string]any{"title": "My site"},
		Collections: OrderedMap[CollectionConfig]{
			{Key: "blog", Value: CollectionConfig{Pattern: "blog/*.html", SortBy: "date", Reverse: true}},
		},
		Tags: OrderedMap[TagsConfig]{
			{Key: "blog", Value: TagsConfig{
				PerPage:  10,
				Path:     "blog/tags/:tag/index.html",
				PathPage: "blog/tags/:tag/:num/index.html",
				Template: "partials/tag.tmpl",
				Metadata: map[string]any{"title": "Posts tagged :tag (page :num)"},
			}},
		},
	}
}
