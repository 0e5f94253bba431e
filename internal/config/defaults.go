package config

import "fmt"

// Plugin names accepted in the plugins list.
const (
	PluginMarkdown    = "markdown"
	PluginCollections = "collections"
	PluginTags        = "tags"
	PluginLayouts     = "layouts"
)

// KnownPlugins lists plugin names in their default order.
var KnownPlugins = []string{PluginMarkdown, PluginCollections, PluginTags, PluginLayouts}

// ConfigDefaultApplier fills defaults for one configuration domain.
type ConfigDefaultApplier interface {
	Domain() string
	ApplyDefaults(cfg *Config) error
}

// CompositeDefaultApplier applies defaults across all configuration domains
type CompositeDefaultApplier struct {
	appliers []ConfigDefaultApplier
}

// NewDefaultApplier creates a composite default applier with all domain appliers
func NewDefaultApplier() *CompositeDefaultApplier {
	return &CompositeDefaultApplier{
		appliers: []ConfigDefaultApplier{
			&PathsDefaultApplier{},
			&LoggingDefaultApplier{},
			&PluginsDefaultApplier{},
		},
	}
}

// ApplyDefaults applies defaults for all configuration domains
func (c *CompositeDefaultApplier) ApplyDefaults(cfg *Config) error {
	for _, applier := range c.appliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("applying defaults for %s: %w", applier.Domain(), err)
		}
	}
	return nil
}

// PathsDefaultApplier defaults the source and destination directories.
type PathsDefaultApplier struct{}

func (PathsDefaultApplier) Domain() string { return "paths" }

func (PathsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Source == "" {
		cfg.Source = "./src"
	}
	if cfg.Destination == "" {
		cfg.Destination = "./build"
	}
	if cfg.Site == nil {
		cfg.Site = map[string]any{}
	}
	return nil
}

// LoggingDefaultApplier normalizes the configured log level.
type LoggingDefaultApplier struct{}

func (LoggingDefaultApplier) Domain() string { return "logging" }

func (LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	return nil
}

// PluginsDefaultApplier derives the plugin order when none is configured:
// markdown unless disabled, collections, tags when any are configured and
// layouts when a layouts directory is set.
type PluginsDefaultApplier struct{}

func (PluginsDefaultApplier) Domain() string { return "plugins" }

func (PluginsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if len(cfg.Plugins) > 0 {
		return nil
	}
	if cfg.MarkdownEnabled() {
		cfg.Plugins = append(cfg.Plugins, PluginMarkdown)
	}
	cfg.Plugins = append(cfg.Plugins, PluginCollections)
	if len(cfg.Tags) > 0 {
		cfg.Plugins = append(cfg.Plugins, PluginTags)
	}
	if cfg.Layouts != "" {
		cfg.Plugins = append(cfg.Plugins, PluginLayouts)
	}
	return nil
}
