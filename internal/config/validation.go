package config

import (
	"path/filepath"
	"slices"

	derrors "git.home.luguber.info/inful/tagpages/internal/foundation/errors"
	"git.home.luguber.info/inful/tagpages/internal/foundation/normalization"
)

var pluginNames = func() *normalization.Normalizer[string] {
	names := make(map[string]string, len(KnownPlugins))
	for _, name := range KnownPlugins {
		names[name] = name
	}
	return normalization.New(names, "")
}()

// Validate checks a configuration after defaults have been applied. Plugin
// names are rewritten to their canonical lower case form.
func (c *Config) Validate() error {
	if filepath.Clean(c.Source) == filepath.Clean(c.Destination) {
		return derrors.ConfigError("source and destination must differ").
			WithContext("source", c.Source).
			Build()
	}

	for i, name := range c.Plugins {
		canonical, err := pluginNames.Parse(name)
		if err != nil {
			return derrors.WrapError(err, derrors.CategoryConfig, "unknown plugin").
				WithContext("plugin", name).
				Build()
		}
		c.Plugins[i] = canonical
	}
	if slices.Contains(c.Plugins, PluginLayouts) && c.Layouts == "" {
		return derrors.ConfigError("layouts plugin requires a layouts directory").Build()
	}

	for _, e := range c.Collections {
		if e.Key == "" {
			return derrors.ConfigError("collection name is required").Build()
		}
	}
	return nil
}
