// Package plugin defines the steps of a tagpages build. A pass runs an
// ordered list of plugins over one shared site.
package plugin

import (
	"context"
	"errors"
	"fmt"
)

// Plugin is one step of the pass.
type Plugin interface {
	Metadata() PluginMetadata

	// Validate checks options before anything runs.
	Validate() error

	// Execute mutates the site held by pluginCtx. A non-nil error aborts the
	// pass; ctx is checked between units of work.
	Execute(ctx context.Context, pluginCtx *PluginContext) error
}

// PluginType groups plugins by what they do to the site.
type PluginType string

const (
	// PluginTypeCollection groups source files into named collections.
	PluginTypeCollection PluginType = "collection"
	// PluginTypeTransform rewrites file contents or paths.
	PluginTypeTransform PluginType = "transform"
	// PluginTypeTaxonomy builds indexes and generates listing pages.
	PluginTypeTaxonomy PluginType = "taxonomy"
	// PluginTypeLayout renders files through templates.
	PluginTypeLayout PluginType = "layout"
)

var pluginTypes = map[PluginType]bool{
	PluginTypeCollection: true,
	PluginTypeTransform:  true,
	PluginTypeTaxonomy:   true,
	PluginTypeLayout:     true,
}

// PluginMetadata identifies a plugin and its ordering constraints.
type PluginMetadata struct {
	// Name is the identifier used in the plugins list of the configuration.
	Name        string
	Version     string
	Type        PluginType
	Description string

	// Dependencies name plugins that must run earlier in the same pass.
	Dependencies []string
}

func (m PluginMetadata) String() string {
	return fmt.Sprintf("%s@%s (%s)", m.Name, m.Version, m.Type)
}

// Validate requires a name, a version and a known type.
func (m PluginMetadata) Validate() error {
	switch {
	case m.Name == "":
		return errors.New("plugin name is required")
	case m.Version == "":
		return errors.New("plugin version is required")
	case !pluginTypes[m.Type]:
		return fmt.Errorf("invalid plugin type %q", m.Type)
	}
	return nil
}

// BasePlugin is embedded by plugins without options to check.
type BasePlugin struct{}

func (BasePlugin) Validate() error { return nil }

// PluginError records which plugin failed and in which phase.
type PluginError struct {
	PluginName string
	// Operation is "validate" or "execute".
	Operation string
	Err       error
}

func NewPluginError(pluginName, operation string, err error) *PluginError {
	return &PluginError{PluginName: pluginName, Operation: operation, Err: err}
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %s: %s: %v", e.PluginName, e.Operation, e.Err)
}

func (e *PluginError) Unwrap() error { return e.Err }
