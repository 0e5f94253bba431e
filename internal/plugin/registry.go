package plugin

import (
	"fmt"

	derrors "git.home.luguber.info/inful/tagpages/internal/foundation/errors"
)

// Registry holds the plugins available to a pass, keyed by name. A pass is
// single threaded, so the registry is not safe for concurrent use.
type Registry struct {
	plugins map[string]Plugin
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register adds p. Names must be unique and metadata valid.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("cannot register nil plugin")
	}
	meta := p.Metadata()
	if err := meta.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}
	if _, exists := r.plugins[meta.Name]; exists {
		return fmt.Errorf("plugin %s already registered", meta.Name)
	}
	r.plugins[meta.Name] = p
	r.order = append(r.order, meta.Name)
	return nil
}

// Get looks a plugin up by name.
func (r *Registry) Get(name string) (Plugin, error) {
	p, ok := r.plugins[name]
	if !ok {
		return nil, derrors.NotFoundError("plugin not found").
			WithContext("plugin", name).
			Build()
	}
	return p, nil
}

// Names returns plugin names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Resolve returns the named plugins in the given order. Every dependency of a
// plugin must appear earlier in names, and no name may repeat.
func (r *Registry) Resolve(names []string) ([]Plugin, error) {
	result := make([]Plugin, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		if seen[name] {
			return nil, derrors.ValidationError("plugin listed twice").
				WithContext("plugin", name).
				Build()
		}
		p, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		for _, dep := range p.Metadata().Dependencies {
			if !seen[dep] {
				return nil, derrors.ValidationError("plugin dependency must run earlier").
					WithContext("plugin", name).
					WithContext("dependency", dep).
					Build()
			}
		}
		seen[name] = true
		result = append(result, p)
	}
	return result, nil
}
