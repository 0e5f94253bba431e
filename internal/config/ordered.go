package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry is one key of an OrderedMap.
type Entry[T any] struct {
	Key   string
	Value T
}

// OrderedMap is a YAML mapping that remembers document order.
type OrderedMap[T any] []Entry[T]

// UnmarshalYAML decodes a mapping node entry by entry. Duplicate keys are rejected.
func (m *OrderedMap[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*m = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}

	out := make(OrderedMap[T], 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		key := keyNode.Value
		if seen[key] {
			return fmt.Errorf("line %d: duplicate key %q", keyNode.Line, key)
		}
		seen[key] = true

		var value T
		if err := valueNode.Decode(&value); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		out = append(out, Entry[T]{Key: key, Value: value})
	}
	*m = out
	return nil
}

// MarshalYAML emits the entries as a mapping in order.
func (m OrderedMap[T]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range m {
		value := &yaml.Node{}
		if err := value.Encode(e.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			value)
	}
	return node, nil
}

// Keys returns the keys in document order.
func (m OrderedMap[T]) Keys() []string {
	keys := make([]string, 0, len(m))
	for _, e := range m {
		keys = append(keys, e.Key)
	}
	return keys
}

// Get returns the value stored under key.
func (m OrderedMap[T]) Get(key string) (T, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	var zero T
	return zero, false
}
