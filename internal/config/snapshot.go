package config

import (
	"crypto/sha256"
	"encoding/hex"

	"gopkg.in/yaml.v3"
)

// Snapshot computes a stable hash of the build-affecting configuration. The
// watch command compares snapshots to report configuration changes.
func (c *Config) Snapshot() string {
	if c == nil {
		return ""
	}
	view := *c
	view.Logging = LoggingConfig{}
	view.Metrics = MetricsConfig{}

	// yaml.v3 sorts map keys, so equal configurations marshal identically.
	data, err := yaml.Marshal(&view)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
