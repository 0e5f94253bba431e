package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	orig, origCommit, origTime := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = orig, origCommit, origTime })

	Version, GitCommit, BuildTime = "v1.2.3", "abc123", "2026-01-02"
	require.Equal(t, "tagpages v1.2.3 (commit abc123, built 2026-01-02)", String())
}

func TestDefaultsAreSet(t *testing.T) {
	require.NotEmpty(t, Version)
	require.NotEmpty(t, BuildTime)
	require.NotEmpty(t, GitCommit)
}
