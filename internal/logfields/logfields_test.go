package logfields

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringHelpers(t *testing.T) {
	tests := []struct {
		attr slog.Attr
		key  string
		val  string
	}{
		{BuildID("b-1"), KeyBuildID, "b-1"},
		{Plugin("tags"), KeyPlugin, "tags"},
		{Collection("blog"), KeyCollection, "blog"},
		{Tag("tag one"), KeyTag, "tag one"},
		{Path("blog/tags/go/index.html"), KeyPath, "blog/tags/go/index.html"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.Equal(t, tt.key, tt.attr.Key)
			require.Equal(t, tt.val, tt.attr.Value.String())
		})
	}
}

func TestNumericHelpers(t *testing.T) {
	page := Page(2)
	require.Equal(t, KeyPage, page.Key)
	require.EqualValues(t, 2, page.Value.Int64())

	count := Count(3)
	require.Equal(t, KeyCount, count.Key)
	require.EqualValues(t, 3, count.Value.Int64())

	ms := DurationMS(12.5)
	require.Equal(t, KeyDurationMS, ms.Key)
	require.InDelta(t, 12.5, ms.Value.Float64(), 0)
}

func TestError(t *testing.T) {
	require.Equal(t, KeyError, Error(nil).Key)
	require.Empty(t, Error(nil).Value.String())
	require.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
