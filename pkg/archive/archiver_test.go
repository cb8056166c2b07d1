package archive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArchiver_EmptyBucketDisablesArchiving(t *testing.T) {
	archiver, err := NewArchiver(context.Background(), nil, "prod", "", "", time.Hour, nil)
	require.NoError(t, err)
	assert.Nil(t, archiver)
}

func TestWindowKey_IncludesClusterAndBounds(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC)

	key := windowKey("prod", since, until)
	assert.Contains(t, key, "prod/")
	assert.Contains(t, key, "2026-01-01T00:00:00Z")
	assert.Contains(t, key, "2026-01-01T01:00:00Z")
	assert.Contains(t, key, ".ndjson.snappy")
}
