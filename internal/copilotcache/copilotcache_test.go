package copilotcache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maa-cli/maa-go/internal/maadirs"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	return New(&maadirs.Dirs{Cache: t.TempDir()})
}

func TestPutGetHasRoundTrip(t *testing.T) {
	c := newTestCache(t)
	assert.False(t, c.Has("abc123"))

	assert.NoError(t, c.Put("abc123", []byte(`{"stage_name":"1-7"}`)))
	assert.True(t, c.Has("abc123"))

	data, err := c.Get("abc123")
	assert.NoError(t, err)
	assert.Equal(t, `{"stage_name":"1-7"}`, string(data))
}

func TestGetMissingReturnsError(t *testing.T) {
	c := newTestCache(t)
	_, err := c.Get("nope")
	assert.Error(t, err)
}

func TestCleanRemovesFileAndIsIdempotent(t *testing.T) {
	c := newTestCache(t)
	assert.NoError(t, c.Put("xyz", []byte("{}")))
	assert.NoError(t, c.Clean("xyz"))
	assert.False(t, c.Has("xyz"))
	assert.NoError(t, c.Clean("xyz"))
}

func TestCleanOnNeverWrittenCache(t *testing.T) {
	c := newTestCache(t)
	assert.NoError(t, c.Clean("never-written"))
}
