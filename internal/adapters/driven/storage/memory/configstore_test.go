package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"docs.dir":          "/srv/docs",
		"server.port":       int64(8080),
		"server.rate_limit": 2.5,
		"docs.strict":       true,
	})

	assert.Equal(t, "/srv/docs", store.GetString("docs.dir"))
	assert.Equal(t, 8080, store.GetInt("server.port"))
	assert.Equal(t, 2.5, store.GetFloat("server.rate_limit"))
	assert.Equal(t, 8080.0, store.GetFloat("server.port"))
	assert.True(t, store.GetBool("docs.strict"))
}

func TestConfigStore_MissingAndMistyped(t *testing.T) {
	store := NewConfigStore(map[string]any{"docs.dir": 42})

	assert.Empty(t, store.GetString("docs.dir"))
	assert.Zero(t, store.GetInt("missing"))
	assert.Zero(t, store.GetFloat("docs.dir.nested"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_Update(t *testing.T) {
	seed := map[string]any{"docs.dir": "docs"}
	store := NewConfigStore(seed)

	require.NoError(t, store.Update(map[string]any{"docs.watch": true, "docs.dir": "content"}))

	val, ok := store.Get("docs.watch")
	assert.True(t, ok)
	assert.Equal(t, true, val)
	assert.Equal(t, "content", store.GetString("docs.dir"))
	assert.Equal(t, "docs", seed["docs.dir"], "seed map is copied")
	assert.Empty(t, store.Path())
}
