package identity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
)

func TestCache_EmptyByDefault(t *testing.T) {
	var c Cache
	_, src, ok := c.Get()
	assert.False(t, ok)
	assert.Equal(t, SourceNone, src)
}

func TestCache_WriteReplacesWhole(t *testing.T) {
	c := NewCache()
	e := c.Epoch()

	require.True(t, c.Set(e, models.Identity{ID: "u1", Email: "a@b.com", Phone: "050"}, SourceToken))
	require.True(t, c.Set(e, models.Identity{ID: "u1", Name: models.Name{First: "Ada"}}, SourceToken))

	got, _, ok := c.Get()
	require.True(t, ok)
	assert.Empty(t, got.Email, "no merge with the previous value")
	assert.Equal(t, "Ada", got.Name.First)
}

func TestCache_AuthoritativeWins(t *testing.T) {
	c := NewCache()
	e := c.Epoch()

	require.True(t, c.Set(e, models.Identity{ID: "u1"}, SourceToken))
	require.True(t, c.Set(e, models.Identity{ID: "u1", Email: "api@b.com"}, SourceAPI))
	assert.False(t, c.Set(e, models.Identity{ID: "u1", Email: "late-token@b.com"}, SourceToken))

	got, src, _ := c.Get()
	assert.Equal(t, SourceAPI, src)
	assert.Equal(t, "api@b.com", got.Email)

	require.True(t, c.Set(e, models.Identity{ID: "u1", Email: "newer-api@b.com"}, SourceAPI))
	got, _, _ = c.Get()
	assert.Equal(t, "newer-api@b.com", got.Email)
}

func TestCache_StaleEpochDropped(t *testing.T) {
	c := NewCache()
	before := c.Epoch()

	c.Clear()

	assert.False(t, c.Set(before, models.Identity{ID: "old"}, SourceAPI))
	_, _, ok := c.Get()
	assert.False(t, ok)

	assert.True(t, c.Set(c.Epoch(), models.Identity{ID: "new"}, SourceToken))
}

func TestCache_ClearResetsSource(t *testing.T) {
	c := NewCache()
	require.True(t, c.Set(c.Epoch(), models.Identity{ID: "u1"}, SourceAPI))

	c.Clear()

	_, src, ok := c.Get()
	assert.False(t, ok)
	assert.Equal(t, SourceNone, src)
	assert.True(t, c.Set(c.Epoch(), models.Identity{ID: "u2"}, SourceToken), "token writes allowed again after clear")
}

func TestCache_RejectsSourceNone(t *testing.T) {
	c := NewCache()
	assert.False(t, c.Set(c.Epoch(), models.Identity{ID: "u1"}, SourceNone))
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := NewCache()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() { defer wg.Done(); c.Set(c.Epoch(), models.Identity{ID: "u"}, SourceToken) }()
		go func() { defer wg.Done(); c.Get() }()
		go func() { defer wg.Done(); c.Set(c.Epoch(), models.Identity{ID: "u"}, SourceAPI) }()
	}
	wg.Wait()

	_, _, ok := c.Get()
	assert.True(t, ok)
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "token", SourceToken.String())
	assert.Equal(t, "api", SourceAPI.String())
	assert.Equal(t, "none", SourceNone.String())
}
