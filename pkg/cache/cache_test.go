package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, "sugar:", 5*time.Minute), mr
}

type cachedProduct struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestCache_SetAndGet(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	in := cachedProduct{ID: 10, Name: "Ruby Lipstick"}
	require.NoError(t, c.Set(ctx, "products:10", in))

	var out cachedProduct
	require.NoError(t, c.Get(ctx, "products:10", &out))
	assert.Equal(t, in, out)
}

func TestCache_Get_Miss(t *testing.T) {
	c, _ := setupTestCache(t)

	var out cachedProduct
	err := c.Get(context.Background(), "products:99", &out)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestCache_KeysArePrefixed(t *testing.T) {
	c, mr := setupTestCache(t)

	require.NoError(t, c.Set(context.Background(), "products:10", cachedProduct{ID: 10}))
	assert.True(t, mr.Exists("sugar:products:10"))
}

func TestCache_SetAppliesTTL(t *testing.T) {
	c, mr := setupTestCache(t)

	require.NoError(t, c.Set(context.Background(), "products:10", cachedProduct{ID: 10}))
	assert.Equal(t, 5*time.Minute, mr.TTL("sugar:products:10"))

	mr.FastForward(6 * time.Minute)

	var out cachedProduct
	err := c.Get(context.Background(), "products:10", &out)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestCache_Invalidate(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "products:10", cachedProduct{ID: 10}))
	require.NoError(t, c.Set(ctx, "products:best-sellers", []cachedProduct{{ID: 10}}))

	require.NoError(t, c.Invalidate(ctx, "products:10", "products:best-sellers"))

	var out cachedProduct
	assert.ErrorIs(t, c.Get(ctx, "products:10", &out), ErrMiss)
}

func TestCache_Invalidate_MissingKeyIsNoError(t *testing.T) {
	c, _ := setupTestCache(t)
	assert.NoError(t, c.Invalidate(context.Background(), "nope"))
}

// --- Nil cache ---

func TestNilCache_IsNoOp(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", "v"))
	assert.NoError(t, c.Invalidate(ctx, "k"))

	var out string
	assert.ErrorIs(t, c.Get(ctx, "k", &out), ErrMiss)
}

func TestNew_NilClientYieldsNilCache(t *testing.T) {
	assert.Nil(t, New(nil, "p:", time.Minute))
}
