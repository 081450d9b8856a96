package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestGetOrLoadJSON_CachesResult(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) ([]item, error) {
		calls++
		return []item{{ID: "c1", Name: "Tech"}}, nil
	}

	got, err := GetOrLoadJSON(c, ctx, "public:categories", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "c1", Name: "Tech"}}, got)

	got, err = GetOrLoadJSON(c, ctx, "public:categories", time.Minute, load)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists("blog:public:categories"))

	require.NoError(t, c.Del(ctx, "public:categories"))
	_, err = GetOrLoadJSON(c, ctx, "public:categories", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetOrLoadJSON_TTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, err := GetOrLoadJSON(c, ctx, "k", 10*time.Second, func(context.Context) (item, error) {
		return item{ID: "x"}, nil
	})
	require.NoError(t, err)
	mr.FastForward(11 * time.Second)
	assert.False(t, mr.Exists("blog:k"))
}

func TestGetOrLoadJSON_LoadErrorNotCached(t *testing.T) {
	c, mr := newTestCache(t)
	boom := errors.New("db down")

	_, err := GetOrLoadJSON(c, context.Background(), "k", time.Minute, func(context.Context) (item, error) {
		return item{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("blog:k"))
}

func TestNilCache(t *testing.T) {
	var c *Cache
	got, err := GetOrLoadJSON(c, context.Background(), "k", time.Minute, func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.NoError(t, c.Del(context.Background(), "k"))
}
