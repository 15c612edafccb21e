package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisCache_GetSet(t *testing.T) {
	_, client := newTestRedis(t)
	c := NewRedisCache(client, "blog:")
	ctx := context.Background()

	t.Run("写入后可读取", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "greeting", "你好", time.Minute))

		got, err := c.Get(ctx, "greeting")
		require.NoError(t, err)
		assert.Equal(t, "你好", got)
	})

	t.Run("键带应用前缀", func(t *testing.T) {
		val, err := client.Get(ctx, "blog:greeting").Result()
		require.NoError(t, err)
		assert.Equal(t, "你好", val)
	})

	t.Run("未命中返回可识别错误", func(t *testing.T) {
		_, err := c.Get(ctx, "missing")
		assert.True(t, IsCacheMiss(err))
	})
}

func TestRedisCache_Expiration(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisCache(client, "blog:")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "ephemeral", "瞬时值", time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, "ephemeral")
	assert.True(t, IsCacheMiss(err))
}

func TestRedisCache_SetNX(t *testing.T) {
	_, client := newTestRedis(t)
	c := NewRedisCache(client, "blog:")
	ctx := context.Background()

	ok, err := c.SetNX(ctx, "lock", "holder1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SetNX(ctx, "lock", "holder2", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := c.Get(ctx, "lock")
	require.NoError(t, err)
	assert.Equal(t, "holder1", got)
}

func TestRedisCache_DeleteExists(t *testing.T) {
	_, client := newTestRedis(t)
	c := NewRedisCache(client, "blog:")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, c.Set(ctx, "b", "2", time.Minute))

	n, err := c.Exists(ctx, "a", "b", "c")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	require.NoError(t, c.Delete(ctx, "a", "b"))

	n, err = c.Exists(ctx, "a", "b")
	require.NoError(t, err)
	assert.Zero(t, n)

	// 空键列表为空操作
	require.NoError(t, c.Delete(ctx))
}

func TestRedisCache_JSON(t *testing.T) {
	_, client := newTestRedis(t)
	c := NewRedisCache(client, "blog:")
	ctx := context.Background()

	type crumb struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}

	items := []crumb{
		{Name: "体育", URL: "/category/sports"},
		{Name: "根", URL: "/category/root"},
	}
	require.NoError(t, c.SetJSON(ctx, "article:1:breadcrumb", items, time.Minute))

	var got []crumb
	require.NoError(t, c.GetJSON(ctx, "article:1:breadcrumb", &got))
	assert.Equal(t, items, got)

	err := c.GetJSON(ctx, "article:2:breadcrumb", &got)
	assert.True(t, IsCacheMiss(err))
}

func TestRedisCache_Clear(t *testing.T) {
	_, client := newTestRedis(t)
	c := NewRedisCache(client, "blog:")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "category:1:ancestors", "[]", time.Minute))
	require.NoError(t, c.Set(ctx, "article:1:comments", "[]", time.Minute))
	// 前缀外的键不归本应用管
	require.NoError(t, client.Set(ctx, "other:key", "外部数据", time.Minute).Err())

	require.NoError(t, c.Clear(ctx))

	n, err := c.Exists(ctx, "category:1:ancestors", "article:1:comments")
	require.NoError(t, err)
	assert.Zero(t, n)

	val, err := client.Get(ctx, "other:key").Result()
	require.NoError(t, err)
	assert.Equal(t, "外部数据", val)
}
