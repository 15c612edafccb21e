package service

import (
	"context"
	"testing"
	"time"

	"github.com/nsxzhou1114/blog-data/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingService_Get(t *testing.T) {
	db := newTestDB(t)
	s := newTestSettingService(db, nil)

	t.Run("无记录时返回错误", func(t *testing.T) {
		_, err := s.Get()
		assert.ErrorIs(t, err, ErrSettingsNotFound)
	})
}

func TestSettingService_Save(t *testing.T) {
	db := newTestDB(t)
	c := newTestCache(t)
	s := newTestSettingService(db, c)
	ctx := context.Background()

	settings := &model.BlogSettings{
		SiteName:         "我的博客",
		SiteDescription:  "个人技术博客",
		ArticleSubLength: 300,
	}
	require.NoError(t, s.Save(ctx, settings))

	t.Run("首次保存后可读取", func(t *testing.T) {
		got, err := s.Get()
		require.NoError(t, err)
		assert.Equal(t, "我的博客", got.SiteName)
	})

	t.Run("同一条记录允许更新", func(t *testing.T) {
		settings.SiteName = "改名后的博客"
		require.NoError(t, s.Save(ctx, settings))

		got, err := s.Get()
		require.NoError(t, err)
		assert.Equal(t, "改名后的博客", got.SiteName)

		var count int64
		db.Model(&model.BlogSettings{}).Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("第二条记录被拒绝且存量不受影响", func(t *testing.T) {
		err := s.Save(ctx, &model.BlogSettings{SiteName: "第二个设置"})
		assert.ErrorIs(t, err, ErrSingletonViolation)

		var count int64
		db.Model(&model.BlogSettings{}).Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("保存后清空全部缓存", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "stale:key", "value", time.Minute))

		settings.SiteKeywords = "go,博客"
		require.NoError(t, s.Save(ctx, settings))

		n, err := c.Exists(ctx, "stale:key")
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
