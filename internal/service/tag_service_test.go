package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/nsxzhou1114/blog-data/internal/model"
	"github.com/nsxzhou1114/blog-data/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagService_Create(t *testing.T) {
	db := newTestDB(t)
	s := newTestTagService(db, nil)

	t.Run("创建成功且slug缺省为占位值", func(t *testing.T) {
		tag, err := s.Create("Go", "")
		require.NoError(t, err)
		assert.Equal(t, model.SlugDefault, tag.Slug)
	})

	t.Run("重名创建被拒绝", func(t *testing.T) {
		_, err := s.Create("Go", "go")
		assert.ErrorIs(t, err, ErrDuplicateName)
	})
}

func TestTagService_ArticleCount(t *testing.T) {
	db := newTestDB(t)
	c := newTestCache(t)
	s := newTestTagService(db, c)
	ctx := context.Background()

	category := createTestCategory(t, db, "技术", "tech", nil)
	tag, err := s.Create("Go", "go")
	require.NoError(t, err)

	a1 := createTestArticle(t, db, "文章一", category.ID, model.ArticleStatusPublished)
	a2 := createTestArticle(t, db, "文章二", category.ID, model.ArticleStatusPublished)
	require.NoError(t, db.Create(&model.ArticleTag{ArticleID: a1.ID, TagID: tag.ID}).Error)
	require.NoError(t, db.Create(&model.ArticleTag{ArticleID: a2.ID, TagID: tag.ID}).Error)

	t.Run("首次统计并写入缓存", func(t *testing.T) {
		count, err := s.ArticleCount(ctx, tag.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)

		n, err := c.Exists(ctx, fmt.Sprintf(cache.TagArticleCountKey, tag.ID))
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("缓存期内读取快照", func(t *testing.T) {
		a3 := createTestArticle(t, db, "文章三", category.ID, model.ArticleStatusPublished)
		require.NoError(t, db.Create(&model.ArticleTag{ArticleID: a3.ID, TagID: tag.ID}).Error)

		count, err := s.ArticleCount(ctx, tag.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)

		// 缓存失效后重新统计
		require.NoError(t, c.Delete(ctx, fmt.Sprintf(cache.TagArticleCountKey, tag.ID)))
		count, err = s.ArticleCount(ctx, tag.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)
	})

	t.Run("标签不存在返回错误", func(t *testing.T) {
		_, err := s.ArticleCount(ctx, 9999)
		assert.ErrorIs(t, err, ErrTagNotFound)
	})
}

func TestTagService_Delete(t *testing.T) {
	db := newTestDB(t)
	c := newTestCache(t)
	s := newTestTagService(db, c)
	ctx := context.Background()

	category := createTestCategory(t, db, "技术", "tech", nil)
	tag, err := s.Create("待删", "")
	require.NoError(t, err)

	article := createTestArticle(t, db, "有标签的文章", category.ID, model.ArticleStatusPublished)
	require.NoError(t, db.Create(&model.ArticleTag{ArticleID: article.ID, TagID: tag.ID}).Error)

	require.NoError(t, s.Delete(ctx, tag.ID))

	var count int64
	db.Model(&model.Tag{}).Where("id = ?", tag.ID).Count(&count)
	assert.Zero(t, count)

	// 只解除关联, 文章本身保留
	db.Model(&model.ArticleTag{}).Where("tag_id = ?", tag.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&model.Article{}).Where("id = ?", article.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}
