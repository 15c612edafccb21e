package service

import (
	"context"
	"testing"

	"github.com/nsxzhou1114/blog-data/internal/dto"
	"github.com/nsxzhou1114/blog-data/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Create(t *testing.T) {
	db := newTestDB(t)
	s := newTestCommentService(db, nil)
	ctx := context.Background()

	category := createTestCategory(t, db, "技术", "tech", nil)
	article := createTestArticle(t, db, "开放评论", category.ID, model.ArticleStatusPublished)
	closed := createTestArticle(t, db, "关闭评论", category.ID, model.ArticleStatusPublished)
	require.NoError(t, db.Model(&model.Article{}).Where("id = ?", closed.ID).
		UpdateColumn("comment_status", model.CommentStatusClosed).Error)

	t.Run("创建成功", func(t *testing.T) {
		comment, err := s.Create(ctx, 1, &dto.CommentCreateRequest{
			ArticleID: article.ID,
			Body:      "写得不错",
		})
		require.NoError(t, err)
		assert.True(t, comment.IsEnable)
		assert.Equal(t, article.ID, comment.ArticleID)
	})

	t.Run("文章不存在被拒绝", func(t *testing.T) {
		_, err := s.Create(ctx, 1, &dto.CommentCreateRequest{ArticleID: 9999, Body: "评论"})
		assert.ErrorIs(t, err, ErrArticleNotFound)
	})

	t.Run("关闭评论的文章被拒绝", func(t *testing.T) {
		_, err := s.Create(ctx, 1, &dto.CommentCreateRequest{ArticleID: closed.ID, Body: "评论"})
		assert.ErrorIs(t, err, ErrCommentClosed)
	})

	t.Run("正文过滤危险标签", func(t *testing.T) {
		comment, err := s.Create(ctx, 1, &dto.CommentCreateRequest{
			ArticleID: article.ID,
			Body:      `安全内容<script>alert(1)</script>`,
		})
		require.NoError(t, err)
		assert.NotContains(t, comment.Body, "<script>")
		assert.Contains(t, comment.Body, "安全内容")
	})

	t.Run("敏感词替换为星号", func(t *testing.T) {
		s.sensitive.AddWords("违禁词")
		comment, err := s.Create(ctx, 1, &dto.CommentCreateRequest{
			ArticleID: article.ID,
			Body:      "包含违禁词的评论",
		})
		require.NoError(t, err)
		assert.NotContains(t, comment.Body, "违禁词")
		assert.Contains(t, comment.Body, "***")
	})
}

func TestCommentService_ParentChecks(t *testing.T) {
	db := newTestDB(t)
	s := newTestCommentService(db, nil)
	ctx := context.Background()

	category := createTestCategory(t, db, "技术", "tech", nil)
	article := createTestArticle(t, db, "文章甲", category.ID, model.ArticleStatusPublished)
	other := createTestArticle(t, db, "文章乙", category.ID, model.ArticleStatusPublished)

	parent := createTestComment(t, db, article.ID, nil, "一楼")

	t.Run("正常回复", func(t *testing.T) {
		reply, err := s.Create(ctx, 2, &dto.CommentCreateRequest{
			ArticleID: article.ID,
			Body:      "回复一楼",
			ParentID:  uintPtr(parent.ID),
		})
		require.NoError(t, err)
		assert.Equal(t, parent.ID, *reply.ParentID)
	})

	t.Run("父评论不存在被拒绝", func(t *testing.T) {
		_, err := s.Create(ctx, 2, &dto.CommentCreateRequest{
			ArticleID: article.ID,
			Body:      "回复幽灵",
			ParentID:  uintPtr(9999),
		})
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})

	t.Run("跨文章回复被拒绝", func(t *testing.T) {
		_, err := s.Create(ctx, 2, &dto.CommentCreateRequest{
			ArticleID: other.ID,
			Body:      "串门回复",
			ParentID:  uintPtr(parent.ID),
		})
		assert.ErrorIs(t, err, ErrCommentParentMismatch)
	})

	t.Run("回复链过深被拒绝", func(t *testing.T) {
		// 直接落库构造深度为maxCommentDepth的回复链
		cur := createTestComment(t, db, article.ID, nil, "深链0")
		var last *model.Comment
		for i := 1; i < maxCommentDepth; i++ {
			cur = createTestComment(t, db, article.ID, uintPtr(cur.ID), "深链")
			last = cur
		}

		_, err := s.Create(ctx, 2, &dto.CommentCreateRequest{
			ArticleID: article.ID,
			Body:      "再深一层",
			ParentID:  uintPtr(last.ID),
		})
		assert.ErrorIs(t, err, ErrCommentTooDeep)
	})

	t.Run("存量环数据上溯报错而不是死循环", func(t *testing.T) {
		c1 := createTestComment(t, db, article.ID, nil, "环1")
		c2 := createTestComment(t, db, article.ID, uintPtr(c1.ID), "环2")
		// 绕过服务层校验制造 c1->c2->c1 的环
		require.NoError(t, db.Model(&model.Comment{}).Where("id = ?", c1.ID).
			UpdateColumn("parent_id", c2.ID).Error)

		_, err := s.Create(ctx, 2, &dto.CommentCreateRequest{
			ArticleID: article.ID,
			Body:      "回复环",
			ParentID:  uintPtr(c2.ID),
		})
		assert.ErrorIs(t, err, ErrCyclicComment)
	})
}

func TestCommentService_ListVisible(t *testing.T) {
	db := newTestDB(t)
	c := newTestCache(t)
	s := newTestCommentService(db, c)
	ctx := context.Background()

	category := createTestCategory(t, db, "技术", "tech", nil)
	article := createTestArticle(t, db, "有评论", category.ID, model.ArticleStatusPublished)

	c1 := createTestComment(t, db, article.ID, nil, "第一条")
	c2 := createTestComment(t, db, article.ID, nil, "被隐藏")
	require.NoError(t, db.Model(&model.Comment{}).Where("id = ?", c2.ID).
		UpdateColumn("is_enable", false).Error)
	c3 := createTestComment(t, db, article.ID, nil, "第三条")

	t.Run("只返回可见评论且最新在前", func(t *testing.T) {
		comments, err := s.ListVisible(ctx, article.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, c3.ID, comments[0].ID)
		assert.Equal(t, c1.ID, comments[1].ID)
	})

	t.Run("审核开关立即反映到列表", func(t *testing.T) {
		require.NoError(t, s.SetEnable(ctx, c3.ID, false))

		comments, err := s.ListVisible(ctx, article.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, c1.ID, comments[0].ID)
	})

	t.Run("新评论立即反映到列表", func(t *testing.T) {
		c4, err := s.Create(ctx, 1, &dto.CommentCreateRequest{ArticleID: article.ID, Body: "第四条"})
		require.NoError(t, err)

		comments, err := s.ListVisible(ctx, article.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, c4.ID, comments[0].ID)
	})

	t.Run("文章不存在返回错误", func(t *testing.T) {
		_, err := s.ListVisible(ctx, 9999)
		assert.ErrorIs(t, err, ErrArticleNotFound)
	})
}

func TestCommentService_Delete(t *testing.T) {
	db := newTestDB(t)
	s := newTestCommentService(db, nil)
	ctx := context.Background()

	category := createTestCategory(t, db, "技术", "tech", nil)
	article := createTestArticle(t, db, "有回复树", category.ID, model.ArticleStatusPublished)

	root := createTestComment(t, db, article.ID, nil, "根评论")
	child := createTestComment(t, db, article.ID, uintPtr(root.ID), "回复")
	grand := createTestComment(t, db, article.ID, uintPtr(child.ID), "回复的回复")
	sibling := createTestComment(t, db, article.ID, nil, "无关评论")

	require.NoError(t, s.Delete(ctx, root.ID))

	var count int64
	db.Model(&model.Comment{}).Where("id IN ?", []uint{root.ID, child.ID, grand.ID}).Count(&count)
	assert.Zero(t, count)

	db.Model(&model.Comment{}).Where("id = ?", sibling.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	t.Run("评论不存在返回错误", func(t *testing.T) {
		assert.ErrorIs(t, s.Delete(ctx, root.ID), ErrCommentNotFound)
	})
}
