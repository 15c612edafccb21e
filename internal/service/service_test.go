package service

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/nsxzhou1114/blog-data/internal/model"
	"github.com/nsxzhou1114/blog-data/pkg/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 创建内存测试库并迁移全部表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库限制单连接, 并发写串行化且不会各自打开空库
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, model.InitTables(db))

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// newTestCache 创建miniredis支撑的缓存实例
func newTestCache(t *testing.T) cache.Cache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewRedisCache(client, "test:")
}

func newTestCategoryService(db *gorm.DB, c cache.Cache) *CategoryService {
	return &CategoryService{
		db:      db,
		cache:   c,
		logger:  zap.NewNop().Sugar(),
		treeTTL: cache.CategoryTreeExpiration,
	}
}

func newTestArticleService(db *gorm.DB, c cache.Cache) *ArticleService {
	return &ArticleService{
		db:              db,
		cache:           c,
		log:             zap.NewNop().Sugar(),
		categoryService: newTestCategoryService(db, c),
		breadcrumbTTL:   cache.BreadcrumbExpiration,
	}
}

func newTestCommentService(db *gorm.DB, c cache.Cache) *CommentService {
	return &CommentService{
		db:        db,
		cache:     c,
		logger:    zap.NewNop().Sugar(),
		sensitive: newSensitiveService(zap.NewNop().Sugar(), ""),
		listTTL:   cache.CommentListExpiration,
	}
}

func newTestTagService(db *gorm.DB, c cache.Cache) *TagService {
	return &TagService{
		db:       db,
		cache:    c,
		logger:   zap.NewNop().Sugar(),
		countTTL: cache.TagArticleCountExpiration,
	}
}

func newTestLinkService(db *gorm.DB) *LinkService {
	return &LinkService{db: db, logger: zap.NewNop().Sugar()}
}

func newTestSettingService(db *gorm.DB, c cache.Cache) *SettingService {
	return &SettingService{db: db, cache: c, logger: zap.NewNop().Sugar()}
}

func newTestLogService(db *gorm.DB) *LogService {
	return &LogService{db: db, logger: zap.NewNop().Sugar()}
}

// createTestCategory 直接落库创建分类
func createTestCategory(t *testing.T, db *gorm.DB, name, slug string, parentID *uint) *model.Category {
	t.Helper()

	category := &model.Category{Name: name, Slug: slug, ParentID: parentID}
	require.NoError(t, db.Create(category).Error)
	return category
}

// createTestArticle 直接落库创建文章
func createTestArticle(t *testing.T, db *gorm.DB, title string, categoryID uint, status string) *model.Article {
	t.Helper()

	article := &model.Article{
		Title:         title,
		Body:          "正文 " + title,
		Status:        status,
		CommentStatus: model.CommentStatusOpen,
		Kind:          model.ArticleKindPost,
		AuthorID:      1,
		CategoryID:    categoryID,
	}
	if status == model.ArticleStatusPublished {
		now := time.Now()
		article.PublishedAt = &now
	}
	require.NoError(t, db.Create(article).Error)
	return article
}

// createTestComment 直接落库创建评论
func createTestComment(t *testing.T, db *gorm.DB, articleID uint, parentID *uint, body string) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		Body:      body,
		AuthorID:  1,
		ArticleID: articleID,
		ParentID:  parentID,
		IsEnable:  true,
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func uintPtr(v uint) *uint {
	return &v
}
