package cache

import (
	"context"
	"time"
)

// Cache 缓存接口
type Cache interface {
	// Get 获取缓存
	Get(ctx context.Context, key string) (string, error)

	// Set 设置缓存
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// SetNX 设置缓存（不存在时才设置）
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)

	// Delete 删除缓存
	Delete(ctx context.Context, keys ...string) error

	// Exists 检查key是否存在
	Exists(ctx context.Context, keys ...string) (int64, error)

	// GetJSON 获取JSON格式的缓存并反序列化
	GetJSON(ctx context.Context, key string, dest interface{}) error

	// SetJSON 序列化为JSON并设置缓存
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// Clear 清空本应用前缀下的全部缓存
	// 站点设置变更时调用, 缓存页面可能嵌入了设置派生内容
	Clear(ctx context.Context) error

	// Close 关闭连接
	Close() error
}

// 缓存键名常量, 格式: 实体类型:id:派生名
const (
	// 分类派生缓存键
	CategoryAncestorsKey   = "category:%d:ancestors"   // 祖先链
	CategoryDescendantsKey = "category:%d:descendants" // 子孙集合

	// 文章派生缓存键
	ArticleBreadcrumbKey = "article:%d:breadcrumb" // 面包屑
	ArticleCommentsKey   = "article:%d:comments"   // 可见评论列表

	// 标签派生缓存键
	TagArticleCountKey = "tag:%d:article_count" // 标签文章数

	// 布隆过滤器相关键
	BloomFilterArticleKey = "bloom:article:exists" // 文章存在性布隆过滤器
)

// 缓存过期时间常量
const (
	// 分类树派生长TTL, 时级陈旧窗口
	CategoryTreeExpiration = 10 * time.Hour
	BreadcrumbExpiration   = 10 * time.Hour

	CommentListExpiration     = 10 * time.Minute
	TagArticleCountExpiration = 10 * time.Hour

	BloomFilterExpiration = 24 * time.Hour
)
