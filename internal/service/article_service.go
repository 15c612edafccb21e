package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nsxzhou1114/blog-data/internal/config"
	"github.com/nsxzhou1114/blog-data/internal/database"
	"github.com/nsxzhou1114/blog-data/internal/dto"
	"github.com/nsxzhou1114/blog-data/internal/logger"
	"github.com/nsxzhou1114/blog-data/internal/model"
	"github.com/nsxzhou1114/blog-data/pkg/cache"
	"github.com/nsxzhou1114/blog-data/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 文章摘要长度默认值
const defaultSummaryLength = 300

var (
	articleService     *ArticleService
	articleServiceOnce sync.Once
)

// ArticleService 文章服务
type ArticleService struct {
	db              *gorm.DB
	cache           cache.Cache
	log             *zap.SugaredLogger
	categoryService *CategoryService
	searchService   *ArticleSearchService
	articleFilter   cache.BloomFilter
	breadcrumbTTL   time.Duration
	siteDomain      string
}

// NewArticleService 创建文章服务实例
func NewArticleService() *ArticleService {
	articleServiceOnce.Do(func() {
		breadcrumbTTL := cache.BreadcrumbExpiration
		siteDomain := ""
		if cfg := config.GlobalConfig; cfg != nil {
			if cfg.Cache.BreadcrumbTTL > 0 {
				breadcrumbTTL = cfg.Cache.BreadcrumbTTL
			}
			siteDomain = cfg.Site.Domain
		}
		articleService = &ArticleService{
			db:              database.GetDB(),
			cache:           cache.GetManager().GetCache(),
			log:             logger.GetSugaredLogger(),
			categoryService: NewCategoryService(),
			searchService:   NewArticleSearchService(),
			articleFilter:   cache.GetManager().GetArticleFilter(),
			breadcrumbTTL:   breadcrumbTTL,
			siteDomain:      siteDomain,
		}
	})
	return articleService
}

// Create 创建文章
func (s *ArticleService) Create(req *dto.ArticleCreateRequest) (*model.Article, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	// 分类引用必须可解析, 不允许孤儿文章
	if _, err := s.categoryService.GetByID(req.CategoryID); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return nil, ErrMissingCategory
		}
		return nil, err
	}

	// 标题唯一
	var count int64
	if err := s.db.Model(&model.Article{}).Where("title = ?", req.Title).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateTitle
	}

	article := &model.Article{
		Title:         req.Title,
		Body:          req.Body,
		Summary:       utils.ExtractSummary(req.Body, defaultSummaryLength),
		Status:        req.Status,
		CommentStatus: req.CommentStatus,
		Kind:          req.Kind,
		Weight:        req.Weight,
		AuthorID:      req.AuthorID,
		CategoryID:    req.CategoryID,
	}
	if article.Status == "" {
		article.Status = model.ArticleStatusPublished
	}
	if article.CommentStatus == "" {
		article.CommentStatus = model.CommentStatusOpen
	}
	if article.Kind == "" {
		article.Kind = model.ArticleKindPost
	}
	if article.Status == model.ArticleStatusPublished {
		now := time.Now()
		article.PublishedAt = &now
	}

	// 单事务写入, 失败时不留半成品
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(article).Error; err != nil {
			return err
		}
		return s.replaceTags(tx, article, req.TagIDs)
	})
	if err != nil {
		// 预检与写入之间被并发抢注标题时, 唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}

	s.afterWrite(article)
	return article, nil
}

// Update 更新文章
func (s *ArticleService) Update(ctx context.Context, articleID uint, req *dto.ArticleUpdateRequest) (*model.Article, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	article, err := s.GetByID(articleID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != "" && req.Title != article.Title {
		var count int64
		if err := s.db.Model(&model.Article{}).Where("title = ? AND id != ?", req.Title, articleID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateTitle
		}
		updates["title"] = req.Title
	}
	if req.Body != "" {
		updates["body"] = req.Body
		updates["summary"] = utils.ExtractSummary(req.Body, defaultSummaryLength)
	}
	if req.CategoryID != 0 && req.CategoryID != article.CategoryID {
		if _, err := s.categoryService.GetByID(req.CategoryID); err != nil {
			if errors.Is(err, ErrCategoryNotFound) {
				return nil, ErrMissingCategory
			}
			return nil, err
		}
		updates["category_id"] = req.CategoryID
	}
	if req.Status != "" && req.Status != article.Status {
		updates["status"] = req.Status
		if req.Status == model.ArticleStatusPublished && article.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	}
	if req.CommentStatus != "" {
		updates["comment_status"] = req.CommentStatus
	}
	if req.Weight != nil {
		updates["weight"] = *req.Weight
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(article).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.TagIDs != nil {
			if err := s.replaceTags(tx, article, req.TagIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}

	s.invalidate(ctx, articleID)
	article, err = s.GetByID(articleID)
	if err != nil {
		return nil, err
	}
	s.afterWrite(article)
	return article, nil
}

// Delete 删除文章
// 文章删除不影响分类与标签本身
func (s *ArticleService) Delete(ctx context.Context, articleID uint) error {
	article, err := s.GetByID(articleID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", articleID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", articleID).Delete(&model.ArticleTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(article).Error
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, articleID)
	if s.searchService != nil {
		if err := s.searchService.DeleteArticle(ctx, fmt.Sprintf("article_%d", articleID)); err != nil {
			s.log.Warnf("从搜索索引删除文章 %d 失败: %v", articleID, err)
		}
	}
	return nil
}

// GetByID 根据ID获取文章
func (s *ArticleService) GetByID(articleID uint) (*model.Article, error) {
	var article model.Article
	if err := s.db.First(&article, articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

// RecordView 浏览数加一
// 只更新views单列的原子自增, 并发浏览不丢更新, 也不覆盖其他字段的并发编辑
func (s *ArticleService) RecordView(articleID uint) error {
	result := s.db.Model(&model.Article{}).
		Where("id = ?", articleID).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArticleNotFound
	}
	return nil
}

// Breadcrumb 文章面包屑: 分类祖先链到(名称, 链接)的投影
// 按文章缓存, 长TTL
func (s *ArticleService) Breadcrumb(ctx context.Context, articleID uint) ([]dto.BreadcrumbItem, error) {
	key := fmt.Sprintf(cache.ArticleBreadcrumbKey, articleID)
	if s.cache != nil {
		var cached []dto.BreadcrumbItem
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !cache.IsCacheMiss(err) {
			s.log.Warnf("读取面包屑缓存失败: %v", err)
		}
	}

	article, err := s.GetByID(articleID)
	if err != nil {
		return nil, err
	}

	chain, err := s.categoryService.AncestorChain(ctx, article.CategoryID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.BreadcrumbItem, 0, len(chain))
	for _, c := range chain {
		items = append(items, dto.BreadcrumbItem{
			Name: c.Name,
			URL:  s.fullURL(c.URL()),
		})
	}

	if s.cache != nil {
		ttl := s.breadcrumbTTL
		if ttl <= 0 {
			ttl = cache.BreadcrumbExpiration
		}
		if err := s.cache.SetJSON(ctx, key, items, ttl); err != nil {
			s.log.Warnf("写入面包屑缓存失败: %v", err)
		}
	}
	return items, nil
}

// fullURL 配置了站点域名时拼接完整链接, 否则保持站内相对路径
func (s *ArticleService) fullURL(path string) string {
	if s.siteDomain == "" {
		return path
	}
	return fmt.Sprintf("https://%s%s", s.siteDomain, path)
}

// Adjacent 相邻文章: 上一篇取ID较小的最大者, 下一篇取ID较大的最小者
// 两个方向统一只看已发布文章
func (s *ArticleService) Adjacent(articleID uint) (prev *model.Article, next *model.Article, err error) {
	if _, err = s.GetByID(articleID); err != nil {
		return nil, nil, err
	}

	var p model.Article
	res := s.db.Where("id < ? AND status = ?", articleID, model.ArticleStatusPublished).
		Order("id desc").First(&p)
	if res.Error == nil {
		prev = &p
	} else if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, nil, res.Error
	}

	var n model.Article
	res = s.db.Where("id > ? AND status = ?", articleID, model.ArticleStatusPublished).
		Order("id asc").First(&n)
	if res.Error == nil {
		next = &n
	} else if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, nil, res.Error
	}

	return prev, next, nil
}

// List 文章列表, 排序遵循权重优先、发布时间次之
func (s *ArticleService) List(req *dto.ArticleListRequest) ([]model.Article, int64, error) {
	if err := dto.Validate(req); err != nil {
		return nil, 0, err
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	query := s.db.Model(&model.Article{})
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Kind != "" {
		query = query.Where("kind = ?", req.Kind)
	}
	if req.CategoryID != 0 {
		query = query.Where("category_id = ?", req.CategoryID)
	}
	if req.TagID != 0 {
		query = query.Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Where("article_tags.tag_id = ?", req.TagID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []model.Article
	if err := query.Order("weight desc, published_at desc").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&articles).Error; err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// replaceTags 重建文章的标签关联
func (s *ArticleService) replaceTags(tx *gorm.DB, article *model.Article, tagIDs []uint) error {
	if tagIDs == nil {
		return nil
	}
	tags := make([]model.Tag, 0, len(tagIDs))
	if len(tagIDs) > 0 {
		if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
			return err
		}
		if len(tags) != len(tagIDs) {
			return ErrTagNotFound
		}
	}
	return tx.Model(article).Association("Tags").Replace(tags)
}

// afterWrite 写后处理: 布隆过滤器与搜索索引
func (s *ArticleService) afterWrite(article *model.Article) {
	ctx := context.Background()

	if s.articleFilter != nil {
		if err := s.articleFilter.Add(ctx, fmt.Sprintf("%d", article.ID)); err != nil {
			s.log.Warnf("布隆过滤器添加文章 %d 失败: %v", article.ID, err)
		}
	}

	if s.searchService != nil {
		var full model.Article
		if err := s.db.Preload("Category").Preload("Tags").First(&full, article.ID).Error; err != nil {
			s.log.Warnf("加载文章 %d 关联失败: %v", article.ID, err)
			return
		}
		if err := s.searchService.IndexArticle(ctx, full.ToSearchDocument()); err != nil {
			s.log.Warnf("索引文章 %d 失败: %v", article.ID, err)
		}
	}
}

// invalidate 删除文章的派生缓存
func (s *ArticleService) invalidate(ctx context.Context, articleID uint) {
	if s.cache == nil {
		return
	}
	keys := []string{
		fmt.Sprintf(cache.ArticleBreadcrumbKey, articleID),
		fmt.Sprintf(cache.ArticleCommentsKey, articleID),
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.Warnf("失效文章缓存失败: %v", err)
	}
}
