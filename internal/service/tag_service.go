package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/nsxzhou1114/blog-data/internal/config"
	"github.com/nsxzhou1114/blog-data/internal/database"
	"github.com/nsxzhou1114/blog-data/internal/logger"
	"github.com/nsxzhou1114/blog-data/internal/model"
	"github.com/nsxzhou1114/blog-data/pkg/cache"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	tagService     *TagService
	tagServiceOnce sync.Once
)

// TagService 标签服务
type TagService struct {
	db       *gorm.DB
	cache    cache.Cache
	logger   *zap.SugaredLogger
	countTTL time.Duration
}

// NewTagService 创建标签服务实例
func NewTagService() *TagService {
	tagServiceOnce.Do(func() {
		countTTL := cache.TagArticleCountExpiration
		if cfg := config.GlobalConfig; cfg != nil && cfg.Cache.TagArticleCountTTL > 0 {
			countTTL = cfg.Cache.TagArticleCountTTL
		}
		tagService = &TagService{
			db:       database.GetDB(),
			cache:    cache.GetManager().GetCache(),
			logger:   logger.GetSugaredLogger(),
			countTTL: countTTL,
		}
	})
	return tagService
}

// Create 创建标签
func (s *TagService) Create(name, slug string) (*model.Tag, error) {
	var count int64
	if err := s.db.Model(&model.Tag{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateName
	}

	tag := &model.Tag{Name: name, Slug: slug}
	if err := s.db.Create(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

// GetByID 根据ID获取标签
func (s *TagService) GetByID(id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// List 获取全部标签, 按名称排序
func (s *TagService) List() ([]model.Tag, error) {
	var tags []model.Tag
	if err := s.db.Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Delete 删除标签, 仅解除文章关联, 不影响文章本身
func (s *TagService) Delete(ctx context.Context, id uint) error {
	tag, err := s.GetByID(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&model.ArticleTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(tag).Error
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, fmt.Sprintf(cache.TagArticleCountKey, id)); err != nil {
			s.logger.Warnf("失效标签文章数缓存失败: %v", err)
		}
	}
	return nil
}

// ArticleCount 标签下的文章数, 读穿缓存
func (s *TagService) ArticleCount(ctx context.Context, id uint) (int64, error) {
	key := fmt.Sprintf(cache.TagArticleCountKey, id)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			if n, perr := strconv.ParseInt(cached, 10, 64); perr == nil {
				return n, nil
			}
		} else if !cache.IsCacheMiss(err) {
			s.logger.Warnf("读取标签文章数缓存失败: %v", err)
		}
	}

	if _, err := s.GetByID(id); err != nil {
		return 0, err
	}

	var count int64
	if err := s.db.Model(&model.ArticleTag{}).Where("tag_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}

	if s.cache != nil {
		ttl := s.countTTL
		if ttl <= 0 {
			ttl = cache.TagArticleCountExpiration
		}
		if err := s.cache.Set(ctx, key, count, ttl); err != nil {
			s.logger.Warnf("写入标签文章数缓存失败: %v", err)
		}
	}
	return count, nil
}
