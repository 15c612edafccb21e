package service

import (
	"context"
	"errors"
	"sync"

	"github.com/nsxzhou1114/blog-data/internal/database"
	"github.com/nsxzhou1114/blog-data/internal/logger"
	"github.com/nsxzhou1114/blog-data/internal/model"
	"github.com/nsxzhou1114/blog-data/pkg/cache"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	settingService     *SettingService
	settingServiceOnce sync.Once
)

// SettingService 站点设置服务
// 全表至多一行的单例记录, 写入时在事务内校验
type SettingService struct {
	db     *gorm.DB
	cache  cache.Cache
	logger *zap.SugaredLogger
}

// NewSettingService 创建站点设置服务实例
func NewSettingService() *SettingService {
	settingServiceOnce.Do(func() {
		settingService = &SettingService{
			db:     database.GetDB(),
			cache:  cache.GetManager().GetCache(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return settingService
}

// Get 获取站点设置
func (s *SettingService) Get() (*model.BlogSettings, error) {
	var settings model.BlogSettings
	if err := s.db.First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return &settings, nil
}

// Save 创建或更新站点设置
// 设置变更后清空全部缓存: 缓存内容可能嵌入了设置派生的展示数据
func (s *SettingService) Save(ctx context.Context, settings *model.BlogSettings) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.BlogSettings{}).
			Where("id != ?", settings.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSingletonViolation
		}
		return tx.Save(settings).Error
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Clear(ctx); err != nil {
			s.logger.Warnf("清空缓存失败: %v", err)
		}
	}
	return nil
}
