package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/nsxzhou1114/blog-data/internal/config"
	"github.com/nsxzhou1114/blog-data/internal/database"
	"github.com/nsxzhou1114/blog-data/internal/logger"
	"github.com/nsxzhou1114/blog-data/internal/model"
	"github.com/nsxzhou1114/blog-data/pkg/cache"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	cronService     *CronService
	cronServiceOnce sync.Once
)

// CronService 定时任务服务
type CronService struct {
	db     *gorm.DB
	cron   *cron.Cron
	log    *zap.SugaredLogger
	spec   string
	jobIDs []cron.EntryID
}

// NewCronService 创建定时任务服务实例
func NewCronService() *CronService {
	cronServiceOnce.Do(func() {
		cfg := config.GlobalConfig.Cron
		timezone, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			logger.GetSugaredLogger().Warnf("加载时区 %s 失败, 使用本地时区: %v", cfg.Timezone, err)
			timezone = time.Local
		}

		cronService = &CronService{
			db:   database.GetDB(),
			cron: cron.New(cron.WithSeconds(), cron.WithLocation(timezone)),
			log:  logger.GetSugaredLogger(),
			spec: cfg.BloomSyncSpec,
		}
	})
	return cronService
}

// Start 注册并启动定时任务
func (s *CronService) Start() error {
	id, err := s.cron.AddFunc(s.spec, s.syncArticleBloomFilter)
	if err != nil {
		return fmt.Errorf("注册布隆过滤器同步任务失败: %v", err)
	}
	s.jobIDs = append(s.jobIDs, id)

	s.cron.Start()
	s.log.Infof("定时任务已启动, 布隆过滤器同步周期: %s", s.spec)
	return nil
}

// Stop 停止定时任务, 等待在途任务完成
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("定时任务已停止")
}

// syncArticleBloomFilter 全量重建文章布隆过滤器并持久化
// 覆盖服务重启后过滤器为空与文章删除后的陈旧位
func (s *CronService) syncArticleBloomFilter() {
	ctx := context.Background()
	start := time.Now()

	manager := cache.GetManager()
	if !manager.IsInitialized() {
		s.log.Warn("缓存管理器未初始化, 跳过布隆过滤器同步")
		return
	}
	filter := manager.GetArticleFilter()

	var articleIDs []uint
	if err := s.db.Model(&model.Article{}).Pluck("id", &articleIDs).Error; err != nil {
		s.log.Errorf("加载文章ID列表失败: %v", err)
		return
	}

	if err := filter.Reset(ctx); err != nil {
		s.log.Errorf("重置文章布隆过滤器失败: %v", err)
		return
	}

	elements := make([]string, 0, len(articleIDs))
	for _, id := range articleIDs {
		elements = append(elements, strconv.FormatUint(uint64(id), 10))
	}
	if err := filter.BatchAdd(ctx, elements); err != nil {
		s.log.Errorf("重建文章布隆过滤器失败: %v", err)
		return
	}

	if err := manager.SaveBloomFilters(ctx); err != nil {
		s.log.Errorf("持久化布隆过滤器失败: %v", err)
		return
	}

	s.log.Infof("文章布隆过滤器同步完成, 共%d篇, 耗时%v", len(articleIDs), time.Since(start))
}
