package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Manager 缓存管理器
type Manager struct {
	cache         Cache
	articleFilter BloomFilter
	mutex         sync.RWMutex
	initialized   bool
}

var (
	instance *Manager
	once     sync.Once
)

// GetManager 获取缓存管理器单例
func GetManager() *Manager {
	once.Do(func() {
		instance = &Manager{}
	})
	return instance
}

// Initialize 初始化缓存管理器
func (m *Manager) Initialize(redisClient *redis.Client, keyPrefix string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.initialized {
		return nil
	}

	// 创建Redis缓存实例
	m.cache = NewRedisCache(redisClient, keyPrefix)

	// 创建文章布隆过滤器, 100万文章, 1%误判率
	m.articleFilter = NewRedisBloomFilter(redisClient, keyPrefix+BloomFilterArticleKey, 1000000, 0.01)

	// 从Redis加载布隆过滤器状态
	ctx := context.Background()
	if err := m.articleFilter.LoadFromRedis(ctx); err != nil {
		return fmt.Errorf("load article bloom filter failed: %w", err)
	}

	m.initialized = true
	return nil
}

// GetCache 获取基础缓存接口
func (m *Manager) GetCache() Cache {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.cache
}

// GetArticleFilter 获取文章布隆过滤器
func (m *Manager) GetArticleFilter() BloomFilter {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.articleFilter
}

// IsInitialized 检查是否已初始化
func (m *Manager) IsInitialized() bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.initialized
}

// SaveBloomFilters 保存布隆过滤器到Redis
func (m *Manager) SaveBloomFilters(ctx context.Context) error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if !m.initialized {
		return fmt.Errorf("cache manager not initialized")
	}

	return m.articleFilter.SaveToRedis(ctx)
}

// Close 关闭缓存连接
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.initialized {
		return nil
	}

	// 关闭前保存布隆过滤器
	ctx := context.Background()
	if err := m.articleFilter.SaveToRedis(ctx); err != nil {
		fmt.Printf("Failed to save bloom filter: %v\n", err)
	}

	if err := m.cache.Close(); err != nil {
		return fmt.Errorf("close cache failed: %w", err)
	}

	m.initialized = false
	return nil
}
