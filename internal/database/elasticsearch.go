package database

import (
	"fmt"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/nsxzhou1114/blog-data/internal/config"
	"github.com/nsxzhou1114/blog-data/internal/logger"
)

// ES 全局Elasticsearch客户端实例
var (
	esClient *elasticsearch.Client
	esOne    sync.Once
)

// InitES 初始化Elasticsearch连接
func InitES() (*elasticsearch.Client, error) {
	cfg := config.GlobalConfig.Elasticsearch

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.URLs,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("创建Elasticsearch客户端失败: %v", err)
	}

	// 测试连接
	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("连接Elasticsearch失败: %v", err)
	}
	defer res.Body.Close()

	logger.Info("Elasticsearch连接成功")
	return client, nil
}

// GetES 获取Elasticsearch客户端实例
// ES未启用时返回nil, 搜索服务自行降级
func GetES() *elasticsearch.Client {
	esOne.Do(func() {
		if !config.GlobalConfig.Elasticsearch.Enabled {
			return
		}
		client, err := InitES()
		if err != nil {
			logger.Errorf("Elasticsearch初始化失败: %v", err)
			return
		}
		esClient = client
	})
	return esClient
}
