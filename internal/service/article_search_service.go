package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/nsxzhou1114/blog-data/internal/database"
	"github.com/nsxzhou1114/blog-data/internal/logger"
	"github.com/nsxzhou1114/blog-data/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	articleSearchService     *ArticleSearchService
	articleSearchServiceOnce sync.Once
)

// ArticleSearchService 文章搜索服务
// esClient为nil时所有写入降级为空操作, 搜索返回错误
type ArticleSearchService struct {
	db       *gorm.DB
	esClient *elasticsearch.Client
	log      *zap.SugaredLogger
}

// NewArticleSearchService 创建文章搜索服务实例
func NewArticleSearchService() *ArticleSearchService {
	articleSearchServiceOnce.Do(func() {
		articleSearchService = &ArticleSearchService{
			db:       database.GetDB(),
			esClient: database.GetES(),
			log:      logger.GetSugaredLogger(),
		}
	})
	return articleSearchService
}

// Enabled 搜索是否可用
func (s *ArticleSearchService) Enabled() bool {
	return s != nil && s.esClient != nil
}

// IndexArticle 写入或覆盖文章文档, 瞬时故障重试
func (s *ArticleSearchService) IndexArticle(ctx context.Context, doc *model.ESArticle) error {
	if !s.Enabled() {
		return nil
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("序列化搜索文档失败: %v", err)
	}

	return retry.Do(
		func() error {
			res, err := s.esClient.Index(
				model.ESArticleIndexName,
				bytes.NewReader(docJSON),
				s.esClient.Index.WithContext(ctx),
				s.esClient.Index.WithDocumentID(doc.ID),
			)
			if err != nil {
				return err
			}
			defer res.Body.Close()
			if res.IsError() {
				return fmt.Errorf("写入搜索文档失败: %s", res.String())
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.OnRetry(func(n uint, err error) {
			s.log.Warnf("写入搜索文档 %s 第%d次重试: %v", doc.ID, n+1, err)
		}),
	)
}

// DeleteArticle 删除文章文档, 文档不存在视为成功
func (s *ArticleSearchService) DeleteArticle(ctx context.Context, docID string) error {
	if !s.Enabled() {
		return nil
	}

	res, err := s.esClient.Delete(
		model.ESArticleIndexName,
		docID,
		s.esClient.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return nil
	}
	if res.IsError() {
		return fmt.Errorf("删除搜索文档失败: %s", res.String())
	}
	return nil
}

// Search 关键词搜索已发布文章, 返回文章ID与总数
func (s *ArticleSearchService) Search(ctx context.Context, keyword string, page, pageSize int) ([]uint, int64, error) {
	if !s.Enabled() {
		return nil, 0, fmt.Errorf("搜索服务未启用")
	}
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"multi_match": map[string]interface{}{
							"query":  keyword,
							"fields": []string{"title^3", "body", "summary^2", "tags"},
							"type":   "best_fields",
						},
					},
				},
				"filter": []map[string]interface{}{
					{
						"term": map[string]interface{}{"status": model.ArticleStatusPublished},
					},
				},
			},
		},
		"from": (page - 1) * pageSize,
		"size": pageSize,
		"sort": []map[string]interface{}{
			{"_score": map[string]interface{}{"order": "desc"}},
			{"published_at": map[string]interface{}{"order": "desc"}},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, 0, err
	}

	res, err := s.esClient.Search(
		s.esClient.Search.WithContext(ctx),
		s.esClient.Search.WithIndex(model.ESArticleIndexName),
		s.esClient.Search.WithBody(&buf),
		s.esClient.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, 0, fmt.Errorf("搜索失败: %s", res.String())
	}

	var result map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, 0, err
	}

	total := int64(result["hits"].(map[string]interface{})["total"].(map[string]interface{})["value"].(float64))
	hits := result["hits"].(map[string]interface{})["hits"].([]interface{})

	articleIDs := make([]uint, 0, len(hits))
	for _, hit := range hits {
		source := hit.(map[string]interface{})["_source"].(map[string]interface{})
		articleIDs = append(articleIDs, uint(source["article_id"].(float64)))
	}

	return articleIDs, total, nil
}

// CreateIndex 按mapping重建文章索引
func (s *ArticleSearchService) CreateIndex(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}

	esArticle := model.ESArticle{}
	indexName := esArticle.ESIndexName()

	res, err := s.esClient.Indices.Exists([]string{indexName})
	if err != nil {
		return err
	}
	res.Body.Close()

	if res.StatusCode == 200 {
		delRes, err := s.esClient.Indices.Delete([]string{indexName})
		if err != nil {
			return err
		}
		delRes.Body.Close()
	}

	createRes, err := s.esClient.Indices.Create(
		indexName,
		s.esClient.Indices.Create.WithContext(ctx),
		s.esClient.Indices.Create.WithBody(strings.NewReader(esArticle.ESMapping())),
	)
	if err != nil {
		return err
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("创建索引失败: %s", createRes.String())
	}
	return nil
}

// SyncAll 全量同步文章到搜索索引
func (s *ArticleSearchService) SyncAll(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}

	var articles []model.Article
	if err := s.db.Preload("Category").Preload("Tags").Find(&articles).Error; err != nil {
		return err
	}

	synced := 0
	for i := range articles {
		if err := s.IndexArticle(ctx, articles[i].ToSearchDocument()); err != nil {
			s.log.Warnf("同步文章 %d 到搜索索引失败: %v", articles[i].ID, err)
			continue
		}
		synced++
	}

	refreshRes, err := s.esClient.Indices.Refresh(
		s.esClient.Indices.Refresh.WithIndex(model.ESArticleIndexName),
	)
	if err != nil {
		return err
	}
	refreshRes.Body.Close()

	s.log.Infof("文章索引同步完成: %d/%d", synced, len(articles))
	return nil
}
