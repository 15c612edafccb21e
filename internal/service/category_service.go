package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nsxzhou1114/blog-data/internal/config"
	"github.com/nsxzhou1114/blog-data/internal/database"
	"github.com/nsxzhou1114/blog-data/internal/dto"
	"github.com/nsxzhou1114/blog-data/internal/logger"
	"github.com/nsxzhou1114/blog-data/internal/model"
	"github.com/nsxzhou1114/blog-data/pkg/cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var (
	categoryService     *CategoryService
	categoryServiceOnce sync.Once
)

// CategoryService 分类服务
// 除CRUD外提供两个派生: 祖先链与子孙集合, 均走读穿缓存
type CategoryService struct {
	db      *gorm.DB
	cache   cache.Cache
	logger  *zap.SugaredLogger
	sf      singleflight.Group
	treeTTL time.Duration
}

// NewCategoryService 创建分类服务实例
func NewCategoryService() *CategoryService {
	categoryServiceOnce.Do(func() {
		treeTTL := cache.CategoryTreeExpiration
		if cfg := config.GlobalConfig; cfg != nil && cfg.Cache.CategoryTreeTTL > 0 {
			treeTTL = cfg.Cache.CategoryTreeTTL
		}
		categoryService = &CategoryService{
			db:      database.GetDB(),
			cache:   cache.GetManager().GetCache(),
			logger:  logger.GetSugaredLogger(),
			treeTTL: treeTTL,
		}
	})
	return categoryService
}

// Create 创建分类
func (s *CategoryService) Create(req *dto.CategoryCreateRequest) (*model.Category, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	// 检查分类名是否已存在
	var count int64
	if err := s.db.Model(&model.Category{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateName
	}

	// 检查父分类是否存在
	if req.ParentID != nil {
		if _, err := s.GetByID(*req.ParentID); err != nil {
			return nil, err
		}
	}

	category := &model.Category{
		Name:     req.Name,
		Slug:     req.Slug,
		ParentID: req.ParentID,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, err
	}

	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(ctx context.Context, id uint, req *dto.CategoryUpdateRequest) (*model.Category, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	// 检查新分类名是否与其他分类冲突
	if category.Name != req.Name {
		var count int64
		if err := s.db.Model(&model.Category{}).Where("name = ? AND id != ?", req.Name, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateName
		}
	}

	// 换父分类时拒绝产生环: 新父不能是自己或自己的子孙
	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, ErrCyclicHierarchy
		}
		if _, err := s.GetByID(*req.ParentID); err != nil {
			return nil, err
		}
		subtree, err := s.computeDescendants(s.db, id)
		if err != nil && !errors.Is(err, ErrCyclicHierarchy) {
			return nil, err
		}
		for _, c := range subtree {
			if c.ID == *req.ParentID {
				return nil, ErrCyclicHierarchy
			}
		}
	}

	// 先收集受影响的子树, 变更后这些节点的派生全部失效
	affected := s.affectedIDs(id)
	// 新父的祖先链同样获得新的子孙
	if req.ParentID != nil {
		affected = append(affected, s.affectedIDs(*req.ParentID)...)
	}

	updates := map[string]interface{}{
		"name":      req.Name,
		"parent_id": req.ParentID,
	}
	if req.Slug != "" {
		updates["slug"] = req.Slug
	}

	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.invalidateTreeCache(ctx, affected)

	return s.GetByID(id)
}

// Delete 删除分类
// 级联删除整棵子树及其文章、文章的评论与标签关联
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	affected := s.affectedIDs(id)
	var articleIDs []uint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		subtree, err := s.computeDescendants(tx, id)
		if err != nil && !errors.Is(err, ErrCyclicHierarchy) {
			return err
		}
		ids := make([]uint, 0, len(subtree))
		for _, c := range subtree {
			ids = append(ids, c.ID)
		}
		if len(ids) == 0 {
			ids = append(ids, id)
		}

		if err := tx.Model(&model.Article{}).Where("category_id IN ?", ids).Pluck("id", &articleIDs).Error; err != nil {
			return err
		}

		if len(articleIDs) > 0 {
			if err := tx.Where("article_id IN ?", articleIDs).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("article_id IN ?", articleIDs).Delete(&model.ArticleTag{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", articleIDs).Delete(&model.Article{}).Error; err != nil {
				return err
			}
		}

		return tx.Where("id IN ?", ids).Delete(&model.Category{}).Error
	})
	if err != nil {
		return err
	}

	s.invalidateTreeCache(ctx, affected)
	s.invalidateArticleCache(ctx, articleIDs)
	return nil
}

// GetByID 根据ID获取分类
func (s *CategoryService) GetByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// List 获取全部分类, 按名称排序
func (s *CategoryService) List() ([]model.Category, error) {
	var categories []model.Category
	if err := s.db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// AncestorChain 获取祖先链: 自身在前, 根在后
// 按分类缓存, 长TTL; 写路径另行失效
func (s *CategoryService) AncestorChain(ctx context.Context, id uint) ([]model.Category, error) {
	key := fmt.Sprintf(cache.CategoryAncestorsKey, id)
	return s.cachedDerivation(ctx, key, func() ([]model.Category, error) {
		return s.computeAncestors(s.db, id)
	})
}

// DescendantSet 获取子孙集合, 含自身, 去重, 按ID稳定排序
func (s *CategoryService) DescendantSet(ctx context.Context, id uint) ([]model.Category, error) {
	key := fmt.Sprintf(cache.CategoryDescendantsKey, id)
	return s.cachedDerivation(ctx, key, func() ([]model.Category, error) {
		return s.computeDescendants(s.db, id)
	})
}

// cachedDerivation 派生结果的读穿缓存, singleflight合并并发计算
func (s *CategoryService) cachedDerivation(ctx context.Context, key string, compute func() ([]model.Category, error)) ([]model.Category, error) {
	if s.cache != nil {
		var cached []model.Category
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !cache.IsCacheMiss(err) {
			s.logger.Warnf("读取派生缓存失败: key=%s err=%v", key, err)
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		result, err := compute()
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			ttl := s.treeTTL
			if ttl <= 0 {
				ttl = cache.CategoryTreeExpiration
			}
			if err := s.cache.SetJSON(ctx, key, result, ttl); err != nil {
				s.logger.Warnf("写入派生缓存失败: key=%s err=%v", key, err)
			}
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Category), nil
}

// computeAncestors 沿父引用逐级上溯
// 带已访问集合: 数据层不阻止环, 出现重复访问立即报错而不是死循环
func (s *CategoryService) computeAncestors(db *gorm.DB, id uint) ([]model.Category, error) {
	visited := make(map[uint]struct{})
	chain := make([]model.Category, 0, 4)

	cur := id
	for {
		if _, ok := visited[cur]; ok {
			return nil, ErrCyclicHierarchy
		}
		visited[cur] = struct{}{}

		var category model.Category
		if err := db.First(&category, cur).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if cur == id {
					return nil, ErrCategoryNotFound
				}
				// 父引用悬空, 视作已到根
				s.logger.Warnf("分类 %d 的父引用 %d 不存在", id, cur)
				return chain, nil
			}
			return nil, err
		}

		chain = append(chain, category)
		if category.ParentID == nil {
			return chain, nil
		}
		cur = *category.ParentID
	}
}

// computeDescendants 沿子引用广度遍历, 同样带环防护
func (s *CategoryService) computeDescendants(db *gorm.DB, id uint) ([]model.Category, error) {
	var all []model.Category
	if err := db.Find(&all).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]model.Category, len(all))
	children := make(map[uint][]uint, len(all))
	for _, c := range all {
		byID[c.ID] = c
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	if _, ok := byID[id]; !ok {
		return nil, ErrCategoryNotFound
	}

	visited := make(map[uint]struct{})
	result := make([]model.Category, 0, 4)
	queue := []uint{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, ok := visited[cur]; ok {
			continue
		}
		visited[cur] = struct{}{}
		result = append(result, byID[cur])
		queue = append(queue, children[cur]...)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// affectedIDs 收集写操作波及的分类: 自身子树加上旧祖先链
// 环或查询失败时退化为仅自身, 剩余陈旧项由TTL兜底
func (s *CategoryService) affectedIDs(id uint) []uint {
	ids := []uint{id}
	seen := map[uint]struct{}{id: {}}

	if subtree, err := s.computeDescendants(s.db, id); err == nil {
		for _, c := range subtree {
			if _, ok := seen[c.ID]; !ok {
				seen[c.ID] = struct{}{}
				ids = append(ids, c.ID)
			}
		}
	}
	if chain, err := s.computeAncestors(s.db, id); err == nil {
		for _, c := range chain {
			if _, ok := seen[c.ID]; !ok {
				seen[c.ID] = struct{}{}
				ids = append(ids, c.ID)
			}
		}
	}
	return ids
}

// invalidateTreeCache 删除指定分类的派生缓存
func (s *CategoryService) invalidateTreeCache(ctx context.Context, ids []uint) {
	if s.cache == nil || len(ids) == 0 {
		return
	}
	keys := make([]string, 0, len(ids)*2)
	for _, id := range ids {
		keys = append(keys,
			fmt.Sprintf(cache.CategoryAncestorsKey, id),
			fmt.Sprintf(cache.CategoryDescendantsKey, id),
		)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warnf("失效分类派生缓存失败: %v", err)
	}
}

// invalidateArticleCache 删除级联文章的派生缓存
func (s *CategoryService) invalidateArticleCache(ctx context.Context, articleIDs []uint) {
	if s.cache == nil || len(articleIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(articleIDs)*2)
	for _, id := range articleIDs {
		keys = append(keys,
			fmt.Sprintf(cache.ArticleBreadcrumbKey, id),
			fmt.Sprintf(cache.ArticleCommentsKey, id),
		)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warnf("失效文章派生缓存失败: %v", err)
	}
}

// GenerateCategoryResponse 生成分类响应DTO
func (s *CategoryService) GenerateCategoryResponse(category *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Slug:      category.Slug,
		ParentID:  category.ParentID,
		URL:       category.URL(),
		CreatedAt: category.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: category.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
