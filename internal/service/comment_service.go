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

// maxCommentDepth 回复树深度上限
// 数据层不阻止评论把自己或祖先设为父节点, 这里防御性校验
const maxCommentDepth = 10

var (
	commentService     *CommentService
	commentServiceOnce sync.Once
)

// CommentService 评论服务
type CommentService struct {
	db        *gorm.DB
	cache     cache.Cache
	logger    *zap.SugaredLogger
	sensitive *SensitiveService
	listTTL   time.Duration
}

// NewCommentService 创建评论服务实例
func NewCommentService() *CommentService {
	commentServiceOnce.Do(func() {
		listTTL := cache.CommentListExpiration
		if cfg := config.GlobalConfig; cfg != nil && cfg.Cache.CommentListTTL > 0 {
			listTTL = cfg.Cache.CommentListTTL
		}
		commentService = &CommentService{
			db:        database.GetDB(),
			cache:     cache.GetManager().GetCache(),
			logger:    logger.GetSugaredLogger(),
			sensitive: NewSensitiveService(),
			listTTL:   listTTL,
		}
	})
	return commentService
}

// Create 创建评论
func (s *CommentService) Create(ctx context.Context, authorID uint, req *dto.CommentCreateRequest) (*model.Comment, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	// 检查文章是否存在且开放评论
	var article model.Article
	if err := s.db.First(&article, req.ArticleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	if article.CommentStatus == model.CommentStatusClosed {
		return nil, ErrCommentClosed
	}

	// 回复时校验父评论
	if req.ParentID != nil && *req.ParentID > 0 {
		if err := s.checkParent(req.ArticleID, *req.ParentID); err != nil {
			return nil, err
		}
	}

	body := utils.SanitizeUGC(req.Body)
	if s.sensitive != nil {
		body = s.sensitive.Filter(body)
	}

	comment := &model.Comment{
		Body:      body,
		AuthorID:  authorID,
		ArticleID: req.ArticleID,
		ParentID:  req.ParentID,
		IsEnable:  true,
	}

	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}

	// 新评论直接失效列表缓存, 不依赖TTL兜底
	s.invalidateList(ctx, req.ArticleID)

	return comment, nil
}

// checkParent 校验父评论: 必须存在、同属一篇文章, 且回复链无环不超深
func (s *CommentService) checkParent(articleID, parentID uint) error {
	visited := make(map[uint]struct{})
	depth := 0

	cur := parentID
	for {
		if _, ok := visited[cur]; ok {
			return ErrCyclicComment
		}
		visited[cur] = struct{}{}

		var parent model.Comment
		if err := s.db.First(&parent, cur).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if cur == parentID {
					return ErrCommentNotFound
				}
				// 祖先悬空, 视作已到根
				return nil
			}
			return err
		}

		if cur == parentID && parent.ArticleID != articleID {
			return ErrCommentParentMismatch
		}

		depth++
		if depth >= maxCommentDepth {
			return ErrCommentTooDeep
		}

		if parent.ParentID == nil {
			return nil
		}
		cur = *parent.ParentID
	}
}

// ListVisible 获取文章的可见评论, 最新在前
// 按文章缓存, 创建/审核走写路径失效
func (s *CommentService) ListVisible(ctx context.Context, articleID uint) ([]model.Comment, error) {
	key := fmt.Sprintf(cache.ArticleCommentsKey, articleID)
	if s.cache != nil {
		var cached []model.Comment
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !cache.IsCacheMiss(err) {
			s.logger.Warnf("读取评论列表缓存失败: %v", err)
		}
	}

	// 文章按引用核实, 不读快照
	var count int64
	if err := s.db.Model(&model.Article{}).Where("id = ?", articleID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrArticleNotFound
	}

	var comments []model.Comment
	if err := s.db.Where("article_id = ? AND is_enable = ?", articleID, true).
		Order("created_at desc, id desc").
		Find(&comments).Error; err != nil {
		return nil, err
	}

	if s.cache != nil {
		ttl := s.listTTL
		if ttl <= 0 {
			ttl = cache.CommentListExpiration
		}
		if err := s.cache.SetJSON(ctx, key, comments, ttl); err != nil {
			s.logger.Warnf("写入评论列表缓存失败: %v", err)
		}
	}
	return comments, nil
}

// SetEnable 审核开关
func (s *CommentService) SetEnable(ctx context.Context, id uint, enable bool) error {
	comment, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Model(comment).UpdateColumn("is_enable", enable).Error; err != nil {
		return err
	}

	s.invalidateList(ctx, comment.ArticleID)
	return nil
}

// Delete 删除评论及其整棵回复子树
func (s *CommentService) Delete(ctx context.Context, id uint) error {
	comment, err := s.GetByID(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		ids, err := s.collectReplyTree(tx, id)
		if err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&model.Comment{}).Error
	})
	if err != nil {
		return err
	}

	s.invalidateList(ctx, comment.ArticleID)
	return nil
}

// GetByID 根据ID获取评论
func (s *CommentService) GetByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// collectReplyTree 收集评论及其全部后代ID, 带环防护
func (s *CommentService) collectReplyTree(tx *gorm.DB, id uint) ([]uint, error) {
	visited := map[uint]struct{}{}
	ids := []uint{}
	queue := []uint{id}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, ok := visited[cur]; ok {
			continue
		}
		visited[cur] = struct{}{}
		ids = append(ids, cur)

		var childIDs []uint
		if err := tx.Model(&model.Comment{}).Where("parent_id = ?", cur).Pluck("id", &childIDs).Error; err != nil {
			return nil, err
		}
		queue = append(queue, childIDs...)
	}
	return ids, nil
}

// invalidateList 失效文章的评论列表缓存
func (s *CommentService) invalidateList(ctx context.Context, articleID uint) {
	if s.cache == nil {
		return
	}
	key := fmt.Sprintf(cache.ArticleCommentsKey, articleID)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warnf("失效评论列表缓存失败: %v", err)
	}
}
