package service

import (
	"sync"

	"github.com/nsxzhou1114/blog-data/internal/database"
	"github.com/nsxzhou1114/blog-data/internal/dto"
	"github.com/nsxzhou1114/blog-data/internal/logger"
	"github.com/nsxzhou1114/blog-data/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	linkService     *LinkService
	linkServiceOnce sync.Once
)

// LinkService 展示组件服务: 友情链接与侧边栏
// 与其他实体没有任何关联, 各自以唯一sequence作为排序键
type LinkService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewLinkService 创建展示组件服务实例
func NewLinkService() *LinkService {
	linkServiceOnce.Do(func() {
		linkService = &LinkService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return linkService
}

// CreateLink 创建友情链接
func (s *LinkService) CreateLink(req *dto.LinkCreateRequest) (*model.Link, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&model.Link{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateName
	}
	if err := s.db.Model(&model.Link{}).Where("sequence = ?", req.Sequence).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateSequence
	}

	link := &model.Link{
		Name:     req.Name,
		URL:      req.URL,
		Sequence: req.Sequence,
		IsEnable: true,
		ShowType: req.ShowType,
	}
	if link.ShowType == "" {
		link.ShowType = model.LinkShowIndex
	}

	if err := s.db.Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

// ListLinks 获取启用的友情链接, 按sequence排序
// showType为空时不过滤展示位置
func (s *LinkService) ListLinks(showType string) ([]model.Link, error) {
	query := s.db.Where("is_enable = ?", true)
	if showType != "" {
		query = query.Where("show_type IN ?", []string{showType, model.LinkShowAll})
	}

	var links []model.Link
	if err := query.Order("sequence asc").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// SetLinkEnable 友情链接启停
func (s *LinkService) SetLinkEnable(id uint, enable bool) error {
	result := s.db.Model(&model.Link{}).Where("id = ?", id).UpdateColumn("is_enable", enable)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// DeleteLink 删除友情链接
func (s *LinkService) DeleteLink(id uint) error {
	result := s.db.Delete(&model.Link{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// CreateSideBar 创建侧边栏
func (s *LinkService) CreateSideBar(req *dto.SideBarCreateRequest) (*model.SideBar, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&model.SideBar{}).Where("sequence = ?", req.Sequence).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateSequence
	}

	sidebar := &model.SideBar{
		Name:     req.Name,
		Content:  req.Content,
		Sequence: req.Sequence,
		IsEnable: true,
	}
	if err := s.db.Create(sidebar).Error; err != nil {
		return nil, err
	}
	return sidebar, nil
}

// ListSideBars 获取启用的侧边栏, 按sequence排序
func (s *LinkService) ListSideBars() ([]model.SideBar, error) {
	var sidebars []model.SideBar
	if err := s.db.Where("is_enable = ?", true).Order("sequence asc").Find(&sidebars).Error; err != nil {
		return nil, err
	}
	return sidebars, nil
}

// SetSideBarEnable 侧边栏启停
func (s *LinkService) SetSideBarEnable(id uint, enable bool) error {
	result := s.db.Model(&model.SideBar{}).Where("id = ?", id).UpdateColumn("is_enable", enable)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSideBarNotFound
	}
	return nil
}

// DeleteSideBar 删除侧边栏
func (s *LinkService) DeleteSideBar(id uint) error {
	result := s.db.Delete(&model.SideBar{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSideBarNotFound
	}
	return nil
}
