package service

import (
	"testing"

	"github.com/nsxzhou1114/blog-data/internal/dto"
	"github.com/nsxzhou1114/blog-data/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkService_CreateLink(t *testing.T) {
	db := newTestDB(t)
	s := newTestLinkService(db)

	t.Run("创建成功且展示位置缺省为首页", func(t *testing.T) {
		link, err := s.CreateLink(&dto.LinkCreateRequest{
			Name:     "友站",
			URL:      "https://example.com",
			Sequence: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, model.LinkShowIndex, link.ShowType)
		assert.True(t, link.IsEnable)
	})

	t.Run("重名被拒绝", func(t *testing.T) {
		_, err := s.CreateLink(&dto.LinkCreateRequest{
			Name:     "友站",
			URL:      "https://other.example.com",
			Sequence: 2,
		})
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("排序号冲突被拒绝", func(t *testing.T) {
		_, err := s.CreateLink(&dto.LinkCreateRequest{
			Name:     "另一站",
			URL:      "https://other.example.com",
			Sequence: 1,
		})
		assert.ErrorIs(t, err, ErrDuplicateSequence)
	})
}

func TestLinkService_ListLinks(t *testing.T) {
	db := newTestDB(t)
	s := newTestLinkService(db)

	mustCreateLink := func(name string, seq int, showType string) *model.Link {
		link, err := s.CreateLink(&dto.LinkCreateRequest{
			Name:     name,
			URL:      "https://example.com/" + name,
			Sequence: seq,
			ShowType: showType,
		})
		require.NoError(t, err)
		return link
	}

	indexLink := mustCreateLink("首页站", 3, model.LinkShowIndex)
	mustCreateLink("列表站", 2, model.LinkShowList)
	allLink := mustCreateLink("全站", 1, model.LinkShowAll)
	disabled := mustCreateLink("停用站", 4, model.LinkShowIndex)
	require.NoError(t, s.SetLinkEnable(disabled.ID, false))

	t.Run("按展示位置过滤且全站位置总是包含", func(t *testing.T) {
		links, err := s.ListLinks(model.LinkShowIndex)
		require.NoError(t, err)
		require.Len(t, links, 2)
		// 按sequence升序
		assert.Equal(t, allLink.ID, links[0].ID)
		assert.Equal(t, indexLink.ID, links[1].ID)
	})

	t.Run("位置为空时返回全部启用链接", func(t *testing.T) {
		links, err := s.ListLinks("")
		require.NoError(t, err)
		assert.Len(t, links, 3)
	})

	t.Run("启停不存在的链接返回错误", func(t *testing.T) {
		assert.ErrorIs(t, s.SetLinkEnable(9999, false), ErrLinkNotFound)
	})

	t.Run("删除后不再出现", func(t *testing.T) {
		require.NoError(t, s.DeleteLink(indexLink.ID))
		links, err := s.ListLinks(model.LinkShowIndex)
		require.NoError(t, err)
		assert.Len(t, links, 1)

		assert.ErrorIs(t, s.DeleteLink(indexLink.ID), ErrLinkNotFound)
	})
}

func TestLinkService_SideBar(t *testing.T) {
	db := newTestDB(t)
	s := newTestLinkService(db)

	t.Run("创建并按排序键展示", func(t *testing.T) {
		second, err := s.CreateSideBar(&dto.SideBarCreateRequest{
			Name:     "公告",
			Content:  "<p>欢迎</p>",
			Sequence: 2,
		})
		require.NoError(t, err)

		first, err := s.CreateSideBar(&dto.SideBarCreateRequest{
			Name:     "关于",
			Content:  "<p>关于本站</p>",
			Sequence: 1,
		})
		require.NoError(t, err)

		sidebars, err := s.ListSideBars()
		require.NoError(t, err)
		require.Len(t, sidebars, 2)
		assert.Equal(t, first.ID, sidebars[0].ID)
		assert.Equal(t, second.ID, sidebars[1].ID)
	})

	t.Run("排序号冲突被拒绝", func(t *testing.T) {
		_, err := s.CreateSideBar(&dto.SideBarCreateRequest{
			Name:     "重复排序",
			Content:  "<p>内容</p>",
			Sequence: 1,
		})
		assert.ErrorIs(t, err, ErrDuplicateSequence)
	})

	t.Run("停用后不再展示", func(t *testing.T) {
		sidebars, err := s.ListSideBars()
		require.NoError(t, err)
		require.NotEmpty(t, sidebars)

		require.NoError(t, s.SetSideBarEnable(sidebars[0].ID, false))

		remaining, err := s.ListSideBars()
		require.NoError(t, err)
		assert.Len(t, remaining, len(sidebars)-1)
	})

	t.Run("启停不存在的侧边栏返回错误", func(t *testing.T) {
		assert.ErrorIs(t, s.SetSideBarEnable(9999, true), ErrSideBarNotFound)
	})
}
