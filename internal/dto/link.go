package dto

// LinkCreateRequest 创建友情链接请求
type LinkCreateRequest struct {
	Name     string `json:"name" validate:"required,max=30"`
	URL      string `json:"url" validate:"required,url,max=255"`
	Sequence int    `json:"sequence" validate:"required"`
	ShowType string `json:"show_type" validate:"omitempty,oneof=i l p a"`
}

// SideBarCreateRequest 创建侧边栏请求
type SideBarCreateRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Content  string `json:"content" validate:"required"`
	Sequence int    `json:"sequence" validate:"required"`
}
