package dto

// CategoryCreateRequest 创建分类请求
type CategoryCreateRequest struct {
	Name     string `json:"name" validate:"required,max=30"`
	Slug     string `json:"slug" validate:"omitempty,max=60"`
	ParentID *uint  `json:"parent_id" validate:"omitempty,min=1"`
}

// CategoryUpdateRequest 更新分类请求
// ParentID为全量替换语义: 缺省(nil)表示移动到根, 不表示保持原父分类
type CategoryUpdateRequest struct {
	Name     string `json:"name" validate:"required,max=30"`
	Slug     string `json:"slug" validate:"omitempty,max=60"`
	ParentID *uint  `json:"parent_id" validate:"omitempty,min=1"`
}

// CategoryResponse 分类响应
type CategoryResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ParentID  *uint  `json:"parent_id"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
