package dto

// ArticleCreateRequest 创建文章请求
type ArticleCreateRequest struct {
	Title         string `json:"title" validate:"required,max=200"`
	Body          string `json:"body" validate:"required"`
	AuthorID      uint   `json:"author_id" validate:"required,min=1"`
	CategoryID    uint   `json:"category_id" validate:"required,min=1"`
	TagIDs        []uint `json:"tag_ids" validate:"omitempty,dive,min=1"`
	Status        string `json:"status" validate:"omitempty,oneof=draft published"`
	CommentStatus string `json:"comment_status" validate:"omitempty,oneof=open closed"`
	Kind          string `json:"kind" validate:"omitempty,oneof=post page"`
	Weight        int    `json:"weight"`
}

// ArticleUpdateRequest 更新文章请求
type ArticleUpdateRequest struct {
	Title         string `json:"title" validate:"omitempty,max=200"`
	Body          string `json:"body"`
	CategoryID    uint   `json:"category_id" validate:"omitempty,min=1"`
	TagIDs        []uint `json:"tag_ids" validate:"omitempty,dive,min=1"`
	Status        string `json:"status" validate:"omitempty,oneof=draft published"`
	CommentStatus string `json:"comment_status" validate:"omitempty,oneof=open closed"`
	Weight        *int   `json:"weight"`
}

// ArticleListRequest 文章列表请求
type ArticleListRequest struct {
	Page       int    `json:"page" validate:"omitempty,min=1"`
	PageSize   int    `json:"page_size" validate:"omitempty,min=1,max=100"`
	Status     string `json:"status" validate:"omitempty,oneof=draft published"`
	Kind       string `json:"kind" validate:"omitempty,oneof=post page"`
	CategoryID uint   `json:"category_id" validate:"omitempty,min=1"`
	TagID      uint   `json:"tag_id" validate:"omitempty,min=1"`
}

// BreadcrumbItem 面包屑条目, 祖先链的展示投影
type BreadcrumbItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AdjacentArticle 相邻文章摘要
type AdjacentArticle struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}
