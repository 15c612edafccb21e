package dto

// CommentCreateRequest 创建评论请求
type CommentCreateRequest struct {
	ArticleID uint   `json:"article_id" validate:"required,min=1"`
	Body      string `json:"body" validate:"required,max=300"`
	ParentID  *uint  `json:"parent_id" validate:"omitempty,min=1"`
}

// CommentResponse 评论响应
type CommentResponse struct {
	ID        uint   `json:"id"`
	Body      string `json:"body"`
	AuthorID  uint   `json:"author_id"`
	ArticleID uint   `json:"article_id"`
	ParentID  *uint  `json:"parent_id"`
	CreatedAt string `json:"created_at"`
}
