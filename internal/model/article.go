package model

import (
	"fmt"
	"time"
)

// 文章状态
const (
	ArticleStatusDraft     = "draft"     // 草稿
	ArticleStatusPublished = "published" // 已发布
)

// 评论开关
const (
	CommentStatusOpen   = "open"   // 允许评论
	CommentStatusClosed = "closed" // 关闭评论
)

// 文章类型
const (
	ArticleKindPost = "post" // 普通文章
	ArticleKindPage = "page" // 独立页面
)

// Article 文章模型
type Article struct {
	Base
	Title         string     `gorm:"type:varchar(200);not null;uniqueIndex" json:"title"`
	Body          string     `gorm:"type:longtext;not null" json:"body"`
	Summary       string     `gorm:"type:text" json:"summary"`
	PublishedAt   *time.Time `gorm:"index" json:"published_at"` // 为空表示未发布
	Status        string     `gorm:"type:varchar(20);not null;default:'published';index" json:"status"`
	CommentStatus string     `gorm:"type:varchar(20);not null;default:'open'" json:"comment_status"`
	Kind          string     `gorm:"type:varchar(20);not null;default:'post';index" json:"kind"`
	Views         int        `gorm:"type:int(11);not null;default:0" json:"views"` // 只增不减
	Weight        int        `gorm:"type:int(11);not null;default:0;index" json:"weight"`
	AuthorID      uint       `gorm:"type:int(11);not null;index" json:"author_id"`
	CategoryID    uint       `gorm:"type:int(11);not null;index" json:"category_id"`

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags     []Tag    `gorm:"many2many:article_tags;" json:"tags,omitempty"`
	TagIDs   []uint   `gorm:"-" json:"tag_ids,omitempty"` // 用于接收标签ID列表
}

// TableName 指定表名
func (Article) TableName() string {
	return "articles"
}

// URL 文章页相对路径
func (a *Article) URL() string {
	return fmt.Sprintf("/article/%d", a.ID)
}

// IsPublished 文章是否已发布
func (a *Article) IsPublished() bool {
	return a.Status == ArticleStatusPublished
}

// ToSearchDocument 转换为搜索文档
func (a *Article) ToSearchDocument() *ESArticle {
	tags := make([]string, 0, len(a.Tags))
	for _, tag := range a.Tags {
		tags = append(tags, tag.Name)
	}

	var publishedAt time.Time
	if a.PublishedAt != nil {
		publishedAt = *a.PublishedAt
	}

	return &ESArticle{
		ID:           fmt.Sprintf("article_%d", a.ID),
		ArticleID:    a.ID,
		Title:        a.Title,
		Body:         a.Body,
		Summary:      a.Summary,
		CategoryID:   a.CategoryID,
		CategoryName: a.Category.Name,
		AuthorID:     a.AuthorID,
		Status:       a.Status,
		Kind:         a.Kind,
		Tags:         tags,
		PublishedAt:  publishedAt,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
