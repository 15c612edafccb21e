package model

import (
	"fmt"

	"gorm.io/gorm"
)

// Tag 标签模型
type Tag struct {
	Base
	Name string `gorm:"type:varchar(30);not null;uniqueIndex" json:"name"`
	Slug string `gorm:"type:varchar(60);not null;default:'no-slug'" json:"slug"`

	// 关联
	Articles []*Article `gorm:"many2many:article_tags;" json:"articles,omitempty"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}

// BeforeCreate 创建前钩子
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.Slug == "" {
		t.Slug = SlugDefault
	}
	return nil
}

// URL 标签页相对路径
func (t *Tag) URL() string {
	return fmt.Sprintf("/tag/%s", t.Slug)
}

// ArticleTag 文章-标签关联模型
type ArticleTag struct {
	ArticleID uint `gorm:"primaryKey;type:int(11);not null" json:"article_id"`
	TagID     uint `gorm:"primaryKey;type:int(11);not null" json:"tag_id"`
}

// TableName 指定表名
func (ArticleTag) TableName() string {
	return "article_tags"
}
