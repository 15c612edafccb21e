package model

import (
	"fmt"

	"gorm.io/gorm"
)

// Category 分类模型
// 通过ParentID自引用构成分类森林, 祖先链/子孙集合由服务层派生, 不落库
type Category struct {
	Base
	Name     string `gorm:"type:varchar(30);not null;uniqueIndex" json:"name"`
	Slug     string `gorm:"type:varchar(60);not null;default:'no-slug'" json:"slug"`
	ParentID *uint  `gorm:"index" json:"parent_id"`

	// 关联
	Parent   *Category   `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []*Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Articles []*Article  `gorm:"foreignKey:CategoryID" json:"articles,omitempty"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate 创建前钩子
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = SlugDefault
	}
	return nil
}

// URL 分类页相对路径
func (c *Category) URL() string {
	return fmt.Sprintf("/category/%s", c.Slug)
}
