package model

// 友情链接展示位置
const (
	LinkShowIndex = "i" // 首页
	LinkShowList  = "l" // 列表页
	LinkShowPost  = "p" // 文章页
	LinkShowAll   = "a" // 全站
)

// Link 友情链接模型
type Link struct {
	Base
	Name     string `gorm:"type:varchar(30);not null;uniqueIndex" json:"name"`
	URL      string `gorm:"type:varchar(255);not null" json:"url"`
	Sequence int    `gorm:"not null;uniqueIndex" json:"sequence"` // 排序键
	IsEnable bool   `gorm:"not null;default:true" json:"is_enable"`
	ShowType string `gorm:"type:varchar(1);not null;default:'i'" json:"show_type"`
}

// TableName 指定表名
func (Link) TableName() string {
	return "links"
}
