package model

// SideBar 侧边栏模型, 可以展示一些HTML内容
type SideBar struct {
	Base
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Sequence int    `gorm:"not null;uniqueIndex" json:"sequence"` // 排序键
	IsEnable bool   `gorm:"not null;default:true" json:"is_enable"`
}

// TableName 指定表名
func (SideBar) TableName() string {
	return "sidebars"
}
