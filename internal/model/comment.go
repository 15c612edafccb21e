package model

// CommentBodyMaxLen 评论正文长度上限
const CommentBodyMaxLen = 300

// Comment 评论模型
// ParentID自引用构成回复树, 深度与环由服务层校验
type Comment struct {
	Base
	Body      string `gorm:"type:varchar(300);not null" json:"body"`
	AuthorID  uint   `gorm:"type:int(11);not null;index" json:"author_id"`
	ArticleID uint   `gorm:"type:int(11);not null;index" json:"article_id"`
	ParentID  *uint  `gorm:"index" json:"parent_id"`
	IsEnable  bool   `gorm:"not null;default:true;index" json:"is_enable"` // 审核开关

	// 关联
	Article  Article    `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
	Parent   *Comment   `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []*Comment `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}
