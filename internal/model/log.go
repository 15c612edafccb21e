package model

import "time"

// CommandRecord 运维命令审计记录
type CommandRecord struct {
	ID        int64     `gorm:"primaryKey" json:"id"` // 雪花ID
	Title     string    `gorm:"type:varchar(300);not null" json:"title"`
	Command   string    `gorm:"type:varchar(2000);not null" json:"command"`
	Describe  string    `gorm:"type:varchar(300)" json:"describe"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (CommandRecord) TableName() string {
	return "command_records"
}

// EmailSendLog 邮件发送日志
// 仅记录结果, 邮件投递本身不在本仓库范围内
type EmailSendLog struct {
	ID         int64     `gorm:"primaryKey" json:"id"` // 雪花ID
	EmailTo    string    `gorm:"type:varchar(300);not null" json:"email_to"`
	Title      string    `gorm:"type:varchar(2000);not null" json:"title"`
	Content    string    `gorm:"type:text" json:"content"`
	SendResult bool      `gorm:"not null;default:false" json:"send_result"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName 指定表名
func (EmailSendLog) TableName() string {
	return "email_send_logs"
}
