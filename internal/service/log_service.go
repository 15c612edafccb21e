package service

import (
	"sync"

	"github.com/nsxzhou1114/blog-data/internal/database"
	"github.com/nsxzhou1114/blog-data/internal/logger"
	"github.com/nsxzhou1114/blog-data/internal/model"
	"github.com/nsxzhou1114/blog-data/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	logService     *LogService
	logServiceOnce sync.Once
)

// LogService 运维记录服务: 命令审计与邮件发送日志
// 只追加, 无派生行为
type LogService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewLogService 创建运维记录服务实例
func NewLogService() *LogService {
	logServiceOnce.Do(func() {
		logService = &LogService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return logService
}

// AddCommandRecord 追加命令审计记录
func (s *LogService) AddCommandRecord(title, command, describe string) (*model.CommandRecord, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	record := &model.CommandRecord{
		ID:       id,
		Title:    title,
		Command:  command,
		Describe: describe,
	}
	if err := s.db.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// ListCommandRecords 命令审计记录列表, 最新在前
func (s *LogService) ListCommandRecords(limit int) ([]model.CommandRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []model.CommandRecord
	if err := s.db.Order("created_at desc, id desc").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// AddEmailSendLog 追加邮件发送日志
func (s *LogService) AddEmailSendLog(emailTo, title, content string, sendResult bool) (*model.EmailSendLog, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	entry := &model.EmailSendLog{
		ID:         id,
		EmailTo:    emailTo,
		Title:      title,
		Content:    content,
		SendResult: sendResult,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEmailSendLogs 邮件发送日志列表, 最新在前
func (s *LogService) ListEmailSendLogs(limit int) ([]model.EmailSendLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []model.EmailSendLog
	if err := s.db.Order("created_at desc, id desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
