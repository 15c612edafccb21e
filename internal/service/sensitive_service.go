package service

import (
	"os"
	"sync"

	"github.com/importcjj/sensitive"
	"github.com/nsxzhou1114/blog-data/internal/logger"
	"go.uber.org/zap"
)

var (
	sensitiveService     *SensitiveService
	sensitiveServiceOnce sync.Once
)

// SensitiveService 敏感词过滤服务
type SensitiveService struct {
	filter *sensitive.Filter
	logger *zap.SugaredLogger
}

// NewSensitiveService 创建敏感词过滤服务实例
func NewSensitiveService() *SensitiveService {
	sensitiveServiceOnce.Do(func() {
		sensitiveService = newSensitiveService(logger.GetSugaredLogger(), "sensitive_words.txt")
	})
	return sensitiveService
}

func newSensitiveService(log *zap.SugaredLogger, dictPath string) *SensitiveService {
	s := &SensitiveService{
		filter: sensitive.New(),
		logger: log,
	}
	if dictPath == "" {
		return s
	}
	if _, err := os.Stat(dictPath); err != nil {
		// 词典缺失时直接放行
		s.logger.Warnf("敏感词词典不可用: %v", err)
		return s
	}
	if err := s.filter.LoadWordDict(dictPath); err != nil {
		s.logger.Errorf("加载敏感词词典失败: %v", err)
	}
	return s
}

// AddWords 追加敏感词
func (s *SensitiveService) AddWords(words ...string) {
	s.filter.AddWord(words...)
}

// Filter 将文本中的敏感词替换为*
func (s *SensitiveService) Filter(text string) string {
	return s.filter.Replace(text, '*')
}

// FindAll 获取文本中包含的敏感词
func (s *SensitiveService) FindAll(text string) []string {
	return s.filter.FindAll(text)
}
