package utils

import (
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday"
)

var (
	ErrEmptyContent = errors.New("内容不能为空")
)

// ugcPolicy 过滤用户生成内容中的危险标签
var ugcPolicy = bluemonday.UGCPolicy()

// strictPolicy 剥离全部标签, 用于提取纯文本
var strictPolicy = bluemonday.StrictPolicy()

// RenderMarkdown 将 Markdown 内容转换为 HTML 并过滤恶意标签
func RenderMarkdown(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}

	unsafe := blackfriday.MarkdownCommon([]byte(content))
	return string(ugcPolicy.SanitizeBytes(unsafe)), nil
}

// SanitizeUGC 过滤用户提交的HTML片段, 用于评论正文
func SanitizeUGC(content string) string {
	return ugcPolicy.Sanitize(content)
}

// ExtractSummary 从 Markdown 内容中提取指定长度的纯文本摘要
func ExtractSummary(content string, limit int) string {
	html, err := RenderMarkdown(content)
	if err != nil {
		return ""
	}

	plain := strings.TrimSpace(strictPolicy.Sanitize(html))
	runes := []rune(plain)
	if limit > 0 && len(runes) > limit {
		return string(runes[:limit])
	}
	return plain
}
