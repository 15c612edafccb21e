package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	t.Run("渲染基本语法", func(t *testing.T) {
		html, err := RenderMarkdown("# 标题\n\n**加粗**文本")
		require.NoError(t, err)
		assert.Contains(t, html, "<h1>")
		assert.Contains(t, html, "<strong>加粗</strong>")
	})

	t.Run("过滤危险标签", func(t *testing.T) {
		html, err := RenderMarkdown("正文\n\n<script>alert(1)</script>")
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "正文")
	})

	t.Run("空内容返回错误", func(t *testing.T) {
		_, err := RenderMarkdown("   \n\t")
		assert.ErrorIs(t, err, ErrEmptyContent)
	})
}

func TestSanitizeUGC(t *testing.T) {
	got := SanitizeUGC(`评论内容<script>window.location="evil"</script><b>加粗</b>`)
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "评论内容")
	assert.Contains(t, got, "<b>加粗</b>")
}

func TestExtractSummary(t *testing.T) {
	t.Run("剥离标记提取纯文本", func(t *testing.T) {
		summary := ExtractSummary("# 标题\n\n**正文**内容", 100)
		assert.NotContains(t, summary, "<")
		assert.NotContains(t, summary, "#")
		assert.Contains(t, summary, "正文内容")
	})

	t.Run("按字符数截断而不是字节数", func(t *testing.T) {
		content := strings.Repeat("汉", 50)
		summary := ExtractSummary(content, 10)
		assert.Equal(t, strings.Repeat("汉", 10), summary)
	})

	t.Run("空内容返回空摘要", func(t *testing.T) {
		assert.Empty(t, ExtractSummary("", 100))
	})
}
