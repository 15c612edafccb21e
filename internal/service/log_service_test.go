package service

import (
	"testing"
	"time"

	"github.com/nsxzhou1114/blog-data/internal/model"
	"github.com/nsxzhou1114/blog-data/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogService_CommandRecords(t *testing.T) {
	require.NoError(t, utils.InitSnowflake("2023-01-01", 1))

	db := newTestDB(t)
	s := newTestLogService(db)

	first, err := s.AddCommandRecord("清理缓存", "redis-cli flushdb", "手工执行")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	second, err := s.AddCommandRecord("重建索引", "blog-data db sync-es", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// 拉开时间差保证排序可断言
	require.NoError(t, db.Model(&model.CommandRecord{}).Where("id = ?", first.ID).
		UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)

	t.Run("列表最新在前", func(t *testing.T) {
		records, err := s.ListCommandRecords(10)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, second.ID, records[0].ID)
		assert.Equal(t, first.ID, records[1].ID)
	})

	t.Run("limit限制返回条数", func(t *testing.T) {
		records, err := s.ListCommandRecords(1)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, second.ID, records[0].ID)
	})
}

func TestLogService_EmailSendLogs(t *testing.T) {
	require.NoError(t, utils.InitSnowflake("2023-01-01", 1))

	db := newTestDB(t)
	s := newTestLogService(db)

	ok, err := s.AddEmailSendLog("reader@example.com", "评论回复通知", "您的评论有新回复", true)
	require.NoError(t, err)
	assert.True(t, ok.SendResult)

	failed, err := s.AddEmailSendLog("gone@example.com", "评论回复通知", "您的评论有新回复", false)
	require.NoError(t, err)
	assert.False(t, failed.SendResult)

	logs, err := s.ListEmailSendLogs(0)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, failed.ID, logs[0].ID)
}
