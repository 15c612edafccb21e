package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nsxzhou1114/blog-data/internal/database"
	"github.com/nsxzhou1114/blog-data/internal/model"
	"github.com/nsxzhou1114/blog-data/internal/service"
	"github.com/spf13/cobra"
)

// databaseCmd 数据库管理命令
var databaseCmd = &cobra.Command{
	Use:   "db",
	Short: "数据库管理命令",
	Long:  `数据库管理相关的命令，包括迁移、同步、清理等`,
}

// migrateCmd 迁移数据库表命令
// 示例：./blog-data db migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "迁移数据库表",
	Long:  `创建或更新数据库表结构与Elasticsearch索引`,
	Run: func(cmd *cobra.Command, args []string) {
		migrateTables()
	},
}

// syncESCmd 同步ES数据命令
// 示例：./blog-data db sync-es
var syncESCmd = &cobra.Command{
	Use:   "sync-es",
	Short: "同步文章到Elasticsearch",
	Long:  `重建文章搜索索引并全量同步MySQL文章数据`,
	Run: func(cmd *cobra.Command, args []string) {
		syncArticlesToES()
	},
}

// cleanupDBCmd 清理数据库命令
// 示例：./blog-data db cleanup
var cleanupDBCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "清理数据库",
	Long:  `清理过期的命令审计记录与邮件发送日志`,
	Run: func(cmd *cobra.Command, args []string) {
		cleanupDatabase()
	},
}

func init() {
	// 添加数据库相关子命令
	databaseCmd.AddCommand(migrateCmd)
	databaseCmd.AddCommand(syncESCmd)
	databaseCmd.AddCommand(cleanupDBCmd)

	// 将数据库命令添加到根命令
	rootCmd.AddCommand(databaseCmd)
}

// migrateTables 迁移数据库表
func migrateTables() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}

	// initializeSystem已完成迁移, 这里仅做结果校验
	db := database.GetDB()
	for _, table := range []string{"categories", "tags", "articles", "comments", "links", "sidebars", "blog_settings"} {
		if !db.Migrator().HasTable(table) {
			fmt.Printf("表 %s 迁移失败\n", table)
			return
		}
	}
	fmt.Println("数据库迁移完成")
}

// syncArticlesToES 同步文章到Elasticsearch
func syncArticlesToES() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}

	searchService := service.NewArticleSearchService()
	if !searchService.Enabled() {
		fmt.Println("Elasticsearch未启用")
		return
	}

	ctx := context.Background()

	fmt.Println("开始重建文章搜索索引...")
	if err := searchService.CreateIndex(ctx); err != nil {
		fmt.Printf("重建索引失败: %v\n", err)
		return
	}

	if err := searchService.SyncAll(ctx); err != nil {
		fmt.Printf("同步文章失败: %v\n", err)
		return
	}

	fmt.Println("文章搜索索引同步完成")
}

// cleanupDatabase 清理数据库
func cleanupDatabase() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}

	db := database.GetDB()

	// 清理30天前的命令审计记录
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	result := db.Where("created_at < ?", thirtyDaysAgo).Delete(&model.CommandRecord{})
	fmt.Printf("清理了 %d 条过期命令记录\n", result.RowsAffected)

	// 清理60天前的邮件发送日志
	sixtyDaysAgo := time.Now().AddDate(0, 0, -60)
	result = db.Where("created_at < ?", sixtyDaysAgo).Delete(&model.EmailSendLog{})
	fmt.Printf("清理了 %d 条过期邮件日志\n", result.RowsAffected)

	fmt.Println("数据库清理完成")
}
