package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nsxzhou1114/blog-data/internal/config"
	"github.com/nsxzhou1114/blog-data/internal/database"
	"github.com/nsxzhou1114/blog-data/internal/logger"
	"github.com/nsxzhou1114/blog-data/internal/model"
	"github.com/nsxzhou1114/blog-data/internal/service"
	"github.com/nsxzhou1114/blog-data/pkg/cache"
	"github.com/nsxzhou1114/blog-data/utils"
	"github.com/spf13/cobra"
)

var configPath string

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "blog-data",
	Short: "博客数据层服务",
	Long:  `博客平台的数据层，管理文章、分类、标签、评论、站点配置与运维记录`,
}

// runCmd 启动定时任务守护进程
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "启动定时任务守护进程",
	Long:  `启动布隆过滤器同步等后台定时任务，直到收到中断信号`,
	Run: func(cmd *cobra.Command, args []string) {
		runDaemon()
	},
}

func init() {
	// 添加全局标志
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config", "配置文件路径")

	// 添加子命令
	rootCmd.AddCommand(runCmd)
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// initializeSystem 初始化系统
func initializeSystem() error {
	// 初始化配置
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("配置初始化失败: %v", err)
	}

	// 初始化日志
	if err := logger.Init(); err != nil {
		return fmt.Errorf("日志初始化失败: %v", err)
	}

	// 初始化雪花算法节点
	sfCfg := config.GlobalConfig.Snowflake
	if err := utils.InitSnowflake(sfCfg.StartTime, sfCfg.MachineID); err != nil {
		return fmt.Errorf("雪花节点初始化失败: %v", err)
	}

	// 初始化MySQL数据库
	db := database.GetDB()
	if db == nil {
		return fmt.Errorf("MySQL数据库连接失败")
	}

	// 初始化数据库表
	if err := model.InitTables(db); err != nil {
		return fmt.Errorf("初始化数据库表失败: %v", err)
	}

	// 初始化缓存
	redisClient := database.GetRedis()
	if redisClient == nil {
		return fmt.Errorf("Redis连接失败")
	}
	if err := cache.GetManager().Initialize(redisClient, config.GlobalConfig.Cache.KeyPrefix); err != nil {
		return fmt.Errorf("缓存初始化失败: %v", err)
	}

	// 初始化Elasticsearch索引, 未启用时跳过
	if es := database.GetES(); es != nil {
		if err := model.InitESIndices(es); err != nil {
			return fmt.Errorf("初始化Elasticsearch索引失败: %v", err)
		}
	}

	return nil
}

// runDaemon 运行定时任务守护进程
func runDaemon() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	defer cache.GetManager().Close()

	cronService := service.NewCronService()
	if config.GlobalConfig.Cron.Enabled {
		if err := cronService.Start(); err != nil {
			fmt.Printf("定时任务启动失败: %v\n", err)
			os.Exit(1)
		}
	}

	logger.Info("数据层守护进程已启动")

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("关闭守护进程...")

	if config.GlobalConfig.Cron.Enabled {
		cronService.Stop()
	}

	logger.Info("守护进程已关闭")
}
