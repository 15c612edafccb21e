package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/nsxzhou1114/blog-data/internal/database"
	"github.com/nsxzhou1114/blog-data/internal/model"
	"github.com/nsxzhou1114/blog-data/internal/service"
	"github.com/nsxzhou1114/blog-data/pkg/cache"
	"github.com/spf13/cobra"
)

// warmupCmd 缓存预热命令
// 示例：./blog-data warmup
var warmupCmd = &cobra.Command{
	Use:   "warmup",
	Short: "预热缓存",
	Long:  `预热分类层级派生缓存并重建文章布隆过滤器`,
	Run: func(cmd *cobra.Command, args []string) {
		warmupCaches()
	},
}

func init() {
	rootCmd.AddCommand(warmupCmd)
}

// warmupCaches 预热缓存
func warmupCaches() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	categoryService := service.NewCategoryService()

	// 预热全部分类的祖先链与后代集
	categories, err := categoryService.List()
	if err != nil {
		fmt.Printf("加载分类列表失败: %v\n", err)
		return
	}
	for i := range categories {
		if _, err := categoryService.AncestorChain(ctx, categories[i].ID); err != nil {
			fmt.Printf("预热分类 %d 祖先链失败: %v\n", categories[i].ID, err)
		}
		if _, err := categoryService.DescendantSet(ctx, categories[i].ID); err != nil {
			fmt.Printf("预热分类 %d 后代集失败: %v\n", categories[i].ID, err)
		}
	}
	fmt.Printf("分类派生缓存预热完成, 共%d个分类\n", len(categories))

	// 重建文章布隆过滤器
	var articleIDs []uint
	if err := database.GetDB().Model(&model.Article{}).Pluck("id", &articleIDs).Error; err != nil {
		fmt.Printf("加载文章ID列表失败: %v\n", err)
		return
	}

	manager := cache.GetManager()
	filter := manager.GetArticleFilter()
	elements := make([]string, 0, len(articleIDs))
	for _, id := range articleIDs {
		elements = append(elements, strconv.FormatUint(uint64(id), 10))
	}
	if err := filter.BatchAdd(ctx, elements); err != nil {
		fmt.Printf("重建文章布隆过滤器失败: %v\n", err)
		return
	}
	if err := manager.SaveBloomFilters(ctx); err != nil {
		fmt.Printf("持久化布隆过滤器失败: %v\n", err)
		return
	}
	fmt.Printf("文章布隆过滤器预热完成, 共%d篇文章\n", len(articleIDs))
}
