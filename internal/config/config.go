package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	MySQL         DatabaseConfig      `mapstructure:"mysql"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Log           LogConfig           `mapstructure:"log"`
	Cache         CacheConfig         `mapstructure:"cache"`
	Cron          CronConfig          `mapstructure:"cron"`
	Snowflake     SnowflakeConfig     `mapstructure:"snowflake"`
	Site          SiteConfig          `mapstructure:"site"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name string `mapstructure:"name"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	LogLevel     string `mapstructure:"log_level"`
}

// DSN 获取数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

// Addr 获取Redis地址
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ElasticsearchConfig Elasticsearch配置
type ElasticsearchConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	URLs     []string `mapstructure:"urls"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
	Stdout     bool   `mapstructure:"stdout"`
}

// CacheConfig 缓存配置
type CacheConfig struct {
	KeyPrefix          string        `mapstructure:"key_prefix"`
	CategoryTreeTTL    time.Duration `mapstructure:"category_tree_ttl"`
	BreadcrumbTTL      time.Duration `mapstructure:"breadcrumb_ttl"`
	CommentListTTL     time.Duration `mapstructure:"comment_list_ttl"`
	TagArticleCountTTL time.Duration `mapstructure:"tag_article_count_ttl"`
}

// CronConfig 定时任务配置
type CronConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	BloomSyncSpec string `mapstructure:"bloom_sync_spec"` // 布隆过滤器同步周期
	Timezone      string `mapstructure:"timezone"`
}

// SnowflakeConfig 雪花算法配置
type SnowflakeConfig struct {
	StartTime string `mapstructure:"start_time"` // 起始时间, 格式: 2006-01-02
	MachineID int64  `mapstructure:"machine_id"` // 机器ID (0-1023)
}

// SiteConfig 站点配置
type SiteConfig struct {
	Domain string `mapstructure:"domain"` // 用于拼接分类/文章完整链接
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
	// 配置Viper实例
	viperInstance *viper.Viper
)

// Init 初始化配置
func Init(configPath string) error {
	v := viper.New()
	v.AddConfigPath(configPath)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("读取配置文件失败: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return fmt.Errorf("解析配置文件失败: %v", err)
	}

	GlobalConfig = &config
	viperInstance = v
	return nil
}

// setDefaults 设置默认配置
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "blog-data")
	v.SetDefault("app.mode", "release")
	v.SetDefault("mysql.charset", "utf8mb4")
	v.SetDefault("mysql.max_idle_conns", 10)
	v.SetDefault("mysql.max_open_conns", 100)
	v.SetDefault("cache.key_prefix", "blog:")
	// 分类树派生缓存10小时
	v.SetDefault("cache.category_tree_ttl", 10*time.Hour)
	v.SetDefault("cache.breadcrumb_ttl", 10*time.Hour)
	v.SetDefault("cache.comment_list_ttl", 10*time.Minute)
	v.SetDefault("cache.tag_article_count_ttl", 10*time.Hour)
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.bloom_sync_spec", "0 */10 * * * *")
	v.SetDefault("cron.timezone", "Asia/Shanghai")
	v.SetDefault("snowflake.start_time", "2023-01-01")
	v.SetDefault("snowflake.machine_id", 1)
	// 留空时面包屑等链接输出站内相对路径
	v.SetDefault("site.domain", "")
}

// GetString 获取字符串配置
func GetString(key string) string {
	return viperInstance.GetString(key)
}

// GetInt 获取整数配置
func GetInt(key string) int {
	return viperInstance.GetInt(key)
}

// GetBool 获取布尔值配置
func GetBool(key string) bool {
	return viperInstance.GetBool(key)
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	return GlobalConfig
}
