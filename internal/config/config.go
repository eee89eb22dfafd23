package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppPort string

	// 存储后端：json / csv / sqlite
	StorageType string
	DataDir     string
	RedisAddr   string

	CronSpec string

	// 搜索服务（外部采集服务，按查询返回结果）
	SearchEndpoint string
	SearchAPIKey   string

	// 采集参数
	MaxConcurrentFetch   int
	MaxArticlesPerSource int
	SourceDelay          time.Duration
	Retry                RetryPolicy

	// 文本长度限制（按 rune 计）
	MaxSummaryLen int
	MaxContentLen int

	// 可选的关键词过滤：为空表示不过滤
	FilterKeywords []string

	// 可选的数据源目录文件（YAML），为空使用内置目录
	SourcesFile string
}

// RetryPolicy 统一的重试策略，由调用方传入各个采集器
type RetryPolicy struct {
	MaxAttempts int
	Timeout     time.Duration
	Backoff     time.Duration
}

func Load() *Config {
	cfg := &Config{
		AppPort:     getEnv("APP_PORT", "9000"),
		StorageType: getEnv("STORAGE_TYPE", "json"),
		DataDir:     getEnv("DATA_DIR", "./data"),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		CronSpec:    getEnv("CRON_SPEC", "0 */6 * * *"),

		SearchEndpoint: getEnv("SEARCH_ENDPOINT", ""),
		SearchAPIKey:   getEnv("SEARCH_API_KEY", ""),

		MaxConcurrentFetch:   getEnvInt("MAX_CONCURRENT_FETCH", 3),
		MaxArticlesPerSource: getEnvInt("MAX_ARTICLES_PER_SOURCE", 20),
		SourceDelay:          getEnvDuration("SOURCE_DELAY", time.Second),
		Retry: RetryPolicy{
			MaxAttempts: getEnvInt("FETCH_RETRY_TIMES", 2),
			Timeout:     getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
			Backoff:     getEnvDuration("FETCH_BACKOFF", 2*time.Second),
		},

		MaxSummaryLen: getEnvInt("MAX_SUMMARY_LEN", 300),
		MaxContentLen: getEnvInt("MAX_CONTENT_LEN", 5000),

		SourcesFile: getEnv("SOURCES_FILE", ""),
	}

	if kw := getEnv("FILTER_KEYWORDS", ""); kw != "" {
		for _, k := range strings.Split(kw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				cfg.FilterKeywords = append(cfg.FilterKeywords, k)
			}
		}
	}

	log.Printf("config loaded: port=%s storage=%s cron=%s", cfg.AppPort, cfg.StorageType, cfg.CronSpec)
	return cfg
}

// Initialize 创建数据与日志目录，可重复调用
func Initialize(root string) error {
	for _, dir := range []string{root, filepath.Join(root, "logs")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("init dir %s: %w", dir, err)
		}
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// Now returns current time, 方便后续做可测试封装
func Now() time.Time {
	return time.Now()
}
