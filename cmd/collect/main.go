package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/LJTian/AINewsHub/internal/config"
	"github.com/LJTian/AINewsHub/internal/pipeline"
	"github.com/LJTian/AINewsHub/internal/storage"
)

// 一个仅执行一次采集任务的命令行入口：适合手动触发或外部调度器调用
func main() {
	var (
		sources  = flag.String("sources", "", "逗号分隔的数据源 id，留空表示全部")
		hours    = flag.Int("hours", 0, "只保留最近 N 小时发布的条目，0 表示不过滤")
		output   = flag.String("output", "", "存储格式（json/csv/sqlite），覆盖环境变量")
		noDedupe = flag.Bool("no-dedupe", false, "关闭去重")
		purge    = flag.Int("purge", 0, "清理 N 天前的旧条目后退出，不执行采集")
	)
	flag.Parse()

	cfg := config.Load()
	if *output != "" {
		cfg.StorageType = *output
	}

	if err := config.Initialize(cfg.DataDir); err != nil {
		log.Fatalf("init data dir failed: %v", err)
	}

	registry, err := config.LoadRegistry(cfg.SourcesFile)
	if err != nil {
		log.Fatalf("load sources failed: %v", err)
	}

	store, err := storage.NewStore(cfg.StorageType, cfg.DataDir)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}

	pipe := pipeline.New(cfg, registry, store)

	if *purge > 0 {
		removed, err := pipe.Purge(*purge)
		if err != nil {
			log.Fatalf("purge failed: %v", err)
		}
		log.Printf("purged %d items older than %d days", removed, *purge)
		return
	}

	opts := pipeline.Options{
		LookbackHours: *hours,
		DisableDedupe: *noDedupe,
	}
	if *sources != "" {
		for _, id := range strings.Split(*sources, ",") {
			if id = strings.TrimSpace(id); id != "" {
				opts.Sources = append(opts.Sources, id)
			}
		}
	}

	summary, err := pipe.Run(context.Background(), opts)
	if err != nil {
		log.Printf("run failed: %v", err)
		os.Exit(1)
	}

	if summary.Warning != "" {
		log.Printf("warning: %s", summary.Warning)
	}
	log.Printf("run done: %d new items", summary.NewItemCount)
	for source, count := range summary.PerSourceCounts {
		log.Printf("  source %s: %d", source, count)
	}
	for category, count := range summary.PerCategoryCounts {
		log.Printf("  category %s: %d", category, count)
	}
}
