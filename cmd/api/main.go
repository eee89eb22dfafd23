package main

import (
	"log"

	"github.com/LJTian/AINewsHub/internal/api"
	"github.com/LJTian/AINewsHub/internal/config"
	"github.com/LJTian/AINewsHub/internal/pipeline"
	"github.com/LJTian/AINewsHub/internal/scheduler"
	"github.com/LJTian/AINewsHub/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

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
	cache := storage.NewCache(cfg.RedisAddr)

	pipe := pipeline.New(cfg, registry, store)

	s, err := scheduler.New(cfg.CronSpec, pipe)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	s.Start()

	// 每天凌晨清理 90 天前的旧条目
	if _, err := s.Cron().AddFunc("0 3 * * *", func() {
		if _, err := pipe.Purge(90); err != nil {
			log.Printf("purge failed: %v", err)
		}
	}); err != nil {
		log.Printf("warn: add purge cron failed: %v", err)
	}

	r := gin.Default()
	apiServer := api.NewServer(store, cache, pipe)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
