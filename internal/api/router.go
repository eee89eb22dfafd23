package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/LJTian/AINewsHub/internal/pipeline"
	"github.com/LJTian/AINewsHub/internal/processor"
	"github.com/LJTian/AINewsHub/internal/storage"
	"github.com/gin-gonic/gin"
)

type Server struct {
	store storage.Store
	cache *storage.Cache
	pipe  *pipeline.Pipeline
}

func NewServer(store storage.Store, cache *storage.Cache, pipe *pipeline.Pipeline) *Server {
	return &Server{store: store, cache: cache, pipe: pipe}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/news", s.listNews)
		v1.GET("/report", s.report)
		v1.POST("/run", s.triggerRun)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listNews(c *gin.Context) {
	category := c.Query("category")
	company := c.Query("company")
	sourceType := c.Query("source_type")
	query := c.Query("q")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 1000 {
		limit = 20
	}

	cacheKey := fmt.Sprintf("news:list:%s:%s:%s:%s:%d", category, company, sourceType, query, limit)
	var cached []processor.NewsItem
	if s.cache.Get(c.Request.Context(), cacheKey, &cached) {
		c.JSON(http.StatusOK, gin.H{"code": "ok", "message": "success", "data": cached})
		return
	}

	items, err := s.store.Load()
	if err != nil {
		log.Printf("list news: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	filtered := make([]processor.NewsItem, 0, len(items))
	for _, it := range items {
		if category != "" && it.Category != category {
			continue
		}
		if sourceType != "" && it.SourceType != sourceType {
			continue
		}
		if company != "" && !containsString(it.Companies, company) {
			continue
		}
		if query != "" && !matchesQuery(it, query) {
			continue
		}
		filtered = append(filtered, it)
		if len(filtered) == limit {
			break
		}
	}

	if len(filtered) > 0 {
		s.cache.Set(c.Request.Context(), cacheKey, filtered)
	}
	c.JSON(http.StatusOK, gin.H{"code": "ok", "message": "success", "data": filtered})
}

func (s *Server) report(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 || days > 365 {
		days = 7
	}

	cacheKey := fmt.Sprintf("report:%d", days)
	var cached processor.ReportData
	if s.cache.Get(c.Request.Context(), cacheKey, &cached) {
		c.JSON(http.StatusOK, gin.H{"code": "ok", "message": "success", "data": cached})
		return
	}

	report, err := s.pipe.Report(days)
	if err != nil {
		log.Printf("report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	s.cache.Set(c.Request.Context(), cacheKey, report)
	c.JSON(http.StatusOK, gin.H{"code": "ok", "message": "success", "data": report})
}

// triggerRun 手动触发一次采集。sources 逗号分隔，lookback_hours 可选。
func (s *Server) triggerRun(c *gin.Context) {
	opts := pipeline.Options{}
	if sources := c.Query("sources"); sources != "" {
		for _, id := range strings.Split(sources, ",") {
			if id = strings.TrimSpace(id); id != "" {
				opts.Sources = append(opts.Sources, id)
			}
		}
	}
	if hours, err := strconv.Atoi(c.DefaultQuery("lookback_hours", "0")); err == nil && hours > 0 {
		opts.LookbackHours = hours
	}
	if c.Query("dedupe") == "false" {
		opts.DisableDedupe = true
	}

	summary, err := s.pipe.Run(c.Request.Context(), opts)
	if err != nil {
		var cfgErr *pipeline.ConfigError
		status := http.StatusInternalServerError
		code := "run_failed"
		if errors.As(err, &cfgErr) {
			status = http.StatusBadRequest
			code = "bad_request"
		}
		log.Printf("manual run failed: %v", err)
		c.JSON(status, gin.H{"code": code, "message": err.Error()})
		return
	}

	// 合入了新数据，常用窗口的报表缓存直接失效；列表缓存靠短 TTL 自然过期
	if summary.NewItemCount > 0 {
		s.cache.Invalidate(c.Request.Context(), "report:7", "report:30")
	}

	c.JSON(http.StatusOK, gin.H{"code": "ok", "message": "success", "data": summary})
}

func containsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}

func matchesQuery(it processor.NewsItem, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(it.Title), q) ||
		strings.Contains(strings.ToLower(it.Summary), q)
}
