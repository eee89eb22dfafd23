package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/LJTian/AINewsHub/internal/collector"
	"github.com/LJTian/AINewsHub/internal/config"
	"github.com/LJTian/AINewsHub/internal/processor"
	"github.com/LJTian/AINewsHub/internal/storage"
)

// ConfigError 显式请求了未知的数据源或类别；在任何抓取发生前快速失败
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "config: " + e.Reason }

// Options 单次运行的参数
type Options struct {
	// Sources 只抓取这些源；为空抓取全部。未知 id 触发 ConfigError。
	Sources []string
	// LookbackHours 只保留发布时间在最近 N 小时内的条目；0 表示不过滤
	LookbackHours int
	// DisableDedupe 关闭去重（默认开启）
	DisableDedupe bool
}

// RunSummary 单次运行的结果统计
type RunSummary struct {
	NewItemCount      int            `json:"new_item_count"`
	PerSourceCounts   map[string]int `json:"per_source_counts"`
	PerCategoryCounts map[string]int `json:"per_category_counts"`
	FailedSources     []string       `json:"failed_sources,omitempty"`
	Warning           string         `json:"warning,omitempty"`
}

// Pipeline 一次性线性流水线：
// fetch -> normalize -> dedupe -> classify -> score -> persist。
// 持久化之前的任何单源/单条失败都被隔离；持久化失败对整次运行是致命的。
type Pipeline struct {
	cfg        *config.Config
	registry   *config.Registry
	store      storage.Store
	fetchers   map[string]collector.Fetcher
	normalizer *processor.Normalizer
	extractor  *collector.ContentExtractor

	// 存储是唯一的共享可变资源，运行之间必须串行
	mu sync.Mutex
}

func New(cfg *config.Config, registry *config.Registry, store storage.Store) *Pipeline {
	fetchers := map[string]collector.Fetcher{
		config.SourceKindFeed:   collector.NewRSSFetcher(cfg.Retry, cfg.MaxArticlesPerSource),
		config.SourceKindSearch: collector.NewSearchFetcher(cfg.SearchEndpoint, cfg.SearchAPIKey, cfg.Retry, cfg.MaxArticlesPerSource, 7),
	}
	return &Pipeline{
		cfg:        cfg,
		registry:   registry,
		store:      store,
		fetchers:   fetchers,
		normalizer: processor.NewNormalizer(cfg.MaxSummaryLen, cfg.MaxContentLen),
		extractor:  collector.NewContentExtractor(cfg.Retry.Timeout, cfg.MaxContentLen),
	}
}

// Run 执行一次完整采集。persist 之前被取消则存储保持不变。
func (p *Pipeline) Run(ctx context.Context, opts Options) (RunSummary, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	summary := RunSummary{
		PerSourceCounts:   make(map[string]int),
		PerCategoryCounts: make(map[string]int),
	}

	sources, err := p.registry.Select(opts.Sources)
	if err != nil {
		return summary, &ConfigError{Reason: err.Error()}
	}

	log.Printf("run start: %d sources", len(sources))

	// fetch：各源并发、互相隔离，单源失败不拖垮整次运行
	type sourceResult struct {
		src     config.Source
		records []collector.RawRecord
		err     error
	}
	results := make([]sourceResult, len(sources))

	var wg sync.WaitGroup
	// 并发上限配置为 0 或负数时退化为串行，信号量不能没有容量
	concurrency := p.cfg.MaxConcurrentFetch
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)
	for i, src := range sources {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, src config.Source) {
			defer wg.Done()
			defer func() { <-sem }()

			fetcher, ok := p.fetchers[src.Kind]
			if !ok {
				results[i] = sourceResult{src: src, err: fmt.Errorf("no fetcher for kind %q", src.Kind)}
				return
			}
			records, err := fetcher.Fetch(ctx, src)
			results[i] = sourceResult{src: src, records: records, err: err}
		}(i, src)

		// 源与源之间保持固定间隔，避免触发上游限流
		if p.cfg.SourceDelay > 0 && i < len(sources)-1 {
			select {
			case <-time.After(p.cfg.SourceDelay):
			case <-ctx.Done():
			}
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	// normalize：单条失败跳过
	var items []processor.NewsItem
	failedSources := 0
	for _, res := range results {
		if res.err != nil {
			log.Printf("source %s failed: %v", res.src.ID, res.err)
			summary.FailedSources = append(summary.FailedSources, res.src.ID)
			failedSources++
			continue
		}
		for _, rec := range res.records {
			item, err := p.normalizer.Normalize(rec, res.src)
			if err != nil {
				log.Printf("skip record: %v", err)
				continue
			}
			items = append(items, item)
		}
	}

	if failedSources == len(sources) && len(sources) > 0 {
		summary.Warning = "all sources failed"
	}

	// 时间窗过滤：发布时间不可解析的条目保留
	if opts.LookbackHours > 0 {
		items = filterByLookback(items, opts.LookbackHours)
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	// dedupe：先运行内去重，再对照快照丢弃已知 ID，分类评分只做给新条目
	var known map[string]struct{}
	if !opts.DisableDedupe {
		items = processor.Deduplicate(items)
		existing, err := p.store.Load()
		if err != nil {
			return summary, err
		}
		known = storage.KnownIDs(existing)
		items = processor.FilterKnown(items, known)
	}

	// classify + score：逐条纯变换
	for i := range items {
		items[i] = processor.Score(processor.Classify(items[i]))
	}

	// 关键词过滤在分类之后执行
	if len(p.cfg.FilterKeywords) > 0 {
		filtered := items[:0]
		for _, it := range items {
			if processor.MatchesKeywords(it, p.cfg.FilterKeywords) {
				filtered = append(filtered, it)
			}
		}
		log.Printf("keyword filter: kept %d/%d items", len(filtered), len(items))
		items = filtered
	}

	// 需要全文的源在入库前补全 content
	p.enrichContent(items)

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	// persist：失败致命，直接上抛
	added, err := p.store.Append(items)
	if err != nil {
		return summary, err
	}

	summary.NewItemCount = added
	for _, it := range items {
		summary.PerSourceCounts[it.SourceID]++
		summary.PerCategoryCounts[it.Category]++
	}

	log.Printf("run done: fetched=%d new=%d failed_sources=%d", len(items), added, failedSources)
	return summary, nil
}

// Report 基于当前快照生成窗口统计
func (p *Pipeline) Report(lookbackDays int) (processor.ReportData, error) {
	items, err := p.store.Load()
	if err != nil {
		return processor.ReportData{}, err
	}
	return processor.Report(items, lookbackDays), nil
}

// Purge 显式按年龄清理快照；正常运行从不调用
func (p *Pipeline) Purge(olderThanDays int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Purge(olderThanDays)
}

func (p *Pipeline) enrichContent(items []processor.NewsItem) {
	var urls []string
	urlIdx := make(map[string][]int)
	for i, it := range items {
		src, ok := p.registry.Get(it.SourceID)
		if !ok || !src.ExtractContent || it.Content != "" {
			continue
		}
		if _, seen := urlIdx[it.URL]; !seen {
			urls = append(urls, it.URL)
		}
		urlIdx[it.URL] = append(urlIdx[it.URL], i)
	}
	if len(urls) == 0 {
		return
	}
	log.Printf("extracting content for %d urls...", len(urls))
	for url, text := range p.extractor.ExtractInto(urls) {
		for _, i := range urlIdx[url] {
			items[i].Content = text
		}
	}
}

// filterByLookback 保留发布时间落在最近 N 小时内的条目
func filterByLookback(items []processor.NewsItem, hours int) []processor.NewsItem {
	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)
	out := make([]processor.NewsItem, 0, len(items))
	for _, it := range items {
		t, err := time.ParseInLocation(processor.TimeFormat, it.PublishTime, time.Local)
		if err != nil {
			out = append(out, it)
			continue
		}
		if !t.Before(cutoff) {
			out = append(out, it)
		}
	}
	return out
}
