package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 数据源类型
const (
	SourceKindFeed   = "feed"
	SourceKindSearch = "search"
)

// Source 一个数据源描述：feed 源给出 RSS 地址，search 源给出查询语句
type Source struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	Kind            string `yaml:"kind"` // feed / search
	URL             string `yaml:"url,omitempty"`
	Query           string `yaml:"query,omitempty"`
	Language        string `yaml:"language"` // zh / en
	DefaultCategory string `yaml:"category"`
	ExtractContent  bool   `yaml:"extract_content,omitempty"`
}

// defaultSources 内置数据源目录
var defaultSources = []Source{
	// 国际 RSS 源
	{ID: "openai", Name: "OpenAI Blog", Kind: SourceKindFeed, URL: "https://openai.com/blog/rss.xml", Language: "en", DefaultCategory: "research"},
	{ID: "google_ai", Name: "Google AI Blog", Kind: SourceKindFeed, URL: "https://ai.googleblog.com/feeds/posts/default", Language: "en", DefaultCategory: "research"},
	{ID: "deepmind", Name: "DeepMind Blog", Kind: SourceKindFeed, URL: "https://deepmind.google/blog/rss.xml", Language: "en", DefaultCategory: "research"},
	{ID: "huggingface", Name: "Hugging Face Blog", Kind: SourceKindFeed, URL: "https://huggingface.co/blog/feed.xml", Language: "en", DefaultCategory: "research"},
	{ID: "techcrunch_ai", Name: "TechCrunch AI", Kind: SourceKindFeed, URL: "https://techcrunch.com/category/artificial-intelligence/feed/", Language: "en", DefaultCategory: "news"},
	{ID: "venturebeat_ai", Name: "VentureBeat AI", Kind: SourceKindFeed, URL: "https://venturebeat.com/category/ai/feed/", Language: "en", DefaultCategory: "news"},
	{ID: "mit_tech_review", Name: "MIT Technology Review AI", Kind: SourceKindFeed, URL: "https://www.technologyreview.com/topic/artificial-intelligence/feed", Language: "en", DefaultCategory: "news"},
	{ID: "arxiv_ai", Name: "arXiv AI", Kind: SourceKindFeed, URL: "https://arxiv.org/rss/cs.AI", Language: "en", DefaultCategory: "research"},
	{ID: "arxiv_lg", Name: "arXiv Machine Learning", Kind: SourceKindFeed, URL: "https://arxiv.org/rss/cs.LG", Language: "en", DefaultCategory: "research"},
	{ID: "aws_ml", Name: "AWS Machine Learning Blog", Kind: SourceKindFeed, URL: "https://aws.amazon.com/blogs/machine-learning/feed/", Language: "en", DefaultCategory: "technical"},

	// 国内 RSS 源
	{ID: "jiqizhixin", Name: "机器之心", Kind: SourceKindFeed, URL: "https://www.jiqizhixin.com/rss", Language: "zh", DefaultCategory: "news"},
	{ID: "qbitai", Name: "量子位", Kind: SourceKindFeed, URL: "https://www.qbitai.com/feed", Language: "zh", DefaultCategory: "news"},
	{ID: "leiphone_ai", Name: "雷锋网AI", Kind: SourceKindFeed, URL: "https://www.leiphone.com/category/ai/feed", Language: "zh", DefaultCategory: "news"},

	// 搜索源：依赖外部搜索服务，未配置 SEARCH_ENDPOINT 时返回 0 条
	{ID: "search_ai_news_en", Name: "AI News Search", Kind: SourceKindSearch, Query: "artificial intelligence latest news", Language: "en", DefaultCategory: "news"},
	{ID: "search_ai_news_zh", Name: "AI资讯搜索", Kind: SourceKindSearch, Query: "人工智能 最新消息", Language: "zh", DefaultCategory: "news"},
	{ID: "search_llm_en", Name: "LLM Updates Search", Kind: SourceKindSearch, Query: "large language models updates", Language: "en", DefaultCategory: "technical"},
}

// Registry 数据源目录，启动时构建一次
type Registry struct {
	sources []Source
	byID    map[string]Source
}

// LoadRegistry 构建数据源目录。path 非空时读取 YAML 文件整体替换内置目录。
func LoadRegistry(path string) (*Registry, error) {
	sources := defaultSources
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read sources file: %w", err)
		}
		var loaded struct {
			Sources []Source `yaml:"sources"`
		}
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("parse sources file: %w", err)
		}
		if len(loaded.Sources) == 0 {
			return nil, fmt.Errorf("sources file %s contains no sources", path)
		}
		sources = loaded.Sources
	}

	r := &Registry{byID: make(map[string]Source, len(sources))}
	for _, s := range sources {
		if s.ID == "" || s.Name == "" {
			return nil, fmt.Errorf("source missing id or name: %+v", s)
		}
		if s.Kind != SourceKindFeed && s.Kind != SourceKindSearch {
			return nil, fmt.Errorf("source %s: unknown kind %q", s.ID, s.Kind)
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate source id %q", s.ID)
		}
		if s.DefaultCategory == "" {
			s.DefaultCategory = DefaultCategory
		}
		r.sources = append(r.sources, s)
		r.byID[s.ID] = s
	}
	return r, nil
}

// All 返回全部数据源（目录顺序）
func (r *Registry) All() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Get 按 id 查找数据源
func (r *Registry) Get(id string) (Source, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// Select 按 id 列表筛选数据源；ids 为空返回全部，未知 id 返回错误
func (r *Registry) Select(ids []string) ([]Source, error) {
	if len(ids) == 0 {
		return r.All(), nil
	}
	out := make([]Source, 0, len(ids))
	for _, id := range ids {
		s, ok := r.byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown source %q", id)
		}
		out = append(out, s)
	}
	return out, nil
}
