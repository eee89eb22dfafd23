package processor

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/LJTian/AINewsHub/internal/collector"
	"github.com/LJTian/AINewsHub/internal/config"
	"github.com/PuerkitoBio/goquery"
)

// ParseError 单条原始记录无法归一化；该记录被跳过，流水线继续
type ParseError struct {
	SourceID string
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse record from %s: %s", e.SourceID, e.Reason)
}

// Normalizer 把原始记录归一化为 NewsItem
type Normalizer struct {
	maxSummary int
	maxContent int
	now        func() time.Time
}

func NewNormalizer(maxSummary, maxContent int) *Normalizer {
	if maxSummary <= 0 {
		maxSummary = 300
	}
	if maxContent <= 0 {
		maxContent = 5000
	}
	return &Normalizer{maxSummary: maxSummary, maxContent: maxContent, now: time.Now}
}

// Normalize 按记录变体分派归一化。返回的条目尚未分类与评分。
func (n *Normalizer) Normalize(rec collector.RawRecord, src config.Source) (NewsItem, error) {
	switch rec.Kind {
	case config.SourceKindFeed:
		if rec.Feed == nil {
			return NewsItem{}, &ParseError{SourceID: src.ID, Reason: "feed record without entry"}
		}
		return n.normalizeFeed(rec.Feed, src)
	case config.SourceKindSearch:
		if rec.Search == nil {
			return NewsItem{}, &ParseError{SourceID: src.ID, Reason: "search record without hit"}
		}
		return n.normalizeSearch(rec.Search, src)
	default:
		return NewsItem{}, &ParseError{SourceID: src.ID, Reason: fmt.Sprintf("unknown record kind %q", rec.Kind)}
	}
}

func (n *Normalizer) normalizeFeed(entry *collector.FeedEntry, src config.Source) (NewsItem, error) {
	title := strings.TrimSpace(entry.Title)
	if title == "" || entry.Link == "" {
		return NewsItem{}, &ParseError{SourceID: src.ID, Reason: "feed entry missing title or link"}
	}

	fetchTime := n.now().Format(TimeFormat)
	publishTime := fetchTime
	if entry.Published != nil {
		publishTime = entry.Published.Format(TimeFormat)
	}

	summary := entry.Summary
	if summary == "" {
		summary = entry.Content
	}

	item := NewsItem{
		ID:          ItemID(entry.Link, title),
		Title:       title,
		URL:         entry.Link,
		SourceID:    src.ID,
		Source:      src.Name,
		SourceType:  DetectSourceType(entry.Link),
		Category:    defaultCategoryFor(src),
		Tags:        append([]string(nil), entry.Tags...),
		Language:    DetectLanguage(title),
		Summary:     truncateRunes(StripHTML(summary), n.maxSummary),
		Content:     truncateRunes(StripHTML(entry.Content), n.maxContent),
		PublishTime: publishTime,
		FetchTime:   fetchTime,
	}
	return item, nil
}

func (n *Normalizer) normalizeSearch(hit *collector.SearchHit, src config.Source) (NewsItem, error) {
	title := strings.TrimSpace(hit.Title)
	if title == "" || hit.URL == "" {
		return NewsItem{}, &ParseError{SourceID: src.ID, Reason: "search hit missing title or url"}
	}

	fetchTime := n.now().Format(TimeFormat)
	// 搜索服务给出的时间文本原样保留，无法解析的值由报表阶段容忍
	publishTime := strings.TrimSpace(hit.PublishTime)
	if publishTime == "" {
		publishTime = fetchTime
	}

	source := strings.TrimSpace(hit.Source)
	if source == "" {
		source = src.Name
	}

	item := NewsItem{
		ID:          ItemID(hit.URL, title),
		Title:       title,
		URL:         hit.URL,
		SourceID:    src.ID,
		Source:      source,
		SourceType:  DetectSourceType(hit.URL),
		Category:    defaultCategoryFor(src),
		Language:    DetectLanguage(title),
		Summary:     truncateRunes(StripHTML(hit.Snippet), n.maxSummary),
		PublishTime: publishTime,
		FetchTime:   fetchTime,
	}
	return item, nil
}

func defaultCategoryFor(src config.Source) string {
	if config.IsKnownCategory(src.DefaultCategory) {
		return src.DefaultCategory
	}
	return config.DefaultCategory
}

// StripHTML 去除标记，折叠空白。非法片段按纯文本处理。
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<>") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// DetectLanguage 按字符类别判定标题语言：
// 统计 CJK 字符与字母字符，多者胜出，相等且非零为 mixed，两者皆零为 unknown。
func DetectLanguage(text string) string {
	var cjk, alpha int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			cjk++
		case unicode.IsLetter(r):
			alpha++
		}
	}
	switch {
	case cjk == 0 && alpha == 0:
		return LangUnknown
	case cjk > alpha:
		return LangZH
	case alpha > cjk:
		return LangEN
	default:
		return LangMixed
	}
}

// DetectSourceType 按域名片段判定来源类型，默认国际
func DetectSourceType(url string) string {
	lower := strings.ToLower(url)
	for _, domain := range config.DomesticDomains {
		if strings.Contains(lower, domain) {
			return SourceDomestic
		}
	}
	return SourceInternational
}

// truncateRunes 按 rune 数截断字符串，结果不超过 limit；省略号占用最后一位
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.TrimSpace(s)
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit-1]) + "…"
}
