package collector

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// ContentExtractor 抓取正文页面并提取文本，用于需要全文的数据源。
// 提取失败只记录日志，绝不影响流水线其余部分。
type ContentExtractor struct {
	timeout    time.Duration
	maxContent int

	mu    sync.Mutex
	cache map[string]string
}

func NewContentExtractor(timeout time.Duration, maxContent int) *ContentExtractor {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if maxContent <= 0 {
		maxContent = 5000
	}
	return &ContentExtractor{
		timeout:    timeout,
		maxContent: maxContent,
		cache:      make(map[string]string),
	}
}

// Extract 抓取并提取单个 URL 的正文，结果按 rune 截断
func (e *ContentExtractor) Extract(url string) (string, error) {
	e.mu.Lock()
	if cached, ok := e.cache[url]; ok {
		e.mu.Unlock()
		return cached, nil
	}
	e.mu.Unlock()

	c := colly.NewCollector(
		colly.UserAgent("AINewsHubBot/1.0"),
	)
	c.SetRequestTimeout(e.timeout)

	var content string
	c.OnHTML("body", func(el *colly.HTMLElement) {
		content = extractArticleText(el.DOM)
	})

	if err := c.Visit(url); err != nil {
		return "", err
	}

	content = truncateRunes(content, e.maxContent)

	e.mu.Lock()
	e.cache[url] = content
	e.mu.Unlock()
	return content, nil
}

// extractArticleText 取正文文本：优先 article/main 容器，退回全文段落
func extractArticleText(doc *goquery.Selection) string {
	root := doc
	for _, sel := range []string{"article", "main", "div[class*='content']", "div[class*='article']"} {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			root = found
			break
		}
	}

	var parts []string
	root.Find("p").Each(func(i int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Text())
		if len([]rune(t)) < 20 {
			return
		}
		parts = append(parts, t)
	})
	if len(parts) == 0 {
		return strings.Join(strings.Fields(root.Text()), " ")
	}
	return strings.Join(parts, "\n")
}

// truncateRunes 按 rune 数截断，结果不超过 limit；省略号占用最后一位
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit-1]) + "…"
}

// ExtractInto 为一批 URL 提取正文，返回 url -> 正文。失败的 URL 跳过。
func (e *ContentExtractor) ExtractInto(urls []string) map[string]string {
	out := make(map[string]string, len(urls))
	for _, u := range urls {
		text, err := e.Extract(u)
		if err != nil {
			log.Printf("extract %s failed: %v", u, err)
			continue
		}
		if text != "" {
			out[u] = text
		}
	}
	return out
}
