package processor

import (
	"strings"
	"testing"
	"time"

	"github.com/LJTian/AINewsHub/internal/collector"
	"github.com/LJTian/AINewsHub/internal/config"
)

func testSource() config.Source {
	return config.Source{
		ID:              "test_feed",
		Name:            "Test Feed",
		Kind:            config.SourceKindFeed,
		Language:        "en",
		DefaultCategory: "research",
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"OpenAI launches GPT-5", LangEN},
		{"百度发布文心一言新版本", LangZH},
		{"百度宣布大模型全面升级（GPT 路线）", LangZH},
		{"12345 !!!", LangUnknown},
		{"", LangUnknown},
	}
	for _, c := range cases {
		if got := DetectLanguage(c.text); got != c.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestDetectLanguageEqualCountsIsMixed(t *testing.T) {
	// 两个汉字对两个字母
	if got := DetectLanguage("中文ab"); got != LangMixed {
		t.Fatalf("DetectLanguage = %q, want mixed", got)
	}
}

func TestDetectSourceType(t *testing.T) {
	if got := DetectSourceType("https://36kr.com/p/123456"); got != SourceDomestic {
		t.Fatalf("36kr should be domestic, got %q", got)
	}
	if got := DetectSourceType("https://techcrunch.com/2024/01/20/x/"); got != SourceInternational {
		t.Fatalf("techcrunch should be international, got %q", got)
	}
	if got := DetectSourceType("https://unknown.example.org/a"); got != SourceInternational {
		t.Fatalf("unmatched domain should default to international, got %q", got)
	}
}

func TestStripHTML(t *testing.T) {
	in := "<p>Hello <b>world</b></p>\n\n  <div>again</div>"
	got := StripHTML(in)
	if strings.ContainsAny(got, "<>") {
		t.Fatalf("StripHTML left markup: %q", got)
	}
	if got != "Hello world again" {
		t.Fatalf("StripHTML = %q", got)
	}
}

func TestNormalizeFeedDefaults(t *testing.T) {
	n := NewNormalizer(300, 5000)
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	n.now = func() time.Time { return fixed }

	rec := collector.RawRecord{
		Kind: config.SourceKindFeed,
		Feed: &collector.FeedEntry{
			Title:   "  OpenAI launches GPT-5  ",
			Link:    "https://example.com/gpt5",
			Summary: "<p>Big <b>launch</b> day</p>",
		},
	}
	item, err := n.Normalize(rec, testSource())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if item.Title != "OpenAI launches GPT-5" {
		t.Fatalf("title not trimmed: %q", item.Title)
	}
	if item.ID != ItemID("https://example.com/gpt5", "OpenAI launches GPT-5") {
		t.Fatalf("unexpected id: %q", item.ID)
	}
	// 缺失发布时间回落到抓取时间
	want := fixed.Format(TimeFormat)
	if item.PublishTime != want || item.FetchTime != want {
		t.Fatalf("times = %q/%q, want %q", item.PublishTime, item.FetchTime, want)
	}
	if item.Summary != "Big launch day" {
		t.Fatalf("summary = %q", item.Summary)
	}
	if item.Category != "research" {
		t.Fatalf("category should come from source default: %q", item.Category)
	}
	if item.Language != LangEN {
		t.Fatalf("language = %q, want en", item.Language)
	}
}

func TestNormalizeTruncatesSummary(t *testing.T) {
	n := NewNormalizer(10, 5000)
	rec := collector.RawRecord{
		Kind: config.SourceKindFeed,
		Feed: &collector.FeedEntry{
			Title:   "T",
			Link:    "https://example.com/t",
			Summary: strings.Repeat("字", 50),
		},
	}
	item, err := n.Normalize(rec, testSource())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	// 截断结果不超过上限，省略号占用最后一位
	if got := len([]rune(item.Summary)); got != 10 {
		t.Fatalf("summary rune length = %d, want 10", got)
	}
	if !strings.HasSuffix(item.Summary, "…") {
		t.Fatalf("truncated summary should end with ellipsis: %q", item.Summary)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("短文本", 10); got != "短文本" {
		t.Fatalf("short text should pass through: %q", got)
	}
	got := truncateRunes(strings.Repeat("字", 20), 5)
	if len([]rune(got)) != 5 {
		t.Fatalf("rune length = %d, want 5", len([]rune(got)))
	}
	if got != "字字字字…" {
		t.Fatalf("got %q", got)
	}
	if got := truncateRunes("anything", 0); got != "" {
		t.Fatalf("zero limit should empty the text: %q", got)
	}
}

func TestNormalizeSearchHit(t *testing.T) {
	n := NewNormalizer(300, 5000)
	rec := collector.RawRecord{
		Kind: config.SourceKindSearch,
		Search: &collector.SearchHit{
			Title:       "百度发布文心一言4.0",
			URL:         "https://36kr.com/p/123456",
			Snippet:     "百度今日发布文心一言4.0",
			Source:      "36氪",
			PublishTime: "2024-01-20 09:00:00",
		},
	}
	src := config.Source{ID: "search_zh", Name: "AI资讯搜索", Kind: config.SourceKindSearch, DefaultCategory: "news"}
	item, err := n.Normalize(rec, src)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if item.Source != "36氪" {
		t.Fatalf("source should prefer hit source: %q", item.Source)
	}
	if item.SourceType != SourceDomestic {
		t.Fatalf("source type = %q, want domestic", item.SourceType)
	}
	if item.PublishTime != "2024-01-20 09:00:00" {
		t.Fatalf("publish time should be carried: %q", item.PublishTime)
	}
	if item.Language != LangZH {
		t.Fatalf("language = %q, want zh", item.Language)
	}
}

func TestNormalizeRejectsBadRecords(t *testing.T) {
	n := NewNormalizer(300, 5000)
	_, err := n.Normalize(collector.RawRecord{Kind: config.SourceKindFeed, Feed: &collector.FeedEntry{Link: "https://example.com"}}, testSource())
	if err == nil {
		t.Fatal("expected error for entry without title")
	}
	_, err = n.Normalize(collector.RawRecord{Kind: "unknown"}, testSource())
	if err == nil {
		t.Fatal("expected error for unknown record kind")
	}
}
