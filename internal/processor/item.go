package processor

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// TimeFormat 持久化记录里 publish_time / fetch_time 的固定文本格式
const TimeFormat = "2006-01-02 15:04:05"

// 来源类型
const (
	SourceInternational = "international"
	SourceDomestic      = "domestic"
)

// 语言判定结果
const (
	LangZH      = "zh"
	LangEN      = "en"
	LangMixed   = "mixed"
	LangUnknown = "unknown"
)

// NewsItem 统一的新闻条目，所有数据源归一化后的唯一形态。
// 入库后不再修改；时间字段保留原始文本，解析失败的值也原样携带。
type NewsItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	SourceID    string   `json:"source_id"`
	Source      string   `json:"source"`
	SourceType  string   `json:"source_type"` // international / domestic
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Companies   []string `json:"companies"`
	Language    string   `json:"language"` // zh / en / mixed / unknown
	Summary     string   `json:"summary"`
	Content     string   `json:"content,omitempty"`
	PublishTime string   `json:"publish_time"`
	FetchTime   string   `json:"fetch_time"`
	Importance  int      `json:"importance"`
}

// ItemID 由 URL 和标题生成确定性 ID。
// 统一转小写后取摘要，标题仅大小写不同的条目视为同一条。
func ItemID(url, title string) string {
	h := sha1.New()
	h.Write([]byte(strings.ToLower(url)))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(title)))
	return hex.EncodeToString(h.Sum(nil))
}
