package processor

import (
	"sort"
	"strings"

	"github.com/LJTian/AINewsHub/internal/config"
)

// 每个关键词命中的分值
const keywordWeight = 2

// Classify 纯函数：在条目上补全类别、公司与标签，返回新值。
// 原条目不被修改。
func Classify(item NewsItem) NewsItem {
	text := item.Title + " " + item.Summary
	item.Category = ClassifyCategory(text, item.Category)
	item.Companies = DetectCompanies(text)
	item.Tags = ExtractTags(item.Tags, text)
	return item
}

// ClassifyCategory 关键词计分选出类别。
// 每个命中的关键词（中英文集合均参与，大小写不敏感的子串匹配）计 2 分，
// 得分最高者胜出；平手取目录中排在前面的类别（Categories 的顺序是稳定承诺）。
// 全部为零分时返回 fallback，fallback 不在枚举内则返回默认类别。
func ClassifyCategory(text string, fallback string) string {
	lower := strings.ToLower(text)

	best := ""
	bestScore := 0
	for _, cat := range config.Categories {
		score := 0
		for _, kw := range cat.KeywordsZH {
			if strings.Contains(lower, strings.ToLower(kw)) {
				score += keywordWeight
			}
		}
		for _, kw := range cat.KeywordsEN {
			if strings.Contains(lower, strings.ToLower(kw)) {
				score += keywordWeight
			}
		}
		// 严格大于：先出现的类别在平手时获胜
		if score > bestScore {
			bestScore = score
			best = cat.Code
		}
	}

	if bestScore == 0 {
		if config.IsKnownCategory(fallback) {
			return fallback
		}
		return config.DefaultCategory
	}
	return best
}

// DetectCompanies 检出文本中提到的已知公司。
// 任一语言的任一变体命中即算提及；多个公司可同时命中，结果按名称排序。
func DetectCompanies(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, c := range config.Companies {
		matched := false
		for _, kw := range c.KeywordsEN {
			if strings.Contains(lower, strings.ToLower(kw)) {
				matched = true
				break
			}
		}
		if !matched {
			for _, kw := range c.KeywordsZH {
				if strings.Contains(text, kw) {
					matched = true
					break
				}
			}
		}
		if matched {
			found = append(found, c.Name)
		}
	}
	sort.Strings(found)
	return found
}

// ExtractTags 按标签字典检出技术标签，与已有标签合并成有序集合
func ExtractTags(existing []string, text string) []string {
	lower := strings.ToLower(text)

	set := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		if t = strings.TrimSpace(t); t != "" {
			set[t] = struct{}{}
		}
	}
	for _, td := range config.Tags {
		for _, kw := range td.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				set[td.Tag] = struct{}{}
				break
			}
		}
	}

	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// MatchesKeywords 条目是否命中任一过滤关键词；关键词列表为空时恒为真
func MatchesKeywords(item NewsItem, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	text := strings.ToLower(item.Title + " " + item.Summary)
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
