package processor

import "log"

// Deduplicate 运行内去重：按抓取顺序保留每个 ID 的首次出现
func Deduplicate(items []NewsItem) []NewsItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]NewsItem, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ID]; ok {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	if removed := len(items) - len(out); removed > 0 {
		log.Printf("dedupe: removed %d duplicate items", removed)
	}
	return out
}

// FilterKnown 去掉快照中已存在的 ID，避免对旧条目做无谓的分类与评分
func FilterKnown(items []NewsItem, known map[string]struct{}) []NewsItem {
	if len(known) == 0 {
		return items
	}
	out := make([]NewsItem, 0, len(items))
	for _, it := range items {
		if _, ok := known[it.ID]; ok {
			continue
		}
		out = append(out, it)
	}
	if dropped := len(items) - len(out); dropped > 0 {
		log.Printf("dedupe: %d items already in store", dropped)
	}
	return out
}
