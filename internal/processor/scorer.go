package processor

import (
	"github.com/LJTian/AINewsHub/internal/config"
)

// Score 纯函数：计算条目的重要性评分（1-10），返回带分值的新条目。
//
// 公式：5 为基础分，
//   - 每命中一家已知公司 +1；
//   - 类别加成 (最大优先级+1-类别优先级) × 0.5，优先级数字越小加成越大；
//   - 精选来源 +2；
//   - 摘要超过 100 字符 +1。
//
// 结果取整后收敛到 [1,10]。
func Score(item NewsItem) NewsItem {
	score := 5.0

	for _, company := range item.Companies {
		if config.CompanyByName(company) != nil {
			score++
		}
	}

	if cat := config.CategoryByCode(item.Category); cat != nil {
		score += float64(config.MaxCategoryPriority+1-cat.Priority) * 0.5
	}

	if config.IsImportantSource(item.Source) {
		score += 2
	}

	if len([]rune(item.Summary)) > 100 {
		score++
	}

	item.Importance = clampScore(int(score))
	return item
}

func clampScore(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}
