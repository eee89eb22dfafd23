package processor

import (
	"fmt"
	"sort"
	"time"

	"github.com/LJTian/AINewsHub/internal/config"
)

// CategoryStats 类别统计
type CategoryStats struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	LatestTime string `json:"latest_time,omitempty"`
}

// CompanyStats 公司统计
type CompanyStats struct {
	Company    string `json:"company"`
	Count      int    `json:"count"`
	SourceType string `json:"source_type"`
	LatestTime string `json:"latest_time,omitempty"`
}

// ReportData 窗口统计报告，按需计算，不作为持久化主数据
type ReportData struct {
	TotalNews          int             `json:"total_news"`
	DateRange          string          `json:"date_range"`
	Categories         []CategoryStats `json:"categories"`
	Companies          []CompanyStats  `json:"companies"`
	InternationalCount int             `json:"international_count"`
	DomesticCount      int             `json:"domestic_count"`
	LatestNews         []NewsItem      `json:"latest_news"`
	TopNews            []NewsItem      `json:"top_news"`
}

const (
	reportTopCompanies = 10
	reportListSize     = 10
)

// Report 对一批条目生成最近 lookbackDays 天的统计报告。
// publish_time 无法解析的条目保留在窗口内，这是明确策略而非疏漏。
func Report(items []NewsItem, lookbackDays int) ReportData {
	return reportAt(items, lookbackDays, time.Now())
}

func reportAt(items []NewsItem, lookbackDays int, now time.Time) ReportData {
	if lookbackDays <= 0 {
		lookbackDays = 7
	}
	cutoff := now.AddDate(0, 0, -lookbackDays)

	filtered := make([]NewsItem, 0, len(items))
	for _, it := range items {
		t, err := time.ParseInLocation(TimeFormat, it.PublishTime, time.Local)
		if err != nil {
			// 时间不可解析的条目保留
			filtered = append(filtered, it)
			continue
		}
		if !t.Before(cutoff) && !t.After(now) {
			filtered = append(filtered, it)
		}
	}

	report := ReportData{
		TotalNews: len(filtered),
		DateRange: fmt.Sprintf("最近%d天", lookbackDays),
	}

	// 类别直方图：按数量降序，平手按类别在过滤结果中的首次出现顺序
	catCounts := make(map[string]int)
	catFirst := make(map[string]int)
	catLatest := make(map[string]string)
	for i, it := range filtered {
		catCounts[it.Category]++
		if _, ok := catFirst[it.Category]; !ok {
			catFirst[it.Category] = i
			catLatest[it.Category] = it.PublishTime
		} else if laterPublish(it.PublishTime, catLatest[it.Category]) {
			catLatest[it.Category] = it.PublishTime
		}
	}
	for cat, count := range catCounts {
		report.Categories = append(report.Categories, CategoryStats{
			Category:   cat,
			Count:      count,
			LatestTime: catLatest[cat],
		})
	}
	sort.SliceStable(report.Categories, func(i, j int) bool {
		a, b := report.Categories[i], report.Categories[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return catFirst[a.Category] < catFirst[b.Category]
	})

	// 公司直方图：只取数量前 N
	compCounts := make(map[string]int)
	compFirst := make(map[string]int)
	compLatest := make(map[string]string)
	for i, it := range filtered {
		for _, c := range it.Companies {
			compCounts[c]++
			if _, ok := compFirst[c]; !ok {
				compFirst[c] = i
				compLatest[c] = it.PublishTime
			} else if laterPublish(it.PublishTime, compLatest[c]) {
				compLatest[c] = it.PublishTime
			}
		}
	}
	for comp, count := range compCounts {
		sourceType := "unknown"
		if def := config.CompanyByName(comp); def != nil {
			sourceType = def.SourceType
		}
		report.Companies = append(report.Companies, CompanyStats{
			Company:    comp,
			Count:      count,
			SourceType: sourceType,
			LatestTime: compLatest[comp],
		})
	}
	sort.SliceStable(report.Companies, func(i, j int) bool {
		a, b := report.Companies[i], report.Companies[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return compFirst[a.Company] < compFirst[b.Company]
	})
	if len(report.Companies) > reportTopCompanies {
		report.Companies = report.Companies[:reportTopCompanies]
	}

	for _, it := range filtered {
		switch it.SourceType {
		case SourceInternational:
			report.InternationalCount++
		case SourceDomestic:
			report.DomesticCount++
		}
	}

	report.LatestNews = topByPublishTime(filtered, reportListSize)
	report.TopNews = topByImportance(filtered, reportListSize)
	return report
}

// laterPublish 比较两个时间文本，a 晚于 b 为真；不可解析视为最早
func laterPublish(a, b string) bool {
	ta, errA := time.ParseInLocation(TimeFormat, a, time.Local)
	tb, errB := time.ParseInLocation(TimeFormat, b, time.Local)
	if errA != nil {
		return false
	}
	if errB != nil {
		return true
	}
	return ta.After(tb)
}

func topByPublishTime(items []NewsItem, n int) []NewsItem {
	sorted := make([]NewsItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return laterPublish(sorted[i].PublishTime, sorted[j].PublishTime)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// topByImportance 按重要性降序取前 n；稳定排序保证平手时维持原始顺序
func topByImportance(items []NewsItem, n int) []NewsItem {
	sorted := make([]NewsItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Importance > sorted[j].Importance
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
