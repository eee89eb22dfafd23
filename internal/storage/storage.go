package storage

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/LJTian/AINewsHub/internal/processor"
)

// Store 增量存储契约。
// Load 返回当前快照（尚未持久化过则为空）；Append 只合入快照中不存在的 ID，
// 重复提交同一批条目新增数为零；Purge 按年龄显式清理，正常运行从不隐式删除。
type Store interface {
	Load() ([]processor.NewsItem, error)
	Append(items []processor.NewsItem) (int, error)
	Purge(olderThanDays int) (int, error)
}

// StorageError 持久化写入失败。对一次运行而言是致命错误，必须上抛。
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStore 按配置选择物理格式；三种后端的合并语义完全一致
func NewStore(storageType, dataDir string) (Store, error) {
	switch storageType {
	case "json":
		return NewJSONStore(filepath.Join(dataDir, "ai_news.json")), nil
	case "csv":
		return NewCSVStore(filepath.Join(dataDir, "ai_news.csv")), nil
	case "sqlite":
		return NewSQLiteStore(filepath.Join(dataDir, "ai_news.db"))
	default:
		return nil, fmt.Errorf("unsupported storage type %q", storageType)
	}
}

// KnownIDs 从快照构建 ID 集合
func KnownIDs(items []processor.NewsItem) map[string]struct{} {
	ids := make(map[string]struct{}, len(items))
	for _, it := range items {
		ids[it.ID] = struct{}{}
	}
	return ids
}

// mergeItems 把 incoming 中快照未见过的条目合入 existing，返回合并结果与新增数
func mergeItems(existing, incoming []processor.NewsItem) ([]processor.NewsItem, int) {
	known := KnownIDs(existing)
	merged := make([]processor.NewsItem, len(existing), len(existing)+len(incoming))
	copy(merged, existing)

	added := 0
	for _, it := range incoming {
		if _, ok := known[it.ID]; ok {
			continue
		}
		known[it.ID] = struct{}{}
		merged = append(merged, it)
		added++
	}
	return merged, added
}

// sortByFetchTimeDesc 快照统一按抓取时间倒序持久化
func sortByFetchTimeDesc(items []processor.NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		// 固定格式的时间文本可直接按字典序比较
		return items[i].FetchTime > items[j].FetchTime
	})
}

// purgeCutoff 清理界限：早于该时刻抓取的条目被移除
func purgeCutoff(olderThanDays int) string {
	return time.Now().AddDate(0, 0, -olderThanDays).Format(processor.TimeFormat)
}

// filterFresh 保留抓取时间不早于 cutoff 的条目；时间文本异常的条目保留
func filterFresh(items []processor.NewsItem, cutoff string) ([]processor.NewsItem, int) {
	kept := make([]processor.NewsItem, 0, len(items))
	for _, it := range items {
		if _, err := time.ParseInLocation(processor.TimeFormat, it.FetchTime, time.Local); err != nil {
			kept = append(kept, it)
			continue
		}
		if it.FetchTime >= cutoff {
			kept = append(kept, it)
		}
	}
	return kept, len(items) - len(kept)
}
