package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/LJTian/AINewsHub/internal/processor"
)

// CSVStore 单个 CSV 文件保存整个快照；tags 与 companies 按 JSON 编码进单元格
type CSVStore struct {
	path string
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

var csvHeader = []string{
	"id", "title", "url", "source_id", "source", "source_type", "category",
	"tags", "companies", "language", "summary", "content",
	"publish_time", "fetch_time", "importance",
}

func (s *CSVStore) Load() ([]processor.NewsItem, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "load csv", Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvHeader)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &StorageError{Op: "load csv", Err: err}
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	items := make([]processor.NewsItem, 0, len(rows)-1)
	for _, row := range rows[1:] {
		importance, _ := strconv.Atoi(row[14])
		items = append(items, processor.NewsItem{
			ID:          row[0],
			Title:       row[1],
			URL:         row[2],
			SourceID:    row[3],
			Source:      row[4],
			SourceType:  row[5],
			Category:    row[6],
			Tags:        splitList(row[7]),
			Companies:   splitList(row[8]),
			Language:    row[9],
			Summary:     row[10],
			Content:     row[11],
			PublishTime: row[12],
			FetchTime:   row[13],
			Importance:  importance,
		})
	}
	return items, nil
}

func (s *CSVStore) Append(items []processor.NewsItem) (int, error) {
	existing, err := s.Load()
	if err != nil {
		return 0, err
	}
	merged, added := mergeItems(existing, items)
	if added == 0 {
		return 0, nil
	}
	sortByFetchTimeDesc(merged)
	if err := s.write(merged); err != nil {
		return 0, err
	}
	log.Printf("csv store: %d new items -> %s", added, s.path)
	return added, nil
}

func (s *CSVStore) Purge(olderThanDays int) (int, error) {
	existing, err := s.Load()
	if err != nil {
		return 0, err
	}
	kept, removed := filterFresh(existing, purgeCutoff(olderThanDays))
	if removed == 0 {
		return 0, nil
	}
	if err := s.write(kept); err != nil {
		return 0, err
	}
	log.Printf("csv store: purged %d items older than %d days", removed, olderThanDays)
	return removed, nil
}

func (s *CSVStore) write(items []processor.NewsItem) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &StorageError{Op: "write csv", Err: err}
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	writeErr := w.Write(csvHeader)
	for _, it := range items {
		if writeErr != nil {
			break
		}
		writeErr = w.Write([]string{
			it.ID, it.Title, it.URL, it.SourceID, it.Source, it.SourceType, it.Category,
			joinList(it.Tags), joinList(it.Companies), it.Language, it.Summary, it.Content,
			it.PublishTime, it.FetchTime, strconv.Itoa(it.Importance),
		})
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}
	if writeErr != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "write csv", Err: writeErr}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "write csv", Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "write csv", Err: fmt.Errorf("replace %s: %w", s.path, err)}
	}
	return nil
}

// joinList JSON 编码列表单元格。标签值来自任意 RSS category，
// 可能自带逗号，裸拼接会让往返有损。
func joinList(list []string) string {
	if len(list) == 0 {
		return ""
	}
	bs, err := json.Marshal(list)
	if err != nil {
		return ""
	}
	return string(bs)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		// 早期快照用逗号拼接，读取时兼容
		return strings.Split(s, ",")
	}
	return out
}
