package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/LJTian/AINewsHub/internal/processor"
)

// JSONStore 单个 JSON 文件保存整个快照
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Load() ([]processor.NewsItem, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "load json", Err: err}
	}
	var items []processor.NewsItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &StorageError{Op: "load json", Err: err}
	}
	return items, nil
}

func (s *JSONStore) Append(items []processor.NewsItem) (int, error) {
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
	log.Printf("json store: %d new items -> %s", added, s.path)
	return added, nil
}

func (s *JSONStore) Purge(olderThanDays int) (int, error) {
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
	log.Printf("json store: purged %d items older than %d days", removed, olderThanDays)
	return removed, nil
}

// write 先写临时文件再原子替换，写失败不破坏已有快照
func (s *JSONStore) write(items []processor.NewsItem) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode json", Err: err}
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &StorageError{Op: "write json", Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "write json", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "write json", Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "write json", Err: fmt.Errorf("replace %s: %w", s.path, err)}
	}
	return nil
}
