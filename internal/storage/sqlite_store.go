package storage

import (
	"encoding/json"
	"log"

	"github.com/LJTian/AINewsHub/internal/processor"
	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// newsRecord articles 表的行结构
type newsRecord struct {
	ID          string `gorm:"primaryKey;size:40"`
	Title       string `gorm:"size:512"`
	URL         string `gorm:"size:1024;index"`
	SourceID    string `gorm:"size:64;index"`
	Source      string `gorm:"size:128"`
	SourceType  string `gorm:"size:16;index"`
	Category    string `gorm:"size:32;index"`
	Tags        datatypes.JSON
	Companies   datatypes.JSON
	Language    string `gorm:"size:8"`
	Summary     string `gorm:"size:600"`
	Content     string
	PublishTime string `gorm:"size:32"`
	FetchTime   string `gorm:"size:32;index"`
	Importance  int
}

func (newsRecord) TableName() string { return "articles" }

// SQLiteStore 内嵌关系库后端；合并语义与文件后端一致
type SQLiteStore struct {
	db *gorm.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, &StorageError{Op: "open sqlite", Err: err}
	}
	if err := db.AutoMigrate(&newsRecord{}); err != nil {
		return nil, &StorageError{Op: "migrate sqlite", Err: err}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load() ([]processor.NewsItem, error) {
	var records []newsRecord
	if err := s.db.Order("fetch_time DESC").Find(&records).Error; err != nil {
		return nil, &StorageError{Op: "load sqlite", Err: err}
	}
	items := make([]processor.NewsItem, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.toItem())
	}
	return items, nil
}

// Append 事务内逐条插入，已存在的 ID 由 ON CONFLICT DO NOTHING 跳过
func (s *SQLiteStore) Append(items []processor.NewsItem) (int, error) {
	added := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, it := range items {
			rec := toRecord(it)
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec)
			if res.Error != nil {
				return res.Error
			}
			added += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, &StorageError{Op: "append sqlite", Err: err}
	}
	if added > 0 {
		log.Printf("sqlite store: %d new items", added)
	}
	return added, nil
}

func (s *SQLiteStore) Purge(olderThanDays int) (int, error) {
	cutoff := purgeCutoff(olderThanDays)
	res := s.db.Where("fetch_time < ?", cutoff).Delete(&newsRecord{})
	if res.Error != nil {
		return 0, &StorageError{Op: "purge sqlite", Err: res.Error}
	}
	removed := int(res.RowsAffected)
	if removed > 0 {
		log.Printf("sqlite store: purged %d items older than %d days", removed, olderThanDays)
	}
	return removed, nil
}

func toRecord(it processor.NewsItem) newsRecord {
	tags, _ := json.Marshal(it.Tags)
	companies, _ := json.Marshal(it.Companies)
	return newsRecord{
		ID:          it.ID,
		Title:       it.Title,
		URL:         it.URL,
		SourceID:    it.SourceID,
		Source:      it.Source,
		SourceType:  it.SourceType,
		Category:    it.Category,
		Tags:        datatypes.JSON(tags),
		Companies:   datatypes.JSON(companies),
		Language:    it.Language,
		Summary:     it.Summary,
		Content:     it.Content,
		PublishTime: it.PublishTime,
		FetchTime:   it.FetchTime,
		Importance:  it.Importance,
	}
}

func (rec newsRecord) toItem() processor.NewsItem {
	var tags, companies []string
	_ = json.Unmarshal(rec.Tags, &tags)
	_ = json.Unmarshal(rec.Companies, &companies)
	return processor.NewsItem{
		ID:          rec.ID,
		Title:       rec.Title,
		URL:         rec.URL,
		SourceID:    rec.SourceID,
		Source:      rec.Source,
		SourceType:  rec.SourceType,
		Category:    rec.Category,
		Tags:        tags,
		Companies:   companies,
		Language:    rec.Language,
		Summary:     rec.Summary,
		Content:     rec.Content,
		PublishTime: rec.PublishTime,
		FetchTime:   rec.FetchTime,
		Importance:  rec.Importance,
	}
}
