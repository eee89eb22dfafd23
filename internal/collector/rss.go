package collector

import (
	"context"
	"log"

	"github.com/LJTian/AINewsHub/internal/config"
	"github.com/mmcdole/gofeed"
)

// RSSFetcher 拉取 RSS/Atom 源
type RSSFetcher struct {
	parser      *gofeed.Parser
	retry       config.RetryPolicy
	maxArticles int
}

func NewRSSFetcher(retry config.RetryPolicy, maxArticles int) *RSSFetcher {
	if maxArticles <= 0 {
		maxArticles = 20
	}
	p := gofeed.NewParser()
	p.UserAgent = "AINewsHubBot/1.0"
	return &RSSFetcher{parser: p, retry: retry, maxArticles: maxArticles}
}

func (f *RSSFetcher) Kind() string { return config.SourceKindFeed }

func (f *RSSFetcher) Fetch(ctx context.Context, src config.Source) ([]RawRecord, error) {
	log.Printf("fetch feed %s (%s)...", src.Name, src.URL)

	var feed *gofeed.Feed
	err := withRetry(ctx, f.retry, func(ctx context.Context) error {
		parsed, err := f.parser.ParseURLWithContext(src.URL, ctx)
		if err != nil {
			return classifyFetchError(src.ID, err)
		}
		feed = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}

	items := feed.Items
	if len(items) > f.maxArticles {
		items = items[:f.maxArticles]
	}

	records := make([]RawRecord, 0, len(items))
	for _, it := range items {
		if it == nil || it.Title == "" || it.Link == "" {
			continue
		}
		entry := &FeedEntry{
			Title:   it.Title,
			Link:    it.Link,
			Summary: it.Description,
			Content: it.Content,
			Tags:    it.Categories,
		}
		if it.PublishedParsed != nil {
			entry.Published = it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			entry.Published = it.UpdatedParsed
		}
		records = append(records, RawRecord{Kind: config.SourceKindFeed, Feed: entry})
	}

	log.Printf("fetch feed %s got %d items", src.Name, len(records))
	return records, nil
}
