package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/LJTian/AINewsHub/internal/config"
)

const searchMaxResponseBytes = 1 << 20 // 1MB

// SearchFetcher 调用外部搜索服务拉取结果。
// 服务按查询语句返回零到多条命中，内部行为对本系统不透明。
type SearchFetcher struct {
	endpoint   string
	apiKey     string
	client     *http.Client
	retry      config.RetryPolicy
	maxResults int
	days       int
}

func NewSearchFetcher(endpoint, apiKey string, retry config.RetryPolicy, maxResults, days int) *SearchFetcher {
	if maxResults <= 0 {
		maxResults = 10
	}
	if days <= 0 {
		days = 7
	}
	return &SearchFetcher{
		endpoint:   endpoint,
		apiKey:     apiKey,
		client:     &http.Client{},
		retry:      retry,
		maxResults: maxResults,
		days:       days,
	}
}

func (f *SearchFetcher) Kind() string { return config.SourceKindSearch }

type searchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
	Days       int    `json:"days"`
	Language   string `json:"language,omitempty"`
}

type searchResponse struct {
	Results []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		Snippet     string `json:"snippet"`
		Content     string `json:"content"`
		Source      string `json:"source"`
		PublishTime string `json:"publish_time"`
	} `json:"results"`
}

func (f *SearchFetcher) Fetch(ctx context.Context, src config.Source) ([]RawRecord, error) {
	if f.endpoint == "" {
		log.Printf("search %s skipped: no endpoint configured", src.ID)
		return nil, nil
	}

	log.Printf("search %s: %q...", src.ID, src.Query)

	body, err := json.Marshal(searchRequest{
		Query:      src.Query,
		MaxResults: f.maxResults,
		Days:       f.days,
		Language:   src.Language,
	})
	if err != nil {
		return nil, malformedError(src.ID, err)
	}

	var parsed searchResponse
	err = withRetry(ctx, f.retry, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
		if err != nil {
			return classifyFetchError(src.ID, err)
		}
		req.Header.Set("Content-Type", "application/json")
		if f.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+f.apiKey)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return classifyFetchError(src.ID, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return classifyFetchError(src.ID, fmt.Errorf("unexpected status %d", resp.StatusCode))
		}

		raw, err := io.ReadAll(io.LimitReader(resp.Body, searchMaxResponseBytes))
		if err != nil {
			return classifyFetchError(src.ID, err)
		}
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return malformedError(src.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	records := make([]RawRecord, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if r.Title == "" || r.URL == "" {
			continue
		}
		snippet := r.Snippet
		if snippet == "" {
			snippet = r.Content
		}
		records = append(records, RawRecord{
			Kind: config.SourceKindSearch,
			Search: &SearchHit{
				Title:       r.Title,
				URL:         r.URL,
				Snippet:     snippet,
				Source:      r.Source,
				PublishTime: r.PublishTime,
			},
		})
	}

	log.Printf("search %s got %d hits", src.ID, len(records))
	return records, nil
}
