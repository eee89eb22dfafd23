package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LJTian/AINewsHub/internal/processor"
	"github.com/gin-gonic/gin"
)

// fakeStore 内存快照，测试列表接口用
type fakeStore struct {
	items []processor.NewsItem
}

func (s *fakeStore) Load() ([]processor.NewsItem, error)           { return s.items, nil }
func (s *fakeStore) Append(items []processor.NewsItem) (int, error) { return len(items), nil }
func (s *fakeStore) Purge(olderThanDays int) (int, error)          { return 0, nil }

func newTestRouter(items []processor.NewsItem) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewServer(&fakeStore{items: items}, nil, nil).RegisterRoutes(r)
	return r
}

type listResponse struct {
	Code    string               `json:"code"`
	Message string               `json:"message"`
	Data    []processor.NewsItem `json:"data"`
}

func doList(t *testing.T, r *gin.Engine, path string) listResponse {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s: status %d", path, w.Code)
	}
	var resp listResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	r := newTestRouter(nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestListNewsFilters(t *testing.T) {
	items := []processor.NewsItem{
		{ID: "a", Title: "OpenAI launches GPT-5", Category: "product", SourceType: "international", Companies: []string{"OpenAI"}},
		{ID: "b", Title: "百度发布文心一言", Category: "product", SourceType: "domestic", Companies: []string{"百度"}},
		{ID: "c", Title: "A research paper", Category: "research", SourceType: "international"},
	}
	r := newTestRouter(items)

	resp := doList(t, r, "/api/v1/news")
	if len(resp.Data) != 3 {
		t.Fatalf("unfiltered list has %d items, want 3", len(resp.Data))
	}

	resp = doList(t, r, "/api/v1/news?category=product")
	if len(resp.Data) != 2 {
		t.Fatalf("category filter: %d items, want 2", len(resp.Data))
	}

	resp = doList(t, r, "/api/v1/news?source_type=domestic")
	if len(resp.Data) != 1 || resp.Data[0].ID != "b" {
		t.Fatalf("source_type filter: %+v", resp.Data)
	}

	resp = doList(t, r, "/api/v1/news?company=OpenAI")
	if len(resp.Data) != 1 || resp.Data[0].ID != "a" {
		t.Fatalf("company filter: %+v", resp.Data)
	}

	resp = doList(t, r, "/api/v1/news?q=gpt-5")
	if len(resp.Data) != 1 || resp.Data[0].ID != "a" {
		t.Fatalf("query filter should be case-insensitive: %+v", resp.Data)
	}

	resp = doList(t, r, "/api/v1/news?limit=2")
	if len(resp.Data) != 2 {
		t.Fatalf("limit: %d items, want 2", len(resp.Data))
	}
}

func TestListNewsBadLimitFallsBack(t *testing.T) {
	r := newTestRouter([]processor.NewsItem{{ID: "a", Title: "t"}})
	resp := doList(t, r, "/api/v1/news?limit=bogus")
	if resp.Code != "ok" || len(resp.Data) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
