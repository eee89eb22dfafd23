package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryDefaults(t *testing.T) {
	r, err := LoadRegistry("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	all := r.All()
	if len(all) == 0 {
		t.Fatal("builtin catalog should not be empty")
	}

	src, ok := r.Get("openai")
	if !ok {
		t.Fatal("builtin source openai missing")
	}
	if src.Kind != SourceKindFeed || src.URL == "" {
		t.Fatalf("unexpected openai source: %+v", src)
	}

	// 每个源的默认类别都已兜底填充
	for _, s := range all {
		if !IsKnownCategory(s.DefaultCategory) {
			t.Fatalf("source %s has unknown default category %q", s.ID, s.DefaultCategory)
		}
	}
}

func TestRegistrySelect(t *testing.T) {
	r, err := LoadRegistry("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}

	selected, err := r.Select([]string{"openai", "jiqizhixin"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(selected) != 2 || selected[0].ID != "openai" || selected[1].ID != "jiqizhixin" {
		t.Fatalf("unexpected selection: %+v", selected)
	}

	if _, err := r.Select([]string{"no_such_source"}); err == nil {
		t.Fatal("unknown source id should fail")
	}

	all, err := r.Select(nil)
	if err != nil {
		t.Fatalf("select all: %v", err)
	}
	if len(all) != len(r.All()) {
		t.Fatalf("empty selection should return all sources: %d vs %d", len(all), len(r.All()))
	}
}

func TestLoadRegistryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `sources:
  - id: my_feed
    name: My Feed
    kind: feed
    url: https://example.com/rss
    language: en
    category: technical
  - id: my_search
    name: My Search
    kind: search
    query: "ai news"
    language: zh
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write sources file: %v", err)
	}

	r, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("load from file: %v", err)
	}

	// 文件整体替换内置目录
	if len(r.All()) != 2 {
		t.Fatalf("got %d sources, want 2", len(r.All()))
	}
	feed, ok := r.Get("my_feed")
	if !ok || feed.DefaultCategory != "technical" {
		t.Fatalf("unexpected my_feed: %+v", feed)
	}
	search, ok := r.Get("my_search")
	if !ok || search.DefaultCategory != DefaultCategory {
		t.Fatalf("missing category should fall back to default: %+v", search)
	}
}

func TestLoadRegistryRejectsBadCatalog(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		content string
	}{
		{"unknown kind", "sources:\n  - id: x\n    name: X\n    kind: scrape\n"},
		{"duplicate id", "sources:\n  - id: x\n    name: X\n    kind: feed\n  - id: x\n    name: Y\n    kind: feed\n"},
		{"missing id", "sources:\n  - name: X\n    kind: feed\n"},
		{"empty catalog", "sources: []\n"},
	}
	for _, c := range cases {
		path := filepath.Join(dir, c.name+".yaml")
		if err := os.WriteFile(path, []byte(c.content), 0o644); err != nil {
			t.Fatalf("write %s: %v", c.name, err)
		}
		if _, err := LoadRegistry(path); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}

	if _, err := LoadRegistry(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("nonexistent file should fail")
	}
}
