package processor

import "testing"

func TestDeduplicateKeepsFirstSeen(t *testing.T) {
	items := []NewsItem{
		{ID: "a", Title: "first"},
		{ID: "b", Title: "second"},
		{ID: "a", Title: "duplicate of first"},
		{ID: "c", Title: "third"},
		{ID: "b", Title: "duplicate of second"},
	}

	out := Deduplicate(items)
	if len(out) != 3 {
		t.Fatalf("got %d items, want 3", len(out))
	}
	if out[0].ID != "a" || out[1].ID != "b" || out[2].ID != "c" {
		t.Fatalf("order not preserved: %v", out)
	}
	if out[0].Title != "first" {
		t.Fatalf("should keep first occurrence, got %q", out[0].Title)
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	items := []NewsItem{{ID: "a"}, {ID: "a"}, {ID: "b"}}
	once := Deduplicate(items)
	twice := Deduplicate(once)
	if len(once) != len(twice) {
		t.Fatalf("second pass changed result: %d vs %d", len(once), len(twice))
	}
}

// 标题仅大小写不同的条目指向同一篇文章，应折叠为一条
func TestDeduplicateCaseInsensitiveTitles(t *testing.T) {
	url := "https://example.com/gpt5"
	items := []NewsItem{
		{ID: ItemID(url, "OpenAI Launches GPT-5"), Title: "OpenAI Launches GPT-5"},
		{ID: ItemID(url, "OpenAI launches GPT-5"), Title: "OpenAI launches GPT-5"},
	}
	out := Deduplicate(items)
	if len(out) != 1 {
		t.Fatalf("got %d items, want 1", len(out))
	}
}

func TestFilterKnown(t *testing.T) {
	items := []NewsItem{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	known := map[string]struct{}{"b": {}}

	out := FilterKnown(items, known)
	if len(out) != 2 {
		t.Fatalf("got %d items, want 2", len(out))
	}
	if out[0].ID != "a" || out[1].ID != "c" {
		t.Fatalf("unexpected result: %v", out)
	}

	// 空快照不做任何过滤
	if got := FilterKnown(items, nil); len(got) != 3 {
		t.Fatalf("empty known set should pass everything, got %d", len(got))
	}
}
