package config

import "testing"

func TestCategoriesCatalog(t *testing.T) {
	if len(Categories) == 0 {
		t.Fatal("category catalog is empty")
	}

	// 优先级从 1 连续递增，最大值与常量一致
	seen := make(map[string]bool)
	for i, cat := range Categories {
		if cat.Priority != i+1 {
			t.Errorf("category %s priority = %d, want %d", cat.Code, cat.Priority, i+1)
		}
		if seen[cat.Code] {
			t.Errorf("duplicate category code %q", cat.Code)
		}
		seen[cat.Code] = true
	}
	if Categories[len(Categories)-1].Priority != MaxCategoryPriority {
		t.Fatalf("MaxCategoryPriority = %d does not match catalog", MaxCategoryPriority)
	}

	if !IsKnownCategory(DefaultCategory) {
		t.Fatalf("default category %q not in catalog", DefaultCategory)
	}
	if IsKnownCategory("nonsense") {
		t.Fatal("unknown code should not be known")
	}
}

func TestCategoryByCode(t *testing.T) {
	cat := CategoryByCode("product")
	if cat == nil || cat.Priority != 2 {
		t.Fatalf("product category = %+v", cat)
	}
	if CategoryByCode("missing") != nil {
		t.Fatal("unknown code should return nil")
	}
}

func TestCompanyByName(t *testing.T) {
	c := CompanyByName("OpenAI")
	if c == nil || c.SourceType != "international" {
		t.Fatalf("OpenAI = %+v", c)
	}
	if c := CompanyByName("百度"); c == nil || c.SourceType != "domestic" {
		t.Fatalf("百度 = %+v", c)
	}
	if CompanyByName("Nobody Inc") != nil {
		t.Fatal("unknown company should return nil")
	}
}

func TestIsImportantSource(t *testing.T) {
	if !IsImportantSource("OpenAI Blog") {
		t.Fatal("OpenAI Blog should be important")
	}
	if IsImportantSource("Random Blog") {
		t.Fatal("Random Blog should not be important")
	}
}
