package repository

import (
	"strings"
	"testing"
)

func TestParseDialect(t *testing.T) {
	cases := map[string]sqlDialect{
		"sqlite":     dialectSQLite,
		" Postgres ": dialectPostgres,
		"pgx":        dialectPostgres,
		"":           dialectSQLite,
		"mysql":      dialectSQLite,
	}
	for raw, want := range cases {
		if got := parseDialect(raw); got != want {
			t.Fatalf("parseDialect(%q) want %s got %s", raw, want, got)
		}
	}
	if dialectOf(nil) != dialectSQLite {
		t.Fatalf("nil db should default to sqlite")
	}
}

func TestJSONTextByDialect(t *testing.T) {
	if got, want := dialectSQLite.jsonText("title_json", "vi-VN"), `json_extract(title_json, '$."vi-VN"')`; got != want {
		t.Fatalf("sqlite json expr want %s got %s", want, got)
	}
	if got, want := dialectPostgres.jsonText("title_json", "en-US"), "(title_json::jsonb ->> 'en-US')"; got != want {
		t.Fatalf("postgres json expr want %s got %s", want, got)
	}
}

func TestTextSearchCondition(t *testing.T) {
	condition, count := newTextSearch(dialectSQLite, []string{"slug", " "}, []string{"title_json"}).condition()
	if count != 4 {
		t.Fatalf("placeholder count want 4 got %d", count)
	}
	if !strings.HasPrefix(condition, `slug LIKE ? ESCAPE '\'`) {
		t.Fatalf("unexpected condition: %s", condition)
	}
	if !strings.Contains(condition, `json_extract(title_json, '$."zh-CN"') LIKE ?`) {
		t.Fatalf("condition should cover zh-CN title: %s", condition)
	}

	pgCondition, _ := newTextSearch(dialectPostgres, []string{"slug"}, nil).condition()
	if !strings.Contains(pgCondition, "ILIKE") {
		t.Fatalf("postgres should use ILIKE: %s", pgCondition)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`100%_wool\`); got != `100\%\_wool\\` {
		t.Fatalf("escapeLike got %s", got)
	}
}

func TestTextSearchMatchesLocalizedTitles(t *testing.T) {
	db := openRepositoryTestDB(t)
	fixture := createCatalogFixture(t, db)
	createProductFixture(t, db, fixture.category.ID, "wool-scarf")
	createProductFixture(t, db, fixture.category.ID, "cotton-bag")

	repo := NewProductRepository(db)
	products, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 10, Search: "Khăn"})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("both fixtures share the localized title, got total=%d", total)
	}

	products, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 10, Search: "cotton"})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 1 || products[0].Slug != "cotton-bag" {
		t.Fatalf("slug search should match cotton-bag only, got total=%d", total)
	}

	_, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 10, Search: "%"})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("literal percent should not match everything, got %d", total)
	}
}
