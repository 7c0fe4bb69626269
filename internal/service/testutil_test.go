package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/handmade-next/internal/models"
	"github.com/handmade-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type serviceCatalog struct {
	category *models.Category
	other    *models.Category
	color    *models.Variation
	size     *models.Variation
	material *models.Variation
	red      *models.VariationOption
	blue     *models.VariationOption
	small    *models.VariationOption
	medium   *models.VariationOption
	large    *models.VariationOption
	wool     *models.VariationOption
}

func seedServiceCatalog(t *testing.T, db *gorm.DB) serviceCatalog {
	t.Helper()
	mustCreate := func(value interface{}) {
		t.Helper()
		if err := db.Create(value).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	c := serviceCatalog{
		category: &models.Category{Slug: "knitwear", NameJSON: models.JSON{"en-US": "Knitwear"}},
		other:    &models.Category{Slug: "ceramics", NameJSON: models.JSON{"en-US": "Ceramics"}},
	}
	mustCreate(c.category)
	mustCreate(c.other)
	c.color = &models.Variation{CategoryID: c.category.ID, Name: "Color", SortOrder: 1}
	c.size = &models.Variation{CategoryID: c.category.ID, Name: "Size", SortOrder: 2}
	c.material = &models.Variation{CategoryID: c.other.ID, Name: "Material"}
	mustCreate(c.color)
	mustCreate(c.size)
	mustCreate(c.material)
	c.red = &models.VariationOption{VariationID: c.color.ID, Value: "Red"}
	c.blue = &models.VariationOption{VariationID: c.color.ID, Value: "Blue"}
	c.small = &models.VariationOption{VariationID: c.size.ID, Value: "S"}
	c.medium = &models.VariationOption{VariationID: c.size.ID, Value: "M"}
	c.large = &models.VariationOption{VariationID: c.size.ID, Value: "L"}
	c.wool = &models.VariationOption{VariationID: c.material.ID, Value: "Wool"}
	for _, option := range []*models.VariationOption{c.red, c.blue, c.small, c.medium, c.large, c.wool} {
		mustCreate(option)
	}
	return c
}

type productServiceFixture struct {
	db           *gorm.DB
	service      *ProductService
	materializer *ProductConfigurationMaterializer
	productRepo  *repository.GormProductRepository
	itemRepo     *repository.GormProductItemRepository
	optionRepo   *repository.GormVariationOptionRepository
}

func newProductServiceFixture(t *testing.T, db *gorm.DB) productServiceFixture {
	t.Helper()
	productRepo := repository.NewProductRepository(db)
	itemRepo := repository.NewProductItemRepository(db)
	optionRepo := repository.NewVariationOptionRepository(db)
	materializer := NewProductConfigurationMaterializer(itemRepo, optionRepo)
	svc := NewProductService(
		productRepo,
		repository.NewCategoryRepository(db),
		repository.NewVariationRepository(db),
		optionRepo,
		materializer,
		nil,
		nil,
	)
	return productServiceFixture{
		db:           db,
		service:      svc,
		materializer: materializer,
		productRepo:  productRepo,
		itemRepo:     itemRepo,
		optionRepo:   optionRepo,
	}
}

func combo(price int64, stock int, optionIDs ...uint) CombinationInput {
	return CombinationInput{OptionIDs: optionIDs, Price: decimal.NewFromInt(price), Stock: stock}
}

func scarfInput(c serviceCatalog) ProductInput {
	return ProductInput{
		CategoryID: c.category.ID,
		Slug:       "wool-scarf",
		TitleJSON:  map[string]interface{}{"en-US": "Wool scarf", "vi-VN": "Khăn len"},
		Variations: []ProductVariationInput{
			{VariationID: c.color.ID, OptionIDs: []uint{c.red.ID, c.blue.ID}},
			{VariationID: c.size.ID, OptionIDs: []uint{c.small.ID, c.medium.ID, c.large.ID}},
		},
		Combinations: []CombinationInput{
			combo(100, 1, c.red.ID, c.small.ID),
			combo(110, 2, c.red.ID, c.medium.ID),
			combo(120, 3, c.red.ID, c.large.ID),
			combo(100, 4, c.small.ID, c.blue.ID),
			combo(110, 5, c.medium.ID, c.blue.ID),
			combo(150, 6, c.large.ID, c.blue.ID),
		},
	}
}

var (
	sellerActor      = Actor{ID: "seller-1", Username: "maker", Role: "seller"}
	otherSellerActor = Actor{ID: "seller-2", Username: "potter", Role: "seller"}
	adminActor       = Actor{ID: "admin-1", Username: "admin", Role: "admin"}
)

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var total int64
	if err := db.Model(model).Count(&total).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return total
}
