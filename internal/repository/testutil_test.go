package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/handmade-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
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

type catalogFixture struct {
	category *models.Category
	color    *models.Variation
	size     *models.Variation
	red      *models.VariationOption
	blue     *models.VariationOption
	small    *models.VariationOption
}

func createCatalogFixture(t *testing.T, db *gorm.DB) catalogFixture {
	t.Helper()
	category := &models.Category{Slug: "knitwear", NameJSON: models.JSON{"vi-VN": "Đồ len"}}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	color := &models.Variation{CategoryID: category.ID, Name: "Color"}
	size := &models.Variation{CategoryID: category.ID, Name: "Size"}
	if err := db.Create(color).Error; err != nil {
		t.Fatalf("create variation failed: %v", err)
	}
	if err := db.Create(size).Error; err != nil {
		t.Fatalf("create variation failed: %v", err)
	}
	red := &models.VariationOption{VariationID: color.ID, Value: "Red"}
	blue := &models.VariationOption{VariationID: color.ID, Value: "Blue"}
	small := &models.VariationOption{VariationID: size.ID, Value: "S"}
	for _, option := range []*models.VariationOption{red, blue, small} {
		if err := db.Create(option).Error; err != nil {
			t.Fatalf("create option failed: %v", err)
		}
	}
	return catalogFixture{category: category, color: color, size: size, red: red, blue: blue, small: small}
}

func createProductFixture(t *testing.T, db *gorm.DB, categoryID uint, slug string) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID: categoryID,
		Slug:       slug,
		TitleJSON:  models.JSON{"vi-VN": "Khăn len", "en-US": "Wool scarf"},
		IsActive:   true,
		Audit:      models.Audit{CreatedBy: "seller-1"},
	}
	if err := NewProductRepository(db).Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createItemFixture(t *testing.T, db *gorm.DB, productID uint, price int64, stock int, optionIDs ...uint) *models.ProductItem {
	t.Helper()
	repo := NewProductItemRepository(db)
	item := &models.ProductItem{
		ProductID:   productID,
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		Stock:       stock,
	}
	if err := repo.Create(item); err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	links := make([]models.ProductConfiguration, 0, len(optionIDs))
	for _, optionID := range optionIDs {
		links = append(links, models.ProductConfiguration{ProductItemID: item.ID, VariationOptionID: optionID})
	}
	if err := repo.CreateConfigurations(links); err != nil {
		t.Fatalf("create configurations failed: %v", err)
	}
	return item
}
