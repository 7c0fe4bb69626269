package main

import (
	"errors"

	"github.com/handmade-next/internal/app"
	"github.com/handmade-next/internal/config"
	"github.com/handmade-next/internal/constants"
	"github.com/handmade-next/internal/logger"
	"github.com/handmade-next/internal/models"
	"github.com/handmade-next/internal/provider"
	"github.com/handmade-next/internal/service"

	"github.com/shopspring/decimal"
)

var (
	seedAdmin    = service.Actor{ID: "admin-1", Username: "admin", Role: constants.RoleAdmin}
	seedSeller   = service.Actor{ID: "seller-1", Username: "weaver", Role: constants.RoleSeller}
	seedCustomer = service.Actor{ID: "customer-1", Username: "buyer", Role: constants.RoleCustomer}
)

type seedVariation struct {
	Name   string
	Values []string
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	db, err := app.OpenDatabase(cfg)
	if err != nil {
		stdLog.Fatalf("Failed to open database: %v", err)
	}
	container, err := provider.NewContainer(cfg, db)
	if err != nil {
		stdLog.Fatalf("Failed to build container: %v", err)
	}
	defer container.Close()

	category, err := ensureCategory(container, "knitwear", map[string]interface{}{
		"vi-VN": "Đồ đan len",
		"en-US": "Knitwear",
		"zh-CN": "针织品",
	})
	if err != nil {
		stdLog.Fatalf("Failed to seed category: %v", err)
	}
	stdLog.Printf("Category ready: %s (#%d)", category.Slug, category.ID)

	axes := make([]service.ProductVariationInput, 0, 2)
	for _, def := range []seedVariation{
		{Name: "Color", Values: []string{"Red", "Blue", "Cream"}},
		{Name: "Size", Values: []string{"S", "M", "L"}},
	} {
		variation, err := ensureVariation(container, category.ID, def)
		if err != nil {
			stdLog.Fatalf("Failed to seed variation %s: %v", def.Name, err)
		}
		ids := make([]uint, 0, len(variation.Options))
		for _, option := range variation.Options {
			ids = append(ids, option.ID)
		}
		axes = append(axes, service.ProductVariationInput{VariationID: variation.ID, OptionIDs: ids})
		stdLog.Printf("Variation ready: %s (%d options)", variation.Name, len(ids))
	}

	preview, err := container.ProductService.PreviewCombinations(category.ID, axes)
	if err != nil {
		stdLog.Fatalf("Failed to preview combinations: %v", err)
	}
	combos := make([]service.CombinationInput, 0, preview.Total)
	for i, tuple := range preview.Combinations {
		combos = append(combos, service.CombinationInput{
			OptionIDs: tuple,
			Price:     decimal.NewFromInt(int64(180 + 10*(i%3))),
			Stock:     5,
		})
	}

	product, err := container.ProductService.Create(seedSeller, service.ProductInput{
		CategoryID: category.ID,
		Slug:       "alpaca-scarf",
		TitleJSON: map[string]interface{}{
			"vi-VN": "Khăn len alpaca",
			"en-US": "Alpaca scarf",
			"zh-CN": "羊驼毛围巾",
		},
		DescriptionJSON: map[string]interface{}{
			"en-US": "Hand-knitted from undyed alpaca wool.",
		},
		Tags:         []string{"handmade", "winter"},
		Variations:   axes,
		Combinations: combos,
	})
	switch {
	case errors.Is(err, service.ErrSlugExists):
		stdLog.Printf("Product already exists: alpaca-scarf")
	case err != nil:
		stdLog.Fatalf("Failed to seed product: %v", err)
	default:
		stdLog.Printf("Created product %s with %d items", product.Slug, len(product.Items))
	}

	for _, actor := range []service.Actor{seedAdmin, seedSeller, seedCustomer} {
		token, expiresAt, err := container.TokenService.Issue(actor)
		if err != nil {
			stdLog.Fatalf("Failed to issue token for %s: %v", actor.Role, err)
		}
		stdLog.Printf("%s token (expires %s): %s", actor.Role, expiresAt.Format("2006-01-02 15:04"), token)
	}
	stdLog.Println("Seed completed")
}

func ensureCategory(c *provider.Container, slug string, name map[string]interface{}) (*models.Category, error) {
	categories, err := c.CategoryService.List(false)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].Slug == slug {
			return &categories[i], nil
		}
	}
	return c.CategoryService.Create(seedAdmin, service.CreateCategoryInput{Slug: slug, NameJSON: name})
}

func ensureVariation(c *provider.Container, categoryID uint, def seedVariation) (*models.Variation, error) {
	variations, err := c.VariationService.ListByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	for i := range variations {
		if variations[i].Name == def.Name {
			return &variations[i], nil
		}
	}
	variation, err := c.VariationService.Create(seedSeller, service.VariationInput{CategoryID: categoryID, Name: def.Name})
	if err != nil {
		return nil, err
	}
	for i, value := range def.Values {
		option, err := c.VariationService.CreateOption(seedSeller, variation.ID, service.VariationOptionInput{Value: value, SortOrder: i})
		if err != nil {
			return nil, err
		}
		variation.Options = append(variation.Options, *option)
	}
	return variation, nil
}
