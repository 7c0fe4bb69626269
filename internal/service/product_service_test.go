package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/handmade-next/internal/constants"
	"github.com/handmade-next/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductServiceCreateMaterializesFullCartesianProduct(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	f := newProductServiceFixture(t, db)

	product, err := f.service.Create(sellerActor, scarfInput(c))
	require.NoError(t, err)

	assert.Equal(t, uint(1), product.ConfigVersion)
	assert.Equal(t, sellerActor.ID, product.CreatedBy)
	assert.True(t, product.IsActive)
	require.Len(t, product.Items, 6)
	for _, item := range product.Items {
		require.Len(t, item.Configurations, 2)
		assert.Equal(t, sellerActor.ID, item.CreatedBy)
	}
	assert.Equal(t, "100.00", product.MinPrice.String())
	assert.Equal(t, "150.00", product.MaxPrice.String())
	assert.Equal(t, 21, product.TotalStock)

	got := make(map[string]struct{}, len(product.Items))
	for _, item := range product.Items {
		got[CombinationKey(item.OptionIDs())] = struct{}{}
	}
	for _, expected := range Combinations(ProductAxes(product)) {
		_, ok := got[CombinationKey(expected)]
		assert.True(t, ok, "missing %v", expected)
	}
}

func TestProductServiceCreateRejectsIncompleteCombinationsWithoutWrites(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	f := newProductServiceFixture(t, db)

	input := scarfInput(c)
	input.Combinations = input.Combinations[:5]
	_, err := f.service.Create(sellerActor, input)
	require.ErrorIs(t, err, ErrCombinationIncomplete)

	assert.Equal(t, int64(0), countRows(t, db, &models.Product{}))
	assert.Equal(t, int64(0), countRows(t, db, &models.ProductItem{}))
}

func TestProductServiceCreateRejectsBadCombinations(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	f := newProductServiceFixture(t, db)

	cases := []struct {
		name   string
		mutate func(in *ProductInput)
		want   error
	}{
		{"duplicate", func(in *ProductInput) {
			in.Combinations = append(in.Combinations, combo(100, 1, c.red.ID, c.small.ID))
		}, ErrCombinationDuplicate},
		{"unexpected", func(in *ProductInput) {
			in.Combinations = append(in.Combinations, combo(100, 1, c.red.ID))
		}, ErrCombinationUnexpected},
		{"negative price", func(in *ProductInput) {
			in.Combinations[2].Price = in.Combinations[2].Price.Neg()
		}, ErrItemPriceInvalid},
		{"negative stock", func(in *ProductInput) {
			in.Combinations[0].Stock = -1
		}, ErrItemStockInvalid},
		{"no variations", func(in *ProductInput) {
			in.Variations = nil
		}, ErrVariationRequired},
		{"empty axis", func(in *ProductInput) {
			in.Variations[1].OptionIDs = nil
		}, ErrAxisInvalid},
		{"repeated variation", func(in *ProductInput) {
			in.Variations = append(in.Variations, in.Variations[0])
		}, ErrAxisInvalid},
		{"option from another variation", func(in *ProductInput) {
			in.Variations[0].OptionIDs = []uint{c.red.ID, c.small.ID}
		}, ErrInvalidReference},
		{"variation from another category", func(in *ProductInput) {
			in.Variations = append(in.Variations, ProductVariationInput{VariationID: c.material.ID, OptionIDs: []uint{c.wool.ID}})
		}, ErrInvalidReference},
		{"unknown category", func(in *ProductInput) {
			in.CategoryID = 9999
		}, ErrInvalidReference},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := scarfInput(c)
			input.Combinations = append([]CombinationInput(nil), input.Combinations...)
			tc.mutate(&input)
			_, err := f.service.Create(sellerActor, input)
			require.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, int64(0), countRows(t, db, &models.ProductItem{}))
}

func TestProductServiceCreateAllowsZeroPrice(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	f := newProductServiceFixture(t, db)

	input := scarfInput(c)
	input.Combinations = append([]CombinationInput(nil), input.Combinations...)
	input.Combinations[0].Price = decimal.Zero
	product, err := f.service.Create(sellerActor, input)
	require.NoError(t, err)

	require.Len(t, product.Items, 6)
	assert.Equal(t, "0.00", product.MinPrice.String())
	assert.Equal(t, "150.00", product.MaxPrice.String())
}

func TestProductServiceCreateRejectsDeletedOption(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	f := newProductServiceFixture(t, db)
	require.NoError(t, db.Delete(c.large).Error)

	_, err := f.service.Create(sellerActor, scarfInput(c))
	require.ErrorIs(t, err, ErrInvalidReference)
}

func TestProductServiceCreateRejectsTooManyCombinations(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	f := newProductServiceFixture(t, db)

	variations := make([]ProductVariationInput, 0, 3)
	for i := 0; i < 3; i++ {
		variation := &models.Variation{CategoryID: c.category.ID, Name: fmt.Sprintf("Axis %d", i)}
		require.NoError(t, db.Create(variation).Error)
		axis := ProductVariationInput{VariationID: variation.ID}
		for j := 0; j < 8; j++ {
			option := &models.VariationOption{VariationID: variation.ID, Value: fmt.Sprintf("v%d", j)}
			require.NoError(t, db.Create(option).Error)
			axis.OptionIDs = append(axis.OptionIDs, option.ID)
		}
		variations = append(variations, axis)
	}
	require.Greater(t, 8*8*8, constants.MaxProductCombinations)

	_, err := f.service.PreviewCombinations(c.category.ID, variations)
	require.ErrorIs(t, err, ErrTooManyCombinations)
}

func TestProductServiceCreateRejectsDuplicateSlug(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	f := newProductServiceFixture(t, db)

	_, err := f.service.Create(sellerActor, scarfInput(c))
	require.NoError(t, err)
	_, err = f.service.Create(otherSellerActor, scarfInput(c))
	require.ErrorIs(t, err, ErrSlugExists)
}

func TestProductServiceCreateInactive(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	f := newProductServiceFixture(t, db)

	inactive := false
	input := scarfInput(c)
	input.IsActive = &inactive
	product, err := f.service.Create(sellerActor, input)
	require.NoError(t, err)
	assert.False(t, product.IsActive)

	_, err = f.service.GetPublic(t.Context(), product.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProductServiceUpdateReplacesItems(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	f := newProductServiceFixture(t, db)

	created, err := f.service.Create(sellerActor, scarfInput(c))
	require.NoError(t, err)

	version := created.ConfigVersion
	input := scarfInput(c)
	input.ConfigVersion = &version
	input.Variations = []ProductVariationInput{{VariationID: c.color.ID, OptionIDs: []uint{c.blue.ID, c.red.ID}}}
	input.Combinations = []CombinationInput{
		combo(300, 7, c.red.ID),
		combo(320, 8, c.blue.ID),
	}
	updated, err := f.service.Update(sellerActor, created.ID, input)
	require.NoError(t, err)

	assert.Equal(t, uint(2), updated.ConfigVersion)
	require.Len(t, updated.Items, 2)
	assert.Equal(t, "300.00", updated.MinPrice.String())
	assert.Equal(t, 15, updated.TotalStock)
	assert.Equal(t, int64(2), countRows(t, db, &models.ProductItem{}))
	assert.Equal(t, int64(2), countRows(t, db, &models.ProductConfiguration{}))
}

func TestProductServiceUpdateStaleVersionConflicts(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	f := newProductServiceFixture(t, db)

	created, err := f.service.Create(sellerActor, scarfInput(c))
	require.NoError(t, err)

	stale := created.ConfigVersion
	first := scarfInput(c)
	first.ConfigVersion = &stale
	_, err = f.service.Update(sellerActor, created.ID, first)
	require.NoError(t, err)

	second := scarfInput(c)
	second.ConfigVersion = &stale
	second.Combinations[0].Stock = 99
	_, err = f.service.Update(sellerActor, created.ID, second)
	require.ErrorIs(t, err, ErrConfigVersionConflict)

	items, err := f.itemRepo.ListByProduct(created.ID)
	require.NoError(t, err)
	require.Len(t, items, 6)
	assert.Equal(t, 1, items[0].Stock)
}

func TestProductServiceUpdateFailureKeepsConfiguration(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	f := newProductServiceFixture(t, db)

	created, err := f.service.Create(sellerActor, scarfInput(c))
	require.NoError(t, err)

	input := scarfInput(c)
	input.Combinations = input.Combinations[1:]
	_, err = f.service.Update(sellerActor, created.ID, input)
	require.ErrorIs(t, err, ErrCombinationIncomplete)

	reloaded, err := f.productRepo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ConfigVersion, reloaded.ConfigVersion)
	assert.Len(t, reloaded.Items, 6)
}

func TestProductServiceOwnership(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	f := newProductServiceFixture(t, db)

	created, err := f.service.Create(sellerActor, scarfInput(c))
	require.NoError(t, err)

	_, err = f.service.Update(otherSellerActor, created.ID, scarfInput(c))
	require.ErrorIs(t, err, ErrForbidden)
	require.ErrorIs(t, f.service.Delete(otherSellerActor, created.ID), ErrForbidden)
	_, err = f.service.GetAdminByID(otherSellerActor, created.ID)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = f.service.Update(adminActor, created.ID, scarfInput(c))
	require.NoError(t, err)

	list, total, err := f.service.ListAdmin(otherSellerActor, 0, "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, list)
	_, total, err = f.service.ListAdmin(adminActor, 0, "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestProductServiceDeleteAndRestore(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	f := newProductServiceFixture(t, db)

	created, err := f.service.Create(sellerActor, scarfInput(c))
	require.NoError(t, err)

	_, err = f.service.Restore(sellerActor, created.ID)
	require.ErrorIs(t, err, ErrNotDeleted)

	require.NoError(t, f.service.Delete(sellerActor, created.ID))
	require.ErrorIs(t, f.service.Delete(sellerActor, created.ID), ErrNotFound)
	_, err = f.service.GetPublic(t.Context(), created.ID)
	require.ErrorIs(t, err, ErrNotFound)

	deleted, err := f.productRepo.GetByIDWithDeleted(created.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted.DeletedBy)
	assert.Equal(t, sellerActor.ID, *deleted.DeletedBy)

	restored, err := f.service.Restore(sellerActor, created.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted())
	assert.Nil(t, restored.DeletedBy)
	assert.Len(t, restored.Items, 6)
}

func TestProductServiceRestoreRequiresLiveCategory(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	f := newProductServiceFixture(t, db)

	created, err := f.service.Create(sellerActor, scarfInput(c))
	require.NoError(t, err)
	require.NoError(t, f.service.Delete(sellerActor, created.ID))
	require.NoError(t, db.Delete(c.category).Error)

	_, err = f.service.Restore(sellerActor, created.ID)
	require.ErrorIs(t, err, ErrParentDeleted)
}

func TestProductServiceCurrentCombinationsMatchesItems(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	f := newProductServiceFixture(t, db)

	created, err := f.service.Create(sellerActor, scarfInput(c))
	require.NoError(t, err)

	preview, err := f.service.CurrentCombinations(sellerActor, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, preview.Total)
	require.Len(t, preview.Axes, 2)
	assert.Equal(t, c.color.ID, preview.Axes[0].VariationID)
	assert.Equal(t, []uint{c.red.ID, c.blue.ID}, preview.Axes[0].OptionIDs)
	assert.Equal(t, []uint{c.small.ID, c.medium.ID, c.large.ID}, preview.Axes[1].OptionIDs)
}

func TestProductServicePreviewCombinations(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	f := newProductServiceFixture(t, db)

	preview, err := f.service.PreviewCombinations(c.category.ID, []ProductVariationInput{
		{VariationID: c.size.ID, OptionIDs: []uint{c.small.ID, c.large.ID}},
		{VariationID: c.color.ID, OptionIDs: []uint{c.red.ID}},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]uint{{c.small.ID, c.red.ID}, {c.large.ID, c.red.ID}}, preview.Combinations)
}

type memoryProductCache struct {
	entries     map[uint]*models.Product
	invalidated []uint
}

func (m *memoryProductCache) Get(_ context.Context, id uint) (*models.Product, bool, error) {
	product, ok := m.entries[id]
	return product, ok, nil
}

func (m *memoryProductCache) Set(_ context.Context, product *models.Product) error {
	m.entries[product.ID] = product
	return nil
}

func (m *memoryProductCache) Invalidate(_ context.Context, id uint) error {
	delete(m.entries, id)
	m.invalidated = append(m.invalidated, id)
	return nil
}

func TestProductServiceCacheInvalidatedOnWrite(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	f := newProductServiceFixture(t, db)
	memory := &memoryProductCache{entries: map[uint]*models.Product{}}
	f.service.cache = memory

	created, err := f.service.Create(sellerActor, scarfInput(c))
	require.NoError(t, err)

	_, err = f.service.GetPublic(t.Context(), created.ID)
	require.NoError(t, err)
	require.Contains(t, memory.entries, created.ID)

	_, err = f.service.Update(sellerActor, created.ID, scarfInput(c))
	require.NoError(t, err)
	assert.NotContains(t, memory.entries, created.ID)

	require.NoError(t, f.service.RefreshSummary(created.ID))
	assert.Equal(t, []uint{created.ID, created.ID}, memory.invalidated)
}
