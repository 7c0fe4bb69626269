package service

import (
	"testing"

	"github.com/handmade-next/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogServices(db *gorm.DB) (*CategoryService, *VariationService) {
	categoryRepo := repository.NewCategoryRepository(db)
	return NewCategoryService(categoryRepo), NewVariationService(
		categoryRepo,
		repository.NewVariationRepository(db),
		repository.NewVariationOptionRepository(db),
	)
}

func TestCategoryServiceLifecycle(t *testing.T) {
	db := openServiceTestDB(t)
	categories, _ := newCatalogServices(db)

	created, err := categories.Create(adminActor, CreateCategoryInput{
		Slug:     " pottery ",
		NameJSON: map[string]interface{}{"en-US": "Pottery"},
	})
	require.NoError(t, err)
	assert.Equal(t, "pottery", created.Slug)
	assert.Equal(t, adminActor.ID, created.CreatedBy)

	_, err = categories.Create(adminActor, CreateCategoryInput{Slug: "pottery"})
	require.ErrorIs(t, err, ErrSlugExists)

	require.NoError(t, categories.Delete(adminActor, created.ID))
	require.ErrorIs(t, categories.Delete(adminActor, created.ID), ErrCategoryNotFound)

	_, err = categories.Create(adminActor, CreateCategoryInput{Slug: "pottery"})
	require.ErrorIs(t, err, ErrSlugExists)

	live, err := categories.List(false)
	require.NoError(t, err)
	assert.Empty(t, live)
	all, err := categories.List(true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	restored, err := categories.Restore(adminActor, created.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted())
	_, err = categories.Restore(adminActor, created.ID)
	require.ErrorIs(t, err, ErrNotDeleted)
}

func TestCategoryServiceDeleteRejectsCategoryInUse(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	categories, _ := newCatalogServices(db)

	require.ErrorIs(t, categories.Delete(adminActor, c.category.ID), ErrCategoryInUse)
}

func TestVariationServiceNameUniquePerCategory(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	_, variations := newCatalogServices(db)

	_, err := variations.Create(sellerActor, VariationInput{CategoryID: c.category.ID, Name: " color "})
	require.ErrorIs(t, err, ErrVariationNameExists)

	created, err := variations.Create(sellerActor, VariationInput{CategoryID: c.other.ID, Name: "Color"})
	require.NoError(t, err)
	assert.Equal(t, sellerActor.ID, created.CreatedBy)

	_, err = variations.Create(sellerActor, VariationInput{CategoryID: c.category.ID, Name: "  "})
	require.ErrorIs(t, err, ErrNameRequired)
	_, err = variations.Create(sellerActor, VariationInput{CategoryID: 9999, Name: "Pattern"})
	require.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestVariationServiceDeleteGuardedByProductUsage(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	_, variations := newCatalogServices(db)
	f := newProductServiceFixture(t, db)

	product, err := f.service.Create(sellerActor, scarfInput(c))
	require.NoError(t, err)

	require.ErrorIs(t, variations.Delete(adminActor, c.color.ID), ErrVariationInUse)
	require.ErrorIs(t, variations.DeleteOption(adminActor, c.red.ID), ErrVariationOptionInUse)

	require.NoError(t, f.service.Delete(sellerActor, product.ID))
	require.NoError(t, variations.DeleteOption(adminActor, c.red.ID))
	require.NoError(t, variations.Delete(adminActor, c.color.ID))

	listed, err := variations.ListByCategory(c.category.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, c.size.ID, listed[0].ID)
}

func TestVariationServiceRestoreChecksParentAndName(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	_, variations := newCatalogServices(db)

	require.NoError(t, variations.DeleteOption(adminActor, c.blue.ID))
	_, err := variations.CreateOption(adminActor, c.color.ID, VariationOptionInput{Value: "blue"})
	require.NoError(t, err)
	_, err = variations.RestoreOption(adminActor, c.blue.ID)
	require.ErrorIs(t, err, ErrVariationOptionExists)

	require.NoError(t, variations.DeleteOption(adminActor, c.small.ID))
	require.NoError(t, variations.Delete(adminActor, c.size.ID))
	_, err = variations.RestoreOption(adminActor, c.small.ID)
	require.ErrorIs(t, err, ErrParentDeleted)

	restored, err := variations.Restore(adminActor, c.size.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedBy)
	option, err := variations.RestoreOption(adminActor, c.small.ID)
	require.NoError(t, err)
	assert.False(t, option.IsDeleted())
}

func TestVariationServiceOwnership(t *testing.T) {
	db := openServiceTestDB(t)
	c := seedServiceCatalog(t, db)
	_, variations := newCatalogServices(db)

	created, err := variations.Create(sellerActor, VariationInput{CategoryID: c.category.ID, Name: "Pattern"})
	require.NoError(t, err)

	_, err = variations.Update(otherSellerActor, created.ID, VariationInput{Name: "Motif"})
	require.ErrorIs(t, err, ErrForbidden)
	_, err = variations.CreateOption(otherSellerActor, created.ID, VariationOptionInput{Value: "Striped"})
	require.ErrorIs(t, err, ErrForbidden)

	updated, err := variations.Update(sellerActor, created.ID, VariationInput{Name: "Motif", SortOrder: 3})
	require.NoError(t, err)
	assert.Equal(t, "Motif", updated.Name)
	assert.Equal(t, 3, updated.SortOrder)
}
