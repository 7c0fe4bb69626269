package service

import (
	"fmt"

	"github.com/handmade-next/internal/logger"
	"github.com/handmade-next/internal/metrics"
	"github.com/handmade-next/internal/models"
	"github.com/handmade-next/internal/repository"

	"gorm.io/gorm"
)

// ProductConfigurationMaterializer 将校验通过的规格组合写入为可售单元与规格值关联
type ProductConfigurationMaterializer struct {
	itemRepo   repository.ProductItemRepository
	optionRepo repository.VariationOptionRepository
}

// NewProductConfigurationMaterializer 创建规格组合落库器
func NewProductConfigurationMaterializer(itemRepo repository.ProductItemRepository, optionRepo repository.VariationOptionRepository) *ProductConfigurationMaterializer {
	return &ProductConfigurationMaterializer{itemRepo: itemRepo, optionRepo: optionRepo}
}

// Materialize 为每个组合创建一个可售单元及其规格值关联。
// tx 为空时自行开启事务；任一组合失败时整批回滚。
func (m *ProductConfigurationMaterializer) Materialize(tx *gorm.DB, productID uint, combos []CombinationInput, actor string) ([]models.ProductItem, error) {
	var items []models.ProductItem
	err := m.inTx(tx, func(tx *gorm.DB) error {
		created, err := m.create(tx, productID, combos, actor)
		items = created
		return err
	})
	metrics.RecordMaterialization("materialize", len(items), err)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Replace 删除商品现有的全部可售单元及关联后重新创建
func (m *ProductConfigurationMaterializer) Replace(tx *gorm.DB, productID uint, combos []CombinationInput, actor string) ([]models.ProductItem, error) {
	var items []models.ProductItem
	err := m.inTx(tx, func(tx *gorm.DB) error {
		removed, err := m.itemRepo.WithTx(tx).DeleteByProduct(productID)
		if err != nil {
			return mapPersistenceError(err)
		}
		created, err := m.create(tx, productID, combos, actor)
		if err != nil {
			return err
		}
		items = created
		logger.Debugw("product_configuration_replaced",
			"product_id", productID,
			"removed_items", removed,
			"created_items", len(created),
		)
		return nil
	})
	metrics.RecordMaterialization("replace", len(items), err)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (m *ProductConfigurationMaterializer) inTx(tx *gorm.DB, fn func(tx *gorm.DB) error) error {
	if tx != nil {
		return fn(tx)
	}
	return m.itemRepo.Transaction(fn)
}

func (m *ProductConfigurationMaterializer) create(tx *gorm.DB, productID uint, combos []CombinationInput, actor string) ([]models.ProductItem, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: product id is empty", ErrInvalidReference)
	}
	itemRepo := m.itemRepo.WithTx(tx)
	optionRepo := m.optionRepo.WithTx(tx)

	items := make([]models.ProductItem, 0, len(combos))
	for idx, combo := range combos {
		if err := ensureOptionsExist(optionRepo, combo.OptionIDs); err != nil {
			return nil, fmt.Errorf("combinations[%d]: %w", idx, err)
		}
		item := models.ProductItem{
			ProductID:   productID,
			PriceAmount: models.NewMoneyFromDecimal(combo.Price),
			Stock:       combo.Stock,
			Audit:       models.Audit{CreatedBy: actor, UpdatedBy: actor},
		}
		if err := itemRepo.Create(&item); err != nil {
			return nil, mapPersistenceError(err)
		}
		links := make([]models.ProductConfiguration, 0, len(combo.OptionIDs))
		for _, optionID := range combo.OptionIDs {
			links = append(links, models.ProductConfiguration{
				ProductItemID:     item.ID,
				VariationOptionID: optionID,
			})
		}
		if err := itemRepo.CreateConfigurations(links); err != nil {
			return nil, mapPersistenceError(err)
		}
		item.Configurations = links
		items = append(items, item)
	}
	return items, nil
}

// ensureOptionsExist 校验组合引用的规格值均存在且未删除
func ensureOptionsExist(optionRepo repository.VariationOptionRepository, optionIDs []uint) error {
	if len(optionIDs) == 0 {
		return fmt.Errorf("%w: combination has no options", ErrInvalidReference)
	}
	unique := uniqueUints(optionIDs)
	options, err := optionRepo.ListByIDs(unique)
	if err != nil {
		return mapPersistenceError(err)
	}
	if len(options) == len(unique) {
		return nil
	}
	found := make(map[uint]struct{}, len(options))
	for _, option := range options {
		found[option.ID] = struct{}{}
	}
	for _, id := range unique {
		if _, ok := found[id]; !ok {
			return fmt.Errorf("%w: variation option %d", ErrInvalidReference, id)
		}
	}
	return nil
}

// mapPersistenceError 外键错误映射为引用无效，其余归为持久化错误
func mapPersistenceError(err error) error {
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}
	if repository.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

func uniqueUints(values []uint) []uint {
	seen := make(map[uint]struct{}, len(values))
	result := make([]uint, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
