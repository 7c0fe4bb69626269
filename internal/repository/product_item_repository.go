package repository

import (
	"errors"

	"github.com/handmade-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductItemRepository 可售单元（规格组合）数据访问接口
type ProductItemRepository interface {
	ListByProduct(productID uint) ([]models.ProductItem, error)
	GetByID(id uint) (*models.ProductItem, error)
	Create(item *models.ProductItem) error
	CreateConfigurations(links []models.ProductConfiguration) error
	DeleteByProduct(productID uint) (int64, error)
	CountByProduct(productID uint) (int64, error)
	ReserveStock(itemID uint, quantity int) (int64, error)
	ReleaseStock(itemID uint, quantity int) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductItemRepository
}

// GormProductItemRepository GORM 实现
type GormProductItemRepository struct {
	db *gorm.DB
}

// NewProductItemRepository 创建可售单元仓库
func NewProductItemRepository(db *gorm.DB) *GormProductItemRepository {
	return &GormProductItemRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductItemRepository) WithTx(tx *gorm.DB) ProductItemRepository {
	if tx == nil {
		return r
	}
	return &GormProductItemRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductItemRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// ListByProduct 获取商品的全部可售单元及其规格值关联
func (r *GormProductItemRepository) ListByProduct(productID uint) ([]models.ProductItem, error) {
	if productID == 0 {
		return nil, errors.New("invalid product id")
	}
	var items []models.ProductItem
	err := r.db.Preload("Configurations", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("product_id = ?", productID).Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID 根据 ID 获取可售单元
func (r *GormProductItemRepository) GetByID(id uint) (*models.ProductItem, error) {
	if id == 0 {
		return nil, errors.New("invalid product item id")
	}
	var item models.ProductItem
	query := r.db.
		Preload("Configurations", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Configurations.VariationOption", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Preload("Configurations.VariationOption.Variation", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		})
	found, err := firstOrNil(query, &item, id)
	if err != nil || !found {
		return nil, err
	}
	return &item, nil
}

// Create 创建可售单元（不级联创建关联）
func (r *GormProductItemRepository) Create(item *models.ProductItem) error {
	if item == nil {
		return errors.New("product item is nil")
	}
	return r.db.Omit(clause.Associations).Create(item).Error
}

// CreateConfigurations 批量创建规格值关联
func (r *GormProductItemRepository) CreateConfigurations(links []models.ProductConfiguration) error {
	if len(links) == 0 {
		return nil
	}
	return r.db.Omit(clause.Associations).Create(&links).Error
}

// DeleteByProduct 物理删除商品下全部可售单元及其关联，返回删除的可售单元数量
func (r *GormProductItemRepository) DeleteByProduct(productID uint) (int64, error) {
	if productID == 0 {
		return 0, errors.New("invalid product id")
	}
	itemIDs := r.db.Model(&models.ProductItem{}).Select("id").Where("product_id = ?", productID)
	if err := r.db.Where("product_item_id IN (?)", itemIDs).Delete(&models.ProductConfiguration{}).Error; err != nil {
		return 0, err
	}
	result := r.db.Where("product_id = ?", productID).Delete(&models.ProductItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountByProduct 统计商品下的可售单元数量
func (r *GormProductItemRepository) CountByProduct(productID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.ProductItem{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ReserveStock 预占库存（库存不足时影响行数为 0）
func (r *GormProductItemRepository) ReserveStock(itemID uint, quantity int) (int64, error) {
	if itemID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock reserve params")
	}
	result := r.db.Model(&models.ProductItem{}).
		Where("id = ? AND stock >= ?", itemID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ReleaseStock 释放预占库存
func (r *GormProductItemRepository) ReleaseStock(itemID uint, quantity int) (int64, error) {
	if itemID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock release params")
	}
	result := r.db.Model(&models.ProductItem{}).
		Where("id = ?", itemID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
