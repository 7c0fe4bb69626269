package repository

import (
	"strings"

	"github.com/handmade-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VariationOptionRepository 规格值数据访问接口
type VariationOptionRepository interface {
	ListByVariation(variationID uint) ([]models.VariationOption, error)
	GetByID(id uint) (*models.VariationOption, error)
	GetByIDWithDeleted(id uint) (*models.VariationOption, error)
	ListByIDs(ids []uint) ([]models.VariationOption, error)
	Create(option *models.VariationOption) error
	Update(option *models.VariationOption) error
	SaveDeletion(option *models.VariationOption) error
	CountByValue(variationID uint, value string, excludeID uint) (int64, error)
	CountProductUsage(optionID uint) (int64, error)
	WithTx(tx *gorm.DB) VariationOptionRepository
}

// GormVariationOptionRepository GORM 实现
type GormVariationOptionRepository struct {
	db *gorm.DB
}

// NewVariationOptionRepository 创建规格值仓库
func NewVariationOptionRepository(db *gorm.DB) *GormVariationOptionRepository {
	return &GormVariationOptionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVariationOptionRepository) WithTx(tx *gorm.DB) VariationOptionRepository {
	if tx == nil {
		return r
	}
	return &GormVariationOptionRepository{db: tx}
}

// ListByVariation 获取规格下未删除的规格值
func (r *GormVariationOptionRepository) ListByVariation(variationID uint) ([]models.VariationOption, error) {
	var options []models.VariationOption
	if err := r.db.Where("variation_id = ?", variationID).Order("sort_order DESC, id ASC").Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// GetByID 根据 ID 获取规格值（不含已删除）
func (r *GormVariationOptionRepository) GetByID(id uint) (*models.VariationOption, error) {
	var option models.VariationOption
	found, err := firstOrNil(r.db.Preload("Variation"), &option, id)
	if err != nil || !found {
		return nil, err
	}
	return &option, nil
}

// GetByIDWithDeleted 根据 ID 获取规格值（含已删除）
func (r *GormVariationOptionRepository) GetByIDWithDeleted(id uint) (*models.VariationOption, error) {
	var option models.VariationOption
	found, err := firstOrNil(r.db.Unscoped(), &option, id)
	if err != nil || !found {
		return nil, err
	}
	return &option, nil
}

// ListByIDs 批量获取未删除的规格值
func (r *GormVariationOptionRepository) ListByIDs(ids []uint) ([]models.VariationOption, error) {
	if len(ids) == 0 {
		return []models.VariationOption{}, nil
	}
	var options []models.VariationOption
	if err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// Create 创建规格值
func (r *GormVariationOptionRepository) Create(option *models.VariationOption) error {
	return r.db.Omit(clause.Associations).Create(option).Error
}

// Update 更新规格值
func (r *GormVariationOptionRepository) Update(option *models.VariationOption) error {
	return r.db.Model(option).
		Select("value", "sort_order", "updated_by", "updated_at").
		Updates(option).Error
}

// SaveDeletion 保存软删除/恢复状态
func (r *GormVariationOptionRepository) SaveDeletion(option *models.VariationOption) error {
	return saveDeletion(r.db, option)
}

// CountByValue 统计规格下同值（忽略大小写）的未删除规格值
func (r *GormVariationOptionRepository) CountByValue(variationID uint, value string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.VariationOption{}).
		Where("variation_id = ? AND LOWER(value) = ?", variationID, strings.ToLower(strings.TrimSpace(value)))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountProductUsage 统计引用该规格值的未删除商品数量
func (r *GormVariationOptionRepository) CountProductUsage(optionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).
		Joins("JOIN product_items ON product_items.product_id = products.id").
		Joins("JOIN product_configurations ON product_configurations.product_item_id = product_items.id").
		Where("product_configurations.variation_option_id = ?", optionID).
		Distinct("products.id").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
