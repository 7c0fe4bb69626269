package repository

import (
	"strings"

	"github.com/handmade-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VariationRepository 规格数据访问接口
type VariationRepository interface {
	ListByCategory(categoryID uint, withOptions bool) ([]models.Variation, error)
	GetByID(id uint) (*models.Variation, error)
	GetByIDWithDeleted(id uint) (*models.Variation, error)
	ListByIDs(ids []uint) ([]models.Variation, error)
	Create(variation *models.Variation) error
	Update(variation *models.Variation) error
	SaveDeletion(variation *models.Variation) error
	CountByName(categoryID uint, name string, excludeID uint) (int64, error)
	CountProductUsage(variationID uint) (int64, error)
	WithTx(tx *gorm.DB) VariationRepository
}

// GormVariationRepository GORM 实现
type GormVariationRepository struct {
	db *gorm.DB
}

// NewVariationRepository 创建规格仓库
func NewVariationRepository(db *gorm.DB) *GormVariationRepository {
	return &GormVariationRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVariationRepository) WithTx(tx *gorm.DB) VariationRepository {
	if tx == nil {
		return r
	}
	return &GormVariationRepository{db: tx}
}

func preloadLiveOptions(query *gorm.DB) *gorm.DB {
	return query.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order DESC, id ASC")
	})
}

// ListByCategory 获取分类下的规格
func (r *GormVariationRepository) ListByCategory(categoryID uint, withOptions bool) ([]models.Variation, error) {
	query := r.db.Where("category_id = ?", categoryID)
	if withOptions {
		query = preloadLiveOptions(query)
	}
	var variations []models.Variation
	if err := query.Order("sort_order DESC, id ASC").Find(&variations).Error; err != nil {
		return nil, err
	}
	return variations, nil
}

// GetByID 根据 ID 获取规格（含未删除的规格值）
func (r *GormVariationRepository) GetByID(id uint) (*models.Variation, error) {
	var variation models.Variation
	found, err := firstOrNil(preloadLiveOptions(r.db), &variation, id)
	if err != nil || !found {
		return nil, err
	}
	return &variation, nil
}

// GetByIDWithDeleted 根据 ID 获取规格（含已删除）
func (r *GormVariationRepository) GetByIDWithDeleted(id uint) (*models.Variation, error) {
	var variation models.Variation
	found, err := firstOrNil(r.db.Unscoped(), &variation, id)
	if err != nil || !found {
		return nil, err
	}
	return &variation, nil
}

// ListByIDs 批量获取未删除的规格
func (r *GormVariationRepository) ListByIDs(ids []uint) ([]models.Variation, error) {
	if len(ids) == 0 {
		return []models.Variation{}, nil
	}
	var variations []models.Variation
	if err := r.db.Where("id IN ?", ids).Find(&variations).Error; err != nil {
		return nil, err
	}
	return variations, nil
}

// Create 创建规格
func (r *GormVariationRepository) Create(variation *models.Variation) error {
	return r.db.Omit(clause.Associations).Create(variation).Error
}

// Update 更新规格名称与排序
func (r *GormVariationRepository) Update(variation *models.Variation) error {
	return r.db.Model(variation).
		Select("name", "sort_order", "updated_by", "updated_at").
		Updates(variation).Error
}

// SaveDeletion 保存软删除/恢复状态
func (r *GormVariationRepository) SaveDeletion(variation *models.Variation) error {
	return saveDeletion(r.db, variation)
}

// CountByName 统计分类下同名（忽略大小写）的未删除规格
func (r *GormVariationRepository) CountByName(categoryID uint, name string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Variation{}).
		Where("category_id = ? AND LOWER(name) = ?", categoryID, strings.ToLower(strings.TrimSpace(name)))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountProductUsage 统计引用该规格的未删除商品数量
func (r *GormVariationRepository) CountProductUsage(variationID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).
		Joins("JOIN product_items ON product_items.product_id = products.id").
		Joins("JOIN product_configurations ON product_configurations.product_item_id = product_items.id").
		Joins("JOIN variation_options ON variation_options.id = product_configurations.variation_option_id").
		Where("variation_options.variation_id = ?", variationID).
		Distinct("products.id").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
