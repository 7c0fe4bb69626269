package repository

import (
	"github.com/handmade-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	List(withDeleted bool) ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	GetByIDWithDeleted(id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	SaveDeletion(category *models.Category) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	CountProducts(categoryID uint) (int64, error)
	CountVariations(categoryID uint) (int64, error)
	WithTx(tx *gorm.DB) CategoryRepository
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCategoryRepository) WithTx(tx *gorm.DB) CategoryRepository {
	if tx == nil {
		return r
	}
	return &GormCategoryRepository{db: tx}
}

// List 分类列表
func (r *GormCategoryRepository) List(withDeleted bool) ([]models.Category, error) {
	query := r.db
	if withDeleted {
		query = query.Unscoped()
	}
	var categories []models.Category
	if err := query.Order("sort_order DESC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID 根据 ID 获取分类（不含已删除）
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	found, err := firstOrNil(r.db, &category, id)
	if err != nil || !found {
		return nil, err
	}
	return &category, nil
}

// GetByIDWithDeleted 根据 ID 获取分类（含已删除）
func (r *GormCategoryRepository) GetByIDWithDeleted(id uint) (*models.Category, error) {
	var category models.Category
	found, err := firstOrNil(r.db.Unscoped(), &category, id)
	if err != nil || !found {
		return nil, err
	}
	return &category, nil
}

// Create 创建分类
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Omit(clause.Associations).Create(category).Error
}

// Update 更新分类基础信息
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Model(category).
		Select("slug", "name_json", "icon", "sort_order", "updated_by", "updated_at").
		Updates(category).Error
}

// SaveDeletion 保存软删除/恢复状态
func (r *GormCategoryRepository) SaveDeletion(category *models.Category) error {
	return saveDeletion(r.db, category)
}

// CountBySlug 统计 slug 数量（含已删除，slug 唯一索引不区分删除状态）
func (r *GormCategoryRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Unscoped().Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountProducts 统计分类下未删除的商品数量
func (r *GormCategoryRepository) CountProducts(categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountVariations 统计分类下未删除的规格数量
func (r *GormCategoryRepository) CountVariations(categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Variation{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
