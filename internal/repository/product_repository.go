package repository

import (
	"strings"

	"github.com/handmade-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetByIDWithDeleted(id uint) (*models.Product, error)
	GetBySlug(slug string, onlyActive bool) (*models.Product, error)
	Create(product *models.Product) error
	UpdateAttributes(product *models.Product) error
	SaveDeletion(product *models.Product) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	BumpConfigVersion(id uint, expected uint) (bool, error)
	RefreshSummary(id uint) (*ProductSummary, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// ProductSummary 商品规格组合汇总
type ProductSummary struct {
	MinPrice   models.Money
	MaxPrice   models.Money
	TotalStock int
	ItemCount  int64
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// preloadItems 预加载规格组合及其规格值（规格值被软删除后仍需展示）
func preloadItems(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Items.Configurations", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Items.Configurations.VariationOption", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Preload("Items.Configurations.VariationOption.Variation", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		})
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.WithDeleted {
		query = query.Unscoped()
	}
	if filter.WithCategory {
		query = query.Preload("Category", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		})
	}
	if filter.WithItems {
		query = preloadItems(query)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if createdBy := strings.TrimSpace(filter.CreatedBy); createdBy != "" {
		query = query.Where("created_by = ?", createdBy)
	}
	query = newTextSearch(dialectOf(r.db), []string{"slug"}, []string{"title_json", "description_json"}).apply(query, filter.Search)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("sort_order DESC, created_at DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// GetByID 根据 ID 获取商品（含规格组合）
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	query := preloadItems(r.db.Preload("Category", func(db *gorm.DB) *gorm.DB {
		return db.Unscoped()
	}))
	found, err := firstOrNil(query, &product, id)
	if err != nil || !found {
		return nil, err
	}
	return &product, nil
}

// GetByIDWithDeleted 根据 ID 获取商品基础信息（含已删除）
func (r *GormProductRepository) GetByIDWithDeleted(id uint) (*models.Product, error) {
	var product models.Product
	found, err := firstOrNil(r.db.Unscoped(), &product, id)
	if err != nil || !found {
		return nil, err
	}
	return &product, nil
}

// GetBySlug 根据 slug 获取商品
func (r *GormProductRepository) GetBySlug(slug string, onlyActive bool) (*models.Product, error) {
	query := preloadItems(r.db.Preload("Category")).Where("slug = ?", slug)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var product models.Product
	found, err := firstOrNil(query, &product)
	if err != nil || !found {
		return nil, err
	}
	return &product, nil
}

// Create 创建商品（不级联创建规格组合）
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Omit(clause.Associations).Create(product).Error
}

// UpdateAttributes 更新商品基础信息，不触碰 config_version 与汇总字段
func (r *GormProductRepository) UpdateAttributes(product *models.Product) error {
	return r.db.Model(product).
		Select("category_id", "slug", "title_json", "description_json", "images", "tags", "is_active", "sort_order", "updated_by", "updated_at").
		Updates(product).Error
}

// SaveDeletion 保存软删除/恢复状态
func (r *GormProductRepository) SaveDeletion(product *models.Product) error {
	return saveDeletion(r.db, product)
}

// CountBySlug 统计 slug 数量（含已删除）
func (r *GormProductRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Unscoped().Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// BumpConfigVersion 以 CAS 方式递增规格配置版本号，版本不匹配时返回 false
func (r *GormProductRepository) BumpConfigVersion(id uint, expected uint) (bool, error) {
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND config_version = ?", id, expected).
		UpdateColumn("config_version", gorm.Expr("config_version + ?", 1))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

type productSummaryRow struct {
	MinPrice   decimal.NullDecimal
	MaxPrice   decimal.NullDecimal
	TotalStock int64
	ItemCount  int64
}

// RefreshSummary 重新计算商品最低价、最高价与总库存
func (r *GormProductRepository) RefreshSummary(id uint) (*ProductSummary, error) {
	var row productSummaryRow
	err := r.db.Model(&models.ProductItem{}).
		Select("MIN(price_amount) AS min_price, MAX(price_amount) AS max_price, COALESCE(SUM(stock), 0) AS total_stock, COUNT(*) AS item_count").
		Where("product_id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	summary := &ProductSummary{
		MinPrice:   models.NewMoneyFromDecimal(row.MinPrice.Decimal),
		MaxPrice:   models.NewMoneyFromDecimal(row.MaxPrice.Decimal),
		TotalStock: int(row.TotalStock),
		ItemCount:  row.ItemCount,
	}
	err = r.db.Unscoped().Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"min_price":   summary.MinPrice,
			"max_price":   summary.MaxPrice,
			"total_stock": summary.TotalStock,
		}).Error
	if err != nil {
		return nil, err
	}
	return summary, nil
}
