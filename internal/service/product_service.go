package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/handmade-next/internal/constants"
	"github.com/handmade-next/internal/logger"
	"github.com/handmade-next/internal/models"
	"github.com/handmade-next/internal/queue"
	"github.com/handmade-next/internal/repository"

	"gorm.io/gorm"
)

// ProductReadCache 商品详情读缓存
type ProductReadCache interface {
	Get(ctx context.Context, productID uint) (*models.Product, bool, error)
	Set(ctx context.Context, product *models.Product) error
	Invalidate(ctx context.Context, productID uint) error
}

// ProductService 商品业务服务
type ProductService struct {
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	variationRepo repository.VariationRepository
	optionRepo    repository.VariationOptionRepository
	materializer  *ProductConfigurationMaterializer
	cache         ProductReadCache
	queueClient   *queue.Client
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	variationRepo repository.VariationRepository,
	optionRepo repository.VariationOptionRepository,
	materializer *ProductConfigurationMaterializer,
	cache ProductReadCache,
	queueClient *queue.Client,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		variationRepo: variationRepo,
		optionRepo:    optionRepo,
		materializer:  materializer,
		cache:         cache,
		queueClient:   queueClient,
	}
}

// ProductVariationInput 商品声明的一个规格及选中的规格值
type ProductVariationInput struct {
	VariationID uint
	OptionIDs   []uint
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	CategoryID      uint
	Slug            string
	TitleJSON       map[string]interface{}
	DescriptionJSON map[string]interface{}
	Images          []string
	Tags            []string
	IsActive        *bool
	SortOrder       int
	Variations      []ProductVariationInput
	Combinations    []CombinationInput
	// ConfigVersion 更新时客户端持有的配置版本，为空时以读取到的版本为准
	ConfigVersion *uint
}

// CombinationPreview 规格组合预览
type CombinationPreview struct {
	Axes         []VariationAxis
	Combinations [][]uint
	Total        int
}

// ListPublic 获取公开商品列表
func (s *ProductService) ListPublic(categoryID uint, search string, page, pageSize int) ([]models.Product, int64, error) {
	return s.productRepo.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       search,
		OnlyActive:   true,
		WithCategory: true,
	})
}

// GetPublic 获取公开商品详情（优先读缓存）
func (s *ProductService) GetPublic(ctx context.Context, id uint) (*models.Product, error) {
	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, id)
		if err != nil {
			logger.Warnw("product_cache_get_failed", "product_id", id, "error", err)
		} else if hit && cached != nil {
			return cached, nil
		}
	}
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if product == nil || !product.IsActive {
		return nil, ErrNotFound
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, product); err != nil {
			logger.Warnw("product_cache_set_failed", "product_id", id, "error", err)
		}
	}
	return product, nil
}

// ListAdmin 获取后台商品列表，卖家只能看到自己的商品
func (s *ProductService) ListAdmin(actor Actor, categoryID uint, search string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       search,
		WithCategory: true,
	}
	if !actor.IsAdmin() {
		filter.CreatedBy = actor.AuditName()
	}
	return s.productRepo.List(filter)
}

// GetAdminByID 获取后台商品详情
func (s *ProductService) GetAdminByID(actor Actor, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if !actor.CanManage(product.CreatedBy) {
		return nil, ErrForbidden
	}
	return product, nil
}

// PreviewCombinations 预览分类下所选规格的笛卡尔积
func (s *ProductService) PreviewCombinations(categoryID uint, variations []ProductVariationInput) (*CombinationPreview, error) {
	axes, err := s.resolveAxes(nil, categoryID, variations)
	if err != nil {
		return nil, err
	}
	combos := Combinations(axes)
	return &CombinationPreview{Axes: axes, Combinations: combos, Total: len(combos)}, nil
}

// CurrentCombinations 根据商品现有规格组合还原维度并计算完整笛卡尔积
func (s *ProductService) CurrentCombinations(actor Actor, id uint) (*CombinationPreview, error) {
	product, err := s.GetAdminByID(actor, id)
	if err != nil {
		return nil, err
	}
	axes := ProductAxes(product)
	combos := Combinations(axes)
	return &CombinationPreview{Axes: axes, Combinations: combos, Total: len(combos)}, nil
}

// Create 创建商品及其全部规格组合
func (s *ProductService) Create(actor Actor, input ProductInput) (*models.Product, error) {
	var product *models.Product
	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		combos, err := s.prepareConfiguration(tx, 0, input)
		if err != nil {
			return err
		}

		product = &models.Product{
			Audit: models.Audit{CreatedBy: actor.AuditName(), UpdatedBy: actor.AuditName()},
		}
		applyProductInput(product, input)
		active := product.IsActive

		productRepo := s.productRepo.WithTx(tx)
		if err := productRepo.Create(product); err != nil {
			return mapPersistenceError(err)
		}
		if !active {
			// is_active 默认值为 true，Create 会跳过 false 并回填 true
			product.IsActive = false
			if err := productRepo.UpdateAttributes(product); err != nil {
				return mapPersistenceError(err)
			}
		}
		return s.writeConfiguration(tx, product, combos, actor, false)
	})
	if err != nil {
		return nil, mapPersistenceError(err)
	}

	logger.Infow("product_created",
		"product_id", product.ID,
		"actor_id", actor.AuditName(),
		"items", len(input.Combinations),
	)
	return s.reload(product.ID)
}

// Update 更新商品并整体替换规格组合
func (s *ProductService) Update(actor Actor, id uint, input ProductInput) (*models.Product, error) {
	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		product, err := productRepo.GetByIDWithDeleted(id)
		if err != nil {
			return mapPersistenceError(err)
		}
		if product == nil || product.IsDeleted() {
			return ErrNotFound
		}
		if !actor.CanManage(product.CreatedBy) {
			return ErrForbidden
		}
		if input.ConfigVersion != nil && *input.ConfigVersion != product.ConfigVersion {
			return fmt.Errorf("%w: expected %d, current %d", ErrConfigVersionConflict, *input.ConfigVersion, product.ConfigVersion)
		}

		combos, err := s.prepareConfiguration(tx, id, input)
		if err != nil {
			return err
		}

		applyProductInput(product, input)
		product.UpdatedBy = actor.AuditName()
		if err := productRepo.UpdateAttributes(product); err != nil {
			return mapPersistenceError(err)
		}
		return s.writeConfiguration(tx, product, combos, actor, true)
	})
	if err != nil {
		return nil, mapPersistenceError(err)
	}

	s.invalidate(id)
	logger.Infow("product_updated",
		"product_id", id,
		"actor_id", actor.AuditName(),
		"items", len(input.Combinations),
	)
	return s.reload(id)
}

// Delete 软删除商品（保留规格组合以便恢复）
func (s *ProductService) Delete(actor Actor, id uint) error {
	product, err := s.productRepo.GetByIDWithDeleted(id)
	if err != nil {
		return mapPersistenceError(err)
	}
	if product == nil || product.IsDeleted() {
		return ErrNotFound
	}
	if !actor.CanManage(product.CreatedBy) {
		return ErrForbidden
	}
	product.MarkDeleted(actor.AuditName(), time.Now())
	if err := s.productRepo.SaveDeletion(product); err != nil {
		return mapPersistenceError(err)
	}
	s.invalidate(id)
	logger.Infow("product_deleted", "product_id", id, "actor_id", actor.AuditName())
	return nil
}

// Restore 恢复已删除的商品
func (s *ProductService) Restore(actor Actor, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByIDWithDeleted(id)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if !product.IsDeleted() {
		return nil, ErrNotDeleted
	}
	if !actor.CanManage(product.CreatedBy) {
		return nil, ErrForbidden
	}
	category, err := s.categoryRepo.GetByID(product.CategoryID)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if category == nil {
		return nil, ErrParentDeleted
	}
	product.Restore()
	if err := s.productRepo.SaveDeletion(product); err != nil {
		return nil, mapPersistenceError(err)
	}
	logger.Infow("product_restored", "product_id", id, "actor_id", actor.AuditName())
	return s.reload(id)
}

// RefreshSummary 重新计算商品价格区间与总库存
func (s *ProductService) RefreshSummary(productID uint) error {
	summary, err := s.productRepo.RefreshSummary(productID)
	if err != nil {
		return mapPersistenceError(err)
	}
	s.invalidate(productID)
	logger.Debugw("product_summary_refreshed",
		"product_id", productID,
		"items", summary.ItemCount,
		"total_stock", summary.TotalStock,
	)
	return nil
}

// ScheduleSummaryRefresh 异步刷新商品汇总，队列不可用时同步执行
func (s *ProductService) ScheduleSummaryRefresh(productID uint) {
	if s.queueClient != nil && s.queueClient.Enabled() {
		err := s.queueClient.EnqueueProductSummaryRefresh(queue.ProductSummaryRefreshPayload{ProductID: productID})
		if err == nil {
			return
		}
		logger.Warnw("product_enqueue_summary_refresh_failed", "product_id", productID, "error", err)
	}
	if err := s.RefreshSummary(productID); err != nil {
		logger.Warnw("product_summary_refresh_failed", "product_id", productID, "error", err)
	}
}

// prepareConfiguration 校验引用与组合：分类、slug、规格维度、组合覆盖性、价格库存
func (s *ProductService) prepareConfiguration(tx *gorm.DB, productID uint, input ProductInput) ([]CombinationInput, error) {
	category, err := s.categoryRepo.WithTx(tx).GetByID(input.CategoryID)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category %d", ErrInvalidReference, input.CategoryID)
	}
	count, err := s.productRepo.WithTx(tx).CountBySlug(strings.TrimSpace(input.Slug), productID)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	axes, err := s.resolveAxes(tx, input.CategoryID, input.Variations)
	if err != nil {
		return nil, err
	}
	if err := ValidateCombinations(Combinations(axes), input.Combinations); err != nil {
		return nil, err
	}
	if err := validateCombinationValues(input.Combinations); err != nil {
		return nil, err
	}
	return input.Combinations, nil
}

// writeConfiguration 递增配置版本并落库规格组合，最后刷新汇总
func (s *ProductService) writeConfiguration(tx *gorm.DB, product *models.Product, combos []CombinationInput, actor Actor, replace bool) error {
	productRepo := s.productRepo.WithTx(tx)
	ok, err := productRepo.BumpConfigVersion(product.ID, product.ConfigVersion)
	if err != nil {
		return mapPersistenceError(err)
	}
	if !ok {
		return fmt.Errorf("%w: product %d", ErrConfigVersionConflict, product.ID)
	}
	product.ConfigVersion++

	if replace {
		_, err = s.materializer.Replace(tx, product.ID, combos, actor.AuditName())
	} else {
		_, err = s.materializer.Materialize(tx, product.ID, combos, actor.AuditName())
	}
	if err != nil {
		return err
	}
	if _, err := productRepo.RefreshSummary(product.ID); err != nil {
		return mapPersistenceError(err)
	}
	return nil
}

// resolveAxes 校验规格维度：规格属于该分类、未删除、不重复；规格值属于对应规格、未删除、不重复
func (s *ProductService) resolveAxes(tx *gorm.DB, categoryID uint, variations []ProductVariationInput) ([]VariationAxis, error) {
	if len(variations) == 0 {
		return nil, ErrVariationRequired
	}
	if len(variations) > constants.MaxVariationsPerProduct {
		return nil, fmt.Errorf("%w: at most %d variations", ErrAxisInvalid, constants.MaxVariationsPerProduct)
	}

	variationIDs := make([]uint, 0, len(variations))
	optionIDs := make([]uint, 0)
	seenVariation := make(map[uint]struct{}, len(variations))
	for _, v := range variations {
		if _, dup := seenVariation[v.VariationID]; dup {
			return nil, fmt.Errorf("%w: variation %d declared twice", ErrAxisInvalid, v.VariationID)
		}
		seenVariation[v.VariationID] = struct{}{}
		if len(v.OptionIDs) == 0 {
			return nil, fmt.Errorf("%w: variation %d has no options", ErrAxisInvalid, v.VariationID)
		}
		seenOption := make(map[uint]struct{}, len(v.OptionIDs))
		for _, optionID := range v.OptionIDs {
			if _, dup := seenOption[optionID]; dup {
				return nil, fmt.Errorf("%w: option %d repeated in variation %d", ErrAxisInvalid, optionID, v.VariationID)
			}
			seenOption[optionID] = struct{}{}
		}
		variationIDs = append(variationIDs, v.VariationID)
		optionIDs = append(optionIDs, v.OptionIDs...)
	}

	found, err := s.variationRepo.WithTx(tx).ListByIDs(variationIDs)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	variationByID := make(map[uint]models.Variation, len(found))
	for _, v := range found {
		variationByID[v.ID] = v
	}
	options, err := s.optionRepo.WithTx(tx).ListByIDs(optionIDs)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	optionByID := make(map[uint]models.VariationOption, len(options))
	for _, o := range options {
		optionByID[o.ID] = o
	}

	axes := make([]VariationAxis, 0, len(variations))
	total := 1
	for _, v := range variations {
		variation, ok := variationByID[v.VariationID]
		if !ok {
			return nil, fmt.Errorf("%w: variation %d", ErrInvalidReference, v.VariationID)
		}
		if variation.CategoryID != categoryID {
			return nil, fmt.Errorf("%w: variation %d does not belong to category %d", ErrInvalidReference, v.VariationID, categoryID)
		}
		for _, optionID := range v.OptionIDs {
			option, ok := optionByID[optionID]
			if !ok {
				return nil, fmt.Errorf("%w: variation option %d", ErrInvalidReference, optionID)
			}
			if option.VariationID != v.VariationID {
				return nil, fmt.Errorf("%w: option %d does not belong to variation %d", ErrInvalidReference, optionID, v.VariationID)
			}
		}
		total *= len(v.OptionIDs)
		if total > constants.MaxProductCombinations {
			return nil, fmt.Errorf("%w: limit %d", ErrTooManyCombinations, constants.MaxProductCombinations)
		}
		axes = append(axes, VariationAxis{
			VariationID: v.VariationID,
			OptionIDs:   append([]uint(nil), v.OptionIDs...),
		})
	}
	return axes, nil
}

// ProductAxes 从商品现有规格组合还原维度，维度按规格首次出现的顺序排列
func ProductAxes(product *models.Product) []VariationAxis {
	if product == nil {
		return nil
	}
	axes := make([]VariationAxis, 0)
	axisIndex := make(map[uint]int)
	seenOption := make(map[uint]struct{})
	for _, item := range product.Items {
		for _, link := range item.Configurations {
			if link.VariationOption == nil {
				continue
			}
			variationID := link.VariationOption.VariationID
			idx, ok := axisIndex[variationID]
			if !ok {
				idx = len(axes)
				axisIndex[variationID] = idx
				axes = append(axes, VariationAxis{VariationID: variationID})
			}
			if _, dup := seenOption[link.VariationOptionID]; dup {
				continue
			}
			seenOption[link.VariationOptionID] = struct{}{}
			axes[idx].OptionIDs = append(axes[idx].OptionIDs, link.VariationOptionID)
		}
	}
	return axes
}

func applyProductInput(product *models.Product, input ProductInput) {
	product.CategoryID = input.CategoryID
	product.Slug = strings.TrimSpace(input.Slug)
	product.TitleJSON = models.JSON(input.TitleJSON)
	product.DescriptionJSON = models.JSON(input.DescriptionJSON)
	product.Images = models.StringArray(input.Images)
	product.Tags = models.StringArray(input.Tags)
	product.SortOrder = input.SortOrder
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	} else if product.ID == 0 {
		product.IsActive = true
	}
}

func (s *ProductService) reload(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

func (s *ProductService) invalidate(productID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(context.Background(), productID); err != nil {
		logger.Warnw("product_cache_invalidate_failed", "product_id", productID, "error", err)
	}
}
