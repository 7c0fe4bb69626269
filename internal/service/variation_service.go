package service

import (
	"strings"
	"time"

	"github.com/handmade-next/internal/logger"
	"github.com/handmade-next/internal/models"
	"github.com/handmade-next/internal/repository"
)

// VariationService 规格及规格值业务服务
type VariationService struct {
	categoryRepo  repository.CategoryRepository
	variationRepo repository.VariationRepository
	optionRepo    repository.VariationOptionRepository
}

// NewVariationService 创建规格服务
func NewVariationService(
	categoryRepo repository.CategoryRepository,
	variationRepo repository.VariationRepository,
	optionRepo repository.VariationOptionRepository,
) *VariationService {
	return &VariationService{
		categoryRepo:  categoryRepo,
		variationRepo: variationRepo,
		optionRepo:    optionRepo,
	}
}

// VariationInput 创建/更新规格输入
type VariationInput struct {
	CategoryID uint
	Name       string
	SortOrder  int
}

// VariationOptionInput 创建/更新规格值输入
type VariationOptionInput struct {
	Value     string
	SortOrder int
}

// ListByCategory 获取分类下的规格及规格值
func (s *VariationService) ListByCategory(categoryID uint) ([]models.Variation, error) {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	variations, err := s.variationRepo.ListByCategory(categoryID, true)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	return variations, nil
}

// Create 创建规格
func (s *VariationService) Create(actor Actor, input VariationInput) (*models.Variation, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if err := s.ensureVariationNameAvailable(input.CategoryID, name, 0); err != nil {
		return nil, err
	}

	variation := models.Variation{
		CategoryID: input.CategoryID,
		Name:       name,
		SortOrder:  input.SortOrder,
		Audit:      models.Audit{CreatedBy: actor.AuditName(), UpdatedBy: actor.AuditName()},
	}
	if err := s.variationRepo.Create(&variation); err != nil {
		return nil, mapPersistenceError(err)
	}
	return &variation, nil
}

// Update 更新规格名称与排序（所属分类不可变更）
func (s *VariationService) Update(actor Actor, id uint, input VariationInput) (*models.Variation, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	variation, err := s.loadVariation(actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureVariationNameAvailable(variation.CategoryID, name, id); err != nil {
		return nil, err
	}
	variation.Name = name
	variation.SortOrder = input.SortOrder
	variation.UpdatedBy = actor.AuditName()
	if err := s.variationRepo.Update(variation); err != nil {
		return nil, mapPersistenceError(err)
	}
	return variation, nil
}

// Delete 软删除规格，被未删除商品引用时拒绝
func (s *VariationService) Delete(actor Actor, id uint) error {
	variation, err := s.loadVariation(actor, id)
	if err != nil {
		return err
	}
	usage, err := s.variationRepo.CountProductUsage(id)
	if err != nil {
		return mapPersistenceError(err)
	}
	if usage > 0 {
		return ErrVariationInUse
	}
	variation.MarkDeleted(actor.AuditName(), time.Now())
	if err := s.variationRepo.SaveDeletion(variation); err != nil {
		return mapPersistenceError(err)
	}
	logger.Infow("variation_deleted", "variation_id", id, "actor_id", actor.AuditName())
	return nil
}

// Restore 恢复已删除的规格，所属分类须未删除且名称未被占用
func (s *VariationService) Restore(actor Actor, id uint) (*models.Variation, error) {
	variation, err := s.variationRepo.GetByIDWithDeleted(id)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if variation == nil {
		return nil, ErrVariationNotFound
	}
	if !actor.CanManage(variation.CreatedBy) {
		return nil, ErrForbidden
	}
	if !variation.IsDeleted() {
		return nil, ErrNotDeleted
	}
	category, err := s.categoryRepo.GetByID(variation.CategoryID)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if category == nil {
		return nil, ErrParentDeleted
	}
	if err := s.ensureVariationNameAvailable(variation.CategoryID, variation.Name, id); err != nil {
		return nil, err
	}
	variation.Restore()
	if err := s.variationRepo.SaveDeletion(variation); err != nil {
		return nil, mapPersistenceError(err)
	}
	logger.Infow("variation_restored", "variation_id", id, "actor_id", actor.AuditName())
	return variation, nil
}

// CreateOption 为规格添加规格值
func (s *VariationService) CreateOption(actor Actor, variationID uint, input VariationOptionInput) (*models.VariationOption, error) {
	value := strings.TrimSpace(input.Value)
	if value == "" {
		return nil, ErrNameRequired
	}
	if _, err := s.loadVariation(actor, variationID); err != nil {
		return nil, err
	}
	if err := s.ensureOptionValueAvailable(variationID, value, 0); err != nil {
		return nil, err
	}
	option := models.VariationOption{
		VariationID: variationID,
		Value:       value,
		SortOrder:   input.SortOrder,
		Audit:       models.Audit{CreatedBy: actor.AuditName(), UpdatedBy: actor.AuditName()},
	}
	if err := s.optionRepo.Create(&option); err != nil {
		return nil, mapPersistenceError(err)
	}
	return &option, nil
}

// UpdateOption 更新规格值
func (s *VariationService) UpdateOption(actor Actor, id uint, input VariationOptionInput) (*models.VariationOption, error) {
	value := strings.TrimSpace(input.Value)
	if value == "" {
		return nil, ErrNameRequired
	}
	option, err := s.loadOption(actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOptionValueAvailable(option.VariationID, value, id); err != nil {
		return nil, err
	}
	option.Value = value
	option.SortOrder = input.SortOrder
	option.UpdatedBy = actor.AuditName()
	if err := s.optionRepo.Update(option); err != nil {
		return nil, mapPersistenceError(err)
	}
	return option, nil
}

// DeleteOption 软删除规格值，被未删除商品引用时拒绝
func (s *VariationService) DeleteOption(actor Actor, id uint) error {
	option, err := s.loadOption(actor, id)
	if err != nil {
		return err
	}
	usage, err := s.optionRepo.CountProductUsage(id)
	if err != nil {
		return mapPersistenceError(err)
	}
	if usage > 0 {
		return ErrVariationOptionInUse
	}
	option.MarkDeleted(actor.AuditName(), time.Now())
	if err := s.optionRepo.SaveDeletion(option); err != nil {
		return mapPersistenceError(err)
	}
	logger.Infow("variation_option_deleted", "option_id", id, "actor_id", actor.AuditName())
	return nil
}

// RestoreOption 恢复已删除的规格值，所属规格须未删除
func (s *VariationService) RestoreOption(actor Actor, id uint) (*models.VariationOption, error) {
	option, err := s.optionRepo.GetByIDWithDeleted(id)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if option == nil {
		return nil, ErrNotFound
	}
	if !actor.CanManage(option.CreatedBy) {
		return nil, ErrForbidden
	}
	if !option.IsDeleted() {
		return nil, ErrNotDeleted
	}
	variation, err := s.variationRepo.GetByID(option.VariationID)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if variation == nil {
		return nil, ErrParentDeleted
	}
	if err := s.ensureOptionValueAvailable(option.VariationID, option.Value, id); err != nil {
		return nil, err
	}
	option.Restore()
	if err := s.optionRepo.SaveDeletion(option); err != nil {
		return nil, mapPersistenceError(err)
	}
	logger.Infow("variation_option_restored", "option_id", id, "actor_id", actor.AuditName())
	return option, nil
}

func (s *VariationService) loadVariation(actor Actor, id uint) (*models.Variation, error) {
	variation, err := s.variationRepo.GetByID(id)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if variation == nil {
		return nil, ErrVariationNotFound
	}
	if !actor.CanManage(variation.CreatedBy) {
		return nil, ErrForbidden
	}
	return variation, nil
}

func (s *VariationService) loadOption(actor Actor, id uint) (*models.VariationOption, error) {
	option, err := s.optionRepo.GetByID(id)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if option == nil {
		return nil, ErrNotFound
	}
	if !actor.CanManage(option.CreatedBy) {
		return nil, ErrForbidden
	}
	return option, nil
}

func (s *VariationService) ensureVariationNameAvailable(categoryID uint, name string, excludeID uint) error {
	count, err := s.variationRepo.CountByName(categoryID, name, excludeID)
	if err != nil {
		return mapPersistenceError(err)
	}
	if count > 0 {
		return ErrVariationNameExists
	}
	return nil
}

func (s *VariationService) ensureOptionValueAvailable(variationID uint, value string, excludeID uint) error {
	count, err := s.optionRepo.CountByValue(variationID, value, excludeID)
	if err != nil {
		return mapPersistenceError(err)
	}
	if count > 0 {
		return ErrVariationOptionExists
	}
	return nil
}
