package service

import (
	"strings"
	"time"

	"github.com/handmade-next/internal/logger"
	"github.com/handmade-next/internal/models"
	"github.com/handmade-next/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CreateCategoryInput 创建/更新分类输入
type CreateCategoryInput struct {
	Slug      string
	NameJSON  map[string]interface{}
	Icon      string
	SortOrder int
}

// List 获取分类列表
func (s *CategoryService) List(withDeleted bool) ([]models.Category, error) {
	categories, err := s.repo.List(withDeleted)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	return categories, nil
}

// Create 创建分类
func (s *CategoryService) Create(actor Actor, input CreateCategoryInput) (*models.Category, error) {
	slug := strings.TrimSpace(input.Slug)
	if err := s.ensureSlugAvailable(slug, 0); err != nil {
		return nil, err
	}

	category := models.Category{
		Slug:      slug,
		NameJSON:  models.JSON(input.NameJSON),
		Icon:      input.Icon,
		SortOrder: input.SortOrder,
		Audit:     models.Audit{CreatedBy: actor.AuditName(), UpdatedBy: actor.AuditName()},
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, mapPersistenceError(err)
	}
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(actor Actor, id uint, input CreateCategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	slug := strings.TrimSpace(input.Slug)
	if err := s.ensureSlugAvailable(slug, id); err != nil {
		return nil, err
	}

	category.Slug = slug
	category.NameJSON = models.JSON(input.NameJSON)
	category.Icon = input.Icon
	category.SortOrder = input.SortOrder
	category.UpdatedBy = actor.AuditName()

	if err := s.repo.Update(category); err != nil {
		return nil, mapPersistenceError(err)
	}
	return category, nil
}

// Delete 软删除分类，仍有未删除的商品或规格时拒绝
func (s *CategoryService) Delete(actor Actor, id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return mapPersistenceError(err)
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	products, err := s.repo.CountProducts(id)
	if err != nil {
		return mapPersistenceError(err)
	}
	variations, err := s.repo.CountVariations(id)
	if err != nil {
		return mapPersistenceError(err)
	}
	if products > 0 || variations > 0 {
		return ErrCategoryInUse
	}

	category.MarkDeleted(actor.AuditName(), time.Now())
	if err := s.repo.SaveDeletion(category); err != nil {
		return mapPersistenceError(err)
	}
	logger.Infow("category_deleted", "category_id", id, "actor_id", actor.AuditName())
	return nil
}

// Restore 恢复已删除的分类
func (s *CategoryService) Restore(actor Actor, id uint) (*models.Category, error) {
	category, err := s.repo.GetByIDWithDeleted(id)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if !category.IsDeleted() {
		return nil, ErrNotDeleted
	}
	category.Restore()
	if err := s.repo.SaveDeletion(category); err != nil {
		return nil, mapPersistenceError(err)
	}
	logger.Infow("category_restored", "category_id", id, "actor_id", actor.AuditName())
	return category, nil
}

func (s *CategoryService) ensureSlugAvailable(slug string, excludeID uint) error {
	count, err := s.repo.CountBySlug(slug, excludeID)
	if err != nil {
		return mapPersistenceError(err)
	}
	if count > 0 {
		return ErrSlugExists
	}
	return nil
}
