package admin

import (
	"regexp"

	"github.com/handmade-next/internal/http/response"
	"github.com/handmade-next/internal/service"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Slug      string                 `json:"slug"`
	Name      map[string]interface{} `json:"name"`
	Icon      string                 `json:"icon"`
	SortOrder int                    `json:"sort_order"`
}

// Validate 校验分类请求
func (r *CategoryRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Slug, validation.Required, validation.Length(1, 120), validation.Match(slugPattern)),
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Icon, validation.Length(0, 500)),
	)
}

func (r *CategoryRequest) toInput() service.CreateCategoryInput {
	return service.CreateCategoryInput{
		Slug:      r.Slug,
		NameJSON:  r.Name,
		Icon:      r.Icon,
		SortOrder: r.SortOrder,
	}
}

// ListCategories 获取分类列表（含已删除）
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List(c.Query("with_deleted") == "true")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.CategoryService.Create(actor, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.CategoryService.Update(actor, id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 软删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// RestoreCategory 恢复已删除分类
func (h *Handler) RestoreCategory(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	category, err := h.CategoryService.Restore(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}
