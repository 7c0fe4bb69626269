package admin

import (
	"github.com/handmade-next/internal/http/response"
	"github.com/handmade-next/internal/service"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// VariationRequest 规格创建/更新请求
type VariationRequest struct {
	CategoryID uint   `json:"category_id"`
	Name       string `json:"name"`
	SortOrder  int    `json:"sort_order"`
}

// Validate 校验规格请求
func (r *VariationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CategoryID, validation.Required),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}

// VariationOptionRequest 规格值创建/更新请求
type VariationOptionRequest struct {
	Value     string `json:"value"`
	SortOrder int    `json:"sort_order"`
}

// Validate 校验规格值请求
func (r *VariationOptionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value, validation.Required, validation.Length(1, 100)),
	)
}

// ListCategoryVariations 获取分类下的规格
func (h *Handler) ListCategoryVariations(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	variations, err := h.VariationService.ListByCategory(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, variations)
}

// CreateVariation 创建规格
func (h *Handler) CreateVariation(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req VariationRequest
	if !bindJSON(c, &req) {
		return
	}
	variation, err := h.VariationService.Create(actor, service.VariationInput{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, variation)
}

// UpdateVariation 更新规格
func (h *Handler) UpdateVariation(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req VariationRequest
	if !bindJSON(c, &req) {
		return
	}
	variation, err := h.VariationService.Update(actor, id, service.VariationInput{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, variation)
}

// DeleteVariation 软删除规格
func (h *Handler) DeleteVariation(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.VariationService.Delete(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// RestoreVariation 恢复规格
func (h *Handler) RestoreVariation(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	variation, err := h.VariationService.Restore(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, variation)
}

// CreateVariationOption 创建规格值
func (h *Handler) CreateVariationOption(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req VariationOptionRequest
	if !bindJSON(c, &req) {
		return
	}
	option, err := h.VariationService.CreateOption(actor, id, service.VariationOptionInput{
		Value:     req.Value,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, option)
}

// UpdateVariationOption 更新规格值
func (h *Handler) UpdateVariationOption(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req VariationOptionRequest
	if !bindJSON(c, &req) {
		return
	}
	option, err := h.VariationService.UpdateOption(actor, id, service.VariationOptionInput{
		Value:     req.Value,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, option)
}

// DeleteVariationOption 软删除规格值
func (h *Handler) DeleteVariationOption(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.VariationService.DeleteOption(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// RestoreVariationOption 恢复规格值
func (h *Handler) RestoreVariationOption(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	option, err := h.VariationService.RestoreOption(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, option)
}
