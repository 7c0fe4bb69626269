package admin

import (
	"strings"

	"github.com/handmade-next/internal/http/handlers/public"
	handlershared "github.com/handmade-next/internal/http/handlers/shared"
	"github.com/handmade-next/internal/http/response"
	"github.com/handmade-next/internal/service"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// ProductVariationRequest 商品声明的规格及规格值
type ProductVariationRequest struct {
	VariationID uint   `json:"variation_id"`
	OptionIDs   []uint `json:"option_ids"`
}

// Validate 校验规格声明
func (r ProductVariationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.VariationID, validation.Required),
	)
}

// CombinationRequest 规格组合及其售价、库存
type CombinationRequest struct {
	OptionIDs []uint          `json:"option_ids"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	CategoryID    uint                      `json:"category_id"`
	Slug          string                    `json:"slug"`
	Title         map[string]interface{}    `json:"title"`
	Description   map[string]interface{}    `json:"description"`
	Images        []string                  `json:"images"`
	Tags          []string                  `json:"tags"`
	IsActive      *bool                     `json:"is_active"`
	SortOrder     int                       `json:"sort_order"`
	Variations    []ProductVariationRequest `json:"variations"`
	Combinations  []CombinationRequest      `json:"combinations"`
	ConfigVersion *uint                     `json:"config_version"`
}

// Validate 校验商品请求；组合完整性由 service 层校验
func (r *ProductRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CategoryID, validation.Required),
		validation.Field(&r.Slug, validation.Required, validation.Length(1, 120), validation.Match(slugPattern)),
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Images, validation.Each(validation.Length(1, 500))),
		validation.Field(&r.Tags, validation.Each(validation.Length(1, 50))),
		validation.Field(&r.Variations),
	)
}

func toVariationInputs(requests []ProductVariationRequest) []service.ProductVariationInput {
	inputs := make([]service.ProductVariationInput, 0, len(requests))
	for _, req := range requests {
		inputs = append(inputs, service.ProductVariationInput{
			VariationID: req.VariationID,
			OptionIDs:   req.OptionIDs,
		})
	}
	return inputs
}

func (r *ProductRequest) toInput() service.ProductInput {
	combos := make([]service.CombinationInput, 0, len(r.Combinations))
	for _, combo := range r.Combinations {
		combos = append(combos, service.CombinationInput{
			OptionIDs: combo.OptionIDs,
			Price:     combo.Price,
			Stock:     combo.Stock,
		})
	}
	return service.ProductInput{
		CategoryID:      r.CategoryID,
		Slug:            strings.TrimSpace(r.Slug),
		TitleJSON:       r.Title,
		DescriptionJSON: r.Description,
		Images:          r.Images,
		Tags:            r.Tags,
		IsActive:        r.IsActive,
		SortOrder:       r.SortOrder,
		Variations:      toVariationInputs(r.Variations),
		Combinations:    combos,
		ConfigVersion:   r.ConfigVersion,
	}
}

// CombinationPreviewRequest 组合预览请求
type CombinationPreviewRequest struct {
	CategoryID uint                      `json:"category_id"`
	Variations []ProductVariationRequest `json:"variations"`
}

// Validate 校验预览请求
func (r *CombinationPreviewRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CategoryID, validation.Required),
		validation.Field(&r.Variations),
	)
}

// CombinationPreviewView 组合预览返回
type CombinationPreviewView struct {
	Axes         []public.AxisView `json:"axes"`
	Combinations [][]uint          `json:"combinations"`
	Total        int               `json:"total"`
}

func newCombinationPreviewView(preview *service.CombinationPreview) CombinationPreviewView {
	axes := make([]public.AxisView, 0, len(preview.Axes))
	for _, axis := range preview.Axes {
		axes = append(axes, public.AxisView{VariationID: axis.VariationID, OptionIDs: axis.OptionIDs})
	}
	combos := preview.Combinations
	if combos == nil {
		combos = [][]uint{}
	}
	return CombinationPreviewView{Axes: axes, Combinations: combos, Total: preview.Total}
}

// ListProducts 后台商品列表，卖家仅可见自己的商品
func (h *Handler) ListProducts(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	categoryID := handlershared.QueryUint(c, "category_id")
	search := strings.TrimSpace(c.Query("search"))

	products, total, err := h.ProductService.ListAdmin(actor, categoryID, search, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetProduct 后台商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.ProductService.GetAdminByID(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, public.NewProductDetail(product))
}

// CreateProduct 创建商品及全部规格组合
func (h *Handler) CreateProduct(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.ProductService.Create(actor, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_product_created",
		"product_id", product.ID,
		"items", len(product.Items),
		"actor", actor.AuditName(),
	)
	response.Created(c, public.NewProductDetail(product))
}

// UpdateProduct 更新商品并整体替换规格组合
func (h *Handler) UpdateProduct(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.ProductService.Update(actor, id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_product_updated",
		"product_id", product.ID,
		"config_version", product.ConfigVersion,
		"actor", actor.AuditName(),
	)
	response.Success(c, public.NewProductDetail(product))
}

// DeleteProduct 软删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// RestoreProduct 恢复已删除商品
func (h *Handler) RestoreProduct(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.ProductService.Restore(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, public.NewProductDetail(product))
}

// GetProductCombinations 按商品现有规格计算完整组合
func (h *Handler) GetProductCombinations(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	preview, err := h.ProductService.CurrentCombinations(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, newCombinationPreviewView(preview))
}

// PreviewCombinations 预览所选规格的笛卡尔积，供卖家填写价格与库存
func (h *Handler) PreviewCombinations(c *gin.Context) {
	var req CombinationPreviewRequest
	if !bindJSON(c, &req) {
		return
	}
	preview, err := h.ProductService.PreviewCombinations(req.CategoryID, toVariationInputs(req.Variations))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, newCombinationPreviewView(preview))
}
