package public

import (
	"strings"

	handlershared "github.com/handmade-next/internal/http/handlers/shared"
	"github.com/handmade-next/internal/http/response"
	"github.com/handmade-next/internal/models"
	"github.com/handmade-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AxisView 商品规格维度
type AxisView struct {
	VariationID uint   `json:"variation_id"`
	OptionIDs   []uint `json:"option_ids"`
}

// ProductDetail 商品详情返回
type ProductDetail struct {
	*models.Product
	Axes []AxisView `json:"axes"`
}

// NewProductDetail 组装商品详情
func NewProductDetail(product *models.Product) ProductDetail {
	axes := service.ProductAxes(product)
	views := make([]AxisView, 0, len(axes))
	for _, axis := range axes {
		views = append(views, AxisView{VariationID: axis.VariationID, OptionIDs: axis.OptionIDs})
	}
	return ProductDetail{Product: product, Axes: views}
}

// ListCategories 获取分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List(false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, categories)
}

// ListCategoryVariations 获取分类下的规格及规格值
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

// ListProducts 获取上架商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	categoryID := handlershared.QueryUint(c, "category_id")
	search := strings.TrimSpace(c.Query("search"))

	products, total, err := h.ProductService.ListPublic(categoryID, search, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetProduct 获取商品详情（含全部规格组合）
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.ProductService.GetPublic(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, NewProductDetail(product))
}
