package public

import (
	"net/http"

	handlershared "github.com/handmade-next/internal/http/handlers/shared"
	"github.com/handmade-next/internal/http/response"
	"github.com/handmade-next/internal/service"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	ProductID     uint `json:"product_id"`
	ProductItemID uint `json:"product_item_id"`
	Quantity      int  `json:"quantity"`
}

// Validate 校验下单请求
func (r CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required),
		validation.Field(&r.ProductItemID, validation.Required),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
	)
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "error.bad_request", err)
		return
	}
	if err := req.Validate(); err != nil {
		handlershared.RespondValidationError(c, err)
		return
	}

	order, err := h.OrderService.CreateOrder(actor, service.CreateOrderInput{
		ProductID:     req.ProductID,
		ProductItemID: req.ProductItemID,
		Quantity:      req.Quantity,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"product_item_id", order.ProductItemID,
	)
	response.Created(c, order)
}

// ListOrders 获取我的订单
func (h *Handler) ListOrders(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	orders, total, err := h.OrderService.ListOrdersForCustomer(actor, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetOrder 获取我的订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrderForCustomer(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消待支付订单
func (h *Handler) CancelOrder(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.CancelOrder(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}
