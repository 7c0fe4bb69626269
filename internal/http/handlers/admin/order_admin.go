package admin

import (
	"net/http"
	"strings"
	"time"

	handlershared "github.com/handmade-next/internal/http/handlers/shared"
	"github.com/handmade-next/internal/http/response"
	"github.com/handmade-next/internal/models"
	"github.com/handmade-next/internal/repository"
	"github.com/handmade-next/internal/service"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// OrderStatusRequest 订单状态变更请求
type OrderStatusRequest struct {
	Status string `json:"status"`
}

// Validate 校验状态变更请求
func (r *OrderStatusRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status, validation.Required),
	)
}

// AdminOrderDetail 后台订单详情返回
type AdminOrderDetail struct {
	*models.Order
	NextStatuses []models.OrderStatus `json:"next_statuses"`
}

// AdminListOrders 后台订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)

	var status models.OrderStatus
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		parsed, err := service.ParseOrderStatus(raw)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		status = parsed
	}
	createdFrom, err := parseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "error.bad_request", err)
		return
	}

	orders, total, err := h.OrderService.ListOrdersForAdmin(actor, repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		CustomerID:  strings.TrimSpace(c.Query("customer_id")),
		ProductID:   handlershared.QueryUint(c, "product_id"),
		Status:      status,
		OrderNo:     strings.TrimSpace(c.Query("order_no")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// AdminGetOrder 后台订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrderForAdmin(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, AdminOrderDetail{Order: order, NextStatuses: service.NextStatuses(order.Status)})
}

// AdminUpdateOrderStatus 推进订单状态
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req OrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	target, err := service.ParseOrderStatus(req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	order, err := h.OrderService.UpdateOrderStatus(actor, id, target)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_order_status_updated",
		"order_id", order.ID,
		"status", order.Status,
		"actor", actor.AuditName(),
	)
	response.Success(c, AdminOrderDetail{Order: order, NextStatuses: service.NextStatuses(order.Status)})
}

// parseTimeNullable 解析 RFC3339 或 2006-01-02 格式时间，空值返回 nil
func parseTimeNullable(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
