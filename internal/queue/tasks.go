package queue

import (
	"encoding/json"

	"github.com/handmade-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderTimeoutCancel 待支付订单超时取消任务
	TaskOrderTimeoutCancel = constants.TaskOrderTimeoutCancel
	// TaskProductSummaryRefresh 商品价格/库存汇总刷新任务
	TaskProductSummaryRefresh = constants.TaskProductSummaryRefresh
)

// OrderTimeoutCancelPayload 超时取消任务载荷
type OrderTimeoutCancelPayload struct {
	OrderID uint `json:"order_id"`
}

// ProductSummaryRefreshPayload 商品汇总刷新任务载荷
type ProductSummaryRefreshPayload struct {
	ProductID uint `json:"product_id"`
}

// NewOrderTimeoutCancelTask 创建超时取消任务
func NewOrderTimeoutCancelTask(payload OrderTimeoutCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderTimeoutCancel, body), nil
}

// NewProductSummaryRefreshTask 创建商品汇总刷新任务
func NewProductSummaryRefreshTask(payload ProductSummaryRefreshPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProductSummaryRefresh, body), nil
}
