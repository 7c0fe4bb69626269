package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/handmade-next/internal/logger"
	"github.com/handmade-next/internal/metrics"
	"github.com/handmade-next/internal/provider"
	"github.com/handmade-next/internal/queue"
	"github.com/handmade-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderTimeoutCancel, c.handleOrderTimeoutCancel)
	mux.HandleFunc(queue.TaskProductSummaryRefresh, c.handleProductSummaryRefresh)
}

func (c *Consumer) handleOrderTimeoutCancel(_ context.Context, task *asynq.Task) (err error) {
	defer func() { metrics.RecordQueueTask(queue.TaskOrderTimeoutCancel, err) }()
	if c == nil || task == nil {
		logger.Debugw("worker_order_timeout_cancel_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderTimeoutCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_timeout_cancel_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_timeout_cancel_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_timeout_cancel_skip_order_service_nil", "order_id", payload.OrderID)
		return nil
	}
	order, cancelErr := c.OrderService.CancelExpiredOrder(payload.OrderID)
	if cancelErr != nil {
		if errors.Is(cancelErr, service.ErrNotFound) {
			logger.Debugw("worker_order_timeout_cancel_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		}
		logger.Warnw("worker_order_timeout_cancel_failed", "order_id", payload.OrderID, "error", cancelErr)
		return cancelErr
	}
	logger.Debugw("worker_order_timeout_cancel_done", "order_id", payload.OrderID, "status", order.Status)
	return nil
}

func (c *Consumer) handleProductSummaryRefresh(_ context.Context, task *asynq.Task) (err error) {
	defer func() { metrics.RecordQueueTask(queue.TaskProductSummaryRefresh, err) }()
	if c == nil || task == nil {
		logger.Debugw("worker_product_summary_refresh_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ProductSummaryRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_product_summary_refresh_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_product_summary_refresh_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}
	if c.ProductService == nil {
		logger.Warnw("worker_product_summary_refresh_skip_product_service_nil", "product_id", payload.ProductID)
		return nil
	}
	if err := c.ProductService.RefreshSummary(payload.ProductID); err != nil {
		logger.Warnw("worker_product_summary_refresh_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	return nil
}
