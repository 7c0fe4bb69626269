package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/handmade-next/internal/constants"
	"github.com/handmade-next/internal/logger"
	"github.com/handmade-next/internal/metrics"
	"github.com/handmade-next/internal/models"
	"github.com/handmade-next/internal/queue"
	"github.com/handmade-next/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	itemRepo       repository.ProductItemRepository
	productService *ProductService
	queueClient    *queue.Client
	expireMinutes  int
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, itemRepo repository.ProductItemRepository, productService *ProductService, queueClient *queue.Client, expireMinutes int) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		itemRepo:       itemRepo,
		productService: productService,
		queueClient:    queueClient,
		expireMinutes:  expireMinutes,
	}
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	ProductID     uint
	ProductItemID uint
	Quantity      int
}

// CreateOrder 买家下单：校验商品与可售单元，预占库存并生成待支付订单
func (s *OrderService) CreateOrder(actor Actor, input CreateOrderInput) (*models.Order, error) {
	if input.Quantity <= 0 || input.Quantity > constants.OrderMaxQuantity {
		return nil, ErrOrderQuantityInvalid
	}
	if input.ProductID == 0 || input.ProductItemID == 0 {
		return nil, ErrProductItemNotFound
	}
	customerID := actor.AuditName()
	if customerID == "" {
		return nil, ErrForbidden
	}

	expireMinutes := s.resolveExpireMinutes()
	now := time.Now()
	expiresAt := now.Add(time.Duration(expireMinutes) * time.Minute)
	var order *models.Order

	err := s.itemRepo.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.WithTx(tx).GetByIDWithDeleted(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.IsDeleted() || !product.IsActive {
			return ErrProductNotAvailable
		}
		itemRepo := s.itemRepo.WithTx(tx)
		item, err := itemRepo.GetByID(input.ProductItemID)
		if err != nil {
			return err
		}
		if item == nil || item.ProductID != product.ID {
			return ErrProductItemNotFound
		}
		affected, err := itemRepo.ReserveStock(item.ID, input.Quantity)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrStockInsufficient
		}

		order = &models.Order{
			OrderNo:        generateOrderNo(now),
			CustomerID:     customerID,
			CustomerName:   strings.TrimSpace(actor.Username),
			ProductID:      product.ID,
			ProductItemID:  item.ID,
			Quantity:       input.Quantity,
			UnitPrice:      item.PriceAmount,
			TotalAmount:    item.PriceAmount.Mul(input.Quantity),
			OptionSnapshot: buildOptionSnapshot(item),
			TitleSnapshot:  product.TitleJSON,
			Status:         models.OrderStatusAwaitingPayment,
			ExpiresAt:      &expiresAt,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return s.orderRepo.WithTx(tx).Create(order)
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		logger.Errorw("order_create_failed",
			"product_id", input.ProductID,
			"product_item_id", input.ProductItemID,
			"customer_id", customerID,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}

	metrics.RecordOrderTransition(string(order.Status))
	if err := s.queueClient.EnqueueOrderTimeoutCancel(queue.OrderTimeoutCancelPayload{
		OrderID: order.ID,
	}, time.Duration(expireMinutes)*time.Minute); err != nil {
		// 过期扫描兜底
		logger.Errorw("order_enqueue_timeout_cancel_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
	}
	s.scheduleSummaryRefresh(order.ProductID)
	logger.Infow("order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"product_item_id", order.ProductItemID,
		"quantity", order.Quantity,
	)
	return order, nil
}

// CancelOrder 买家取消订单（仅限待支付）
func (s *OrderService) CancelOrder(actor Actor, orderID uint) (*models.Order, error) {
	order, err := s.GetOrderForCustomer(actor, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusAwaitingPayment {
		return nil, ErrOrderTransitionInvalid
	}
	if err := s.cancelOrder(order, "customer_canceled"); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus 后台推进订单状态，卖家仅可操作自己商品的订单
func (s *OrderService) UpdateOrderStatus(actor Actor, orderID uint, target models.OrderStatus) (*models.Order, error) {
	order, err := s.GetOrderForAdmin(actor, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrOrderTransitionInvalid, order.Status, target)
	}
	if target == models.OrderStatusCanceled {
		if err := s.cancelOrder(order, "merchant_canceled"); err != nil {
			return nil, err
		}
		return order, nil
	}

	now := time.Now()
	updates := map[string]interface{}{"status": target}
	switch target {
	case models.OrderStatusPending:
		updates["paid_at"] = now
		updates["expires_at"] = nil
	case models.OrderStatusShipped:
		updates["shipped_at"] = now
	case models.OrderStatusCompleted:
		updates["completed_at"] = now
	}
	affected, err := s.orderRepo.UpdateStatus(order.ID, []models.OrderStatus{order.Status}, updates)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: order %d changed concurrently", ErrOrderTransitionInvalid, order.ID)
	}
	metrics.RecordOrderTransition(string(target))
	logger.Infow("order_status_updated",
		"order_id", order.ID,
		"from", order.Status,
		"to", target,
		"actor_id", actor.AuditName(),
	)
	return s.reloadOrder(order.ID)
}

// CancelExpiredOrder 取消已超时未支付的订单，状态已变化时直接返回
func (s *OrderService) CancelExpiredOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.Status != models.OrderStatusAwaitingPayment || order.ExpiresAt == nil || order.ExpiresAt.After(time.Now()) {
		return order, nil
	}
	if err := s.cancelOrder(order, "payment_timeout"); err != nil {
		if errors.Is(err, ErrOrderTransitionInvalid) {
			return order, nil
		}
		return nil, err
	}
	return order, nil
}

// CancelExpiredOrders 批量取消超时订单，返回取消数量
func (s *OrderService) CancelExpiredOrders(limit int) (int, error) {
	if limit <= 0 {
		limit = constants.OrderExpiredScanBatchSize
	}
	orders, err := s.orderRepo.ListExpired(time.Now(), limit)
	if err != nil {
		return 0, mapPersistenceError(err)
	}
	canceled := 0
	for i := range orders {
		order := &orders[i]
		if err := s.cancelOrder(order, "payment_timeout"); err != nil {
			if errors.Is(err, ErrOrderTransitionInvalid) {
				continue
			}
			logger.Warnw("order_expire_cancel_failed", "order_id", order.ID, "error", err)
			continue
		}
		canceled++
	}
	return canceled, nil
}

// GetOrderForCustomer 买家获取自己的订单
func (s *OrderService) GetOrderForCustomer(actor Actor, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if order == nil || order.CustomerID != actor.AuditName() {
		return nil, ErrNotFound
	}
	return order, nil
}

// ListOrdersForCustomer 买家订单列表
func (s *OrderService) ListOrdersForCustomer(actor Actor, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.List(repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: actor.AuditName(),
	})
}

// ListOrdersForAdmin 后台订单列表，卖家仅可见自己商品的订单
func (s *OrderService) ListOrdersForAdmin(actor Actor, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if !actor.IsAdmin() {
		filter.SellerID = actor.AuditName()
	}
	return s.orderRepo.List(filter)
}

// GetOrderForAdmin 后台获取订单详情
func (s *OrderService) GetOrderForAdmin(actor Actor, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if actor.IsAdmin() {
		return order, nil
	}
	product, err := s.productRepo.GetByIDWithDeleted(order.ProductID)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if product == nil || !actor.CanManage(product.CreatedBy) {
		return nil, ErrForbidden
	}
	return order, nil
}

// cancelOrder 取消订单并释放库存，同一事务内以状态条件更新防止重复释放
func (s *OrderService) cancelOrder(order *models.Order, reason string) error {
	from := order.Status
	if !CanTransition(from, models.OrderStatusCanceled) {
		return fmt.Errorf("%w: %s -> %s", ErrOrderTransitionInvalid, from, models.OrderStatusCanceled)
	}
	now := time.Now()
	var released int64
	err := s.itemRepo.Transaction(func(tx *gorm.DB) error {
		affected, err := s.orderRepo.WithTx(tx).UpdateStatus(order.ID, []models.OrderStatus{from}, map[string]interface{}{
			"status":        models.OrderStatusCanceled,
			"cancel_reason": reason,
			"canceled_at":   now,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrOrderTransitionInvalid
		}
		released, err = s.itemRepo.WithTx(tx).ReleaseStock(order.ProductItemID, order.Quantity)
		return err
	})
	if err != nil {
		return mapPersistenceError(err)
	}
	if released == 0 {
		// 规格组合整体替换后旧的可售单元已删除，预占库存无处归还
		logger.Warnw("order_stock_release_missed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"product_item_id", order.ProductItemID,
			"quantity", order.Quantity,
		)
	}
	order.Status = models.OrderStatusCanceled
	order.CancelReason = reason
	order.CanceledAt = &now
	order.UpdatedAt = now
	metrics.RecordOrderTransition(string(models.OrderStatusCanceled))
	s.scheduleSummaryRefresh(order.ProductID)
	logger.Infow("order_canceled",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"from", from,
		"reason", reason,
	)
	return nil
}

func (s *OrderService) reloadOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, mapPersistenceError(err)
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

func (s *OrderService) scheduleSummaryRefresh(productID uint) {
	if s.productService == nil {
		return
	}
	s.productService.ScheduleSummaryRefresh(productID)
}

func (s *OrderService) resolveExpireMinutes() int {
	if s.expireMinutes > 0 {
		return s.expireMinutes
	}
	return constants.OrderPaymentExpireMinutesDefault
}

// buildOptionSnapshot 记录下单时的规格名与规格值
func buildOptionSnapshot(item *models.ProductItem) models.JSON {
	snapshot := models.JSON{}
	for _, link := range item.Configurations {
		option := link.VariationOption
		if option == nil {
			continue
		}
		name := fmt.Sprintf("variation_%d", option.VariationID)
		if option.Variation != nil && strings.TrimSpace(option.Variation.Name) != "" {
			name = option.Variation.Name
		}
		snapshot[name] = option.Value
	}
	return snapshot
}

func generateOrderNo(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("HM%s%s", now.Format("20060102150405"), suffix)
}
