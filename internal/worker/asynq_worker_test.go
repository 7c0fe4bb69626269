package worker

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/handmade-next/internal/config"
	"github.com/handmade-next/internal/models"
	"github.com/handmade-next/internal/provider"
	"github.com/handmade-next/internal/queue"
	"github.com/handmade-next/internal/repository"
	"github.com/handmade-next/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupWorkerTest(t *testing.T) (*gorm.DB, *Consumer) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:worker_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	productRepo := repository.NewProductRepository(db)
	itemRepo := repository.NewProductItemRepository(db)
	optionRepo := repository.NewVariationOptionRepository(db)
	productService := service.NewProductService(
		productRepo,
		repository.NewCategoryRepository(db),
		repository.NewVariationRepository(db),
		optionRepo,
		service.NewProductConfigurationMaterializer(itemRepo, optionRepo),
		nil,
		nil,
	)
	orderService := service.NewOrderService(repository.NewOrderRepository(db), productRepo, itemRepo, productService, nil, 30)
	return db, NewConsumer(&provider.Container{
		ProductService: productService,
		OrderService:   orderService,
	})
}

func seedWorkerProduct(t *testing.T, db *gorm.DB) (*models.Product, *models.ProductItem) {
	t.Helper()
	category := &models.Category{Slug: "baskets", NameJSON: models.JSON{"vi-VN": "Giỏ", "en-US": "Baskets"}}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		CategoryID: category.ID,
		Slug:       "rattan-basket",
		TitleJSON:  models.JSON{"vi-VN": "Giỏ mây", "en-US": "Rattan basket"},
		IsActive:   true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	item := &models.ProductItem{
		ProductID:   product.ID,
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(45)),
		Stock:       3,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	return product, item
}

func TestHandleProductSummaryRefresh(t *testing.T) {
	db, consumer := setupWorkerTest(t)
	product, _ := seedWorkerProduct(t, db)

	task, err := queue.NewProductSummaryRefreshTask(queue.ProductSummaryRefreshPayload{ProductID: product.ID})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleProductSummaryRefresh(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.MinPrice.String() != "45.00" || reloaded.TotalStock != 3 {
		t.Fatalf("summary not refreshed: min=%s stock=%d", reloaded.MinPrice.String(), reloaded.TotalStock)
	}
}

func TestHandleOrderTimeoutCancelReleasesStock(t *testing.T) {
	db, consumer := setupWorkerTest(t)
	product, item := seedWorkerProduct(t, db)

	expiredAt := time.Now().Add(-time.Minute)
	order := &models.Order{
		OrderNo:       "HM-TIMEOUT-1",
		CustomerID:    "customer-1",
		ProductID:     product.ID,
		ProductItemID: item.ID,
		Quantity:      2,
		Status:        models.OrderStatusAwaitingPayment,
		ExpiresAt:     &expiredAt,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	task, err := queue.NewOrderTimeoutCancelTask(queue.OrderTimeoutCancelPayload{OrderID: order.ID})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderTimeoutCancel(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != models.OrderStatusCanceled {
		t.Fatalf("order status want canceled got %s", reloaded.Status)
	}
	var stock models.ProductItem
	if err := db.First(&stock, item.ID).Error; err != nil {
		t.Fatalf("reload item failed: %v", err)
	}
	if stock.Stock != 5 {
		t.Fatalf("stock want 5 got %d", stock.Stock)
	}

	// 重复投递不再释放库存
	if err := consumer.handleOrderTimeoutCancel(context.Background(), task); err != nil {
		t.Fatalf("redelivered task failed: %v", err)
	}
	if err := db.First(&stock, item.ID).Error; err != nil {
		t.Fatalf("reload item failed: %v", err)
	}
	if stock.Stock != 5 {
		t.Fatalf("stock changed on redelivery: %d", stock.Stock)
	}
}

func TestHandlersSkipInvalidPayload(t *testing.T) {
	_, consumer := setupWorkerTest(t)

	if err := consumer.handleOrderTimeoutCancel(context.Background(), asynq.NewTask(queue.TaskOrderTimeoutCancel, []byte("{"))); err == nil {
		t.Fatalf("malformed payload should fail")
	}
	if err := consumer.handleOrderTimeoutCancel(context.Background(), asynq.NewTask(queue.TaskOrderTimeoutCancel, []byte(`{"order_id":0}`))); err != nil {
		t.Fatalf("empty order id should be skipped: %v", err)
	}
	if err := consumer.handleOrderTimeoutCancel(context.Background(), asynq.NewTask(queue.TaskOrderTimeoutCancel, []byte(`{"order_id":404}`))); err != nil {
		t.Fatalf("missing order should be skipped: %v", err)
	}
	if err := consumer.handleProductSummaryRefresh(context.Background(), asynq.NewTask(queue.TaskProductSummaryRefresh, []byte(`{"product_id":0}`))); err != nil {
		t.Fatalf("empty product id should be skipped: %v", err)
	}
}

func TestServiceWithoutQueueScansExpiredOrders(t *testing.T) {
	db, consumer := setupWorkerTest(t)
	product, item := seedWorkerProduct(t, db)

	expiredAt := time.Now().Add(-time.Minute)
	order := &models.Order{
		OrderNo:       "HM-SCAN-1",
		CustomerID:    "customer-1",
		ProductID:     product.ID,
		ProductItemID: item.ID,
		Quantity:      1,
		Status:        models.OrderStatusAwaitingPayment,
		ExpiresAt:     &expiredAt,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	svc, err := NewService(&config.Config{Order: config.OrderConfig{ExpiredScanSeconds: 3600}}, consumer)
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}
	if svc.Name() != "order_scanner" {
		t.Fatalf("name want order_scanner got %s", svc.Name())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for {
		var reloaded models.Order
		if err := db.First(&reloaded, order.ID).Error; err != nil {
			t.Fatalf("reload order failed: %v", err)
		}
		if reloaded.Status == models.OrderStatusCanceled {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expired order was not canceled by the scanner")
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("scanner should stop cleanly: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("scanner did not stop")
	}
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}
