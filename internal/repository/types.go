package repository

import (
	"time"

	"github.com/handmade-next/internal/models"
)

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	CreatedBy    string
	Search       string
	OnlyActive   bool
	WithCategory bool
	WithItems    bool
	WithDeleted  bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	CustomerID  string
	ProductID   uint
	SellerID    string
	Status      models.OrderStatus
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
