package models

import (
	"time"
)

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusAwaitingPayment OrderStatus = "awaiting_payment" // 待支付
	OrderStatusPending         OrderStatus = "pending"          // 已支付待处理
	OrderStatusProcessing      OrderStatus = "processing"       // 制作中
	OrderStatusShipped         OrderStatus = "shipped"          // 已发货
	OrderStatusDelivered       OrderStatus = "delivered"        // 已送达
	OrderStatusCompleted       OrderStatus = "completed"        // 已完成
	OrderStatusCanceled        OrderStatus = "canceled"         // 已取消
)

// Order 订单表（单个可售单元）
type Order struct {
	ID             uint        `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo        string      `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	CustomerID     string      `gorm:"type:varchar(100);index;not null" json:"customer_id"`       // 买家ID
	CustomerName   string      `gorm:"type:varchar(100)" json:"customer_name"`                    // 买家名称
	ProductID      uint        `gorm:"index;not null" json:"product_id"`                          // 商品ID
	ProductItemID  uint        `gorm:"index;not null" json:"product_item_id"`                     // 可售单元ID
	Quantity       int         `gorm:"not null" json:"quantity"`                                  // 数量
	UnitPrice      Money       `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`   // 单价
	TotalAmount    Money       `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 总金额
	OptionSnapshot JSON        `gorm:"type:json" json:"option_snapshot"`                          // 下单时的规格快照
	TitleSnapshot  JSON        `gorm:"type:json" json:"title_snapshot"`                           // 下单时的商品标题快照
	Status         OrderStatus `gorm:"type:varchar(32);index;not null" json:"status"`             // 订单状态
	CancelReason   string      `gorm:"type:varchar(255)" json:"cancel_reason,omitempty"`          // 取消原因
	ExpiresAt      *time.Time  `gorm:"index" json:"expires_at"`                                   // 支付过期时间
	PaidAt         *time.Time  `json:"paid_at"`                                                   // 支付时间
	ShippedAt      *time.Time  `json:"shipped_at"`                                                // 发货时间
	CompletedAt    *time.Time  `json:"completed_at"`                                              // 完成时间
	CanceledAt     *time.Time  `json:"canceled_at"`                                               // 取消时间
	CreatedAt      time.Time   `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt      time.Time   `json:"updated_at"`                                                // 更新时间
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
