package models

import "time"

// ProductConfiguration 可售单元与规格值的关联
type ProductConfiguration struct {
	ID                uint      `gorm:"primarykey" json:"id"`                                                  // 主键
	ProductItemID     uint      `gorm:"not null;uniqueIndex:idx_item_option" json:"product_item_id"`           // 可售单元ID
	VariationOptionID uint      `gorm:"not null;uniqueIndex:idx_item_option;index" json:"variation_option_id"` // 规格值ID
	CreatedAt         time.Time `json:"created_at"`                                                            // 创建时间

	VariationOption *VariationOption `gorm:"foreignKey:VariationOptionID" json:"variation_option,omitempty"` // 规格值
}

// TableName 指定表名
func (ProductConfiguration) TableName() string {
	return "product_configurations"
}
