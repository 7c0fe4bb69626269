package models

// ProductItem 可售单元：一个规格组合对应一行，持有价格与库存
type ProductItem struct {
	ID          uint  `gorm:"primarykey" json:"id"`                                      // 主键
	ProductID   uint  `gorm:"not null;index" json:"product_id"`                          // 商品ID
	PriceAmount Money `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 价格
	Stock       int   `gorm:"not null;default:0" json:"stock"`                           // 可售库存
	Audit

	Product        *Product               `gorm:"foreignKey:ProductID" json:"product,omitempty"`            // 关联商品
	Configurations []ProductConfiguration `gorm:"foreignKey:ProductItemID" json:"configurations,omitempty"` // 组成该组合的规格值
}

// TableName 指定表名
func (ProductItem) TableName() string {
	return "product_items"
}

// OptionIDs 返回该组合引用的规格值 ID
func (p *ProductItem) OptionIDs() []uint {
	ids := make([]uint, 0, len(p.Configurations))
	for _, cfg := range p.Configurations {
		ids = append(ids, cfg.VariationOptionID)
	}
	return ids
}
