package models

// Product 商品表
type Product struct {
	ID              uint        `gorm:"primarykey" json:"id"`                                   // 主键
	CategoryID      uint        `gorm:"not null;index" json:"category_id"`                      // 分类ID
	Slug            string      `gorm:"uniqueIndex;not null" json:"slug"`                       // 唯一标识
	TitleJSON       JSON        `gorm:"type:json;not null" json:"title"`                        // 多语言标题
	DescriptionJSON JSON        `gorm:"type:json" json:"description"`                           // 多语言描述
	Images          StringArray `gorm:"type:json" json:"images"`                                // 图片数组
	Tags            StringArray `gorm:"type:json" json:"tags"`                                  // 标签数组
	IsActive        bool        `gorm:"default:true;index" json:"is_active"`                    // 是否上架
	SortOrder       int         `gorm:"default:0;index" json:"sort_order"`                      // 排序权重
	MinPrice        Money       `gorm:"type:decimal(20,2);not null;default:0" json:"min_price"` // 最低售价（由规格组合汇总）
	MaxPrice        Money       `gorm:"type:decimal(20,2);not null;default:0" json:"max_price"` // 最高售价（由规格组合汇总）
	TotalStock      int         `gorm:"not null;default:0" json:"total_stock"`                  // 总库存（由规格组合汇总）
	ConfigVersion   uint        `gorm:"not null;default:0" json:"config_version"`               // 规格配置版本号（乐观锁）
	Audit
	SoftDelete

	// 关联
	Category Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
	Items    []ProductItem `gorm:"foreignKey:ProductID" json:"items,omitempty"`     // 规格组合（可售单元）
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
