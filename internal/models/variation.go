package models

// Variation 规格（维度），如颜色、尺寸，隶属于某个分类
type Variation struct {
	ID         uint   `gorm:"primarykey" json:"id"`                   // 主键
	CategoryID uint   `gorm:"not null;index" json:"category_id"`      // 分类ID
	Name       string `gorm:"type:varchar(100);not null" json:"name"` // 规格名称（同分类内唯一）
	SortOrder  int    `gorm:"default:0;index" json:"sort_order"`      // 排序权重
	Audit
	SoftDelete

	Category *Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 所属分类
	Options  []VariationOption `gorm:"foreignKey:VariationID" json:"options,omitempty"` // 规格值
}

// TableName 指定表名
func (Variation) TableName() string {
	return "variations"
}

// VariationOption 规格值，如 红色、XL
type VariationOption struct {
	ID          uint   `gorm:"primarykey" json:"id"`                    // 主键
	VariationID uint   `gorm:"not null;index" json:"variation_id"`      // 规格ID
	Value       string `gorm:"type:varchar(100);not null" json:"value"` // 规格值（同规格内唯一）
	SortOrder   int    `gorm:"default:0;index" json:"sort_order"`       // 排序权重
	Audit
	SoftDelete

	Variation *Variation `gorm:"foreignKey:VariationID" json:"variation,omitempty"` // 所属规格
}

// TableName 指定表名
func (VariationOption) TableName() string {
	return "variation_options"
}
