package models

// Category 分类表
type Category struct {
	ID        uint   `gorm:"primarykey" json:"id"`              // 主键
	Slug      string `gorm:"uniqueIndex;not null" json:"slug"`  // 唯一标识
	NameJSON  JSON   `gorm:"type:json;not null" json:"name"`    // 多语言名称
	Icon      string `gorm:"type:varchar(500)" json:"icon"`     // 分类图标（图片路径）
	SortOrder int    `gorm:"default:0;index" json:"sort_order"` // 排序权重
	Audit
	SoftDelete

	Variations []Variation `gorm:"foreignKey:CategoryID" json:"variations,omitempty"` // 分类下的规格
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
