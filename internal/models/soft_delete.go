package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// SoftDeletable 可软删除、可恢复的实体
type SoftDeletable interface {
	IsDeleted() bool
	MarkDeleted(actor string, at time.Time)
	Restore()
}

// SoftDelete 软删除字段，嵌入到分类、规格、规格值与商品中
type SoftDelete struct {
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`             // 软删除时间
	DeletedBy *string        `gorm:"type:varchar(100)" json:"deleted_by,omitempty"` // 删除人
}

// IsDeleted 是否已删除
func (s *SoftDelete) IsDeleted() bool {
	return s.DeletedAt.Valid
}

// MarkDeleted 标记删除
func (s *SoftDelete) MarkDeleted(actor string, at time.Time) {
	s.DeletedAt = gorm.DeletedAt{Time: at, Valid: true}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		s.DeletedBy = nil
		return
	}
	s.DeletedBy = &actor
}

// Restore 恢复
func (s *SoftDelete) Restore() {
	s.DeletedAt = gorm.DeletedAt{}
	s.DeletedBy = nil
}

// Audit 审计字段
type Audit struct {
	CreatedBy string    `gorm:"type:varchar(100);not null;default:''" json:"created_by"` // 创建人
	UpdatedBy string    `gorm:"type:varchar(100);not null;default:''" json:"updated_by"` // 更新人
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                              // 更新时间
}
