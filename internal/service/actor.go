package service

import (
	"strings"

	"github.com/handmade-next/internal/constants"
)

// Actor 当前操作人
type Actor struct {
	ID       string
	Username string
	Role     string
}

// IsAdmin 是否管理员
func (a Actor) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(a.Role), constants.RoleAdmin)
}

// IsSeller 是否卖家
func (a Actor) IsSeller() bool {
	return strings.EqualFold(strings.TrimSpace(a.Role), constants.RoleSeller)
}

// CanManage 管理员可管理任意记录，卖家仅可管理自己创建的记录
func (a Actor) CanManage(createdBy string) bool {
	if a.IsAdmin() {
		return true
	}
	id := strings.TrimSpace(a.ID)
	return id != "" && id == strings.TrimSpace(createdBy)
}

// AuditName 审计字段中记录的操作人
func (a Actor) AuditName() string {
	if id := strings.TrimSpace(a.ID); id != "" {
		return id
	}
	return strings.TrimSpace(a.Username)
}
