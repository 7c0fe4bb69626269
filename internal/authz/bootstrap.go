package authz

import (
	"fmt"

	"github.com/handmade-next/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵
//
// 顾客只能下单和查看自己的订单；卖家管理规格、商品与订单；
// 管理员继承卖家并额外拥有分类与授权管理。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleCustomer,
			Policies: []Policy{
				{Object: "/orders", Action: "GET"},
				{Object: "/orders", Action: "POST"},
				{Object: "/orders/:id", Action: "GET"},
				{Object: "/orders/:id/cancel", Action: "POST"},
			},
		},
		{
			Role: constants.RoleSeller,
			Policies: []Policy{
				{Object: "/admin/categories", Action: "GET"},
				{Object: "/admin/categories/:id/variations", Action: "GET"},
				{Object: "/admin/variations", Action: "POST"},
				{Object: "/admin/variations/:id", Action: "*"},
				{Object: "/admin/variations/:id/restore", Action: "POST"},
				{Object: "/admin/variations/:id/options", Action: "POST"},
				{Object: "/admin/variation-options/:id", Action: "*"},
				{Object: "/admin/variation-options/:id/restore", Action: "POST"},
				{Object: "/admin/products", Action: "*"},
				{Object: "/admin/products/:id", Action: "*"},
				{Object: "/admin/products/:id/restore", Action: "POST"},
				{Object: "/admin/products/:id/combinations", Action: "GET"},
				{Object: "/admin/product-combinations/preview", Action: "POST"},
				{Object: "/admin/orders", Action: "GET"},
				{Object: "/admin/orders/:id", Action: "GET"},
				{Object: "/admin/orders/:id/status", Action: "PATCH"},
			},
		},
		{
			Role:     constants.RoleAdmin,
			Inherits: []string{constants.RoleSeller},
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
	}
}

func isBuiltinPolicy(role, object, action string) bool {
	for _, seed := range BuiltinRoleSeeds() {
		if seed.Role != role {
			continue
		}
		for _, policy := range seed.Policies {
			if policy.Object == object && NormalizeAction(policy.Action) == action {
				return true
			}
		}
	}
	return false
}

// BootstrapBuiltinRoles 写入预置角色与策略，可重复执行
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		subject, err := RoleSubject(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentSubject, err := RoleSubject(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", subject, parentSubject); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			if _, err := s.enforcer.AddPolicy(subject, NormalizeObject(policy.Object), NormalizeAction(policy.Action)); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
