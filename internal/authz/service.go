package authz

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/handmade-next/internal/constants"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	apiV1Prefix     = "/api/v1"
	casbinTableName = "casbin_rule"
	subjectPrefix   = "role:"
)

// 可授权的资源根路径，其余路径不进入策略表
var scopedObjectRoots = []string{"/admin", "/orders"}

const marketplaceRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

var (
	ErrUnavailable      = errors.New("authz service unavailable")
	ErrRoleRequired     = errors.New("role is required")
	ErrUnknownRole      = errors.New("unknown role")
	ErrActionRequired   = errors.New("action is required")
	ErrObjectOutOfScope = errors.New("object is outside the authorizable scope")
	ErrProtectedPolicy  = errors.New("builtin policy cannot be revoked")
)

// Policy 权限策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// RoleSummary 角色概览
type RoleSummary struct {
	Role     string   `json:"role"`
	Inherits []string `json:"inherits"`
	Policies int      `json:"policies"`
}

// Service 基于 casbin 的角色授权，策略持久化在 casbin_rule 表
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: db is nil", ErrUnavailable)
	}
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}
	m, err := model.NewModelFromString(marketplaceRBACModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}
	return &Service{enforcer: enforcer}, nil
}

func (s *Service) ready() error {
	if s == nil || s.enforcer == nil {
		return ErrUnavailable
	}
	return nil
}

// EnforceRole 判定角色能否以 act 访问 obj，未知角色直接拒绝
func (s *Service) EnforceRole(role, obj, act string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	subject, err := RoleSubject(role)
	if errors.Is(err, ErrUnknownRole) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.enforcer.Enforce(subject, NormalizeObject(obj), NormalizeAction(act))
}

// ListRoles 列出内置角色及其继承关系与策略数量
func (s *Service) ListRoles() ([]RoleSummary, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	roles := append([]string(nil), builtinRoles()...)
	sort.Strings(roles)

	summaries := make([]RoleSummary, 0, len(roles))
	for _, role := range roles {
		subject := subjectPrefix + role
		groupings, err := s.enforcer.GetFilteredNamedGroupingPolicy("g", 0, subject)
		if err != nil {
			return nil, fmt.Errorf("list role inheritance failed: %w", err)
		}
		inherits := make([]string, 0, len(groupings))
		for _, rule := range groupings {
			if len(rule) >= 2 {
				inherits = append(inherits, strings.TrimPrefix(rule[1], subjectPrefix))
			}
		}
		policies, err := s.enforcer.GetFilteredPolicy(0, subject)
		if err != nil {
			return nil, fmt.Errorf("list role policies failed: %w", err)
		}
		summaries = append(summaries, RoleSummary{Role: role, Inherits: inherits, Policies: len(policies)})
	}
	return summaries, nil
}

// GetRolePolicies 查询角色直接持有的策略（不含继承）
func (s *Service) GetRolePolicies(role string) ([]Policy, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	subject, err := RoleSubject(role)
	if err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetFilteredPolicy(0, subject)
	if err != nil {
		return nil, fmt.Errorf("get role policies failed: %w", err)
	}
	policies := make([]Policy, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		policies = append(policies, Policy{
			Subject: strings.TrimPrefix(rule[0], subjectPrefix),
			Object:  rule[1],
			Action:  rule[2],
		})
	}
	sort.Slice(policies, func(i, j int) bool {
		if policies[i].Object == policies[j].Object {
			return policies[i].Action < policies[j].Action
		}
		return policies[i].Object < policies[j].Object
	})
	return policies, nil
}

// GrantRolePolicy 为角色追加策略，重复授予不报错
func (s *Service) GrantRolePolicy(role, object, action string) error {
	subject, obj, act, err := s.policyTuple(role, object, action)
	if err != nil {
		return err
	}
	if _, err := s.enforcer.AddPolicy(subject, obj, act); err != nil {
		return fmt.Errorf("grant policy failed: %w", err)
	}
	return nil
}

// RevokeRolePolicy 撤销角色策略，内置种子策略不可撤销
func (s *Service) RevokeRolePolicy(role, object, action string) error {
	subject, obj, act, err := s.policyTuple(role, object, action)
	if err != nil {
		return err
	}
	if isBuiltinPolicy(strings.TrimPrefix(subject, subjectPrefix), obj, act) {
		return ErrProtectedPolicy
	}
	if _, err := s.enforcer.RemovePolicy(subject, obj, act); err != nil {
		return fmt.Errorf("revoke policy failed: %w", err)
	}
	return nil
}

func (s *Service) policyTuple(role, object, action string) (string, string, string, error) {
	if err := s.ready(); err != nil {
		return "", "", "", err
	}
	subject, err := RoleSubject(role)
	if err != nil {
		return "", "", "", err
	}
	act := NormalizeAction(action)
	if act == "" {
		return "", "", "", ErrActionRequired
	}
	obj := NormalizeObject(object)
	if !inScope(obj) {
		return "", "", "", fmt.Errorf("%w: %s", ErrObjectOutOfScope, obj)
	}
	return subject, obj, act, nil
}

func inScope(object string) bool {
	for _, root := range scopedObjectRoots {
		if object == root || strings.HasPrefix(object, root+"/") {
			return true
		}
	}
	return false
}

func builtinRoles() []string {
	return []string{constants.RoleAdmin, constants.RoleSeller, constants.RoleCustomer}
}

// RoleSubject 把角色名转换为策略主体，仅接受内置角色
func RoleSubject(role string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(role), subjectPrefix)))
	if name == "" {
		return "", ErrRoleRequired
	}
	for _, known := range builtinRoles() {
		if name == known {
			return subjectPrefix + name, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownRole, name)
}

// NormalizeObject 去掉 /api/v1 前缀，得到策略中的资源路径
func NormalizeObject(object string) string {
	normalized := strings.TrimSpace(object)
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	switch {
	case normalized == apiV1Prefix:
		return "/"
	case strings.HasPrefix(normalized, apiV1Prefix+"/"):
		return strings.TrimPrefix(normalized, apiV1Prefix)
	}
	return normalized
}

// NormalizeAction 统一为大写 HTTP 方法
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}
