package admin

import (
	"errors"
	"net/http"

	"github.com/handmade-next/internal/authz"
	"github.com/handmade-next/internal/http/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type authzPolicyPayload struct {
	Role   string `json:"role"`
	Object string `json:"object"`
	Action string `json:"action"`
}

// Validate 校验策略请求
func (p *authzPolicyPayload) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Role, validation.Required),
		validation.Field(&p.Object, validation.Required),
		validation.Field(&p.Action, validation.Required),
	)
}

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	response.Success(c, roles)
}

// GetAuthzRolePolicies 获取角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	policies, err := h.AuthzService.GetRolePolicies(c.Param("role"))
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy 授予角色策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req authzPolicyPayload
	if !bindJSON(c, &req) {
		return
	}
	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondAuthzError(c, err)
		return
	}
	requestLog(c).Infow("authz_policy_granted",
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
		"actor", actor.AuditName(),
	)
	response.Success(c, nil)
}

// RevokeAuthzPolicy 撤销角色策略
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req authzPolicyPayload
	if !bindJSON(c, &req) {
		return
	}
	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondAuthzError(c, err)
		return
	}
	requestLog(c).Infow("authz_policy_revoked",
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
		"actor", actor.AuditName(),
	)
	response.Success(c, nil)
}

func respondAuthzError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authz.ErrUnavailable):
		respondError(c, http.StatusInternalServerError, "error.internal_error", err)
	case errors.Is(err, authz.ErrUnknownRole):
		respondError(c, http.StatusNotFound, "error.not_found", err)
	case errors.Is(err, authz.ErrProtectedPolicy):
		respondError(c, http.StatusForbidden, "error.forbidden", err)
	case errors.Is(err, authz.ErrRoleRequired),
		errors.Is(err, authz.ErrActionRequired),
		errors.Is(err, authz.ErrObjectOutOfScope):
		respondError(c, http.StatusBadRequest, "error.bad_request", err)
	default:
		respondError(c, http.StatusInternalServerError, "error.internal_error", err)
	}
}
