package shared

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/handmade-next/internal/service"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	ContextKeyActor     = "actor"
	ContextKeyRequestID = "request_id"
)

// SetActor 将操作人写入上下文
func SetActor(c *gin.Context, actor service.Actor) {
	c.Set(ContextKeyActor, actor)
}

// ActorFromContext 读取操作人
func ActorFromContext(c *gin.Context) (service.Actor, bool) {
	value, exists := c.Get(ContextKeyActor)
	if !exists {
		return service.Actor{}, false
	}
	actor, ok := value.(service.Actor)
	if !ok || strings.TrimSpace(actor.ID) == "" {
		return service.Actor{}, false
	}
	return actor, true
}

// RequireActor 读取操作人，缺失时返回 401
func RequireActor(c *gin.Context) (service.Actor, bool) {
	actor, ok := ActorFromContext(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "error.unauthorized", nil)
		return service.Actor{}, false
	}
	return actor, true
}

// ParseIDParam 解析路径中的正整数 ID
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, http.StatusBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

// QueryUint 读取可选的正整数查询参数
func QueryUint(c *gin.Context, name string) uint {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}
