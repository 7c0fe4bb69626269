package admin

import (
	handlershared "github.com/handmade-next/internal/http/handlers/shared"
	"github.com/handmade-next/internal/service"

	"github.com/gin-gonic/gin"
)

func getActor(c *gin.Context) (service.Actor, bool) {
	return handlershared.RequireActor(c)
}

func parseID(c *gin.Context) (uint, bool) {
	return handlershared.ParseIDParam(c, "id")
}

// bindJSON 绑定并校验请求体，失败时已写出响应
func bindJSON(c *gin.Context, req interface{ Validate() error }) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		handlershared.RespondValidationError(c, err)
		return false
	}
	if err := req.Validate(); err != nil {
		handlershared.RespondValidationError(c, err)
		return false
	}
	return true
}
