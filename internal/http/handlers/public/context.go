package public

import (
	handlershared "github.com/handmade-next/internal/http/handlers/shared"
	"github.com/handmade-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, status int, key string, err error) {
	handlershared.RespondError(c, status, key, err)
}

func respondServiceError(c *gin.Context, err error) {
	handlershared.RespondServiceError(c, err)
}

func getActor(c *gin.Context) (service.Actor, bool) {
	return handlershared.RequireActor(c)
}

func parseID(c *gin.Context) (uint, bool) {
	return handlershared.ParseIDParam(c, "id")
}
