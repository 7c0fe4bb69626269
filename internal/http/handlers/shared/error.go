package shared

import (
	"errors"
	"net/http"
	"strings"

	"github.com/handmade-next/internal/http/response"
	"github.com/handmade-next/internal/i18n"
	"github.com/handmade-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if c.Request != nil {
		if log, ok := logger.Bound(c.Request.Context()); ok {
			return log
		}
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// CodeFromKey 由 i18n key 推导业务错误码，error.not_found => not_found
func CodeFromKey(key string) string {
	return strings.TrimPrefix(key, "error.")
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, status int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	respond(c, response.WrapError(status, CodeFromKey(key), i18n.T(locale, key), err))
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, status int, code, msg string, err error) {
	respond(c, response.WrapError(status, code, msg, err))
}

// RespondValidationError 请求参数校验失败
func RespondValidationError(c *gin.Context, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, "error.bad_request")
	if err != nil {
		msg = i18n.Sprintf(locale, "error.validation", err.Error())
	}
	respond(c, response.WrapError(http.StatusBadRequest, response.CodeBadRequest, msg, nil))
}

// RespondServiceError 按 service 层错误映射响应
func RespondServiceError(c *gin.Context, err error) {
	mapping := MapServiceError(err)
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, mapping.Key)
	if mapping.Status < http.StatusInternalServerError {
		if detail := errorDetail(err, mapping.Sentinel); detail != "" {
			msg = msg + ": " + detail
		}
	}
	respond(c, response.WrapError(mapping.Status, CodeFromKey(mapping.Key), msg, err))
}

func respond(c *gin.Context, appErr *response.AppError) {
	if appErr.Err != nil {
		log := RequestLog(c)
		if appErr.Status >= http.StatusInternalServerError {
			log.Errorw("handler_error",
				"status", appErr.Status,
				"code", appErr.Code,
				"error", appErr.Err,
			)
		} else {
			log.Infow("handler_rejected",
				"status", appErr.Status,
				"code", appErr.Code,
				"error", appErr.Err,
			)
		}
	}
	response.FromAppError(c, appErr)
}

// errorDetail 取出包装在哨兵错误之后的补充说明
func errorDetail(err, sentinel error) string {
	if err == nil || sentinel == nil || errors.Is(sentinel, err) {
		return ""
	}
	prefix := sentinel.Error() + ": "
	text := err.Error()
	if idx := strings.Index(text, prefix); idx >= 0 {
		return strings.TrimSpace(text[idx+len(prefix):])
	}
	return ""
}
