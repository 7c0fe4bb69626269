package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Code       string      `json:"code"`       // 业务错误码
	StatusCode int         `json:"statusCode"` // HTTP 状态码
	Message    string      `json:"message"`    // 提示消息
	Data       interface{} `json:"data"`       // 数据内容
}

// PageResponse 分页响应结构
type PageResponse struct {
	Code       string      `json:"code"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// BuildPagination 根据总数计算分页信息
func BuildPagination(page, pageSize int, total int64) Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total, TotalPage: totalPage}
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	SuccessWithMsg(c, "success", data)
}

// SuccessWithMsg 成功响应（自定义消息）
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:       CodeOK,
		StatusCode: http.StatusOK,
		Message:    msg,
		Data:       data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:       CodeOK,
		StatusCode: http.StatusCreated,
		Message:    "created",
		Data:       data,
	})
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		Code:       CodeOK,
		StatusCode: http.StatusOK,
		Message:    "success",
		Data:       data,
		Pagination: pagination,
	})
}

// Error 错误响应，HTTP 状态与 statusCode 一致，data 固定为 null
func Error(c *gin.Context, status int, code, msg string) {
	c.JSON(status, Response{
		Code:       code,
		StatusCode: status,
		Message:    msg,
		Data:       nil,
	})
}

// AbortWithError 错误响应并中断后续处理
func AbortWithError(c *gin.Context, status int, code, msg string) {
	Error(c, status, code, msg)
	c.Abort()
}

// FromAppError 按 AppError 输出错误响应
func FromAppError(c *gin.Context, appErr *AppError) {
	if appErr == nil {
		return
	}
	Error(c, appErr.Status, appErr.Code, appErr.Message)
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, http.StatusNotFound, CodeNotFound, msg)
}

// Unauthorized 401响应
func Unauthorized(c *gin.Context, msg string) {
	Error(c, http.StatusUnauthorized, CodeUnauthorized, msg)
}

// Forbidden 403响应
func Forbidden(c *gin.Context, msg string) {
	Error(c, http.StatusForbidden, CodeForbidden, msg)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, http.StatusBadRequest, CodeBadRequest, msg)
}
