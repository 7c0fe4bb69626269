package admin

import "github.com/handmade-next/internal/provider"

// Handler 后台管理接口处理器入口
// 说明：该处理器用于管理员与卖家的管理端 API。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
