package public

import "github.com/shopsync/internal/provider"

// Handler 公开与用户侧接口处理器入口
// 说明：管理端接口见 admin 包。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
