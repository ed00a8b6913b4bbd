package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"z-comp-ai-api/internal/interfaces/http/web"
)

// ShellHandler 内嵌前端入口
type ShellHandler struct {
	index []byte
}

// NewShellHandler 创建前端入口处理器
func NewShellHandler() *ShellHandler {
	return &ShellHandler{index: web.Index()}
}

// Index 返回入口页面
func (h *ShellHandler) Index(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.index)
}
