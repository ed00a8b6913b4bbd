package dto

import (
	"github.com/gin-gonic/gin"
)

// IDRequest 资源 ID 请求
type IDRequest struct {
	ID string `uri:"id" binding:"required"`
}

// BindID 从 URI 绑定资源 ID
func BindID(c *gin.Context) string {
	return c.Param("id")
}

// UpdatePanelInputRequest 更新面板输入
type UpdatePanelInputRequest struct {
	Framework   string `json:"framework"`
	Description string `json:"description"`
}

// OpenPreviewRequest 直接以源码打开预览
type OpenPreviewRequest struct {
	Framework string `json:"framework" binding:"required"`
	Code      string `json:"code" binding:"required"`
}

// ReloadPreviewRequest 重新加载预览
type ReloadPreviewRequest struct {
	Framework string `json:"framework" binding:"required"`
	Code      string `json:"code" binding:"required"`
}

// SetViewportRequest 切换视口
type SetViewportRequest struct {
	ViewMode string `json:"view_mode" binding:"required,oneof=desktop tablet mobile"`
}
