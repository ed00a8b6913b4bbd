package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由；generationLimit 仅作用于触发模型调用的接口
func RegisterV1Routes(v1 *gin.RouterGroup, h *Handlers, generationLimit gin.HandlerFunc) {
	v1.GET("/frameworks", h.Framework.ListFrameworks)

	// 生成面板
	panels := v1.Group("/panels")
	{
		panels.POST("", h.Panel.CreatePanel)
		panels.GET("/:id", h.Panel.GetPanel)
		panels.DELETE("/:id", h.Panel.DeletePanel)
		panels.PUT("/:id/input", h.Panel.UpdateInput)
		panels.POST("/:id/submit", generationLimit, h.Panel.Submit)
		panels.POST("/:id/copy", h.Panel.Copy)
		panels.GET("/:id/download", h.Panel.Download)
		panels.POST("/:id/preview", h.Panel.OpenPreview)
	}

	// 预览
	previews := v1.Group("/previews")
	{
		previews.POST("", h.Preview.OpenPreview)
		previews.GET("/:id", h.Preview.GetPreview)
		previews.PUT("/:id", h.Preview.ReloadPreview)
		previews.PUT("/:id/viewport", h.Preview.SetViewport)
		previews.DELETE("/:id", h.Preview.DismissPreview)
	}
}
