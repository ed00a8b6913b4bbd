package handler

import (
	"github.com/gin-gonic/gin"

	"z-comp-ai-api/internal/domain/entity"
	"z-comp-ai-api/internal/interfaces/http/dto"
)

// FrameworkHandler 框架目录处理器
type FrameworkHandler struct{}

// NewFrameworkHandler 创建框架目录处理器
func NewFrameworkHandler() *FrameworkHandler {
	return &FrameworkHandler{}
}

// ListFrameworks 获取可选框架
// @Summary 框架目录
// @Description 返回生成面板可选的框架/语言及其文件扩展名
// @Tags Frameworks
// @Produce json
// @Success 200 {object} dto.Response[dto.FrameworkListResponse]
// @Router /v1/frameworks [get]
func (h *FrameworkHandler) ListFrameworks(c *gin.Context) {
	dto.Success(c, dto.ToFrameworkListResponse(entity.Frameworks()))
}
