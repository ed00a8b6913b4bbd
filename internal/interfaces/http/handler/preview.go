package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"z-comp-ai-api/internal/application/preview"
	"z-comp-ai-api/internal/domain/entity"
	"z-comp-ai-api/internal/interfaces/http/dto"
	apperrors "z-comp-ai-api/pkg/errors"
	"z-comp-ai-api/pkg/logger"
)

// DocumentCSP 预览文档响应头，浏览器直接打开时同样处于沙箱
const DocumentCSP = "sandbox allow-scripts"

// PreviewHandler 预览处理器
type PreviewHandler struct {
	previews *preview.Service
}

// NewPreviewHandler 创建预览处理器
func NewPreviewHandler(previews *preview.Service) *PreviewHandler {
	return &PreviewHandler{previews: previews}
}

// OpenPreview 以源码打开预览
// @Summary 打开预览
// @Description 按框架类别直出 HTML、编译 JSX 或返回只读源码
// @Tags Previews
// @Accept json
// @Produce json
// @Param body body dto.OpenPreviewRequest true "源码"
// @Success 201 {object} dto.Response[dto.PreviewResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/previews [post]
func (h *PreviewHandler) OpenPreview(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.OpenPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	framework, ok := entity.LookupFramework(req.Framework)
	if !ok {
		dto.AppError(c, apperrors.ErrInvalidParam.WithDetail("unknown framework: "+req.Framework))
		return
	}

	id, state, err := h.previews.Open(ctx, req.Code, framework)
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "failed to open preview", err)
		}
		dto.AppError(c, err)
		return
	}
	dto.Created(c, dto.ToPreviewResponse(id, state))
}

// GetPreview 获取预览状态
// @Summary 获取预览状态
// @Tags Previews
// @Produce json
// @Param id path string true "预览 ID"
// @Success 200 {object} dto.Response[dto.PreviewResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/previews/{id} [get]
func (h *PreviewHandler) GetPreview(c *gin.Context) {
	id := dto.BindID(c)
	state, err := h.previews.Get(id)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, dto.ToPreviewResponse(id, state))
}

// ReloadPreview 以新源码重新计算预览
// @Summary 重新加载预览
// @Description 保留当前视口预设
// @Tags Previews
// @Accept json
// @Produce json
// @Param id path string true "预览 ID"
// @Param body body dto.ReloadPreviewRequest true "源码"
// @Success 200 {object} dto.Response[dto.PreviewResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/previews/{id} [put]
func (h *PreviewHandler) ReloadPreview(c *gin.Context) {
	id := dto.BindID(c)

	var req dto.ReloadPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	framework, ok := entity.LookupFramework(req.Framework)
	if !ok {
		dto.AppError(c, apperrors.ErrInvalidParam.WithDetail("unknown framework: "+req.Framework))
		return
	}

	state, err := h.previews.Reload(c.Request.Context(), id, req.Code, framework)
	if err != nil {
		previewError(c, id, state, err)
		return
	}
	dto.Success(c, dto.ToPreviewResponse(id, state))
}

// SetViewport 切换视口预设
// @Summary 切换视口
// @Tags Previews
// @Accept json
// @Produce json
// @Param id path string true "预览 ID"
// @Param body body dto.SetViewportRequest true "视口"
// @Success 200 {object} dto.Response[dto.PreviewResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/previews/{id}/viewport [put]
func (h *PreviewHandler) SetViewport(c *gin.Context) {
	id := dto.BindID(c)

	var req dto.SetViewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	mode, err := entity.ParseViewMode(req.ViewMode)
	if err != nil {
		dto.AppError(c, apperrors.ErrInvalidParam.WithDetail(err.Error()))
		return
	}

	state, err := h.previews.SetViewMode(id, mode)
	if err != nil {
		previewError(c, id, state, err)
		return
	}
	dto.Success(c, dto.ToPreviewResponse(id, state))
}

// DismissPreview 关闭预览
// @Summary 关闭预览
// @Description 进入 closing，动画结束后释放；closing 期间再次关闭返回 409
// @Tags Previews
// @Produce json
// @Param id path string true "预览 ID"
// @Success 202 {object} dto.Response[dto.PreviewResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/previews/{id} [delete]
func (h *PreviewHandler) DismissPreview(c *gin.Context) {
	id := dto.BindID(c)
	state, err := h.previews.Dismiss(c.Request.Context(), id)
	if err != nil {
		previewError(c, id, state, err)
		return
	}
	dto.Accepted(c, dto.ToPreviewResponse(id, state))
}

// Document 预览文档，供沙箱 iframe 加载
// @Summary 预览文档
// @Tags Previews
// @Produce html
// @Param id path string true "预览 ID"
// @Success 200 {string} string
// @Failure 404 {object} dto.ErrorResponse
// @Router /preview/{id} [get]
func (h *PreviewHandler) Document(c *gin.Context) {
	doc, err := h.previews.Document(c.Request.Context(), dto.BindID(c))
	if err != nil {
		dto.AppError(c, err)
		return
	}
	c.Header("Content-Security-Policy", DocumentCSP)
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

// previewError 预览面存在时错误响应附带其当前状态
func previewError(c *gin.Context, id string, state entity.PreviewState, err error) {
	if state.Phase == "" {
		dto.AppError(c, err)
		return
	}
	dto.AppErrorWithData(c, err, dto.ToPreviewResponse(id, state))
}
