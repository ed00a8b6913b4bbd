package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"z-comp-ai-api/internal/application/panel"
	"z-comp-ai-api/internal/application/preview"
	"z-comp-ai-api/internal/interfaces/http/dto"
	apperrors "z-comp-ai-api/pkg/errors"
	"z-comp-ai-api/pkg/logger"
)

// PanelHandler 生成面板处理器
type PanelHandler struct {
	panels   *panel.Store
	previews *preview.Service
}

// NewPanelHandler 创建生成面板处理器
func NewPanelHandler(panels *panel.Store, previews *preview.Service) *PanelHandler {
	return &PanelHandler{
		panels:   panels,
		previews: previews,
	}
}

// CreatePanel 创建面板
// @Summary 创建生成面板
// @Tags Panels
// @Produce json
// @Success 201 {object} dto.Response[dto.PanelResponse]
// @Router /v1/panels [post]
func (h *PanelHandler) CreatePanel(c *gin.Context) {
	p := h.panels.Create()
	logger.Debug(logger.WithContext(c.Request.Context(), logger.PanelIDKey, p.ID()), "panel created")
	dto.Created(c, p.Snapshot())
}

// GetPanel 获取面板状态
// @Summary 获取面板状态
// @Tags Panels
// @Produce json
// @Param id path string true "面板 ID"
// @Success 200 {object} dto.Response[dto.PanelResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/panels/{id} [get]
func (h *PanelHandler) GetPanel(c *gin.Context) {
	p, err := h.panels.Get(dto.BindID(c))
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, p.Snapshot())
}

// DeletePanel 删除面板
// @Summary 删除面板
// @Tags Panels
// @Param id path string true "面板 ID"
// @Success 204
// @Router /v1/panels/{id} [delete]
func (h *PanelHandler) DeletePanel(c *gin.Context) {
	h.panels.Delete(dto.BindID(c))
	c.Status(http.StatusNoContent)
}

// UpdateInput 更新框架与描述
// @Summary 更新面板输入
// @Description 修改输入会使在途生成响应过期
// @Tags Panels
// @Accept json
// @Produce json
// @Param id path string true "面板 ID"
// @Param body body dto.UpdatePanelInputRequest true "输入"
// @Success 200 {object} dto.Response[dto.PanelResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/panels/{id}/input [put]
func (h *PanelHandler) UpdateInput(c *gin.Context) {
	p, err := h.panels.Get(dto.BindID(c))
	if err != nil {
		dto.AppError(c, err)
		return
	}

	var req dto.UpdatePanelInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	snap, err := p.SetInput(req.Framework, req.Description)
	if err != nil {
		dto.AppErrorWithData(c, err, snap)
		return
	}
	dto.Success(c, snap)
}

// Submit 提交生成
// @Summary 生成组件
// @Description 校验输入并调用一次生成服务；生成进行中时返回 409
// @Tags Panels
// @Produce json
// @Param id path string true "面板 ID"
// @Success 200 {object} dto.Response[dto.PanelResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/panels/{id}/submit [post]
func (h *PanelHandler) Submit(c *gin.Context) {
	p, err := h.panels.Get(dto.BindID(c))
	if err != nil {
		dto.AppError(c, err)
		return
	}

	snap, err := p.Submit(c.Request.Context())
	if err != nil {
		dto.AppErrorWithData(c, err, snap)
		return
	}
	dto.Success(c, snap)
}

// Copy 复制源码
// @Summary 复制生成结果
// @Description 返回原始源码，由客户端写入剪贴板
// @Tags Panels
// @Produce json
// @Param id path string true "面板 ID"
// @Success 200 {object} dto.Response[dto.CopyResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/panels/{id}/copy [post]
func (h *PanelHandler) Copy(c *gin.Context) {
	p, err := h.panels.Get(dto.BindID(c))
	if err != nil {
		dto.AppError(c, err)
		return
	}

	code, err := p.Copy()
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, &dto.CopyResponse{Code: code, Copied: true})
}

// Download 下载源码
// @Summary 下载生成结果
// @Description 以 component.<扩展名> 纯文本附件返回
// @Tags Panels
// @Produce plain
// @Param id path string true "面板 ID"
// @Success 200 {string} string
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/panels/{id}/download [get]
func (h *PanelHandler) Download(c *gin.Context) {
	p, err := h.panels.Get(dto.BindID(c))
	if err != nil {
		dto.AppError(c, err)
		return
	}

	file, err := p.Download()
	if err != nil {
		dto.AppError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(file.FileName))
	c.Data(http.StatusOK, file.ContentType, []byte(file.Content))
}

// OpenPreview 以最近一次生成结果打开预览
// @Summary 预览生成结果
// @Tags Panels
// @Produce json
// @Param id path string true "面板 ID"
// @Success 201 {object} dto.Response[dto.PreviewResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/panels/{id}/preview [post]
func (h *PanelHandler) OpenPreview(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.panels.Get(dto.BindID(c))
	if err != nil {
		dto.AppError(c, err)
		return
	}

	code, framework, err := p.Result()
	if err != nil {
		dto.AppError(c, err)
		return
	}

	id, state, err := h.previews.Open(logger.WithContext(ctx, logger.PanelIDKey, p.ID()), code, framework)
	if err != nil {
		if !apperrors.IsAppError(err) {
			logger.Error(ctx, "failed to open preview", err)
		}
		dto.AppError(c, err)
		return
	}
	dto.Created(c, dto.ToPreviewResponse(id, state))
}
