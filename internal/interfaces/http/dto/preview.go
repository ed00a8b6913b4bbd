package dto

import (
	"z-comp-ai-api/internal/domain/entity"
)

// PreviewResponse 预览状态
type PreviewResponse struct {
	ID       string `json:"id"`
	Phase    string `json:"phase"`
	ViewMode string `json:"view_mode"`
	// MaxWidth 渲染框最大宽度（像素），0 表示占满
	MaxWidth     int    `json:"max_width"`
	CompileError string `json:"compile_error,omitempty"`
	Source       string `json:"source,omitempty"`
	Language     string `json:"language,omitempty"`
	// DocumentURL 沙箱 iframe 加载地址，仅可渲染时返回
	DocumentURL string `json:"document_url,omitempty"`
}

// ToPreviewResponse 转换预览状态
func ToPreviewResponse(id string, st entity.PreviewState) *PreviewResponse {
	resp := &PreviewResponse{
		ID:           id,
		Phase:        string(st.Phase),
		ViewMode:     string(st.ViewMode),
		MaxWidth:     st.ViewMode.MaxWidth(),
		CompileError: st.CompileError,
		Source:       st.Source,
		Language:     st.Language,
	}
	if st.Phase.Rendered() {
		resp.DocumentURL = "/preview/" + id
	}
	return resp
}
