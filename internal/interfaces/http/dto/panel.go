package dto

import (
	"z-comp-ai-api/internal/application/panel"
	"z-comp-ai-api/internal/domain/entity"
)

// FrameworkResponse 框架选项
type FrameworkResponse struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Extension   string `json:"extension"`
	Category    string `json:"category"`
	Previewable bool   `json:"previewable"`
}

// FrameworkListResponse 框架目录
type FrameworkListResponse struct {
	Frameworks []*FrameworkResponse `json:"frameworks"`
}

// ToFrameworkListResponse 转换框架目录
func ToFrameworkListResponse(options []entity.FrameworkOption) *FrameworkListResponse {
	out := make([]*FrameworkResponse, 0, len(options))
	for _, f := range options {
		out = append(out, &FrameworkResponse{
			Label:       f.Label,
			Value:       f.Value,
			Extension:   f.Extension,
			Category:    string(f.Category),
			Previewable: f.Previewable(),
		})
	}
	return &FrameworkListResponse{Frameworks: out}
}

// PanelResponse 面板状态
type PanelResponse = panel.Snapshot

// CopyResponse 复制内容，由客户端写入剪贴板
type CopyResponse struct {
	Code   string `json:"code"`
	Copied bool   `json:"copied"`
}
