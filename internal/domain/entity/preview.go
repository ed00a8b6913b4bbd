package entity

import "fmt"

// ViewMode 预览视口预设
type ViewMode string

const (
	ViewDesktop ViewMode = "desktop"
	ViewTablet  ViewMode = "tablet"
	ViewMobile  ViewMode = "mobile"
)

// ParseViewMode 解析视口预设
func ParseViewMode(s string) (ViewMode, error) {
	switch m := ViewMode(s); m {
	case ViewDesktop, ViewTablet, ViewMobile:
		return m, nil
	default:
		return "", fmt.Errorf("unknown view mode %q", s)
	}
}

// MaxWidth 渲染框最大宽度（像素），0 表示不限制
func (m ViewMode) MaxWidth() int {
	switch m {
	case ViewTablet:
		return 768
	case ViewMobile:
		return 420
	default:
		return 0
	}
}

// PreviewPhase 预览面状态
type PreviewPhase string

const (
	PhaseIdle            PreviewPhase = "idle"
	PhaseHTMLPassthrough PreviewPhase = "html-passthrough"
	PhaseJSXCompiled     PreviewPhase = "jsx-compiled"
	PhaseJSXFailed       PreviewPhase = "jsx-failed"
	PhaseUnsupported     PreviewPhase = "unsupported"
	PhaseClosing         PreviewPhase = "closing"
)

// Rendered 是否有可渲染文档
func (p PreviewPhase) Rendered() bool {
	return p == PhaseHTMLPassthrough || p == PhaseJSXCompiled
}

// PreviewState 预览派生状态；Document 与 CompileError 至多一个非空
type PreviewState struct {
	Phase        PreviewPhase `json:"phase"`
	ViewMode     ViewMode     `json:"view_mode"`
	Document     string       `json:"-"`
	CompileError string       `json:"compile_error,omitempty"`
	// Source 与 Language 用于不可渲染框架的只读源码展示
	Source   string `json:"source,omitempty"`
	Language string `json:"language,omitempty"`
}
