// Package panel 维护每个会话的生成面板状态
package panel

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"z-comp-ai-api/internal/application/generation"
	"z-comp-ai-api/internal/domain/entity"
	apperrors "z-comp-ai-api/pkg/errors"
	"z-comp-ai-api/pkg/logger"
)

// DefaultFeedbackWindow 复制/下载成功提示持续时间
const DefaultFeedbackWindow = 2500 * time.Millisecond

// DownloadContentType 下载文件类型
const DownloadContentType = "text/plain"

// Options 面板行为选项
type Options struct {
	// ExposeServiceErrors 失败提示使用上游错误原文
	ExposeServiceErrors bool
	FeedbackWindow      time.Duration
	// MaxDescriptionLength 描述最大字符数，0 不限制
	MaxDescriptionLength int
	// Now 时钟，测试中可替换
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.FeedbackWindow <= 0 {
		o.FeedbackWindow = DefaultFeedbackWindow
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Snapshot 面板状态快照
type Snapshot struct {
	ID          string `json:"id"`
	Framework   string `json:"framework"`
	Description string `json:"description"`
	Loading     bool   `json:"loading"`
	Error       string `json:"error,omitempty"`
	Code        string `json:"code,omitempty"`
	// ResultFramework 生成结果对应的框架，预览与下载以它为准
	ResultFramework string `json:"result_framework,omitempty"`
	Generation      uint64 `json:"generation"`
	Copied          bool   `json:"copied"`
	Downloaded      bool   `json:"downloaded"`
}

// Download 下载内容
type Download struct {
	FileName    string
	ContentType string
	Content     string
}

// Panel 生成面板；同一时刻至多一个生成请求在途
type Panel struct {
	mu sync.Mutex

	id          string
	transformer generation.Transformer
	opts        Options

	framework   entity.FrameworkOption
	description string
	generation  uint64
	loading     bool
	errMsg      string

	result          entity.GenerationResult
	resultFramework entity.FrameworkOption

	copiedUntil     time.Time
	downloadedUntil time.Time
}

// New 创建面板
func New(id string, transformer generation.Transformer, opts Options) *Panel {
	return &Panel{
		id:          id,
		transformer: transformer,
		opts:        opts.withDefaults(),
	}
}

// ID 面板标识
func (p *Panel) ID() string {
	return p.id
}

// SetInput 更新输入；代号递增，在途响应随之过期
func (p *Panel) SetInput(framework, description string) (Snapshot, error) {
	var fw entity.FrameworkOption
	if v := strings.TrimSpace(framework); v != "" {
		f, ok := entity.LookupFramework(v)
		if !ok {
			return p.Snapshot(), apperrors.ErrInvalidParam.WithDetail("unknown framework: " + v)
		}
		fw = f
	}
	if limit := p.opts.MaxDescriptionLength; limit > 0 && utf8.RuneCountInString(description) > limit {
		return p.Snapshot(), apperrors.ErrInvalidParam.WithDetail("description is too long")
	}

	p.mu.Lock()
	p.framework = fw
	p.description = description
	p.generation++
	p.mu.Unlock()

	return p.Snapshot(), nil
}

// Submit 校验输入并调用一次生成服务
func (p *Panel) Submit(ctx context.Context) (Snapshot, error) {
	ctx = logger.WithContext(ctx, logger.PanelIDKey, p.id)

	p.mu.Lock()
	req := entity.GenerationRequest{
		Framework:   p.framework,
		Description: p.description,
		Generation:  p.generation,
	}
	if !req.Valid() {
		p.errMsg = apperrors.ErrValidationFailed.Message
		snap := p.snapshotLocked()
		p.mu.Unlock()
		return snap, apperrors.ErrValidationFailed
	}
	if p.loading {
		snap := p.snapshotLocked()
		p.mu.Unlock()
		return snap, apperrors.ErrGenerationInFlight
	}
	p.loading = true
	p.errMsg = ""
	p.result = entity.GenerationResult{}
	p.resultFramework = entity.FrameworkOption{}
	p.mu.Unlock()

	// 生成服务 panic 时同样要复位 loading
	defer func() {
		p.mu.Lock()
		p.loading = false
		p.mu.Unlock()
	}()

	ctx = logger.WithContext(ctx, logger.FrameworkKey, req.Framework.Value)
	code, err := p.transformer.Transform(ctx, req.Framework, req.Description)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.generation != req.Generation {
		logger.Warn(ctx, "discarding stale generation response",
			"request_generation", req.Generation,
			"current_generation", p.generation,
			"failed", err != nil,
		)
		return p.snapshotWith(false), nil
	}

	if err != nil {
		logger.Error(ctx, "generation request failed", err)
		msg := apperrors.ErrGenerationFailed.Message
		if p.opts.ExposeServiceErrors {
			msg = err.Error()
		}
		p.errMsg = msg
		p.result = entity.Failed(msg)
		return p.snapshotWith(false), apperrors.ErrGenerationFailed.WithDetail(msg).WithError(err)
	}

	p.result = entity.Succeeded(code)
	p.resultFramework = req.Framework
	logger.Info(ctx, "component generated", "code_bytes", len(code))
	return p.snapshotWith(false), nil
}

// Copy 返回源码供客户端写入剪贴板，并点亮 copied 提示
func (p *Panel) Copy() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.result.OK() {
		return "", apperrors.ErrResultNotFound
	}
	p.copiedUntil = p.opts.Now().Add(p.opts.FeedbackWindow)
	return p.result.Code(), nil
}

// Download 以 component.<ext> 纯文本下载，并点亮 downloaded 提示
func (p *Panel) Download() (Download, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.result.OK() {
		return Download{}, apperrors.ErrResultNotFound
	}
	p.downloadedUntil = p.opts.Now().Add(p.opts.FeedbackWindow)
	return Download{
		FileName:    p.resultFramework.DownloadName(),
		ContentType: DownloadContentType,
		Content:     p.result.Code(),
	}, nil
}

// Result 最近一次成功生成的源码与框架
func (p *Panel) Result() (string, entity.FrameworkOption, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.result.OK() {
		return "", entity.FrameworkOption{}, apperrors.ErrResultNotFound
	}
	return p.result.Code(), p.resultFramework, nil
}

// Snapshot 当前状态
func (p *Panel) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Panel) snapshotLocked() Snapshot {
	return p.snapshotWith(p.loading)
}

// snapshotWith Submit 返回时 loading 尚未在 defer 中清除
func (p *Panel) snapshotWith(loading bool) Snapshot {
	now := p.opts.Now()
	return Snapshot{
		ID:              p.id,
		Framework:       p.framework.Value,
		Description:     p.description,
		Loading:         loading,
		Error:           p.errMsg,
		Code:            p.result.Code(),
		ResultFramework: p.resultFramework.Value,
		Generation:      p.generation,
		Copied:          now.Before(p.copiedUntil),
		Downloaded:      now.Before(p.downloadedUntil),
	}
}
