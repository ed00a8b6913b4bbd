package preview

import (
	"errors"
	"strings"
	"sync"
	"time"

	"z-comp-ai-api/internal/application/compile"
	"z-comp-ai-api/internal/domain/entity"
	apperrors "z-comp-ai-api/pkg/errors"
	"z-comp-ai-api/pkg/metrics"
)

// DefaultExitTransition 关闭动画时长
const DefaultExitTransition = 300 * time.Millisecond

// Surface 单个预览面的状态机
//
// 任意状态 Load 后先回到 idle 再重新派生；closing 期间拒绝 Load 与再次 Dismiss，
// 动画结束后回到 idle 并触发 onDetach。
type Surface struct {
	mu sync.Mutex

	id        string
	compiler  compile.Compiler
	assembler *Assembler
	exit      time.Duration
	onDetach  func(id string)

	state entity.PreviewState
	timer *time.Timer
}

// SurfaceOption 预览面选项
type SurfaceOption func(*Surface)

// WithExitTransition 设置关闭动画时长
func WithExitTransition(d time.Duration) SurfaceOption {
	return func(s *Surface) {
		s.exit = d
	}
}

// WithDetachHook 动画结束、预览面脱离后回调
func WithDetachHook(fn func(id string)) SurfaceOption {
	return func(s *Surface) {
		s.onDetach = fn
	}
}

// NewSurface 创建处于 idle 的预览面
func NewSurface(id string, compiler compile.Compiler, assembler *Assembler, opts ...SurfaceOption) *Surface {
	s := &Surface{
		id:        id,
		compiler:  compiler,
		assembler: assembler,
		exit:      DefaultExitTransition,
		state:     entity.PreviewState{Phase: entity.PhaseIdle, ViewMode: entity.ViewDesktop},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID 预览面标识
func (s *Surface) ID() string {
	return s.id
}

// Load 根据源码与框架重新计算预览状态
func (s *Surface) Load(code string, framework entity.FrameworkOption) (entity.PreviewState, error) {
	if strings.TrimSpace(code) == "" {
		return entity.PreviewState{}, apperrors.ErrInvalidParam.WithDetail("code is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase == entity.PhaseClosing {
		return s.state, apperrors.ErrDismissInProgress
	}

	wasOpen := s.state.Phase != entity.PhaseIdle
	next := entity.PreviewState{Phase: entity.PhaseIdle, ViewMode: s.state.ViewMode}

	category := framework.Category
	if category == "" {
		category = entity.CategoryOf(framework.Value)
	}

	switch category {
	case entity.CategoryHTML:
		next.Phase = entity.PhaseHTMLPassthrough
		next.Document = code
	case entity.CategoryJSX:
		script, err := s.compiler.Compile(code)
		if err != nil {
			next.Phase = entity.PhaseJSXFailed
			next.CompileError = compileMessage(err)
		} else {
			next.Phase = entity.PhaseJSXCompiled
			next.Document = s.assembler.Assemble(script)
		}
	default:
		next.Phase = entity.PhaseUnsupported
		next.Source = code
		next.Language = framework.Extension
	}

	s.state = next
	if !wasOpen {
		metrics.PreviewsOpen.Inc()
	}
	metrics.PreviewLoadTotal.WithLabelValues(string(next.Phase)).Inc()
	return s.state, nil
}

// SetViewMode 仅在有可渲染文档时切换视口，不会重新编译
func (s *Surface) SetViewMode(mode entity.ViewMode) (entity.PreviewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Phase.Rendered() {
		return s.state, apperrors.ErrViewportUnavailable
	}
	s.state.ViewMode = mode
	return s.state, nil
}

// Dismiss 进入 closing，动画结束后脱离
func (s *Surface) Dismiss() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state.Phase {
	case entity.PhaseIdle:
		return apperrors.ErrPreviewClosed
	case entity.PhaseClosing:
		return apperrors.ErrDismissInProgress
	}

	s.state.Phase = entity.PhaseClosing
	s.timer = time.AfterFunc(s.exit, s.detach)
	return nil
}

func (s *Surface) detach() {
	s.mu.Lock()
	if s.state.Phase != entity.PhaseClosing {
		s.mu.Unlock()
		return
	}
	s.state = entity.PreviewState{Phase: entity.PhaseIdle, ViewMode: s.state.ViewMode}
	s.timer = nil
	s.mu.Unlock()

	metrics.PreviewsOpen.Dec()
	if s.onDetach != nil {
		s.onDetach(s.id)
	}
}

// State 当前状态快照
func (s *Surface) State() entity.PreviewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Stop 停止未完成的关闭动画，用于进程退出
func (s *Surface) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func compileMessage(err error) string {
	var ce *compile.CompileError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}
