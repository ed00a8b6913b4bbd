package preview

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"z-comp-ai-api/internal/application/compile"
	"z-comp-ai-api/internal/domain/entity"
	"z-comp-ai-api/internal/domain/repository"
	apperrors "z-comp-ai-api/pkg/errors"
	"z-comp-ai-api/pkg/logger"
	"z-comp-ai-api/pkg/metrics"
)

var tracer = otel.Tracer("preview")

// ServiceConfig 预览服务配置
type ServiceConfig struct {
	ExitTransition time.Duration
	DocumentTTL    time.Duration
}

// Service 管理预览面并持久化可渲染文档
type Service struct {
	compiler  compile.Compiler
	assembler *Assembler
	docs      repository.PreviewDocumentRepository
	exit      time.Duration
	ttl       time.Duration
	surfaces  *cache.Cache
}

// NewService 创建预览服务
func NewService(compiler compile.Compiler, assembler *Assembler, docs repository.PreviewDocumentRepository, cfg ServiceConfig) *Service {
	ttl := cfg.DocumentTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	exit := cfg.ExitTransition
	if exit < 0 {
		exit = DefaultExitTransition
	}

	surfaces := cache.New(ttl, ttl/2)
	surfaces.OnEvicted(func(_ string, v interface{}) {
		s := v.(*Surface)
		s.Stop()
		if s.State().Phase != entity.PhaseIdle {
			metrics.PreviewsOpen.Dec()
		}
	})

	return &Service{
		compiler:  compiler,
		assembler: assembler,
		docs:      docs,
		exit:      exit,
		ttl:       ttl,
		surfaces:  surfaces,
	}
}

// Open 新建预览面并加载源码
func (s *Service) Open(ctx context.Context, code string, framework entity.FrameworkOption) (string, entity.PreviewState, error) {
	id := uuid.NewString()
	ctx = logger.WithContext(ctx, logger.PreviewIDKey, id)

	surface := NewSurface(id, s.compiler, s.assembler,
		WithExitTransition(s.exit),
		WithDetachHook(s.detached),
	)

	state, err := s.load(ctx, surface, code, framework)
	if err != nil {
		// 预览面未登记即被丢弃，撤销 Load 时的计数
		if surface.State().Phase != entity.PhaseIdle {
			metrics.PreviewsOpen.Dec()
		}
		return "", entity.PreviewState{}, err
	}
	s.surfaces.SetDefault(id, surface)

	logger.Info(ctx, "preview opened", "framework", framework.Value, "phase", string(state.Phase))
	return id, state, nil
}

// Reload 以新的源码重新计算已有预览面
func (s *Service) Reload(ctx context.Context, id, code string, framework entity.FrameworkOption) (entity.PreviewState, error) {
	surface, err := s.surface(id)
	if err != nil {
		return entity.PreviewState{}, err
	}
	ctx = logger.WithContext(ctx, logger.PreviewIDKey, id)
	return s.load(ctx, surface, code, framework)
}

func (s *Service) load(ctx context.Context, surface *Surface, code string, framework entity.FrameworkOption) (entity.PreviewState, error) {
	ctx, span := tracer.Start(ctx, "preview.Load",
		trace.WithAttributes(
			attribute.String("preview.id", surface.ID()),
			attribute.String("preview.framework", framework.Value),
		))
	defer span.End()

	state, err := surface.Load(code, framework)
	if err != nil {
		span.RecordError(err)
		return state, err
	}
	span.SetAttributes(attribute.String("preview.phase", string(state.Phase)))

	if state.Phase == entity.PhaseJSXFailed {
		logger.Warn(ctx, "jsx compilation failed", "compile_error", state.CompileError)
	}

	if state.Document == "" {
		if err := s.docs.Delete(ctx, surface.ID()); err != nil {
			logger.Warn(ctx, "failed to drop stale preview document", "error", err.Error())
		}
		return state, nil
	}
	if err := s.docs.Save(ctx, surface.ID(), state.Document, s.ttl); err != nil {
		span.RecordError(err)
		logger.Error(ctx, "failed to store preview document", err)
		return state, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to store preview document")
	}
	return state, nil
}

// Get 当前预览状态
func (s *Service) Get(id string) (entity.PreviewState, error) {
	surface, err := s.surface(id)
	if err != nil {
		return entity.PreviewState{}, err
	}
	return surface.State(), nil
}

// SetViewMode 切换视口预设
func (s *Service) SetViewMode(id string, mode entity.ViewMode) (entity.PreviewState, error) {
	surface, err := s.surface(id)
	if err != nil {
		return entity.PreviewState{}, err
	}
	return surface.SetViewMode(mode)
}

// Dismiss 开始关闭，返回 closing 状态
func (s *Service) Dismiss(ctx context.Context, id string) (entity.PreviewState, error) {
	surface, err := s.surface(id)
	if err != nil {
		return entity.PreviewState{}, err
	}
	if err := surface.Dismiss(); err != nil {
		return surface.State(), err
	}
	logger.Debug(logger.WithContext(ctx, logger.PreviewIDKey, id), "preview closing", "exit_transition", s.exit.String())
	return surface.State(), nil
}

// Document 可渲染文档，供 iframe 加载
func (s *Service) Document(ctx context.Context, id string) (string, error) {
	return s.docs.Get(ctx, id)
}

// Close 停止所有未完成的关闭动画
func (s *Service) Close() {
	for _, item := range s.surfaces.Items() {
		item.Object.(*Surface).Stop()
	}
}

func (s *Service) surface(id string) (*Surface, error) {
	v, ok := s.surfaces.Get(id)
	if !ok {
		return nil, apperrors.ErrPreviewNotFound
	}
	surface := v.(*Surface)
	// 访问即续期；已脱离的预览面可能在 Get 与续期之间被删除后又被写回
	s.surfaces.SetDefault(id, surface)
	if surface.State().Phase == entity.PhaseIdle {
		s.surfaces.Delete(id)
		return nil, apperrors.ErrPreviewNotFound
	}
	return surface, nil
}

// detached 关闭动画结束后清理文档与登记
func (s *Service) detached(id string) {
	ctx := logger.WithContext(context.Background(), logger.PreviewIDKey, id)
	if err := s.docs.Delete(ctx, id); err != nil {
		logger.Warn(ctx, "failed to delete preview document", "error", err.Error())
	}
	s.surfaces.Delete(id)
	logger.Debug(ctx, "preview detached")
}
