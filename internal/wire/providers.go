// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"z-comp-ai-api/internal/application/compile"
	"z-comp-ai-api/internal/application/generation"
	"z-comp-ai-api/internal/application/panel"
	"z-comp-ai-api/internal/application/preview"
	"z-comp-ai-api/internal/config"
	"z-comp-ai-api/internal/domain/repository"
	"z-comp-ai-api/internal/infrastructure/llm"
	"z-comp-ai-api/internal/infrastructure/persistence/memory"
	"z-comp-ai-api/internal/infrastructure/persistence/redis"
	"z-comp-ai-api/internal/interfaces/http/handler"
	"z-comp-ai-api/internal/interfaces/http/middleware"
	"z-comp-ai-api/internal/interfaces/http/router"
	workflowport "z-comp-ai-api/internal/workflow/port"
	workflowprompt "z-comp-ai-api/internal/workflow/prompt"
	"z-comp-ai-api/pkg/logger"
)

// InfraSet Redis 及其进程内替代
var InfraSet = wire.NewSet(
	ProvideRedisClientOptional,
	ProvidePreviewDocumentRepository,
	ProvideRateLimiter,
)

// PreviewSet 编译与预览
var PreviewSet = wire.NewSet(
	ProvideCompiler,
	ProvideAssembler,
	ProvidePreviewService,
)

// GenerationSet 生成链路与面板
var GenerationSet = wire.NewSet(
	ProvideChatModelFactory,
	workflowprompt.NewRegistry,
	ProvideTransformer,
	ProvidePanelStore,
)

// RouterSet 处理器与路由
var RouterSet = wire.NewSet(
	ProvideHealthHandler,
	handler.NewFrameworkHandler,
	handler.NewPanelHandler,
	handler.NewPreviewHandler,
	handler.NewShellHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// ProvideRedisClientOptional 未启用 Redis 时返回 nil，由各组件退化为进程内实现
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		logger.Info(ctx, "redis disabled, using in-process stores")
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvidePreviewDocumentRepository 预览文档存储
func ProvidePreviewDocumentRepository(cfg *config.Config, client *redis.Client) repository.PreviewDocumentRepository {
	ttl := cfg.Features.Preview.DocumentTTL
	if client == nil {
		return memory.NewPreviewDocumentStore(ttl)
	}
	return redis.NewPreviewDocumentStore(client, ttl)
}

// ProvideRateLimiter 生成接口限流器；未启用时返回 nil
func ProvideRateLimiter(cfg *config.Config, client *redis.Client) middleware.RateLimiter {
	rl := cfg.Security.RateLimit
	if !rl.Enabled {
		return nil
	}
	if client == nil {
		return middleware.NewLocalRateLimiter(rl.Burst)
	}
	return redis.NewRateLimiter(client)
}

// ProvideCompiler 带缓存的 JSX 编译器
func ProvideCompiler(cfg *config.Config) compile.Compiler {
	c := cfg.Features.Compile
	adapter := compile.NewAdapter(compile.Options{
		ComponentName:     c.ComponentName,
		VerifyExportShape: c.VerifyExportShape,
	})
	return compile.NewCachedCompiler(adapter, c.CacheTTL)
}

// ProvideAssembler 预览文档组装器
func ProvideAssembler(cfg *config.Config) *preview.Assembler {
	rt := cfg.Features.Preview.Runtime
	return preview.NewAssembler(preview.RuntimeConfig{
		ReactURL:    rt.ReactURL,
		ReactDOMURL: rt.ReactDOMURL,
		StylesURL:   rt.StylesURL,
	}, cfg.Features.Compile.ComponentName)
}

// ProvidePreviewService 预览服务，退出时停止未完成的关闭动画
func ProvidePreviewService(cfg *config.Config, compiler compile.Compiler, assembler *preview.Assembler, docs repository.PreviewDocumentRepository) (*preview.Service, func()) {
	svc := preview.NewService(compiler, assembler, docs, preview.ServiceConfig{
		ExitTransition: cfg.Features.Preview.ExitTransition,
		DocumentTTL:    cfg.Features.Preview.DocumentTTL,
	})
	return svc, svc.Close
}

// ProvideChatModelFactory LLM ChatModel 工厂
func ProvideChatModelFactory(cfg *config.Config) workflowport.ChatModelFactory {
	return llm.NewEinoFactory(cfg)
}

// ProvideTransformer 生成服务客户端
func ProvideTransformer(cfg *config.Config, factory workflowport.ChatModelFactory, registry *workflowprompt.Registry) generation.Transformer {
	g := cfg.Features.Generation
	return generation.NewLLMTransformer(factory, registry, generation.Config{
		Provider:        cfg.LLM.DefaultProvider,
		Timeout:         g.Timeout,
		StripCodeFences: g.StripCodeFences,
	})
}

// ProvidePanelStore 生成面板存储
func ProvidePanelStore(cfg *config.Config, transformer generation.Transformer) *panel.Store {
	f := cfg.Features
	return panel.NewStore(transformer, panel.Options{
		ExposeServiceErrors:  f.Generation.ExposeServiceErrors,
		FeedbackWindow:       f.Panel.FeedbackWindow,
		MaxDescriptionLength: f.Generation.MaxDescriptionLength,
	}, f.Panel.IdleTTL)
}

// ProvideHealthHandler 健康检查处理器
func ProvideHealthHandler(cfg *config.Config, client *redis.Client) *handler.HealthHandler {
	return handler.NewHealthHandler(client, cfg.App.Version)
}
