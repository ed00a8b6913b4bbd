// Package generation 调用外部 LLM 将描述转换为组件源码
package generation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"z-comp-ai-api/internal/domain/entity"
	wfchain "z-comp-ai-api/internal/workflow/chain"
	wfmodel "z-comp-ai-api/internal/workflow/model"
	wfnode "z-comp-ai-api/internal/workflow/node"
	workflowport "z-comp-ai-api/internal/workflow/port"
	workflowprompt "z-comp-ai-api/internal/workflow/prompt"
	apperrors "z-comp-ai-api/pkg/errors"
	"z-comp-ai-api/pkg/logger"
	"z-comp-ai-api/pkg/metrics"
	"z-comp-ai-api/pkg/tracer"
)

// Transformer 单次生成，不重试
type Transformer interface {
	Transform(ctx context.Context, framework entity.FrameworkOption, description string) (string, error)
}

// Config LLMTransformer 配置
type Config struct {
	// Provider 使用的提供商，为空时取默认
	Provider        string
	Timeout         time.Duration
	StripCodeFences bool
}

// LLMTransformer 基于 Eino 生成链的实现
type LLMTransformer struct {
	chain *wfchain.ComponentChain
	cfg   Config
}

// NewLLMTransformer 创建转换器
func NewLLMTransformer(factory workflowport.ChatModelFactory, registry *workflowprompt.Registry, cfg Config) *LLMTransformer {
	return &LLMTransformer{
		chain: wfchain.NewComponentChain(factory, registry, wfchain.ComponentChainOptions{
			StripCodeFences: cfg.StripCodeFences,
		}),
		cfg: cfg,
	}
}

// Transform 生成源码；失败统一包装为 ErrLLMCallFailed
func (t *LLMTransformer) Transform(ctx context.Context, framework entity.FrameworkOption, description string) (string, error) {
	ctx, span := tracer.Start(ctx, "generation.Transform")
	defer span.End()
	span.SetAttributes(
		attribute.String("component.framework", framework.Value),
		attribute.Int("component.description_runes", len([]rune(description))),
	)

	if t.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := t.chain.Invoke(ctx, &wfmodel.ComponentGenerateInput{
		Provider:      t.cfg.Provider,
		Framework:     framework.Value,
		FrameworkHint: framework.PromptHint,
		Description:   description,
	})
	metrics.GenerationDuration.WithLabelValues(framework.Value).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.GenerationTotal.WithLabelValues(framework.Value, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error(ctx, "component generation failed", err,
			"framework", framework.Value,
			"description", wfnode.TruncateByRunes(description, 80),
		)
		return "", apperrors.ErrLLMCallFailed.WithError(err)
	}

	metrics.GenerationTotal.WithLabelValues(framework.Value, "success").Inc()
	metrics.GeneratedCodeSize.WithLabelValues(framework.Value).Observe(float64(len(out.Code)))
	span.SetAttributes(
		attribute.Int("component.code_bytes", len(out.Code)),
		attribute.Bool("component.fence_stripped", out.FenceStripped),
	)
	if out.FenceStripped {
		logger.Debug(ctx, "stripped code fence from model output", "language", out.Language)
	}
	return out.Code, nil
}
