// Package service 定义跨层共享的 LLM 调用上下文
package service

import (
	"context"
	"strings"
)

type llmCtxKey string

const (
	llmCtxKeyWorkflow  llmCtxKey = "llm_workflow"
	llmCtxKeyProvider  llmCtxKey = "llm_provider"
	llmCtxKeyFramework llmCtxKey = "llm_framework"
)

// WorkflowComponentGenerate 组件生成工作流名
const WorkflowComponentGenerate = "component_generate"

const unknown = "unknown"

func withValue(ctx context.Context, key llmCtxKey, value string) context.Context {
	if ctx == nil {
		return nil
	}
	v := strings.TrimSpace(value)
	if v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func valueOf(ctx context.Context, key llmCtxKey) string {
	if ctx == nil {
		return unknown
	}
	s, ok := ctx.Value(key).(string)
	if !ok || s == "" {
		return unknown
	}
	return s
}

// WithWorkflow 标记调用所属工作流
func WithWorkflow(ctx context.Context, workflow string) context.Context {
	return withValue(ctx, llmCtxKeyWorkflow, workflow)
}

// WithProvider 标记调用使用的提供商
func WithProvider(ctx context.Context, provider string) context.Context {
	return withValue(ctx, llmCtxKeyProvider, provider)
}

// WithFramework 标记生成目标框架
func WithFramework(ctx context.Context, framework string) context.Context {
	return withValue(ctx, llmCtxKeyFramework, framework)
}

// WithGeneration 一次性写入工作流、提供商与框架
func WithGeneration(ctx context.Context, provider, framework string) context.Context {
	return WithFramework(WithProvider(WithWorkflow(ctx, WorkflowComponentGenerate), provider), framework)
}

func WorkflowFromContext(ctx context.Context) string  { return valueOf(ctx, llmCtxKeyWorkflow) }
func ProviderFromContext(ctx context.Context) string  { return valueOf(ctx, llmCtxKeyProvider) }
func FrameworkFromContext(ctx context.Context) string { return valueOf(ctx, llmCtxKeyFramework) }
