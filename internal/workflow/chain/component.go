// Package chain 基于 Eino compose 的生成链
package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	llmctx "z-comp-ai-api/internal/domain/service"
	wfmodel "z-comp-ai-api/internal/workflow/model"
	wfnode "z-comp-ai-api/internal/workflow/node"
	workflowport "z-comp-ai-api/internal/workflow/port"
	workflowprompt "z-comp-ai-api/internal/workflow/prompt"
)

// ErrEmptyOutput 模型没有返回任何代码
var ErrEmptyOutput = errors.New("llm returned empty output")

const noFrameworkHint = "None beyond the rules above."

// ComponentChainOptions 生成链选项
type ComponentChainOptions struct {
	// StripCodeFences 移除包裹整段输出的 markdown 代码块
	StripCodeFences bool
}

// ComponentChain 模板 -> 模型 -> 后处理
type ComponentChain struct {
	factory  workflowport.ChatModelFactory
	registry *workflowprompt.Registry
	opts     ComponentChainOptions

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.ComponentGenerateInput, *wfmodel.ComponentGenerateOutput]
	chainErr  error
}

func NewComponentChain(factory workflowport.ChatModelFactory, registry *workflowprompt.Registry, opts ComponentChainOptions) *ComponentChain {
	if registry == nil {
		registry = workflowprompt.NewRegistry()
	}
	return &ComponentChain{factory: factory, registry: registry, opts: opts}
}

func (c *ComponentChain) Invoke(ctx context.Context, in *wfmodel.ComponentGenerateInput) (*wfmodel.ComponentGenerateOutput, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}

	chain, err := c.getChain()
	if err != nil {
		return nil, err
	}
	return chain.Invoke(ctx, in)
}

type componentChainState struct {
	In       *wfmodel.ComponentGenerateInput
	Messages []*schema.Message
	OutMsg   *schema.Message
}

func (c *ComponentChain) getChain() (compose.Runnable[*wfmodel.ComponentGenerateInput, *wfmodel.ComponentGenerateOutput], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *ComponentChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.ComponentGenerateInput, *wfmodel.ComponentGenerateOutput], error) {
	chain := compose.NewChain[*wfmodel.ComponentGenerateInput, *wfmodel.ComponentGenerateOutput]()

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, in *wfmodel.ComponentGenerateInput) (*componentChainState, error) {
			msgs, err := c.formatMessages(ctx, in)
			if err != nil {
				return nil, err
			}
			return &componentChainState{In: in, Messages: msgs}, nil
		}),
		compose.WithNodeName("component.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *componentChainState) (*componentChainState, error) {
			provider := strings.TrimSpace(st.In.Provider)
			ctx = llmctx.WithGeneration(ctx, provider, st.In.Framework)

			chatModel, err := c.factory.Get(ctx, provider)
			if err != nil {
				return nil, err
			}
			outMsg, err := chatModel.Generate(ctx, st.Messages, buildModelOptions(st.In)...)
			if err != nil {
				return nil, err
			}
			if outMsg == nil {
				return nil, ErrEmptyOutput
			}
			st.OutMsg = outMsg
			return st, nil
		}),
		compose.WithNodeName("component.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *componentChainState) (*wfmodel.ComponentGenerateOutput, error) {
			return c.finalize(st.OutMsg)
		}),
		compose.WithNodeName("component.finalize"),
	)

	return chain.Compile(ctx)
}

func (c *ComponentChain) formatMessages(ctx context.Context, in *wfmodel.ComponentGenerateInput) ([]*schema.Message, error) {
	tpl, err := c.registry.ChatTemplate(workflowprompt.PromptComponentGenV1)
	if err != nil {
		return nil, err
	}
	hint := strings.TrimSpace(in.FrameworkHint)
	if hint == "" {
		hint = noFrameworkHint
	}
	return tpl.Format(ctx, map[string]any{
		"framework":      strings.TrimSpace(in.Framework),
		"description":    strings.TrimSpace(in.Description),
		"framework_hint": hint,
	})
}

func (c *ComponentChain) finalize(msg *schema.Message) (*wfmodel.ComponentGenerateOutput, error) {
	out := &wfmodel.ComponentGenerateOutput{}
	code := strings.TrimSpace(wfnode.NormalizeNewlines(msg.Content))
	if c.opts.StripCodeFences {
		code, out.Language, out.FenceStripped = wfnode.StripCodeFence(code)
	}
	if code == "" {
		return nil, ErrEmptyOutput
	}
	out.Code = code
	return out, nil
}

func buildModelOptions(in *wfmodel.ComponentGenerateInput) []model.Option {
	opts := make([]model.Option, 0, 2)
	if in.Temperature != nil {
		opts = append(opts, model.WithTemperature(*in.Temperature))
	}
	if in.MaxTokens != nil {
		opts = append(opts, model.WithMaxTokens(*in.MaxTokens))
	}
	return opts
}
