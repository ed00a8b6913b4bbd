package chain

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wfmodel "z-comp-ai-api/internal/workflow/model"
)

type fakeChatModel struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
	input []*schema.Message
}

func (m *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.input = input
	if m.err != nil {
		return nil, m.err
	}
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

type fakeFactory struct {
	model    model.BaseChatModel
	err      error
	provider string
}

func (f *fakeFactory) Get(_ context.Context, name string) (model.BaseChatModel, error) {
	f.provider = name
	if f.err != nil {
		return nil, f.err
	}
	return f.model, nil
}

func TestComponentChain_Invoke(t *testing.T) {
	cm := &fakeChatModel{reply: "```jsx\nfunction Component() { return <div/>; }\n```"}
	factory := &fakeFactory{model: cm}
	c := NewComponentChain(factory, nil, ComponentChainOptions{StripCodeFences: true})

	out, err := c.Invoke(context.Background(), &wfmodel.ComponentGenerateInput{
		Provider:      "gemini",
		Framework:     "JSX with TailwindCSS",
		FrameworkHint: "Name it Component.",
		Description:   "  an empty div  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "function Component() { return <div/>; }", out.Code)
	assert.Equal(t, "jsx", out.Language)
	assert.True(t, out.FenceStripped)

	assert.Equal(t, 1, cm.calls)
	assert.Equal(t, "gemini", factory.provider)
	require.Len(t, cm.input, 2)
	assert.Contains(t, cm.input[1].Content, "Framework/Language: JSX with TailwindCSS")
	assert.Contains(t, cm.input[1].Content, "Component Description: an empty div\n")
	assert.Contains(t, cm.input[1].Content, "Name it Component.")
}

func TestComponentChain_KeepsFenceWhenDisabled(t *testing.T) {
	reply := "```html\n<p>x</p>\n```"
	c := NewComponentChain(&fakeFactory{model: &fakeChatModel{reply: reply}}, nil, ComponentChainOptions{})

	out, err := c.Invoke(context.Background(), &wfmodel.ComponentGenerateInput{Framework: "HTML & CSS", Description: "p"})
	require.NoError(t, err)
	assert.Equal(t, reply, out.Code)
	assert.False(t, out.FenceStripped)
}

func TestComponentChain_DefaultHint(t *testing.T) {
	cm := &fakeChatModel{reply: "print('hi')"}
	c := NewComponentChain(&fakeFactory{model: cm}, nil, ComponentChainOptions{StripCodeFences: true})

	_, err := c.Invoke(context.Background(), &wfmodel.ComponentGenerateInput{Framework: "Python & Flask", Description: "hello"})
	require.NoError(t, err)
	assert.Contains(t, cm.input[1].Content, noFrameworkHint)
}

func TestComponentChain_Errors(t *testing.T) {
	ctx := context.Background()
	in := &wfmodel.ComponentGenerateInput{Framework: "HTML & CSS", Description: "x"}

	t.Run("model error", func(t *testing.T) {
		c := NewComponentChain(&fakeFactory{model: &fakeChatModel{err: errors.New("quota exceeded")}}, nil, ComponentChainOptions{})
		_, err := c.Invoke(ctx, in)
		assert.ErrorContains(t, err, "quota exceeded")
	})

	t.Run("factory error", func(t *testing.T) {
		c := NewComponentChain(&fakeFactory{err: errors.New("provider missing")}, nil, ComponentChainOptions{})
		_, err := c.Invoke(ctx, in)
		assert.ErrorContains(t, err, "provider missing")
	})

	t.Run("empty output", func(t *testing.T) {
		c := NewComponentChain(&fakeFactory{model: &fakeChatModel{reply: "```\n\n```"}}, nil, ComponentChainOptions{StripCodeFences: true})
		_, err := c.Invoke(ctx, in)
		assert.ErrorContains(t, err, "empty output")
	})

	t.Run("not configured", func(t *testing.T) {
		_, err := NewComponentChain(nil, nil, ComponentChainOptions{}).Invoke(ctx, in)
		assert.Error(t, err)
	})
}
