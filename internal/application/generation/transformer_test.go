package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-comp-ai-api/internal/domain/entity"
	apperrors "z-comp-ai-api/pkg/errors"
)

type fakeChatModel struct {
	reply string
	err   error
	delay time.Duration
	calls int
}

func (m *fakeChatModel) Generate(ctx context.Context, _ []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.calls++
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
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

type staticFactory struct {
	model model.BaseChatModel
}

func (f staticFactory) Get(context.Context, string) (model.BaseChatModel, error) {
	return f.model, nil
}

func jsx(t *testing.T) entity.FrameworkOption {
	t.Helper()
	f, ok := entity.LookupFramework("JSX with TailwindCSS")
	require.True(t, ok)
	return f
}

func TestLLMTransformer_Transform(t *testing.T) {
	cm := &fakeChatModel{reply: "\n```jsx\nfunction Component() { return <b/>; }\n```\n"}
	tr := NewLLMTransformer(staticFactory{model: cm}, nil, Config{StripCodeFences: true})

	code, err := tr.Transform(context.Background(), jsx(t), "bold tag")
	require.NoError(t, err)
	assert.Equal(t, "function Component() { return <b/>; }", code)
	assert.Equal(t, 1, cm.calls)
}

func TestLLMTransformer_WrapsFailures(t *testing.T) {
	cm := &fakeChatModel{err: errors.New("upstream 500")}
	tr := NewLLMTransformer(staticFactory{model: cm}, nil, Config{})

	_, err := tr.Transform(context.Background(), jsx(t), "anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrLLMCallFailed))
	assert.Contains(t, err.Error(), "upstream 500")
	assert.Equal(t, 1, cm.calls)
}

func TestLLMTransformer_Timeout(t *testing.T) {
	cm := &fakeChatModel{reply: "x", delay: time.Second}
	tr := NewLLMTransformer(staticFactory{model: cm}, nil, Config{Timeout: 20 * time.Millisecond})

	start := time.Now()
	_, err := tr.Transform(context.Background(), jsx(t), "slow")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrLLMCallFailed))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}
