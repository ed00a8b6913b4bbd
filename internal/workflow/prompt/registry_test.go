package prompt

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ComponentGen(t *testing.T) {
	r := NewRegistry()
	tpl, err := r.ChatTemplate(PromptComponentGenV1)
	require.NoError(t, err)

	again, err := r.ChatTemplate(PromptComponentGenV1)
	require.NoError(t, err)
	assert.Same(t, tpl, again)

	msgs, err := tpl.Format(context.Background(), map[string]any{
		"framework":      "HTML & CSS",
		"description":    "A pricing card",
		"framework_hint": "Inline styles only.",
	})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, schema.System, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "Output ONLY the raw code")
	assert.Equal(t, schema.User, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "Framework/Language: HTML & CSS")
	assert.Contains(t, msgs[1].Content, "Component Description: A pricing card")
	assert.Contains(t, msgs[1].Content, "Inline styles only.")
}

func TestRegistry_UnknownID(t *testing.T) {
	_, err := NewRegistry().ChatTemplate("nope")
	assert.Error(t, err)

	var nilRegistry *Registry
	_, err = nilRegistry.ChatTemplate(PromptComponentGenV1)
	assert.Error(t, err)
}
