package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerationContext(t *testing.T) {
	ctx := WithGeneration(context.Background(), " openai ", "JSX with TailwindCSS")
	assert.Equal(t, WorkflowComponentGenerate, WorkflowFromContext(ctx))
	assert.Equal(t, "openai", ProviderFromContext(ctx))
	assert.Equal(t, "JSX with TailwindCSS", FrameworkFromContext(ctx))
}

func TestMissingValuesAreUnknown(t *testing.T) {
	ctx := WithProvider(context.Background(), "   ")
	assert.Equal(t, "unknown", ProviderFromContext(ctx))
}
