package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("ZCOMP_SET", "value")

	assert.Equal(t, "a value b", expandEnv("a ${ZCOMP_SET} b"))
	assert.Equal(t, "fallback", expandEnv("${ZCOMP_UNSET_VAR:fallback}"))
	assert.Equal(t, "", expandEnv("${ZCOMP_UNSET_VAR:}"))
	assert.Equal(t, "${ZCOMP_UNSET_VAR}", expandEnv("${ZCOMP_UNSET_VAR}"))
}

func TestLoadFromAppliesDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	dir := t.TempDir()

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "z-comp-ai-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	assert.Equal(t, "openai", cfg.LLM.DefaultProvider)
	assert.Equal(t, "Component", cfg.Features.Compile.ComponentName)
	assert.Equal(t, 300*time.Millisecond, cfg.Features.Preview.ExitTransition)
	assert.Equal(t, 2500*time.Millisecond, cfg.Features.Panel.FeedbackWindow)
	assert.False(t, cfg.Features.Generation.ExposeServiceErrors)
	assert.True(t, cfg.Features.Generation.StripCodeFences)
	assert.False(t, cfg.Cache.Redis.Enabled)
}

func TestLoadFromMergesEnvironmentFile(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("ZCOMP_MODEL", "gpt-test")
	dir := t.TempDir()

	writeFile(t, dir, "config.yaml", `
llm:
  default_provider: openai
  providers:
    openai:
      model: ${ZCOMP_MODEL:gpt-4o-mini}
features:
  generation:
    expose_service_errors: false
`)
	writeFile(t, dir, "config.staging.yaml", `
features:
  generation:
    expose_service_errors: true
`)

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.App.Env)
	assert.Equal(t, "gpt-test", cfg.LLM.Providers["openai"].Model)
	assert.True(t, cfg.Features.Generation.ExposeServiceErrors)
}

func TestValidateRejectsUnknownDefaultProvider(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	cfg.LLM.DefaultProvider = "missing"
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestValidateRejectsBadRuntimeURL(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	cfg.Features.Preview.Runtime.ReactURL = "not a url"
	assert.Error(t, Validate(cfg))
}
