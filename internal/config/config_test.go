package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, v := range credentialVars {
		t.Setenv(v, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "impactsim", cfg.Name)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, 0.2, cfg.LLM.Temperature)
	assert.Equal(t, ":8090", cfg.Server.Addr)
	assert.Equal(t, "/v0", cfg.Server.BasePath)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	clearCredentialEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().LLM.Model, cfg.LLM.Model)
}

func TestLoadReadsYAML(t *testing.T) {
	clearCredentialEnv(t)
	path := filepath.Join(t.TempDir(), "impactsim.yaml")
	data := []byte("llm:\n  model: gemini-2.0-pro\n  timeout: 30s\nserver:\n  addr: \":9000\"\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-pro", cfg.LLM.Model)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.GetLLMTimeout())
}

func TestEnvOverrides(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("IMPACTSIM_MODEL", "gemini-experimental")
	t.Setenv("IMPACTSIM_ADDR", ":7070")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
	assert.Equal(t, "gemini-experimental", cfg.LLM.Model)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestCredentialPrecedence(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("API_KEY", "generic")
	t.Setenv("GEMINI_API_KEY", "specific")

	key, ok := DefaultEnvCredential().Resolve()
	require.True(t, ok)
	assert.Equal(t, "specific", key)
}

func TestCredentialsPreferConfiguredKey(t *testing.T) {
	clearCredentialEnv(t)
	cfg := DefaultConfig()
	cfg.LLM.APIKey = "from-yaml"

	key, ok := cfg.Credentials().Resolve()
	require.True(t, ok)
	assert.Equal(t, "from-yaml", key)
}

func TestValidateReportsMissingCredential(t *testing.T) {
	clearCredentialEnv(t)
	cfg := DefaultConfig()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credential")
}

func TestGetLLMTimeoutBadValueFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.Timeout = "not-a-duration"
	assert.Equal(t, 120*time.Second, cfg.GetLLMTimeout())
}
