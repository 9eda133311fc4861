package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_DisabledOllama(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.False(t, cfg.Configured())
	assert.Equal(t, 30000, cfg.TaskTimeout(TaskReport))
}

func TestLoadConfig_TaskTimeoutOverrides(t *testing.T) {
	t.Setenv("NEXUS_LLM_TIMEOUT_MS", "9000")
	t.Setenv("NEXUS_LLM_REPORT_TIMEOUT_MS", "15000")
	t.Setenv("NEXUS_LLM_CONTRACT_DRAFT_TIMEOUT_MS", "7000")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskReport))
	assert.Equal(t, 7000, cfg.TaskTimeout(TaskContractDraft))
	assert.Equal(t, 20000, cfg.TaskTimeout(TaskSuggestions))
}

func TestLoadConfig_InvalidTaskTimeoutOverrideIgnored(t *testing.T) {
	t.Setenv("NEXUS_LLM_SUGGESTIONS_TIMEOUT_MS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, 20000, cfg.TaskTimeout(TaskSuggestions))
}

func TestTaskTimeout_FallsBackToGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeoutMs = 1234

	assert.Equal(t, 1234, cfg.TaskTimeout(TaskType("unknown")))
}

func TestLoadConfig_OpenAIProvider(t *testing.T) {
	t.Setenv("NEXUS_LLM_ENABLED", "true")
	t.Setenv("NEXUS_LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := LoadConfig()

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Empty(t, cfg.Endpoint)
	assert.True(t, cfg.Configured())
}

func TestLoadConfig_OpenAIWithoutKeyIsNotConfigured(t *testing.T) {
	t.Setenv("NEXUS_LLM_ENABLED", "true")
	t.Setenv("NEXUS_LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("NEXUS_LLM_API_KEY", "")

	assert.False(t, LoadConfig().Configured())
}

func TestLoadConfig_UnknownProviderKeepsDefault(t *testing.T) {
	t.Setenv("NEXUS_LLM_PROVIDER", "mystery")
	t.Setenv("NEXUS_LLM_ENDPOINT", "http://llm.internal:11434/")

	cfg := LoadConfig()

	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, "http://llm.internal:11434", cfg.Endpoint)
}
