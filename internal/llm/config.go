package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskReport           TaskType = "report"
	TaskSuggestions      TaskType = "suggestions"
	TaskContractAnalysis TaskType = "contract_analysis"
	TaskContractDraft    TaskType = "contract_draft"
)

// Provider selects the backend behind LLMClient.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Provider   Provider
	Endpoint   string
	APIKey     string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Provider:   ProviderOllama,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  20000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskReport:           {Temperature: 0.4, MaxTokens: 2048, TimeoutMs: 30000},
			TaskSuggestions:      {Temperature: 0.3, MaxTokens: 1024, TimeoutMs: 20000},
			TaskContractAnalysis: {Temperature: 0.2, MaxTokens: 1024, TimeoutMs: 20000},
			TaskContractDraft:    {Temperature: 0.3, MaxTokens: 3072, TimeoutMs: 40000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("NEXUS_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("NEXUS_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("NEXUS_LLM_PROVIDER"); v != "" {
		switch p := Provider(strings.ToLower(v)); p {
		case ProviderOllama, ProviderOpenAI:
			cfg.Provider = p
		}
	}
	if cfg.Provider == ProviderOpenAI {
		cfg.Endpoint = ""
		cfg.Model = "gpt-4o-mini"
	}
	if v := os.Getenv("NEXUS_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("NEXUS_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	} else if v := os.Getenv("OPENAI_API_KEY"); v != "" && cfg.Provider == ProviderOpenAI {
		cfg.APIKey = v
	}
	if v := os.Getenv("NEXUS_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("NEXUS_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("NEXUS_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskReport, "NEXUS_LLM_REPORT_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskSuggestions, "NEXUS_LLM_SUGGESTIONS_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskContractAnalysis, "NEXUS_LLM_CONTRACT_ANALYSIS_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskContractDraft, "NEXUS_LLM_CONTRACT_DRAFT_TIMEOUT_MS")

	return cfg
}

// Configured reports whether the LLM is enabled and has what its provider
// needs to make calls.
func (c LLMConfig) Configured() bool {
	if !c.Enabled {
		return false
	}
	if c.Provider == ProviderOpenAI {
		return c.APIKey != ""
	}
	return c.Endpoint != ""
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
