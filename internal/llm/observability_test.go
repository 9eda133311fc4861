package llm

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.OnCallComplete(LLMCallEvent{Task: TaskReport, Provider: ProviderOllama, Model: "llama3.2", LatencyMs: 42, Attempts: 1, Success: true})
	obs.OnCallComplete(LLMCallEvent{Task: TaskSuggestions, Provider: ProviderOpenAI, Model: "gpt-4o-mini", Attempts: 2, ErrorCode: "TIMEOUT"})

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=llm_call task=report provider=ollama model=llama3.2 latency_ms=42 attempts=1 status=ok")
	assert.Contains(t, out, "level=WARN msg=llm_call task=suggestions provider=openai")
	assert.Contains(t, out, "status=err error_code=TIMEOUT")
}

func TestMultiObserver(t *testing.T) {
	var a, b int
	multi := MultiObserver{
		&captureObserver{fn: func(LLMCallEvent) { a++ }},
		nil,
		&captureObserver{fn: func(LLMCallEvent) { b++ }},
	}

	multi.OnCallComplete(LLMCallEvent{Task: TaskReport})

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}
