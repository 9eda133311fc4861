package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/nexus-crm/internal/llm"
)

func TestMetrics_New(t *testing.T) {
	m := New()
	require.NotNil(t, m)
	require.NotNil(t, m.Handler())
}

func TestMetrics_RecordHTTP(t *testing.T) {
	m := New()
	m.RecordHTTP("/api/insights", http.MethodGet, 200, 15*time.Millisecond)
	m.RecordHTTP("/api/insights", http.MethodGet, 200, 5*time.Millisecond)
	m.RecordHTTP("/api/contracts/analyze", http.MethodPost, 400, time.Millisecond)

	body := getMetricsBody(t, m)
	assert.Contains(t, body, `nexus_http_requests_total{code="200",method="GET",route="/api/insights"} 2`)
	assert.Contains(t, body, `nexus_http_requests_total{code="400",method="POST",route="/api/contracts/analyze"} 1`)
	assert.Contains(t, body, `nexus_http_request_duration_seconds_count{route="/api/insights"} 2`)
}

func TestMetrics_RecordChat(t *testing.T) {
	m := New()
	m.RecordChat("owner", "mrr")
	m.RecordChat("client", "fallback")

	body := getMetricsBody(t, m)
	assert.Contains(t, body, `nexus_chat_replies_total{intent="mrr",role="owner"} 1`)
	assert.Contains(t, body, `nexus_chat_replies_total{intent="fallback",role="client"} 1`)
}

func TestMetrics_LLMObserver(t *testing.T) {
	m := New()
	var obs llm.Observer = m

	obs.OnCallComplete(llm.LLMCallEvent{Task: llm.TaskReport, Provider: llm.ProviderOllama, LatencyMs: 1200, Success: true})
	obs.OnCallComplete(llm.LLMCallEvent{Task: llm.TaskReport, Provider: llm.ProviderOllama, ErrorCode: "TIMEOUT"})
	obs.OnCallComplete(llm.LLMCallEvent{Task: llm.TaskSuggestions, Provider: llm.ProviderOpenAI})

	body := getMetricsBody(t, m)
	assert.Contains(t, body, `nexus_llm_calls_total{provider="ollama",status="ok",task="report"} 1`)
	assert.Contains(t, body, `nexus_llm_calls_total{provider="ollama",status="TIMEOUT",task="report"} 1`)
	assert.Contains(t, body, `nexus_llm_calls_total{provider="openai",status="error",task="suggestions"} 1`)
	assert.Contains(t, body, `nexus_llm_call_duration_seconds_count{task="report"} 2`)
}

func TestMetrics_ObserveContractScore(t *testing.T) {
	m := New()
	m.ObserveContractScore(35)
	m.ObserveContractScore(100)

	body := getMetricsBody(t, m)
	assert.Contains(t, body, `nexus_contract_risk_score_bucket{le="40"} 1`)
	assert.Contains(t, body, "nexus_contract_risk_score_count 2")
}

func TestMetrics_PrivateRegistry(t *testing.T) {
	a, b := New(), New()
	a.RecordChat("owner", "goal")

	assert.NotContains(t, getMetricsBody(t, b), `intent="goal"`)
}

func getMetricsBody(t *testing.T, m *Metrics) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	body, _ := io.ReadAll(rr.Body)
	return strings.TrimSpace(string(body))
}
