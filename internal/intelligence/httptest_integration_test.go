package intelligence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/insight"
	"github.com/nexusai/nexus-crm/internal/llm"
	"github.com/nexusai/nexus-crm/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHTTPTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("skipping HTTP integration test: local listener unavailable (%v)", r)
			}
		}()
		srv = httptest.NewServer(handler)
	}()
	return srv
}

func ollamaConfig(endpoint string) llm.LLMConfig {
	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	cfg.Model = "test-model"
	cfg.MaxRetries = 0
	return cfg
}

// The suggestion JSON travels through the Ollama wire format wrapped in a
// fenced block, as small local models tend to answer.
func TestSuggestionService_WithHTTPTestServer(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model":    "test-model",
			"response": "```json\n" + validSuggestions + "\n```",
		})
	})
	defer srv.Close()

	client := llm.NewOllamaClient(ollamaConfig(srv.URL), llm.NoopObserver{})
	svc := NewSuggestionService(client, DefaultCompanyProfile())

	got, err := svc.Suggest(context.Background(), testutil.SampleSnapshot(), testutil.SampleNow)

	require.NoError(t, err)
	assert.Equal(t, SourceLLM, got.Source)
	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Items, 2)
	assert.Equal(t, domain.SeverityCritical, got.Items[0].Severity)
}

func TestReportService_WithHTTPTestServer_Timeout(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	defer srv.Close()

	cfg := ollamaConfig(srv.URL)
	cfg.Tasks = map[llm.TaskType]llm.TaskConfig{
		llm.TaskReport: {Temperature: 0.4, MaxTokens: 256, TimeoutMs: 50},
	}
	svc := NewReportService(llm.NewOllamaClient(cfg, llm.NoopObserver{}), DefaultCompanyProfile())

	doc, err := svc.Generate(context.Background(), testutil.SampleSnapshot(), sampleOptions())

	require.NoError(t, err)
	assert.Equal(t, SourceDeterministic, doc.Source)
	assert.Contains(t, doc.Text, "EXECUTIVE AI REPORT - MONTHLY")
}

func TestSuggestionService_DisabledClient(t *testing.T) {
	svc := NewSuggestionService(llm.New(llm.DefaultConfig(), nil), DefaultCompanyProfile())

	got, err := svc.Suggest(context.Background(), domain.Snapshot{}, testutil.SampleNow)

	require.NoError(t, err)
	assert.Equal(t, SourceDeterministic, got.Source)
	require.Len(t, got.Items, 1)
	assert.Equal(t, insight.CategoryPerformance, got.Items[0].Category)
}
