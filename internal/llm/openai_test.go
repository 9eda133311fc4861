package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAITestConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Provider = ProviderOpenAI
	cfg.APIKey = "sk-test"
	cfg.Model = "gpt-4o-mini"
	cfg.Endpoint = endpoint + "/v1"
	cfg.MaxRetries = 0
	return cfg
}

func TestOpenAIClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, "you are a consultant", req.Messages[0].Content)
		assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "MINUTA"}},
			},
		})
	}))
	defer srv.Close()

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}
	client := NewOpenAIClient(openAITestConfig(srv.URL), obs)

	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskContractDraft,
		SystemPrompt: "you are a consultant",
		UserPrompt:   "draft it",
	})

	require.NoError(t, err)
	assert.Equal(t, "MINUTA", resp.Text)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
	assert.Equal(t, ProviderOpenAI, captured.Provider)
	assert.True(t, captured.Success)
}

func TestOpenAIClient_Generate_NoSystemPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "ok"}}},
		})
	}))
	defer srv.Close()

	resp, err := NewOpenAIClient(openAITestConfig(srv.URL), nil).Generate(context.Background(),
		GenerateRequest{Task: TaskReport, UserPrompt: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
}

func TestOpenAIClient_Generate_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{Model: "gpt-4o-mini"})
	}))
	defer srv.Close()

	_, err := NewOpenAIClient(openAITestConfig(srv.URL), nil).Generate(context.Background(),
		GenerateRequest{Task: TaskReport, UserPrompt: "hi"})

	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestOpenAIClient_Generate_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	_, err := NewOpenAIClient(openAITestConfig(srv.URL), nil).Generate(context.Background(),
		GenerateRequest{Task: TaskReport, UserPrompt: "hi"})

	assert.ErrorIs(t, err, ErrRetryExhausted)
}

func TestOpenAIClient_Generate_Unavailable(t *testing.T) {
	cfg := openAITestConfig("http://127.0.0.1:1")

	_, err := NewOpenAIClient(cfg, nil).Generate(context.Background(), GenerateRequest{Task: TaskReport, UserPrompt: "hi"})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOpenAIClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[]}`))
	}))
	defer srv.Close()

	assert.True(t, NewOpenAIClient(openAITestConfig(srv.URL), nil).Available(context.Background()))
}
