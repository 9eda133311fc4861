package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/insight"
	"github.com/nexusai/nexus-crm/internal/llm"
)

// Suggestions is a prioritized list of insights and where it came from.
type Suggestions struct {
	Items  []insight.Insight `json:"items"`
	Source Source            `json:"source"`
	Model  string            `json:"model,omitempty"`
}

// SuggestionService produces prioritized executive suggestions.
type SuggestionService interface {
	Suggest(ctx context.Context, snap domain.Snapshot, now time.Time) (*Suggestions, error)
}

type suggestionService struct {
	client  llm.LLMClient
	profile CompanyProfile
}

// NewSuggestionService creates a SuggestionService backed by an LLM client.
func NewSuggestionService(client llm.LLMClient, profile CompanyProfile) SuggestionService {
	return &suggestionService{client: client, profile: profile}
}

type suggestionOutput struct {
	Suggestions []suggestionItem `json:"suggestions"`
}

type suggestionItem struct {
	Category       string `json:"category"`
	Severity       string `json:"severity"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
	Impact         string `json:"impact"`
	Deadline       string `json:"deadline"`
}

func validateSuggestions(out suggestionOutput) error {
	if len(out.Suggestions) == 0 {
		return errors.New("no suggestions")
	}
	for i, s := range out.Suggestions {
		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("suggestion %d: missing title", i)
		}
		if _, err := domain.ParseSeverity(s.Severity); err != nil {
			return fmt.Errorf("suggestion %d: %w", i, err)
		}
	}
	return nil
}

func (s *suggestionService) Suggest(ctx context.Context, snap domain.Snapshot, now time.Time) (*Suggestions, error) {
	fallback := func() *Suggestions {
		return &Suggestions{Items: insight.Generate(snap, now), Source: SourceDeterministic}
	}

	data, err := digestJSON(&snap)
	if err != nil {
		return fallback(), nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSuggestions,
		SystemPrompt: systemPrompt(s.profile, suggestionsRole, suggestionsFocus...),
		UserPrompt:   suggestionsUserPrompt(data),
	})
	if err != nil {
		return fallback(), nil
	}

	out, err := llm.ExtractJSON[suggestionOutput](resp.Text, validateSuggestions)
	if err != nil {
		return fallback(), nil
	}

	items := make([]insight.Insight, 0, len(out.Suggestions))
	for _, item := range out.Suggestions {
		sev, _ := domain.ParseSeverity(item.Severity)
		items = append(items, insight.Insight{
			Category:       insight.Category(strings.TrimSpace(item.Category)),
			Severity:       sev,
			Title:          strings.TrimSpace(item.Title),
			Description:    strings.TrimSpace(item.Description),
			Recommendation: strings.TrimSpace(item.Recommendation),
			Impact:         strings.TrimSpace(item.Impact),
			Deadline:       strings.TrimSpace(item.Deadline),
		})
	}
	insight.Sort(items)
	return &Suggestions{Items: items, Source: SourceLLM, Model: resp.Model}, nil
}
