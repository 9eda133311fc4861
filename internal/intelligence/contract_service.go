package intelligence

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nexusai/nexus-crm/internal/contractrisk"
	"github.com/nexusai/nexus-crm/internal/llm"
	"github.com/nexusai/nexus-crm/internal/report"
)

// ContractAnalysis pairs the checklist score with an optional model-written
// review. Result is always present.
type ContractAnalysis struct {
	Result    contractrisk.Result `json:"result"`
	Narrative string              `json:"narrative,omitempty"`
	Source    Source              `json:"source"`
	Model     string              `json:"model,omitempty"`
}

// ContractService reviews and drafts contracts.
type ContractService interface {
	// Analyze scores text and asks the model for a review. Empty text
	// fails with contractrisk.ErrEmptyText.
	Analyze(ctx context.Context, text string) (*ContractAnalysis, error)

	// Draft writes a contract from in. An unparseable start date fails with
	// report.ErrInvalidStartDate before the model is called.
	Draft(ctx context.Context, in report.DraftInput, now time.Time) (*Document, error)
}

type contractService struct {
	client  llm.LLMClient
	profile CompanyProfile
}

// NewContractService creates a ContractService backed by an LLM client.
func NewContractService(client llm.LLMClient, profile CompanyProfile) ContractService {
	return &contractService{client: client, profile: profile}
}

func (s *contractService) Analyze(ctx context.Context, text string) (*ContractAnalysis, error) {
	result, err := contractrisk.AnalyzeText(text)
	if err != nil {
		return nil, err
	}
	analysis := &ContractAnalysis{Result: result, Source: SourceDeterministic}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskContractAnalysis,
		SystemPrompt: systemPrompt(s.profile, contractAnalysisRole, contractAnalysisFocus...),
		UserPrompt:   contractAnalysisUserPrompt(strings.TrimSpace(text)),
	})
	if err != nil {
		return analysis, nil
	}
	if narrative := llm.CleanText(resp.Text); narrative != "" {
		analysis.Narrative = narrative
		analysis.Source = SourceLLM
		analysis.Model = resp.Model
	}
	return analysis, nil
}

type draftPayload struct {
	Contractor      string  `json:"contractor"`
	Client          string  `json:"client"`
	Type            string  `json:"type"`
	MonthlyValue    float64 `json:"monthly_value"`
	Start           string  `json:"start"`
	End             string  `json:"end"`
	DurationMonths  int     `json:"duration_months"`
	SLAHours        int     `json:"sla_hours"`
	PenaltyPct      float64 `json:"penalty_pct"`
	AdjustmentIndex string  `json:"adjustment_index"`
	Scope           string  `json:"scope"`
}

func (s *contractService) Draft(ctx context.Context, in report.DraftInput, now time.Time) (*Document, error) {
	draft, err := in.Resolve(now)
	if err != nil {
		return nil, err
	}
	fallback := &Document{Text: draft.Text(), Source: SourceDeterministic}

	payload, err := json.MarshalIndent(draftPayload{
		Contractor:      report.ContractorName,
		Client:          draft.ClientName,
		Type:            draft.Type,
		MonthlyValue:    draft.MonthlyValue,
		Start:           draft.Start.Format(time.DateOnly),
		End:             draft.End.Format(time.DateOnly),
		DurationMonths:  draft.DurationMonths,
		SLAHours:        draft.SLAHours,
		PenaltyPct:      draft.PenaltyPct,
		AdjustmentIndex: draft.AdjustmentIndex,
		Scope:           draft.Scope,
	}, "", "  ")
	if err != nil {
		return fallback, nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskContractDraft,
		SystemPrompt: systemPrompt(s.profile, contractDraftRole, contractDraftFocus...),
		UserPrompt:   contractDraftUserPrompt(string(payload)),
	})
	if err != nil {
		return fallback, nil
	}

	text := llm.CleanText(resp.Text)
	if text == "" {
		return fallback, nil
	}
	return &Document{Text: text, Source: SourceLLM, Model: resp.Model}, nil
}
