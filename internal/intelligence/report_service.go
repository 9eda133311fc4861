package intelligence

import (
	"context"
	"strings"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/llm"
	"github.com/nexusai/nexus-crm/internal/report"
)

// ReportService writes executive reports.
type ReportService interface {
	// Generate returns a model-written report, or the deterministic report
	// when the model cannot produce one.
	Generate(ctx context.Context, snap domain.Snapshot, opts report.Options) (*Document, error)
}

type reportService struct {
	client  llm.LLMClient
	profile CompanyProfile
}

// NewReportService creates a ReportService backed by an LLM client.
func NewReportService(client llm.LLMClient, profile CompanyProfile) ReportService {
	return &reportService{client: client, profile: profile}
}

func (s *reportService) Generate(ctx context.Context, snap domain.Snapshot, opts report.Options) (*Document, error) {
	fallback := func() *Document {
		return &Document{Text: report.GenerateExecutiveReport(snap, opts).Text, Source: SourceDeterministic}
	}

	data, err := digestJSON(&snap)
	if err != nil {
		return fallback(), nil
	}

	period := opts.Period
	if strings.TrimSpace(period) == "" {
		period = report.DefaultPeriod
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskReport,
		SystemPrompt: systemPrompt(s.profile, reportRole, reportFocus...),
		UserPrompt:   reportUserPrompt(period, data),
	})
	if err != nil {
		return fallback(), nil
	}

	text := llm.CleanText(resp.Text)
	if text == "" {
		return fallback(), nil
	}
	return &Document{Text: text, Source: SourceLLM, Model: resp.Model}, nil
}
