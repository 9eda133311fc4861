package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nexusai/nexus-crm/internal/agent"
	"github.com/nexusai/nexus-crm/internal/app"
	"github.com/nexusai/nexus-crm/internal/contractrisk"
	"github.com/nexusai/nexus-crm/internal/db"
	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/insight"
	"github.com/nexusai/nexus-crm/internal/intelligence"
	"github.com/nexusai/nexus-crm/internal/report"
	"github.com/nexusai/nexus-crm/internal/repository"
)

// Dependencies wires a CRMService. A nil UoW makes the service read-only,
// which is how snapshot files are served.
type Dependencies struct {
	Snapshots   SnapshotProvider
	UoW         db.UnitOfWork
	Reports     intelligence.ReportService
	Suggestions intelligence.SuggestionService
	Contracts   intelligence.ContractService
	Agent       *agent.Agent

	// AIConfigured reports whether the intelligence services reach a real
	// model. Requests with AI set fail with app.ErrAIDisabled otherwise.
	AIConfigured bool
	Model        string

	Now func() time.Time
}

type crmService struct {
	snapshots   SnapshotProvider
	uow         db.UnitOfWork
	reports     intelligence.ReportService
	suggestions intelligence.SuggestionService
	contracts   intelligence.ContractService
	agent       *agent.Agent
	ai          bool
	model       string
	now         func() time.Time
	observer    UseCaseObserver
}

func NewCRMService(deps Dependencies, observers ...UseCaseObserver) CRMService {
	s := &crmService{
		snapshots:   deps.Snapshots,
		uow:         deps.UoW,
		reports:     deps.Reports,
		suggestions: deps.Suggestions,
		contracts:   deps.Contracts,
		agent:       deps.Agent,
		ai:          deps.AIConfigured,
		model:       deps.Model,
		now:         deps.Now,
		observer:    useCaseObserverOrNoop(observers),
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.agent == nil {
		s.agent = agent.New()
	}
	return s
}

func (s *crmService) Status(ctx context.Context) (*app.StatusResponse, error) {
	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	return &app.StatusResponse{
		ServerTime:    s.now().UTC(),
		AIConfigured:  s.ai,
		Model:         s.model,
		ReadOnly:      s.uow == nil,
		Clients:       len(snap.Clients),
		ActiveClients: len(snap.ActiveClients()),
		OpenTickets:   len(snap.OpenTickets()),
		Contracts:     len(snap.Contracts),
		MRR:           snap.KPIs.MRR,
	}, nil
}

func (s *crmService) Suggestions(ctx context.Context, req app.SuggestionsRequest) (out *intelligence.Suggestions, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"ai": req.AI}
	defer func() { s.observe(ctx, "suggestions", startedAt, fields, err) }()

	if err = s.requireAI(req.AI); err != nil {
		return nil, err
	}
	var snap domain.Snapshot
	if snap, err = s.snapshot(ctx); err != nil {
		return nil, err
	}

	if req.AI {
		out, err = s.suggestions.Suggest(ctx, snap, s.now())
		if err != nil {
			return nil, err
		}
	} else {
		out = &intelligence.Suggestions{
			Items:  insight.Generate(snap, s.now()),
			Source: intelligence.SourceDeterministic,
		}
	}
	fields["count"] = len(out.Items)
	fields["source"] = string(out.Source)
	return out, nil
}

func (s *crmService) ExecutiveReport(ctx context.Context, req app.ReportRequest) (out *app.ReportResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"ai": req.AI, "period": req.Period}
	defer func() { s.observe(ctx, "executive-report", startedAt, fields, err) }()

	if err = s.requireAI(req.AI); err != nil {
		return nil, err
	}
	var snap domain.Snapshot
	if snap, err = s.snapshot(ctx); err != nil {
		return nil, err
	}

	opts := report.Options{Period: req.Period, Now: s.now()}
	rep := report.GenerateExecutiveReport(snap, opts)
	out = &app.ReportResponse{
		Period:   rep.Period,
		Text:     rep.Text,
		Source:   intelligence.SourceDeterministic,
		Summary:  rep.Summary,
		Insights: rep.Insights,
	}

	if req.AI {
		var doc *intelligence.Document
		doc, err = s.reports.Generate(ctx, snap, opts)
		if err != nil {
			return nil, err
		}
		out.Text, out.Source, out.Model = doc.Text, doc.Source, doc.Model
	}
	fields["source"] = string(out.Source)
	return out, nil
}

func (s *crmService) AnalyzeContractText(ctx context.Context, req app.ContractAnalysisRequest) (out *intelligence.ContractAnalysis, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"ai": req.AI, "chars": len(req.Text)}
	defer func() { s.observe(ctx, "analyze-contract-text", startedAt, fields, err) }()

	if err = s.requireAI(req.AI); err != nil {
		return nil, err
	}
	out, err = s.analyze(ctx, req.Text, req.AI)
	if out != nil {
		fields["score"] = out.Result.Score
	}
	return out, err
}

func (s *crmService) AnalyzeContractByID(ctx context.Context, req app.ContractAnalysisRequest) (out *intelligence.ContractAnalysis, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"ai": req.AI, "contract_id": req.ContractID}
	defer func() { s.observe(ctx, "analyze-contract", startedAt, fields, err) }()

	if err = s.requireAI(req.AI); err != nil {
		return nil, err
	}
	var snap domain.Snapshot
	if snap, err = s.snapshot(ctx); err != nil {
		return nil, err
	}

	for _, c := range snap.Contracts {
		if c.ID == req.ContractID {
			out, err = s.analyze(ctx, contractrisk.RecordText(c), req.AI)
			if out != nil {
				fields["score"] = out.Result.Score
			}
			return out, err
		}
	}
	err = app.NewError(app.ErrNotFound, fmt.Sprintf("contract %q not found", req.ContractID), repository.ErrNotFound)
	return nil, err
}

func (s *crmService) analyze(ctx context.Context, text string, ai bool) (*intelligence.ContractAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, app.NewError(app.ErrInvalidInput, "contract text is required", contractrisk.ErrEmptyText)
	}
	if ai {
		return s.contracts.Analyze(ctx, text)
	}
	result, err := contractrisk.AnalyzeText(text)
	if err != nil {
		return nil, err
	}
	return &intelligence.ContractAnalysis{Result: result, Source: intelligence.SourceDeterministic}, nil
}

func (s *crmService) DraftContract(ctx context.Context, req app.ContractDraftRequest) (out *intelligence.Document, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"ai": req.AI, "client": req.Input.ClientName}
	defer func() { s.observe(ctx, "draft-contract", startedAt, fields, err) }()

	if err = s.requireAI(req.AI); err != nil {
		return nil, err
	}

	if req.AI {
		out, err = s.contracts.Draft(ctx, req.Input, s.now())
	} else {
		var text string
		text, err = report.GenerateContractDraft(req.Input, s.now())
		out = &intelligence.Document{Text: text, Source: intelligence.SourceDeterministic}
	}
	if errors.Is(err, report.ErrInvalidStartDate) {
		err = app.NewError(app.ErrInvalidInput, "start must be a YYYY-MM-DD date", err)
	}
	if err != nil {
		return nil, err
	}
	fields["source"] = string(out.Source)
	return out, nil
}

func (s *crmService) ListContracts(ctx context.Context) ([]domain.Contract, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Contracts, nil
}

func (s *crmService) SaveContract(ctx context.Context, c *domain.Contract) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"title": c.Title, "client_id": c.ClientID}
	defer func() { s.observe(ctx, "save-contract", startedAt, fields, err) }()

	if err = s.requireWritable(); err != nil {
		return err
	}
	if err = c.Validate(); err != nil {
		return app.NewError(app.ErrInvalidInput, err.Error(), err)
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if c.ClientID != "" {
			if _, err := repository.NewSQLiteClientRepo(tx).GetByID(ctx, c.ClientID); err != nil {
				return err
			}
		}
		return repository.NewSQLiteContractRepo(tx).Create(ctx, c)
	})
	return mapRepoErr(err)
}

func (s *crmService) Ask(ctx context.Context, req app.ChatRequest) (reply agent.Reply, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"role": string(req.Role)}
	defer func() { s.observe(ctx, "ask", startedAt, fields, err) }()

	if strings.TrimSpace(req.Message) == "" {
		err = app.NewError(app.ErrInvalidInput, "message is required", nil)
		return agent.Reply{}, err
	}
	var snap domain.Snapshot
	if snap, err = s.snapshot(ctx); err != nil {
		return agent.Reply{}, err
	}

	reply, err = s.agent.Ask(ctx, req.Message, req.Role, snap, agent.ChatContext{
		ClientID: req.ClientID,
		Now:      s.now(),
	})
	if err != nil {
		return agent.Reply{}, err
	}
	fields["intent"] = reply.Intent
	return reply, nil
}

func (s *crmService) Greet(ctx context.Context, role domain.Role) string {
	startedAt := time.Now().UTC()
	greeting := s.agent.Greet(role)
	s.observe(ctx, "greet", startedAt, map[string]any{"role": string(role)}, nil)
	return greeting
}

func (s *crmService) ListClients(ctx context.Context) ([]domain.Client, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Clients, nil
}

func (s *crmService) AddClient(ctx context.Context, c *domain.Client) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"name": c.Name}
	defer func() { s.observe(ctx, "add-client", startedAt, fields, err) }()

	if err = s.requireWritable(); err != nil {
		return err
	}
	if c.Status == "" {
		c.Status = domain.ClientLead
	}
	if err = c.Validate(); err != nil {
		return app.NewError(app.ErrInvalidInput, err.Error(), err)
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteClientRepo(tx).Create(ctx, c)
	})
	fields["client_id"] = c.ID
	return mapRepoErr(err)
}

func (s *crmService) LogInteraction(ctx context.Context, req app.InteractionRequest) (out *domain.Interaction, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"client_id": req.ClientID, "kind": req.Kind}
	defer func() { s.observe(ctx, "log-interaction", startedAt, fields, err) }()

	if err = s.requireWritable(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Description) == "" {
		err = app.NewError(app.ErrInvalidInput, "interaction description is required", nil)
		return nil, err
	}

	out = &domain.Interaction{
		ClientID:    req.ClientID,
		Date:        domain.DateOf(s.now(), time.UTC),
		Kind:        domain.CoalesceStr(strings.TrimSpace(req.Kind), "note"),
		Description: strings.TrimSpace(req.Description),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteClientRepo(tx).AddInteraction(ctx, out)
	})
	if err = mapRepoErr(err); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *crmService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Tickets, nil
}

func (s *crmService) AddTicket(ctx context.Context, t *domain.Ticket) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"client_id": t.ClientID, "priority": string(t.Priority)}
	defer func() { s.observe(ctx, "add-ticket", startedAt, fields, err) }()

	if err = s.requireWritable(); err != nil {
		return err
	}
	if t.Status == "" {
		t.Status = domain.TicketOpen
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if t.Created.IsZero() {
		t.Created = domain.DateOf(s.now(), time.UTC)
	}
	if err = t.Validate(); err != nil {
		return app.NewError(app.ErrInvalidInput, err.Error(), err)
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteClientRepo(tx).GetByID(ctx, t.ClientID); err != nil {
			return err
		}
		return repository.NewSQLiteTicketRepo(tx).Create(ctx, t)
	})
	return mapRepoErr(err)
}

func (s *crmService) ResolveTicket(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() { s.observe(ctx, "resolve-ticket", startedAt, map[string]any{"ticket_id": id}, err) }()

	if err = s.requireWritable(); err != nil {
		return err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTicketRepo(tx).UpdateStatus(ctx, id, domain.TicketResolved)
	})
	return mapRepoErr(err)
}

func (s *crmService) snapshot(ctx context.Context) (domain.Snapshot, error) {
	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("loading snapshot: %w", err)
	}
	return snap, nil
}

func (s *crmService) requireAI(requested bool) error {
	if requested && !s.ai {
		return app.NewError(app.ErrAIDisabled, "AI is not configured on this server", nil)
	}
	return nil
}

func (s *crmService) requireWritable() error {
	if s.uow == nil {
		return app.NewError(app.ErrReadOnly, "the CRM data is read-only (loaded from a snapshot file)", nil)
	}
	return nil
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return app.NewError(app.ErrNotFound, err.Error(), err)
	}
	return err
}
