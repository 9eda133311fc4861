package app

import (
	"context"

	"github.com/nexusai/nexus-crm/internal/agent"
	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/intelligence"
)

type StatusUseCase interface {
	Status(ctx context.Context) (*StatusResponse, error)
}

type InsightsUseCase interface {
	Suggestions(ctx context.Context, req SuggestionsRequest) (*intelligence.Suggestions, error)
}

type ReportUseCase interface {
	ExecutiveReport(ctx context.Context, req ReportRequest) (*ReportResponse, error)
}

type ContractUseCase interface {
	AnalyzeContractText(ctx context.Context, req ContractAnalysisRequest) (*intelligence.ContractAnalysis, error)
	AnalyzeContractByID(ctx context.Context, req ContractAnalysisRequest) (*intelligence.ContractAnalysis, error)
	DraftContract(ctx context.Context, req ContractDraftRequest) (*intelligence.Document, error)
	ListContracts(ctx context.Context) ([]domain.Contract, error)
	SaveContract(ctx context.Context, c *domain.Contract) error
}

type ChatUseCase interface {
	Ask(ctx context.Context, req ChatRequest) (agent.Reply, error)
	Greet(ctx context.Context, role domain.Role) string
}

type ClientUseCase interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	AddClient(ctx context.Context, c *domain.Client) error
	LogInteraction(ctx context.Context, req InteractionRequest) (*domain.Interaction, error)
}

type TicketUseCase interface {
	ListTickets(ctx context.Context) ([]domain.Ticket, error)
	AddTicket(ctx context.Context, t *domain.Ticket) error
	ResolveTicket(ctx context.Context, id string) error
}
