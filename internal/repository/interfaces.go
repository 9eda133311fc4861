package repository

import (
	"context"
	"errors"

	"github.com/nexusai/nexus-crm/internal/domain"
)

// ErrNotFound is returned when a lookup or update targets a missing row.
var ErrNotFound = errors.New("not found")

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	AddInteraction(ctx context.Context, in *domain.Interaction) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
}

type TicketRepo interface {
	Create(ctx context.Context, t *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context) ([]*domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error
}

type ContractRepo interface {
	Create(ctx context.Context, c *domain.Contract) error
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	List(ctx context.Context) ([]*domain.Contract, error)
}

type OperatorRepo interface {
	Create(ctx context.Context, o *domain.Operator) error
	List(ctx context.Context) ([]*domain.Operator, error)
}

type KPIRepo interface {
	Get(ctx context.Context) (*domain.KPIs, error)
	Upsert(ctx context.Context, k *domain.KPIs) error
}
