package service

import (
	"context"

	"github.com/nexusai/nexus-crm/internal/app"
	"github.com/nexusai/nexus-crm/internal/db"
	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/repository"
)

// CRMService is every use case the CLI and the HTTP API drive.
type CRMService interface {
	app.StatusUseCase
	app.InsightsUseCase
	app.ReportUseCase
	app.ContractUseCase
	app.ChatUseCase
	app.ClientUseCase
	app.TicketUseCase
}

// SnapshotProvider supplies the CRM data the engines read.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (domain.Snapshot, error)
}

// StaticSnapshot serves a fixed snapshot, usually one loaded from a file.
type StaticSnapshot struct {
	snap domain.Snapshot
}

func NewStaticSnapshot(snap domain.Snapshot) *StaticSnapshot {
	return &StaticSnapshot{snap: snap}
}

func (s *StaticSnapshot) Snapshot(context.Context) (domain.Snapshot, error) {
	return s.snap, nil
}

type storeSnapshots struct {
	uow db.UnitOfWork
}

// NewStoreSnapshotProvider reads snapshots from the database, each inside
// one read-only transaction.
func NewStoreSnapshotProvider(uow db.UnitOfWork) SnapshotProvider {
	return &storeSnapshots{uow: uow}
}

func (p *storeSnapshots) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := p.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		snap, err = repository.NewSnapshotStore(tx).Snapshot(ctx)
		return err
	})
	if err != nil {
		return domain.Snapshot{}, err
	}
	return snap, nil
}
