package repository

import (
	"context"
	"fmt"

	"github.com/nexusai/nexus-crm/internal/db"
	"github.com/nexusai/nexus-crm/internal/domain"
)

// SnapshotStore assembles a domain.Snapshot from the CRM tables. Pass a
// transaction-backed DBTX for a consistent read.
type SnapshotStore struct {
	db db.DBTX
}

func NewSnapshotStore(conn db.DBTX) *SnapshotStore {
	return &SnapshotStore{db: conn}
}

// Snapshot reads every table. Records keep insertion order.
func (s *SnapshotStore) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot

	kpis, err := NewSQLiteKPIRepo(s.db).Get(ctx)
	if err != nil {
		return snap, err
	}
	snap.KPIs = *kpis

	clients, err := NewSQLiteClientRepo(s.db).List(ctx)
	if err != nil {
		return snap, err
	}
	for _, c := range clients {
		snap.Clients = append(snap.Clients, *c)
	}

	projects, err := NewSQLiteProjectRepo(s.db).List(ctx)
	if err != nil {
		return snap, err
	}
	for _, p := range projects {
		snap.Projects = append(snap.Projects, *p)
	}

	tickets, err := NewSQLiteTicketRepo(s.db).List(ctx)
	if err != nil {
		return snap, err
	}
	for _, t := range tickets {
		snap.Tickets = append(snap.Tickets, *t)
	}

	contracts, err := NewSQLiteContractRepo(s.db).List(ctx)
	if err != nil {
		return snap, err
	}
	for _, c := range contracts {
		snap.Contracts = append(snap.Contracts, *c)
	}

	ops, err := NewSQLiteOperatorRepo(s.db).List(ctx)
	if err != nil {
		return snap, err
	}
	for _, o := range ops {
		snap.Operators = append(snap.Operators, *o)
	}
	return snap, nil
}

// Purge deletes every CRM record and zeroes the KPI row.
func (s *SnapshotStore) Purge(ctx context.Context) error {
	for _, table := range []string{"interactions", "project_tasks", "tickets", "projects", "contracts", "clients", "operators"} {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("purging %s: %w", table, err)
		}
	}
	return NewSQLiteKPIRepo(s.db).Upsert(ctx, &domain.KPIs{})
}

// Save writes every record of snap. IDs present in snap are kept.
func (s *SnapshotStore) Save(ctx context.Context, snap domain.Snapshot) error {
	clients := NewSQLiteClientRepo(s.db)
	for i := range snap.Clients {
		if err := clients.Create(ctx, &snap.Clients[i]); err != nil {
			return fmt.Errorf("client %q: %w", snap.Clients[i].Name, err)
		}
	}
	projects := NewSQLiteProjectRepo(s.db)
	for i := range snap.Projects {
		if err := projects.Create(ctx, &snap.Projects[i]); err != nil {
			return fmt.Errorf("project %q: %w", snap.Projects[i].Title, err)
		}
	}
	tickets := NewSQLiteTicketRepo(s.db)
	for i := range snap.Tickets {
		if err := tickets.Create(ctx, &snap.Tickets[i]); err != nil {
			return fmt.Errorf("ticket %q: %w", snap.Tickets[i].Title, err)
		}
	}
	contracts := NewSQLiteContractRepo(s.db)
	for i := range snap.Contracts {
		if err := contracts.Create(ctx, &snap.Contracts[i]); err != nil {
			return fmt.Errorf("contract %q: %w", snap.Contracts[i].Title, err)
		}
	}
	ops := NewSQLiteOperatorRepo(s.db)
	for i := range snap.Operators {
		if err := ops.Create(ctx, &snap.Operators[i]); err != nil {
			return fmt.Errorf("operator %q: %w", snap.Operators[i].Name, err)
		}
	}
	return NewSQLiteKPIRepo(s.db).Upsert(ctx, &snap.KPIs)
}
