// Package seed ships the demo portfolio and writes it into the database.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/nexusai/nexus-crm/internal/db"
	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/repository"
	"github.com/nexusai/nexus-crm/internal/snapshot"
)

//go:embed nexus_seed.yaml
var dataset []byte

// Load decodes the embedded demo portfolio.
func Load() (domain.Snapshot, error) {
	f, err := snapshot.Parse(dataset, snapshot.FormatYAML)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return snapshot.Decode(f)
}

// Apply replaces every CRM record with the demo portfolio in one
// transaction. A failure leaves the previous data untouched.
func Apply(ctx context.Context, uow db.UnitOfWork) error {
	snap, err := Load()
	if err != nil {
		return fmt.Errorf("loading seed: %w", err)
	}
	return Replace(ctx, uow, snap)
}

// Replace purges the database and writes snap in its place.
func Replace(ctx context.Context, uow db.UnitOfWork, snap domain.Snapshot) error {
	return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		store := repository.NewSnapshotStore(tx)
		if err := store.Purge(ctx); err != nil {
			return err
		}
		if err := store.Save(ctx, snap); err != nil {
			return fmt.Errorf("saving seed: %w", err)
		}
		return nil
	})
}

// IsEmpty reports whether the database holds no clients yet.
func IsEmpty(ctx context.Context, conn db.DBTX) (bool, error) {
	var n int
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n); err != nil {
		return false, fmt.Errorf("counting clients: %w", err)
	}
	return n == 0, nil
}
