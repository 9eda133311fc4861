package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/nexus-crm/internal/db"
	"github.com/nexusai/nexus-crm/internal/testutil"
)

func TestSnapshotStore_SaveAndReadBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := NewSnapshotStore(database)
	ctx := context.Background()

	want := testutil.SampleSnapshot()
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Snapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.KPIs, got.KPIs)
	require.Len(t, got.Clients, len(want.Clients))
	for i := range want.Clients {
		assert.Equal(t, want.Clients[i].ID, got.Clients[i].ID)
		assert.Equal(t, want.Clients[i].Status, got.Clients[i].Status)
		assert.Equal(t, want.Clients[i].Satisfaction, got.Clients[i].Satisfaction)
	}
	require.Len(t, got.Projects, len(want.Projects))
	assert.Equal(t, want.Projects[0].Tasks, got.Projects[0].Tasks)
	assert.True(t, want.Projects[2].Deadline.Equal(got.Projects[2].Deadline))
	require.Len(t, got.Tickets, len(want.Tickets))
	assert.Equal(t, "tk1", got.Tickets[0].ID)
	require.Len(t, got.Contracts, len(want.Contracts))
	assert.False(t, got.Contracts[1].LGPDClause)
	assert.Equal(t, want.Operators, got.Operators)

	assert.Equal(t, "RetailPro Ltda", got.ClientName("c3"))
}

func TestSnapshotStore_Purge(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := NewSnapshotStore(database)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testutil.SampleSnapshot()))
	require.NoError(t, store.Purge(ctx))

	got, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Clients)
	assert.Empty(t, got.Projects)
	assert.Empty(t, got.Tickets)
	assert.Empty(t, got.Contracts)
	assert.Empty(t, got.Operators)
	assert.Zero(t, got.KPIs.MRR)

	// Saving the same IDs again succeeds once purged.
	require.NoError(t, store.Save(ctx, testutil.SampleSnapshot()))
}

func TestSnapshotStore_SaveRollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	boom := errors.New("disk full")
	uow := &testutil.FailOnStatementUoW{DB: database, Match: "INSERT INTO contracts", Err: boom}
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSnapshotStore(tx).Save(ctx, testutil.SampleSnapshot())
	})
	require.ErrorIs(t, err, boom)

	got, err := NewSnapshotStore(database).Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Clients, "clients written before the failure must be rolled back")
	assert.Empty(t, got.Projects)
}
