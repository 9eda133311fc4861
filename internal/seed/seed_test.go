package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/repository"
	"github.com/nexusai/nexus-crm/internal/testutil"
)

func TestLoad_DemoPortfolio(t *testing.T) {
	snap, err := Load()
	require.NoError(t, err)

	assert.Len(t, snap.Clients, 6)
	assert.Len(t, snap.Projects, 6)
	assert.Len(t, snap.Tickets, 4)
	assert.Len(t, snap.Contracts, 2)
	assert.Len(t, snap.Operators, 3)

	assert.Equal(t, 31500.0, snap.KPIs.MRR)
	assert.Equal(t, 28200.0, snap.KPIs.PreviousMRR)
	assert.Len(t, snap.KPIs.Months, len(snap.KPIs.MonthlyRevenue))
	assert.Len(t, snap.KPIs.Pipeline, 4)

	retail, ok := snap.ClientByID("c3")
	require.True(t, ok)
	assert.Equal(t, domain.ClientChurnRisk, retail.Status)

	medtech, ok := snap.ClientByID("c4")
	require.True(t, ok)
	assert.Nil(t, medtech.Satisfaction, "leads have no survey yet")

	edu, ok := snap.ClientByID("c6")
	require.True(t, ok)
	assert.Equal(t, domain.ClientInactive, edu.Status)

	assert.Equal(t, domain.ProjectDone, snap.Projects[5].Status)
	assert.Equal(t, domain.PriorityCritical, snap.Projects[3].Priority)
	assert.Equal(t, domain.TicketResolved, snap.Tickets[2].Status)
	assert.False(t, snap.Contracts[1].LGPDClause)
}

func TestApply_WritesPortfolio(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	empty, err := IsEmpty(ctx, database)
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, Apply(ctx, testutil.NewTestUoW(database)))

	empty, err = IsEmpty(ctx, database)
	require.NoError(t, err)
	assert.False(t, empty)

	snap, err := repository.NewSnapshotStore(database).Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Clients, 6)
	assert.Len(t, snap.Projects[0].Tasks, 4)
	assert.Equal(t, "FinEdge Capital", snap.ClientName("c2"))
	assert.Equal(t, 31500.0, snap.KPIs.MRR)
}

func TestApply_IsRepeatable(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	uow := testutil.NewTestUoW(database)

	require.NoError(t, Apply(ctx, uow))
	_, err := database.ExecContext(ctx, `UPDATE clients SET name = 'Renamed' WHERE id = 'c1'`)
	require.NoError(t, err)
	require.NoError(t, Apply(ctx, uow))

	snap, err := repository.NewSnapshotStore(database).Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Clients, 6)
	assert.Equal(t, "TechCorp Solutions", snap.ClientName("c1"))
}

func TestApply_RollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, Apply(ctx, testutil.NewTestUoW(database)))
	_, err := database.ExecContext(ctx, `UPDATE clients SET name = 'Kept' WHERE id = 'c1'`)
	require.NoError(t, err)

	boom := errors.New("write failed")
	uow := &testutil.FailOnStatementUoW{DB: database, Match: "INSERT INTO tickets", Err: boom}
	err = Apply(ctx, uow)
	require.ErrorIs(t, err, boom)

	snap, err := repository.NewSnapshotStore(database).Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Kept", snap.ClientName("c1"), "purge must be rolled back with the failed insert")
	assert.Len(t, snap.Tickets, 4)
}
