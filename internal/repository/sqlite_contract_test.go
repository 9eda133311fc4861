package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/testutil"
)

func TestContractRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	client := createClient(t, NewSQLiteClientRepo(db), "FinEdge Capital")
	repo := NewSQLiteContractRepo(db)
	ctx := context.Background()

	c := testutil.NewTestContract(client.ID, "Analytics Retainer",
		testutil.WithPeriod(testutil.Date("2026-01-01"), testutil.Date("2026-12-31")),
		testutil.WithSLA(6),
		testutil.WithPenalty(20),
	)
	c.AutoRenew = true
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, got.ClientID)
	assert.Equal(t, "Analytics Retainer", got.Title)
	assert.Equal(t, 6, got.SLAHours)
	assert.Equal(t, 20.0, got.TerminationPenaltyPct)
	assert.True(t, got.LGPDClause)
	assert.True(t, got.AutoRenew)
	require.NotNil(t, got.Start)
	require.NotNil(t, got.End)
	assert.True(t, testutil.Date("2026-12-31").Equal(*got.End))
}

func TestContractRepo_ClientlessContract(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteContractRepo(db)
	ctx := context.Background()

	c := testutil.NewTestContract("", "Prospect Draft", testutil.WithLGPD(false))
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ClientID)
	assert.Nil(t, got.Start)
	assert.False(t, got.LGPDClause)
}

func TestContractRepo_ClientDeleteDetachesContract(t *testing.T) {
	db := testutil.NewTestDB(t)
	client := createClient(t, NewSQLiteClientRepo(db), "Short Lived")
	repo := NewSQLiteContractRepo(db)
	ctx := context.Background()

	c := testutil.NewTestContract(client.ID, "Retainer")
	require.NoError(t, repo.Create(ctx, c))

	_, err := db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, client.ID)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ClientID)
}

func TestContractRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, err := NewSQLiteContractRepo(db).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContractRepo_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteContractRepo(db)
	ctx := context.Background()

	for _, title := range []string{"B contract", "A contract"} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestContract("", title)))
	}

	contracts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, contracts, 2)
	assert.Equal(t, "B contract", contracts[0].Title)
	assert.IsType(t, &domain.Contract{}, contracts[1])
}
