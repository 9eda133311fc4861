package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/testutil"
)

func TestKPIRepo_FreshDatabaseHasZeroRow(t *testing.T) {
	db := testutil.NewTestDB(t)

	k, err := NewSQLiteKPIRepo(db).Get(context.Background())
	require.NoError(t, err)
	assert.Zero(t, k.MRR)
	assert.Nil(t, k.RevenueByService)
	assert.Nil(t, k.Pipeline)
}

func TestKPIRepo_UpsertRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteKPIRepo(db)
	ctx := context.Background()

	in := testutil.SampleSnapshot().KPIs
	in.Pipeline = []domain.PipelineStage{
		{Stage: "Lead", Count: 3, Value: 9000},
		{Stage: "Proposal", Count: 1, Value: 4500},
	}
	require.NoError(t, repo.Upsert(ctx, &in))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, *got)

	in.MRR = 40000
	require.NoError(t, repo.Upsert(ctx, &in))
	got, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40000.0, got.MRR)
}

func TestOperatorRepo_CreateAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteOperatorRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Operator{Name: "Ana Silva", Initials: "AS", Title: "Senior Analyst"}))
	require.NoError(t, repo.Create(ctx, &domain.Operator{ID: "op2", Name: "Bruno Takeda", Initials: "BT"}))
	assert.Error(t, repo.Create(ctx, &domain.Operator{Initials: "??"}))

	ops, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, "Ana Silva", ops[0].Name)
	assert.NotEmpty(t, ops[0].ID)
	assert.Equal(t, "op2", ops[1].ID)
}
