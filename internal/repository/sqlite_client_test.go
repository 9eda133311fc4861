package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/testutil"
)

func TestClientRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	since := testutil.Date("2024-03-15")
	c := testutil.NewTestClient("TechCorp Solutions",
		testutil.WithMRR(8500),
		testutil.WithSatisfaction(4.8),
		testutil.WithServices("BI & Dashboards", "Automation"),
	)
	c.Email = "ops@techcorp.example"
	c.Since = &since
	c.History = []domain.Interaction{
		{Date: testutil.Date("2026-02-10"), Kind: "meeting", Description: "Quarterly review"},
	}
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "TechCorp Solutions", got.Name)
	assert.Equal(t, domain.ClientActive, got.Status)
	assert.Equal(t, 8500.0, got.MRR)
	require.NotNil(t, got.Satisfaction)
	assert.Equal(t, 4.8, *got.Satisfaction)
	assert.Equal(t, []string{"BI & Dashboards", "Automation"}, got.Services)
	require.NotNil(t, got.Since)
	assert.True(t, since.Equal(*got.Since))
	assert.Equal(t, "ops@techcorp.example", got.Email)
	require.Len(t, got.History, 1)
	assert.Equal(t, "Quarterly review", got.History[0].Description)
	assert.Equal(t, c.ID, got.History[0].ClientID)
}

func TestClientRepo_CreateGeneratesID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)

	c := &domain.Client{Name: "MedTech Analytics", Status: domain.ClientLead}
	require.NoError(t, repo.Create(context.Background(), c))

	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestClientRepo_CreateRejectsInvalid(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)

	err := repo.Create(context.Background(), testutil.NewTestClient(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestClientRepo_UnsurveyedClientKeepsNilSatisfaction(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	c := testutil.NewTestClient("Lead Co", testutil.WithClientStatus(domain.ClientLead))
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Satisfaction)
	assert.Empty(t, got.Services)
}

func TestClientRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, err := NewSQLiteClientRepo(db).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientRepo_ListKeepsInsertionOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	names := []string{"Zeta Corp", "Alpha Ltd", "Mid Co"}
	for _, n := range names {
		require.NoError(t, repo.Create(ctx, testutil.NewTestClient(n)))
	}

	clients, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 3)
	for i, n := range names {
		assert.Equal(t, n, clients[i].Name)
	}
}

func TestClientRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	c := testutil.NewTestClient("RetailPro Ltda", testutil.WithMRR(4200))
	require.NoError(t, repo.Create(ctx, c))

	c.Status = domain.ClientChurnRisk
	c.Satisfaction = nil
	require.NoError(t, repo.Update(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ClientChurnRisk, got.Status)
	assert.Nil(t, got.Satisfaction)
}

func TestClientRepo_Update_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	err := NewSQLiteClientRepo(db).Update(context.Background(), testutil.NewTestClient("Ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientRepo_AddInteraction(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	c := testutil.NewTestClient("FinEdge Capital")
	require.NoError(t, repo.Create(ctx, c))

	require.NoError(t, repo.AddInteraction(ctx, &domain.Interaction{ClientID: c.ID, Date: testutil.Date("2026-02-20"), Kind: "call", Description: "Renewal"}))
	require.NoError(t, repo.AddInteraction(ctx, &domain.Interaction{ClientID: c.ID, Date: testutil.Date("2026-01-05"), Kind: "email", Description: "Kickoff"}))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.History, 2)
	assert.Equal(t, "Kickoff", got.History[0].Description, "history is oldest first")
	assert.Equal(t, "Renewal", got.History[1].Description)

	err = repo.AddInteraction(ctx, &domain.Interaction{ClientID: "missing", Kind: "call"})
	assert.ErrorIs(t, err, ErrNotFound)
}
