package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/testutil"
)

func TestTicketRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	client := createClient(t, NewSQLiteClientRepo(db), "RetailPro Ltda")
	repo := NewSQLiteTicketRepo(db)
	ctx := context.Background()

	tk := testutil.NewTestTicket(client.ID, "Slow dashboard filters", testutil.WithPriority(domain.PriorityHigh))
	tk.Created = testutil.Date("2026-02-18")
	require.NoError(t, repo.Create(ctx, tk))

	got, err := repo.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Slow dashboard filters", got.Title)
	assert.Equal(t, domain.TicketOpen, got.Status)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.True(t, testutil.Date("2026-02-18").Equal(got.Created))
}

func TestTicketRepo_CreateRejectsUnknownPriority(t *testing.T) {
	db := testutil.NewTestDB(t)
	client := createClient(t, NewSQLiteClientRepo(db), "Acme")

	tk := testutil.NewTestTicket(client.ID, "Broken", testutil.WithPriority("blocker"))
	assert.Error(t, NewSQLiteTicketRepo(db).Create(context.Background(), tk))
}

func TestTicketRepo_UpdateStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	client := createClient(t, NewSQLiteClientRepo(db), "Acme")
	repo := NewSQLiteTicketRepo(db)
	ctx := context.Background()

	tk := testutil.NewTestTicket(client.ID, "PDF export")
	require.NoError(t, repo.Create(ctx, tk))

	require.NoError(t, repo.UpdateStatus(ctx, tk.ID, domain.TicketResolved))
	got, err := repo.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketResolved, got.Status)
	assert.False(t, got.IsOpen())

	assert.Error(t, repo.UpdateStatus(ctx, tk.ID, "archived"))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", domain.TicketResolved), ErrNotFound)
}

func TestTicketRepo_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	client := createClient(t, NewSQLiteClientRepo(db), "Acme")
	repo := NewSQLiteTicketRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestTicket(client.ID, "first")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTicket(client.ID, "second", testutil.WithTicketStatus(domain.TicketInProgress))))

	tickets, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, "first", tickets[0].Title)
	assert.Equal(t, domain.TicketInProgress, tickets[1].Status)
}
