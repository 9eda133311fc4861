package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/testutil"
)

func createClient(t *testing.T, repo *SQLiteClientRepo, name string) *domain.Client {
	t.Helper()
	c := testutil.NewTestClient(name)
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	client := createClient(t, NewSQLiteClientRepo(db), "FinEdge Capital")
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	p := testutil.NewTestProject(client.ID, "Executive Dashboard",
		testutil.WithDeadline(testutil.Date("2026-03-10")),
		testutil.WithProgress(65),
		testutil.WithTasks(
			domain.Task{Title: "Dimensional model", Done: true},
			domain.Task{Title: "Page design"},
		),
	)
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Executive Dashboard", got.Title)
	assert.Equal(t, client.ID, got.ClientID)
	assert.Equal(t, domain.ProjectInProgress, got.Status)
	assert.Equal(t, 65, got.Progress)
	assert.True(t, testutil.Date("2026-03-10").Equal(got.Deadline))
	require.Len(t, got.Tasks, 2)
	assert.Equal(t, "Dimensional model", got.Tasks[0].Title)
	assert.True(t, got.Tasks[0].Done)
	assert.False(t, got.Tasks[1].Done)
}

func TestProjectRepo_NoDeadlineRoundTripsAsZero(t *testing.T) {
	db := testutil.NewTestDB(t)
	client := createClient(t, NewSQLiteClientRepo(db), "Acme")
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	p := testutil.NewTestProject(client.ID, "Discovery", testutil.WithDeadline(time.Time{}))
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Deadline.IsZero())
}

func TestProjectRepo_CreateRejectsUnknownClient(t *testing.T) {
	db := testutil.NewTestDB(t)
	err := NewSQLiteProjectRepo(db).Create(context.Background(), testutil.NewTestProject("missing", "Orphan"))
	assert.Error(t, err, "foreign key should reject unknown client")
}

func TestProjectRepo_UpdateReplacesTasks(t *testing.T) {
	db := testutil.NewTestDB(t)
	client := createClient(t, NewSQLiteClientRepo(db), "Acme")
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	p := testutil.NewTestProject(client.ID, "ETL Pipeline", testutil.WithTasks(domain.Task{Title: "Extract"}, domain.Task{Title: "Load"}))
	require.NoError(t, repo.Create(ctx, p))

	p.Status = domain.ProjectReview
	p.Progress = 90
	p.Tasks = []domain.Task{{Title: "Validate", Done: true}}
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectReview, got.Status)
	assert.Equal(t, 90, got.Progress)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "Validate", got.Tasks[0].Title)
}

func TestProjectRepo_Update_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	err := NewSQLiteProjectRepo(db).Update(context.Background(), testutil.NewTestProject("c", "Ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_ListAttachesTasksPerProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	client := createClient(t, NewSQLiteClientRepo(db), "Acme")
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(client.ID, "First", testutil.WithTasks(domain.Task{Title: "a"}))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(client.ID, "Second")))

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "First", projects[0].Title)
	assert.Len(t, projects[0].Tasks, 1)
	assert.Empty(t, projects[1].Tasks)
}
