package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/nexus-crm/internal/db"
	"github.com/nexusai/nexus-crm/internal/testutil"
)

func insertOperator(id, name string) db.TxFunc {
	return func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO operators (id, name) VALUES (?, ?)`, id, name)
		return err
	}
}

func operatorCount(t *testing.T, uow db.UnitOfWork) int {
	t.Helper()
	var n int
	err := uow.WithinReadTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM operators`).Scan(&n)
	})
	require.NoError(t, err)
	return n
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))

	require.NoError(t, uow.WithinTx(context.Background(), insertOperator("op1", "Ana Silva")))

	assert.Equal(t, 1, operatorCount(t, uow))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	errStop := errors.New("stop")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		require.NoError(t, insertOperator("op1", "Ana Silva")(ctx, tx))
		return errStop
	})

	assert.ErrorIs(t, err, errStop)
	assert.Zero(t, operatorCount(t, uow))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertOperator("op1", "Ana Silva")(ctx, tx)
			panic("boom")
		})
	})

	assert.Zero(t, operatorCount(t, uow))
}

func TestWithinReadTx_DiscardsWrites(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))

	require.NoError(t, uow.WithinReadTx(context.Background(), insertOperator("op1", "Ana Silva")))

	assert.Zero(t, operatorCount(t, uow))
	require.NoError(t, uow.WithinTx(context.Background(), insertOperator("op2", "Bruno Takeda")))
	assert.Equal(t, 1, operatorCount(t, uow))
}

func TestWithinReadTx_ReturnsCallbackError(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestFileDB(t))
	errStop := errors.New("stop")

	err := uow.WithinReadTx(context.Background(), func(context.Context, db.DBTX) error { return errStop })

	assert.ErrorIs(t, err, errStop)
}
