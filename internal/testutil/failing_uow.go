package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/nexusai/nexus-crm/internal/db"
)

// FailOnStatementUoW is a test UoW that injects Err into the first
// ExecContext call whose SQL contains Match. Reads pass through untouched.
// It lets seeding and multi-table writes be checked for rollback at a
// precise statement.
type FailOnStatementUoW struct {
	DB    *sql.DB
	Match string
	Err   error
}

func (u *FailOnStatementUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnStatement{DBTX: tx, match: u.Match, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

// WithinReadTx runs fn without fault injection; reads never fail here.
func (u *FailOnStatementUoW) WithinReadTx(ctx context.Context, fn db.TxFunc) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinReadTx(ctx, fn)
}

type failOnStatement struct {
	db.DBTX
	match string
	err   error
	fired bool
}

func (f *failOnStatement) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if !f.fired && strings.Contains(query, f.match) {
		f.fired = true
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
