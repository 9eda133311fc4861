package db

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is what repositories run statements against: the pool itself or a
// transaction opened by a UnitOfWork.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// TxFunc receives a transaction-scoped DBTX to build repositories on.
type TxFunc func(ctx context.Context, tx DBTX) error

// UnitOfWork scopes CRM reads and writes to one transaction.
//
// WithinTx commits when fn succeeds. WithinReadTx never commits: snapshot
// assembly sees one consistent view of the portfolio and nothing it does
// persists.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
	WithinReadTx(ctx context.Context, fn TxFunc) error
}

// SQLiteUnitOfWork is the UnitOfWork over a database opened by OpenDB.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn TxFunc) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (u *SQLiteUnitOfWork) WithinReadTx(ctx context.Context, fn TxFunc) error {
	tx, err := u.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return fmt.Errorf("begin read tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	return fn(ctx, tx)
}
