package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nexusai/nexus-crm/internal/db"
	"github.com/nexusai/nexus-crm/internal/domain"
)

// SQLiteContractRepo implements ContractRepo using a SQLite database.
type SQLiteContractRepo struct {
	db db.DBTX
}

// NewSQLiteContractRepo creates a new SQLiteContractRepo.
func NewSQLiteContractRepo(conn db.DBTX) *SQLiteContractRepo {
	return &SQLiteContractRepo{db: conn}
}

const contractColumns = `id, client_id, title, type, start_date, end_date, monthly_value, sla_hours,
	penalty_pct, adjustment_index, lgpd_clause, auto_renew, scope, created_at, updated_at`

func (r *SQLiteContractRepo) Create(ctx context.Context, c *domain.Contract) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	stamp(&c.CreatedAt, &c.UpdatedAt)

	query := `INSERT INTO contracts (` + contractColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		nullableString(c.ClientID),
		c.Title,
		c.Type,
		nullableTimeToString(c.Start, dateLayout),
		nullableTimeToString(c.End, dateLayout),
		c.MonthlyValue,
		c.SLAHours,
		c.TerminationPenaltyPct,
		c.AdjustmentIndex,
		boolToInt(c.LGPDClause),
		boolToInt(c.AutoRenew),
		c.Scope,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting contract: %w", err)
	}
	return nil
}

func (r *SQLiteContractRepo) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id = ?`, id)
	c, err := scanContract(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("contract %s: %w", id, ErrNotFound)
	}
	return c, err
}

// List returns contracts in insertion order.
func (r *SQLiteContractRepo) List(ctx context.Context) ([]*domain.Contract, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+contractColumns+` FROM contracts ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer rows.Close()

	var contracts []*domain.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contracts: %w", err)
	}
	return contracts, nil
}

func scanContract(s scanner) (*domain.Contract, error) {
	var c domain.Contract
	var clientID, start, end sql.NullString
	var lgpd, autoRenew int
	var createdAt, updatedAt string

	err := s.Scan(
		&c.ID, &clientID, &c.Title, &c.Type, &start, &end, &c.MonthlyValue, &c.SLAHours,
		&c.TerminationPenaltyPct, &c.AdjustmentIndex, &lgpd, &autoRenew, &c.Scope,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning contract row: %w", err)
	}

	c.ClientID = clientID.String
	c.Start = parseNullableTime(start, dateLayout)
	c.End = parseNullableTime(end, dateLayout)
	c.LGPDClause = intToBool(lgpd)
	c.AutoRenew = intToBool(autoRenew)
	if c.CreatedAt, c.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
