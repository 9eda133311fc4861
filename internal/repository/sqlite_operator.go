package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nexusai/nexus-crm/internal/db"
	"github.com/nexusai/nexus-crm/internal/domain"
)

// SQLiteOperatorRepo implements OperatorRepo using a SQLite database.
type SQLiteOperatorRepo struct {
	db db.DBTX
}

// NewSQLiteOperatorRepo creates a new SQLiteOperatorRepo.
func NewSQLiteOperatorRepo(conn db.DBTX) *SQLiteOperatorRepo {
	return &SQLiteOperatorRepo{db: conn}
}

func (r *SQLiteOperatorRepo) Create(ctx context.Context, o *domain.Operator) error {
	if o.Name == "" {
		return fmt.Errorf("operator name is required")
	}
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO operators (id, name, initials, title) VALUES (?, ?, ?, ?)`,
		o.ID, o.Name, o.Initials, o.Title)
	if err != nil {
		return fmt.Errorf("inserting operator: %w", err)
	}
	return nil
}

func (r *SQLiteOperatorRepo) List(ctx context.Context) ([]*domain.Operator, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, initials, title FROM operators ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing operators: %w", err)
	}
	defer rows.Close()

	var ops []*domain.Operator
	for rows.Next() {
		var o domain.Operator
		if err := rows.Scan(&o.ID, &o.Name, &o.Initials, &o.Title); err != nil {
			return nil, fmt.Errorf("scanning operator row: %w", err)
		}
		ops = append(ops, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating operators: %w", err)
	}
	return ops, nil
}
