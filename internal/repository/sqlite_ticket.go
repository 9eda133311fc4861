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

// SQLiteTicketRepo implements TicketRepo using a SQLite database.
type SQLiteTicketRepo struct {
	db db.DBTX
}

// NewSQLiteTicketRepo creates a new SQLiteTicketRepo.
func NewSQLiteTicketRepo(conn db.DBTX) *SQLiteTicketRepo {
	return &SQLiteTicketRepo{db: conn}
}

const ticketColumns = `id, client_id, title, status, priority, type, assignee, description, created_at, updated_at`

func (r *SQLiteTicketRepo) Create(ctx context.Context, t *domain.Ticket) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	stamp(&t.Created, &t.UpdatedAt)

	query := `INSERT INTO tickets (` + ticketColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ClientID,
		t.Title,
		string(t.Status),
		string(t.Priority),
		t.Type,
		t.Assignee,
		t.Description,
		t.Created.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting ticket: %w", err)
	}
	return nil
}

func (r *SQLiteTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id)
	t, err := scanTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ticket %s: %w", id, ErrNotFound)
	}
	return t, err
}

// List returns tickets in insertion order.
func (r *SQLiteTicketRepo) List(ctx context.Context) ([]*domain.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tickets: %w", err)
	}
	return tickets, nil
}

func (r *SQLiteTicketRepo) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	if _, err := domain.ParseTicketStatus(string(status)); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE tickets SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), nowUTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating ticket status: %w", err)
	}
	return affectedOrNotFound(res, "ticket "+id)
}

func scanTicket(s scanner) (*domain.Ticket, error) {
	var t domain.Ticket
	var status, priority, createdAt, updatedAt string

	err := s.Scan(&t.ID, &t.ClientID, &t.Title, &status, &priority, &t.Type, &t.Assignee, &t.Description,
		&createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning ticket row: %w", err)
	}

	t.Status = domain.TicketStatus(status)
	t.Priority = domain.Priority(priority)
	if t.Created, t.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
