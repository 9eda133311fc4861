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

// SQLiteClientRepo implements ClientRepo using a SQLite database.
type SQLiteClientRepo struct {
	db db.DBTX
}

// NewSQLiteClientRepo creates a new SQLiteClientRepo.
func NewSQLiteClientRepo(conn db.DBTX) *SQLiteClientRepo {
	return &SQLiteClientRepo{db: conn}
}

const clientColumns = `id, name, segment, contact, email, phone, city, status, mrr, satisfaction,
	services, since, created_at, updated_at`

// Create inserts c and its history. A missing ID is generated.
func (r *SQLiteClientRepo) Create(ctx context.Context, c *domain.Client) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	stamp(&c.CreatedAt, &c.UpdatedAt)

	services, err := toJSON(nonNil(c.Services))
	if err != nil {
		return fmt.Errorf("encoding services: %w", err)
	}

	query := `INSERT INTO clients (` + clientColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Segment,
		c.Contact,
		c.Email,
		c.Phone,
		c.City,
		string(c.Status),
		c.MRR,
		nullableFloat(c.Satisfaction),
		services,
		nullableTimeToString(c.Since, dateLayout),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting client: %w", err)
	}

	for i := range c.History {
		c.History[i].ClientID = c.ID
		if err := r.AddInteraction(ctx, &c.History[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	history, err := r.listInteractions(ctx, `WHERE client_id = ?`, id)
	if err != nil {
		return nil, err
	}
	c.History = history[c.ID]
	return c, nil
}

// List returns clients in insertion order with their history attached.
func (r *SQLiteClientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}
	rows.Close()

	history, err := r.listInteractions(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		c.History = history[c.ID]
	}
	return clients, nil
}

func (r *SQLiteClientRepo) Update(ctx context.Context, c *domain.Client) error {
	if err := c.Validate(); err != nil {
		return err
	}
	services, err := toJSON(nonNil(c.Services))
	if err != nil {
		return fmt.Errorf("encoding services: %w", err)
	}
	c.UpdatedAt = nowUTC()

	query := `UPDATE clients SET name = ?, segment = ?, contact = ?, email = ?, phone = ?, city = ?,
		status = ?, mrr = ?, satisfaction = ?, services = ?, since = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name,
		c.Segment,
		c.Contact,
		c.Email,
		c.Phone,
		c.City,
		string(c.Status),
		c.MRR,
		nullableFloat(c.Satisfaction),
		services,
		nullableTimeToString(c.Since, dateLayout),
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}
	return affectedOrNotFound(res, "client "+c.ID)
}

// AddInteraction appends an entry to a client's history.
func (r *SQLiteClientRepo) AddInteraction(ctx context.Context, in *domain.Interaction) error {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM clients WHERE id = ?`, in.ClientID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("client %s: %w", in.ClientID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking client: %w", err)
	}

	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	if in.Date.IsZero() {
		in.Date = nowUTC()
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO interactions (id, client_id, date, kind, description, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.ClientID, in.Date.Format(dateLayout), in.Kind, in.Description, nowUTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting interaction: %w", err)
	}
	return nil
}

// listInteractions groups interactions by client, oldest first.
func (r *SQLiteClientRepo) listInteractions(ctx context.Context, where string, args ...any) (map[string][]domain.Interaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, client_id, date, kind, description FROM interactions `+where+` ORDER BY date, rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing interactions: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Interaction)
	for rows.Next() {
		var in domain.Interaction
		var date string
		if err := rows.Scan(&in.ID, &in.ClientID, &date, &in.Kind, &in.Description); err != nil {
			return nil, fmt.Errorf("scanning interaction row: %w", err)
		}
		if in.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("parsing interaction date: %w", err)
		}
		out[in.ClientID] = append(out[in.ClientID], in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating interactions: %w", err)
	}
	return out, nil
}

func scanClient(s scanner) (*domain.Client, error) {
	var c domain.Client
	var status, services, createdAt, updatedAt string
	var satisfaction sql.NullFloat64
	var since sql.NullString

	err := s.Scan(
		&c.ID, &c.Name, &c.Segment, &c.Contact, &c.Email, &c.Phone, &c.City,
		&status, &c.MRR, &satisfaction, &services, &since,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning client row: %w", err)
	}

	c.Status = domain.ClientStatus(status)
	c.Satisfaction = floatPtr(satisfaction)
	c.Since = parseNullableTime(since, dateLayout)
	if err := fromJSON(services, &c.Services); err != nil {
		return nil, fmt.Errorf("decoding services: %w", err)
	}
	if c.CreatedAt, c.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
