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

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, client_id, title, status, priority, type, owner, description, deadline,
	progress, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Priority == "" {
		p.Priority = domain.PriorityMedium
	}
	stamp(&p.CreatedAt, &p.UpdatedAt)

	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ClientID,
		p.Title,
		string(p.Status),
		string(p.Priority),
		p.Type,
		p.Owner,
		p.Description,
		zeroableDate(p.Deadline),
		p.Progress,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return r.insertTasks(ctx, p)
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	tasks, err := r.listTasks(ctx, `WHERE project_id = ?`, id)
	if err != nil {
		return nil, err
	}
	p.Tasks = tasks[p.ID]
	return p, nil
}

// List returns projects in insertion order with their tasks attached.
func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	rows.Close()

	tasks, err := r.listTasks(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		p.Tasks = tasks[p.ID]
	}
	return projects, nil
}

// Update rewrites the project row and replaces its task list.
func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = nowUTC()

	query := `UPDATE projects SET client_id = ?, title = ?, status = ?, priority = ?, type = ?, owner = ?,
		description = ?, deadline = ?, progress = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.ClientID,
		p.Title,
		string(p.Status),
		string(p.Priority),
		p.Type,
		p.Owner,
		p.Description,
		zeroableDate(p.Deadline),
		p.Progress,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	if err := affectedOrNotFound(res, "project "+p.ID); err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM project_tasks WHERE project_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clearing project tasks: %w", err)
	}
	return r.insertTasks(ctx, p)
}

func (r *SQLiteProjectRepo) insertTasks(ctx context.Context, p *domain.Project) error {
	for i := range p.Tasks {
		t := &p.Tasks[i]
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO project_tasks (id, project_id, title, done, order_index) VALUES (?, ?, ?, ?, ?)`,
			t.ID, p.ID, t.Title, boolToInt(t.Done), i,
		)
		if err != nil {
			return fmt.Errorf("inserting project task: %w", err)
		}
	}
	return nil
}

func (r *SQLiteProjectRepo) listTasks(ctx context.Context, where string, args ...any) (map[string][]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, title, done FROM project_tasks `+where+` ORDER BY project_id, order_index`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing project tasks: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Task)
	for rows.Next() {
		var t domain.Task
		var projectID string
		var done int
		if err := rows.Scan(&t.ID, &projectID, &t.Title, &done); err != nil {
			return nil, fmt.Errorf("scanning project task row: %w", err)
		}
		t.Done = intToBool(done)
		out[projectID] = append(out[projectID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project tasks: %w", err)
	}
	return out, nil
}

func scanProject(s scanner) (*domain.Project, error) {
	var p domain.Project
	var status, priority, createdAt, updatedAt string
	var deadline sql.NullString

	err := s.Scan(
		&p.ID, &p.ClientID, &p.Title, &status, &priority, &p.Type, &p.Owner, &p.Description,
		&deadline, &p.Progress, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project row: %w", err)
	}

	p.Status = domain.ProjectStatus(status)
	p.Priority = domain.Priority(priority)
	if d := parseNullableTime(deadline, dateLayout); d != nil {
		p.Deadline = *d
	}
	if p.CreatedAt, p.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
