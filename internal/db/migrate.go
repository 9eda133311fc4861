package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateSeedKPIRow(db); err != nil {
		return fmt.Errorf("seeding kpi row: %w", err)
	}
	if err := migrateNormalizeLegacyStatuses(db); err != nil {
		return fmt.Errorf("normalizing legacy statuses: %w", err)
	}
	return nil
}

// migrateSeedKPIRow makes sure the single KPI row exists so readers never
// have to handle its absence.
func migrateSeedKPIRow(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(),
		`INSERT OR IGNORE INTO kpis (id, updated_at) VALUES (1, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))`)
	return err
}

// legacyStatuses maps the Portuguese status values written by older exports
// to the canonical ones. Tables created before the CHECK constraints existed
// may still hold them.
var legacyStatuses = []struct{ table, column, from, to string }{
	{"clients", "status", "ativo", "active"},
	{"clients", "status", "risco_churn", "churn_risk"},
	{"clients", "status", "inativo", "inactive"},
	{"projects", "status", "em_progresso", "in_progress"},
	{"projects", "status", "revisao", "review"},
	{"projects", "status", "concluido", "done"},
	{"tickets", "status", "aberto", "open"},
	{"tickets", "status", "em_andamento", "in_progress"},
	{"tickets", "status", "resolvido", "resolved"},
	{"tickets", "priority", "critica", "critical"},
	{"tickets", "priority", "alta", "high"},
	{"tickets", "priority", "media", "medium"},
	{"tickets", "priority", "baixa", "low"},
}

func migrateNormalizeLegacyStatuses(db *sql.DB) error {
	ctx := context.Background()
	for _, m := range legacyStatuses {
		query := fmt.Sprintf(`UPDATE %s SET %s = ? WHERE %s = ?`, m.table, m.column, m.column)
		if _, err := db.ExecContext(ctx, query, m.to, m.from); err != nil {
			return fmt.Errorf("normalizing %s.%s %q: %w", m.table, m.column, m.from, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		segment      TEXT NOT NULL DEFAULT '',
		contact      TEXT NOT NULL DEFAULT '',
		email        TEXT NOT NULL DEFAULT '',
		phone        TEXT NOT NULL DEFAULT '',
		city         TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'lead'
		             CHECK(status IN ('active','lead','churn_risk','inactive')),
		mrr          REAL NOT NULL DEFAULT 0 CHECK(mrr >= 0),
		satisfaction REAL CHECK(satisfaction IS NULL OR (satisfaction >= 0 AND satisfaction <= 5)),
		services     TEXT NOT NULL DEFAULT '[]',
		since        TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_clients_status ON clients(status)`,

	`CREATE TABLE IF NOT EXISTS interactions (
		id          TEXT PRIMARY KEY,
		client_id   TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		date        TEXT NOT NULL,
		kind        TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_client ON interactions(client_id)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		client_id   TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'backlog'
		            CHECK(status IN ('backlog','in_progress','review','done')),
		priority    TEXT NOT NULL DEFAULT 'medium',
		type        TEXT NOT NULL DEFAULT '',
		owner       TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		deadline    TEXT,
		progress    INTEGER NOT NULL DEFAULT 0 CHECK(progress >= 0 AND progress <= 100),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id)`,

	`CREATE TABLE IF NOT EXISTS project_tasks (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		done        INTEGER NOT NULL DEFAULT 0,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_project_tasks_project ON project_tasks(project_id)`,

	`CREATE TABLE IF NOT EXISTS tickets (
		id          TEXT PRIMARY KEY,
		client_id   TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'open'
		            CHECK(status IN ('open','in_progress','resolved')),
		priority    TEXT NOT NULL DEFAULT 'medium'
		            CHECK(priority IN ('critical','high','medium','low')),
		type        TEXT NOT NULL DEFAULT '',
		assignee    TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_client ON tickets(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_status ON tickets(status)`,

	`CREATE TABLE IF NOT EXISTS contracts (
		id               TEXT PRIMARY KEY,
		client_id        TEXT REFERENCES clients(id) ON DELETE SET NULL,
		title            TEXT NOT NULL,
		type             TEXT NOT NULL DEFAULT '',
		start_date       TEXT,
		end_date         TEXT,
		monthly_value    REAL NOT NULL DEFAULT 0,
		sla_hours        INTEGER NOT NULL DEFAULT 0,
		penalty_pct      REAL NOT NULL DEFAULT 0,
		adjustment_index TEXT NOT NULL DEFAULT '',
		lgpd_clause      INTEGER NOT NULL DEFAULT 0,
		scope            TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_client ON contracts(client_id)`,
	`ALTER TABLE contracts ADD COLUMN auto_renew INTEGER NOT NULL DEFAULT 0`,

	`CREATE TABLE IF NOT EXISTS operators (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		initials TEXT NOT NULL DEFAULT '',
		title    TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS kpis (
		id                 INTEGER PRIMARY KEY CHECK(id = 1),
		mrr                REAL NOT NULL DEFAULT 0,
		previous_mrr       REAL NOT NULL DEFAULT 0,
		active_clients     INTEGER NOT NULL DEFAULT 0,
		total_clients      INTEGER NOT NULL DEFAULT 0,
		active_projects    INTEGER NOT NULL DEFAULT 0,
		retention_rate     REAL NOT NULL DEFAULT 0,
		avg_satisfaction   REAL NOT NULL DEFAULT 0,
		revenue_by_service TEXT NOT NULL DEFAULT '{}',
		monthly_revenue    TEXT NOT NULL DEFAULT '[]',
		months             TEXT NOT NULL DEFAULT '[]',
		pipeline           TEXT NOT NULL DEFAULT '[]',
		updated_at         TEXT NOT NULL
	)`,
}
