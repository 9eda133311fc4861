package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nexusai/nexus-crm/internal/db"
	"github.com/nexusai/nexus-crm/internal/domain"
)

// SQLiteKPIRepo implements KPIRepo over the single-row kpis table.
type SQLiteKPIRepo struct {
	db db.DBTX
}

// NewSQLiteKPIRepo creates a new SQLiteKPIRepo.
func NewSQLiteKPIRepo(conn db.DBTX) *SQLiteKPIRepo {
	return &SQLiteKPIRepo{db: conn}
}

type pipelineRow struct {
	Stage string  `json:"stage"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

func (r *SQLiteKPIRepo) Get(ctx context.Context) (*domain.KPIs, error) {
	query := `SELECT mrr, previous_mrr, active_clients, total_clients, active_projects, retention_rate,
		avg_satisfaction, revenue_by_service, monthly_revenue, months, pipeline
		FROM kpis WHERE id = 1`
	var k domain.KPIs
	var revenue, monthly, months, pipeline string
	err := r.db.QueryRowContext(ctx, query).Scan(
		&k.MRR, &k.PreviousMRR, &k.ActiveClients, &k.TotalClients, &k.ActiveProjects,
		&k.RetentionRate, &k.AverageSatisfaction, &revenue, &monthly, &months, &pipeline,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("kpis: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning kpis: %w", err)
	}

	var stages []pipelineRow
	for _, f := range []struct {
		raw string
		dst any
	}{
		{revenue, &k.RevenueByService},
		{monthly, &k.MonthlyRevenue},
		{months, &k.Months},
		{pipeline, &stages},
	} {
		if err := fromJSON(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("decoding kpis: %w", err)
		}
	}
	for _, s := range stages {
		k.Pipeline = append(k.Pipeline, domain.PipelineStage{Stage: s.Stage, Count: s.Count, Value: s.Value})
	}
	if len(k.RevenueByService) == 0 {
		k.RevenueByService = nil
	}
	if len(k.MonthlyRevenue) == 0 {
		k.MonthlyRevenue = nil
	}
	if len(k.Months) == 0 {
		k.Months = nil
	}
	return &k, nil
}

func (r *SQLiteKPIRepo) Upsert(ctx context.Context, k *domain.KPIs) error {
	stages := make([]pipelineRow, 0, len(k.Pipeline))
	for _, s := range k.Pipeline {
		stages = append(stages, pipelineRow{Stage: s.Stage, Count: s.Count, Value: s.Value})
	}

	revenue := k.RevenueByService
	if revenue == nil {
		revenue = map[string]float64{}
	}
	monthly := k.MonthlyRevenue
	if monthly == nil {
		monthly = []float64{}
	}
	encoded := make([]string, 0, 4)
	for _, v := range []any{revenue, monthly, nonNil(k.Months), stages} {
		s, err := toJSON(v)
		if err != nil {
			return fmt.Errorf("encoding kpis: %w", err)
		}
		encoded = append(encoded, s)
	}

	query := `INSERT INTO kpis (id, mrr, previous_mrr, active_clients, total_clients, active_projects,
		retention_rate, avg_satisfaction, revenue_by_service, monthly_revenue, months, pipeline, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mrr = excluded.mrr,
			previous_mrr = excluded.previous_mrr,
			active_clients = excluded.active_clients,
			total_clients = excluded.total_clients,
			active_projects = excluded.active_projects,
			retention_rate = excluded.retention_rate,
			avg_satisfaction = excluded.avg_satisfaction,
			revenue_by_service = excluded.revenue_by_service,
			monthly_revenue = excluded.monthly_revenue,
			months = excluded.months,
			pipeline = excluded.pipeline,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		k.MRR, k.PreviousMRR, k.ActiveClients, k.TotalClients, k.ActiveProjects,
		k.RetentionRate, k.AverageSatisfaction,
		encoded[0], encoded[1], encoded[2], encoded[3],
		nowUTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting kpis: %w", err)
	}
	return nil
}
