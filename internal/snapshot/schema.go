// Package snapshot reads CRM snapshot files: the JSON or YAML exports the
// CLI accepts through --snapshot and the embedded seed dataset.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the top-level structure of a snapshot file.
type File struct {
	KPIs      KPIsRecord       `json:"kpis" yaml:"kpis"`
	Clients   []ClientRecord   `json:"clients" yaml:"clients"`
	Projects  []ProjectRecord  `json:"projects" yaml:"projects"`
	Tickets   []TicketRecord   `json:"tickets" yaml:"tickets"`
	Contracts []ContractRecord `json:"contracts" yaml:"contracts"`
	Operators []OperatorRecord `json:"operators" yaml:"operators"`
}

type KPIsRecord struct {
	MRR                 float64            `json:"mrr" yaml:"mrr"`
	PreviousMRR         float64            `json:"previous_mrr" yaml:"previous_mrr"`
	ActiveClients       int                `json:"active_clients" yaml:"active_clients"`
	TotalClients        int                `json:"total_clients" yaml:"total_clients"`
	ActiveProjects      int                `json:"active_projects" yaml:"active_projects"`
	RetentionRate       float64            `json:"retention_rate" yaml:"retention_rate"`
	AverageSatisfaction float64            `json:"average_satisfaction" yaml:"average_satisfaction"`
	RevenueByService    map[string]float64 `json:"revenue_by_service,omitempty" yaml:"revenue_by_service,omitempty"`
	MonthlyRevenue      []float64          `json:"monthly_revenue,omitempty" yaml:"monthly_revenue,omitempty"`
	Months              []string           `json:"months,omitempty" yaml:"months,omitempty"`
	Pipeline            []PipelineRecord   `json:"pipeline,omitempty" yaml:"pipeline,omitempty"`
}

type PipelineRecord struct {
	Stage string  `json:"stage" yaml:"stage"`
	Count int     `json:"count" yaml:"count"`
	Value float64 `json:"value" yaml:"value"`
}

// ClientRecord carries one client and its interaction history. Status
// accepts the Portuguese spellings of older exports.
type ClientRecord struct {
	ID           string              `json:"id" yaml:"id"`
	Name         string              `json:"name" yaml:"name"`
	Segment      string              `json:"segment,omitempty" yaml:"segment,omitempty"`
	Contact      string              `json:"contact,omitempty" yaml:"contact,omitempty"`
	Email        string              `json:"email,omitempty" yaml:"email,omitempty"`
	Phone        string              `json:"phone,omitempty" yaml:"phone,omitempty"`
	City         string              `json:"city,omitempty" yaml:"city,omitempty"`
	Status       string              `json:"status" yaml:"status"`
	MRR          float64             `json:"mrr" yaml:"mrr"`
	Satisfaction *float64            `json:"satisfaction,omitempty" yaml:"satisfaction,omitempty"`
	Services     []string            `json:"services,omitempty" yaml:"services,omitempty"`
	Since        *string             `json:"since,omitempty" yaml:"since,omitempty"`
	History      []InteractionRecord `json:"history,omitempty" yaml:"history,omitempty"`
}

type InteractionRecord struct {
	Date        string `json:"date" yaml:"date"`
	Kind        string `json:"kind" yaml:"kind"`
	Description string `json:"description" yaml:"description"`
}

type ProjectRecord struct {
	ID          string       `json:"id" yaml:"id"`
	ClientID    string       `json:"client_id" yaml:"client_id"`
	Title       string       `json:"title" yaml:"title"`
	Status      string       `json:"status" yaml:"status"`
	Priority    string       `json:"priority,omitempty" yaml:"priority,omitempty"`
	Type        string       `json:"type,omitempty" yaml:"type,omitempty"`
	Owner       string       `json:"owner,omitempty" yaml:"owner,omitempty"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Deadline    *string      `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Progress    int          `json:"progress" yaml:"progress"`
	Tasks       []TaskRecord `json:"tasks,omitempty" yaml:"tasks,omitempty"`
}

type TaskRecord struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Done  bool   `json:"done" yaml:"done"`
}

type TicketRecord struct {
	ID          string `json:"id" yaml:"id"`
	ClientID    string `json:"client_id" yaml:"client_id"`
	Title       string `json:"title" yaml:"title"`
	Status      string `json:"status,omitempty" yaml:"status,omitempty"`
	Priority    string `json:"priority,omitempty" yaml:"priority,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Assignee    string `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Created     string `json:"created" yaml:"created"`
}

type ContractRecord struct {
	ID                    string  `json:"id" yaml:"id"`
	ClientID              string  `json:"client_id,omitempty" yaml:"client_id,omitempty"`
	Title                 string  `json:"title" yaml:"title"`
	Type                  string  `json:"type,omitempty" yaml:"type,omitempty"`
	Start                 *string `json:"start,omitempty" yaml:"start,omitempty"`
	End                   *string `json:"end,omitempty" yaml:"end,omitempty"`
	MonthlyValue          float64 `json:"monthly_value" yaml:"monthly_value"`
	SLAHours              int     `json:"sla_hours" yaml:"sla_hours"`
	TerminationPenaltyPct float64 `json:"termination_penalty_pct" yaml:"termination_penalty_pct"`
	AdjustmentIndex       string  `json:"adjustment_index,omitempty" yaml:"adjustment_index,omitempty"`
	LGPDClause            bool    `json:"lgpd_clause" yaml:"lgpd_clause"`
	AutoRenew             bool    `json:"auto_renew" yaml:"auto_renew"`
	Scope                 string  `json:"scope,omitempty" yaml:"scope,omitempty"`
}

type OperatorRecord struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Initials string `json:"initials,omitempty" yaml:"initials,omitempty"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Format selects the decoder for a snapshot file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension. Anything that is
// not .json is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes raw snapshot data without validating it.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing snapshot json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing snapshot yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", format)
	}
	return &f, nil
}

// LoadSchema reads and parses a snapshot file.
func LoadSchema(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, FormatForPath(path))
}
