package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexusai/nexus-crm/internal/domain"
)

// Client options
type ClientOption func(*domain.Client)

func WithClientID(id string) ClientOption {
	return func(c *domain.Client) {
		c.ID = id
	}
}

func WithClientStatus(s domain.ClientStatus) ClientOption {
	return func(c *domain.Client) {
		c.Status = s
	}
}

func WithMRR(v float64) ClientOption {
	return func(c *domain.Client) {
		c.MRR = v
	}
}

func WithSatisfaction(v float64) ClientOption {
	return func(c *domain.Client) {
		c.Satisfaction = &v
	}
}

func WithServices(services ...string) ClientOption {
	return func(c *domain.Client) {
		c.Services = services
	}
}

func WithSegment(s string) ClientOption {
	return func(c *domain.Client) {
		c.Segment = s
	}
}

func NewTestClient(name string, opts ...ClientOption) *domain.Client {
	now := time.Now().UTC()
	c := &domain.Client{
		ID:        uuid.New().String(),
		Name:      name,
		Segment:   "test",
		Status:    domain.ClientActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithDeadline(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.Deadline = d
	}
}

func WithProgress(n int) ProjectOption {
	return func(p *domain.Project) {
		p.Progress = n
	}
}

func WithTasks(tasks ...domain.Task) ProjectOption {
	return func(p *domain.Project) {
		p.Tasks = tasks
	}
}

func NewTestProject(clientID, title string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Title:     title,
		Status:    domain.ProjectInProgress,
		Priority:  domain.PriorityMedium,
		Deadline:  domain.DateOf(now.AddDate(0, 1, 0), time.UTC),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ticket options
type TicketOption func(*domain.Ticket)

func WithTicketStatus(s domain.TicketStatus) TicketOption {
	return func(t *domain.Ticket) {
		t.Status = s
	}
}

func WithPriority(p domain.Priority) TicketOption {
	return func(t *domain.Ticket) {
		t.Priority = p
	}
}

func NewTestTicket(clientID, title string, opts ...TicketOption) *domain.Ticket {
	now := time.Now().UTC()
	t := &domain.Ticket{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Title:     title,
		Status:    domain.TicketOpen,
		Priority:  domain.PriorityMedium,
		Type:      "bug",
		Created:   domain.DateOf(now, time.UTC),
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Contract options
type ContractOption func(*domain.Contract)

func WithLGPD(present bool) ContractOption {
	return func(c *domain.Contract) {
		c.LGPDClause = present
	}
}

func WithPeriod(start, end time.Time) ContractOption {
	return func(c *domain.Contract) {
		c.Start = &start
		c.End = &end
	}
}

func WithSLA(hours int) ContractOption {
	return func(c *domain.Contract) {
		c.SLAHours = hours
	}
}

func WithPenalty(pct float64) ContractOption {
	return func(c *domain.Contract) {
		c.TerminationPenaltyPct = pct
	}
}

func NewTestContract(clientID, title string, opts ...ContractOption) *domain.Contract {
	now := time.Now().UTC()
	c := &domain.Contract{
		ID:              uuid.New().String(),
		ClientID:        clientID,
		Title:           title,
		Type:            "Monthly Retainer",
		MonthlyValue:    1000,
		AdjustmentIndex: "IPCA anual",
		LGPDClause:      true,
		Scope:           "Analytics services.",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Date parses a YYYY-MM-DD literal and panics on malformed input. Test use only.
func Date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// SampleNow is the reference clock used with SampleSnapshot.
var SampleNow = time.Date(2026, 2, 26, 10, 0, 0, 0, time.UTC)

// SampleSnapshot returns a small agency portfolio: one churn-risk client,
// one dominant client, one overdue project, one contract without the LGPD
// clause, and one highly satisfied low-MRR client.
func SampleSnapshot() domain.Snapshot {
	sat := func(v float64) *float64 { return &v }
	return domain.Snapshot{
		KPIs: domain.KPIs{
			MRR:                 31500,
			PreviousMRR:         28200,
			ActiveClients:       3,
			TotalClients:        5,
			RetentionRate:       87.5,
			AverageSatisfaction: 4.48,
			RevenueByService: map[string]float64{
				"BI & Dashboards": 12700,
				"Automation":      12000,
				"Data Analysis":   6800,
			},
			MonthlyRevenue: []float64{25900, 28200, 31500},
			Months:         []string{"Dec", "Jan", "Feb"},
		},
		Clients: []domain.Client{
			{ID: "c1", Name: "TechCorp Solutions", Status: domain.ClientActive, MRR: 8500, Satisfaction: sat(4.8), Services: []string{"BI & Dashboards"}},
			{ID: "c2", Name: "FinEdge Capital", Status: domain.ClientActive, MRR: 12000, Satisfaction: sat(4.6), Services: []string{"Automation"}},
			{ID: "c3", Name: "RetailPro Ltda", Status: domain.ClientChurnRisk, MRR: 4200, Satisfaction: sat(3.2)},
			{ID: "c4", Name: "MedTech Analytics", Status: domain.ClientLead},
			{ID: "c5", Name: "Logistica Express", Status: domain.ClientActive, MRR: 6800, Satisfaction: sat(4.9)},
		},
		Projects: []domain.Project{
			{ID: "p1", ClientID: "c2", Title: "Executive Dashboard", Status: domain.ProjectInProgress, Deadline: Date("2026-03-10"), Progress: 65, Tasks: []domain.Task{{ID: "t1", Title: "Dimensional model", Done: true}, {ID: "t2", Title: "Page design"}}},
			{ID: "p2", ClientID: "c5", Title: "ETL Pipeline", Status: domain.ProjectReview, Deadline: Date("2026-02-28"), Progress: 90},
			{ID: "p3", ClientID: "c3", Title: "Performance Report", Status: domain.ProjectInProgress, Deadline: Date("2026-02-25"), Progress: 40},
			{ID: "p4", ClientID: "c2", Title: "Support Bot", Status: domain.ProjectDone, Deadline: Date("2026-01-31"), Progress: 100},
		},
		Tickets: []domain.Ticket{
			{ID: "tk1", ClientID: "c3", Title: "Slow dashboard filters", Status: domain.TicketOpen, Priority: domain.PriorityHigh, Created: Date("2026-02-18")},
			{ID: "tk2", ClientID: "c2", Title: "Projection chart", Status: domain.TicketInProgress, Priority: domain.PriorityMedium, Created: Date("2026-02-15")},
			{ID: "tk3", ClientID: "c1", Title: "PDF export", Status: domain.TicketOpen, Priority: domain.PriorityLow, Created: Date("2026-02-19")},
		},
		Contracts: []domain.Contract{
			{ID: "ct1", ClientID: "c2", Title: "Analytics Retainer", Type: "Monthly Retainer", MonthlyValue: 12000, SLAHours: 6, TerminationPenaltyPct: 20, AdjustmentIndex: "IPCA anual", LGPDClause: true},
			{ID: "ct2", ClientID: "c3", Title: "BI Project", Type: "Fixed Project", MonthlyValue: 4200, SLAHours: 24, TerminationPenaltyPct: 10, AdjustmentIndex: "Sem reajuste", LGPDClause: false},
		},
		Operators: []domain.Operator{
			{ID: "op1", Name: "Ana Silva", Initials: "AS", Title: "Senior Analyst"},
			{ID: "op2", Name: "Bruno Takeda", Initials: "BT", Title: "Data Engineer"},
		},
	}
}
