package intelligence

import (
	"encoding/json"

	"github.com/nexusai/nexus-crm/internal/domain"
)

// snapshotDigest is the compact view of a snapshot sent to the model.
// Contact details and interaction history are left out.
type snapshotDigest struct {
	KPIs      kpiDigest        `json:"kpis"`
	Clients   []clientDigest   `json:"clients"`
	Projects  []projectDigest  `json:"projects"`
	Tickets   []ticketDigest   `json:"tickets"`
	Contracts []contractDigest `json:"contracts"`
}

type kpiDigest struct {
	MRR                 float64            `json:"mrr"`
	PreviousMRR         float64            `json:"previous_mrr"`
	ActiveClients       int                `json:"active_clients"`
	TotalClients        int                `json:"total_clients"`
	RetentionRate       float64            `json:"retention_rate"`
	AverageSatisfaction float64            `json:"average_satisfaction"`
	RevenueByService    map[string]float64 `json:"revenue_by_service,omitempty"`
	MonthlyRevenue      []float64          `json:"monthly_revenue,omitempty"`
}

type clientDigest struct {
	Name         string   `json:"name"`
	Segment      string   `json:"segment,omitempty"`
	Status       string   `json:"status"`
	MRR          float64  `json:"mrr"`
	Satisfaction *float64 `json:"satisfaction,omitempty"`
	Services     []string `json:"services,omitempty"`
}

type projectDigest struct {
	Title    string `json:"title"`
	Client   string `json:"client"`
	Status   string `json:"status"`
	Deadline string `json:"deadline,omitempty"`
	Progress int    `json:"progress"`
}

type ticketDigest struct {
	Title    string `json:"title"`
	Client   string `json:"client"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

type contractDigest struct {
	Title        string  `json:"title"`
	Client       string  `json:"client"`
	MonthlyValue float64 `json:"monthly_value"`
	SLAHours     int     `json:"sla_hours"`
	PenaltyPct   float64 `json:"penalty_pct"`
	Adjustment   string  `json:"adjustment,omitempty"`
	LGPDClause   bool    `json:"lgpd_clause"`
}

func digest(snap *domain.Snapshot) snapshotDigest {
	d := snapshotDigest{
		KPIs: kpiDigest{
			MRR:                 snap.KPIs.MRR,
			PreviousMRR:         snap.KPIs.PreviousMRR,
			ActiveClients:       snap.KPIs.ActiveClients,
			TotalClients:        snap.KPIs.TotalClients,
			RetentionRate:       snap.KPIs.RetentionRate,
			AverageSatisfaction: snap.KPIs.AverageSatisfaction,
			RevenueByService:    snap.KPIs.RevenueByService,
			MonthlyRevenue:      snap.KPIs.MonthlyRevenue,
		},
	}
	for _, c := range snap.Clients {
		d.Clients = append(d.Clients, clientDigest{
			Name: c.Name, Segment: c.Segment, Status: string(c.Status),
			MRR: c.MRR, Satisfaction: c.Satisfaction, Services: c.Services,
		})
	}
	for _, p := range snap.Projects {
		pd := projectDigest{Title: p.Title, Client: snap.ClientName(p.ClientID), Status: string(p.Status), Progress: p.Progress}
		if !p.Deadline.IsZero() {
			pd.Deadline = p.Deadline.Format("2006-01-02")
		}
		d.Projects = append(d.Projects, pd)
	}
	for _, t := range snap.Tickets {
		d.Tickets = append(d.Tickets, ticketDigest{
			Title: t.Title, Client: snap.ClientName(t.ClientID), Status: string(t.Status), Priority: string(t.Priority),
		})
	}
	for _, c := range snap.Contracts {
		d.Contracts = append(d.Contracts, contractDigest{
			Title: c.Title, Client: snap.ClientName(c.ClientID), MonthlyValue: c.MonthlyValue,
			SLAHours: c.SLAHours, PenaltyPct: c.TerminationPenaltyPct, Adjustment: c.AdjustmentIndex, LGPDClause: c.LGPDClause,
		})
	}
	return d
}

func digestJSON(snap *domain.Snapshot) (string, error) {
	data, err := json.MarshalIndent(digest(snap), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
