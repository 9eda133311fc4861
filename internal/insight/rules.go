package insight

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/nexusai/nexus-crm/internal/domain"
)

func churnRule(snap *domain.Snapshot, _ time.Time) *Insight {
	var names []string
	for _, c := range snap.Clients {
		if c.Status == domain.ClientChurnRisk || c.SatisfactionAtMost(ChurnSatisfactionCeiling) {
			names = append(names, c.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return &Insight{
		Category:       CategoryRetention,
		Severity:       domain.SeverityCritical,
		Title:          fmt.Sprintf("%d client(s) at churn risk", len(names)),
		Description:    "Clients: " + strings.Join(names, ", ") + ".",
		Recommendation: "Schedule a retention meeting within 48h and review SLA and expectations with a formal action plan.",
	}
}

func concentrationRule(snap *domain.Snapshot, _ time.Time) *Insight {
	var top *domain.Client
	var activeSum float64
	for i := range snap.Clients {
		c := &snap.Clients[i]
		if !c.IsActive() || c.MRR <= 0 {
			continue
		}
		activeSum += c.MRR
		if top == nil || c.MRR > top.MRR {
			top = c
		}
	}
	if top == nil {
		return nil
	}

	total := snap.KPIs.MRR
	if total <= 0 {
		total = activeSum
	}
	share := top.MRR / math.Max(total, 1)
	if share < ConcentrationShareFloor {
		return nil
	}
	return &Insight{
		Category:       CategoryFinancialRisk,
		Severity:       domain.SeverityHigh,
		Title:          "Revenue concentrated in " + top.Name,
		Description:    fmt.Sprintf("%d%% of MRR depends on a single client.", int(math.Round(share*100))),
		Recommendation: "Diversify the portfolio with 1-2 new mid-market contracts to reduce dependency.",
	}
}

func overdueRule(snap *domain.Snapshot, now time.Time) *Insight {
	var titles []string
	for _, p := range snap.Projects {
		if p.IsOverdue(now) {
			titles = append(titles, p.Title)
		}
	}
	if len(titles) == 0 {
		return nil
	}
	return &Insight{
		Category:       CategoryDelivery,
		Severity:       domain.SeverityHigh,
		Title:          fmt.Sprintf("%d project(s) overdue", len(titles)),
		Description:    "Late: " + strings.Join(titles, ", ") + ".",
		Recommendation: "Run a war room with the delivery leads and renegotiate milestones with the affected clients.",
	}
}

func backlogRule(snap *domain.Snapshot, _ time.Time) *Insight {
	n := 0
	for _, t := range snap.Tickets {
		if t.IsOpen() && t.IsUrgent() {
			n++
		}
	}
	if n < UrgentBacklogFloor {
		return nil
	}
	return &Insight{
		Category:       CategoryOperations,
		Severity:       domain.SeverityHigh,
		Title:          "Critical support backlog",
		Description:    fmt.Sprintf("%d open ticket(s) with critical or high priority.", n),
		Recommendation: "Create an express queue for critical tickets with a 4h checkpoint.",
	}
}

func upsellRule(snap *domain.Snapshot, _ time.Time) *Insight {
	var pick *domain.Client
	for i := range snap.Clients {
		c := &snap.Clients[i]
		if !c.IsActive() || c.MRR <= 0 || !c.SatisfactionAtLeast(UpsellSatisfactionFloor) {
			continue
		}
		if pick == nil || c.MRR < pick.MRR {
			pick = c
		}
	}
	if pick == nil {
		return nil
	}
	return &Insight{
		Category:       CategoryExpansion,
		Severity:       domain.SeverityMedium,
		Title:          "Upsell opportunity at " + pick.Name,
		Description:    fmt.Sprintf("Client with high satisfaction (%.1f/5) and room to grow the contract.", *pick.Satisfaction),
		Recommendation: "Offer an additional automation or analytics package with a proposal within 7 days.",
	}
}

func complianceRule(snap *domain.Snapshot, _ time.Time) *Insight {
	n := 0
	for _, c := range snap.Contracts {
		if !c.LGPDClause {
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return &Insight{
		Category:       CategoryCompliance,
		Severity:       domain.SeverityHigh,
		Title:          "Contracts without an LGPD clause",
		Description:    fmt.Sprintf("%d contract(s) need a legal amendment for data-protection compliance.", n),
		Recommendation: "Add the standard LGPD addendum and validate it with legal before the next renewal.",
	}
}
