// Package insight derives prioritized executive insights from a CRM snapshot
// using a fixed set of deterministic rules.
package insight

import (
	"sort"
	"time"

	"github.com/nexusai/nexus-crm/internal/domain"
)

type Category string

const (
	CategoryRetention     Category = "Retention"
	CategoryFinancialRisk Category = "Financial Risk"
	CategoryDelivery      Category = "Delivery"
	CategoryOperations    Category = "Operations"
	CategoryExpansion     Category = "Expansion"
	CategoryCompliance    Category = "Compliance"
	CategoryPerformance   Category = "Performance"
)

// Insight is a single prioritized finding. Insights are recomputed on every
// call and never stored.
type Insight struct {
	Category       Category        `json:"category"`
	Severity       domain.Severity `json:"severity"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Recommendation string          `json:"recommendation"`
	// Impact and Deadline are only filled by model-generated suggestions.
	Impact   string `json:"impact,omitempty"`
	Deadline string `json:"deadline,omitempty"`
}

// IsRisk reports whether the insight belongs in the risk section of a report
// (critical or high). Everything else is an opportunity.
func (i Insight) IsRisk() bool {
	return i.Severity.Rank() >= domain.SeverityHigh.Rank()
}

// Thresholds used by the rules.
const (
	ChurnSatisfactionCeiling = 3.5
	ConcentrationShareFloor  = 0.35
	UrgentBacklogFloor       = 2
	UpsellSatisfactionFloor  = 4.6
)

type rule func(snap *domain.Snapshot, now time.Time) *Insight

// rules run in this order; the order is also the tie-break among insights of
// equal severity.
var rules = []rule{
	churnRule,
	concentrationRule,
	overdueRule,
	backlogRule,
	upsellRule,
	complianceRule,
}

// Generate evaluates every rule against snap and returns the insights that
// fired, most severe first. It never fails and always returns at least one
// insight: when no rule fires a single low-severity "stable operation"
// insight is returned.
func Generate(snap domain.Snapshot, now time.Time) []Insight {
	var out []Insight
	for _, r := range rules {
		if in := r(&snap, now); in != nil {
			out = append(out, *in)
		}
	}
	if len(out) == 0 {
		out = append(out, stableOperation())
	}
	Sort(out)
	return out
}

// Sort orders insights by severity rank descending. Equal severities keep
// their relative order.
func Sort(insights []Insight) {
	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Severity.Rank() > insights[j].Severity.Rank()
	})
}

// Split partitions insights into risks (critical, high) and opportunities
// (medium, low), preserving order within each group.
func Split(insights []Insight) (risks, opportunities []Insight) {
	for _, in := range insights {
		if in.IsRisk() {
			risks = append(risks, in)
		} else {
			opportunities = append(opportunities, in)
		}
	}
	return risks, opportunities
}

// Top returns at most n insights from the front of the list.
func Top(insights []Insight, n int) []Insight {
	if n < 0 {
		n = 0
	}
	if n < len(insights) {
		return insights[:n]
	}
	return insights
}

func stableOperation() Insight {
	return Insight{
		Category:       CategoryPerformance,
		Severity:       domain.SeverityLow,
		Title:          "Stable operation",
		Description:    "No relevant risk detected right now.",
		Recommendation: "Focus on commercial expansion and automation to grow margin.",
	}
}
