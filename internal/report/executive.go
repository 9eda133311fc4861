// Package report composes the plain-text executive report and the contract
// draft from CRM data.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/insight"
)

const DefaultPeriod = "monthly"

// Options controls report composition. Zero values use defaults.
type Options struct {
	Period string
	Now    time.Time
}

// Summary carries the headline numbers of a report for structured consumers.
type Summary struct {
	MRR                float64 `json:"mrr"`
	MRRGrowthPct       float64 `json:"mrrGrowthPct"`
	ActiveClients      int     `json:"activeClients"`
	TotalClients       int     `json:"totalClients"`
	ProjectsInProgress int     `json:"projectsInProgress"`
	AverageProgress    int     `json:"averageProgress"`
	OpenTickets        int     `json:"openTickets"`
}

type Report struct {
	Period   string            `json:"period"`
	Text     string            `json:"text"`
	Summary  Summary           `json:"summary"`
	Insights []insight.Insight `json:"insights"`
}

var actionPlan = []string{
	"Run an executive retention round with the clients on alert.",
	"Replan late projects with a new schedule and a clear owner.",
	"Send an upsell proposal to the clients with high satisfaction.",
	"Update sensitive contract clauses (SLA, penalty, LGPD, adjustment).",
}

// GenerateExecutiveReport builds the four-section executive report. It runs
// the insight engine exactly once and splits its output into risks and
// opportunities.
func GenerateExecutiveReport(snap domain.Snapshot, opts Options) Report {
	period := strings.TrimSpace(opts.Period)
	if period == "" {
		period = DefaultPeriod
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	insights := insight.Generate(snap, now)
	risks, opportunities := insight.Split(insights)
	sum := Summarize(snap)

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("EXECUTIVE AI REPORT - %s", strings.ToUpper(period))
	line("Generated on: %s", now.Format("02/01/2006"))
	line("")
	line("1. Executive Summary")
	line("- Current MRR: %s (%s%% vs previous period)", FormatBRL(sum.MRR), FormatGrowth(sum.MRRGrowthPct))
	line("- Active clients: %d/%d", sum.ActiveClients, sum.TotalClients)
	line("- Projects in progress: %d", sum.ProjectsInProgress)
	line("- Average project progress: %d%%", sum.AverageProgress)
	line("- Open tickets: %d", sum.OpenTickets)
	line("")
	line("2. Principal Risks")
	writeNumbered(&b, risks, "No critical risks identified.")
	line("")
	line("3. Opportunities")
	writeNumbered(&b, opportunities, "No relevant opportunities identified.")
	line("")
	line("4. Action Plan (next 15 days)")
	for i, item := range actionPlan {
		line("%d. %s", i+1, item)
	}

	return Report{
		Period:   period,
		Text:     strings.TrimSuffix(b.String(), "\n"),
		Summary:  sum,
		Insights: insights,
	}
}

// Summarize computes the headline numbers of snap.
func Summarize(snap domain.Snapshot) Summary {
	sum := Summary{
		MRR:             snap.KPIs.MRR,
		MRRGrowthPct:    GrowthPct(snap.KPIs.MRR, snap.KPIs.PreviousMRR),
		TotalClients:    len(snap.Clients),
		AverageProgress: snap.AverageProgress(),
		OpenTickets:     len(snap.OpenTickets()),
	}
	sum.ActiveClients = len(snap.ActiveClients())
	for _, p := range snap.Projects {
		if p.IsInFlight() {
			sum.ProjectsInProgress++
		}
	}
	return sum
}

func writeNumbered(b *strings.Builder, items []insight.Insight, empty string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "1. %s\n", empty)
		return
	}
	for i, in := range items {
		fmt.Fprintf(b, "%d. %s - %s\n", i+1, in.Title, in.Recommendation)
	}
}
