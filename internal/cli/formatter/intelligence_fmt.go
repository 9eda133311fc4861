package formatter

import (
	"fmt"
	"strings"

	"github.com/nexusai/nexus-crm/internal/agent"
	"github.com/nexusai/nexus-crm/internal/app"
	"github.com/nexusai/nexus-crm/internal/insight"
	"github.com/nexusai/nexus-crm/internal/intelligence"
	"github.com/nexusai/nexus-crm/internal/report"
)

// SourceTag marks output produced by the model; deterministic output is
// left untagged.
func SourceTag(source intelligence.Source, model string) string {
	if source != intelligence.SourceLLM {
		return ""
	}
	if model == "" {
		return StylePurple.Render("[AI]")
	}
	return StylePurple.Render("[AI · " + model + "]")
}

// FormatInsights renders the prioritized insight list, one block per item.
func FormatInsights(s *intelligence.Suggestions) string {
	var b strings.Builder
	b.WriteString(TaggedHeader("Insights", SourceTag(s.Source, s.Model)))
	b.WriteString("\n\n")

	if len(s.Items) == 0 {
		b.WriteString(Dim("  Nothing needs attention right now.") + "\n")
		return b.String()
	}
	for i, it := range s.Items {
		writeInsight(&b, i+1, it)
	}
	return b.String()
}

func writeInsight(b *strings.Builder, n int, it insight.Insight) {
	fmt.Fprintf(b, "  %d. %s %s %s\n", n, SeverityBadge(it.Severity), Bold(it.Title), Dim("· "+string(it.Category)))
	if it.Description != "" {
		fmt.Fprintf(b, "     %s\n", it.Description)
	}
	if it.Recommendation != "" {
		fmt.Fprintf(b, "     %s %s\n", StyleGreen.Render("→"), it.Recommendation)
	}
	var extra []string
	if it.Impact != "" {
		extra = append(extra, "impact: "+it.Impact)
	}
	if it.Deadline != "" {
		extra = append(extra, "deadline: "+it.Deadline)
	}
	if len(extra) > 0 {
		fmt.Fprintf(b, "     %s\n", Dim(strings.Join(extra, " · ")))
	}
	b.WriteString("\n")
}

// FormatReportSummary renders the headline numbers above a report.
func FormatReportSummary(s report.Summary) string {
	growth := report.FormatGrowth(s.MRRGrowthPct) + "%"
	if s.MRRGrowthPct < 0 {
		growth = StyleRed.Render(growth)
	} else {
		growth = StyleGreen.Render(growth)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "  MRR %s (%s)  ·  %d/%d active clients  ·  %d projects in progress (avg %d%%)  ·  %d open tickets\n",
		Bold(Money(s.MRR)), growth, s.ActiveClients, s.TotalClients, s.ProjectsInProgress, s.AverageProgress, s.OpenTickets)
	return b.String()
}

// FormatReport renders an executive report with its summary line.
func FormatReport(r *app.ReportResponse) string {
	var b strings.Builder
	b.WriteString(TaggedHeader("Executive report · "+r.Period, SourceTag(r.Source, r.Model)))
	b.WriteString("\n")
	b.WriteString(FormatReportSummary(r.Summary))
	b.WriteString("\n")
	b.WriteString(strings.TrimRight(r.Text, "\n"))
	b.WriteString("\n")
	return b.String()
}

// FormatContractAnalysis renders a contract score, its risks and
// recommendations, and the model narrative when there is one.
func FormatContractAnalysis(a *intelligence.ContractAnalysis) string {
	res := a.Result
	var b strings.Builder
	b.WriteString(TaggedHeader("Contract analysis", SourceTag(a.Source, a.Model)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  Score: %s\n", RiskBadge(res.Level, res.Score))
	if res.Summary != "" {
		fmt.Fprintf(&b, "  %s\n", Dim(res.Summary))
	}

	if len(res.Risks) > 0 {
		b.WriteString("\n  " + StyleHeader.Render("Risks") + "\n")
		for _, r := range res.Risks {
			fmt.Fprintf(&b, "  %s %s\n", StyleRed.Render("•"), r)
		}
	}
	if len(res.Recommendations) > 0 {
		b.WriteString("\n  " + StyleHeader.Render("Recommendations") + "\n")
		for _, r := range res.Recommendations {
			fmt.Fprintf(&b, "  %s %s\n", StyleGreen.Render("→"), r)
		}
	}
	if a.Narrative != "" {
		b.WriteString("\n" + strings.TrimRight(a.Narrative, "\n") + "\n")
	}
	return b.String()
}

// FormatDocument renders a generated draft.
func FormatDocument(title string, d *intelligence.Document) string {
	var b strings.Builder
	b.WriteString(TaggedHeader(title, SourceTag(d.Source, d.Model)))
	b.WriteString("\n\n")
	b.WriteString(strings.TrimRight(d.Text, "\n"))
	b.WriteString("\n")
	return b.String()
}

// FormatReply renders one assistant answer.
func FormatReply(r agent.Reply) string {
	return StylePurple.Render("Nexus") + Dim(" ("+r.Role.Label()+")") + "\n" + r.Text + "\n"
}
