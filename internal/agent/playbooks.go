package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/insight"
	"github.com/nexusai/nexus-crm/internal/report"
)

// MRRGoal is the revenue target the owner goal intent projects against.
const MRRGoal = 50000.0

const dayLayout = "02/01/2006"

func ownerPlaybook() Playbook {
	return Playbook{
		Role: domain.RoleOwner,
		Greetings: []string{
			"Hi! I'm NEXUS, your strategy assistant. How can I help you today?",
			"Good morning! Ready to analyze your business. What would you like to know?",
		},
		Intents: []Intent{
			{Name: "insights", Keywords: []string{"padrao", "padroes", "insight", "sugestao", "sugestoes", "análise estratégica", "suggestion", "pattern"}, Respond: ownerInsights},
			{Name: "executive_report", Keywords: []string{"relatório executivo", "relatório gerencial", "briefing", "sumário executivo", "executive report", "executive summary"}, Respond: ownerReport},
			{Name: "contracts", Keywords: []string{"contrato", "cláusula", "jurídico", "análise contratual", "contract", "clause", "legal"}, Respond: ownerContracts},
			{Name: "mrr", Keywords: []string{"mrr", "receita", "faturamento", "revenue", "dinheiro", "money"}, Respond: ownerMRR},
			{Name: "churn", Keywords: []string{"churn", "risco", "perder", "cancelamento", "risk", "cancel"}, Respond: ownerChurn},
			{Name: "clients", Keywords: []string{"clientes", "quantos", "base", "carteira", "clients", "portfolio", "how many"}, Respond: ownerClients},
			{Name: "projects", Keywords: []string{"projetos", "andamento", "status", "projects", "progress"}, Respond: ownerProjects},
			{Name: "satisfaction", Keywords: []string{"satisfação", "nps", "feedback", "nota", "qualidade", "satisfaction", "quality"}, Respond: ownerSatisfaction},
			{Name: "best_service", Keywords: []string{"melhor", "serviço", "produto", "maior receita", "mais lucrativo", "best service", "most profitable"}, Respond: ownerBestService},
			{Name: "team", Keywords: []string{"time", "equipe", "operador", "funcionário", "team", "staff"}, Respond: ownerTeam},
			{Name: "goal", Keywords: []string{"meta", "objetivo", "goal", "crescer", "expandir", "grow", "expand"}, Respond: ownerGoal},
		},
		Fallback: func(*domain.Snapshot, ChatContext) string {
			return "I can help with MRR analysis, client status, churn risk, pipeline, satisfaction, projects and team performance. What would you like to explore?"
		},
	}
}

func operatorPlaybook() Playbook {
	return Playbook{
		Role: domain.RoleOperator,
		Greetings: []string{
			"Hi! I'm NEXUS, your operations assistant. Ready to help!",
			"Hey! What do we need to solve today?",
		},
		Intents: []Intent{
			{Name: "tickets", Keywords: []string{"ticket", "abertos", "pendentes", "demanda", "backlog", "pending"}, Respond: operatorTickets},
			{Name: "reply_tips", Keywords: []string{"resposta", "responder", "cliente", "mensagem", "email", "reply", "message"}, Respond: operatorReplyTips},
			{Name: "deadlines", Keywords: []string{"prazo", "atrasado", "deadline", "urgente", "overdue", "late"}, Respond: operatorDeadlines},
			{Name: "priorities", Keywords: []string{"prioridade", "priorizar", "o que fazer", "começar", "priority", "what to do"}, Respond: operatorPriorities},
			{Name: "reports", Keywords: []string{"relatório", "gerar", "exportar", "report", "export"}, Respond: operatorReports},
			{Name: "dashboard_debug", Keywords: []string{"power bi", "dashboard", "erro", "não carrega", "bug", "error", "not loading"}, Respond: operatorDashboardDebug},
		},
		Fallback: func(*domain.Snapshot, ChatContext) string {
			return "I can help with tickets, deadlines, prioritization, client communication, reports and technical issues. What do you need?"
		},
	}
}

func clientPlaybook() Playbook {
	return Playbook{
		Role: domain.RoleClient,
		Greetings: []string{
			"Hi! I'm NEXUS, your consultancy's assistant. How can I help?",
			"Hey! How can I assist you today?",
		},
		Intents: []Intent{
			{Name: "project_status", Keywords: []string{"status", "andamento", "projeto", "como está", "project", "progress"}, Respond: clientProjectStatus},
			{Name: "delivery", Keywords: []string{"prazo", "quando", "entrega", "finalizar", "deadline", "when", "delivery"}, Respond: clientDelivery},
			{Name: "support", Keywords: []string{"ticket", "problema", "suporte", "erro", "ajuda", "support", "problem", "help", "error"}, Respond: clientSupport},
			{Name: "reports", Keywords: []string{"relatório", "dados", "resultado", "report", "results"}, Respond: clientReports},
		},
		Fallback: func(*domain.Snapshot, ChatContext) string {
			return "I can tell you about project status, deadlines, support tickets and reports. How can I help?"
		},
	}
}

// Owner generators.

func ownerInsights(snap *domain.Snapshot, cctx ChatContext) string {
	top := insight.Top(insight.Generate(*snap, cctx.now()), 3)
	var b strings.Builder
	b.WriteString("Top insights right now:\n")
	for i, in := range top {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, in.Title, in.Severity)
	}
	b.WriteString("\nRun the insights view for the full plan and detailed recommendations.")
	return b.String()
}

func ownerReport(snap *domain.Snapshot, _ ChatContext) string {
	sum := report.Summarize(*snap)
	return fmt.Sprintf("Report ready.\nSummary: MRR %s%% | %d active clients | %d open tickets.\n\nGenerate the executive report for the full text.",
		report.FormatGrowth(sum.MRRGrowthPct), sum.ActiveClients, sum.OpenTickets)
}

func ownerContracts(snap *domain.Snapshot, _ ChatContext) string {
	missing := 0
	for _, c := range snap.Contracts {
		if !c.LGPDClause {
			missing++
		}
	}
	return fmt.Sprintf("I can draft contracts and score contract risk. There are %d contract(s) on file and %d without an LGPD clause.",
		len(snap.Contracts), missing)
}

func ownerMRR(snap *domain.Snapshot, _ ChatContext) string {
	k := snap.KPIs
	msg := fmt.Sprintf("Current MRR: %s, %s%% versus last month (%s).",
		report.FormatBRL(k.MRR), report.FormatGrowth(report.GrowthPct(k.MRR, k.PreviousMRR)), report.FormatBRL(k.PreviousMRR))

	largest := largestAccounts(snap.Clients, 2)
	if len(largest) > 0 {
		parts := make([]string, len(largest))
		for i, c := range largest {
			parts[i] = fmt.Sprintf("%s (%s/month)", c.Name, report.FormatBRL(c.MRR))
		}
		msg += " Largest contracts: " + strings.Join(parts, " and ") + "."
	}
	return msg + " Want a projection for the next 3 months?"
}

func ownerChurn(snap *domain.Snapshot, _ ChatContext) string {
	var names []string
	for _, c := range snap.Clients {
		if c.Status == domain.ClientChurnRisk {
			names = append(names, c.Name)
		}
	}
	if len(names) == 0 {
		return "No client at churn risk right now. Great work!"
	}
	return fmt.Sprintf("%d client(s) at risk: %s. Schedule an alignment meeting this week and review the SLA of these contracts. Want a retention meeting script?",
		len(names), strings.Join(names, ", "))
}

func ownerClients(snap *domain.Snapshot, _ ChatContext) string {
	counts := map[domain.ClientStatus]int{}
	for _, c := range snap.Clients {
		counts[c.Status]++
	}
	return fmt.Sprintf("Client base: %d active, %d lead(s) in the pipeline, %d inactive. Retention rate of %g%%. %d lead(s) could convert in the next 30 days.",
		counts[domain.ClientActive], counts[domain.ClientLead], counts[domain.ClientInactive], snap.KPIs.RetentionRate, counts[domain.ClientLead])
}

func ownerProjects(snap *domain.Snapshot, cctx ChatContext) string {
	inFlight := 0
	for _, p := range snap.Projects {
		if p.IsInFlight() {
			inFlight++
		}
	}
	overdue := len(overdueProjects(snap, cctx))
	status := "All on schedule."
	if overdue > 0 {
		status = fmt.Sprintf("%d project(s) with a critical deadline.", overdue)
	}
	return fmt.Sprintf("%d projects in progress. %s Average progress: %d%%.", inFlight, status, snap.AverageProgress())
}

func ownerSatisfaction(snap *domain.Snapshot, _ ChatContext) string {
	var best *domain.Client
	for i := range snap.Clients {
		c := &snap.Clients[i]
		if c.Satisfaction == nil {
			continue
		}
		if best == nil || *c.Satisfaction > *best.Satisfaction {
			best = c
		}
	}
	msg := fmt.Sprintf("Average satisfaction: %g/5.", snap.KPIs.AverageSatisfaction)
	if best != nil {
		msg += fmt.Sprintf(" Your most satisfied client is %s (%g/5).", best.Name, *best.Satisfaction)
	}
	return msg + " Clients scoring above 4.5 are far more likely to renew. Want the full breakdown?"
}

func ownerBestService(snap *domain.Snapshot, _ ChatContext) string {
	type entry struct {
		name  string
		value float64
	}
	var services []entry
	for name, v := range snap.KPIs.RevenueByService {
		services = append(services, entry{name, v})
	}
	if len(services) == 0 {
		return "No revenue by service is recorded yet."
	}
	sort.Slice(services, func(i, j int) bool {
		if services[i].value != services[j].value {
			return services[i].value > services[j].value
		}
		return services[i].name < services[j].name
	})

	msg := fmt.Sprintf("Most profitable service: %s with %s/month.", services[0].name, report.FormatBRL(services[0].value))
	if len(services) > 1 {
		msg += fmt.Sprintf(" Followed by %s (%s). Consider a bundle of the two.", services[1].name, report.FormatBRL(services[1].value))
	}
	return msg
}

func ownerTeam(snap *domain.Snapshot, _ ChatContext) string {
	open := len(snap.OpenTickets())
	if len(snap.Operators) == 0 {
		return fmt.Sprintf("No operators registered yet. %d ticket(s) are open and waiting for an owner.", open)
	}
	members := make([]string, len(snap.Operators))
	for i, op := range snap.Operators {
		members[i] = fmt.Sprintf("%s (%s)", op.Name, op.Title)
	}
	return fmt.Sprintf("Current team: %s. %d ticket(s) open and waiting for assignment. Want to evaluate a new hire?",
		joinList(members), open)
}

func ownerGoal(snap *domain.Snapshot, _ ChatContext) string {
	k := snap.KPIs
	growth := report.FormatGrowth(report.GrowthPct(k.MRR, k.PreviousMRR))
	gap := MRRGoal - k.MRR
	if gap <= 0 {
		return fmt.Sprintf("MRR is already above the %s goal (%s%% last month). Time to set a bolder target?", report.FormatBRL(MRRGoal), growth)
	}
	return fmt.Sprintf("Based on %s%% growth last month, reaching %s of MRR within 4 months needs %s of new monthly revenue, about %s per month. Two mid-size contracts or a scope expansion with your largest client would close it. Want me to simulate scenarios?",
		growth, report.FormatBRL(MRRGoal), report.FormatBRL(gap), report.FormatBRL(gap/4))
}

// Operator generators.

func operatorTickets(snap *domain.Snapshot, _ ChatContext) string {
	open := snap.OpenTickets()
	if len(open) == 0 {
		return "No open tickets right now!"
	}
	urgent := 0
	top := open[0]
	for _, t := range open {
		if t.IsUrgent() {
			urgent++
		}
		if t.Priority.Rank() > top.Priority.Rank() {
			top = t
		}
	}
	return fmt.Sprintf("%d open ticket(s), %d of them high priority. Most urgent: %q (%s). Resolve it first to protect the SLA.",
		len(open), urgent, top.Title, snap.ClientName(top.ClientID))
}

func operatorReplyTips(*domain.Snapshot, ChatContext) string {
	return "Reply tip: be objective, confirm receipt, give a resolution date and keep a professional, empathetic tone. Want a draft e-mail for a specific ticket?"
}

func operatorDeadlines(snap *domain.Snapshot, cctx ChatContext) string {
	late := overdueProjects(snap, cctx)
	if len(late) == 0 {
		return "No overdue projects! Keep it up."
	}
	titles := make([]string, len(late))
	for i, p := range late {
		titles[i] = p.Title
	}
	return fmt.Sprintf("%d project(s) past the deadline: %s. Contact the client now, document the cause and negotiate a new date. Want help with the message?",
		len(late), strings.Join(titles, ", "))
}

func operatorPriorities(snap *domain.Snapshot, _ ChatContext) string {
	first := "No critical ticket, great!"
	for _, t := range snap.Tickets {
		if t.Priority == domain.PriorityCritical && t.IsUnresolved() {
			first = fmt.Sprintf("Resolve critical ticket %q", t.Title)
			break
		}
	}
	second := "All clients stable"
	for _, c := range snap.Clients {
		if c.Status == domain.ClientChurnRisk {
			second = fmt.Sprintf("Contact %s (churn risk)", c.Name)
			break
		}
	}
	return fmt.Sprintf("Priorities now:\n1. %s\n2. %s\n3. Update the progress of projects in flight", first, second)
}

func operatorReports(*domain.Snapshot, ChatContext) string {
	return "To build a report, open the reports section. You can filter by period, client or service type. Need a report for a specific client?"
}

func operatorDashboardDebug(*domain.Snapshot, ChatContext) string {
	return "Dashboard debug checklist:\n" +
		"1. Check the data source credentials\n" +
		"2. Confirm the gateway is online\n" +
		"3. Run the query directly against the database\n" +
		"4. Look for connection timeouts\n" +
		"If the problem persists, escalate to the tech lead and open a ticket with screenshots."
}

// Client generators. Every answer is scoped to cctx.ClientID.

func clientProjectStatus(snap *domain.Snapshot, cctx ChatContext) string {
	projects := snap.ProjectsForClient(cctx.ClientID)
	if len(projects) == 0 {
		return "I could not find active projects right now. Please talk to your consultant."
	}
	p := projects[0]
	mood := "In full development."
	if p.Progress >= 80 {
		mood = "Almost there!"
	}
	return fmt.Sprintf("%s: %d%% complete. Status: %s. Deadline: %s. %s",
		p.Title, p.Progress, projectStatusLabel(p.Status), p.Deadline.Format(dayLayout), mood)
}

func clientDelivery(snap *domain.Snapshot, cctx ChatContext) string {
	for _, p := range snap.ProjectsForClient(cctx.ClientID) {
		if p.IsDone() {
			continue
		}
		return fmt.Sprintf("Expected delivery of %s: %s. Current progress: %d%%.", p.Title, p.Deadline.Format(dayLayout), p.Progress)
	}
	return "All your projects are complete. Congratulations!"
}

func clientSupport(snap *domain.Snapshot, cctx ChatContext) string {
	msg := "To open a support request, use the new ticket option or describe the problem here and I will route it to the team. Response time: up to 4 business hours."
	pending := 0
	for _, t := range snap.TicketsForClient(cctx.ClientID) {
		if t.IsUnresolved() {
			pending++
		}
	}
	if pending > 0 {
		msg += fmt.Sprintf(" You have %d ticket(s) in progress.", pending)
	}
	return msg
}

func clientReports(*domain.Snapshot, ChatContext) string {
	return "Your monthly reports are produced by the 5th business day of each month and sent by e-mail. Need an extra report? Ask your consultant."
}

func overdueProjects(snap *domain.Snapshot, cctx ChatContext) []domain.Project {
	now := cctx.now()
	var out []domain.Project
	for _, p := range snap.Projects {
		if p.IsOverdue(now) {
			out = append(out, p)
		}
	}
	return out
}

func largestAccounts(clients []domain.Client, n int) []domain.Client {
	var paying []domain.Client
	for _, c := range clients {
		if c.MRR > 0 {
			paying = append(paying, c)
		}
	}
	sort.SliceStable(paying, func(i, j int) bool { return paying[i].MRR > paying[j].MRR })
	if len(paying) > n {
		paying = paying[:n]
	}
	return paying
}

func projectStatusLabel(s domain.ProjectStatus) string {
	switch s {
	case domain.ProjectInProgress:
		return "in progress"
	case domain.ProjectReview:
		return "in review"
	default:
		return string(s)
	}
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
