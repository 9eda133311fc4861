package formatter

import (
	"fmt"
	"strings"

	"github.com/nexusai/nexus-crm/internal/app"
	"github.com/nexusai/nexus-crm/internal/domain"
)

// FormatClients renders the client list as a table.
func FormatClients(clients []domain.Client) string {
	if len(clients) == 0 {
		return Dim("No clients yet.") + "\n"
	}
	cols := []Column{
		{Title: "ID"}, {Title: "NAME"}, {Title: "SEGMENT"}, {Title: "STATUS"},
		{Title: "MRR", Align: AlignRight}, {Title: "SATISFACTION", Align: AlignRight},
	}
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{
			TruncID(c.ID),
			Bold(c.Name),
			c.Segment,
			ClientStatusPill(c.Status),
			Money(c.MRR),
			Satisfaction(c.Satisfaction),
		})
	}
	return RenderTable(cols, rows)
}

// FormatTickets renders tickets with their client names resolved through
// clientName.
func FormatTickets(tickets []domain.Ticket, clientName func(id string) string) string {
	if len(tickets) == 0 {
		return Dim("No tickets.") + "\n"
	}
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, []string{
			TruncID(t.ID),
			t.Title,
			clientName(t.ClientID),
			PriorityPill(t.Priority),
			TicketStatusPill(t.Status),
			t.Created.Format("2006-01-02"),
		})
	}
	return RenderTable(Cols("ID", "TITLE", "CLIENT", "PRIORITY", "STATUS", "CREATED"), rows)
}

// FormatContracts renders the contract register.
func FormatContracts(contracts []domain.Contract, clientName func(id string) string) string {
	if len(contracts) == 0 {
		return Dim("No contracts.") + "\n"
	}
	cols := []Column{
		{Title: "ID"}, {Title: "TITLE"}, {Title: "CLIENT"},
		{Title: "MONTHLY", Align: AlignRight}, {Title: "SLA", Align: AlignRight},
		{Title: "LGPD"}, {Title: "END"},
	}
	rows := make([][]string, 0, len(contracts))
	for _, c := range contracts {
		lgpd := StyleRed.Render("missing")
		if c.LGPDClause {
			lgpd = StyleGreen.Render("yes")
		}
		client := Dim("--")
		if c.ClientID != "" {
			client = clientName(c.ClientID)
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			Bold(c.Title),
			client,
			Money(c.MonthlyValue),
			fmt.Sprintf("%dh", c.SLAHours),
			lgpd,
			DateOrDash(c.End),
		})
	}
	return RenderTable(cols, rows)
}

// FormatStatus renders the portfolio overview.
func FormatStatus(st *app.StatusResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  MRR:            %s\n", Bold(Money(st.MRR)))
	fmt.Fprintf(&b, "  Clients:        %d (%d active)\n", st.Clients, st.ActiveClients)
	fmt.Fprintf(&b, "  Open tickets:   %d\n", st.OpenTickets)
	fmt.Fprintf(&b, "  Contracts:      %d\n", st.Contracts)
	b.WriteString("\n")

	ai := StyleDim.Render("disabled")
	if st.AIConfigured {
		ai = StyleGreen.Render("enabled") + Dim(" ("+st.Model+")")
	}
	fmt.Fprintf(&b, "  AI:             %s\n", ai)
	source := "database"
	if st.ReadOnly {
		source = "snapshot file (read-only)"
	}
	fmt.Fprintf(&b, "  Data:           %s", Dim(source))

	return RenderBox("Nexus CRM", b.String()) + "\n"
}
