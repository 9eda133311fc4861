package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexusai/nexus-crm/internal/app"
	"github.com/nexusai/nexus-crm/internal/cli/formatter"
	"github.com/nexusai/nexus-crm/internal/domain"
)

func newTicketCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ticket",
		Aliases: []string{"tickets"},
		Short:   "Track support tickets",
	}
	cmd.AddCommand(
		newTicketListCmd(a),
		newTicketAddCmd(a),
		newTicketResolveCmd(a),
	)
	return cmd
}

func newTicketListCmd(a *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List unresolved tickets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tickets, err := a.svc().ListTickets(cmd.Context())
			if err != nil {
				return err
			}
			if !all {
				open := tickets[:0:0]
				for _, t := range tickets {
					if t.IsUnresolved() {
						open = append(open, t)
					}
				}
				tickets = open
			}
			clients, err := a.svc().ListClients(cmd.Context())
			if err != nil {
				return err
			}
			fprint(cmd, formatter.FormatTickets(tickets, clientNamer(clients)))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include resolved tickets")
	return cmd
}

func newTicketAddCmd(a *App) *cobra.Command {
	var (
		t        domain.Ticket
		priority string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Open a ticket for a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if priority != "" {
				p, err := domain.ParsePriority(priority)
				if err != nil {
					return app.NewError(app.ErrInvalidInput, err.Error(), err)
				}
				t.Priority = p
			}
			t.Title = strings.TrimSpace(t.Title)
			if err := a.svc().AddTicket(cmd.Context(), &t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened ticket %s (%s, %s)\n", t.ID, formatter.Bold(t.Title), t.Priority)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&t.ClientID, "client", "", "Client ID")
	f.StringVar(&t.Title, "title", "", "Ticket title")
	f.StringVar(&priority, "priority", "", "critical, high, medium or low (default medium)")
	f.StringVar(&t.Type, "type", "", "Ticket type, e.g. bug or request")
	f.StringVar(&t.Assignee, "assignee", "", "Operator ID")
	f.StringVar(&t.Description, "description", "", "Details")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTicketResolveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve TICKET_ID",
		Short: "Mark a ticket resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc().ResolveTicket(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Resolved ticket %s\n", args[0])
			return nil
		},
	}
}
