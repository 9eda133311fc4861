package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexusai/nexus-crm/internal/app"
	"github.com/nexusai/nexus-crm/internal/cli/formatter"
	"github.com/nexusai/nexus-crm/internal/domain"
)

func newClientCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "client",
		Aliases: []string{"clients"},
		Short:   "List and register clients",
	}
	cmd.AddCommand(
		newClientListCmd(a),
		newClientAddCmd(a),
		newClientLogCmd(a),
	)
	return cmd
}

func newClientListCmd(a *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := a.svc().ListClients(cmd.Context())
			if err != nil {
				return err
			}
			if status != "" {
				want, err := domain.ParseClientStatus(status)
				if err != nil {
					return app.NewError(app.ErrInvalidInput, err.Error(), err)
				}
				filtered := clients[:0:0]
				for _, c := range clients {
					if c.Status == want {
						filtered = append(filtered, c)
					}
				}
				clients = filtered
			}
			fprint(cmd, formatter.FormatClients(clients))
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only clients with this status (active, lead, churn_risk, inactive)")
	return cmd
}

func newClientAddCmd(a *App) *cobra.Command {
	var (
		c            domain.Client
		status       string
		services     string
		satisfaction float64
		since        string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a client (status lead unless given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" {
				st, err := domain.ParseClientStatus(status)
				if err != nil {
					return app.NewError(app.ErrInvalidInput, err.Error(), err)
				}
				c.Status = st
			}
			if cmd.Flags().Changed("satisfaction") {
				c.Satisfaction = &satisfaction
			}
			for _, s := range strings.Split(services, ",") {
				if s = strings.TrimSpace(s); s != "" {
					c.Services = append(c.Services, s)
				}
			}
			var err error
			if c.Since, err = optionalDate("since", since); err != nil {
				return err
			}
			if err := a.svc().AddClient(cmd.Context(), &c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added client %s (%s)\n", formatter.Bold(c.Name), c.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&c.Name, "name", "", "Company name")
	f.StringVar(&c.Segment, "segment", "", "Market segment")
	f.StringVar(&c.Contact, "contact", "", "Contact person")
	f.StringVar(&c.Email, "email", "", "Contact e-mail")
	f.StringVar(&c.Phone, "phone", "", "Contact phone")
	f.StringVar(&c.City, "city", "", "City")
	f.StringVar(&status, "status", "", "active, lead, churn_risk or inactive")
	f.Float64Var(&c.MRR, "mrr", 0, "Monthly recurring revenue in BRL")
	f.Float64Var(&satisfaction, "satisfaction", 0, "Satisfaction score 0-5")
	f.StringVar(&services, "services", "", "Comma-separated services")
	f.StringVar(&since, "since", "", "Client since YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newClientLogCmd(a *App) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "log CLIENT_ID DESCRIPTION",
		Short: "Record an interaction in a client's history",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.svc().LogInteraction(cmd.Context(), app.InteractionRequest{
				ClientID:    args[0],
				Kind:        kind,
				Description: strings.Join(args[1:], " "),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s for %s on %s\n", in.Kind, in.ClientID, in.Date.Format(dateLayout))
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Interaction kind: meeting, call, email, note (default note)")
	return cmd
}
