package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexusai/nexus-crm/internal/app"
	"github.com/nexusai/nexus-crm/internal/cli/formatter"
	"github.com/nexusai/nexus-crm/internal/domain"
)

func newAskCmd(a *App) *cobra.Command {
	var (
		role     string
		clientID string
	)

	cmd := &cobra.Command{
		Use:   "ask MESSAGE",
		Short: "Ask the assistant one question",
		Long: `Ask the assistant one question from the viewpoint of a role: owner,
operator or client (dono and cliente are accepted too).`,
		Example: `  nexus ask --role owner "como está o MRR?"
  nexus ask --role client --client c1 "status do meu projeto"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := a.svc().Ask(cmd.Context(), app.ChatRequest{
				Message:  strings.Join(args, " "),
				Role:     domain.ParseRole(role),
				ClientID: clientID,
			})
			if err != nil {
				return err
			}
			if a.Metrics != nil {
				a.Metrics.RecordChat(string(reply.Role), reply.Intent)
			}
			fprint(cmd, formatter.FormatReply(reply))
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", string(domain.RoleOperator), "Viewpoint: owner, operator or client")
	cmd.Flags().StringVar(&clientID, "client", "", "Client ID the client role speaks for")
	return cmd
}
