package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nexusai/nexus-crm/internal/app"
	"github.com/nexusai/nexus-crm/internal/cli/formatter"
	"github.com/nexusai/nexus-crm/internal/domain"
)

func newChatCmd(a *App) *cobra.Command {
	var (
		role     string
		clientID string
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant",
		Long: `Open a conversation with the assistant. In a terminal this is a
full-screen chat; with piped input every line is one message and every
reply is printed as it arrives. Type /quit to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := domain.ParseRole(role)
			if !a.Interactive {
				return a.runChatLines(cmd, r, clientID)
			}
			m := newChatModel(contextOf(cmd), a.svc(), a.Metrics, r, clientID)
			p := tea.NewProgram(m,
				tea.WithContext(contextOf(cmd)),
				tea.WithInput(a.input()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&role, "role", string(domain.RoleOperator), "Viewpoint: owner, operator or client")
	cmd.Flags().StringVar(&clientID, "client", "", "Client ID the client role speaks for")
	return cmd
}

// runChatLines is the non-terminal chat: one message per input line.
func (a *App) runChatLines(cmd *cobra.Command, role domain.Role, clientID string) error {
	ctx := contextOf(cmd)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, a.svc().Greet(ctx, role))

	return chatLines(ctx, a.input(), out, func(line string) error {
		if next, ok := strings.CutPrefix(line, "/role "); ok {
			role = domain.ParseRole(next)
			fmt.Fprintln(out, a.svc().Greet(ctx, role))
			return nil
		}
		reply, err := a.svc().Ask(ctx, app.ChatRequest{Message: line, Role: role, ClientID: clientID})
		if err != nil {
			return err
		}
		if a.Metrics != nil {
			a.Metrics.RecordChat(string(reply.Role), reply.Intent)
		}
		fmt.Fprint(out, formatter.FormatReply(reply))
		return nil
	})
}

// chatLines feeds each non-empty line of in to turn until EOF or /quit.
// Failed turns are reported and the conversation continues.
func chatLines(ctx context.Context, in io.Reader, out io.Writer, turn func(line string) error) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "/quit", "/exit", "/q":
			return nil
		}
		if err := turn(line); err != nil {
			if app.CodeOf(err) == app.ErrInternal {
				return err
			}
			fmt.Fprintln(out, formatter.StyleRed.Render("Error: "+err.Error()))
		}
	}
	return sc.Err()
}
