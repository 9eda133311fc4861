package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/nexusai/nexus-crm/internal/app"
	"github.com/nexusai/nexus-crm/internal/cli/formatter"
)

func newStatusCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the portfolio overview and AI availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.svc().Status(cmd.Context())
			if err != nil {
				return err
			}
			fprint(cmd, formatter.FormatStatus(st))
			return nil
		},
	}
}

func newInsightsCmd(a *App) *cobra.Command {
	var (
		ai     bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "List prioritized risks and opportunities across the portfolio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := a.spinner(cmd, ai, "Asking the model for suggestions...")
			out, err := a.svc().Suggestions(cmd.Context(), app.SuggestionsRequest{AI: ai})
			stop()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, out)
			}
			fprint(cmd, formatter.FormatInsights(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&ai, "ai", false, "Generate suggestions with the language model")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of formatted text")
	return cmd
}

func newReportCmd(a *App) *cobra.Command {
	var (
		period string
		ai     bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compose the executive report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := a.spinner(cmd, ai, "Writing the report...")
			out, err := a.svc().ExecutiveReport(cmd.Context(), app.ReportRequest{Period: period, AI: ai})
			stop()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, out)
			}
			fprint(cmd, formatter.FormatReport(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "Report period label (default \"monthly\")")
	cmd.Flags().BoolVar(&ai, "ai", false, "Write the report with the language model")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of formatted text")
	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
