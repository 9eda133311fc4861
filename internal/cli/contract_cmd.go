package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nexusai/nexus-crm/internal/app"
	"github.com/nexusai/nexus-crm/internal/cli/formatter"
	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/intelligence"
	"github.com/nexusai/nexus-crm/internal/report"
)

func newContractCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Analyze, draft and register service contracts",
	}

	cmd.AddCommand(
		newContractAnalyzeCmd(a),
		newContractDraftCmd(a),
		newContractListCmd(a),
		newContractAddCmd(a),
	)
	return cmd
}

func newContractAnalyzeCmd(a *App) *cobra.Command {
	var (
		file, id, text string
		ai, asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a contract's risk from its text or a registered contract",
		Example: `  nexus contract analyze --file contrato.txt
  nexus contract analyze --id ct2 --ai`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.ContractAnalysisRequest{ContractID: strings.TrimSpace(id), AI: ai}
			switch {
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("reading contract: %w", err)
				}
				req.Text = string(data)
			case text != "":
				req.Text = text
			}

			stop := a.spinner(cmd, ai, "Reviewing the contract...")
			var (
				out *intelligence.ContractAnalysis
				err error
			)
			if req.ContractID != "" {
				out, err = a.svc().AnalyzeContractByID(cmd.Context(), req)
			} else {
				out, err = a.svc().AnalyzeContractText(cmd.Context(), req)
			}
			stop()
			if err != nil {
				return err
			}
			if a.Metrics != nil {
				a.Metrics.ObserveContractScore(out.Result.Score)
			}
			if asJSON {
				return writeJSON(cmd, out)
			}
			fprint(cmd, formatter.FormatContractAnalysis(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Read the contract text from a file")
	cmd.Flags().StringVar(&id, "id", "", "Analyze a registered contract by ID")
	cmd.Flags().StringVar(&text, "text", "", "Contract text")
	cmd.MarkFlagsMutuallyExclusive("file", "id", "text")
	cmd.MarkFlagsOneRequired("file", "id", "text")
	cmd.Flags().BoolVar(&ai, "ai", false, "Add a model-written review to the score")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of formatted text")
	return cmd
}

func newContractDraftCmd(a *App) *cobra.Command {
	var (
		in          report.DraftInput
		value       float64
		months, sla int
		penalty     float64
		interactive bool
		ai          bool
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Generate a contract draft",
		Long: `Generate a Portuguese contract draft from the given terms. Omitted terms
take the house defaults: 12 months, 8h SLA, 20% termination penalty and
annual IPCA adjustment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("value") {
				in.MonthlyValue = &value
			}
			if flags.Changed("months") {
				in.DurationMonths = &months
			}
			if flags.Changed("sla") {
				in.SLAHours = &sla
			}
			if flags.Changed("penalty") {
				in.PenaltyPct = &penalty
			}

			if interactive {
				var err error
				if in, err = runDraftForm(in); err != nil {
					return err
				}
			}

			stop := a.spinner(cmd, ai, "Drafting the contract...")
			doc, err := a.svc().DraftContract(cmd.Context(), app.ContractDraftRequest{Input: in, AI: ai})
			stop()
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(doc.Text), 0o644); err != nil {
					return fmt.Errorf("writing draft: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Draft written to %s\n", outPath)
				return nil
			}
			fprint(cmd, formatter.FormatDocument("Contract draft", doc))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.ClientName, "client", "", "Client (contracting party) name")
	f.StringVar(&in.Type, "type", "", "Contract type, e.g. \"Retainer Mensal\"")
	f.Float64Var(&value, "value", 0, "Monthly value in BRL")
	f.StringVar(&in.Start, "start", "", "Start date YYYY-MM-DD (default today)")
	f.IntVar(&months, "months", report.DefaultDurationMonths, "Duration in months")
	f.IntVar(&sla, "sla", report.DefaultSLAHours, "SLA response time in hours")
	f.Float64Var(&penalty, "penalty", report.DefaultPenaltyPct, "Termination penalty in percent")
	f.StringVar(&in.AdjustmentIndex, "index", "", "Price adjustment index (default \"IPCA anual\")")
	f.StringVar(&in.Scope, "scope", "", "Scope of services")
	f.BoolVarP(&interactive, "interactive", "i", false, "Fill the terms in a form")
	f.BoolVar(&ai, "ai", false, "Write the draft with the language model")
	f.StringVarP(&outPath, "output", "o", "", "Write the draft text to a file")
	return cmd
}

func newContractListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered contracts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			contracts, err := a.svc().ListContracts(cmd.Context())
			if err != nil {
				return err
			}
			clients, err := a.svc().ListClients(cmd.Context())
			if err != nil {
				return err
			}
			fprint(cmd, formatter.FormatContracts(contracts, clientNamer(clients)))
			return nil
		},
	}
}

func newContractAddCmd(a *App) *cobra.Command {
	var (
		c          domain.Contract
		start, end string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a signed contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if c.Start, err = optionalDate("start", start); err != nil {
				return err
			}
			if c.End, err = optionalDate("end", end); err != nil {
				return err
			}
			if err := a.svc().SaveContract(cmd.Context(), &c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered contract %s (%s)\n", formatter.Bold(c.Title), c.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&c.Title, "title", "", "Contract title")
	f.StringVar(&c.ClientID, "client", "", "Client ID")
	f.StringVar(&c.Type, "type", "", "Contract type")
	f.Float64Var(&c.MonthlyValue, "value", 0, "Monthly value in BRL")
	f.StringVar(&start, "start", "", "Start date YYYY-MM-DD")
	f.StringVar(&end, "end", "", "End date YYYY-MM-DD")
	f.IntVar(&c.SLAHours, "sla", 0, "SLA response time in hours")
	f.Float64Var(&c.TerminationPenaltyPct, "penalty", 0, "Termination penalty in percent")
	f.StringVar(&c.AdjustmentIndex, "index", "", "Price adjustment index")
	f.BoolVar(&c.LGPDClause, "lgpd", false, "The contract has an LGPD clause")
	f.BoolVar(&c.AutoRenew, "auto-renew", false, "The contract renews automatically")
	f.StringVar(&c.Scope, "scope", "", "Scope of services")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

// optionalDate parses a YYYY-MM-DD flag value; empty means unset.
func optionalDate(flag, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, app.NewError(app.ErrInvalidInput, fmt.Sprintf("--%s must be a YYYY-MM-DD date", flag), err)
	}
	return &t, nil
}

// clientNamer resolves client IDs to names for list output.
func clientNamer(clients []domain.Client) func(string) string {
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	return func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}
}
