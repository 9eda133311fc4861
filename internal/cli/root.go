package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nexusai/nexus-crm/internal/cli/formatter"
	"github.com/nexusai/nexus-crm/internal/db"
	"github.com/nexusai/nexus-crm/internal/metrics"
	"github.com/nexusai/nexus-crm/internal/service"
)

// Backend is what commands run against once the data source is chosen.
type Backend struct {
	Service service.CRMService
	// UoW and Conn are nil when the data comes from a snapshot file.
	UoW   db.UnitOfWork
	Conn  db.DBTX
	Close func() error
}

// App holds everything CLI commands need. Backend is filled by Open after
// flags are parsed, unless a test sets it directly.
type App struct {
	Backend *Backend
	Open    func(ctx context.Context, snapshotPath string) (*Backend, error)

	Metrics     *metrics.Metrics
	Logger      *slog.Logger
	HTTPAddr    string
	CORSOrigins []string

	// Interactive reports whether stdin is a terminal. Chat falls back to
	// line mode when it is not.
	Interactive bool
	In          io.Reader
}

// NewRootCmd creates the top-level "nexus" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	var snapshotPath string

	root := &cobra.Command{
		Use:           "nexus",
		Short:         "CRM insights, reports, contract analysis and an assistant for a data consultancy",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.Backend != nil || a.Open == nil {
				return nil
			}
			b, err := a.Open(cmd.Context(), snapshotPath)
			if err != nil {
				return err
			}
			a.Backend = b
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.Backend == nil || a.Backend.Close == nil {
				return nil
			}
			return a.Backend.Close()
		},
	}
	addSnapshotFlag(root.PersistentFlags(), &snapshotPath)

	root.AddCommand(
		newStatusCmd(a),
		newInsightsCmd(a),
		newReportCmd(a),
		newContractCmd(a),
		newAskCmd(a),
		newChatCmd(a),
		newClientCmd(a),
		newTicketCmd(a),
		newSeedCmd(a),
		newServeCmd(a),
	)
	return root
}

func addSnapshotFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVar(target, "snapshot", "", "Read CRM data from a JSON or YAML snapshot file instead of the database (read-only)")
}

// svc returns the backend service. PersistentPreRunE guarantees it is set
// for any command that reaches RunE.
func (a *App) svc() service.CRMService {
	return a.Backend.Service
}

func (a *App) input() io.Reader {
	if a.In != nil {
		return a.In
	}
	return os.Stdin
}

// requireDatabase rejects commands that need the database when a snapshot
// file was loaded instead.
func (a *App) requireDatabase() error {
	if a.Backend.UoW == nil || a.Backend.Conn == nil {
		return errors.New("this command needs the database; run it without --snapshot")
	}
	return nil
}

// spinner shows progress on stderr only for model calls in a terminal.
func (a *App) spinner(cmd *cobra.Command, ai bool, message string) func() {
	if !ai || !a.Interactive {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), message)
}

func fprint(cmd *cobra.Command, s string) {
	fmt.Fprint(cmd.OutOrStdout(), s)
}
