package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexusai/nexus-crm/internal/seed"
)

func newSeedCmd(a *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo portfolio into the database",
		Long: `Load the demo portfolio into the database. An empty database is seeded
on first run anyway; --force replaces existing data with the demo set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireDatabase(); err != nil {
				return err
			}
			ctx := cmd.Context()
			empty, err := seed.IsEmpty(ctx, a.Backend.Conn)
			if err != nil {
				return err
			}
			if !empty && !force {
				return errors.New("the database already has data; pass --force to replace it")
			}
			if err := seed.Apply(ctx, a.Backend.UoW); err != nil {
				return err
			}
			clients, err := a.svc().ListClients(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded demo portfolio (%d clients)\n", len(clients))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Replace existing data")
	return cmd
}
