package cli

import (
	"github.com/spf13/cobra"

	"attachments-api/internal"
	"attachments-api/internal/infrastructure/db/postgres"
)

func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or list schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(postgres.MigrateUp), string(postgres.MigrateDown), string(postgres.MigrateStatus)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := internal.Bootstrap(envFile)
			if err != nil {
				return err
			}
			defer logger.Sync()

			return internal.Migrate(cmd.Context(), cfg, logger, postgres.MigrateDirection(args[0]))
		},
	}
}
