package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"attachments-api/internal"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and event workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := internal.Bootstrap(envFile)
			if err != nil {
				return err
			}

			app, err := internal.NewApp(cmd.Context(), cfg, logger)
			if err != nil {
				logger.Error("init app failed", zap.Error(err))
				_ = logger.Sync()
				return err
			}
			defer app.Close()

			app.InitControllers()

			return app.Run(cmd.Context())
		},
	}
}
