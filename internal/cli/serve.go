package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-TableBooking/internal/app"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			log.Info("Starting SMC-TableBooking...")
			log.Info("Configuration loaded from %s", *configPath)

			// Ожидаем сигнал завершения
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			application, err := app.New(ctx, cfg, log)
			if err != nil {
				log.Error("Failed to initialize application: %v", err)
				return err
			}
			defer application.Close()

			return application.Run(ctx)
		},
	}
}
