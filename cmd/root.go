package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"quickbite/internal/constants"
	"quickbite/internal/log"
)

func Start() {
	logger := log.InitLogger("/var/log/quickbite.log").
		With().
		Str(log.KeyAppName, constants.AppName).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: constants.AppName}
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "server",
			Short: "Run the storefront API server",
			Run: func(cmd *cobra.Command, args []string) {
				RunServer(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Load menu and offers fixtures into the document store",
			Run: func(cmd *cobra.Command, args []string) {
				RunSeed(cmd.Context())
			},
		},
	)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
