package cmd

import (
	"fmt"
	"os"

	"keyless-stay/config"
	"keyless-stay/logger"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the keyless-stay command tree. Running it without a
// subcommand starts the HTTP server.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keyless-stay",
		Short:         "Property management and keyless entry service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(loadConfig())
		},
	}

	rootCmd.AddCommand(
		ServeCmd(),
		MigrateCmd(),
		CleanupCodesCmd(),
	)

	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg := config.Load()
	logger.Setup(cfg.LogDir, log.LevelInfo)
	return cfg
}
