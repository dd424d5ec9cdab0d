package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/netnavi/internal/config"
	"github.com/sandevgo/netnavi/internal/service/installer"
	"github.com/sandevgo/netnavi/pkg/log"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:           "setup",
	Short:         "Set up NetNavi interactively",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting setup")

		// run wizard (includes save step)
		if _, err := installer.RunWizard(); err != nil {
			return err
		}

		// Load the newly created .env file so the configs can see the values
		runtimePath := config.GetRuntimePath()
		envPath := filepath.Join(runtimePath, ".env")
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Setup complete! You can now run 'navi start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
