package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"studyplanner/internal/pkg/logger"
	"studyplanner/internal/server"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the study planner HTTP server",
	Long:  "Start the HTTP server providing the course catalog, the plan state engine and export rendering.",
	Run: func(cmd *cobra.Command, args []string) {
		srv, err := server.NewServer(serveConfigPath)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to initialize server")
			os.Exit(1)
		}

		// Run blocks until a shutdown signal arrives
		if err := srv.Run(); err != nil {
			logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
			os.Exit(1)
		}

		logger.Info().Msg("Application finished gracefully.")
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", filepath.Join("configs", "config.yaml"), "path to the configuration file")
}
