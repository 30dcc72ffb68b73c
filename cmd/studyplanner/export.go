package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"studyplanner/internal/bootstrap"
	"studyplanner/internal/export"
	"studyplanner/internal/pkg/logger"
)

var (
	exportConfigPath string
	exportInput      string
	exportFormat     string
	exportOut        string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a plan backup file to markdown, csv or json",
	Long:  "Render a previously downloaded plan backup against the configured catalog, without starting a server.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(exportConfigPath)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to load configuration")
			os.Exit(1)
		}

		cat, database, err := bootstrap.SetupCatalog(cfg, lgr)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to load catalog")
			os.Exit(1)
		}
		if database != nil {
			defer database.Close()
		}

		data, err := os.ReadFile(exportInput)
		if err != nil {
			lgr.Error().Err(err).Str("path", exportInput).Msg("Failed to read plan file")
			os.Exit(1)
		}

		selections, err := export.ParseBackup(data)
		if err != nil {
			lgr.Error().Err(err).Str("path", exportInput).Msg("Invalid plan file")
			os.Exit(1)
		}

		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			lgr.Error().Err(err).Msg("Unknown export format")
			os.Exit(1)
		}

		result, err := export.Render(cat, selections, format, time.Now())
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to render export")
			os.Exit(1)
		}

		out := exportOut
		if out == "" {
			out = result.Filename
		}
		if err := os.WriteFile(out, result.Content, 0o644); err != nil {
			lgr.Error().Err(err).Str("path", out).Msg("Failed to write export")
			os.Exit(1)
		}

		lgr.Info().Str("path", out).Int("selections", len(selections)).Msg("Export written")
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportConfigPath, "config", filepath.Join("configs", "config.yaml"), "path to the configuration file")
	exportCmd.Flags().StringVar(&exportInput, "input", "", "path to the plan backup file (required)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "markdown", "export format: markdown, csv or json")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (defaults to the generated filename)")
	exportCmd.MarkFlagRequired("input")
}
