package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/summarizer-backend/internal/app"
)

// configPath resolves --config, falling back to CONFIG_PATH.
func configPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return os.Getenv("CONFIG_PATH")
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "summarizer",
		Short:         "Authenticated AI summarizer gateway",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), configPath(cmd))
		},
	}
	root.PersistentFlags().StringP("config", "c", "", "path to YAML config file")

	root.AddCommand(newServeCmd(), newDiagnoseCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), configPath(cmd))
		},
	}
}

func newDiagnoseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose",
		Short: "Probe identity, store, inference and use cases, print JSON",
		Long: `Builds every dependency, runs each health probe once and prints the
report as JSON on stdout. Exits with status 2 when any probe failed.
Migrations are not applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Diagnose(cmd.Context(), configPath(cmd), cmd.OutOrStdout())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Migrate(cmd.Context(), configPath(cmd))
		},
	}
}
