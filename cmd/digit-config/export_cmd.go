package main

import (
	"fmt"
	"os"

	"github.com/egovernments/digit-config-service/internal/config"
	"github.com/egovernments/digit-config-service/internal/export"
	"github.com/egovernments/digit-config-service/internal/store/postgres"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSONL snapshot of all config data",
	// Connects straight to the database, not the HTTP API.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		out := os.Stdout
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			defer f.Close()
			out = f
		}

		return export.ExportJSONL(cmd.Context(), store, out)
	},
}

func init() {
	exportCmd.Flags().String("out", "", "output file (default stdout)")
}
