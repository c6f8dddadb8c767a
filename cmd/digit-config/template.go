package main

import (
	"encoding/json"
	"fmt"

	"github.com/egovernments/digit-config-service/internal/service"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Work with template configs",
}

var templatePreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a stored template against sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant, _ := cmd.Flags().GetString("tenant")
		namespace, _ := cmd.Flags().GetString("namespace")
		code, _ := cmd.Flags().GetString("code")
		locale, _ := cmd.Flags().GetString("locale")
		dataJSON, _ := cmd.Flags().GetString("data")

		var data map[string]any
		if dataJSON != "" {
			if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
				return fmt.Errorf("parse --data: %w", err)
			}
		}

		res, err := configClient.PreviewTemplate(cmd.Context(), service.TemplatePreviewRequest{
			TenantID: tenant,
			Template: service.TemplateRef{Namespace: namespace, ConfigCode: code},
			Locale:   locale,
			Data:     data,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(res)
			return nil
		}
		fmt.Println(res.Rendered)
		return nil
	},
}

func init() {
	templatePreviewCmd.Flags().String("tenant", "", "tenant ID (required)")
	templatePreviewCmd.Flags().String("namespace", "", "namespace")
	templatePreviewCmd.Flags().String("code", "", "template config code (required)")
	templatePreviewCmd.Flags().String("locale", "", "locale (default en_IN)")
	templatePreviewCmd.Flags().String("data", "", "sample data as JSON object")

	templateCmd.AddCommand(templatePreviewCmd)
}
