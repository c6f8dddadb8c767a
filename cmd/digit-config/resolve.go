package main

import (
	"fmt"

	"github.com/egovernments/digit-config-service/internal/service"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve effective configuration for a tenant",
}

var resolveConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Resolve a namespaced config through the tenant hierarchy",
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant, _ := cmd.Flags().GetString("tenant")
		namespace, _ := cmd.Flags().GetString("namespace")
		code, _ := cmd.Flags().GetString("code")
		environment, _ := cmd.Flags().GetString("environment")
		contextPairs, _ := cmd.Flags().GetStringToString("context")

		res, err := configClient.ResolveConfig(cmd.Context(), service.ResolveRequest{
			TenantID:    tenant,
			Namespace:   namespace,
			ConfigCode:  code,
			Environment: environment,
			Context:     contextPairs,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(res)
			return nil
		}
		fmt.Printf("Resolved from: %s\n", res.ResolvedFrom)
		fmt.Printf("Version:       %s\n", res.Version)
		fmt.Printf("Content:       %s\n", string(res.Content))
		return nil
	},
}

var resolveEntryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Resolve a flat entry through tenant and locale fallback",
	RunE: func(cmd *cobra.Command, args []string) error {
		code, _ := cmd.Flags().GetString("code")
		module, _ := cmd.Flags().GetString("module")
		tenant, _ := cmd.Flags().GetString("tenant")
		locale, _ := cmd.Flags().GetString("locale")

		res, err := configClient.ResolveEntry(cmd.Context(), code, module, tenant, locale)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(res)
			return nil
		}
		fmt.Printf("Matched tenant: %s\n", res.MatchedTenant)
		if res.MatchedLocale != "" {
			fmt.Printf("Matched locale: %s\n", res.MatchedLocale)
		}
		printEntryTable(res.Entry)
		return nil
	},
}

func init() {
	resolveConfigCmd.Flags().String("tenant", "", "tenant ID (required)")
	resolveConfigCmd.Flags().String("namespace", "", "namespace (required)")
	resolveConfigCmd.Flags().String("code", "", "config code (required)")
	resolveConfigCmd.Flags().String("environment", "", "environment filter")
	resolveConfigCmd.Flags().StringToString("context", nil, "context hints (key=value)")

	resolveEntryCmd.Flags().String("code", "", "config code (required)")
	resolveEntryCmd.Flags().String("module", "", "module")
	resolveEntryCmd.Flags().String("tenant", "", "tenant ID (required)")
	resolveEntryCmd.Flags().String("locale", "", "locale")

	resolveCmd.AddCommand(resolveConfigCmd)
	resolveCmd.AddCommand(resolveEntryCmd)
}
