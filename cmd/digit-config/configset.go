package main

import (
	"fmt"

	"github.com/egovernments/digit-config-service/internal/model"
	"github.com/spf13/cobra"
)

var configSetCmd = &cobra.Command{
	Use:   "configset",
	Short: "Manage config sets",
}

var configSetCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a config set (created INACTIVE)",
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant, _ := cmd.Flags().GetString("tenant")
		name, _ := cmd.Flags().GetString("name")
		code, _ := cmd.Flags().GetString("code")
		description, _ := cmd.Flags().GetString("description")

		cs, err := configClient.CreateConfigSet(cmd.Context(), &model.ConfigSet{
			TenantID:    tenant,
			Name:        name,
			Code:        code,
			Description: description,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(cs)
		} else {
			printConfigSetTable(cs)
		}
		return nil
	},
}

var configSetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List config sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant, _ := cmd.Flags().GetString("tenant")
		code, _ := cmd.Flags().GetString("code")
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		resp, err := configClient.SearchConfigSets(cmd.Context(), model.ConfigSetCriteria{
			TenantID: tenant,
			Code:     code,
			Status:   status,
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(resp)
		} else {
			printConfigSetList(resp.ConfigSets, resp.Pagination.Total)
		}
		return nil
	},
}

var configSetActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Activate a config set, deactivating the tenant's current one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant, _ := cmd.Flags().GetString("tenant")

		activation, err := configClient.ActivateConfigSet(cmd.Context(), args[0], tenant)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(activation)
			return nil
		}
		fmt.Printf("config set %s activated for tenant %s\n", activation.ConfigSetID, activation.TenantID)
		if activation.PreviousActiveSetID != "" {
			fmt.Printf("previous active set: %s\n", activation.PreviousActiveSetID)
		}
		return nil
	},
}

func init() {
	configSetCreateCmd.Flags().String("tenant", "", "tenant ID (required)")
	configSetCreateCmd.Flags().String("name", "", "set name (required)")
	configSetCreateCmd.Flags().String("code", "", "set code (required)")
	configSetCreateCmd.Flags().String("description", "", "description")

	configSetListCmd.Flags().String("tenant", "", "filter by tenant ID")
	configSetListCmd.Flags().String("code", "", "filter by code")
	configSetListCmd.Flags().String("status", "", "filter by status (ACTIVE or INACTIVE)")
	configSetListCmd.Flags().Int("limit", 0, "page size")
	configSetListCmd.Flags().Int("offset", 0, "page offset")

	configSetActivateCmd.Flags().String("tenant", "", "tenant ID (required)")

	configSetCmd.AddCommand(configSetCreateCmd)
	configSetCmd.AddCommand(configSetListCmd)
	configSetCmd.AddCommand(configSetActivateCmd)
}
