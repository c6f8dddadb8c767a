package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/egovernments/digit-config-service/internal/model"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage namespaced configs and their versions",
}

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a config, optionally with an initial version",
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant, _ := cmd.Flags().GetString("tenant")
		namespace, _ := cmd.Flags().GetString("namespace")
		name, _ := cmd.Flags().GetString("name")
		code, _ := cmd.Flags().GetString("code")
		environment, _ := cmd.Flags().GetString("environment")
		description, _ := cmd.Flags().GetString("description")

		c := &model.Config{
			TenantID:    tenant,
			Namespace:   namespace,
			Name:        name,
			Code:        code,
			Environment: environment,
			Description: description,
		}

		version, err := versionFromFlags(cmd)
		if err != nil {
			return err
		}
		if version != nil {
			c.Versions = []*model.ConfigVersion{version}
		}

		created, err := configClient.CreateConfig(cmd.Context(), c)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(created)
		} else {
			printConfigTable(created)
		}
		return nil
	},
}

var configUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a config; a --version flag rotates in new active content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant, _ := cmd.Flags().GetString("tenant")
		namespace, _ := cmd.Flags().GetString("namespace")
		name, _ := cmd.Flags().GetString("name")
		code, _ := cmd.Flags().GetString("code")
		environment, _ := cmd.Flags().GetString("environment")
		description, _ := cmd.Flags().GetString("description")

		c := &model.Config{
			ID:          args[0],
			TenantID:    tenant,
			Namespace:   namespace,
			Name:        name,
			Code:        code,
			Environment: environment,
			Description: description,
		}

		version, err := versionFromFlags(cmd)
		if err != nil {
			return err
		}
		if version != nil {
			c.Versions = []*model.ConfigVersion{version}
		}

		updated, err := configClient.UpdateConfig(cmd.Context(), c)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(updated)
		} else {
			printConfigTable(updated)
		}
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configs",
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant, _ := cmd.Flags().GetString("tenant")
		namespace, _ := cmd.Flags().GetString("namespace")
		code, _ := cmd.Flags().GetString("code")
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		withContent, _ := cmd.Flags().GetBool("content")

		criteria := model.ConfigCriteria{
			TenantID:  tenant,
			Namespace: namespace,
			Code:      code,
			Status:    status,
			Limit:     limit,
			Offset:    offset,
		}
		criteria.IncludeContent = &withContent

		resp, err := configClient.SearchConfigs(cmd.Context(), criteria)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(resp)
		} else {
			printConfigList(resp.Configs, resp.Pagination.Total)
		}
		return nil
	},
}

var configVersionsCmd = &cobra.Command{
	Use:   "versions <id>",
	Short: "Show a config's full version history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		versions, err := configClient.GetVersions(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(versions)
			return nil
		}
		for _, v := range versions {
			marker := " "
			if v.Status == model.StatusActive {
				marker = "*"
			}
			fmt.Printf("%s %s\t%s\t%s\n", marker, v.Version, v.Status, v.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

// versionFromFlags builds a new version from --version/--content/--content-file
// and --schema. Returns nil when no version label was given.
func versionFromFlags(cmd *cobra.Command) (*model.ConfigVersion, error) {
	label, _ := cmd.Flags().GetString("version")
	if label == "" {
		return nil, nil
	}

	content, _ := cmd.Flags().GetString("content")
	contentFile, _ := cmd.Flags().GetString("content-file")
	schemaRef, _ := cmd.Flags().GetString("schema")

	raw := json.RawMessage(content)
	if contentFile != "" {
		data, err := os.ReadFile(contentFile)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", contentFile, err)
		}
		raw = data
	}

	return &model.ConfigVersion{
		Version:   label,
		Content:   raw,
		SchemaRef: schemaRef,
	}, nil
}

func addVersionFlags(cmd *cobra.Command) {
	cmd.Flags().String("version", "", "version label for new content")
	cmd.Flags().String("content", "", "inline JSON content")
	cmd.Flags().String("content-file", "", "path to a JSON content file")
	cmd.Flags().String("schema", "", "MDMS schema reference for validation")
}

func init() {
	for _, c := range []*cobra.Command{configCreateCmd, configUpdateCmd} {
		c.Flags().String("tenant", "", "tenant ID (required)")
		c.Flags().String("namespace", "", "namespace (required)")
		c.Flags().String("name", "", "config name (required)")
		c.Flags().String("code", "", "config code (required)")
		c.Flags().String("environment", "", "environment tag")
		c.Flags().String("description", "", "description")
		addVersionFlags(c)
	}

	configListCmd.Flags().String("tenant", "", "filter by tenant ID")
	configListCmd.Flags().String("namespace", "", "filter by namespace")
	configListCmd.Flags().String("code", "", "filter by config code")
	configListCmd.Flags().String("status", "", "filter by status")
	configListCmd.Flags().Bool("content", false, "include version content")
	configListCmd.Flags().Int("limit", 0, "page size")
	configListCmd.Flags().Int("offset", 0, "page offset")

	configCmd.AddCommand(configCreateCmd)
	configCmd.AddCommand(configUpdateCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configVersionsCmd)
}
