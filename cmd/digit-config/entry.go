package main

import (
	"encoding/json"

	"github.com/egovernments/digit-config-service/internal/model"
	"github.com/spf13/cobra"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage flat config entries",
}

var entryCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a config entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		code, _ := cmd.Flags().GetString("code")
		module, _ := cmd.Flags().GetString("module")
		eventType, _ := cmd.Flags().GetString("event-type")
		channel, _ := cmd.Flags().GetString("channel")
		tenant, _ := cmd.Flags().GetString("tenant")
		locale, _ := cmd.Flags().GetString("locale")
		value, _ := cmd.Flags().GetString("value")

		e, err := configClient.CreateEntry(cmd.Context(), &model.Entry{
			Code:      code,
			Module:    module,
			EventType: eventType,
			Channel:   channel,
			TenantID:  tenant,
			Locale:    locale,
			Value:     json.RawMessage(value),
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(e)
		} else {
			printEntryTable(e)
		}
		return nil
	},
}

var entryUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Partially update an entry under optimistic concurrency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := &model.EntryPatch{ID: args[0]}

		if cmd.Flags().Changed("event-type") {
			v, _ := cmd.Flags().GetString("event-type")
			patch.EventType = &v
		}
		if cmd.Flags().Changed("channel") {
			v, _ := cmd.Flags().GetString("channel")
			patch.Channel = &v
		}
		if cmd.Flags().Changed("enabled") {
			v, _ := cmd.Flags().GetBool("enabled")
			patch.Enabled = &v
		}
		if cmd.Flags().Changed("value") {
			v, _ := cmd.Flags().GetString("value")
			patch.Value = json.RawMessage(v)
		}
		if cmd.Flags().Changed("revision") {
			v, _ := cmd.Flags().GetInt("revision")
			patch.Revision = &v
		}

		e, err := configClient.UpdateEntry(cmd.Context(), patch)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(e)
		} else {
			printEntryTable(e)
		}
		return nil
	},
}

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List config entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		code, _ := cmd.Flags().GetString("code")
		module, _ := cmd.Flags().GetString("module")
		tenant, _ := cmd.Flags().GetString("tenant")
		locale, _ := cmd.Flags().GetString("locale")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		criteria := model.EntryCriteria{
			Code:     code,
			Module:   module,
			TenantID: tenant,
			Locale:   locale,
			Limit:    limit,
			Offset:   offset,
		}
		if cmd.Flags().Changed("enabled") {
			v, _ := cmd.Flags().GetBool("enabled")
			criteria.Enabled = &v
		}

		resp, err := configClient.SearchEntries(cmd.Context(), criteria)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(resp)
		} else {
			printEntryList(resp.Entries, resp.Pagination.Total)
		}
		return nil
	},
}

func init() {
	entryCreateCmd.Flags().String("code", "", "config code (required)")
	entryCreateCmd.Flags().String("module", "", "module")
	entryCreateCmd.Flags().String("event-type", "", "event type")
	entryCreateCmd.Flags().String("channel", "", "channel")
	entryCreateCmd.Flags().String("tenant", "", "tenant ID (required)")
	entryCreateCmd.Flags().String("locale", "", "locale")
	entryCreateCmd.Flags().String("value", "", "JSON value (required)")

	entryUpdateCmd.Flags().String("event-type", "", "event type")
	entryUpdateCmd.Flags().String("channel", "", "channel")
	entryUpdateCmd.Flags().Bool("enabled", true, "enabled flag")
	entryUpdateCmd.Flags().String("value", "", "JSON value")
	entryUpdateCmd.Flags().Int("revision", 0, "expected revision (optimistic concurrency)")

	entryListCmd.Flags().String("code", "", "filter by config code")
	entryListCmd.Flags().String("module", "", "filter by module")
	entryListCmd.Flags().String("tenant", "", "filter by tenant ID")
	entryListCmd.Flags().String("locale", "", "filter by locale")
	entryListCmd.Flags().Bool("enabled", true, "filter by enabled flag")
	entryListCmd.Flags().Int("limit", 0, "page size")
	entryListCmd.Flags().Int("offset", 0, "page offset")

	entryCmd.AddCommand(entryCreateCmd)
	entryCmd.AddCommand(entryUpdateCmd)
	entryCmd.AddCommand(entryListCmd)
}
