package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/egovernments/digit-config-service/internal/model"
	"github.com/egovernments/digit-config-service/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printConfigSetTable(cs *model.ConfigSet) {
	fmt.Printf("ID:          %s\n", cs.ID)
	fmt.Printf("Tenant:      %s\n", cs.TenantID)
	fmt.Printf("Name:        %s\n", cs.Name)
	fmt.Printf("Code:        %s\n", cs.Code)
	fmt.Printf("Status:      %s\n", renderStatus(cs.Status))
	if cs.Description != "" {
		fmt.Printf("Description: %s\n", cs.Description)
	}
	fmt.Printf("Created By:  %s\n", cs.CreatedBy)
	if !cs.CreatedAt.IsZero() {
		fmt.Printf("Created At:  %s\n", cs.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func printConfigSetList(sets []*model.ConfigSet, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTENANT\tCODE\tNAME\tSTATUS")
	for _, cs := range sets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", cs.ID, cs.TenantID, cs.Code, cs.Name, cs.Status)
	}
	w.Flush()
	fmt.Printf("\n%d config sets (%d total)\n", len(sets), total)
}

func printConfigTable(c *model.Config) {
	fmt.Printf("ID:          %s\n", c.ID)
	fmt.Printf("Tenant:      %s\n", c.TenantID)
	fmt.Printf("Namespace:   %s\n", c.Namespace)
	fmt.Printf("Name:        %s\n", c.Name)
	fmt.Printf("Code:        %s\n", c.Code)
	fmt.Printf("Status:      %s\n", c.Status)
	if c.Environment != "" {
		fmt.Printf("Environment: %s\n", c.Environment)
	}
	if c.Description != "" {
		fmt.Printf("Description: %s\n", c.Description)
	}
	for _, v := range c.Versions {
		marker := " "
		if v.Status == model.StatusActive {
			marker = "*"
		}
		fmt.Printf("  %s %s (%s)\n", marker, v.Version, v.Status)
	}
}

func printConfigList(configs []*model.Config, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTENANT\tNAMESPACE\tCODE\tSTATUS\tVERSIONS")
	for _, c := range configs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			c.ID, c.TenantID, c.Namespace, c.Code, c.Status, len(c.Versions))
	}
	w.Flush()
	fmt.Printf("\n%d configs (%d total)\n", len(configs), total)
}

func printEntryTable(e *model.Entry) {
	fmt.Printf("ID:        %s\n", e.ID)
	fmt.Printf("Code:      %s\n", e.Code)
	fmt.Printf("Tenant:    %s\n", e.TenantID)
	if e.Module != "" {
		fmt.Printf("Module:    %s\n", e.Module)
	}
	if e.EventType != "" {
		fmt.Printf("Event:     %s\n", e.EventType)
	}
	if e.Channel != "" {
		fmt.Printf("Channel:   %s\n", e.Channel)
	}
	if e.Locale != "" {
		fmt.Printf("Locale:    %s\n", e.Locale)
	}
	fmt.Printf("Enabled:   %t\n", e.IsEnabled())
	fmt.Printf("Revision:  %d\n", e.Revision)
	if len(e.Value) > 0 {
		fmt.Printf("Value:     %s\n", string(e.Value))
	}
}

func printEntryList(entries []*model.Entry, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tTENANT\tLOCALE\tENABLED\tREV")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%d\n",
			e.ID, e.Code, e.TenantID, e.Locale, e.IsEnabled(), e.Revision)
	}
	w.Flush()
	fmt.Printf("\n%d entries (%d total)\n", len(entries), total)
}

func renderStatus(s model.Status) string {
	if s == model.StatusActive {
		return ui.RenderAccent(s.String())
	}
	return ui.RenderMuted(s.String())
}
