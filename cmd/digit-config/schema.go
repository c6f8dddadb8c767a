package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage the server's schema definition cache",
}

var schemaEvictCmd = &cobra.Command{
	Use:   "evict [ref]",
	Short: "Evict one schema from the cache, or all when no ref is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			if err := configClient.EvictAllSchemas(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("schema cache cleared")
			return nil
		}
		if err := configClient.EvictSchema(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("schema %q evicted\n", args[0])
		return nil
	},
}

func init() {
	schemaCmd.AddCommand(schemaEvictCmd)
}
