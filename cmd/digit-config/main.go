package main

import (
	"fmt"
	"os"

	"github.com/egovernments/digit-config-service/internal/client"
	"github.com/egovernments/digit-config-service/internal/ui"
	"github.com/spf13/cobra"
)

var (
	serverURL  string
	authToken  string
	actor      string
	jsonOutput bool
	noColor    bool

	configClient client.ConfigClient
)

func defaultServerURL() string {
	if s := os.Getenv("CFGSVC_URL"); s != "" {
		return s
	}
	if u := activeRemoteURL(); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func defaultToken() string {
	if s := os.Getenv("CFGSVC_TOKEN"); s != "" {
		return s
	}
	return activeRemoteToken()
}

func defaultActor() string {
	if s := os.Getenv("CFGSVC_USER"); s != "" {
		return s
	}
	return "system"
}

var rootCmd = &cobra.Command{
	Use:   "digit-config <command>",
	Short: "CLI client for the config service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor || !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
		configClient = client.NewHTTPClient(serverURL, authToken, actor)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if configClient != nil {
			configClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", defaultServerURL(), "server URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", defaultToken(), "bearer token")
	rootCmd.PersistentFlags().StringVar(&actor, "user", defaultActor(), "acting user for audit details")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(entryCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(remoteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
