// Command eventctl is the admin client for a running eventsd.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverURL  string
	apiKey     string
	jsonOutput bool
	timeout    time.Duration

	api *client
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var rootCmd = &cobra.Command{
	Use:           "eventctl <command>",
	Short:         "Admin client for the BrandishEvents service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if apiKey == "" {
			return fmt.Errorf("an API key is required (--api-key or EVENTS_API_KEY)")
		}
		api = newClient(serverURL, apiKey, timeout)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", envOr("EVENTS_URL", "http://localhost:8080"), "eventsd base URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", os.Getenv("EVENTS_API_KEY"), "API key")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print the raw response data as JSON")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")

	rootCmd.AddCommand(listEventsCmd, pointsCmd, modifyPointsCmd, startCmd, stopCmd, reloadCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
