package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(scratchMastersCmd)
	rootCmd.AddCommand(optionalEventsCmd)
	rootCmd.AddCommand(bowlerCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the team, doubles and singles standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/standings")
	},
}

var scratchMastersCmd = &cobra.Command{
	Use:   "scratch-masters",
	Short: "Show the divisional scratch-masters boards",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/scratch-masters")
	},
}

var optionalEventsCmd = &cobra.Command{
	Use:   "optional-events",
	Short: "Show the optional-events boards",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/optional-events")
	},
}

var bowlerCmd = &cobra.Command{
	Use:   "bowler [pid]",
	Short: "Show a single participant's full view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/bowler?pid=" + url.QueryEscape(args[0]))
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Build the standings and push them to the channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/publish")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
