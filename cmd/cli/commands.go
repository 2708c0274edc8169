package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mauv0809/pitchside/internal/journal"
	"github.com/mauv0809/pitchside/internal/orchestrator"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	selectWait   bool
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", journal.DefaultLimit, "Number of attempts to show")
	selectCmd.Flags().BoolVarP(&selectWait, "wait", "w", false, "Wait until the prediction settles or fails")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the daemon and the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.Context(), http.MethodGet, "/health?backend=true")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get daemon metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.Context(), http.MethodGet, "/metrics")
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the daemon's current prediction state",
	RunE: func(cmd *cobra.Command, args []string) error {
		var state orchestrator.State
		if err := getJSON(cmd.Context(), http.MethodGet, "/state", &state); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderState(state))
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select <home> <away>",
	Short: "Set the daemon's selection; pass empty strings to clear a slot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		query.Set("home", args[0])
		query.Set("away", args[1])
		if selectWait {
			query.Set("wait", "true")
		}
		var state orchestrator.State
		if err := getJSON(cmd.Context(), http.MethodPost, "/selection?"+query.Encode(), &state); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderState(state))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently finished prediction attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		var entries []journal.Entry
		if err := getJSON(cmd.Context(), http.MethodGet, "/history?limit="+strconv.Itoa(historyLimit), &entries); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderHistory(entries))
		return nil
	},
}

func performRequest(ctx context.Context, method, endpoint string) error {
	body, status, err := doRequest(ctx, method, endpoint)
	if err != nil {
		return err
	}
	fmt.Printf("Status Code: %d\n", status)
	fmt.Println("Response Body:")
	fmt.Println(string(body))
	return nil
}

func getJSON(ctx context.Context, method, endpoint string, out any) error {
	body, status, err := doRequest(ctx, method, endpoint)
	if err != nil {
		return err
	}
	if status >= http.StatusBadRequest {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("daemon returned %d: %s", status, apiErr.Error)
		}
		return fmt.Errorf("daemon returned %d", status)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func doRequest(ctx context.Context, method, endpoint string) ([]byte, int, error) {
	target := host + endpoint
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}
