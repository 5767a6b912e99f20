package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalambet/scmkai/internal/config"
	"github.com/kalambet/scmkai/internal/storage"
)

// --- seed ---

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog into storage",
	Long: `Load the demo catalog (suppliers, inventory, KPIs, alerts) into storage.

Seeding is idempotent: rows are matched by their natural keys, so running
it again refreshes figures without creating duplicates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := storage.Open(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer store.Close()

		if err := store.SeedDemoData(); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}

		printSuccess("Demo catalog seeded in %s", cfg.Storage.DataDir)
		return nil
	},
}

// --- ask ---

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the supply-chain assistant",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.Join(args, " ")
		session, _ := cmd.Flags().GetString("session")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		body := map[string]string{"message": message}
		if session != "" {
			body["session_id"] = session
		}

		resp, err := client.post(cmd.Context(), "/api/chat", body)
		if err != nil {
			return err
		}

		var result struct {
			Response  string `json:"response"`
			SessionID string `json:"session_id"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		fmt.Println(result.Response)
		if session == "" {
			printStatus("Session", "%s", result.SessionID)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().String("session", "", "session identifier for conversation history")
}

// --- search ---

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search inventory items and suppliers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/api/search?q="+url.QueryEscape(query))
		if err != nil {
			return err
		}

		var results []struct {
			Type        string `json:"type"`
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
		}
		if err := decodeJSON(resp, &results); err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results found.")
			return nil
		}

		for _, r := range results {
			fmt.Printf("%s  %s\n", colorize(colorBold, "["+r.Type+"]"), r.Title)
			fmt.Printf("  %s\n", r.Description)
		}
		return nil
	},
}

// --- alerts ---

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Manage alerts",
}

var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active alerts",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/api/alerts")
		if err != nil {
			return err
		}

		var alerts []struct {
			ID       int64  `json:"id"`
			Type     string `json:"type"`
			Priority string `json:"priority"`
			Title    string `json:"title"`
			Message  string `json:"message"`
		}
		if err := decodeJSON(resp, &alerts); err != nil {
			return err
		}

		if len(alerts) == 0 {
			fmt.Println("No active alerts.")
			return nil
		}

		for _, a := range alerts {
			priority := a.Priority
			if priority == "critical" || priority == "high" {
				priority = colorize(colorRed, priority)
			}
			fmt.Printf("%s  [%s/%s]  %s\n", colorize(colorCyan, fmt.Sprintf("#%d", a.ID)), a.Type, priority, a.Title)
			fmt.Printf("  %s\n", a.Message)
		}
		return nil
	},
}

var alertsResolveCmd = &cobra.Command{
	Use:   "resolve <id>",
	Short: "Resolve an alert",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/api/alerts/"+args[0]+"/resolve", nil)
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("%s", result["message"])
		return nil
	},
}

func init() {
	alertsCmd.AddCommand(alertsListCmd)
	alertsCmd.AddCommand(alertsResolveCmd)
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
