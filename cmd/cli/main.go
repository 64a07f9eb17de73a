package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mywallet-cli",
		Short: "MyWallet CLI tool",
		Long:  `A command line interface for interacting with the MyWallet API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the MyWallet API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		balanceCmd(),
		txCmd(),
		expenseCmd(),
		incomeCmd(),
		limitCmd(),
		historyCmd(),
		clearCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the wallet summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/wallet", nil)
		},
	}
}

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Transaction operations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/wallet/transactions", nil)
		},
	}

	var index int
	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove a transaction by id, or by position with --index",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("index") {
				return request(http.MethodDelete, fmt.Sprintf("/api/v1/wallet/transactions/position/%d", index), nil)
			}
			if len(args) != 1 {
				return fmt.Errorf("provide a transaction id or --index")
			}
			return request(http.MethodDelete, "/api/v1/wallet/transactions/"+url.PathEscape(args[0]), nil)
		},
	}
	rmCmd.Flags().IntVar(&index, "index", 0, "Remove by position in the log instead of by id")

	cmd.AddCommand(listCmd, rmCmd)
	return cmd
}

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Expense operations",
	}

	var name, amount, category, date string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"name":     name,
				"amount":   amount,
				"category": category,
				"date":     dateOrNow(date),
			}
			return request(http.MethodPost, "/api/v1/wallet/expenses", body)
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "Expense name")
	addCmd.Flags().StringVar(&amount, "amount", "", "Expense amount")
	addCmd.Flags().StringVar(&category, "category", "", "Expense category")
	addCmd.Flags().StringVar(&date, "date", "", "Expense date (RFC 3339, defaults to now)")
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("amount")
	addCmd.MarkFlagRequired("category")

	cmd.AddCommand(addCmd)
	return cmd
}

func incomeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Income operations",
	}

	var name, amount, date string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"name":   name,
				"amount": amount,
				"date":   dateOrNow(date),
			}
			return request(http.MethodPost, "/api/v1/wallet/incomes", body)
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "Income name")
	addCmd.Flags().StringVar(&amount, "amount", "", "Income amount")
	addCmd.Flags().StringVar(&date, "date", "", "Income date (RFC 3339, defaults to now)")
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("amount")

	cmd.AddCommand(addCmd)
	return cmd
}

func limitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limit",
		Short: "Category limit operations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List category limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/wallet/limits", nil)
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set a category limit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"limit": args[1]}
			return request(http.MethodPut, "/api/v1/wallet/limits/"+url.PathEscape(args[0]), body)
		},
	}

	cmd.AddCommand(listCmd, setCmd)
	return cmd
}

func historyCmd() *cobra.Command {
	var granularity string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show transactions bucketed by period",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/wallet/history?granularity="+url.QueryEscape(granularity), nil)
		},
	}
	cmd.Flags().StringVar(&granularity, "granularity", "daily", "daily, weekly or monthly")
	return cmd
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Reset the wallet to its initial state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodDelete, "/api/v1/wallet", nil)
		},
	}
}

func request(method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, truncate(string(raw), 200))
	}

	if len(raw) == 0 {
		fmt.Println("ok")
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		fmt.Println(string(raw))
		return nil
	}
	printJSON(parsed)
	return nil
}

// dateOrNow fills the default the --date help text promises.
func dateOrNow(date string) string {
	if date != "" {
		return date
	}
	return time.Now().Format(time.RFC3339)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
