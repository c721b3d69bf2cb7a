package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/daodash/internal/usecase"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "daodash-cli",
		Short:         "DAO dashboard CLI tool",
		Long:          `A command line interface for token amounts, proposal schedules and the daodash API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the daodash API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(tokenCmd(), timeCmd(), memberCmd(), toastCmd(), healthCmd())

	return rootCmd
}

// Token commands

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Token amount operations",
	}
	cmd.AddCommand(tokenFormatCmd(), tokenParseCmd())
	return cmd
}

func tokenFormatCmd() *cobra.Command {
	var (
		decimals int
		symbol   string
		round    bool
	)

	cmd := &cobra.Command{
		Use:   "format <base-units>",
		Short: "Render a base-unit amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := usecase.NewTokenUseCase(nil).FormatToken(usecase.FormatTokenInput{
				BaseUnits: args[0],
				Decimals:  decimals,
				Symbol:    symbol,
				Round:     round,
			})
			if err != nil {
				return err
			}
			printJSON(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&decimals, "decimals", 18, "Token decimals")
	cmd.Flags().StringVar(&symbol, "symbol", "", "Token symbol")
	cmd.Flags().BoolVar(&round, "round", false, "Round to whole units")

	return cmd
}

func tokenParseCmd() *cobra.Command {
	var decimals int

	cmd := &cobra.Command{
		Use:   "parse <amount>",
		Short: "Convert a decimal amount into base units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := usecase.NewTokenUseCase(nil).ParseToken(usecase.ParseTokenInput{
				Amount:   args[0],
				Decimals: decimals,
			})
			if err != nil {
				return err
			}
			fmt.Println(out.BaseUnits)
			return nil
		},
	}

	cmd.Flags().IntVar(&decimals, "decimals", 18, "Token decimals")

	return cmd
}

// Time commands

func timeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Timezone and proposal schedule operations",
	}
	cmd.AddCommand(timeZonesCmd(), timeOffsetCmd(), timeGapCmd(), timeDateAheadCmd(), timeCountdownCmd())
	return cmd
}

func timeZonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List selectable UTC offsets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, tz := range usecase.NewScheduleUseCase(nil, 0, nil).Timezones() {
				fmt.Println(tz)
			}
		},
	}
}

func timeOffsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "offset <a> <b>",
		Short: "Print offset(a) - offset(b) in minutes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			diff, err := usecase.NewScheduleUseCase(nil, 0, nil).OffsetDifference(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Println(diff)
			return nil
		},
	}
}

func timeGapCmd() *cobra.Command {
	var (
		input      usecase.GapInput
		minSeconds int64
	)

	cmd := &cobra.Command{
		Use:   "gap",
		Short: "Check that an end date is far enough after a start date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("min-seconds") {
				input.MinSeconds = &minSeconds
			}
			ok, err := usecase.NewScheduleUseCase(nil, 0, nil).CheckGap(input)
			if err != nil {
				return err
			}
			fmt.Println(ok)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.StartDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&input.StartTime, "start-time", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&input.EndDate, "end-date", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&input.EndTime, "end-time", "", "End time (HH:MM)")
	cmd.Flags().Int64Var(&minSeconds, "min-seconds", 0, "Minimum gap in seconds (default: 24h)")

	return cmd
}

func timeDateAheadCmd() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "date-ahead <seconds>",
		Short: "Print the date a duration after start or today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var seconds int64
			if _, err := fmt.Sscan(args[0], &seconds); err != nil {
				return fmt.Errorf("invalid duration %q: %w", args[0], err)
			}
			date, err := usecase.NewScheduleUseCase(nil, 0, nil).DateAhead(seconds, start)
			if err != nil {
				return err
			}
			fmt.Println(date)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")

	return cmd
}

func timeCountdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countdown <rfc3339>",
		Short: "Describe how far an instant is from now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			end, err := time.Parse(time.RFC3339, args[0])
			if err != nil {
				return fmt.Errorf("invalid time %q: %w", args[0], err)
			}
			fmt.Println(usecase.NewScheduleUseCase(nil, 0, nil).Countdown(end))
			return nil
		},
	}
}

// Member commands

func memberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Member address operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "format <address>...",
		Short: "Checksum and shorten member addresses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := usecase.NewMemberUseCase().FormatMembers(args)
			if err != nil {
				return err
			}
			for _, m := range members {
				fmt.Printf("%-44s %s\n", m.Checksum, m.Short)
			}
			return nil
		},
	})

	return cmd
}

// API commands

type toastView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
	Open        bool   `json:"open"`
}

func toastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toast",
		Short: "Inspect and raise notifications on a running server",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List queued toasts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := doRequest(http.MethodGet, "/api/v1/toasts/", nil)
			if err != nil {
				return err
			}

			var resp struct {
				Toasts []toastView `json:"toasts"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printToasts(resp.Toasts)
			return nil
		},
	}

	var description, variant string
	sendCmd := &cobra.Command{
		Use:   "send <title>",
		Short: "Raise a toast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, _ := json.Marshal(map[string]string{
				"title":       args[0],
				"description": description,
				"variant":     variant,
			})

			body, err := doRequest(http.MethodPost, "/api/v1/toasts/", strings.NewReader(string(payload)))
			if err != nil {
				return err
			}

			var toast toastView
			if err := json.Unmarshal(body, &toast); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			fmt.Println(toast.ID)
			return nil
		},
	}
	sendCmd.Flags().StringVar(&description, "description", "", "Toast description")
	sendCmd.Flags().StringVar(&variant, "variant", "", "Toast variant (default, destructive)")

	cmd.AddCommand(listCmd, sendCmd)

	return cmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := doRequest(http.MethodGet, "/ready", nil)
			if err != nil {
				return err
			}

			var result map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			printJSON(result)
			return nil
		},
	}
}

func doRequest(method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequest(method, strings.TrimRight(baseURL, "/")+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("request failed (status: %d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	return data, nil
}

func printToasts(toasts []toastView) {
	if len(toasts) == 0 {
		fmt.Println("No toasts")
		return
	}

	fmt.Printf("%-28s %-12s %-6s %s\n", "ID", "VARIANT", "OPEN", "TITLE")
	for _, t := range toasts {
		fmt.Printf("%-28s %-12s %-6v %s\n", t.ID, t.Variant, t.Open, truncate(t.Title, 40))
	}
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
		return
	}
	fmt.Println(string(data))
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
