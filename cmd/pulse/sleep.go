package main

import (
	"context"
	"fmt"
	"os"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/garrettladley/pulse/internal/sleep"
)

func sleepCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "sleep",
		Short: "reconstruct sleep sessions and daily summaries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSleep(cmd.Context(), days)
		},
	}
	cmd.Flags().IntVar(&days, "days", 1, "how many trailing days to report")
	return cmd
}

func runSleep(ctx context.Context, days int) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	now := time.Now()
	start := now.AddDate(0, 0, -days)

	samples, err := a.source.IntervalSamples(ctx, start, now)
	if err != nil {
		return fmt.Errorf("fetch interval samples: %w", err)
	}

	sessions := sleep.BuildSessions(samples, start, now)

	summaries := make([]sleep.DailySummary, 0, days)
	for d := 0; d < days; d++ {
		date := now.AddDate(0, 0, -d)
		summaries = append(summaries, sleep.BuildDailySummary(date, sessions))
	}

	out := struct {
		Sessions  []sleep.Session      `json:"sessions"`
		Summaries []sleep.DailySummary `json:"summaries"`
	}{
		Sessions:  sessions,
		Summaries: summaries,
	}

	enc := go_json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode sleep report: %w", err)
	}
	return nil
}
