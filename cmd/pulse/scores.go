package main

import (
	"context"
	"fmt"
	"os"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/garrettladley/pulse/internal/engine"
	"github.com/garrettladley/pulse/internal/xslog"
)

func scoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores",
		Short: "compute and print today's four scores",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScores(cmd.Context())
		},
	}
}

func runScores(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	ctx = xslog.WithLogger(ctx, a.logger)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.engine.Run(runCtx)

	sub := a.engine.Subscribe()
	if err := a.ingest.RefreshAll(ctx); err != nil {
		return err
	}
	waitForQuiet(ctx, sub, 2*a.cfg.DebounceWindow)

	out := struct {
		Scores  any `json:"scores"`
		Metrics any `json:"metrics"`
		Summary any `json:"summary,omitempty"`
	}{
		Scores:  a.engine.Scores(),
		Metrics: a.engine.MetricStates(),
		Summary: a.engine.DailySummary(),
	}

	enc := go_json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	return nil
}

// waitForQuiet drains updates until no transition arrives for quiet, so a
// one-shot command observes the settled state after the debounce window.
func waitForQuiet(ctx context.Context, sub <-chan engine.Update, quiet time.Duration) {
	const maxWait = 10 * time.Second

	deadline := time.NewTimer(maxWait)
	defer deadline.Stop()

	for {
		select {
		case <-sub:
		case <-time.After(quiet):
			return
		case <-deadline.C:
			return
		case <-ctx.Done():
			return
		}
	}
}
