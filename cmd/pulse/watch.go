package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/garrettladley/pulse/internal/xslog"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "run the engine, refreshing on an interval",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context())
		},
	}
}

func runWatch(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	ctx = xslog.WithLogger(ctx, a.logger)

	go func() {
		sub := a.engine.Subscribe()
		for {
			select {
			case update := <-sub:
				a.logger.Info("score update",
					xslog.Category(update.Category),
					xslog.ScorePhase(update.State.Phase))
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(a.cfg.RefreshInterval)
		defer ticker.Stop()

		for {
			if err := a.ingest.RefreshAll(ctx); err != nil {
				a.logger.Warn("refresh failed", xslog.Error(err))
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return a.engine.Run(ctx)
}
