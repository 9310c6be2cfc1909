package main

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/dialogue-flow/internal/processor"
	"github.com/nguyentantai21042004/dialogue-flow/internal/watcher"
	"github.com/nguyentantai21042004/dialogue-flow/pkg/executor"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process request files dropped into paths.input",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		proc, err := processor.New(cfg, executor.New(), log)
		if err != nil {
			return err
		}

		w, err := watcher.New(cfg.Paths.Input, cfg.Watch, proc.ProcessFile, log)
		if err != nil {
			return err
		}
		defer w.Stop()

		log.Info(ctx, "========================================")
		log.Info(ctx, "Dialogue Pipeline is ready!")
		log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
		log.Info(ctx, "Output: %s", cfg.Paths.Output)
		log.Info(ctx, "Concurrent requests: %d", cfg.Watch.MaxConcurrent)
		log.Info(ctx, "")
		log.Info(ctx, "Press Ctrl+C to stop")
		log.Info(ctx, "========================================")

		err = w.Start(ctx)
		log.Info(context.Background(), "Dialogue Pipeline stopped")
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}
