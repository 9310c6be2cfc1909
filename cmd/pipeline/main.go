package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nguyentantai21042004/dialogue-flow/internal/config"
	"github.com/nguyentantai21042004/dialogue-flow/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	log     logger.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "dialogue-flow",
	Short:         "Turn a source video into a two-person avatar dialogue video",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log = logger.NewWithWriter(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

		ctx := cmd.Context()
		log.Info(ctx, "========================================")
		log.Info(ctx, "Dialogue Video Pipeline")
		log.Info(ctx, "========================================")
		log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
		log.Info(ctx, "Turn concurrency: %d, ffmpeg concurrency: %d", cfg.Scheduler.MaxConcurrent, cfg.FFmpeg.MaxConcurrent)
		log.Info(ctx, "Failure policy: %s", cfg.Scheduler.FailurePolicy)
		log.Info(ctx, "Configuration loaded successfully")

		return ensureDirectories(cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
