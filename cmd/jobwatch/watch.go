package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobwatch/internal/scheduler"
	"github.com/amishk599/jobwatch/internal/store"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run as a daemon on the configured interval",
	Long:  "Daemon mode for hosts without cron: runs a check cycle immediately, then on every interval tick; blocks until SIGINT/SIGTERM.",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"scope", cfg.Scope,
		"interval", cfg.Interval.String(),
		"endpoint", cfg.Source.Endpoint,
	)

	sqlStore, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer sqlStore.Close()

	n := setupNotifier(cfg, logger)
	r := buildRunner(cfg, sqlStore, n, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(r, cfg.Interval, logger)
	if err := sched.Run(ctx); err != nil {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
