package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobwatch/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one check cycle and exit",
	Long:  "One-shot mode for external schedulers: fetch, diff against the seen store, notify, persist, exit. Exits non-zero if the fetch or the seen-store load fails.",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"scope", cfg.Scope,
		"endpoint", cfg.Source.Endpoint,
		"title_keywords", len(cfg.Filters.TitleKeywords),
		"max_posting_age", cfg.Filters.MaxPostingAge.String(),
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

	if err := r.Run(ctx); err != nil {
		logger.Error("check failed", "error", err)
		os.Exit(1)
	}
	return nil
}
