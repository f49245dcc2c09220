package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobwatch/internal/notifier"
	"github.com/amishk599/jobwatch/internal/store"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fetch once, print matches, exit",
	Long:  "Dry run: fetches listings and prints which ones would be notified. Nothing is persisted and no email is sent.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("check mode: nothing will be persisted or emailed")

	// Nop store + log notifier: every listing shows up as new, on stdout.
	r := buildRunner(cfg, store.NewNopStore(), notifier.NewLogNotifier(logger), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := r.Run(ctx); err != nil {
		logger.Error("check failed", "error", err)
		os.Exit(1)
	}

	logger.Info("check complete")
	return nil
}
