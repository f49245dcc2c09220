package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobwatch/internal/adapter"
	"github.com/amishk599/jobwatch/internal/config"
	"github.com/amishk599/jobwatch/internal/filter"
	"github.com/amishk599/jobwatch/internal/model"
	"github.com/amishk599/jobwatch/internal/notifier"
	"github.com/amishk599/jobwatch/internal/retry"
	"github.com/amishk599/jobwatch/internal/runner"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobwatch",
	Short: "Amazon job-listings watcher",
	Long:  "jobwatch checks amazon.jobs for new listings and emails the ones it has not seen before.",
	// Default to `run` so that a bare `jobwatch` invocation works directly
	// from cron or a scheduled workflow.
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBWATCH_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBWATCH_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBWATCH_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupNotifier(cfg *config.Config, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "email":
		logger.Info("using email notifier",
			"smtp_host", cfg.Notification.SMTPHost,
			"cc", cfg.Notification.CC,
			"bcc", len(cfg.Notification.BCC),
		)
		return notifier.NewEmailNotifier(cfg.Notification, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

// buildRunner wires fetch → filter → store → notify into one runner.
func buildRunner(cfg *config.Config, seenStore model.SeenStore, n model.Notifier, logger *slog.Logger) *runner.Runner {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	var fetcher model.ListingFetcher = adapter.NewAmazonAdapter(cfg.Source, httpClient)
	fetcher = retry.NewRetryFetcher(fetcher, 2, 5*time.Second, logger)

	listingFilter := filter.NewNotificationFilter(
		cfg.Filters.TitleKeywords,
		cfg.Filters.MaxPostingAge,
	)

	return runner.NewRunner(cfg.Scope, fetcher, listingFilter, seenStore, n, logger)
}
