package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/amishk599/jobwatch/internal/model"
)

// validate fails fast on anything that would only surface mid-run otherwise.
// Returns *model.ConfigError so callers can distinguish config failures.
func validate(cfg *Config) error {
	if cfg.Interval <= 0 {
		return &model.ConfigError{Field: "interval", Reason: fmt.Sprintf("must be positive, got %v", cfg.Interval)}
	}
	if !strings.HasPrefix(cfg.Source.Endpoint, "http://") && !strings.HasPrefix(cfg.Source.Endpoint, "https://") {
		return &model.ConfigError{Field: "source.endpoint", Reason: fmt.Sprintf("must be an http(s) URL, got %q", cfg.Source.Endpoint)}
	}
	if cfg.Filters.MaxPostingAge < 1*time.Hour {
		return &model.ConfigError{Field: "filters.max_posting_age", Reason: fmt.Sprintf("must be at least 1h, got %v", cfg.Filters.MaxPostingAge)}
	}

	switch cfg.Notification.Type {
	case "email":
		// Secrets come from the environment via ${VAR} expansion; an unset
		// variable expands to "" and must be caught here, not at send time.
		if cfg.Notification.From == "" {
			return &model.ConfigError{Field: "notification.from", Reason: "required (is EMAIL_ADDRESS set?)"}
		}
		if cfg.Notification.Password == "" {
			return &model.ConfigError{Field: "notification.password", Reason: "required (is EMAIL_PASSWORD set?)"}
		}
		if len(cfg.Notification.BCC) == 0 && cfg.Notification.CC == "" {
			return &model.ConfigError{Field: "notification.bcc", Reason: "at least one cc or bcc recipient required"}
		}
	case "log":
		// Nothing to check.
	default:
		return &model.ConfigError{Field: "notification.type", Reason: fmt.Sprintf("must be \"email\" or \"log\", got %q", cfg.Notification.Type)}
	}

	return nil
}
