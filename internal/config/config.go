package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the jobwatch pipeline.
type Config struct {
	Scope        string // key for persisted state, e.g. "amazon-jobs"
	Interval     time.Duration
	Source       SourceConfig
	Filters      FilterConfig
	Notification NotificationConfig
	Store        StoreConfig
}

// SourceConfig describes the remote listings endpoint and its query.
type SourceConfig struct {
	Endpoint    string `yaml:"endpoint"`     // search.json URL
	Query       string `yaml:"query"`        // base_query value
	Category    string `yaml:"category"`     // optional category facet
	ResultLimit int    `yaml:"result_limit"` // page size, defaults to 100
	MaxPages    int    `yaml:"max_pages"`    // paging cap, defaults to 5
}

// FilterConfig controls which new listings are worth a notification.
// Filters never affect which listings are recorded as seen.
type FilterConfig struct {
	TitleKeywords []string
	MaxPostingAge time.Duration // how far back a posted date still counts as fresh
}

// NotificationConfig controls the notifier and its mail settings.
type NotificationConfig struct {
	Type     string   `yaml:"type"`      // "email" or "log"
	SMTPHost string   `yaml:"smtp_host"` // defaults to smtp.gmail.com
	SMTPPort int      `yaml:"smtp_port"` // defaults to 587
	From     string   `yaml:"from"`      // sending account, also the To address
	Password string   `yaml:"password"`  // app password, expanded from env
	CC       string   `yaml:"cc"`        // optional single CC address
	BCC      []string `yaml:"-"`         // parsed from comma-separated bcc
}

// StoreConfig locates the seen-listings database.
type StoreConfig struct {
	Path string `yaml:"path"` // sqlite file path or DSN
}

const (
	defaultEndpoint    = "https://www.amazon.jobs/en/search.json"
	defaultSMTPHost    = "smtp.gmail.com"
	defaultSMTPPort    = 587
	defaultResultLimit = 100
	defaultMaxPages    = 5
)

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	Scope        string             `yaml:"scope"`
	Interval     string             `yaml:"interval"`
	Source       SourceConfig       `yaml:"source"`
	Filters      rawFilterConfig    `yaml:"filters"`
	Notification rawNotification    `yaml:"notification"`
	Store        StoreConfig        `yaml:"store"`
}

type rawFilterConfig struct {
	TitleKeywords []string `yaml:"title_keywords"`
	MaxPostingAge string   `yaml:"max_posting_age"`
}

type rawNotification struct {
	Type     string `yaml:"type"`
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort int    `yaml:"smtp_port"`
	From     string `yaml:"from"`
	Password string `yaml:"password"`
	CC       string `yaml:"cc"`
	BCC      string `yaml:"bcc"` // comma-separated recipient list
}

// Load reads and parses the YAML config file at path, expands environment
// variables, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables (secrets live in the environment, not the file).
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	interval := 1 * time.Hour // default: hourly, matches the external schedule
	if raw.Interval != "" {
		interval, err = time.ParseDuration(raw.Interval)
		if err != nil {
			return nil, fmt.Errorf("parse interval %q: %w", raw.Interval, err)
		}
	}

	maxAge := 24 * time.Hour // default: postings from the last day
	if raw.Filters.MaxPostingAge != "" {
		maxAge, err = time.ParseDuration(raw.Filters.MaxPostingAge)
		if err != nil {
			return nil, fmt.Errorf("parse filters.max_posting_age %q: %w", raw.Filters.MaxPostingAge, err)
		}
	}

	scope := raw.Scope
	if scope == "" {
		scope = "amazon-jobs"
	}

	source := raw.Source
	if source.Endpoint == "" {
		source.Endpoint = defaultEndpoint
	}
	if source.ResultLimit <= 0 {
		source.ResultLimit = defaultResultLimit
	}
	if source.MaxPages <= 0 {
		source.MaxPages = defaultMaxPages
	}

	notification := NotificationConfig{
		Type:     raw.Notification.Type,
		SMTPHost: raw.Notification.SMTPHost,
		SMTPPort: raw.Notification.SMTPPort,
		From:     strings.TrimSpace(raw.Notification.From),
		Password: raw.Notification.Password,
		CC:       strings.TrimSpace(raw.Notification.CC),
		BCC:      splitRecipients(raw.Notification.BCC),
	}
	if notification.Type == "" {
		notification.Type = "email"
	}
	if notification.SMTPHost == "" {
		notification.SMTPHost = defaultSMTPHost
	}
	if notification.SMTPPort == 0 {
		notification.SMTPPort = defaultSMTPPort
	}

	store := raw.Store
	if store.Path == "" {
		store.Path = "jobwatch.db"
	}

	cfg := &Config{
		Scope:    scope,
		Interval: interval,
		Source:   source,
		Filters: FilterConfig{
			TitleKeywords: raw.Filters.TitleKeywords,
			MaxPostingAge: maxAge,
		},
		Notification: notification,
		Store:        store,
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitRecipients parses a comma-separated recipient list, dropping empties.
func splitRecipients(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
