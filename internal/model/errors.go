package model

import (
	"fmt"
	"time"
)

// ConfigError reports a missing or invalid configuration value. Fatal: no run
// is attempted.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

// FetchError wraps a failure to retrieve or parse listings from the remote
// source. Aborts the run without mutating persisted state.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StoreError wraps a seen-store failure. Op is "load" or "save". A load
// failure aborts the run; a save failure only means the next run re-derives
// novelty from the last persisted state.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NotifyError wraps a mail transport failure. Logged; never blocks state
// persistence.
type NotifyError struct {
	Err error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("notify: %v", e.Err)
}

func (e *NotifyError) Unwrap() error {
	return e.Err
}

// HTTPError wraps an HTTP status code so retry logic can inspect it.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}
