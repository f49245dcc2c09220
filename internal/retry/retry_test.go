package retry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amishk599/jobwatch/internal/model"
)

// FlakyFetcher fails a fixed number of times before succeeding.
type FlakyFetcher struct {
	failures int
	calls    int
	err      error
	listings []model.Listing
}

func (f *FlakyFetcher) FetchListings(_ context.Context) ([]model.Listing, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return f.listings, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchListings_SuccessFirstTry(t *testing.T) {
	inner := &FlakyFetcher{listings: []model.Listing{{ID: "1"}}}
	f := NewRetryFetcher(inner, 2, time.Millisecond, discardLogger())

	listings, err := f.FetchListings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 1 || inner.calls != 1 {
		t.Errorf("listings = %d, calls = %d; want 1, 1", len(listings), inner.calls)
	}
}

func TestFetchListings_RetriesTransientThenSucceeds(t *testing.T) {
	transient := &model.FetchError{
		Source: "test",
		Err:    &model.HTTPError{StatusCode: 503},
	}
	inner := &FlakyFetcher{failures: 2, err: transient, listings: []model.Listing{{ID: "1"}}}
	f := NewRetryFetcher(inner, 2, time.Millisecond, discardLogger())

	listings, err := f.FetchListings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 1 {
		t.Errorf("listings = %d, want 1", len(listings))
	}
	if inner.calls != 3 {
		t.Errorf("calls = %d, want 3 (1 initial + 2 retries)", inner.calls)
	}
}

func TestFetchListings_ExhaustedRetriesPropagateLastError(t *testing.T) {
	transient := &model.FetchError{
		Source: "test",
		Err:    &model.HTTPError{StatusCode: 500},
	}
	inner := &FlakyFetcher{failures: 10, err: transient}
	f := NewRetryFetcher(inner, 2, time.Millisecond, discardLogger())

	_, err := f.FetchListings(context.Background())
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != 500 {
		t.Errorf("expected last HTTP 500 error, got %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("calls = %d, want 3", inner.calls)
	}
}

func TestFetchListings_NoRetryOnClientError(t *testing.T) {
	notFound := &model.FetchError{
		Source: "test",
		Err:    &model.HTTPError{StatusCode: 404},
	}
	inner := &FlakyFetcher{failures: 10, err: notFound}
	f := NewRetryFetcher(inner, 2, time.Millisecond, discardLogger())

	_, err := f.FetchListings(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if inner.calls != 1 {
		t.Errorf("calls = %d, want 1 (4xx is not retryable)", inner.calls)
	}
}

func TestFetchListings_NoRetryOnCancelledContext(t *testing.T) {
	inner := &FlakyFetcher{failures: 10, err: context.Canceled}
	f := NewRetryFetcher(inner, 2, time.Millisecond, discardLogger())

	_, err := f.FetchListings(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if inner.calls != 1 {
		t.Errorf("calls = %d, want 1 (cancellation is not retryable)", inner.calls)
	}
}

func TestBackoffDelay_RetryAfterTakesPrecedence(t *testing.T) {
	f := NewRetryFetcher(nil, 2, time.Second, discardLogger())

	err := &model.HTTPError{StatusCode: 429, RetryAfter: 42 * time.Second}
	if got := f.backoffDelay(1, err); got != 42*time.Second {
		t.Errorf("backoffDelay = %v, want 42s from Retry-After", got)
	}
}
