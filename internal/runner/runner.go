package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amishk599/jobwatch/internal/diff"
	"github.com/amishk599/jobwatch/internal/model"
)

// Runner owns one full check cycle: fetch → load seen → diff → notify →
// save seen. Fetch and load failures abort the cycle before any state is
// touched. Notify and save failures are logged but do not abort: a lost
// notification beats re-notifying the same listing every hour, and a failed
// save only means the next cycle re-derives novelty from the last persisted
// state.
type Runner struct {
	Scope    string
	fetcher  model.ListingFetcher
	filter   model.ListingFilter
	store    model.SeenStore
	notifier model.Notifier
	logger   *slog.Logger
}

// NewRunner creates a runner wired with all its dependencies.
func NewRunner(
	scope string,
	fetcher model.ListingFetcher,
	filter model.ListingFilter,
	store model.SeenStore,
	notifier model.Notifier,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		Scope:    scope,
		fetcher:  fetcher,
		filter:   filter,
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Run executes one cycle. The returned error is non-nil only for failures
// that abort the cycle (fetch or seen-set load); the process exit code hangs
// off it so the external scheduler records the run as failed.
func (r *Runner) Run(ctx context.Context) error {
	listings, err := r.fetcher.FetchListings(ctx)
	if err != nil {
		return fmt.Errorf("checking %s: %w", r.Scope, err)
	}

	seen, err := r.store.LoadSeen(r.Scope)
	if err != nil {
		return fmt.Errorf("checking %s: %w", r.Scope, err)
	}

	fresh, updated := diff.Diff(listings, seen)

	// The filter gates notification only. Every fetched identifier is in
	// updated regardless, so a listing filtered out today is not re-surfaced
	// tomorrow when the filter config changes.
	var batch []model.Listing
	for _, l := range fresh {
		if r.filter.Match(l) {
			batch = append(batch, l)
		}
	}

	if len(batch) > 0 {
		if err := r.notifier.Notify(batch); err != nil {
			r.logger.Error("notification failed, continuing to persist",
				"scope", r.Scope,
				"listings", len(batch),
				"error", err,
			)
		}
	}

	if err := r.store.SaveSeen(r.Scope, updated); err != nil {
		// Next cycle re-notifies this batch. Acceptable duplicate.
		r.logger.Error("saving seen set failed",
			"scope", r.Scope,
			"error", err,
		)
	}

	r.logger.Info("check complete",
		"scope", r.Scope,
		"fetched", len(listings),
		"new", len(fresh),
		"notified", len(batch),
		"seen_total", len(updated),
	)

	return nil
}
