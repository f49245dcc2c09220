package model

import (
	"context"
	"time"
)

// Listing is one job posting as published by the remote source.
// Immutable once fetched.
type Listing struct {
	ID             string     // stable identifier (amazon.jobs id_icims)
	Title          string     // job title
	Location       string     // location string as published
	URL            string     // direct apply link
	Level          string     // job level, empty if not published
	Qualifications string     // basic qualifications summary, may be empty
	PostedAt       *time.Time // nullable (source omits or mangles dates sometimes)
	FetchedAt      time.Time  // our clock
}

// SeenSet is the set of listing identifiers already processed in past runs.
type SeenSet map[string]struct{}

// NewSeenSet builds a SeenSet from the given identifiers.
func NewSeenSet(ids ...string) SeenSet {
	s := make(SeenSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set.
func (s SeenSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s SeenSet) Add(id string) {
	s[id] = struct{}{}
}

// IDs returns the identifiers in the set in unspecified order.
func (s SeenSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}

// ListingFetcher fetches the currently published listings from a source.
type ListingFetcher interface {
	FetchListings(ctx context.Context) ([]Listing, error)
}

// SeenStore persists the SeenSet across runs, keyed by a stable scope
// (e.g. "amazon-jobs") so one database can serve several watchers.
type SeenStore interface {
	LoadSeen(scope string) (SeenSet, error)
	SaveSeen(scope string, seen SeenSet) error
}

// Notifier delivers a batch of new listings. Implementations must treat an
// empty batch as a no-op.
type Notifier interface {
	Notify(listings []Listing) error
}

// ListingFilter decides whether a new listing is worth notifying about.
// It gates notification only; filtered listings are still marked seen.
type ListingFilter interface {
	Match(listing Listing) bool
}
