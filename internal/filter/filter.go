package filter

import (
	"strings"
	"time"

	"github.com/amishk599/jobwatch/internal/model"
)

// NotificationFilter decides which new listings are worth emailing about:
// the title must contain one of the keywords (empty list matches all) and the
// posting date must fall within the freshness window. Listings without a
// parseable posted date are not notified; the source occasionally publishes
// stale or malformed dates and those should never wake anyone up.
type NotificationFilter struct {
	titleKeywords []string
	maxPostingAge time.Duration
	now           func() time.Time
}

// NewNotificationFilter returns a filter over title keywords and posting age.
func NewNotificationFilter(titleKeywords []string, maxPostingAge time.Duration) *NotificationFilter {
	return &NotificationFilter{
		titleKeywords: titleKeywords,
		maxPostingAge: maxPostingAge,
		now:           time.Now,
	}
}

// Match returns true if the listing's title contains any keyword
// (case-insensitive) and it was posted within the freshness window.
func (f *NotificationFilter) Match(listing model.Listing) bool {
	if len(f.titleKeywords) > 0 {
		titleLower := strings.ToLower(listing.Title)
		matched := false
		for _, kw := range f.titleKeywords {
			if strings.Contains(titleLower, strings.ToLower(kw)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if listing.PostedAt == nil {
		return false
	}
	// Posted dates carry no time of day, so a listing posted yesterday can
	// appear up to almost a full day older than it is. The window accounts
	// for that by comparing against the start of the posted day.
	age := f.now().Sub(*listing.PostedAt)
	return age <= f.maxPostingAge
}
