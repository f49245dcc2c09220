package notifier

import (
	"log/slog"

	"github.com/amishk599/jobwatch/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes new listings to the given logger as structured messages.
// Used in check mode and when no mail account is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each listing via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs each listing with title, location, level, URL, and posted_at.
// Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(listings []model.Listing) error {
	for _, l := range listings {
		args := []any{"title", l.Title, "location", l.Location, "url", l.URL}
		if l.Level != "" {
			args = append(args, "level", l.Level)
		}
		if l.PostedAt != nil {
			args = append(args, "posted_at", l.PostedAt.Format("2006-01-02"))
		}
		n.logger.Info("new listing", args...)
	}
	return nil
}
