package revstats

import (
	"context"
	"fmt"
	"log/slog"

	"krimiwiki/internal/logging"
	"krimiwiki/internal/mediawiki"
)

// HistorySource lists the transcluding pages of a template and walks the
// revision history of one page.
type HistorySource interface {
	EmbeddedIn(ctx context.Context, template string, namespaces []int, limit int) ([]mediawiki.PageRef, error)
	Revisions(ctx context.Context, title string, fn func(mediawiki.Revision) error) error
}

// Collect counts the histories of up to limit articles transcluding the
// selector's template. A limit of 0 counts every article.
func Collect(ctx context.Context, src HistorySource, sel Selector, limit int, logger *slog.Logger) (*Collector, error) {
	if limit < 0 {
		return nil, fmt.Errorf("total must not be negative: %d", limit)
	}
	logger = logging.NewComponentLogger(logger, "revstats")
	refs, err := src.EmbeddedIn(ctx, sel.Template, []int{mediawiki.MainNamespace}, limit)
	if err != nil {
		return nil, fmt.Errorf("list pages for %s: %w", sel, err)
	}
	logger.InfoContext(ctx, "collecting revision histories",
		logging.String("template", sel.String()),
		logging.Int("pages", len(refs)))

	c := NewCollector(logger)
	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logger.InfoContext(ctx, "page history",
			logging.Page(ref.Title),
			logging.Int("index", i+1),
			logging.Int("total", len(refs)))
		var revs []Revision
		err := src.Revisions(ctx, ref.Title, func(rev mediawiki.Revision) error {
			revs = append(revs, Revision{User: rev.User, Anon: rev.Anon, Time: rev.Timestamp})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("revisions of %q: %w", ref.Title, err)
		}
		c.AddHistory(revs)
	}
	return c, nil
}
