package audit

import (
	"context"
	"fmt"
	"log/slog"

	"krimiwiki/internal/logging"
	"krimiwiki/internal/mediawiki"
	"krimiwiki/internal/series"
)

// Source delivers the pages of a series one by one.
type Source interface {
	Pages(ctx context.Context, fn func(Page) error) error
}

// WikiClient is the part of the wiki API the audit needs.
type WikiClient interface {
	EmbeddedIn(ctx context.Context, template string, namespaces []int, limit int) ([]mediawiki.PageRef, error)
	Pages(ctx context.Context, titles []string) ([]mediawiki.Page, error)
}

// WikiSource reads the pages transcluding the series' selection template.
type WikiSource struct {
	client  WikiClient
	profile *series.Profile
	limit   int
	logger  *slog.Logger
}

// NewWikiSource returns a Source over client. limit caps the number of pages
// (0 reads all).
func NewWikiSource(client WikiClient, profile *series.Profile, limit int, logger *slog.Logger) *WikiSource {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &WikiSource{client: client, profile: profile, limit: limit, logger: logger}
}

// Pages implements Source.
func (s *WikiSource) Pages(ctx context.Context, fn func(Page) error) error {
	var namespaces []int
	if s.profile.MainNamespaceOnly {
		namespaces = []int{mediawiki.MainNamespace}
	}
	refs, err := s.client.EmbeddedIn(ctx, s.profile.Selection(), namespaces, s.limit)
	if err != nil {
		return fmt.Errorf("list pages using %s: %w", s.profile.Selection(), err)
	}
	s.logger.InfoContext(ctx, "pages selected",
		logging.String("template", s.profile.Selection()),
		logging.Int("count", len(refs)))

	titles := make([]string, len(refs))
	for i, ref := range refs {
		titles[i] = ref.Title
	}
	pages, err := s.client.Pages(ctx, titles)
	if err != nil {
		return fmt.Errorf("load pages: %w", err)
	}
	for _, p := range pages {
		if p.Missing {
			s.logger.Debug("page vanished since listing", logging.Page(p.Title))
			continue
		}
		page := Page{
			Title:         p.Title,
			Namespace:     p.Namespace,
			Wikitext:      p.Wikitext,
			Categories:    p.Categories,
			ExternalLinks: p.ExternalLinks,
		}
		if err := fn(page); err != nil {
			return err
		}
	}
	return nil
}

// Run audits every page of src.
func (a *Auditor) Run(ctx context.Context, src Source) (*Report, error) {
	err := src.Pages(ctx, func(p Page) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.Process(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a.Finish(), nil
}
