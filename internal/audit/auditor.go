package audit

import (
	"errors"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"krimiwiki/internal/daserste"
	"krimiwiki/internal/germandate"
	"krimiwiki/internal/logging"
	"krimiwiki/internal/mediawiki"
	"krimiwiki/internal/series"
	"krimiwiki/internal/wikitext"
)

var episodeNumberPattern = regexp.MustCompile(`^[1-9][0-9]*`)

// Option configures an Auditor.
type Option func(*Auditor)

// WithLogger sets the logger receiving findings and progress.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Auditor) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Auditor checks the pages of one series. It is not safe for concurrent use.
type Auditor struct {
	profile  *series.Profile
	dates    *germandate.Parser
	logger   *slog.Logger
	handlers map[string]templateHandler

	categories map[string]int
	templates  map[string]int
	stats      *InfoboxStats
	records    []*Record
	findings   []Finding
	pages      int
}

// New returns an Auditor for profile.
func New(profile *series.Profile, opts ...Option) (*Auditor, error) {
	if profile == nil {
		return nil, errors.New("series profile required")
	}
	a := &Auditor{
		profile:    profile,
		dates:      germandate.NewParser(profile.ExtraMonths),
		logger:     logging.NewNop(),
		categories: make(map[string]int),
		templates:  make(map[string]int),
		stats:      NewInfoboxStats(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.handlers = a.templateHandlers()
	return a, nil
}

// Process reads one page. Pages that cannot be placed in the episode
// sequence are reported and left out of the cross-check.
func (a *Auditor) Process(page Page) {
	a.pages++
	r := newRecord(page.Title, a.profile.EpisodeName(page.Title))

	if page.Namespace != mediawiki.MainNamespace {
		a.report(r, "Not in the main namespace|%s|", mediawiki.NamespaceName(page.Namespace))
		return
	}

	for _, cat := range page.Categories {
		a.categories[cat]++
	}
	for _, t := range wikitext.ExtractTemplates(page.Wikitext) {
		if strings.HasPrefix(t.Name, "SORTIERUNG:") || strings.HasPrefix(t.Name, "DEFAULTSORT:") {
			continue
		}
		if handle, ok := a.handlers[t.Name]; ok {
			handle(r, t)
		}
		a.templates[t.Name]++
	}

	if !r.episodeSet {
		a.report(r, "Missing %s Infobox", a.profile.Name)
		return
	}
	if r.EpisodeRaw == "" {
		a.report(r, "Missing episode number")
		return
	}
	if !a.parseEpisodeNumber(r) {
		a.report(r, "Invalid episode number|%s|", r.EpisodeRaw)
		return
	}

	if r.Title != "" {
		a.checkTitle(r, "Infobox", r.Title)
	} else {
		a.report(r, "Missing episode title")
	}
	skip := false
	if r.Date == "" {
		a.report(r, "Missing episode date")
		skip = true
	}
	if !r.navigation {
		a.report(r, "Missing Folgenleiste")
		skip = true
	}
	if r.imdb == nil {
		a.report(r, "Missing IMDb")
	}

	for _, c := range a.profile.Catalogs {
		params, ok := r.catalogs[c.Template]
		switch {
		case !ok:
			if c.Expected {
				a.report(r, "Missing %s", c.Template)
			}
		case c.NumberLabel != "":
			a.checkCatalogNumber(r, c, params)
		}
	}

	if skip {
		return
	}
	a.extractURL(r, page)
	a.records = append(a.records, r)
}

// parseEpisodeNumber accepts "N" and, for series with double episodes,
// "N, N+1".
func (a *Auditor) parseEpisodeNumber(r *Record) bool {
	raw := r.EpisodeRaw
	loc := episodeNumberPattern.FindStringIndex(raw)
	if loc == nil {
		return false
	}
	n, err := strconv.Atoi(raw[:loc[1]])
	if err != nil {
		return false
	}
	switch suffix := raw[loc[1]:]; {
	case suffix == "":
	case a.profile.DoubleEpisodes && suffix == ", "+strconv.Itoa(n+1):
		r.Double = true
	default:
		return false
	}
	r.Episode = n
	return true
}

func (a *Auditor) extractURL(r *Record, page Page) {
	src := a.profile.URLSource
	switch {
	case src.Catalog != "":
		if params, ok := r.catalogs[src.Catalog]; ok {
			r.URL = params[src.Param]
		}
	case a.profile.ExternalPattern() != nil:
		slugs, findings := daserste.ExternalSlugs(page.ExternalLinks, src.ExternalPrefix, a.profile.ExternalPattern())
		for _, f := range findings {
			a.report(r, "%s", f)
		}
		r.URL = strings.Join(slugs, ",")
	}
}

// Finish cross-checks the collected records and returns the report. The
// Auditor must not be used afterwards.
func (a *Auditor) Finish() *Report {
	sort.SliceStable(a.records, func(i, j int) bool {
		return a.records[i].Episode < a.records[j].Episode
	})
	a.crossCheck(a.records)

	a.logger.Info("audit finished",
		logging.Int("pages", a.pages),
		logging.Int("episodes", len(a.records)),
		logging.Int("findings", len(a.findings)))

	return &Report{
		Profile:    a.profile,
		Records:    a.records,
		Findings:   a.findings,
		Categories: a.categories,
		Templates:  a.templates,
		Stats:      a.stats,
		Pages:      a.pages,
	}
}
