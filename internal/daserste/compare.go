package daserste

import (
	"fmt"
	"log/slog"
	"strings"

	"krimiwiki/internal/episodefile"
	"krimiwiki/internal/logging"
	"krimiwiki/internal/textutil"
)

// TitleMapFile is the work-dir file translating wiki titles to the
// broadcaster's spelling.
const TitleMapFile = "tatort-title-map.txt"

// Change is one difference between the wiki report and the broadcaster index.
type Change struct {
	// Kind is ADD for episodes missing from the wiki report and MOD for
	// differing fields.
	Kind   string
	Number int
	// Field is DATE, TITLE or URL for MOD changes.
	Field string
	Wiki  string
	Index string
	Entry Entry
}

func (c Change) String() string {
	if c.Kind == "ADD" {
		return "ADD|" + c.Entry.String()
	}
	return fmt.Sprintf("MOD|%d|%s|%s|%s", c.Number, c.Field, c.Wiki, c.Index)
}

// PrepareWiki indexes the wiki report by episode number. Titles are
// translated to the broadcaster's spelling through titles; titles with
// runes outside the usual alphabet are logged.
func PrepareWiki(episodes []episodefile.WikiEpisode, titles map[string]string, logger *slog.Logger) map[int]episodefile.WikiEpisode {
	if logger == nil {
		logger = logging.NewNop()
	}
	byNumber := make(map[int]episodefile.WikiEpisode, len(episodes))
	for _, ep := range episodes {
		if unexpected := textutil.UnexpectedRunes(ep.Title); len(unexpected) > 0 {
			logging.WarnWithContext(logger, "unexpected characters in title", "title_characters",
				logging.String("title", ep.Title),
				logging.String("characters", textutil.FormatCodePoints(unexpected)),
				logging.String(logging.FieldErrorHint, "add the title to the title map or fix the wiki article"),
				logging.String(logging.FieldImpact, "title may be reported as modified"))
		}
		if mapped, ok := titles[ep.Title]; ok {
			ep.Title = mapped
		}
		byNumber[ep.Number] = ep
	}
	return byNumber
}

// Diff lists index episodes the wiki report lacks or describes differently.
func Diff(wiki map[int]episodefile.WikiEpisode, index []Entry) []Change {
	var changes []Change
	for _, entry := range index {
		w, ok := wiki[entry.Number]
		if !ok {
			changes = append(changes, Change{Kind: "ADD", Number: entry.Number, Entry: entry})
			continue
		}
		fields := [...]struct{ name, wiki, index string }{
			{"DATE", w.Date, entry.Date},
			{"TITLE", w.Title, entry.Title},
			{"URL", w.URL, entry.URL},
		}
		for _, f := range fields {
			if f.wiki != f.index {
				changes = append(changes, Change{
					Kind:   "MOD",
					Number: entry.Number,
					Field:  f.name,
					Wiki:   f.wiki,
					Index:  f.index,
					Entry:  entry,
				})
			}
		}
	}
	return changes
}

// SlugMismatch is an episode whose broadcaster URL does not derive from the
// wiki title.
type SlugMismatch struct {
	Number int
	Slug   string
}

func (m SlugMismatch) String() string {
	return fmt.Sprintf("%d|%s", m.Number, m.Slug)
}

// URLMap compares each index URL, without its three-digit suffix, with the
// slug of the wiki title of the same episode.
func URLMap(wiki []episodefile.WikiEpisode, index []Entry, logger *slog.Logger) []SlugMismatch {
	if logger == nil {
		logger = logging.NewNop()
	}
	titles := make(map[int]string, len(wiki))
	for _, ep := range wiki {
		titles[ep.Number] = ep.Title
	}
	var out []SlugMismatch
	for _, entry := range index {
		title, ok := titles[entry.Number]
		if !ok {
			continue
		}
		if !validSuffix(entry.URL) {
			logging.WarnWithContext(logger, "unexpected URL suffix", "url_suffix",
				logging.String("url", entry.URL),
				logging.Int("episode", entry.Number))
		}
		slug := entry.URL
		if len(slug) >= 3 {
			slug = slug[:len(slug)-3]
		}
		if slug != textutil.Slug(title)+"-" {
			out = append(out, SlugMismatch{Number: entry.Number, Slug: slug})
		}
	}
	return out
}

// validSuffix matches the broadcaster's "[12][0-9][02468]" URL suffix.
func validSuffix(url string) bool {
	if len(url) <= 3 {
		return false
	}
	s := url[len(url)-3:]
	return strings.IndexByte("12", s[0]) >= 0 &&
		strings.IndexByte("0123456789", s[1]) >= 0 &&
		strings.IndexByte("02468", s[2]) >= 0
}
