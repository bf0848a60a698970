package daserste

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"krimiwiki/internal/logging"
	"krimiwiki/internal/series"
)

var (
	// ErrMarkerMissing reports an index page without the expected episode selector.
	ErrMarkerMissing = errors.New("index page marker missing")
	// ErrUnexpectedEntry reports a selector option that is not an episode.
	ErrUnexpectedEntry = errors.New("unexpected index entry")
)

// IndexFile is the work-dir cache file of the Tatort index page.
const IndexFile = "tatort.html"

const (
	selectorQuery = `select[name="filterBoxTitle"]`
	promptPrefix  = "Bitte"
)

var (
	slugPattern       = regexp.MustCompile(`^[0-9a-z]+(?:-[0-9a-z]+)*-?[0-9]{3}$`)
	optionTextPattern = regexp.MustCompile(`^ *(.+) \(([0-9]{2})\.([0-9]{2})\.([0-9]{4})\)$`)
)

// Entry is one episode of the broadcaster index, numbered by broadcast order.
type Entry struct {
	Number int
	Date   string
	Title  string
	URL    string
}

// String renders the entry as "ep|date|title|url".
func (e Entry) String() string {
	return fmt.Sprintf("%d|%s|%s|%s", e.Number, e.Date, e.Title, e.URL)
}

// ParseIndex extracts the episodes offered by the index page's episode
// selector, applies the series corrections and numbers the result in
// broadcast order.
func ParseIndex(r io.Reader, corrections *series.DasErsteIndex, logger *slog.Logger) ([]Entry, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse index page: %w", err)
	}

	selector := doc.Find(selectorQuery).First()
	if selector.Length() == 0 {
		return nil, fmt.Errorf("%w: expected %s", ErrMarkerMissing, selectorQuery)
	}
	options := selector.Find("option")
	if options.Length() == 0 || !strings.HasPrefix(strings.TrimSpace(options.First().Text()), promptPrefix) {
		return nil, fmt.Errorf("%w: expected first option %q", ErrMarkerMissing, promptPrefix+" …")
	}

	var entries []Entry
	var parseErr error
	options.Slice(1, goquery.ToEnd).EachWithBreak(func(i int, option *goquery.Selection) bool {
		value, _ := option.Attr("value")
		text := option.Text()
		entry, ok := parseOption(value, text)
		if !ok {
			parseErr = fmt.Errorf("%w: option %d: value=%q text=%q", ErrUnexpectedEntry, i+2, value, strings.TrimSpace(text))
			return false
		}
		if corrections != nil {
			if skipped(corrections.Skip, entry) {
				logger.Info("skipping index entry",
					logging.String("title", entry.Title),
					logging.String("date", entry.Date),
					logging.String("url", entry.URL))
				return true
			}
			entry.Date = fixDate(corrections.DateFixes, entry)
		}
		entries = append(entries, entry)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	if corrections != nil {
		for _, extra := range corrections.Extra {
			entries = append(entries, Entry{Date: extra.Date, Title: extra.Title, URL: extra.URL})
		}
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.Date, b.Date),
			cmp.Compare(a.Title, b.Title),
			cmp.Compare(a.URL, b.URL),
		)
	})
	for i := range entries {
		entries[i].Number = i + 1
	}
	return entries, nil
}

func parseOption(value, text string) (Entry, bool) {
	slug := strings.TrimSuffix(path.Base(strings.TrimSpace(value)), ".html")
	if !slugPattern.MatchString(slug) {
		return Entry{}, false
	}
	m := optionTextPattern.FindStringSubmatch(strings.TrimRight(text, " \t\r\n"))
	if m == nil {
		return Entry{}, false
	}
	return Entry{
		Date:  m[4] + "-" + m[3] + "-" + m[2],
		Title: m[1],
		URL:   slug,
	}, true
}

func skipped(skip []series.IndexEntry, e Entry) bool {
	for _, s := range skip {
		if s.Date == e.Date && s.Title == e.Title && (s.URL == "" || s.URL == e.URL) {
			return true
		}
	}
	return false
}

func fixDate(fixes []series.DateFix, e Entry) string {
	for _, fix := range fixes {
		if fix.Date == e.Date && fix.Title == e.Title {
			return fix.To
		}
	}
	return e.Date
}
