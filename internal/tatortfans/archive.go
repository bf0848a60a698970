package tatortfans

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"krimiwiki/internal/episodefile"
	"krimiwiki/internal/logging"
	"krimiwiki/internal/series"
	"krimiwiki/internal/textutil"
)

// CacheDir is the work-dir subdirectory holding downloaded archive pages.
const CacheDir = "tatort-fans"

var numberPattern = regexp.MustCompile(`^(?:[1-9][0-9]{1,3}|0[0-9]{2})-`)

// Page is one yearly archive page.
type Page struct {
	Year int
	URL  string
	// File is the cache file name relative to the work dir.
	File string
}

// Episode is an archive entry: the episode number and the URL slug after it.
type Episode struct {
	Number int
	Slug   string
}

func (e Episode) String() string {
	return fmt.Sprintf("%d|%s", e.Number, e.Slug)
}

// Archive knows the fan site's URL layout.
type Archive struct {
	baseURL string
	layout  *series.FansArchive
	logger  *slog.Logger
}

// New returns an Archive rooted at baseURL, e.g. "https://tatort-fans.de".
func New(baseURL string, layout *series.FansArchive, logger *slog.Logger) (*Archive, error) {
	if layout == nil {
		return nil, errors.New("series has no fan-site archive")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Archive{
		baseURL: strings.TrimRight(baseURL, "/"),
		layout:  layout,
		logger:  logger,
	}, nil
}

// Pages lists the archive pages for the years start through end.
func (a *Archive) Pages(start, end int) ([]Page, error) {
	if end < start {
		return nil, fmt.Errorf("archive year range %d-%d is empty", start, end)
	}
	pages := make([]Page, 0, end-start+1)
	for year := start; year <= end; year++ {
		decade := year/10 - 197
		if decade < 0 || decade >= len(a.layout.Decades) {
			return nil, fmt.Errorf("no archive category for year %d", year)
		}
		y := strconv.Itoa(year)
		pages = append(pages, Page{
			Year: year,
			URL:  a.baseURL + "/category/" + a.layout.Decades[decade] + "/" + y + "/",
			File: filepath.Join(CacheDir, y+".html"),
		})
	}
	return pages, nil
}

// episodePrefix is the URL prefix every episode link starts with.
func (a *Archive) episodePrefix() string {
	return a.baseURL + "/tatort-"
}

// Parse extracts the episode links of one archive page. Links that do not
// follow the site's URL scheme are logged and skipped.
func (a *Archive) Parse(r io.Reader, name string) ([]Episode, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	logger := a.logger.With(logging.String("file", name))

	var episodes []Episode
	doc.Find(".entry-title a").Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		if ep, ok := a.parseLink(href, logger); ok {
			episodes = append(episodes, ep)
		}
	})
	return episodes, nil
}

func (a *Archive) parseLink(href string, logger *slog.Logger) (Episode, bool) {
	rest, ok := strings.CutPrefix(href, a.episodePrefix())
	if !ok {
		logging.WarnWithContext(logger, "unexpected URL prefix", "fans_url_prefix", logging.String("url", href))
		return Episode{}, false
	}
	rest, ok = strings.CutSuffix(rest, "/")
	if !ok {
		logging.WarnWithContext(logger, "unexpected URL suffix", "fans_url_suffix", logging.String("url", href))
		return Episode{}, false
	}
	rest, folge := strings.CutPrefix(rest, "folge-")

	loc := numberPattern.FindStringIndex(rest)
	if loc == nil {
		logging.WarnWithContext(logger, "episode number pattern doesn't match", "fans_episode_number",
			logging.String("url", href))
		return Episode{}, false
	}
	number, err := strconv.Atoi(rest[:loc[1]-1])
	if err != nil {
		return Episode{}, false
	}
	if corrected, ok := a.layout.NumberCorrections[rest]; ok {
		number = corrected
	}
	if folge != a.layout.FolgePrefixExpected(number) && !a.layout.FolgeException(number) {
		logging.WarnWithContext(logger, "irregular \"folge-\" prefix", "fans_folge_prefix",
			logging.String("url", href),
			logging.Int("episode", number),
			logging.Bool("folge", folge))
	}
	return Episode{Number: number, Slug: rest[loc[1]:]}, true
}

// ReadCache parses the cached pages under workDir, skipping pages that were
// never downloaded, and returns the episodes sorted by number.
func (a *Archive) ReadCache(workDir string, pages []Page) ([]Episode, error) {
	var episodes []Episode
	for _, page := range pages {
		path := filepath.Join(workDir, page.File)
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		parsed, err := a.Parse(f, page.File)
		f.Close()
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, parsed...)
	}
	slices.SortFunc(episodes, func(x, y Episode) int {
		return cmp.Or(cmp.Compare(x.Number, y.Number), cmp.Compare(x.Slug, y.Slug))
	})
	return episodes, nil
}

// URLMap returns the archive episodes whose slug differs from the slug of
// the wiki title of the same episode.
func URLMap(wiki []episodefile.WikiEpisode, episodes []Episode) []Episode {
	titles := make(map[int]string, len(wiki))
	for _, ep := range wiki {
		titles[ep.Number] = ep.Title
	}
	var out []Episode
	for _, ep := range episodes {
		title, ok := titles[ep.Number]
		if !ok {
			continue
		}
		if ep.Slug != textutil.Slug(title) {
			out = append(out, ep)
		}
	}
	return out
}
