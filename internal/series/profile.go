package series

import (
	"regexp"
	"strings"
)

// Profile describes how one series is laid out on the wiki.
type Profile struct {
	Key        string `yaml:"key"`
	Name       string `yaml:"name"`
	PagePrefix string `yaml:"page_prefix"`

	NavigationTemplate string `yaml:"navigation_template"`
	// SelectionTemplate picks the pages to audit; defaults to the navigation template.
	SelectionTemplate string `yaml:"selection_template"`
	MainNamespaceOnly bool   `yaml:"main_namespace_only"`
	PageSuffixPattern string `yaml:"page_suffix_pattern"`

	BoundaryMarker    string `yaml:"boundary_marker"`
	FirstEpisode      int    `yaml:"first_episode"`
	DoubleEpisodes    bool   `yaml:"double_episodes"`
	CheckLinks        bool   `yaml:"check_links"`
	CheckLastBoundary bool   `yaml:"check_last_boundary"`
	InfoboxFilm       bool   `yaml:"infobox_film"`
	RegionalSuffix    string `yaml:"regional_suffix"`

	ExtraMonths           map[string]int            `yaml:"extra_months"`
	SpecialDates          []SpecialDate             `yaml:"special_dates"`
	AlternateInfoboxDates map[string]DateSubstitute `yaml:"alternate_infobox_dates"`
	AlternateTitles       map[string]string         `yaml:"alternate_titles"`
	RegionalEpisodes      map[int][]RegionalEpisode `yaml:"regional_episodes"`
	FilmOverrides         []FilmOverride            `yaml:"film_overrides"`
	Catalogs              []Catalog                 `yaml:"catalogs"`
	URLSource             URLSource                 `yaml:"url_source"`

	DasErste *DasErsteIndex `yaml:"daserste"`
	Fans     *FansArchive   `yaml:"fans"`

	pageSuffix      *regexp.Regexp
	externalPattern *regexp.Regexp
}

// SpecialDate accepts one otherwise unparseable date value on one page.
type SpecialDate struct {
	Page  string `yaml:"page"`
	Param string `yaml:"param"`
	Raw   string `yaml:"raw"`
	Date  string `yaml:"date"`
}

// DateSubstitute replaces an infobox date (the German premiere, usually) with
// the date the navigation template orders the episode by.
type DateSubstitute struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// RegionalEpisode is an episode broadcast only regionally. It has no wiki
// record of its own but sits between two numbered episodes in the navigation.
type RegionalEpisode struct {
	Date string `yaml:"date"`
	Name string `yaml:"name"`
}

// FilmOverride assigns a date and episode number to a feature film that
// carries an Infobox Film instead of an episode infobox.
type FilmOverride struct {
	Title   string `yaml:"title"`
	Date    string `yaml:"date"`
	Episode string `yaml:"episode"`
}

// Catalog is an external episode catalog template, e.g. Tatort-Fans.
type Catalog struct {
	Template string   `yaml:"template"`
	Required []string `yaml:"required"`
	// Expected makes a missing catalog template a finding.
	Expected bool `yaml:"expected"`
	// NumberLabel enables the Nr cross-check and names it in findings.
	NumberLabel string `yaml:"number_label"`
	// NumberExceptions maps page names to the Nr value they legitimately carry.
	NumberExceptions  map[string]string `yaml:"number_exceptions"`
	StripLeadingSlash []string          `yaml:"strip_leading_slash"`
}

// URLSource tells the report where an episode's broadcaster slug comes from:
// a catalog template parameter or the page's external links.
type URLSource struct {
	Catalog        string `yaml:"catalog"`
	Param          string `yaml:"param"`
	ExternalPrefix string `yaml:"external_prefix"`
	ExternalRegex  string `yaml:"external_pattern"`
}

// DasErsteIndex holds the corrections applied to the broadcaster index.
type DasErsteIndex struct {
	Skip      []IndexEntry `yaml:"skip"`
	DateFixes []DateFix    `yaml:"date_fixes"`
	Extra     []IndexEntry `yaml:"extra"`
}

// IndexEntry is one broadcaster index entry.
type IndexEntry struct {
	Date  string `yaml:"date"`
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

// DateFix corrects the date of a broadcaster index entry.
type DateFix struct {
	Date  string `yaml:"date"`
	Title string `yaml:"title"`
	To    string `yaml:"to"`
}

// FansArchive holds the fan-site archive layout and its known errors.
type FansArchive struct {
	// Decades lists the archive category slug per decade starting 1970.
	Decades []string `yaml:"decades"`
	// NumberCorrections maps "<nr>-<slug>" to the real episode number.
	NumberCorrections map[string]int `yaml:"number_corrections"`
	// FolgePrefixAfter is the last episode published without "folge-".
	FolgePrefixAfter int   `yaml:"folge_prefix_after"`
	FolgeExceptions  []int `yaml:"folge_exceptions"`
}

// ExternalPattern matches the URL path that follows ExternalPrefix and
// captures the broadcaster slug. Nil when the series takes its URL from a
// catalog template.
func (p *Profile) ExternalPattern() *regexp.Regexp {
	return p.externalPattern
}

// Selection returns the template whose transclusions select the audited pages.
func (p *Profile) Selection() string {
	if p.SelectionTemplate != "" {
		return p.SelectionTemplate
	}
	return p.NavigationTemplate
}

// FileStem is the series key used in output file names.
func (p *Profile) FileStem() string {
	return strings.ToLower(strings.ReplaceAll(p.Name, " ", ""))
}

// EpisodeName derives the episode name from a page name by removing the
// series prefix and a disambiguation suffix such as " (1985)".
func (p *Profile) EpisodeName(page string) string {
	name := strings.TrimPrefix(page, p.PagePrefix)
	if strings.HasSuffix(name, ")") {
		if i := strings.Index(name, "("); i > 1 && p.pageSuffix != nil && p.pageSuffix.MatchString(name[i-1:]) {
			name = name[:i-1]
		}
	}
	return name
}

// DefaultCatalogTitle is the title a catalog template shows when its Titel
// parameter is omitted.
func (p *Profile) DefaultCatalogTitle(page string) string {
	return strings.TrimPrefix(page, p.PagePrefix)
}

// SpecialDate returns the accepted raw value for page and param.
func (p *Profile) SpecialDate(page, param string) (SpecialDate, bool) {
	for _, sd := range p.SpecialDates {
		if sd.Page == page && sd.Param == param {
			return sd, true
		}
	}
	return SpecialDate{}, false
}

// IsBoundary reports whether a navigation value marks the start or end of
// the series.
func (p *Profile) IsBoundary(value string) bool {
	return value == "" || value == EnDash
}

// FolgePrefixExpected reports whether the fan site publishes episode ep
// under a "folge-" URL.
func (f *FansArchive) FolgePrefixExpected(ep int) bool {
	return ep > f.FolgePrefixAfter
}

// FolgeException reports episodes whose "folge-" usage is known to be irregular.
func (f *FansArchive) FolgeException(ep int) bool {
	for _, e := range f.FolgeExceptions {
		if e == ep {
			return true
		}
	}
	return false
}

// EnDash is the boundary marker Tatort writes in navigation templates.
const EnDash = "–"
