package audit

import "strconv"

// Page is one wiki article as read from the source.
type Page struct {
	Title         string
	Namespace     int
	Wikitext      string
	Categories    []string
	ExternalLinks []string
}

// Record collects what one article says about its episode.
type Record struct {
	Page string
	// Name is the episode name derived from the page name.
	Name string

	navigation   bool
	PrevEpisode  string
	NextEpisode  string
	PrevPage     string
	NextPage     string
	PrevDate     string
	NextDate     string
	PrevRegional bool
	NextRegional bool

	imdb map[string]string

	episodeSet bool
	// EpisodeRaw is the infobox Episode value.
	EpisodeRaw string
	Episode    int
	// Double marks an article covering episodes Episode and Episode+1.
	Double bool

	Title string
	Date  string

	catalogs map[string]map[string]string
	URL      string
}

func newRecord(page, name string) *Record {
	return &Record{Page: page, Name: name, catalogs: make(map[string]map[string]string)}
}

// LastEpisode is the highest episode number the record covers.
func (r *Record) LastEpisode() int {
	if r.Double {
		return r.Episode + 1
	}
	return r.Episode
}

// Catalog returns the parameters kept from a catalog template.
func (r *Record) Catalog(template string) (map[string]string, bool) {
	params, ok := r.catalogs[template]
	return params, ok
}

func (r *Record) episodeString() string {
	return strconv.Itoa(r.Episode)
}
