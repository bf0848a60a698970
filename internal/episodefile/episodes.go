package episodefile

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WikiEpisode is one line of the wiki episode report: "ep|date|title|url".
type WikiEpisode struct {
	Number int
	Date   string
	Title  string
	URL    string
}

// ParseWikiEpisode parses a report line.
func ParseWikiEpisode(line string) (WikiEpisode, bool) {
	parts := strings.Split(line, "|")
	if len(parts) != 4 {
		return WikiEpisode{}, false
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil || n <= 0 {
		return WikiEpisode{}, false
	}
	return WikiEpisode{Number: n, Date: parts[1], Title: parts[2], URL: parts[3]}, true
}

// String renders the report line.
func (e WikiEpisode) String() string {
	return fmt.Sprintf("%d|%s|%s|%s", e.Number, e.Date, e.Title, e.URL)
}

// ReadWikiEpisodes loads a wiki episode report.
func ReadWikiEpisodes(path string) ([]WikiEpisode, error) {
	var episodes []WikiEpisode
	err := openReader(path, func(r *Reader) error {
		for r.Next() {
			ep, ok := ParseWikiEpisode(r.Text())
			if !ok {
				return r.Malformed()
			}
			episodes = append(episodes, ep)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return episodes, nil
}

// WriteWikiEpisodes writes report lines.
func WriteWikiEpisodes(w io.Writer, episodes []WikiEpisode) error {
	for _, ep := range episodes {
		if _, err := fmt.Fprintln(w, ep.String()); err != nil {
			return err
		}
	}
	return nil
}

// ReadTitleMap loads a title map: pairs of lines, the wiki title followed by
// the title the broadcaster uses.
func ReadTitleMap(path string) (map[string]string, error) {
	titles := make(map[string]string)
	err := openReader(path, func(r *Reader) error {
		for r.Next() {
			wiki := r.Text()
			if !r.Next() {
				return r.Malformed()
			}
			titles[wiki] = r.Text()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return titles, nil
}

// WriteCounters writes "count | name" lines sorted by name.
func WriteCounters(w io.Writer, counts map[string]int) error {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%5d | %s\n", counts[name], name); err != nil {
			return err
		}
	}
	return nil
}
