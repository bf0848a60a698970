package audit

import (
	"fmt"
	"io"
	"path/filepath"

	"krimiwiki/internal/episodefile"
	"krimiwiki/internal/fileutil"
	"krimiwiki/internal/series"
)

// Report is the outcome of one audit run.
type Report struct {
	Profile    *series.Profile
	Records    []*Record
	Findings   []Finding
	Categories map[string]int
	Templates  map[string]int
	Stats      *InfoboxStats
	// Pages counts every page read, including dropped ones.
	Pages int
}

// Episodes returns the episode list. A double episode yields two lines,
// with " (1)" and " (2)" appended to its name.
func (r *Report) Episodes() []episodefile.WikiEpisode {
	out := make([]episodefile.WikiEpisode, 0, len(r.Records))
	for _, rec := range r.Records {
		if rec.Double {
			out = append(out,
				episodefile.WikiEpisode{Number: rec.Episode, Date: rec.Date, Title: rec.Name + " (1)", URL: rec.URL},
				episodefile.WikiEpisode{Number: rec.Episode + 1, Date: rec.Date, Title: rec.Name + " (2)", URL: rec.URL},
			)
			continue
		}
		out = append(out, episodefile.WikiEpisode{Number: rec.Episode, Date: rec.Date, Title: rec.Name, URL: rec.URL})
	}
	return out
}

// WriteEpisodes writes the episode list as "ep|date|name|url" lines.
func (r *Report) WriteEpisodes(w io.Writer) error {
	return episodefile.WriteWikiEpisodes(w, r.Episodes())
}

// WriteFindings writes one "LOG|page|text" line per finding.
func (r *Report) WriteFindings(w io.Writer) error {
	for _, f := range r.Findings {
		if _, err := fmt.Fprintln(w, f.String()); err != nil {
			return err
		}
	}
	return nil
}

// EpisodesFile is the name of the episode list written for profile.
func EpisodesFile(profile *series.Profile) string {
	return profile.FileStem() + "-wiki-episodes.txt"
}

// Files lists the output files written by WriteFiles, relative to the
// work dir.
func (r *Report) Files() []string {
	stem := r.Profile.FileStem()
	return []string{
		EpisodesFile(r.Profile),
		stem + "-findings.txt",
		stem + "-categories.txt",
		stem + "-templates.txt",
		stem + "-infobox.txt",
	}
}

// WriteFiles writes the episode list, findings and counters into dir.
func (r *Report) WriteFiles(dir string) error {
	files := r.Files()
	writers := []func(io.Writer) error{
		r.WriteEpisodes,
		r.WriteFindings,
		func(w io.Writer) error { return episodefile.WriteCounters(w, r.Categories) },
		func(w io.Writer) error { return episodefile.WriteCounters(w, r.Templates) },
		r.Stats.Write,
	}
	for i, name := range files {
		if err := fileutil.WriteAtomic(filepath.Join(dir, name), writers[i]); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
