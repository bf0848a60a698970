package audit

import (
	"maps"
	"strings"

	"krimiwiki/internal/series"
	"krimiwiki/internal/wikitext"
)

type templateHandler func(r *Record, t wikitext.Template)

func (a *Auditor) templateHandlers() map[string]templateHandler {
	handlers := map[string]templateHandler{
		a.profile.NavigationTemplate: a.doNavigation,
		"IMDb":                       a.doIMDb,
		"Infobox Episode":            a.doInfoboxEpisode,
		"Medienbox":                  a.doMedienbox,
	}
	if a.profile.InfoboxFilm {
		handlers["Infobox Film"] = a.doInfoboxFilm
	}
	for _, c := range a.profile.Catalogs {
		handlers[c.Template] = func(r *Record, t wikitext.Template) {
			a.doCatalog(c, r, t)
		}
	}
	return handlers
}

var navigationParams = []string{"VG", "NF", "VG-ARTIKEL", "NF-ARTIKEL", paramPrevDate, paramNextDate}

func (a *Auditor) doNavigation(r *Record, t wikitext.Template) {
	if r.navigation {
		a.report(r, "Skipping duplicate Folgenleiste")
		return
	}
	r.navigation = true

	params := t.Map()
	r.PrevEpisode = params["VG"]
	r.NextEpisode = params["NF"]
	r.PrevPage = params["VG-ARTIKEL"]
	r.NextPage = params["NF-ARTIKEL"]
	r.PrevDate = a.parseDate(r, paramPrevDate, params[paramPrevDate])
	r.NextDate = a.parseDate(r, paramNextDate, params[paramNextDate])
	for _, name := range navigationParams {
		delete(params, name)
	}
	if len(params) > 0 {
		a.report(r, "Extraneous Folgenleiste parameters|%s|", wikitext.Stringify(params))
	}
}

func (a *Auditor) doIMDb(r *Record, t wikitext.Template) {
	params := t.Map()
	if r.imdb != nil {
		if maps.Equal(r.imdb, params) {
			a.report(r, "Skipping duplicate IMDb")
		} else {
			a.report(r, "Skipping different IMDb")
		}
		return
	}
	if title, ok := params["2"]; ok {
		a.checkTitle(r, "IMDb", title)
	}
	r.imdb = params
}

func (a *Auditor) doInfoboxEpisode(r *Record, t wikitext.Template) {
	if serie := t.Value("Serie"); serie != a.profile.Name {
		if serie != "" {
			a.report(r, "Skipping Infobox for another series|%s|", serie)
			return
		}
		a.updateInfoboxStats(r, t.Params, seriesOnlyParams)
		a.checkCommonParams(r, t)
		a.infoboxDate(r, t)
		return
	}

	a.setEpisodeNumber(r, t.Value("Episode"))
	a.checkSeriesParams(r, t)
	if t.Value("Franchise") == "" {
		a.checkCommonParams(r, t)
		a.infoboxTitle(r, t)
		a.infoboxDate(r, t)
	}
	a.updateInfoboxStats(r, t.Params, nil)
}

func (a *Auditor) doMedienbox(r *Record, t wikitext.Template) {
	a.setTitle(r, t.Value("Titel"))
}

func (a *Auditor) doInfoboxFilm(r *Record, t wikitext.Template) {
	if !a.infoboxTitle(r, t) {
		return
	}
	for _, o := range a.profile.FilmOverrides {
		if r.Title == o.Title {
			a.setDate(r, o.Date)
			a.setEpisodeNumber(r, o.Episode)
		}
	}
}

func (a *Auditor) checkSeriesParams(r *Record, t wikitext.Template) {
	v, ok := t.Get("Reihe")
	switch {
	case !ok:
		a.report(r, "Missing Infobox parameter %s", "Reihe")
	case v != "ja":
		a.report(r, "Unexpected value for Infobox parameter %s|%s", "Reihe", v)
	}
}

func (a *Auditor) checkCommonParams(r *Record, t wikitext.Template) {
	for _, pair := range commonParams {
		if !t.Has(pair[0]) && !t.Has(pair[1]) {
			a.report(r, "Missing Infobox parameter %s", pair[1])
		}
	}
}

var (
	titleParams = []string{"OT", "Originaltitel", "DT", "Titel"}
	dateParams  = []string{"EAS", "Erstausstrahlung", "EASDE", "Erstausstrahlung_DE"}
)

// infoboxTitle reads the episode title, preferring the original title
// parameters. It reports whether the record took the title.
func (a *Auditor) infoboxTitle(r *Record, t wikitext.Template) bool {
	var title, titleParam string
	for _, p := range titleParams {
		v := t.Value(p)
		if v == "" {
			continue
		}
		if i := strings.IndexAny(v, "<["); i >= 0 {
			a.report(r, "Markup after title|%s|%s", p, v)
			v = strings.TrimRight(v[:i], " \t\n")
		}
		switch {
		case title == "":
			title, titleParam = v, p
			if p[0] != 'O' {
				a.report(r, "Use OT/Originaltitel instead of %s", p)
			}
		case title == v:
			a.report(r, "Duplicate Infobox title|%s|%s", titleParam, p)
		default:
			a.report(r, "%s and %s are different", p, titleParam)
		}
	}
	return a.setTitle(r, title)
}

func (a *Auditor) setTitle(r *Record, title string) bool {
	if r.Title == "" {
		r.Title = title
		return true
	}
	if title != "" {
		a.report(r, "Previous Infobox already specified episode title")
	}
	return false
}

// infoboxDate reads the first broadcast date, preferring EAS and
// Erstausstrahlung over the German-premiere parameters.
func (a *Auditor) infoboxDate(r *Record, t wikitext.Template) bool {
	var date, dateParam string
	for _, p := range dateParams {
		v := t.Value(p)
		if v == "" {
			continue
		}
		if v = a.parseDate(r, p, v); v == "" {
			continue
		}
		if alt, ok := a.profile.AlternateInfoboxDates[r.Page]; ok {
			if v == alt.From {
				v = alt.To
			} else {
				a.report(r, "Unexpected Infobox date|%s|%s|", v, alt.From)
			}
		}
		switch {
		case date == "":
			date, dateParam = v, p
			if strings.HasSuffix(p, "DE") {
				a.report(r, "Use EAS/Erstausstrahlung instead of %s", p)
			}
		case date == v:
			a.report(r, "Duplicate Infobox date|%s|%s", dateParam, p)
		default:
			a.report(r, "%s and %s are different", p, dateParam)
		}
	}
	return a.setDate(r, date)
}

func (a *Auditor) setDate(r *Record, date string) bool {
	if r.Date == "" {
		r.Date = date
		return true
	}
	if date != "" {
		a.report(r, "Previous Infobox already specified episode date")
	}
	return false
}

func (a *Auditor) setEpisodeNumber(r *Record, ep string) bool {
	if !r.episodeSet {
		r.episodeSet = true
		r.EpisodeRaw = ep
		return true
	}
	a.report(r, "Previous Infobox already specified episode number")
	return false
}

// checkTitle accepts the episode name, the page's alternate title, or the
// episode name with the series prefix.
func (a *Auditor) checkTitle(r *Record, template, title string) {
	title = strings.ReplaceAll(title, "&nbsp;", " ")
	if title == r.Name || title == a.profile.PagePrefix+r.Name {
		return
	}
	if alt, ok := a.profile.AlternateTitles[r.Page]; ok && title == alt {
		return
	}
	a.report(r, "Mismatched %s title|%s|", template, title)
}

func (a *Auditor) doCatalog(c series.Catalog, r *Record, t wikitext.Template) {
	params := t.Map()
	for _, p := range c.StripLeadingSlash {
		if v, ok := params[p]; ok {
			params[p] = strings.TrimPrefix(v, "/")
		}
	}

	saved := make(map[string]string)
	for _, p := range c.Required {
		v := params[p]
		delete(params, p)
		if v != "" {
			saved[p] = v
		} else {
			a.report(r, "Missing %s parameter %s", c.Template, p)
		}
	}
	if title, ok := params["Titel"]; ok {
		delete(params, "Titel")
		a.checkTitle(r, c.Template, title)
		if title != a.profile.DefaultCatalogTitle(r.Page) {
			saved["Titel"] = title
		}
	}
	if len(params) > 0 {
		a.report(r, "Extraneous %s parameters|%s|", c.Template, wikitext.Stringify(params))
	}

	prev, ok := r.catalogs[c.Template]
	switch {
	case !ok:
		r.catalogs[c.Template] = saved
	case maps.Equal(prev, saved):
		a.report(r, "Skipping duplicate %s", c.Template)
	default:
		prevRest, prevTitle := withoutTitle(prev)
		rest, title := withoutTitle(saved)
		if maps.Equal(prevRest, rest) {
			a.report(r, "Skipping %s with different title|%s|%s|", c.Template, prevTitle, title)
		} else {
			a.report(r, "Skipping different %s", c.Template)
			a.report(r, "<<|%s|", wikitext.Stringify(prevRest))
			a.report(r, ">>|%s|", wikitext.Stringify(rest))
		}
	}
}

func withoutTitle(params map[string]string) (map[string]string, string) {
	rest := maps.Clone(params)
	title := rest["Titel"]
	delete(rest, "Titel")
	return rest, title
}

// checkCatalogNumber compares a catalog's Nr with the episode number. A
// zero-padded three-digit Nr is accepted.
func (a *Auditor) checkCatalogNumber(r *Record, c series.Catalog, params map[string]string) {
	n := params["Nr"]
	ep := r.episodeString()
	if n == ep {
		return
	}
	if len(n) == 3 && n[0] == '0' && strings.TrimLeft(n, "0") == ep {
		return
	}
	if exception, ok := c.NumberExceptions[r.Page]; ok {
		ep = exception
	}
	if n != ep {
		a.report(r, "Mismatched %s episode number|%s|%s|", c.Template, n, ep)
	}
}
