package audit

import "strings"

// crossCheck compares the navigation links of records, sorted by episode
// number, with their neighbours. Regional episodes have no record; the
// navigation around them is checked against the profile's table instead.
func (a *Auditor) crossCheck(records []*Record) {
	marker := a.profile.BoundaryMarker
	expected := a.profile.FirstEpisode
	last := len(records) - 1

	for i, r := range records {
		inSequence := r.Episode == expected
		if !inSequence {
			a.report(r, "Unexpected episode number|%d|%d", r.Episode, expected)
		}

		if i == 0 {
			if inSequence {
				a.checkAttr(r, "prev_episode", r.PrevEpisode, marker)
				a.checkAttr(r, "prev_ep_date", r.PrevDate, marker)
			}
		} else if regional, ok := a.profile.RegionalEpisodes[r.Episode-1]; ok && len(regional) > 0 {
			if !r.PrevRegional {
				a.report(r, "Expected %q after prev_ep_date", a.profile.RegionalSuffix)
			}
			prev := regional[len(regional)-1]
			a.checkAttr(r, "prev_episode", r.PrevEpisode, prev.Name)
			a.checkAttr(r, "prev_ep_date", r.PrevDate, prev.Date)
		} else if inSequence {
			a.checkNeighbours(records[i-1], r)
		}

		if i < last {
			if regional, ok := a.profile.RegionalEpisodes[r.LastEpisode()]; ok && len(regional) > 0 {
				if !r.NextRegional {
					a.report(r, "Expected %q after next_ep_date", a.profile.RegionalSuffix)
				}
				next := regional[0]
				a.checkAttr(r, "next_episode", r.NextEpisode, next.Name)
				a.checkAttr(r, "next_ep_date", r.NextDate, next.Date)
			}
		} else if a.profile.CheckLastBoundary {
			a.checkAttr(r, "next_episode", r.NextEpisode, marker)
			a.checkAttr(r, "next_ep_date", r.NextDate, marker)
		}

		expected = r.LastEpisode() + 1
	}
}

// checkNeighbours checks the links between two consecutive records in both
// directions.
func (a *Auditor) checkNeighbours(prev, r *Record) {
	a.checkAttr(r, "prev_episode", r.PrevEpisode, prev.Name)
	a.checkAttr(r, "prev_ep_date", r.PrevDate, prev.Date)
	if a.profile.CheckLinks {
		a.checkLink(r, "prev", r.PrevPage, r.PrevEpisode, prev.Page)
	}

	a.checkAttr(prev, "next_episode", prev.NextEpisode, r.Name)
	a.checkAttr(prev, "next_ep_date", prev.NextDate, r.Date)
	if a.profile.CheckLinks {
		a.checkLink(prev, "next", prev.NextPage, prev.NextEpisode, r.Page)
	}
}

func (a *Auditor) checkAttr(r *Record, attr, actual, expected string) {
	if actual != expected {
		a.report(r, "Mismatched %s|%s|%s|", attr, actual, expected)
	}
}

// checkLink compares the linked article, explicit or derived from the
// episode name, with the neighbour's page name.
func (a *Auditor) checkLink(r *Record, side, page, episode, want string) {
	link := page
	if link == "" {
		link = a.profile.PagePrefix + episode
	}
	if link != want && link != strings.ReplaceAll(want, " ", "_") {
		a.report(r, "Mismatched %s_ep_page|%s|%s|", side, link, want)
	}
}
