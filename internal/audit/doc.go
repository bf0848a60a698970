// Package audit checks the episode articles of one series.
//
// Each page is reduced to a Record from its templates: the navigation
// template (Folgenleiste), the episode infobox, IMDb and the external catalog
// templates. Anything unexpected becomes a Finding. Once all pages are read
// the records are sorted by episode number and every navigation link is
// checked against the neighbouring record. The Report carries the episode
// list, the findings and the usage counters for categories, templates and
// infobox parameters.
package audit
