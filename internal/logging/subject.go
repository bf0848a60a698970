package logging

import "strings"

// FormatSubject builds the series/page subject string used in console output.
func FormatSubject(series, page string) string {
	series = strings.TrimSpace(series)
	page = strings.TrimSpace(page)
	switch {
	case series != "" && page != "":
		return series + " · " + page
	case page != "":
		return page
	default:
		return series
	}
}
