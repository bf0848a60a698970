package daserste

import (
	"regexp"
	"strings"
)

// ExternalSlugs extracts broadcaster slugs from a page's external links.
// Links outside prefix are ignored; problems are returned as findings.
func ExternalSlugs(links []string, prefix string, pattern *regexp.Regexp) (slugs []string, findings []string) {
	for _, link := range links {
		rest, ok := strings.CutPrefix(link, "https://")
		if !ok {
			rest, ok = strings.CutPrefix(link, "http://")
		}
		if !ok {
			findings = append(findings, "Unexpected URL protocol|"+link)
			continue
		}
		rest, ok = strings.CutPrefix(rest, prefix)
		if !ok {
			continue
		}
		m := pattern.FindStringSubmatch(rest)
		if m == nil || len(m) < 2 {
			findings = append(findings, "Unexpected URL suffix|"+rest)
			continue
		}
		slugs = append(slugs, m[1])
	}
	return slugs, findings
}
