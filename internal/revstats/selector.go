package revstats

import (
	"errors"
	"regexp"

	"krimiwiki/internal/series"
)

// DefaultSelector is used when no selector is given.
const DefaultSelector = "tatort"

// ErrInvalidSelector reports a selector that names neither a known series
// nor a site and template.
var ErrInvalidSelector = errors.New("invalid page selector")

var templateSelector = regexp.MustCompile(`^([a-z]{2}):([A-Z][- 0-9A-Za-z]*)$`)

// Selector names the template whose transcluding pages are examined.
type Selector struct {
	Site     string
	Template string
}

// ParseSelector accepts a series key such as "tatort" or "polizeiruf110",
// or a "xx:Template Name" pair where xx is the Wikipedia language code.
func ParseSelector(arg string) (Selector, error) {
	if arg == "" {
		arg = DefaultSelector
	}
	if m := templateSelector.FindStringSubmatch(arg); m != nil {
		return Selector{Site: m[1], Template: m[2]}, nil
	}
	profile, err := series.Lookup(arg)
	if err != nil {
		return Selector{}, ErrInvalidSelector
	}
	return Selector{Site: "de", Template: profile.NavigationTemplate}, nil
}

func (s Selector) String() string {
	return s.Site + ":" + s.Template
}
