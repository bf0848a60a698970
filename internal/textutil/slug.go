package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugDashPattern = regexp.MustCompile(`[^0-9a-z]+`)

	// Umlauts and sharp s are spelled out; the apostrophe vanishes without
	// splitting the word.
	slugReplacer = strings.NewReplacer(
		"ä", "ae",
		"ö", "oe",
		"ü", "ue",
		"ß", "ss",
		"’", "",
	)
)

// Slug converts an episode title to the lower-case, dash separated form used
// in broadcaster and fan-site URLs, e.g. "Borowski und das Fest des Nordens"
// becomes "borowski-und-das-fest-des-nordens".
func Slug(title string) string {
	value := slugReplacer.Replace(cases.Lower(language.German).String(title))
	value = stripMarks(value)
	value = slugDashPattern.ReplaceAllString(value, "-")
	return strings.Trim(value, "-")
}

func stripMarks(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, value)
	if err != nil {
		return value
	}
	return out
}
