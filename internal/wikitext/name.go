package wikitext

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var namespacePrefixes = []string{"Vorlage:", "Template:"}

// NormalizeName canonicalizes a template name the way MediaWiki resolves
// titles: surrounding space trimmed, underscores and whitespace runs folded
// to one space, the namespace prefix dropped and the first letter upper-cased.
func NormalizeName(raw string) string {
	name := strings.ReplaceAll(raw, "_", " ")
	name = strings.Join(strings.Fields(name), " ")
	for _, prefix := range namespacePrefixes {
		if len(name) > len(prefix) && strings.EqualFold(name[:len(prefix)], prefix) {
			name = strings.TrimSpace(name[len(prefix):])
			break
		}
	}
	return upperFirst(name)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	upper := unicode.ToUpper(r)
	if upper == r {
		return s
	}
	return string(upper) + s[size:]
}

func isParserFunction(name string) bool {
	return strings.HasPrefix(name, "#")
}
