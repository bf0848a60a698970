package textutil

import (
	"fmt"
	"strings"
)

// TitleAlphabet lists every rune expected in an episode title besides ASCII
// letters and digits.
const TitleAlphabet = "- !,.:?ÄÜäöüßâàéô–’…"

// UnexpectedRunes returns the runes of title outside the expected title
// alphabet, in order of appearance.
func UnexpectedRunes(title string) []rune {
	var out []rune
	for _, r := range title {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case strings.ContainsRune(TitleAlphabet, r):
		default:
			out = append(out, r)
		}
	}
	return out
}

// FormatCodePoints renders runes as "U+2014, U+00A0".
func FormatCodePoints(rs []rune) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = fmt.Sprintf("U+%04X", r)
	}
	return strings.Join(parts, ", ")
}
