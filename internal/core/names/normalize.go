package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName canonicalizes a player name for comparison: strips
// diacritics, lowercases, drops dots (so the initial "O." collapses to "o"),
// drops everything outside [a-z0-9 ] and collapses whitespace.
// Normalization is idempotent and total: any garbage input yields "".
func NormalizeName(s string) string {
	if s == "" {
		return ""
	}
	s = stripDiacritics(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, ".", "")
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' || r == '\t' || r == '\n' {
			b.WriteRune(r)
		}
	}
	return collapseWhitespace(b.String())
}

// ExtractMainSurname picks the token most likely to be the family name out
// of a normalized full name. "j mastantuono" yields "mastantuono",
// "messi" yields "messi". Compound surnames ("de la cruz") are not handled;
// the last token wins.
func ExtractMainSurname(normalized string) string {
	tokens := strings.Fields(normalized)
	switch {
	case len(tokens) == 0:
		return ""
	case len(tokens) == 1:
		return tokens[0]
	case len(tokens[0]) == 1:
		// leading initial, surname is whatever follows
		return strings.Join(tokens[1:], " ")
	case len(tokens) == 2:
		return tokens[1]
	default:
		return tokens[len(tokens)-1]
	}
}

func stripDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if !unicode.Is(unicode.Mn, r) { // Mn = Mark, Nonspacing (combining accents)
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
