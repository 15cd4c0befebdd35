package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Canonical converts a raw name string into its canonical lookup form:
// uppercased, whitespace collapsed, with anything that is not a letter,
// digit, space, hyphen, apostrophe or period removed. Emoji and other
// chat-handle decoration are stripped so that "June🔥" and "june" share
// a canonical form.
func Canonical(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case r == '-' || r == '\'' || r == '.':
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Title renders a name in display form: trimmed, whitespace collapsed
// and title-cased ("jane DOE" -> "Jane Doe").
func Title(raw string) string {
	return titleCaser.String(strings.ToLower(strings.Join(strings.Fields(raw), " ")))
}

// Parts splits a raw name into its canonical whitespace-separated parts.
func Parts(raw string) []string {
	return strings.Fields(Canonical(raw))
}

// Digits returns only the numeric characters of s. Used for phone
// number cleaning, where formatting varies wildly across exports.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
