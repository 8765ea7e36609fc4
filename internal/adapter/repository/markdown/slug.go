package markdown

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptySlug is returned when a slug normalizes to an empty string.
var ErrEmptySlug = errors.New("empty slug")

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeSlug turns a filename or front-matter slug into its canonical URL-safe form:
// diacritics stripped, lowercased, and every run of other characters collapsed into a dash.
func NormalizeSlug(input string) (string, error) {
	s := stripDiacritics(strings.TrimSpace(input))
	s = strings.ToLower(s)
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		return "", ErrEmptySlug
	}

	return s, nil
}

// SlugTitle converts a slug into a human-friendly title.
func SlugTitle(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}

func stripDiacritics(s string) string {
	// transform.Chain is stateful, so a fresh chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	stripped, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return stripped
}
