package utils

import (
	"strings"
	"unicode"
)

// SlugMaxSource is how much of a post body feeds its slug.
const SlugMaxSource = 30

// Slugify turns free text into a URL-safe identifier: lowercase, letters,
// digits and underscores kept, runs of whitespace and hyphens collapsed to
// a single hyphen, everything else dropped.
func Slugify(s string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			lastDash = false
		case unicode.IsSpace(r) || r == '-':
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// PostSlug derives a post's slug from the first SlugMaxSource characters
// of its body. Truncation happens before slugification, matching the way
// slugs were minted historically, so existing URLs keep resolving.
func PostSlug(body string) string {
	runes := []rune(body)
	if len(runes) > SlugMaxSource {
		runes = runes[:SlugMaxSource]
	}
	return Slugify(string(runes))
}
