package slug

import (
	"regexp"
	"strings"
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	nonWordPattern    = regexp.MustCompile(`[^\w-]+`)
	dashesPattern     = regexp.MustCompile(`-{2,}`)
)

// Make turns s into a lowercase URL path segment of word characters and
// single dashes.
func Make(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespacePattern.ReplaceAllString(s, "-")
	s = nonWordPattern.ReplaceAllString(s, "")
	s = dashesPattern.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// Tag returns the URL segment of a tag. Nested tags keep their levels
// separated by dashes.
func Tag(tag string) string {
	return Make(strings.ReplaceAll(strings.TrimPrefix(tag, "#"), "/", "-"))
}

var separatorPattern = regexp.MustCompile(`[-_\s]+`)

// Title turns a slug back into words with capitalized initials.
func Title(s string) string {
	words := strings.Fields(separatorPattern.ReplaceAllString(s, " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	return strings.Join(words, " ")
}
