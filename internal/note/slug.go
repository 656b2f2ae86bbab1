package note

import (
	"regexp"
	"strings"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-zA-Z0-9-]`)
	slugHyphens = regexp.MustCompile(`-{2,}`)
)

// GenerateSlug maps a title to a URL-safe slug: spaces become hyphens,
// anything outside [a-zA-Z0-9-] is dropped, hyphen runs collapse, and the
// result is lowercased.
func GenerateSlug(title string) string {
	slug := strings.ReplaceAll(title, " ", "-")
	slug = slugInvalid.ReplaceAllString(slug, "")
	slug = slugHyphens.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return strings.ToLower(slug)
}
