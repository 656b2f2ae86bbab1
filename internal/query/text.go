package query

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<.*?>`)

// PlainText strips HTML tags from content and trims the result. When decode
// is set, HTML entities are decoded first, so entity-encoded markup is also
// stripped.
func PlainText(content string, decode bool) string {
	if decode {
		content = html.UnescapeString(content)
	}
	return strings.TrimSpace(tagPattern.ReplaceAllString(content, ""))
}

// ShortText returns the plain-text form of content truncated to maxLength
// characters. Truncation is rune-aware so multi-byte text is never cut
// mid-sequence.
func ShortText(content string, maxLength int, decode bool) string {
	plain := PlainText(content, decode)
	runes := []rune(plain)
	if len(runes) > maxLength {
		return string(runes[:maxLength])
	}
	return plain
}
