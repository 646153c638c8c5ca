package app

import (
	"regexp"
	"strings"
)

const wordsPerMinute = 200

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	htmlTag  = regexp.MustCompile(`<[^>]*>`)
)

// Slugify derives a URL slug from a title: lowercase, runs of anything
// outside [a-z0-9] collapse to a single hyphen, edges trimmed. Already
// normalized slugs pass through unchanged.
func Slugify(title string) string {
	slug := nonAlnum.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// ReadingTime estimates minutes to read HTML content at 200 words per
// minute, rounding up. Empty content reads in zero minutes.
func ReadingTime(content string) int {
	text := htmlTag.ReplaceAllString(content, "")
	words := len(strings.Fields(text))
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
