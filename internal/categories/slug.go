package categories

import (
	"regexp"
	"strings"
)

var nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL slug from a category name: lower-cased, runs of
// non-alphanumeric characters collapsed to single dashes, edges trimmed.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = nonAlphanumericRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
