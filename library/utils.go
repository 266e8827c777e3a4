// Package library contains helper functions shared across modules.
package library

import (
	"regexp"
	"strings"
)

var nonSlugRunsRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe identifier from a human-readable name:
// lower-case, runs of non [a-z0-9] collapse to a single hyphen, edge
// hyphens trimmed. Idempotent.
func Slugify(name string) string {
	slug := nonSlugRunsRe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

var slugRe = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidSlug reports whether s already has slug shape.
func ValidSlug(s string) bool {
	return slugRe.MatchString(s)
}

// WordCount counts whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
