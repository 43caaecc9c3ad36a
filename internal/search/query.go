package search

import "strings"

// NormalizeQuery lowercases and trims the query. Inner whitespace and
// punctuation are kept so that "sql & db" still matches literally.
func NormalizeQuery(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

func matches(field, normalized string) bool {
	return strings.Contains(strings.ToLower(field), normalized)
}
