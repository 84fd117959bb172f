// Package sanitize provides text sanitization utilities for user-provided input.
package sanitize

import (
	"regexp"
	"strings"
)

// htmlTagRegex matches HTML tags.
var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes all HTML tags from a string, making it safe for text-only
// display. Defense in depth; clients should also escape output.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = strings.ReplaceAll(result, "&lt;", "<")
	result = strings.ReplaceAll(result, "&gt;", ">")
	result = strings.ReplaceAll(result, "&amp;", "&")
	result = strings.ReplaceAll(result, "&quot;", "\"")
	result = strings.ReplaceAll(result, "&#39;", "'")
	// Re-strip after entity decode to catch encoded tags
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text sanitizes a string for safe text storage. Use for user-provided fields
// like inquiry titles, descriptions, and distinguishing features.
func Text(s string) string {
	return StripHTML(s)
}

// TextPtr sanitizes an optional string. Empty results become nil.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := StripHTML(*s)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
