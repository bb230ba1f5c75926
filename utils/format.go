package utils

import (
	"net/url"
	"path"
	"strings"
	"unicode"
)

// Capitalize uppercases the first letter of s, leaving the rest unchanged.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// CapitalizeList capitalizes every element and joins them with ", ", the
// display format used for history output summaries.
func CapitalizeList(items []string) string {
	capitalized := make([]string, 0, len(items))
	for _, item := range items {
		capitalized = append(capitalized, Capitalize(item))
	}
	return strings.Join(capitalized, ", ")
}

// FilenameFromURL derives a filename from the last path segment of rawURL.
// It returns fallback when the URL has no usable segment.
func FilenameFromURL(rawURL, fallback string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fallback
	}
	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" {
		return fallback
	}
	return name
}
