// Package textproc provides text normalization helpers shared by the
// extraction and matching layers: markup stripping, whitespace collapsing,
// and skill-string normalization.
package textproc

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	skillCharPattern  = regexp.MustCompile(`[^a-z0-9+.# ]`)
	blankRunPattern   = regexp.MustCompile(`\n\n\n+`)
)

// StripMarkup removes anything between '<' and '>' inclusive, collapses runs
// of whitespace to single spaces, and trims the ends. Empty input yields an
// empty string.
func StripMarkup(text string) string {
	if text == "" {
		return ""
	}
	text = tagPattern.ReplaceAllString(text, " ")
	return CollapseWhitespace(text)
}

// CollapseWhitespace replaces runs of whitespace with single spaces and trims
// leading/trailing space.
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// NormalizeSkill lowercases a skill string and removes every character except
// letters, digits, '+', '.', '#', and space. Tokens like "c++", "c#" and
// "node.js" survive intact.
func NormalizeSkill(s string) string {
	lowered := strings.ToLower(s)
	cleaned := skillCharPattern.ReplaceAllString(lowered, " ")
	return strings.TrimSpace(cleaned)
}

// CleanText normalizes line endings (CRLF and CR to LF), reduces runs of
// three or more newlines to two, and trims the result. It preserves line
// structure, unlike CollapseWhitespace.
func CleanText(content string) string {
	if content == "" {
		return ""
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, strings.TrimRight(line, " \t"))
	}
	result := strings.Join(cleaned, "\n")

	result = blankRunPattern.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
