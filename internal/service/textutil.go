package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"catalog-assistant/internal/models"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	wordPattern       = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)
)

// minKeywordLength is exclusive: shorter words are treated as noise.
const minKeywordLength = 3

// CleanHTML strips markup, collapses whitespace runs and trims the result.
func CleanHTML(text string) string {
	if text == "" {
		return ""
	}
	text = sanitizeUTF8(text)
	text = htmlTagPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// ParseTags resolves either tag representation into trimmed, non-empty tags.
// Order and duplicates are preserved.
func ParseTags(tags models.RawTags) []string {
	items := tags.List
	if !tags.IsList {
		items = strings.Split(tags.Text, ",")
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// TokenizeKeywords lowercases text and returns its words longer than three characters.
func TokenizeKeywords(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) > minKeywordLength {
			out = append(out, w)
		}
	}
	return out
}

// truncateRunes cuts s to at most limit characters, appending suffix when it had to cut.
func truncateRunes(s string, limit int, suffix string) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + suffix
}

// sanitizeUTF8 removes invalid UTF-8 sequences from string
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}
