package utils

import (
	"regexp"
	"strings"
)

var (
	hashtagRe = regexp.MustCompile(`#([a-zA-Z0-9_]+)\b`)
	mentionRe = regexp.MustCompile(`@([a-zA-Z][a-zA-Z0-9._]+)\b`)
)

// ExtractHashtags returns the normalized (lowercase, no '#') tags appearing
// in text, in order of first appearance.
func ExtractHashtags(text string) []string {
	var tags []string
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		tags = append(tags, strings.ToLower(m[1]))
	}
	return tags
}

// ExtractMentions returns the usernames mentioned as @name, without the '@'.
func ExtractMentions(text string) []string {
	var names []string
	for _, m := range mentionRe.FindAllStringSubmatch(text, -1) {
		names = append(names, m[1])
	}
	return names
}

// NormalizeTag strips a leading '#' and lowercases, matching the stored form.
func NormalizeTag(raw string) string {
	t := strings.TrimSpace(raw)
	t = strings.TrimPrefix(t, "#")
	return strings.ToLower(t)
}
