// Package vtt converts WebVTT subtitle markup into plain text.
package vtt

import (
	"regexp"
	"strings"
)

// tagRe matches inline markup tags in cue payload lines (<c>, <i>, <00:00:01.000>, ...).
var tagRe = regexp.MustCompile(`<[^>]+>`)

// Decode extracts the spoken text from VTT subtitle content.
// Header lines, timestamp lines, numeric cue identifiers, and blank lines
// are dropped; inline tags are stripped; surviving payload lines are joined
// with single spaces in their original order. Decode never fails: malformed
// input degrades to an empty or partial result.
func Decode(content string) string {
	var parts []string

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "WEBVTT") || strings.Contains(line, "-->") {
			continue
		}
		// Bare numeric lines are cue identifiers, not payload.
		if isDigits(line) {
			continue
		}
		line = strings.TrimSpace(tagRe.ReplaceAllString(line, ""))
		if line != "" {
			parts = append(parts, line)
		}
	}

	return strings.Join(parts, " ")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
