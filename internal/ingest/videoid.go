package ingest

import (
	"regexp"

	"fetchora/internal/domain"
)

// Patterns for video ids, tried in order. The first anchors on the usual
// URL markers; the second falls back to the last 11 characters of the input.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|v/|embed/|youtu\.be/|/v/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`([A-Za-z0-9_-]{11})$`),
}

// ExtractVideoID pulls an 11-character video id out of a URL or bare id.
// No remote validation happens here; a plausible-looking but wrong id is
// caught later when the fetch returns zero comments or an API error.
func ExtractVideoID(input string) (domain.VideoID, bool) {
	if input == "" {
		return "", false
	}
	for _, pat := range videoIDPatterns {
		if m := pat.FindStringSubmatch(input); m != nil {
			return domain.VideoID(m[1]), true
		}
	}
	return "", false
}
