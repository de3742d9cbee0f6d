package chat

import (
	"regexp"
	"strings"
)

// Common Hawaiian Pidgin words and phrases, matched on word boundaries.
var pidginMarkers = []*regexp.Regexp{
	regexp.MustCompile(`\bbrah\b`), regexp.MustCompile(`\bbruddah\b`),
	regexp.MustCompile(`\bsista\b`), regexp.MustCompile(`\bdah\b`),
	regexp.MustCompile(`\bda\b`), regexp.MustCompile(`\bstay\b`),
	regexp.MustCompile(`\bshoots\b`), regexp.MustCompile(`\brain\b`),
	regexp.MustCompile(`\brajah\b`),
	regexp.MustCompile(`\bhowzit\b`), regexp.MustCompile(`\bchoke\b`),
	regexp.MustCompile(`\bono\b`), regexp.MustCompile(`\bkine\b`),
	regexp.MustCompile(`\bwea\b`), regexp.MustCompile(`\bwen\b`),
	regexp.MustCompile(`\bmoke\b`), regexp.MustCompile(`\bhaole\b`),
	regexp.MustCompile(`\bkeiki\b`), regexp.MustCompile(`\btutu\b`),
	regexp.MustCompile(`\bpuka\b`), regexp.MustCompile(`\bpau\b`),
	regexp.MustCompile(`\bmahalos?\b`), regexp.MustCompile(`\beh\b`),
}

// DetectPidgin reports whether text reads as Hawaiian Pidgin English.
// Two or more distinct markers are required so a stray "eh" alone does
// not flip a whole session.
func DetectPidgin(text string) bool {
	lower := strings.ToLower(text)
	matches := 0
	for _, marker := range pidginMarkers {
		if marker.MatchString(lower) {
			matches++
			if matches >= 2 {
				return true
			}
		}
	}
	return false
}
