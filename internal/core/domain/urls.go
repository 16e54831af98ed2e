package domain

import (
	"regexp"
	"strings"
)

// hostPattern matches a domain name, localhost or a dotted-quad IPv4 address.
const hostPattern = `(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|localhost|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})`

// RE2 guarantees linear-time matching for both patterns.
var (
	urlFinder = regexp.MustCompile(`(?i)https?://` + hostPattern + `(?::\d+)?(?:/[^\s<>"'\)]*)?`)
	strictURL = regexp.MustCompile(`(?i)^https?://` + hostPattern + `(?::\d+)?(?:/?|[/?]\S+)$`)
)

// urlTrailingPunct is stripped from each match before deduplication.
const urlTrailingPunct = ".,;:!?)"

// FindURLs returns every http(s) URL embedded in text, deduplicated
// in first-seen order with trailing punctuation removed.
func FindURLs(text string) []string {
	matches := urlFinder.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	result := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimRight(m, urlTrailingPunct)
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		result = append(result, m)
	}
	return result
}

// IsURL reports whether the whole of s is a single http(s) URL.
func IsURL(s string) bool {
	return strictURL.MatchString(s)
}

// HasHTTPScheme reports whether s starts with http:// or https://.
func HasHTTPScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
