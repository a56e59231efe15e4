package validators

import (
	"net/http"
	"strings"
)

// maxSearchLength caps the search box value echoed back into the page.
const maxSearchLength = 100

// ParseQueryString returns a trimmed query parameter and whether it was sent at all.
func ParseQueryString(r *http.Request, key string, maxLen int) (string, bool) {
	values, ok := r.URL.Query()[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return SanitizeString(values[0], maxLen), true
}

// ParseSearch reads the q parameter of a list page.
func ParseSearch(r *http.Request) (string, bool) {
	return ParseQueryString(r, "q", maxSearchLength)
}

// ParseTab reads the tab parameter and keeps it only when valid accepts it.
func ParseTab(r *http.Request, valid func(string) bool) (string, bool) {
	tab, ok := ParseQueryString(r, "tab", maxSearchLength)
	if !ok || strings.TrimSpace(tab) == "" || !valid(tab) {
		return "", false
	}
	return tab, true
}
