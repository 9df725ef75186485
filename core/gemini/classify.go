package gemini

import (
	"errors"
	"strings"
)

// ErrRateLimited means the service signalled quota or rate exhaustion.
var ErrRateLimited = errors.New("gemini: request limit reached")

// Body substrings the upstream uses to signal quota exhaustion. These are
// brittle, API-specific signatures; the 429 status code is the primary
// signal and these exist as a fallback. Matching is case-sensitive.
var rateLimitMarkers = []string{
	"quota",
	"RATE_LIMIT",
	"rate limit",
	"Resource has been exhausted",
}

// IsRateLimitSignal reports whether a non-success response indicates rate
// limiting or quota exhaustion. Kept as the single place the heuristic
// lives so it can be updated without touching pipeline logic.
func IsRateLimitSignal(statusCode int, body string) bool {
	if statusCode == 429 {
		return true
	}
	for _, marker := range rateLimitMarkers {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}
