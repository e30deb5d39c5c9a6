package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Pre-compiled at initialization.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/journals/-?\d+$`), Template: "/journals/:id"},
	{Pattern: regexp.MustCompile(`^/journals/[^/]+$`), Template: "/journals/:invalid"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /journals/123) to template format (e.g., /journals/:id).
// Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/journals/123")     // "/journals/:id"
//	NormalizePath("/journals/abc")     // "/journals/:invalid"
//	NormalizePath("/journals")         // "/journals" (unchanged)
//	NormalizePath("/health")           // "/health" (unchanged)
//	NormalizePath("/auth/token")       // "/auth/token" (unchanged)
//	NormalizePath("/unknown/path/123") // "/unknown/path/123" (no match, return original)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/journals/123?x=1") // "/journals/:id"
//	NormalizePath("/journals/")        // "/journals"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return path
}

// GetExpectedCardinality returns the expected number of unique path labels
// after normalization.
func GetExpectedCardinality() int {
	// /health, /ready, /live, /metrics, /auth/token, /journals
	staticCount := 6
	return len(pathPatterns) + staticCount
}
