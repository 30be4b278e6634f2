// Package pathutil holds helpers for URL paths: id parsing and the
// normalization used to keep metric and span labels bounded.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a dynamic route to its label template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns are evaluated in order, most specific first. Any segment in
// the id position is collapsed, including malformed ids answered with 400.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/articles/[^/]+/deactivate$`), Template: "/api/articles/:id/deactivate"},
	{Pattern: regexp.MustCompile(`^/api/articles/[^/]+$`), Template: "/api/articles/:id"},
	{Pattern: regexp.MustCompile(`^/api-docs/.+$`), Template: "/api-docs/*"},
}

// NormalizePath converts dynamic paths to their template, e.g.
// /api/articles/123 to /api/articles/:id. Query strings and a trailing slash
// are dropped first. Unknown paths are returned unchanged.
//
// Examples:
//
//	NormalizePath("/api/articles/123")            // "/api/articles/:id"
//	NormalizePath("/api/articles/7/deactivate")   // "/api/articles/:id/deactivate"
//	NormalizePath("/api/articles?name=key")       // "/api/articles"
//	NormalizePath("/api-docs/index.html")         // "/api-docs/*"
//	NormalizePath("/health")                      // "/health"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

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
