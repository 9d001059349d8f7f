package evidence

import (
	"strings"

	"github.com/pricelens/pricelens/internal/model"
)

// NormalizeLinks rewrites evidence links so that internal /tool/ paths point
// at candidateSlug, then deduplicates. Evidence files are shared across
// alternative listings; without the rewrite, one tool's links leak onto
// another tool's page.
func NormalizeLinks(links []model.LinkRef, candidateSlug string) []string {
	normalized := make([]string, 0, len(links))
	for _, link := range links {
		normalized = append(normalized, rewriteToolPath(strings.TrimSpace(link.URL), candidateSlug))
	}

	// Dedup is case-insensitive and ignores a trailing slash, but the
	// surviving link keeps its original form.
	seen := make(map[string]bool, len(normalized))
	deduplicated := make([]string, 0, len(normalized))
	for _, link := range normalized {
		key := strings.TrimSuffix(strings.ToLower(link), "/")
		if seen[key] {
			continue
		}
		seen[key] = true
		deduplicated = append(deduplicated, link)
	}
	return deduplicated
}

func rewriteToolPath(link, candidateSlug string) string {
	const prefix = "/tool/"
	if !strings.HasPrefix(link, prefix) {
		return link
	}
	parts := strings.Split(strings.TrimPrefix(link, prefix), "/")
	if len(parts) == 0 || parts[0] == "" || parts[0] == candidateSlug {
		return link
	}
	rest := strings.Join(parts[1:], "/")
	if rest == "" {
		return prefix + candidateSlug
	}
	return prefix + candidateSlug + "/" + rest
}
