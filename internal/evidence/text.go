package evidence

import (
	"regexp"
	"strings"

	"github.com/pricelens/pricelens/internal/model"
)

// Evidence text sometimes carries comparisons hardcoded against a specific
// competitor ("renders faster than Acme"). When that text is reused on
// another tool's page the comparison is wrong, so known tool names are
// swapped for the current tool and unrecognized ones are stripped.

var residualComparisonRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bthan\s+[A-Z][a-z]+`),
	regexp.MustCompile(`(?i)\bcompared\s+to\s+[A-Z][a-z]+`),
	regexp.MustCompile(`(?i)\b(vs|versus)\s+[A-Z][a-z]+`),
}

// NormalizeText rewrites cross-tool comparison phrases in evidence text to
// reference current. Comparisons against names not in all are removed
// entirely rather than shown wrong.
func NormalizeText(text string, current *model.Tool, all []*model.Tool) string {
	if text == "" {
		return ""
	}

	normalized := text
	for _, other := range all {
		if other.Slug == current.Slug {
			continue
		}
		for _, variation := range nameVariations(other) {
			replaced := false
			for _, phrase := range []string{`than\s+`, `compared\s+to\s+`} {
				re := regexp.MustCompile(`(?i)\b(` + phrase + `)` + regexp.QuoteMeta(variation) + `\b`)
				if re.MatchString(normalized) {
					normalized = re.ReplaceAllString(normalized, "${1}"+current.Name)
					replaced = true
				}
			}
			re := regexp.MustCompile(`(?i)\b(vs|versus)\s+` + regexp.QuoteMeta(variation) + `\b`)
			if re.MatchString(normalized) {
				normalized = re.ReplaceAllString(normalized, "$1 "+current.Name)
				replaced = true
			}
			if replaced {
				break
			}
		}
	}

	// Strip comparisons against names still unresolved, leaving ones that
	// now reference the current tool.
	currentFirst := ""
	if fields := strings.Fields(current.Name); len(fields) > 0 {
		currentFirst = strings.ToLower(fields[0])
	}
	stripped := false
	for _, re := range residualComparisonRes {
		normalized = re.ReplaceAllStringFunc(normalized, func(match string) string {
			words := strings.Fields(match)
			if len(words) > 0 && strings.ToLower(words[len(words)-1]) == currentFirst {
				return match
			}
			stripped = true
			return ""
		})
	}
	if stripped {
		normalized = strings.TrimSpace(strings.Join(strings.Fields(normalized), " "))
		if len(normalized) < 20 {
			normalized = "This tool offers " + normalized
		}
	}
	return normalized
}

// nameVariations lists the forms a tool's name shows up as in scraped text
func nameVariations(t *model.Tool) []string {
	variations := []string{t.Name, strings.ToLower(t.Name), t.Slug}
	if strings.Contains(t.Slug, "-") {
		variations = append(variations,
			strings.ReplaceAll(t.Slug, "-", " "),
			strings.ReplaceAll(t.Slug, "-", ""))
	}
	seen := make(map[string]bool, len(variations))
	unique := variations[:0]
	for _, v := range variations {
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, v)
	}
	return unique
}
