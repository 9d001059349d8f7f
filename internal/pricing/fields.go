package pricing

import (
	"regexp"
	"strings"

	"github.com/pricelens/pricelens/internal/model"
)

// Absence of data yields "" from every extractor in this file; callers must
// treat "" as "omit field". No input can make these functions fail.

var (
	qualityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(720p|1080p|4k)\b`),
		regexp.MustCompile(`(?i)\b(\d+p)\s*(export|resolution|quality)?`),
		regexp.MustCompile(`(?i)\b(HD|FHD|UHD|ultra\s*hd)\b`),
	}
	bareResolutionRe = regexp.MustCompile(`(?i)\b(720p|1080p|4k|\d+p)\b`)
)

// ExportQuality extracts an export resolution fragment from plan text parts,
// matching patterns in priority order. When a captured span exceeds the length
// budget, it re-matches just the bare resolution token.
func ExportQuality(parts []string) string {
	for _, text := range parts {
		for _, pattern := range qualityPatterns {
			match := pattern.FindString(text)
			if match == "" {
				continue
			}
			result := strings.TrimSpace(match)
			if len(result) <= MaxExportQualityLen {
				return result
			}
			if bare := bareResolutionRe.FindStringSubmatch(text); bare != nil {
				return bare[1]
			}
		}
	}
	return ""
}

var (
	commercialKeywords = []string{"commercial", "license", "licensing", "rights", "resale", "client"}
	negativeKeywords   = []string{"non-commercial", "personal use only", "no commercial"}
)

// CommercialRights classifies commercial-use rights from plan text parts.
// A negative phrase anywhere wins over positive mentions regardless of order.
func CommercialRights(parts []string) string {
	hasCommercial := false
	hasNegative := false

	for _, text := range parts {
		lower := strings.ToLower(text)
		for _, k := range negativeKeywords {
			if strings.Contains(lower, k) {
				hasNegative = true
			}
		}
		for _, k := range commercialKeywords {
			if strings.Contains(lower, k) {
				hasCommercial = true
			}
		}
	}

	if hasNegative {
		return "Limited"
	}
	if hasCommercial {
		return "Included"
	}
	return ""
}

var bestForTailRe = regexp.MustCompile(`(?i)(?:best for|ideal for|suitable for)[:\s]+(.+?)(?:\.|$)`)

// bestForStrategy is one step of the BestFor fallback chain. Strategies run in
// order and the first non-empty result wins, so reordering a fallback is a
// one-line change.
type bestForStrategy func() string

// BestFor derives a short "best for" description for a plan.
// Priority: plan description, snapshot bullets for the plan, tool-level best_for.
func BestFor(planName string, plan model.PricingPlan, tool *model.Tool, snapshot []model.SnapshotPlan) string {
	strategies := []bestForStrategy{
		func() string {
			if plan.Description != "" && len(plan.Description) <= MaxBestForLen {
				return plan.Description
			}
			return ""
		},
		func() string { return bestForFromSnapshot(planName, snapshot) },
		func() string {
			if tool != nil && tool.BestFor != "" && len(tool.BestFor) <= MaxBestForLen {
				return tool.BestFor
			}
			return ""
		},
	}

	for _, strategy := range strategies {
		if result := strategy(); result != "" {
			return result
		}
	}
	return ""
}

func bestForFromSnapshot(planName string, snapshot []model.SnapshotPlan) string {
	for _, sp := range snapshot {
		if !strings.EqualFold(sp.Name, planName) || len(sp.Bullets) == 0 {
			continue
		}

		// Prefer a bullet that names an audience
		for _, bullet := range sp.Bullets {
			lower := strings.ToLower(bullet)
			if !strings.Contains(lower, "best for") && !strings.Contains(lower, "ideal for") && !strings.Contains(lower, "suitable for") {
				continue
			}
			if m := bestForTailRe.FindStringSubmatch(bullet); m != nil {
				tail := strings.TrimSpace(m[1])
				if len(tail) <= MaxBestForLen {
					return tail
				}
			}
		}

		if len(sp.Bullets[0]) <= MaxBestForLen {
			return sp.Bullets[0]
		}
	}
	return ""
}
