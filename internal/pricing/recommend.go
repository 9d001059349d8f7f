package pricing

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pricelens/pricelens/internal/model"
)

// priorityKeywords rank the most distinctive plan features for the reason
// badge, scanned keyword-by-keyword so the keyword order decides ties.
var priorityKeywords = []string{
	"watermark", "4k", "seats", "commercial", "minutes", "credits", "export", "team", "collaboration",
}

// pricingFactKeywords mark key-fact lines usable as a recommendation reason
var pricingFactKeywords = []string{"watermark", "credit", "minute", "rights", "export", "commercial"}

var planSlugSpaceRe = regexp.MustCompile(`\s+`)

// DeriveRecommendations selects up to three plans and attaches a short reason
// badge to each. A plan with no derivable reason is dropped from the output:
// never show a recommendation badge without a concrete reason.
func DeriveRecommendations(plans []model.PricingPlan, keyFacts []string) []model.Recommendation {
	sorted := make([]model.PricingPlan, len(plans))
	copy(sorted, plans)

	// Popular plans first, then ascending monthly price; stable otherwise.
	sort.SliceStable(sorted, func(i, j int) bool {
		popI, popJ := IsPopularPlan(sorted[i]), IsPopularPlan(sorted[j])
		if popI != popJ {
			return popI
		}
		return PriceAmount(sorted[i]) < PriceAmount(sorted[j])
	})

	if len(sorted) > 3 {
		sorted = sorted[:3]
	}

	var recs []model.Recommendation
	for _, plan := range sorted {
		reason := recommendationReason(plan, keyFacts)
		if reason == "" {
			continue
		}
		recs = append(recs, model.Recommendation{
			PlanName: plan.Name,
			Reason:   reason,
			PlanSlug: PlanSlug(plan.Name),
		})
	}
	return recs
}

// PlanSlug builds the scroll-anchor slug for a plan card
func PlanSlug(name string) string {
	return "plan-" + planSlugSpaceRe.ReplaceAllString(strings.ToLower(name), "-")
}

// recommendationReason derives a reason badge through a fixed priority chain:
// short description, keyword-bearing feature, first feature, pricing key fact.
func recommendationReason(plan model.PricingPlan, keyFacts []string) string {
	if plan.Description != "" && len(plan.Description) <= MaxReasonLen {
		return plan.Description
	}

	features := plan.FeatureTexts()

	for _, keyword := range priorityKeywords {
		for _, feature := range features {
			if strings.Contains(strings.ToLower(feature), keyword) {
				return truncateReason(feature)
			}
		}
	}

	if len(features) > 0 {
		return truncateReason(features[0])
	}

	for _, fact := range keyFacts {
		lower := strings.ToLower(fact)
		matched := false
		for _, k := range pricingFactKeywords {
			if strings.Contains(lower, k) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		reason := strings.TrimSpace(fact)
		if len(reason) > MaxReasonLen {
			reason = windowAroundKeyword(reason, lower)
		}
		if len(reason) > MaxReasonLen {
			reason = reason[:ReasonTruncateLen] + "..."
		}
		return reason
	}

	return ""
}

func truncateReason(text string) string {
	reason := strings.TrimSpace(text)
	if len(reason) > MaxReasonLen {
		reason = reason[:ReasonTruncateLen] + "..."
	}
	return reason
}

// windowAroundKeyword tries to cut a short substring centered on the first
// pricing keyword before falling back to plain truncation.
func windowAroundKeyword(reason, lower string) string {
	for _, keyword := range pricingFactKeywords {
		idx := strings.Index(lower, keyword)
		if idx < 0 {
			continue
		}
		start := idx - 5
		if start < 0 {
			start = 0
		}
		end := idx + len(keyword) + 10
		if end > len(reason) {
			end = len(reason)
		}
		windowed := strings.TrimSpace(reason[start:end])
		if len(windowed) <= MaxReasonLen {
			return windowed
		}
		reason = windowed
		lower = strings.ToLower(windowed)
	}
	return reason
}
