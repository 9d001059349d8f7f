// Package pricing derives display strings from a tool's pricing plans:
// starting price, plan facts, recommendation badges, usage notes and verdict
// text. Every function is a pure transform of its inputs so that two render
// passes over the same data produce byte-identical output.
package pricing

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pricelens/pricelens/internal/model"
)

// Length budgets are content-policy decisions, not implementation accidents.
const (
	// MaxReasonLen caps a recommendation reason badge
	MaxReasonLen = 18
	// ReasonTruncateLen is the keep-length before the ellipsis
	ReasonTruncateLen = 15
	// MaxExportQualityLen caps an extracted export-quality fragment
	MaxExportQualityLen = 20
	// MaxBestForLen caps a "best for" description
	MaxBestForLen = 50
	// MaxBulletLen caps a usage-note bullet
	MaxBulletLen = 120
	// MaxTipLen caps a usage-note tip
	MaxTipLen = 100
)

// nonPaidPrices are the price texts that do not denote a purchasable plan
var nonPaidPrices = map[string]bool{
	"free":    true,
	"custom":  true,
	"contact": true,
	"":        true,
}

// IsPaidPrice reports whether a free-text price denotes a purchasable plan
func IsPaidPrice(price string) bool {
	return !nonPaidPrices[strings.ToLower(strings.TrimSpace(price))]
}

// FirstPaidPlan returns the first plan in array order whose price text is paid.
// Plans are evaluated strictly in array order.
func FirstPaidPlan(plans []model.PricingPlan) (model.PricingPlan, bool) {
	for _, plan := range plans {
		if IsPaidPrice(plan.Price) {
			return plan, true
		}
	}
	return model.PricingPlan{}, false
}

// StartingPrice builds the display starting price from the first paid plan,
// e.g. "$28" + "/mo" -> "$28/mo". Returns "" when no paid plan exists.
func StartingPrice(plans []model.PricingPlan) string {
	plan, ok := FirstPaidPlan(plans)
	if !ok {
		return ""
	}
	return strings.TrimSpace(plan.Price) + strings.TrimSpace(plan.Period)
}

// IsContactSalesPlan reports whether a plan is an Enterprise/Contact Sales tier.
// This must be checked before IsFreePlan to avoid misclassifying quote-only
// tiers with no listed price as free.
func IsContactSalesPlan(plan model.PricingPlan) bool {
	name := strings.ToLower(plan.Name)
	if strings.Contains(name, "enterprise") || strings.Contains(name, "custom") || strings.Contains(name, "contact") {
		return true
	}

	cta := strings.ToLower(plan.CTAText)
	for _, marker := range []string{"contact sales", "talk to sales", "request a demo", "get a quote"} {
		if strings.Contains(cta, marker) {
			return true
		}
	}

	note := strings.ToLower(plan.UnitPriceNote)
	if strings.Contains(note, "custom") || strings.Contains(note, "enterprise pricing") || strings.Contains(note, "contact sales") {
		return true
	}

	allText := strings.ToLower(strings.Join(append([]string{plan.Description, plan.Tagline}, plan.FeatureTexts()...), " "))
	return strings.Contains(allText, "contact sales") ||
		strings.Contains(allText, "invoice billing") ||
		strings.Contains(allText, "custom pricing")
}

// IsFreePlan reports whether a plan is a free tier
func IsFreePlan(plan model.PricingPlan) bool {
	if IsContactSalesPlan(plan) {
		return false
	}
	if strings.Contains(strings.ToLower(plan.Name), "free") {
		return true
	}
	return strings.Contains(strings.ToLower(plan.Price), "free")
}

// FilterPaidPlans drops free tiers, keeping array order
func FilterPaidPlans(plans []model.PricingPlan) []model.PricingPlan {
	var paid []model.PricingPlan
	for _, plan := range plans {
		if !IsFreePlan(plan) {
			paid = append(paid, plan)
		}
	}
	return paid
}

var priceAmountRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// PriceAmount parses a numeric monthly amount from a plan's free-text price.
// Missing or unparseable prices sort as +Inf so they rank last.
func PriceAmount(plan model.PricingPlan) float64 {
	if !IsPaidPrice(plan.Price) {
		return math.Inf(1)
	}
	match := priceAmountRe.FindString(plan.Price)
	if match == "" {
		return math.Inf(1)
	}
	amount, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return math.Inf(1)
	}
	return amount
}

// IsPopularPlan reports whether a plan carries a "popular" marker
func IsPopularPlan(plan model.PricingPlan) bool {
	if plan.IsPopular {
		return true
	}
	badge := strings.ToLower(plan.Badge)
	if badge == "" {
		badge = strings.ToLower(plan.RibbonText)
	}
	return strings.Contains(badge, "popular") || strings.Contains(badge, "best value")
}
