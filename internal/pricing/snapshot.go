package pricing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pricelens/pricelens/internal/model"
)

const maxSnapshotBullets = 4

var (
	snapshotResolutionRe = regexp.MustCompile(`(?i)(\d+p|4k|ultra hd)`)
	creditsRe            = regexp.MustCompile(`(?i)(\d+)\s*credits?`)
	minutesRe            = regexp.MustCompile(`(?i)(\d+)\s*(?:minutes?|min)`)
	videosRe             = regexp.MustCompile(`(?i)(\d+)\s*videos?`)
	unlimitedRe          = regexp.MustCompile(`(?i)unlimited\s+(?:videos?|credits?|minutes?|exports?)`)
	periodRe             = regexp.MustCompile(`(?i)per\s+(month|year|mo|yr)|monthly|yearly`)
)

// Snapshot builds the condensed paid-plan bullet view used as input to the
// usage-note and verdict generators. Free plans are excluded; Enterprise and
// Custom tiers are filtered out of the display set.
func Snapshot(plans []model.PricingPlan, maxPlans int) model.PricingSnapshot {
	if len(plans) == 0 {
		return model.PricingSnapshot{}
	}
	if maxPlans <= 0 {
		maxPlans = 3
	}

	paid := FilterPaidPlans(plans)
	var regular []model.PricingPlan
	for _, plan := range paid {
		name := strings.ToLower(plan.Name)
		if strings.Contains(name, "enterprise") || strings.Contains(name, "custom") {
			continue
		}
		regular = append(regular, plan)
	}

	limit := maxPlans + 1
	if limit > 4 {
		limit = 4
	}
	if len(regular) > limit {
		regular = regular[:limit]
	}

	snapshot := model.PricingSnapshot{Note: snapshotNote(plans)}
	for _, plan := range regular {
		name := plan.Name
		if name == "" {
			name = "Unknown"
		}
		snapshot.Plans = append(snapshot.Plans, model.SnapshotPlan{
			Name:    name,
			Bullets: planBullets(plan),
		})
	}
	return snapshot
}

// planBullets derives up to four display bullets for one paid plan
func planBullets(plan model.PricingPlan) []string {
	allText := strings.ToLower(strings.Join(plan.FeatureTexts(), " "))
	var bullets []string

	// Watermark status
	switch {
	case strings.Contains(allText, "remove watermark"),
		strings.Contains(allText, "watermark removal"),
		strings.Contains(allText, "no watermark"),
		strings.Contains(allText, "unwatermarked"):
		bullets = append(bullets, "Watermark removal")
	case !strings.Contains(allText, "watermark"):
		// Paid plans are assumed watermark-free unless stated otherwise
		bullets = append(bullets, "No watermarks")
	}

	// Export quality
	if m := snapshotResolutionRe.FindStringSubmatch(allText); m != nil {
		bullets = append(bullets, fmt.Sprintf("%s export quality", strings.ToUpper(m[1])))
	} else {
		bullets = append(bullets, "Higher export quality than free plan")
	}

	// Usage limits
	if bullet := usageBullet(allText); bullet != "" {
		bullets = append(bullets, bullet)
	}

	// Commercial rights
	if strings.Contains(allText, "commercial") {
		bullets = append(bullets, "Commercial use allowed")
	} else {
		bullets = append(bullets, "Commercial licensing available")
	}

	// Extras
	if strings.Contains(allText, "team") || strings.Contains(allText, "users") || strings.Contains(allText, "collaboration") {
		bullets = append(bullets, "Team collaboration features")
	}
	if strings.Contains(allText, "priority") || strings.Contains(allText, "support") {
		bullets = append(bullets, "Priority support")
	}
	if strings.Contains(allText, "custom avatar") {
		bullets = append(bullets, "Custom avatar creation")
	}

	if len(bullets) > maxSnapshotBullets {
		bullets = bullets[:maxSnapshotBullets]
	}
	return bullets
}

func usageBullet(allText string) string {
	if unlimitedRe.MatchString(allText) {
		return "Unlimited usage"
	}
	if m := creditsRe.FindStringSubmatch(allText); m != nil {
		return fmt.Sprintf("%s credits %s", m[1], usagePeriod(allText))
	}
	if m := minutesRe.FindStringSubmatch(allText); m != nil {
		return fmt.Sprintf("%s minutes %s", m[1], usagePeriod(allText))
	}
	if m := videosRe.FindStringSubmatch(allText); m != nil {
		return fmt.Sprintf("%s videos per period", m[1])
	}
	return ""
}

func usagePeriod(allText string) string {
	m := periodRe.FindStringSubmatch(allText)
	if m == nil {
		return "per period"
	}
	switch strings.ToLower(m[0]) {
	case "monthly":
		return "per month"
	case "yearly":
		return "per year"
	}
	return "per " + strings.ToLower(m[1])
}

// snapshotNote derives the credit-consumption note shown under the snapshot
func snapshotNote(plans []model.PricingPlan) string {
	var parts []string
	for _, plan := range plans {
		parts = append(parts, plan.FeatureTexts()...)
	}
	allText := strings.ToLower(strings.Join(parts, " "))

	if !strings.Contains(allText, "credit") && !strings.Contains(allText, "minute") {
		return ""
	}
	if strings.Contains(allText, "edit") || strings.Contains(allText, "regenerate") || strings.Contains(allText, "revision") {
		return "Repeated edits may consume additional credits/minutes. Consider finalizing your script before generating."
	}
	return "Usage limits apply. Check your plan details for exact credit/minute allocations."
}

// SnapshotText flattens a snapshot into a single text block for downstream
// text generation. Deterministic for identical inputs.
func SnapshotText(snapshot model.PricingSnapshot) string {
	var b strings.Builder
	for _, plan := range snapshot.Plans {
		b.WriteString(plan.Name)
		b.WriteString(": ")
		b.WriteString(strings.Join(plan.Bullets, ". "))
		b.WriteString(". ")
	}
	return strings.TrimSpace(b.String())
}
