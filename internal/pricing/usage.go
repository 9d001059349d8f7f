package pricing

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pricelens/pricelens/internal/model"
)

// UsageNotes is the "how usage works" block on a pricing page
type UsageNotes struct {
	Bullets []string `json:"bullets"`
	Tip     string   `json:"tip"`
}

// usageKeywords mark sentences that describe usage rules rather than marketing
var usageKeywords = []string{
	"credits", "minutes", "quota", "expire", "rollover", "regenerate", "edit",
	"export", "watermark", "commercial", "refund", "re-export", "daily",
	"per day", "per month", "per year", "hr/mo", "scene", "voice", "subtitle",
	"tts", "text-to-speech", "gen-ai", "studio", "browser", "chrome", "burn rate",
}

const (
	maxCandidateFacts = 10
	semanticOverlap   = 4   // Shared long words marking two facts as duplicates
	pageDedupeCutoff  = 0.7 // Word-overlap threshold for the page dedupe map
	tipJaccardCutoff  = 0.5
)

var placeholderRe = regexp.MustCompile(`\{[^}]+\}`)

// DeriveUsageNotes produces three deterministic usage bullets and a tip for a
// tool's pricing page. Same inputs always produce byte-identical output: the
// generator depends only on its arguments, never on clock, randomness or call
// order, so independent render passes of the same page cannot disagree.
func DeriveUsageNotes(tool *model.Tool, plans []model.PricingPlan, snapshotText, toolName string, dedupe *DedupeMap) UsageNotes {
	profile := NewStyleProfile(tool, plans)

	candidates := collectCandidateFacts(tool, plans, snapshotText, profile, dedupe)

	bullets := rewriteCandidates(candidates, profile)
	if len(bullets) == 0 {
		bullets = fallbackBullets(plans, profile)
	}

	tip := deriveTip(candidates, bullets, profile, toolName)

	final := make([]string, 0, 3)
	for _, b := range bullets {
		normalized := normalizeNote(b, MaxBulletLen)
		if normalized != "" {
			final = append(final, normalized)
		}
		if len(final) == 3 {
			break
		}
	}

	// Pad to three bullets with unused candidates, then fixed fallbacks
	for len(final) < 3 && len(candidates) > len(final) {
		normalized := normalizeNote(candidates[len(final)], MaxBulletLen)
		if normalized == "" {
			break
		}
		final = append(final, normalized)
	}
	padding := []string{
		"Usage is tracked by plan limits. Check your plan details for specific quotas.",
		"Re-generations and major edits may consume additional usage credits or minutes.",
		"Upgrade to paid plans for higher limits and additional features.",
	}
	for len(final) < 3 {
		final = append(final, padding[len(final)])
	}

	return UsageNotes{Bullets: final, Tip: normalizeNote(tip, MaxTipLen)}
}

// collectCandidateFacts gathers usage-rule sentences from key facts, plan
// features and the snapshot, in that priority order. Facts and plans are
// sorted first so the collection order cannot vary between passes.
func collectCandidateFacts(tool *model.Tool, plans []model.PricingPlan, snapshotText string, profile StyleProfile, dedupe *DedupeMap) []string {
	var candidates []string

	admit := func(text string, preferSpecific bool) {
		text = strings.TrimSpace(text)
		lower := strings.ToLower(text)
		if text == "" || len(text) > MaxBulletLen {
			return
		}
		if !containsAny(lower, usageKeywords) {
			return
		}
		for _, phrase := range profile.ForbiddenPhrases {
			if strings.Contains(lower, strings.ToLower(phrase)) {
				return
			}
		}
		if dedupe.IsDuplicate(text, pageDedupeCutoff) {
			return
		}
		if isSemanticDuplicate(lower, candidates) {
			return
		}
		if preferSpecific && !containsAny(lower, profile.UniqueTerms) && len(candidates) >= 6 {
			return
		}
		candidates = append(candidates, text)
		dedupe.Add(text)
	}

	if tool != nil {
		facts := make([]string, len(tool.KeyFacts))
		copy(facts, tool.KeyFacts)
		sort.Slice(facts, func(i, j int) bool {
			if len(facts[i]) != len(facts[j]) {
				return len(facts[i]) < len(facts[j])
			}
			return facts[i] < facts[j]
		})
		for _, fact := range facts {
			admit(fact, true)
		}
	}

	if len(candidates) < maxCandidateFacts {
		for _, plan := range sortPlansByName(plans) {
			for _, sentence := range splitSentences(strings.Join(plan.FeatureTexts(), " ")) {
				admit(sentence, false)
				if len(candidates) >= maxCandidateFacts {
					break
				}
			}
			if len(candidates) >= maxCandidateFacts {
				break
			}
		}
	}

	if snapshotText != "" && len(candidates) < maxCandidateFacts {
		for _, sentence := range splitSentences(snapshotText) {
			admit(sentence, false)
			if len(candidates) >= maxCandidateFacts {
				break
			}
		}
	}

	return candidates
}

// rewriteCandidates renders the first three candidates through the style
// profile's sentence patterns, cycling limitation/action/risk roles.
func rewriteCandidates(candidates []string, profile StyleProfile) []string {
	roles := []string{"limitation", "action", "risk"}

	var bullets []string
	for i := 0; i < len(candidates) && i < 3; i++ {
		fact := candidates[i]
		rewritten := rewriteWithPattern(fact, profile, roles[i%len(roles)])

		// A surviving placeholder would leak template syntax into the page
		if placeholderRe.MatchString(rewritten) {
			rewritten = fact
		}

		rewritten = strings.TrimSpace(rewritten)
		if len(rewritten) > MaxBulletLen {
			rewritten = rewritten[:MaxBulletLen-3] + "..."
		}

		lower := strings.ToLower(rewritten)
		if !containsAny(lower, profile.UniqueTerms) && len(profile.UniqueTerms) > 0 {
			term := profile.UniqueTerms[0]
			if idx := strings.Index(lower, "plan"); idx >= 0 {
				rewritten = rewritten[:idx+4] + " with " + term + rewritten[idx+4:]
			} else if idx := strings.Index(lower, "feature"); idx >= 0 {
				rewritten = rewritten[:idx+7] + " with " + term + rewritten[idx+7:]
			} else {
				rewritten = rewritten + " " + term + " is available in paid plans."
			}
		}

		bullets = append(bullets, rewritten)
	}
	return bullets
}

// rewriteWithPattern fills a sentence pattern from signals found in the fact.
// If the pattern cannot be fully resolved the original fact is returned, which
// keeps the output stable instead of leaking half-filled templates.
func rewriteWithPattern(fact string, profile StyleProfile, role string) string {
	var pattern string
	switch role {
	case "limitation":
		pattern = profile.Patterns.Limitation
	case "action":
		pattern = profile.Patterns.Action
	case "risk":
		pattern = profile.Patterns.Risk
	case "comparison":
		pattern = profile.Patterns.Comparison
	}
	if pattern == "" {
		return fact
	}

	lower := strings.ToLower(fact)
	hasFree := strings.Contains(lower, "free")
	hasWatermark := strings.Contains(lower, "watermark")
	hasExport := strings.Contains(lower, "export") || strings.Contains(lower, "720p") || strings.Contains(lower, "1080p")
	hasMinutes := strings.Contains(lower, "minutes") || strings.Contains(lower, "mins")
	hasCredits := strings.Contains(lower, "credits")

	feature, upgrade := "advanced features", "upgraded features"
	if hasWatermark {
		feature, upgrade = "watermarks", "watermark removal"
	} else if hasExport {
		feature, upgrade = "higher resolution exports", "1080p or 4K exports"
	}

	limit := "limited features"
	resource := "usage"
	if hasMinutes {
		limit, resource = "limited minutes", "minutes"
	} else if hasCredits {
		limit, resource = "limited credits", "credits"
	}

	freePlan := "Entry plans"
	if hasFree {
		freePlan = "Free plans"
	}

	replacer := strings.NewReplacer(
		"{free_plan}", freePlan,
		"{paid_plan}", "paid plans",
		"{feature}", feature,
		"{upgrade}", upgrade,
		"{limit}", limit,
		"{action}", "large projects",
		"{requirement}", "a paid plan",
		"{resource}", resource,
		"{limit_type}", resource,
		"{basic}", "basic features",
		"{condition}", "specific plan features",
	)
	rewritten := replacer.Replace(pattern)

	if placeholderRe.MatchString(rewritten) || rewritten == pattern {
		if !containsAny(lower, profile.UniqueTerms) && len(profile.UniqueTerms) > 0 {
			return fact + " " + profile.UniqueTerms[0] + " is available in paid plans."
		}
		return fact
	}
	return rewritten
}

// fallbackBullets builds tool-flavored bullets straight from the plans when no
// candidate facts survive filtering.
func fallbackBullets(plans []model.PricingPlan, profile StyleProfile) []string {
	var allParts []string
	for _, plan := range plans {
		allParts = append(allParts, plan.FeatureTexts()...)
	}
	allText := strings.ToLower(strings.Join(allParts, " "))

	hasWatermark := strings.Contains(allText, "watermark")
	has720p := strings.Contains(allText, "720p")
	has1080p := strings.Contains(allText, "1080")

	hasFree := false
	hasPaid := false
	for _, plan := range plans {
		if strings.Contains(strings.ToLower(plan.Name), "free") {
			hasFree = true
		} else {
			hasPaid = true
		}
	}

	usageType := "usage"
	if strings.Contains(allText, "minutes") {
		usageType = "minutes"
	} else if strings.Contains(allText, "credits") {
		usageType = "credits"
	}

	limitation := profile.Patterns.Limitation
	if limitation == "" {
		limitation = "{free_plan} includes {feature}"
	}
	action := profile.Patterns.Action
	if action == "" {
		action = "To {action}, you need {requirement}"
	}
	risk := profile.Patterns.Risk
	if risk == "" {
		risk = "Note that {action} may consume {resource}"
	}

	freePlan := "Entry plans"
	if hasFree {
		freePlan = "Free plans"
	}
	feature := "limited features"
	if has720p {
		feature = "720p exports"
	}
	upgrade := "higher quality"
	if hasWatermark {
		upgrade = "watermark removal"
	}

	first := strings.NewReplacer(
		"{free_plan}", freePlan,
		"{feature}", feature,
		"{upgrade}", upgrade,
		"{paid_plan}", "paid plans",
	).Replace(limitation)

	var second string
	if hasPaid {
		upgradeAction := "remove limitations"
		if has1080p {
			upgradeAction = "export at 1080p or 4K"
		}
		second = strings.NewReplacer(
			"{action}", upgradeAction,
			"{requirement}", "a paid plan",
		).Replace(action)
	} else {
		second = strings.NewReplacer(
			"{action}", "large projects",
			"{resource}", usageType,
		).Replace(risk)
	}

	third := strings.NewReplacer(
		"{action}", "re-generations and major edits",
		"{resource}", "additional usage credits or minutes",
	).Replace(risk)

	return []string{first, second, third}
}

// deriveTip picks a tip that does not repeat the bullets, preferring leftover
// candidate facts, then tone-matched fallbacks.
func deriveTip(candidates, bullets []string, profile StyleProfile, toolName string) string {
	tip := ""
	for _, fact := range candidates[min(3, len(candidates)):] {
		if len(fact) > MaxTipLen {
			continue
		}
		lower := strings.ToLower(fact)
		if isSemanticDuplicate(lower, bullets) {
			continue
		}
		forbidden := false
		for _, phrase := range profile.ForbiddenPhrases {
			if strings.Contains(lower, strings.ToLower(phrase)) {
				forbidden = true
				break
			}
		}
		if !forbidden {
			tip = fact
			break
		}
	}

	if tip == "" {
		tip = fallbackTip(profile, toolName)
	}

	// A tip that restates a bullet is noise, regenerate with another pattern
	for _, bullet := range bullets {
		if JaccardSimilarity(tip, bullet) >= tipJaccardCutoff {
			tip = regeneratedTip(profile, toolName)
			break
		}
	}
	return tip
}

func fallbackTip(profile StyleProfile, toolName string) string {
	if len(profile.UniqueTerms) > 0 {
		terms := profile.UniqueTerms
		if len(terms) > 2 {
			terms = terms[:2]
		}
		joined := strings.Join(terms, " and ")
		switch profile.Tone {
		case ToneTechnical:
			return "Verify " + joined + " compatibility before starting production workflows."
		case ToneCasual:
			return "Try a quick test with " + joined + " to see how they work for you."
		}
		return "Start with a small project to test " + joined + " limits before scaling up."
	}

	name := toolName
	if name == "" {
		name = "this tool"
	}
	if profile.Tone == ToneDirect {
		return "Check " + name + " plan limits and browser requirements before large projects."
	}
	return "Test " + name + " with a short project first to understand your actual usage patterns."
}

func regeneratedTip(profile StyleProfile, toolName string) string {
	name := toolName
	if name == "" {
		name = "this tool"
	}
	switch profile.Tone {
	case ToneTechnical:
		return "Review " + name + " documentation for browser compatibility and export settings."
	case ToneCasual:
		return "Quick tip: Check your " + name + " plan details before exporting long videos."
	}
	return "For best results with " + name + ", verify browser compatibility and plan limits before starting large projects."
}

// normalizeNote applies the final stability pass: strip leaked placeholders,
// collapse whitespace and truncate deterministically.
func normalizeNote(text string, maxLen int) string {
	normalized := strings.TrimSpace(text)
	if placeholderRe.MatchString(normalized) {
		normalized = strings.TrimSpace(placeholderRe.ReplaceAllString(normalized, ""))
		if len(normalized) < 10 {
			normalized = "Usage rules vary by plan. Check plan details for specific limits."
		}
	}
	normalized = strings.Join(strings.Fields(normalized), " ")
	if len(normalized) > maxLen {
		normalized = normalized[:maxLen-3] + "..."
	}
	return normalized
}

func sortPlansByName(plans []model.PricingPlan) []model.PricingPlan {
	sorted := make([]model.PricingPlan, len(plans))
	copy(sorted, plans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})
	return sorted
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]\s+`)

func splitSentences(text string) []string {
	var sentences []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func containsAny(lower string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

// isSemanticDuplicate reports whether lower shares four or more significant
// words with any existing entry.
func isSemanticDuplicate(lower string, existing []string) bool {
	words := significantWords(normalizeSentence(lower))
	for _, entry := range existing {
		entryWords := significantWords(normalizeSentence(entry))
		common := 0
		for _, w := range words {
			for _, e := range entryWords {
				if w == e {
					common++
					break
				}
			}
		}
		if common >= semanticOverlap {
			return true
		}
	}
	return false
}
