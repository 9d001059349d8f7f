package pricing

import (
	"regexp"
	"strings"

	"github.com/pricelens/pricelens/internal/model"
)

// Tone classifies the writing voice used for a tool's generated copy
type Tone string

const (
	ToneDirect    Tone = "direct"
	ToneHelpful   Tone = "helpful"
	ToneTechnical Tone = "technical"
	ToneCasual    Tone = "casual"
)

// SentencePatterns are fill-in templates keyed by sentence role. Placeholders
// use {name} syntax and every placeholder must be replaced before rendering.
type SentencePatterns struct {
	Limitation string
	Action     string
	Risk       string
	Comparison string
}

// StyleProfile captures how usage-note copy for one tool should read
type StyleProfile struct {
	Tone             Tone
	Patterns         SentencePatterns
	ForbiddenPhrases []string // Stock template phrases the copy must avoid
	UniqueTerms      []string // Tool-specific terms the copy should carry
}

var uniqueTermPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(watermark\s+removal|re-export|gen-ai\s+studio)\b`),
	regexp.MustCompile(`(?i)\b(scorm|lms|saml|sso|scim|mfa)\b`),
	regexp.MustCompile(`(?i)\b(brand\s+kit|custom\s+branding|white\s+label)\b`),
	regexp.MustCompile(`(?i)\b(avatars?|voice\s+cloning|photo\s+avatar)\b`),
	regexp.MustCompile(`(?i)\b(subtitles?|tts|text[- ]to[- ]speech)\b`),
	regexp.MustCompile(`(?i)\b(api\s+access|integrations?)\b`),
	regexp.MustCompile(`(?i)\b(scenes?|scene\s+limits?)\b`),
	regexp.MustCompile(`(?i)\b(voices?|languages?)\b`),
}

var defaultForbiddenPhrases = []string{
	"free plan outputs include watermark",
	"free plans export at",
	"usage is based on minutes/credits",
	"exact rules vary by plan",
	"re-generations and major edits may consume",
}

// NewStyleProfile derives a style profile from a tool's characteristics.
// Pure function of its inputs: category, metrics, facts and plan text.
func NewStyleProfile(tool *model.Tool, plans []model.PricingPlan) StyleProfile {
	var allText []string
	if tool != nil {
		allText = append(allText, tool.KeyFacts...)
		allText = append(allText, tool.Highlights...)
		allText = append(allText, tool.StandOutMetrics...)
	}
	for _, plan := range plans {
		allText = append(allText, plan.FeatureTexts()...)
		if plan.Description != "" {
			allText = append(allText, plan.Description)
		}
	}
	combined := strings.ToLower(strings.Join(allText, " "))

	// Unique terms in pattern order keeps the result deterministic
	var uniqueTerms []string
	seen := make(map[string]bool)
	for _, pattern := range uniqueTermPatterns {
		for _, m := range pattern.FindAllString(combined, -1) {
			normalized := strings.TrimSpace(strings.ToLower(m))
			if !seen[normalized] {
				seen[normalized] = true
				uniqueTerms = append(uniqueTerms, normalized)
			}
		}
	}

	tone := ToneHelpful
	switch {
	case strings.Contains(combined, "enterprise") || strings.Contains(combined, "saml") || strings.Contains(combined, "scim"):
		tone = ToneTechnical
	case strings.Contains(combined, "simple") || strings.Contains(combined, "easy") || strings.Contains(combined, "quick"):
		tone = ToneCasual
	case strings.Contains(combined, "professional") || strings.Contains(combined, "business"):
		tone = ToneDirect
	}

	return StyleProfile{
		Tone:             tone,
		Patterns:         sentencePatternsFor(combined),
		ForbiddenPhrases: defaultForbiddenPhrases,
		UniqueTerms:      uniqueTerms,
	}
}

func sentencePatternsFor(combined string) SentencePatterns {
	switch {
	case strings.Contains(combined, "re-export"):
		return SentencePatterns{
			Limitation: "Free plans include {feature}, but {upgrade} requires {paid_plan}",
			Action:     "To {action}, you need to {requirement}",
			Risk:       "Note that {action} may consume additional {resource}",
		}
	case strings.Contains(combined, "minutes") || strings.Contains(combined, "credits"):
		return SentencePatterns{
			Limitation: "{free_plan} offers {limit}, while paid plans provide {upgrade}",
			Action:     "For {feature}, ensure you have sufficient {resource}",
			Risk:       "Be aware that {action} counts toward your {limit_type} quota",
		}
	case strings.Contains(combined, "avatars") || strings.Contains(combined, "cloning"):
		return SentencePatterns{
			Comparison: "Paid plans unlock {feature}, whereas free plans only include {basic}",
			Action:     "To access {feature}, upgrade to a plan that includes {requirement}",
			Risk:       "Keep in mind that {feature} usage is tracked separately",
		}
	case strings.Contains(combined, "scorm") || strings.Contains(combined, "lms"):
		return SentencePatterns{
			Comparison: "Enterprise plans feature {feature}, while standard plans offer {basic}",
			Action:     "To enable {feature}, select a plan with {requirement}",
			Risk:       "Important: {feature} requires {condition}",
		}
	}
	return SentencePatterns{
		Limitation: "{free_plan} includes {feature}, but {upgrade} needs {paid_plan}",
		Action:     "To use {feature}, you must have {requirement}",
		Risk:       "Remember that {action} uses {resource}",
	}
}
