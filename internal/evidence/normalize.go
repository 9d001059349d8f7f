// Package evidence loads and normalizes per-tool evidence records: short
// factual nuggets scraped from a tool's own pages. Normalization is a fixed,
// order-sensitive pipeline; running it twice over its own output changes
// nothing.
package evidence

import (
	"context"
	"regexp"
	"strings"

	"github.com/pricelens/pricelens/internal/model"
	"github.com/pricelens/pricelens/internal/translate"
)

// Pipeline order, each step feeding the next:
//  1. extract bare URLs from markdown-formatted link text
//  2. translate non-English fragments (pluggable, noop in the serving path)
//  3. drop pricing/discount nuggets
//  4. deduplicate by normalized text
//  5. preserve pre-existing conflictGroup tags, first per group wins
//  6. fill derived fields (hasNumber, keywords) and metadata
//
// Dedup must run after translation: translation can make two nuggets
// textually identical.

var mdLinkRe = regexp.MustCompile(`^\[(https?://\S+)\]\((https?://\S+)\)$`)

// cleanURL unwraps markdown link syntax: [https://x](https://y) -> https://y
func cleanURL(url string) string {
	if m := mdLinkRe.FindStringSubmatch(url); m != nil {
		return m[2]
	}
	return url
}

var (
	priceAmountTextRe = regexp.MustCompile(`\$\d+`)
	discountRe        = regexp.MustCompile(`(?i)save\s+\d+|\d+%\s*off|discount|coupon`)
	priceKeywordRe    = regexp.MustCompile(`(?i)price|cost|subscription\s*(fee|plan)`)
	billingPeriodRe   = regexp.MustCompile(`(?i)/(month|year)\b`)
)

// isPriceRelated reports whether a nugget is about pricing or discounts.
// A billing period alone is not enough; it must pair with a price keyword.
func isPriceRelated(text string) bool {
	if priceAmountTextRe.MatchString(text) || discountRe.MatchString(text) {
		return true
	}
	return billingPeriodRe.MatchString(text) && priceKeywordRe.MatchString(text)
}

var trailingPunctRe = regexp.MustCompile(`[.,;:!?]+$`)

// normalizeForDedup lowercases, trims, strips trailing punctuation and
// collapses whitespace so near-identical nuggets collapse to one key.
func normalizeForDedup(text string) string {
	text = trailingPunctRe.ReplaceAllString(strings.TrimSpace(strings.ToLower(text)), "")
	return strings.Join(strings.Fields(text), " ")
}

var unitRe = regexp.MustCompile(`(?i)px|kb|mb|gb|min|sec|hour|day|week|month|year`)

func hasNumberOrUnit(text string) bool {
	return strings.ContainsAny(text, "0123456789") || unitRe.MatchString(text)
}

var keywordStripRe = regexp.MustCompile(`[^\w\s]`)

// extractKeywords returns up to five distinct words longer than three chars
func extractKeywords(text string) []string {
	words := strings.Fields(keywordStripRe.ReplaceAllString(strings.ToLower(text), " "))
	seen := make(map[string]bool)
	var keywords []string
	for _, w := range words {
		if len(w) <= 3 || seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
		if len(keywords) == 5 {
			break
		}
	}
	return keywords
}

// themeAliases maps scraped theme labels to the canonical theme set
var themeAliases = map[string]model.Theme{
	"privacy":      model.ThemeSecurity,
	"limits":       model.ThemeUsage,
	"export":       model.ThemeExport,
	"formats":      model.ThemeExport,
	"workflow":     model.ThemeWorkflow,
	"editing":      model.ThemeEditing,
	"stock":        model.ThemeStock,
	"voice":        model.ThemeVoice,
	"avatar":       model.ThemeAvatar,
	"team":         model.ThemeTeam,
	"licensing":    model.ThemeLicensing,
	"models":       model.ThemeModels,
	"integrations": model.ThemeIntegrations,
	"support":      model.ThemeSupport,
	"general":      model.ThemeGeneral,
	"usage":        model.ThemeUsage,
	"security":     model.ThemeSecurity,
	"pricing":      model.ThemePricing,
	"commercial":   model.ThemeLicensing,
	"features":     model.ThemeGeneral,
	"other":        model.ThemeGeneral,
	"terms":        model.ThemeLicensing,
	"controls":     model.ThemeEditing,
	"inputs":       model.ThemeGeneral,
	"watermark":    model.ThemeExport,
}

func mapTheme(raw string) model.Theme {
	if theme, ok := themeAliases[strings.ToLower(raw)]; ok {
		return theme
	}
	return model.ThemeGeneral
}

// hardFactsToNuggets converts field/value dossiers to the nugget shape
func hardFactsToNuggets(facts []model.RawHardFact) []model.RawNugget {
	nuggets := make([]model.RawNugget, 0, len(facts))
	for _, fact := range facts {
		nugget := model.RawNugget{
			Text:       fact.Value,
			Theme:      "general",
			SourceType: "faq",
			Confidence: model.ConfidenceHigh,
		}
		if len(fact.Sources) > 0 {
			nugget.SourceURL = fact.Sources[0].URL
			if fact.Sources[0].Type != "" {
				nugget.SourceType = fact.Sources[0].Type
			}
		}
		nuggets = append(nuggets, nugget)
	}
	return nuggets
}

// pageEvidenceToNuggets flattens per-page nugget groups
func pageEvidenceToNuggets(pages []model.RawPageEvidence) []model.RawNugget {
	var nuggets []model.RawNugget
	for _, page := range pages {
		nuggets = append(nuggets, page.Nuggets...)
	}
	return nuggets
}

// Normalize runs the full cleaning pipeline over a raw evidence record.
// Missing or odd-shaped input degrades to an empty record, never an error.
func Normalize(ctx context.Context, raw model.RawEvidence, slug string, translator translate.Translator) model.Evidence {
	if translator == nil {
		translator = translate.Noop{}
	}

	effectiveSlug := firstNonEmpty(raw.Slug, raw.Tool, linkIndexSlug(raw.LinkIndex), slug)
	lastUpdated := firstNonEmpty(raw.LastUpdated, raw.CollectedAt, linkIndexCapturedAt(raw.LinkIndex))

	rawNuggets := raw.Nuggets
	if rawNuggets == nil {
		if len(raw.HardFacts) > 0 {
			rawNuggets = hardFactsToNuggets(raw.HardFacts)
		} else if len(raw.PageEvidence) > 0 {
			rawNuggets = pageEvidenceToNuggets(raw.PageEvidence)
		}
	}

	// Step 1: URL cleaning
	texts := make([]string, 0, len(rawNuggets))
	for _, n := range rawNuggets {
		texts = append(texts, cleanURL(n.Text))
	}

	// Step 2: translation. On provider failure the original texts stand:
	// bad translation must never drop evidence.
	if translated, err := translator.Translate(ctx, texts); err == nil && len(translated) == len(texts) {
		texts = translated
	}

	// Step 3: price filtering. Step 4-5: dedupe and conflict resolution.
	// Step 6: derived fields.
	seenText := make(map[string]bool)
	seenGroup := make(map[string]bool)
	var nuggets []model.Nugget
	for i, rawNugget := range rawNuggets {
		text := strings.TrimSpace(texts[i])
		if text == "" || isPriceRelated(text) {
			continue
		}

		if rawNugget.ConflictGroup != "" {
			// Keep the first nugget per conflict group, drop the rest
			if seenGroup[rawNugget.ConflictGroup] {
				continue
			}
			seenGroup[rawNugget.ConflictGroup] = true
		} else {
			key := normalizeForDedup(text)
			if seenText[key] {
				continue
			}
			seenText[key] = true
		}

		confidence := rawNugget.Confidence
		if confidence == "" {
			confidence = model.ConfidenceHigh
		}
		capturedAt := rawNugget.CapturedAt
		if capturedAt == "" {
			capturedAt = lastUpdated
		}

		nuggets = append(nuggets, model.Nugget{
			Text:          text,
			Theme:         mapTheme(rawNugget.Theme),
			SourceURL:     cleanURL(firstNonEmpty(rawNugget.SourceURL, rawNugget.PageURL)),
			SourceType:    firstNonEmpty(rawNugget.SourceType, "help"),
			CapturedAt:    capturedAt,
			HasNumber:     hasNumberOrUnit(text),
			Keywords:      extractKeywords(text),
			Confidence:    confidence,
			ConflictGroup: rawNugget.ConflictGroup,
		})
	}

	return model.Evidence{
		Slug:        effectiveSlug,
		LastUpdated: lastUpdated,
		Sources:     mapSources(raw),
		Nuggets:     nuggets,
		Metadata:    buildMetadata(nuggets),
	}
}

// mapSources picks one canonical URL per source page type
func mapSources(raw model.RawEvidence) model.Sources {
	sources := model.Sources{}
	first := func(key string) string {
		if list, ok := raw.Sources[key]; ok && len(list) > 0 {
			return cleanURL(list[0])
		}
		return ""
	}

	sources.Pricing = first("pricing")
	sources.Features = first("featuresIndex")
	sources.Help = first("help")
	sources.FAQ = first("faq")
	sources.Terms = first("terms")
	sources.Docs = first("help")

	if sources.Features == "" && raw.LinkIndex != nil && len(raw.LinkIndex.FeatureURLs) > 0 {
		sources.Features = cleanURL(raw.LinkIndex.FeatureURLs[0])
	}
	return sources
}

func buildMetadata(nuggets []model.Nugget) model.Metadata {
	var themes []model.Theme
	seen := make(map[model.Theme]bool)
	minConfidence := model.ConfidenceHigh
	for _, n := range nuggets {
		if !seen[n.Theme] {
			seen[n.Theme] = true
			themes = append(themes, n.Theme)
		}
		switch n.Confidence {
		case model.ConfidenceLow:
			minConfidence = model.ConfidenceLow
		case model.ConfidenceMedium:
			if minConfidence == model.ConfidenceHigh {
				minConfidence = model.ConfidenceMedium
			}
		}
	}
	return model.Metadata{
		TotalNuggets:  len(nuggets),
		ThemesCovered: themes,
		MinConfidence: minConfidence,
	}
}

// Empty returns the sentinel record for tools without evidence
func Empty(slug string) model.Evidence {
	return model.Evidence{
		Slug:     slug,
		Metadata: model.Metadata{MinConfidence: model.ConfidenceHigh},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func linkIndexSlug(idx *model.RawLinkIndex) string {
	if idx == nil {
		return ""
	}
	return idx.Slug
}

func linkIndexCapturedAt(idx *model.RawLinkIndex) string {
	if idx == nil {
		return ""
	}
	return idx.CapturedAt
}
