package collect

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pricelens/pricelens/internal/model"
	"golang.org/x/net/html"
)

// Extraction limits. Nuggets are short complete sentences; fragments and
// marketing copy are dropped before they reach the evidence files.
const (
	minNuggetLen    = 25
	maxNuggetLen    = 160
	maxTotalNuggets = 30
	minSentenceWords = 8
)

// sourcePriority ranks source page types for dedupe: when the same fact
// appears on two pages, the more authoritative page wins.
var sourcePriority = map[string]int{
	"pricing":  100,
	"help":     90,
	"docs":     85,
	"faq":      80,
	"features": 70,
	"terms":    50,
	"blog":     40,
	"privacy":  30,
	"examples": 20,
}

func priorityOf(sourceType string) int {
	if p, ok := sourcePriority[sourceType]; ok {
		return p
	}
	return 10
}

var footerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)copyright`),
	regexp.MustCompile(`(?i)privacy policy`),
	regexp.MustCompile(`(?i)terms of (service|use)`),
	regexp.MustCompile(`(?i)cookie`),
	regexp.MustCompile(`(?i)all rights reserved`),
	regexp.MustCompile(`(?i)sign\s*(in|up)`),
	regexp.MustCompile(`(?i)get started`),
	regexp.MustCompile(`(?i)about us`),
	regexp.MustCompile(`(?i)contact us`),
	regexp.MustCompile(`(?i)subscribe`),
	regexp.MustCompile(`(?i)newsletter`),
	regexp.MustCompile(`(?i)affiliate`),
}

// pricingPatterns drop price quotes from pricing pages; dollar amounts are
// volatile and the plan data store owns them
var pricingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)per year`),
	regexp.MustCompile(`(?i)starts? (at|from)`),
	regexp.MustCompile(`(?i)free\s*(?:trial|plan)?$`),
}

var marketingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)save\s+\d+`),
	regexp.MustCompile(`(?i)stop wasting`),
	regexp.MustCompile(`\$\d+`),
	regexp.MustCompile(`(?i)hours? of effort`),
	regexp.MustCompile(`(?i)per month`),
	regexp.MustCompile(`(?i)% off`),
	regexp.MustCompile(`(?i)start (free|now)`),
	regexp.MustCompile(`(?i)no credit card`),
	regexp.MustCompile(`(?i)\broi\b`),
}

// termsKeywords gate terms/privacy pages: legal boilerplate is endless, only
// sentences touching these concerns are worth keeping
var termsKeywords = []string{
	"refund", "cancel", "renewal", "trial", "commercial",
	"license", "licensing", "ownership", "watermark",
	"privacy", "data", "retention", "training",
	"gdpr", "ccpa", "consent", "opt-out",
}

var sentenceSignals = []string{
	"supports", "includes", "up to", "requires", "expires",
	"refund", "cancel", "provides", "offers", "allows",
	"plan", "feature", "limit", "maximum", "minimum",
	"export", "watermark", "resolution", "duration",
	"minutes", "voices", "languages",
}

var fieldKeywords = []string{
	"minutes", "credits", "hours", "days", "months",
	"720p", "1080p", "4k", "2160p", "resolution",
	"watermark", "export", "voices", "languages", "dialects",
	"commercial", "rights", "video", "audio", "mp4", "mov",
}

var (
	digitRe         = regexp.MustCompile(`\d`)
	leadingMarkRe   = regexp.MustCompile(`^[\d.\-*•▸▶\]\s]+`)
	fragmentOnlyRe  = regexp.MustCompile(`^[,;.\-\d\s]+$`)
	trailingCommaRe = regexp.MustCompile(`[,:]$`)
	durationRe      = regexp.MustCompile(`(?i)videos?\s*up\s*to\s*(\d+)\s*minutes|max(?:imum)?\s*duration\s*(\d+)\s*minutes`)
	allowanceRe     = regexp.MustCompile(`(?i)(\d+(?:,\d{3})*)\s*minutes?\s*(?:of\s*)?credits?\s*per\s*(month|year)`)
)

var themeRules = []struct {
	re    *regexp.Regexp
	theme model.Theme
}{
	{regexp.MustCompile(`(?i)watermark|720p|1080p|4k|2160p|mp4|mov|srt|vtt|export|resolution|fps`), model.ThemeExport},
	{regexp.MustCompile(`(?i)commercial|non-commercial|license|licensing|rights|resale`), model.ThemeLicensing},
	{regexp.MustCompile(`(?i)refund|money-back|cancel|billing|renewal|expire|rollover`), model.ThemePricing},
	{regexp.MustCompile(`(?i)minutes|quota|limit|per month|per week|per year`), model.ThemeUsage},
	{regexp.MustCompile(`(?i)\bsoc\b|\bsso\b|scim|pci|security|compliance`), model.ThemeSecurity},
	{regexp.MustCompile(`(?i)\bapi\b|webhook|zapier|integration|batch`), model.ThemeWorkflow},
	{regexp.MustCompile(`(?i)voice|cloning|\btts\b|languages|dialects`), model.ThemeVoice},
}

func classifyTheme(text string) model.Theme {
	for _, rule := range themeRules {
		if rule.re.MatchString(text) {
			return rule.theme
		}
	}
	return model.ThemeGeneral
}

// Extractor turns page HTML into raw evidence nuggets
type Extractor struct {
	now func() time.Time
}

// NewExtractor creates an Extractor. now may be nil for the wall clock.
func NewExtractor(now func() time.Time) *Extractor {
	if now == nil {
		now = time.Now
	}
	return &Extractor{now: now}
}

// Extract pulls candidate nuggets from one page. sourceType is the page's
// role (pricing, help, faq, terms, features).
func (e *Extractor) Extract(pageHTML, sourceURL, sourceType string) []model.RawNugget {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}

	capturedAt := e.now().UTC().Format(time.RFC3339)
	var nuggets []model.RawNugget

	admit := func(text string) {
		if n, ok := buildNugget(text, sourceURL, sourceType, capturedAt); ok {
			nuggets = append(nuggets, n)
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p":
				admit(nodeText(n))
				return
			case "li":
				text := nodeText(n)
				// List items are noisy; require an entity
				if len(text) >= 20 && (containsKeyword(text, fieldKeywords) || digitRe.MatchString(text)) {
					admit(text)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return Dedupe(nuggets)
}

func buildNugget(text, sourceURL, sourceType, capturedAt string) (model.RawNugget, bool) {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) < minNuggetLen {
		return model.RawNugget{}, false
	}
	if (sourceType == "terms" || sourceType == "privacy") && !containsKeyword(text, termsKeywords) {
		return model.RawNugget{}, false
	}
	if shouldDrop(text, sourceType) || isFragment(text) || !isCompleteSentence(text) {
		return model.RawNugget{}, false
	}

	cleaned := cleanNuggetText(text)
	if len(cleaned) < minNuggetLen {
		return model.RawNugget{}, false
	}

	// Recognized quantitative claims get a canonical phrasing so the same
	// allowance dedupes across differently worded pages.
	if m := durationRe.FindStringSubmatch(cleaned); m != nil {
		minutes := m[1]
		if minutes == "" {
			minutes = m[2]
		}
		cleaned = "Max video duration: " + minutes + " minutes"
	} else if m := allowanceRe.FindStringSubmatch(cleaned); m != nil {
		cleaned = "Usage allowance: " + strings.ReplaceAll(m[1], ",", "") + " minutes/" + strings.ToLower(m[2])
	}

	confidence := model.ConfidenceMedium
	if digitRe.MatchString(cleaned) {
		confidence = model.ConfidenceHigh
	}

	return model.RawNugget{
		Text:       cleaned,
		Theme:      string(classifyTheme(cleaned)),
		SourceURL:  sourceURL,
		SourceType: sourceType,
		CapturedAt: capturedAt,
		Confidence: confidence,
	}, true
}

func shouldDrop(text, sourceType string) bool {
	for _, re := range footerPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	for _, re := range marketingPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	if sourceType == "pricing" {
		for _, re := range pricingPatterns {
			if re.MatchString(text) {
				return true
			}
		}
	}
	return len(text) < 15 && !digitRe.MatchString(text)
}

func isFragment(text string) bool {
	return len(text) < 20 ||
		fragmentOnlyRe.MatchString(text) ||
		trailingCommaRe.MatchString(text)
}

func isCompleteSentence(text string) bool {
	if len(strings.Fields(text)) < minSentenceWords {
		return false
	}
	return containsKeyword(text, sentenceSignals)
}

func cleanNuggetText(text string) string {
	cleaned := leadingMarkRe.ReplaceAllString(text, "")
	if len(cleaned) > maxNuggetLen {
		truncated := cleaned[:maxNuggetLen]
		if idx := strings.LastIndex(truncated, " "); idx > maxNuggetLen*7/10 {
			truncated = truncated[:idx]
		}
		cleaned = strings.TrimSpace(truncated)
	}
	return cleaned
}

func containsKeyword(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

var dedupeStripRe = regexp.MustCompile(`[^\w\s]`)

func dedupeKey(n model.RawNugget) string {
	text := strings.ToLower(n.Text)
	text = dedupeStripRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "upto", "up to")
	return strings.Join(strings.Fields(text), " ") + "::" + n.Theme
}

// Dedupe collapses nuggets that say the same thing, keeping the copy from
// the most authoritative source page. Ordering within a priority tier is
// preserved.
func Dedupe(nuggets []model.RawNugget) []model.RawNugget {
	sorted := make([]model.RawNugget, len(nuggets))
	copy(sorted, nuggets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return priorityOf(sorted[i].SourceType) > priorityOf(sorted[j].SourceType)
	})

	seen := make(map[string]bool, len(sorted))
	deduped := sorted[:0]
	for _, n := range sorted {
		key := dedupeKey(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, n)
	}
	return deduped
}

// Select scores and caps the deduped nuggets. High-confidence, numeric, and
// preferred-theme nuggets rank first; ties break on a stable text key so the
// output is deterministic.
func Select(nuggets []model.RawNugget, preferredThemes []model.Theme, maxTotal int) []model.RawNugget {
	if maxTotal <= 0 {
		maxTotal = maxTotalNuggets
	}
	preferred := make(map[string]bool, len(preferredThemes))
	for _, t := range preferredThemes {
		preferred[string(t)] = true
	}

	type scored struct {
		nugget model.RawNugget
		score  int
		key    string
	}
	ranked := make([]scored, 0, len(nuggets))
	for _, n := range nuggets {
		score := priorityOf(n.SourceType)
		switch n.Confidence {
		case model.ConfidenceHigh:
			score += 10
		case model.ConfidenceMedium:
			score += 5
		}
		if digitRe.MatchString(n.Text) {
			score += 3
		}
		if preferred[n.Theme] {
			score += 5
		}
		ranked = append(ranked, scored{n, score, n.SourceURL + "-" + n.Theme + "-" + n.Text})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].key < ranked[j].key
	})

	if len(ranked) > maxTotal {
		ranked = ranked[:maxTotal]
	}
	selected := make([]model.RawNugget, len(ranked))
	for i, s := range ranked {
		selected[i] = s.nugget
	}
	return selected
}
