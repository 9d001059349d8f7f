package pricing

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pricelens/pricelens/internal/model"
)

// verdictStyle is one voice for the three-sentence verdict block
type verdictStyle struct {
	name string
	s1   []string // Positioning hooks
	s2   []string // Caution hooks
	s3   []string // Action hooks
}

// verdictStyles is the ordered style catalog. Order matters: the selector
// indexes into this slice, so reordering changes which tools get which voice.
var verdictStyles = []verdictStyle{
	{
		name: "Product",
		s1:   []string{"Best for", "Ideal for", "Built for"},
		s2:   []string{"Note that", "Keep in mind", "Heads up"},
		s3:   []string{"Start with", "Try", "Begin with"},
	},
	{
		name: "Review",
		s1:   []string{"Top choice for", "Highly rated for", "Standout choice for"},
		s2:   []string{"Consider that", "Be aware that", "Factor in that"},
		s3:   []string{"Test via", "Evaluate with", "Check out"},
	},
	{
		name: "Growth",
		s1:   []string{"Scales well for", "Accelerates", "Powers"},
		s2:   []string{"Remember", "Note that", "Be advised that"},
		s3:   []string{"Launch with", "Grow with", "Scale with"},
	},
	{
		name: "Risk",
		s1:   []string{"Choose this when", "Go with this if", "Select this for"},
		s2:   []string{"Skip if", "Avoid if", "Look elsewhere if"},
		s3:   []string{"Verify by", "Validate with", "Confirm with"},
	},
	{
		name: "Minimalist",
		s1:   []string{"Perfect for", "Good for", "Suited for"},
		s2:   []string{"Note:", "Limit:", "Restriction:"},
		s3:   []string{"Go for", "Pick", "Select"},
	},
	{
		name: "Enterprise",
		s1:   []string{"Enterprise-ready for", "Professional solution for", "Corporate choice for"},
		s2:   []string{"Key requirement:", "Please note:", "Prerequisite:"},
		s3:   []string{"Deploy via", "Implement with", "Onboard with"},
	},
}

// StyleSelector maps a slug to a style index. It must be a pure function:
// the verdict is rendered in two independent passes and any nondeterminism
// here would make them disagree.
type StyleSelector func(slug string) int

// DefaultStyleSelector hashes the slug with 32-bit overflow arithmetic and
// reduces it modulo the style count.
func DefaultStyleSelector(slug string) int {
	var hash int32
	for _, r := range slug {
		hash = (hash << 5) - hash + int32(r)
	}
	if hash < 0 {
		hash = -hash
	}
	return int(hash) % len(verdictStyles)
}

var verdictFactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(4k|1080p|720p)\b`),
	regexp.MustCompile(`(?i)\b\d+\s*(mins?|minutes?|hrs?|hours?|seconds?)\b`),
	regexp.MustCompile(`(?i)\b(watermark|no watermark)\b`),
	regexp.MustCompile(`(?i)\b\d+\s*(languages?|voices?|avatars?)\b`),
	regexp.MustCompile(`(?i)\b(scorm|sso|saml)\b`),
	regexp.MustCompile(`(?i)\bcredits?\s*expire\b`),
	regexp.MustCompile(`(?i)\b\d+\s*(gb|tb|mb)\b`),
	regexp.MustCompile(`(?i)\bunlimited\b`),
	regexp.MustCompile(`(?i)\b(seats?|users?|members?)\b`),
}

var verdictSplitRe = regexp.MustCompile(`[.,;]|\band\b`)

// extractVerdictFacts pulls distinct keyword/value phrases out of free text
func extractVerdictFacts(source string) []string {
	if source == "" {
		return nil
	}

	var facts []string
	for _, phrase := range verdictSplitRe.Split(source, -1) {
		clean := strings.TrimSpace(phrase)
		if len(clean) < 5 {
			continue
		}
		for _, pattern := range verdictFactPatterns {
			match := pattern.FindString(clean)
			if match == "" {
				continue
			}
			exists := false
			for _, f := range facts {
				if strings.Contains(f, match) || strings.Contains(clean, f) {
					exists = true
					break
				}
			}
			if !exists {
				facts = append(facts, clean)
			}
			break
		}
	}
	return facts
}

// comparisonContrasts finds rows of the comparison table where tools differ
func comparisonContrasts(table *model.ComparisonTable) []string {
	if table == nil {
		return nil
	}
	var findings []string
	for _, row := range table.Rows {
		if len(row.Values) == 0 {
			continue
		}
		// Iterate value columns in sorted key order: map order would break
		// the byte-identical output guarantee.
		keys := make([]string, 0, len(row.Values))
		for k := range row.Values {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		unique := make(map[string]bool)
		hasYes, hasNo := false, false
		interesting := ""
		for _, k := range keys {
			v := row.Values[k]
			unique[v] = true
			switch strings.ToLower(v) {
			case "yes", "true":
				hasYes = true
			case "no", "false":
				hasNo = true
			}
			if interesting == "" && strings.ContainsAny(v, "0123456789") {
				interesting = v
			}
		}
		if len(unique) <= 1 {
			continue
		}
		switch {
		case hasYes && hasNo:
			findings = append(findings, row.Feature+" availability")
		case interesting != "":
			findings = append(findings, row.Feature+" limits ("+interesting+")")
		default:
			findings = append(findings, row.Feature)
		}
	}
	return findings
}

var verdictCollisionKeywords = []string{"4k", "watermark", "languages", "scorm", "seats", "minutes", "hours", "credits"}

// factPicker hands out facts one at a time, refusing any fact whose numbers or
// key terms were already used, so the three sentences never repeat a signal.
type factPicker struct {
	used  []string
	table *model.ComparisonTable
}

var numberRe = regexp.MustCompile(`\d+`)

func (p *factPicker) pick(options []string, fallbackContext string) string {
	for _, fact := range options {
		lower := strings.ToLower(fact)
		if p.collides(lower) {
			continue
		}
		p.used = append(p.used, lower)
		return fact
	}

	for _, feat := range comparisonContrasts(p.table) {
		lower := strings.ToLower(feat)
		if !p.collides(lower) {
			p.used = append(p.used, lower)
			return "differences in " + feat
		}
	}

	switch fallbackContext {
	case "s1":
		return "video creation features"
	case "s2":
		return "specific plan limits"
	}
	return "a short-term project"
}

func (p *factPicker) collides(lower string) bool {
	numbers := numberRe.FindAllString(lower, -1)
	for _, used := range p.used {
		if used == lower {
			return true
		}
		for _, n := range numberRe.FindAllString(used, -1) {
			for _, m := range numbers {
				if n == m {
					return true
				}
			}
		}
		for _, k := range verdictCollisionKeywords {
			if strings.Contains(used, k) && strings.Contains(lower, k) {
				return true
			}
		}
	}
	return false
}

var leadingConnectorRe = regexp.MustCompile(`(?i)^(and|but|with|plus)\s+`)

func ensurePeriod(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasSuffix(text, ".") {
		return text
	}
	return text + "."
}

// GenerateVerdictText assembles the three-sentence verdict for a pricing page:
// positioning, caution, action. Pure function of its inputs; the style comes
// from selector(slug), so identical inputs yield byte-identical output.
func GenerateVerdictText(tool *model.Tool, plans []model.PricingPlan, toolName, toolSlug string, snapshotBullets []string, table *model.ComparisonTable, selector StyleSelector) string {
	if selector == nil {
		selector = DefaultStyleSelector
	}
	style := verdictStyles[selector(toolSlug)%len(verdictStyles)]

	var facts []string
	collect := func(list []string) {
		for _, item := range list {
			facts = append(facts, extractVerdictFacts(item)...)
		}
	}
	collect(snapshotBullets)
	if tool != nil {
		collect(tool.KeyFacts)
		collect(tool.Highlights)
	}
	var planFeatures []string
	for _, plan := range plans {
		planFeatures = append(planFeatures, plan.Features...)
		planFeatures = append(planFeatures, plan.Highlights...)
	}
	collect(planFeatures)

	picker := &factPicker{table: table}

	// Sentence 1: positioning
	factA := leadingConnectorRe.ReplaceAllString(picker.pick(facts, "s1"), "")
	hook1 := style.s1[len(toolSlug)%len(style.s1)]
	audience := "content creators"
	if tool != nil && tool.BestFor != "" {
		audience = tool.BestFor
	}
	sentence1 := ensurePeriod(hook1 + " " + audience + " seeking " + factA)

	// Sentence 2: caution, scanned from the end where plan details cluster
	reversed := make([]string, len(facts))
	for i, f := range facts {
		reversed[len(facts)-1-i] = f
	}
	factB := leadingConnectorRe.ReplaceAllString(picker.pick(reversed, "s2"), "")
	hook2 := style.s2[(len(toolSlug)+1)%len(style.s2)]

	var sentence2 string
	if style.name == "Risk" {
		if strings.ContainsAny(factB, "0123456789") {
			sentence2 = ensurePeriod(hook2 + " " + factB + " is insufficient for your needs")
		} else {
			sentence2 = ensurePeriod(hook2 + " you strictly require " + factB)
		}
	} else {
		switch {
		case strings.Contains(factB, "watermark"):
			sentence2 = ensurePeriod(hook2 + " " + factB + " applies to specific tiers")
		case strings.Contains(factB, "export"):
			sentence2 = ensurePeriod(hook2 + " " + factB + " restricts lower plans")
		default:
			sentence2 = ensurePeriod(hook2 + " access to " + factB + " depends on your tier")
		}
	}

	// Sentence 3: action
	hook3 := style.s3[(len(toolSlug)+2)%len(style.s3)]
	advice := "a monthly subscription before committing annually"
	for _, plan := range plans {
		if strings.EqualFold(strings.TrimSpace(plan.Price), "free") {
			advice = "the free plan to test the workflow"
			break
		}
	}
	if starting, ok := FirstPaidPlan(plans); ok && starting.Name != "" {
		advice = "the " + starting.Name + " to evaluate output quality"
	}
	sentence3 := ensurePeriod(hook3 + " " + advice)

	return sentence1 + " " + sentence2 + " " + sentence3
}
