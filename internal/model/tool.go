package model

// Tool represents a reviewed product record, the root entity of the data store
type Tool struct {
	ID               string        `json:"id"`
	Slug             string        `json:"slug"`                // URL-safe unique key
	Name             string        `json:"name"`
	LogoURL          string        `json:"logo_url,omitempty"`
	Tagline          string        `json:"tagline,omitempty"`
	ShortDescription string        `json:"short_description,omitempty"`
	BestFor          string        `json:"best_for,omitempty"`  // e.g. "YouTube Beginners"
	AffiliateLink    string        `json:"affiliate_link,omitempty"`
	Category         string        `json:"category,omitempty"`
	Pricing          PricingInfo   `json:"pricing"`
	HasFreeTrial     bool          `json:"has_free_trial"`
	PricingModel     string        `json:"pricing_model,omitempty"`
	StartingPrice    string        `json:"starting_price,omitempty"`
	Rating           float64       `json:"rating"`              // 0-5
	Features         []string      `json:"features,omitempty"`
	Pros             []string      `json:"pros,omitempty"`
	Cons             []string      `json:"cons,omitempty"`
	Tags             []string      `json:"tags,omitempty"`
	KeyFacts         []string      `json:"key_facts,omitempty"`
	Highlights       []string      `json:"highlights,omitempty"`
	StandOutMetrics  []string      `json:"stand_out_metrics,omitempty"`
	PricingPlans     []PricingPlan `json:"pricing_plans,omitempty"`
	ReviewContent    string        `json:"review_content,omitempty"`
	FAQs             []FAQ         `json:"faqs,omitempty"`
}

// PricingInfo summarizes a tool's pricing model
type PricingInfo struct {
	FreePlan      bool   `json:"free_plan"`
	StartingPrice string `json:"starting_price,omitempty"`
	Currency      string `json:"currency,omitempty"`
}

// FAQ is a question/answer pair attached to a tool
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PricingPlan belongs to exactly one Tool. Plans are evaluated in array order.
type PricingPlan struct {
	Name          string        `json:"name"`
	Price         string        `json:"price,omitempty"`  // Free-text, e.g. "$28", "Free", "Custom"
	Period        string        `json:"period,omitempty"` // e.g. "/mo"
	Description   string        `json:"description,omitempty"`
	Tagline       string        `json:"tagline,omitempty"`
	Badge         string        `json:"badge,omitempty"`
	RibbonText    string        `json:"ribbonText,omitempty"`
	IsPopular     bool          `json:"isPopular,omitempty"`
	CTAText       string        `json:"ctaText,omitempty"`
	UnitPriceNote string        `json:"unitPriceNote,omitempty"`
	Highlights    []string      `json:"highlights,omitempty"`
	FeatureItems  []FeatureItem `json:"featureItems,omitempty"`
	Features      []string      `json:"features,omitempty"`
}

// FeatureItem is a single feature bullet with optional availability marker
type FeatureItem struct {
	Text     string `json:"text"`
	Included bool   `json:"included,omitempty"`
}

// FeatureTexts concatenates highlights, featureItems and features in that order.
// The concatenation order is load-bearing for reason derivation.
func (p PricingPlan) FeatureTexts() []string {
	texts := make([]string, 0, len(p.Highlights)+len(p.FeatureItems)+len(p.Features))
	texts = append(texts, p.Highlights...)
	for _, item := range p.FeatureItems {
		texts = append(texts, item.Text)
	}
	texts = append(texts, p.Features...)
	return texts
}

// Recommendation is a derived, ephemeral badge for a pricing plan.
// It exists only for the duration of one render and is never persisted.
type Recommendation struct {
	PlanName string `json:"planName"`
	Reason   string `json:"reason"`   // <= 18 chars
	PlanSlug string `json:"planSlug"` // Scroll anchor, "plan-" + hyphenated name
}

// SnapshotPlan is a condensed bullet-point rendering of one pricing plan
type SnapshotPlan struct {
	Name    string   `json:"name"`
	Bullets []string `json:"bullets"`
}

// PricingSnapshot is the condensed paid-plan view used as text-generation input
type PricingSnapshot struct {
	Plans []SnapshotPlan `json:"plans"`
	Note  string         `json:"note,omitempty"`
}

// ComparisonRow is one feature row of a tool comparison table
type ComparisonRow struct {
	Feature string            `json:"feature"`
	Values  map[string]string `json:"values"`
}

// ComparisonTable contrasts several tools feature-by-feature
type ComparisonTable struct {
	Rows []ComparisonRow `json:"rows"`
}
