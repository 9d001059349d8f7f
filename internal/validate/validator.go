// Package validate checks the tool data store for structural problems before
// a publish: malformed slugs, out-of-range ratings, price strings that parse
// to nothing, starting prices that drifted from the plan list, and evidence
// links pointing at the wrong tool.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/pricelens/pricelens/internal/model"
	"github.com/pricelens/pricelens/internal/pricing"
)

// Issue severity
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue is one validation finding
type Issue struct {
	Slug     string `json:"slug"`
	Field    string `json:"field"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Result collects all findings for a validation run
type Result struct {
	Issues []Issue `json:"issues"`
}

// Errors returns only error-severity issues
func (r *Result) Errors() []Issue {
	var errs []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	return errs
}

// OK reports whether the run found no errors
func (r *Result) OK() bool {
	return len(r.Errors()) == 0
}

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Validator validates tool records
type Validator struct{}

// NewValidator creates a Validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks every tool in the store
func (v *Validator) Validate(tools []*model.Tool) *Result {
	result := &Result{}
	seenSlugs := make(map[string]bool, len(tools))

	for _, tool := range tools {
		v.checkSlug(tool, seenSlugs, result)
		v.checkRating(tool, result)
		v.checkPlans(tool, result)
		v.checkStartingPrice(tool, result)
	}
	return result
}

func (v *Validator) checkSlug(tool *model.Tool, seen map[string]bool, result *Result) {
	if !slugRe.MatchString(tool.Slug) {
		result.add(tool.Slug, "slug", SeverityError,
			fmt.Sprintf("slug %q is not lowercase-hyphenated", tool.Slug))
	}
	if seen[tool.Slug] {
		result.add(tool.Slug, "slug", SeverityError, "duplicate slug")
	}
	seen[tool.Slug] = true

	if tool.Name == "" {
		result.add(tool.Slug, "name", SeverityError, "name is empty")
	}
}

func (v *Validator) checkRating(tool *model.Tool, result *Result) {
	if tool.Rating < 0 || tool.Rating > 5 {
		result.add(tool.Slug, "rating", SeverityError,
			fmt.Sprintf("rating %.1f outside 0-5", tool.Rating))
	}
}

func (v *Validator) checkPlans(tool *model.Tool, result *Result) {
	for _, plan := range tool.PricingPlans {
		if plan.Name == "" {
			result.add(tool.Slug, "pricing_plans", SeverityError, "plan with empty name")
			continue
		}
		if !pricing.IsPaidPrice(plan.Price) {
			continue
		}
		// A paid price must carry a parseable amount
		if math.IsInf(pricing.PriceAmount(plan), 1) {
			result.add(tool.Slug, "pricing_plans", SeverityWarning,
				fmt.Sprintf("plan %q price %q has no numeric amount", plan.Name, plan.Price))
		}
	}
}

func (v *Validator) checkStartingPrice(tool *model.Tool, result *Result) {
	if tool.StartingPrice == "" {
		return
	}
	expected := pricing.StartingPrice(tool.PricingPlans)
	if expected == "" {
		result.add(tool.Slug, "starting_price", SeverityWarning,
			fmt.Sprintf("starting_price %q set but no paid plan exists", tool.StartingPrice))
		return
	}
	if tool.StartingPrice != expected {
		result.add(tool.Slug, "starting_price", SeverityWarning,
			fmt.Sprintf("starting_price %q does not match first paid plan (%s); run sync-prices", tool.StartingPrice, expected))
	}
}

// ValidateEvidenceLinks checks that a tool's evidence source URLs do not
// reference another tool's detail pages.
func (v *Validator) ValidateEvidenceLinks(slug string, urls []string) *Result {
	result := &Result{}
	for _, u := range urls {
		if !strings.HasPrefix(u, "/tool/") {
			continue
		}
		rest := strings.TrimPrefix(u, "/tool/")
		pathSlug := strings.SplitN(rest, "/", 2)[0]
		if pathSlug != "" && pathSlug != slug {
			result.add(slug, "evidence_links", SeverityError,
				fmt.Sprintf("link %q references tool %q", u, pathSlug))
		}
	}
	return result
}

func (r *Result) add(slug, field, severity, message string) {
	r.Issues = append(r.Issues, Issue{Slug: slug, Field: field, Severity: severity, Message: message})
}
