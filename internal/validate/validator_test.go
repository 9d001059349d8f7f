package validate

import (
	"strings"
	"testing"

	"github.com/pricelens/pricelens/internal/model"
)

func TestValidate_CleanStore(t *testing.T) {
	tools := []*model.Tool{
		{
			Slug:          "clipforge",
			Name:          "ClipForge",
			Rating:        4.5,
			StartingPrice: "$29/mo",
			PricingPlans: []model.PricingPlan{
				{Name: "Free", Price: "Free"},
				{Name: "Pro", Price: "$29", Period: "/mo"},
			},
		},
	}

	result := NewValidator().Validate(tools)
	if !result.OK() {
		t.Errorf("clean store should validate, got %+v", result.Issues)
	}
	if len(result.Issues) != 0 {
		t.Errorf("expected no issues, got %+v", result.Issues)
	}
}

func TestValidate_Slug(t *testing.T) {
	tests := []struct {
		name string
		slug string
		ok   bool
	}{
		{"lowercase hyphenated", "clip-forge-2", true},
		{"uppercase", "ClipForge", false},
		{"underscore", "clip_forge", false},
		{"leading hyphen", "-clipforge", false},
		{"trailing hyphen", "clipforge-", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewValidator().Validate([]*model.Tool{{Slug: tt.slug, Name: "X"}})
			if got := result.OK(); got != tt.ok {
				t.Errorf("slug %q valid = %v, want %v (%+v)", tt.slug, got, tt.ok, result.Issues)
			}
		})
	}
}

func TestValidate_DuplicateSlug(t *testing.T) {
	tools := []*model.Tool{
		{Slug: "clipforge", Name: "ClipForge"},
		{Slug: "clipforge", Name: "ClipForge Again"},
	}
	result := NewValidator().Validate(tools)
	if result.OK() {
		t.Error("duplicate slugs must fail")
	}
	if errs := result.Errors(); len(errs) != 1 || errs[0].Message != "duplicate slug" {
		t.Errorf("errors = %+v", errs)
	}
}

func TestValidate_Rating(t *testing.T) {
	result := NewValidator().Validate([]*model.Tool{{Slug: "clipforge", Name: "X", Rating: 5.5}})
	if result.OK() {
		t.Error("rating above 5 must fail")
	}
	if errs := result.Errors(); len(errs) != 1 || errs[0].Field != "rating" {
		t.Errorf("errors = %+v", errs)
	}
}

func TestValidate_Plans(t *testing.T) {
	tools := []*model.Tool{
		{
			Slug: "clipforge",
			Name: "ClipForge",
			PricingPlans: []model.PricingPlan{
				{Name: "", Price: "$9"},
				{Name: "Pro", Price: "$TBD"},
			},
		},
	}
	result := NewValidator().Validate(tools)

	if errs := result.Errors(); len(errs) != 1 || errs[0].Message != "plan with empty name" {
		t.Errorf("errors = %+v", errs)
	}

	warned := false
	for _, issue := range result.Issues {
		if issue.Severity == SeverityWarning && strings.Contains(issue.Message, "no numeric amount") {
			warned = true
		}
	}
	if !warned {
		t.Errorf("unparseable paid price should warn, got %+v", result.Issues)
	}
}

func TestValidate_StartingPriceDrift(t *testing.T) {
	tools := []*model.Tool{
		{
			Slug:          "clipforge",
			Name:          "ClipForge",
			StartingPrice: "$19/mo",
			PricingPlans: []model.PricingPlan{
				{Name: "Pro", Price: "$29", Period: "/mo"},
			},
		},
	}
	result := NewValidator().Validate(tools)
	if !result.OK() {
		t.Errorf("drift is a warning, not an error: %+v", result.Errors())
	}
	if len(result.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %+v", result.Issues)
	}
	issue := result.Issues[0]
	if issue.Field != "starting_price" || !strings.Contains(issue.Message, "sync-prices") {
		t.Errorf("issue = %+v", issue)
	}
}

func TestValidate_StartingPriceWithoutPaidPlan(t *testing.T) {
	tools := []*model.Tool{
		{
			Slug:          "clipforge",
			Name:          "ClipForge",
			StartingPrice: "$19/mo",
			PricingPlans:  []model.PricingPlan{{Name: "Free", Price: "Free"}},
		},
	}
	result := NewValidator().Validate(tools)
	if len(result.Issues) != 1 || !strings.Contains(result.Issues[0].Message, "no paid plan") {
		t.Errorf("issues = %+v", result.Issues)
	}
}

func TestValidateEvidenceLinks(t *testing.T) {
	v := NewValidator()

	result := v.ValidateEvidenceLinks("clipforge", []string{
		"/tool/clipforge/pricing",
		"/tool/vidmaker/pricing",
		"https://example.com/help",
		"/docs/export",
	})

	errs := result.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %+v", errs)
	}
	if !strings.Contains(errs[0].Message, `"vidmaker"`) {
		t.Errorf("error should name the leaked slug, got %q", errs[0].Message)
	}

	if clean := v.ValidateEvidenceLinks("clipforge", []string{"/tool/clipforge/"}); !clean.OK() {
		t.Errorf("own-tool links must pass, got %+v", clean.Issues)
	}
}
