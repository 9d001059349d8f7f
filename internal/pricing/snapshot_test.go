package pricing

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pricelens/pricelens/internal/model"
)

func TestSnapshot_PaidPlansOnly(t *testing.T) {
	plans := []model.PricingPlan{
		{Name: "Free", Price: "Free"},
		{Name: "Pro", Price: "$29", Features: []string{"4K export"}},
		{Name: "Enterprise", Price: "Custom"},
		{Name: "Custom Plan", Price: "$99"},
	}

	snapshot := Snapshot(plans, 3)

	if len(snapshot.Plans) != 1 {
		t.Fatalf("expected 1 snapshot plan, got %d: %+v", len(snapshot.Plans), snapshot.Plans)
	}
	if snapshot.Plans[0].Name != "Pro" {
		t.Errorf("plan name = %q, want Pro", snapshot.Plans[0].Name)
	}
}

func TestSnapshot_PlanLimit(t *testing.T) {
	var plans []model.PricingPlan
	for _, name := range []string{"Basic", "Standard", "Plus", "Pro", "Studio"} {
		plans = append(plans, model.PricingPlan{Name: name, Price: "$10"})
	}

	snapshot := Snapshot(plans, 3)
	if len(snapshot.Plans) != 4 {
		t.Errorf("expected the display set capped at 4 plans, got %d", len(snapshot.Plans))
	}

	snapshot = Snapshot(plans, 1)
	if len(snapshot.Plans) != 2 {
		t.Errorf("maxPlans 1 should keep 2 plans, got %d", len(snapshot.Plans))
	}
}

func TestSnapshot_Empty(t *testing.T) {
	snapshot := Snapshot(nil, 3)
	if len(snapshot.Plans) != 0 || snapshot.Note != "" {
		t.Errorf("expected empty snapshot, got %+v", snapshot)
	}
}

func TestSnapshot_PlanBullets(t *testing.T) {
	plans := []model.PricingPlan{
		{
			Name:  "Pro",
			Price: "$29",
			Features: []string{
				"Watermark removal",
				"4K export",
				"100 credits per month",
				"Commercial use license",
			},
		},
	}

	snapshot := Snapshot(plans, 3)
	if len(snapshot.Plans) != 1 {
		t.Fatalf("expected 1 plan, got %d", len(snapshot.Plans))
	}

	want := []string{
		"Watermark removal",
		"4K export quality",
		"100 credits per month",
		"Commercial use allowed",
	}
	if got := snapshot.Plans[0].Bullets; !reflect.DeepEqual(got, want) {
		t.Errorf("bullets = %v, want %v", got, want)
	}
}

func TestSnapshot_DefaultBullets(t *testing.T) {
	plans := []model.PricingPlan{
		{Name: "Starter", Price: "$9", Features: []string{"All templates"}},
	}

	snapshot := Snapshot(plans, 3)
	bullets := snapshot.Plans[0].Bullets

	want := []string{
		"No watermarks",
		"Higher export quality than free plan",
		"Commercial licensing available",
	}
	if !reflect.DeepEqual(bullets, want) {
		t.Errorf("bullets = %v, want %v", bullets, want)
	}
}

func TestSnapshot_Note(t *testing.T) {
	tests := []struct {
		name     string
		features []string
		want     string
	}{
		{
			name:     "edit warning when credits and edits appear",
			features: []string{"100 credits per month", "Regenerate scenes after edits"},
			want:     "Repeated edits may consume additional credits/minutes. Consider finalizing your script before generating.",
		},
		{
			name:     "generic note for plain minute limits",
			features: []string{"100 minutes per month"},
			want:     "Usage limits apply. Check your plan details for exact credit/minute allocations.",
		},
		{
			name:     "no note without usage vocabulary",
			features: []string{"All templates", "Priority support"},
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plans := []model.PricingPlan{{Name: "Pro", Price: "$29", Features: tt.features}}
			if got := Snapshot(plans, 3).Note; got != tt.want {
				t.Errorf("note = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSnapshotText(t *testing.T) {
	snapshot := model.PricingSnapshot{
		Plans: []model.SnapshotPlan{
			{Name: "Basic", Bullets: []string{"No watermarks", "720P export quality"}},
			{Name: "Pro", Bullets: []string{"4K export quality"}},
		},
	}

	got := SnapshotText(snapshot)
	want := "Basic: No watermarks. 720P export quality. Pro: 4K export quality."
	if got != want {
		t.Errorf("SnapshotText = %q, want %q", got, want)
	}

	if SnapshotText(model.PricingSnapshot{}) != "" {
		t.Error("empty snapshot should flatten to an empty string")
	}
}

func TestSnapshotText_Deterministic(t *testing.T) {
	plans := []model.PricingPlan{
		{Name: "Pro", Price: "$29", Features: []string{"Unlimited videos", "4K export", "Team collaboration"}},
	}
	first := SnapshotText(Snapshot(plans, 3))
	second := SnapshotText(Snapshot(plans, 3))
	if first != second {
		t.Errorf("identical inputs produced different text:\n  first:  %q\n  second: %q", first, second)
	}
	if !strings.Contains(first, "Pro: ") {
		t.Errorf("flattened text should carry the plan name, got %q", first)
	}
}
