package quality

import (
	"testing"

	"github.com/pricelens/pricelens/internal/model"
)

func nuggetsOf(count int, theme model.Theme) []model.Nugget {
	var nuggets []model.Nugget
	for i := 0; i < count; i++ {
		nuggets = append(nuggets, model.Nugget{Text: "fact", Theme: theme})
	}
	return nuggets
}

func TestEvaluate_StrongRecord(t *testing.T) {
	ev := model.Evidence{
		Slug:    "clipforge",
		Nuggets: nuggetsOf(15, model.ThemeUsage),
		Sources: model.Sources{
			Pricing:  "https://x.io/pricing",
			Features: "https://x.io/features",
			Help:     "https://x.io/help",
		},
		Metadata: model.Metadata{
			TotalNuggets: 15,
			ThemesCovered: []model.Theme{
				model.ThemePricing, model.ThemeUsage, model.ThemeExport,
				model.ThemeLicensing, model.ThemeSecurity, model.ThemeModels,
			},
			MinConfidence: model.ConfidenceHigh,
		},
	}

	report := NewGate().Evaluate(ev)

	// 40 volume + 30 coverage + 20 confidence + 6 sources
	if report.Score != 96 {
		t.Errorf("score = %d, want 96", report.Score)
	}
	if !report.Pass {
		t.Error("a strong record should pass")
	}
	if len(report.Signals) != 4 {
		t.Errorf("expected 4 signals, got %d", len(report.Signals))
	}
	for _, s := range report.Signals {
		if s.Severity != SeverityInfo {
			t.Errorf("signal %s severity = %q, want info", s.Type, s.Severity)
		}
	}
}

func TestEvaluate_EmptyRecord(t *testing.T) {
	report := NewGate().Evaluate(model.Evidence{Slug: "hollow", Metadata: model.Metadata{MinConfidence: model.ConfidenceHigh}})

	// 0 volume + 0 coverage + 20 confidence + 0 sources
	if report.Score != 20 {
		t.Errorf("score = %d, want 20", report.Score)
	}
	if report.Pass {
		t.Error("an empty record must not pass")
	}

	critical := 0
	for _, s := range report.Signals {
		if s.Severity == SeverityCritical {
			critical++
		}
	}
	if critical != 3 {
		t.Errorf("expected 3 critical signals, got %d: %+v", critical, report.Signals)
	}
}

func TestEvaluate_ThinRecord(t *testing.T) {
	ev := model.Evidence{
		Slug:    "thin",
		Nuggets: nuggetsOf(6, model.ThemeUsage),
		Sources: model.Sources{Help: "https://x.io/help"},
		Metadata: model.Metadata{
			TotalNuggets:  6,
			ThemesCovered: []model.Theme{model.ThemeUsage, model.ThemeExport},
			MinConfidence: model.ConfidenceMedium,
		},
	}

	report := NewGate().Evaluate(ev)

	// 24 volume + 10 coverage + 10 confidence + 2 sources
	if report.Score != 46 {
		t.Errorf("score = %d, want 46", report.Score)
	}
	if report.Pass {
		t.Error("a thin record should fail the gate")
	}

	bySeverity := map[string]int{}
	for _, s := range report.Signals {
		bySeverity[s.Severity]++
	}
	if bySeverity[SeverityWarning] != 3 {
		t.Errorf("expected warnings for volume, coverage and sources, got %+v", report.Signals)
	}
}

func TestScoreVolume_Cap(t *testing.T) {
	g := NewGate()
	score, signal := g.scoreVolume(model.Evidence{Nuggets: nuggetsOf(50, model.ThemeGeneral)})
	if score != 40 {
		t.Errorf("volume score caps at 40, got %d", score)
	}
	if signal.Severity != SeverityInfo {
		t.Errorf("severity = %q", signal.Severity)
	}
}

func TestScoreConfidence_LowFloor(t *testing.T) {
	g := NewGate()
	score, signal := g.scoreConfidence(model.Evidence{Metadata: model.Metadata{MinConfidence: model.ConfidenceLow}})
	if score != 0 {
		t.Errorf("low floor scores 0, got %d", score)
	}
	if signal.Severity != SeverityWarning {
		t.Errorf("severity = %q", signal.Severity)
	}
}
