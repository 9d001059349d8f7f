// Package quality scores normalized evidence records so maintenance runs can
// flag tools whose evidence is too thin or stale to back pricing-page claims.
package quality

import (
	"fmt"
	"math"

	"github.com/pricelens/pricelens/internal/model"
)

// Severity levels for diagnostic signals
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Signal types
const (
	SignalVolume     = "nugget_volume"
	SignalCoverage   = "theme_coverage"
	SignalConfidence = "confidence_floor"
	SignalSources    = "source_presence"
	SignalStaleness  = "staleness"
)

// Signal is one diagnostic finding about an evidence record
type Signal struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// Report is the scored quality assessment of one tool's evidence
type Report struct {
	Slug    string   `json:"slug"`
	Score   int      `json:"score"` // 0-100
	Pass    bool     `json:"pass"`
	Signals []Signal `json:"signals"`
}

// Expected nugget volume per tool. Below the floor the record cannot support
// a pricing page; the ceiling is the collector's own cap.
const (
	minNuggets = 10
	maxNuggets = 30
	passScore  = 50
)

// priorityThemes are the themes a pricing page actually draws on
var priorityThemes = []model.Theme{
	model.ThemePricing, model.ThemeUsage, model.ThemeExport,
	model.ThemeLicensing, model.ThemeSecurity, model.ThemeModels,
}

// Gate scores evidence records
type Gate struct{}

// NewGate creates a Gate
func NewGate() *Gate {
	return &Gate{}
}

// Evaluate scores one evidence record across volume, theme coverage,
// confidence, and source presence.
func (g *Gate) Evaluate(ev model.Evidence) Report {
	var signals []Signal

	volumeScore, volumeSignal := g.scoreVolume(ev)
	signals = append(signals, volumeSignal)

	coverageScore, coverageSignal := g.scoreCoverage(ev)
	signals = append(signals, coverageSignal)

	confidenceScore, confidenceSignal := g.scoreConfidence(ev)
	signals = append(signals, confidenceSignal)

	sourceScore, sourceSignal := g.scoreSources(ev)
	signals = append(signals, sourceSignal)

	total := volumeScore + coverageScore + confidenceScore + sourceScore

	return Report{
		Slug:    ev.Slug,
		Score:   total,
		Pass:    total >= passScore,
		Signals: signals,
	}
}

// scoreVolume awards up to 40 points for nugget count
func (g *Gate) scoreVolume(ev model.Evidence) (int, Signal) {
	count := len(ev.Nuggets)
	if count == 0 {
		return 0, Signal{
			Type:        SignalVolume,
			Severity:    SeverityCritical,
			Description: "no nuggets collected",
		}
	}

	ratio := float64(count) / float64(minNuggets)
	score := int(math.Min(ratio*40, 40))

	severity := SeverityInfo
	if count < minNuggets/2 {
		severity = SeverityCritical
	} else if count < minNuggets {
		severity = SeverityWarning
	}
	return score, Signal{
		Type:        SignalVolume,
		Severity:    severity,
		Description: fmt.Sprintf("%d nuggets (want %d-%d)", count, minNuggets, maxNuggets),
	}
}

// scoreCoverage awards up to 30 points for priority-theme coverage
func (g *Gate) scoreCoverage(ev model.Evidence) (int, Signal) {
	covered := make(map[model.Theme]bool, len(ev.Metadata.ThemesCovered))
	for _, theme := range ev.Metadata.ThemesCovered {
		covered[theme] = true
	}
	hits := 0
	for _, theme := range priorityThemes {
		if covered[theme] {
			hits++
		}
	}

	score := hits * 30 / len(priorityThemes)
	severity := SeverityInfo
	if hits < 2 {
		severity = SeverityCritical
	} else if hits < 3 {
		severity = SeverityWarning
	}
	return score, Signal{
		Type:        SignalCoverage,
		Severity:    severity,
		Description: fmt.Sprintf("%d of %d priority themes covered", hits, len(priorityThemes)),
	}
}

// scoreConfidence awards up to 20 points for the record's confidence floor
func (g *Gate) scoreConfidence(ev model.Evidence) (int, Signal) {
	switch ev.Metadata.MinConfidence {
	case model.ConfidenceHigh:
		return 20, Signal{SignalConfidence, SeverityInfo, "all nuggets high confidence"}
	case model.ConfidenceMedium:
		return 10, Signal{SignalConfidence, SeverityInfo, "confidence floor is medium"}
	default:
		return 0, Signal{SignalConfidence, SeverityWarning, "low-confidence nuggets present"}
	}
}

// scoreSources awards up to 10 points for canonical source URLs
func (g *Gate) scoreSources(ev model.Evidence) (int, Signal) {
	count := 0
	for _, url := range []string{
		ev.Sources.Pricing, ev.Sources.Features, ev.Sources.Help,
		ev.Sources.FAQ, ev.Sources.Terms,
	} {
		if url != "" {
			count++
		}
	}

	score := count * 2
	if score > 10 {
		score = 10
	}
	severity := SeverityInfo
	if count == 0 {
		severity = SeverityCritical
	} else if count < 2 {
		severity = SeverityWarning
	}
	return score, Signal{
		Type:        SignalSources,
		Severity:    severity,
		Description: fmt.Sprintf("%d canonical source pages recorded", count),
	}
}
