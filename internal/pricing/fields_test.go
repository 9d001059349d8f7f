package pricing

import (
	"testing"

	"github.com/pricelens/pricelens/internal/model"
)

func TestExportQuality(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"bare 4K token", []string{"Up to 4K export"}, "4K"},
		{"1080p", []string{"1080p videos with no watermark"}, "1080p"},
		{"HD keyword", []string{"Crisp HD output"}, "HD"},
		{"no match", []string{"Unlimited projects"}, ""},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExportQuality(tt.parts)
			if got != tt.want {
				t.Errorf("ExportQuality(%v) = %q, want %q", tt.parts, got, tt.want)
			}
			if len(got) > MaxExportQualityLen {
				t.Errorf("result %q exceeds %d chars", got, MaxExportQualityLen)
			}
		})
	}
}

func TestCommercialRights(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{
			// The negative phrase wins even though "resale" also matches
			name:  "negative wins over positive",
			parts: []string{"Personal use only, no commercial resale"},
			want:  "Limited",
		},
		{"commercial license", []string{"Full commercial license included"}, "Included"},
		{"client work", []string{"Use for client projects"}, "Included"},
		{"negative in later part", []string{"HD export", "non-commercial use"}, "Limited"},
		{"no signal", []string{"Unlimited projects"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommercialRights(tt.parts); got != tt.want {
				t.Errorf("CommercialRights(%v) = %q, want %q", tt.parts, got, tt.want)
			}
		})
	}
}

func TestBestFor(t *testing.T) {
	tool := &model.Tool{BestFor: "YouTube Beginners"}

	t.Run("plan description wins", func(t *testing.T) {
		plan := model.PricingPlan{Description: "Solo creators"}
		if got := BestFor("Standard", plan, tool, nil); got != "Solo creators" {
			t.Errorf("BestFor = %q, want %q", got, "Solo creators")
		}
	})

	t.Run("overlong description falls through to tool", func(t *testing.T) {
		plan := model.PricingPlan{Description: "A very long plan description that easily exceeds the fifty character budget"}
		if got := BestFor("Standard", plan, tool, nil); got != "YouTube Beginners" {
			t.Errorf("BestFor = %q, want %q", got, "YouTube Beginners")
		}
	})

	t.Run("snapshot audience bullet", func(t *testing.T) {
		snapshot := []model.SnapshotPlan{
			{Name: "Standard", Bullets: []string{"1080p export", "Best for: small marketing teams."}},
		}
		got := BestFor("Standard", model.PricingPlan{}, nil, snapshot)
		if got != "small marketing teams" {
			t.Errorf("BestFor = %q, want %q", got, "small marketing teams")
		}
	})

	t.Run("snapshot first bullet fallback", func(t *testing.T) {
		snapshot := []model.SnapshotPlan{
			{Name: "Standard", Bullets: []string{"1080p export"}},
		}
		got := BestFor("Standard", model.PricingPlan{}, nil, snapshot)
		if got != "1080p export" {
			t.Errorf("BestFor = %q, want %q", got, "1080p export")
		}
	})

	t.Run("nothing derivable", func(t *testing.T) {
		if got := BestFor("Standard", model.PricingPlan{}, nil, nil); got != "" {
			t.Errorf("BestFor = %q, want empty", got)
		}
	})
}
