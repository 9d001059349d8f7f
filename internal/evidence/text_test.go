package evidence

import (
	"strings"
	"testing"

	"github.com/pricelens/pricelens/internal/model"
)

func TestNormalizeText(t *testing.T) {
	current := &model.Tool{Slug: "clipforge", Name: "ClipForge"}
	all := []*model.Tool{
		current,
		{Slug: "acme-video", Name: "Acme Video"},
		{Slug: "vidmaker", Name: "VidMaker"},
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "known competitor swapped in than-comparison",
			text: "Renders faster than VidMaker on long projects",
			want: "Renders faster than ClipForge on long projects",
		},
		{
			name: "slug variation with spaces recognized",
			text: "Cheaper compared to acme video for teams",
			want: "Cheaper compared to ClipForge for teams",
		},
		{
			name: "versus form",
			text: "Better voices vs VidMaker",
			want: "Better voices vs ClipForge",
		},
		{
			name: "unknown competitor stripped",
			text: "Exports render notably faster than Zebra on every benchmark we tried",
			want: "Exports render notably faster on every benchmark we tried",
		},
		{
			name: "no comparison passes through",
			text: "Supports 4K export on all paid plans",
			want: "Supports 4K export on all paid plans",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeText(tt.text, current, all)
			if got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalizeText_ShortResidual(t *testing.T) {
	current := &model.Tool{Slug: "clipforge", Name: "ClipForge"}
	got := NormalizeText("Faster than Zebra", current, []*model.Tool{current})
	if !strings.HasPrefix(got, "This tool offers ") {
		t.Errorf("short stripped text should get the fallback prefix, got %q", got)
	}
}

func TestNameVariations(t *testing.T) {
	tool := &model.Tool{Slug: "acme-video", Name: "Acme Video"}
	got := nameVariations(tool)
	// "acme video" collapses into "Acme Video" under case-insensitive dedup
	want := map[string]bool{
		"Acme Video": true,
		"acme-video": true,
		"acmevideo":  true,
	}
	if len(got) != len(want) {
		t.Fatalf("nameVariations = %v, want %d distinct forms", got, len(want))
	}
	for _, v := range got {
		if !want[v] {
			t.Errorf("unexpected variation %q", v)
		}
	}
}
