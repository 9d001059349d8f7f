package evidence

import (
	"reflect"
	"testing"

	"github.com/pricelens/pricelens/internal/model"
)

func refs(urls ...string) []model.LinkRef {
	links := make([]model.LinkRef, len(urls))
	for i, u := range urls {
		links[i] = model.LinkRef{URL: u}
	}
	return links
}

func TestNormalizeLinks(t *testing.T) {
	tests := []struct {
		name  string
		links []string
		slug  string
		want  []string
	}{
		{
			name:  "wrong slug rewritten and trailing-slash duplicate collapsed",
			links: []string{"/tool/wrong-slug/pricing", "/tool/correct-slug/pricing/"},
			slug:  "correct-slug",
			want:  []string{"/tool/correct-slug/pricing"},
		},
		{
			name:  "case-insensitive dedup keeps the first form",
			links: []string{"https://example.com/Pricing", "https://example.com/pricing"},
			slug:  "anything",
			want:  []string{"https://example.com/Pricing"},
		},
		{
			name:  "external links pass through untouched",
			links: []string{"https://example.com/help", "/docs/export"},
			slug:  "correct-slug",
			want:  []string{"https://example.com/help", "/docs/export"},
		},
		{
			name:  "bare tool path without a tail",
			links: []string{"/tool/old-slug"},
			slug:  "new-slug",
			want:  []string{"/tool/new-slug"},
		},
		{
			name:  "matching slug left alone",
			links: []string{"/tool/correct-slug/features"},
			slug:  "correct-slug",
			want:  []string{"/tool/correct-slug/features"},
		},
		{
			name:  "empty input",
			links: nil,
			slug:  "correct-slug",
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeLinks(refs(tt.links...), tt.slug)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeLinks(%v, %q) = %v, want %v", tt.links, tt.slug, got, tt.want)
			}
		})
	}
}

func TestRewriteToolPath_DeepTail(t *testing.T) {
	got := rewriteToolPath("/tool/other/pricing/annual", "mine")
	if got != "/tool/mine/pricing/annual" {
		t.Errorf("rewriteToolPath = %q, want /tool/mine/pricing/annual", got)
	}
}
