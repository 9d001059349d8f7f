package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleTools = `[
  {
    "id": "1",
    "slug": "clipforge",
    "name": "ClipForge",
    "starting_price": "$19/mo",
    "tags": ["video", "ai", "editing"],
    "pricing_plans": [
      {"name": "Free", "price": "Free"},
      {"name": "Pro", "price": "$29", "period": "/mo"}
    ]
  },
  {
    "id": "2",
    "slug": "vidmaker",
    "name": "VidMaker",
    "tags": ["video", "ai"],
    "pricing_plans": [
      {"name": "Starter", "price": "$12", "period": "/mo"}
    ]
  },
  {
    "id": "3",
    "slug": "scriptly",
    "name": "Scriptly",
    "tags": ["writing"],
    "pricing_plans": [
      {"name": "Free", "price": "Free"}
    ]
  },
  {
    "id": "4",
    "slug": "reelgen",
    "name": "ReelGen",
    "tags": ["video", "ai", "editing"]
  }
]`

func loadSample(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tools.json")
	if err := os.WriteFile(path, []byte(sampleTools), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func TestLoad(t *testing.T) {
	s := loadSample(t)
	if s.Len() != 4 {
		t.Errorf("Len = %d, want 4", s.Len())
	}

	tool := s.Tool("clipforge")
	if tool == nil {
		t.Fatal("clipforge should load")
	}
	if tool.Name != "ClipForge" {
		t.Errorf("name = %q", tool.Name)
	}
	if got := s.Tool("nonexistent"); got != nil {
		t.Errorf("unknown slug should return nil, got %+v", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed JSON")
	}
}

func TestBestAlternatives(t *testing.T) {
	s := loadSample(t)
	current := s.Tool("clipforge")

	alts := s.BestAlternatives(current, nil, 2)
	if len(alts) != 2 {
		t.Fatalf("expected 2 alternatives, got %d", len(alts))
	}
	// ReelGen shares 3 tags, VidMaker 2, Scriptly 0
	if alts[0].Tool.Slug != "reelgen" {
		t.Errorf("alts[0] = %q, want reelgen", alts[0].Tool.Slug)
	}
	if alts[1].Tool.Slug != "vidmaker" {
		t.Errorf("alts[1] = %q, want vidmaker", alts[1].Tool.Slug)
	}
	if want := []string{"video", "ai", "editing"}; !reflect.DeepEqual(alts[0].SharedTags, want) {
		t.Errorf("shared tags = %v, want %v", alts[0].SharedTags, want)
	}
}

func TestBestAlternatives_Promoted(t *testing.T) {
	s := loadSample(t)
	current := s.Tool("clipforge")

	alts := s.BestAlternatives(current, []string{"Scriptly"}, 3)
	if len(alts) != 3 {
		t.Fatalf("expected 3 alternatives, got %d", len(alts))
	}
	if alts[0].Tool.Slug != "scriptly" {
		t.Errorf("promoted slug should rank first regardless of overlap, got %q", alts[0].Tool.Slug)
	}
	if alts[1].Tool.Slug != "reelgen" {
		t.Errorf("alts[1] = %q, want reelgen", alts[1].Tool.Slug)
	}
}

func TestSyncStartingPrices(t *testing.T) {
	s := loadSample(t)

	result := s.SyncStartingPrices()

	// ClipForge moves from $19/mo to $29/mo, VidMaker gains $12/mo;
	// Scriptly and ReelGen have no paid plan
	if want := []string{"ClipForge", "VidMaker"}; !reflect.DeepEqual(result.Updated, want) {
		t.Errorf("updated = %v, want %v", result.Updated, want)
	}
	if want := []string{"Scriptly", "ReelGen"}; !reflect.DeepEqual(result.Skipped, want) {
		t.Errorf("skipped = %v, want %v", result.Skipped, want)
	}
	if got := s.Tool("clipforge").StartingPrice; got != "$29/mo" {
		t.Errorf("clipforge starting price = %q, want $29/mo", got)
	}

	// A second sync is a no-op
	again := s.SyncStartingPrices()
	if len(again.Updated) != 0 {
		t.Errorf("second sync should update nothing, got %v", again.Updated)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	s := loadSample(t)
	s.SyncStartingPrices()
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Load(s.path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.Tool("vidmaker").StartingPrice; got != "$12/mo" {
		t.Errorf("reloaded starting price = %q, want $12/mo", got)
	}
}

func TestAll_FileOrder(t *testing.T) {
	s := loadSample(t)
	var slugs []string
	for _, tool := range s.All() {
		slugs = append(slugs, tool.Slug)
	}
	want := []string{"clipforge", "vidmaker", "scriptly", "reelgen"}
	if !reflect.DeepEqual(slugs, want) {
		t.Errorf("All order = %v, want %v", slugs, want)
	}
}
