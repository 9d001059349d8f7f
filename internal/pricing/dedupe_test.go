package pricing

import "testing"

func TestDedupeMap_ExactDuplicate(t *testing.T) {
	m := NewDedupeMap()
	m.Add("No watermark on paid plans.")

	// Case and punctuation are ignored
	if !m.IsDuplicate("no watermark on paid plans", 0.7) {
		t.Error("exact duplicate not detected")
	}
	if m.IsDuplicate("Unlimited cloud storage included", 0.7) {
		t.Error("unrelated sentence flagged as duplicate")
	}
}

func TestDedupeMap_WordOverlap(t *testing.T) {
	m := NewDedupeMap()
	m.Add("Standard plan includes 180 minutes of credits per month")

	if !m.IsDuplicate("Standard plan includes 180 minutes of credits each month", 0.7) {
		t.Error("near-duplicate below threshold")
	}
	if m.IsDuplicate("Pro plan supports 4K export and voice cloning", 0.7) {
		t.Error("distinct sentence flagged as duplicate")
	}
}

func TestDedupeMap_NilSafe(t *testing.T) {
	var m *DedupeMap
	if m.IsDuplicate("anything", 0.7) {
		t.Error("nil map should report no duplicates")
	}
	m.Add("anything") // must not panic
}

func TestJaccardSimilarity(t *testing.T) {
	if got := JaccardSimilarity("a b c", "a b c"); got != 1 {
		t.Errorf("identical texts = %v, want 1", got)
	}
	if got := JaccardSimilarity("alpha beta", "gamma delta"); got != 0 {
		t.Errorf("disjoint texts = %v, want 0", got)
	}
	if got := JaccardSimilarity("", "alpha"); got != 0 {
		t.Errorf("empty text = %v, want 0", got)
	}

	got := JaccardSimilarity("watermark free export", "watermark free download")
	if got <= 0.4 || got >= 0.6 {
		t.Errorf("partial overlap = %v, want 0.5", got)
	}
}
