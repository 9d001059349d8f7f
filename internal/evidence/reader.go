package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pricelens/pricelens/internal/cache"
	"github.com/pricelens/pricelens/internal/model"
	"github.com/pricelens/pricelens/internal/translate"
)

const readerCacheTTL = 10 * time.Minute

// Reader loads and normalizes per-tool evidence files from a data directory.
// Reads are cached; a missing or malformed file yields an empty record so the
// serving path never fails on bad evidence.
type Reader struct {
	dir        string
	cache      cache.Cache
	translator translate.Translator
}

// NewReader creates a Reader over dir. cache may be nil to disable caching;
// translator may be nil for the passthrough default.
func NewReader(dir string, c cache.Cache, translator translate.Translator) *Reader {
	if translator == nil {
		translator = translate.Noop{}
	}
	return &Reader{dir: dir, cache: c, translator: translator}
}

// Read returns the normalized evidence for slug. The boolean reports whether
// an evidence file was actually present and parseable.
func (r *Reader) Read(ctx context.Context, slug string) (model.Evidence, bool) {
	key := cache.Key("evidence", slug)
	if r.cache != nil {
		if data, found := r.cache.Get(key); found {
			var ev model.Evidence
			if err := json.Unmarshal(data, &ev); err == nil {
				return ev, len(ev.Nuggets) > 0 || ev.LastUpdated != ""
			}
		}
	}

	raw, ok := r.readRaw(slug)
	if !ok {
		return Empty(slug), false
	}

	ev := Normalize(ctx, raw, slug, r.translator)
	if r.cache != nil {
		if data, err := json.Marshal(ev); err == nil {
			_ = r.cache.Set(key, data, readerCacheTTL)
		}
	}
	return ev, true
}

func (r *Reader) readRaw(slug string) (model.RawEvidence, bool) {
	data, err := os.ReadFile(filepath.Join(r.dir, slug+".json"))
	if err != nil {
		return model.RawEvidence{}, false
	}
	var raw model.RawEvidence
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.RawEvidence{}, false
	}
	return raw, true
}

// HasEvidence reports whether slug has a non-empty evidence record
func (r *Reader) HasEvidence(ctx context.Context, slug string) bool {
	ev, ok := r.Read(ctx, slug)
	return ok && len(ev.Nuggets) > 0
}

// ByTheme returns slug's nuggets matching any of the given themes,
// in file order.
func (r *Reader) ByTheme(ctx context.Context, slug string, themes ...model.Theme) []model.Nugget {
	ev, _ := r.Read(ctx, slug)
	want := make(map[model.Theme]bool, len(themes))
	for _, t := range themes {
		want[t] = true
	}
	var matched []model.Nugget
	for _, n := range ev.Nuggets {
		if want[n.Theme] {
			matched = append(matched, n)
		}
	}
	return matched
}

// ForAlternatives returns slug's nuggets suitable for alternative-tool
// comparisons. Pricing nuggets are excluded; prices change too often to quote
// against a competitor.
func (r *Reader) ForAlternatives(ctx context.Context, slug string, limit int) []model.Nugget {
	ev, _ := r.Read(ctx, slug)
	var picked []model.Nugget
	for _, n := range ev.Nuggets {
		if n.Theme == model.ThemePricing {
			continue
		}
		picked = append(picked, n)
		if limit > 0 && len(picked) == limit {
			break
		}
	}
	return picked
}

// SourceURLs returns the distinct source URLs cited by slug's nuggets,
// in first-seen order.
func (r *Reader) SourceURLs(ctx context.Context, slug string) []string {
	ev, _ := r.Read(ctx, slug)
	seen := make(map[string]bool)
	var urls []string
	for _, n := range ev.Nuggets {
		if n.SourceURL == "" || seen[n.SourceURL] {
			continue
		}
		seen[n.SourceURL] = true
		urls = append(urls, n.SourceURL)
	}
	return urls
}

// Links returns slug's internal page links with any /tool/ paths rewritten
// to point at slug's own pages. Raw records carry links for sources, the
// link index, and hard-fact citations; all three feed the same rewrite.
func (r *Reader) Links(ctx context.Context, slug string) []string {
	raw, ok := r.readRaw(slug)
	if !ok {
		return []string{}
	}
	pageTypes := make([]string, 0, len(raw.Sources))
	for pageType := range raw.Sources {
		pageTypes = append(pageTypes, pageType)
	}
	sort.Strings(pageTypes)

	var refs []model.LinkRef
	for _, pageType := range pageTypes {
		for _, u := range raw.Sources[pageType] {
			if u != "" {
				refs = append(refs, model.LinkRef{URL: u})
			}
		}
	}
	if raw.LinkIndex != nil {
		for _, u := range raw.LinkIndex.FeatureURLs {
			refs = append(refs, model.LinkRef{URL: u})
		}
	}
	for _, fact := range raw.HardFacts {
		for _, src := range fact.Sources {
			if src.URL != "" {
				refs = append(refs, model.LinkRef{URL: src.URL})
			}
		}
	}
	return NormalizeLinks(refs, slug)
}

// Write stores a raw evidence record for slug and drops any cached
// normalized copy.
func (r *Reader) Write(slug string, raw model.RawEvidence) error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("create evidence dir: %w", err)
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal evidence: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.dir, slug+".json"), data, 0644); err != nil {
		return fmt.Errorf("write evidence file: %w", err)
	}
	if r.cache != nil {
		_ = r.cache.Delete(cache.Key("evidence", slug))
	}
	return nil
}
