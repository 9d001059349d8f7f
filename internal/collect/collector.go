package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/pricelens/pricelens/internal/cache"
	"github.com/pricelens/pricelens/internal/evidence"
	"github.com/pricelens/pricelens/internal/model"
	"github.com/pricelens/pricelens/internal/worker"
)

// ToolSources lists the source pages to collect for one tool
type ToolSources struct {
	Slug    string              `json:"slug"`
	Sources map[string][]string `json:"sources"` // page type -> URLs
}

// LoadSources reads the per-tool source registry
func LoadSources(path string) ([]ToolSources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	var sources []ToolSources
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}
	return sources, nil
}

const pageCacheTTL = 24 * time.Hour

// PreferredThemes are boosted when capping a tool's nugget list
var PreferredThemes = []model.Theme{
	model.ThemeExport, model.ThemeUsage, model.ThemeVoice,
	model.ThemeLicensing, model.ThemeSecurity,
}

// Collector fetches a tool's source pages and writes its raw evidence file.
// It implements worker.SlugProcessor so slugs can be batched over a pool.
type Collector struct {
	sources   map[string]ToolSources
	fetcher   *Fetcher
	extractor *Extractor
	robots    *RobotsChecker
	limiter   *worker.Limiter
	pageCache cache.Cache
	writer    *evidence.Reader
	verbose   func(format string, args ...any)
}

// NewCollector wires a Collector. robots and pageCache may be nil to skip
// robots checks and snapshot caching; verbose may be nil to silence progress.
func NewCollector(
	sources []ToolSources,
	fetcher *Fetcher,
	extractor *Extractor,
	robots *RobotsChecker,
	limiter *worker.Limiter,
	pageCache cache.Cache,
	writer *evidence.Reader,
	verbose func(format string, args ...any),
) *Collector {
	bySlug := make(map[string]ToolSources, len(sources))
	for _, s := range sources {
		bySlug[s.Slug] = s
	}
	if verbose == nil {
		verbose = func(string, ...any) {}
	}
	return &Collector{
		sources:   bySlug,
		fetcher:   fetcher,
		extractor: extractor,
		robots:    robots,
		limiter:   limiter,
		pageCache: pageCache,
		writer:    writer,
		verbose:   verbose,
	}
}

// Slugs returns every slug present in the source registry
func (c *Collector) Slugs() []string {
	slugs := make([]string, 0, len(c.sources))
	for slug := range c.sources {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// ProcessSlug collects evidence for one tool and writes its raw evidence
// file. Individual page failures are logged and skipped; the slug fails only
// when it has no sources at all.
func (c *Collector) ProcessSlug(ctx context.Context, slug string) error {
	tool, ok := c.sources[slug]
	if !ok || len(tool.Sources) == 0 {
		return fmt.Errorf("no sources registered for %q", slug)
	}

	raw := model.RawEvidence{
		Slug:        slug,
		CollectedAt: time.Now().UTC().Format(time.RFC3339),
		Sources:     make(model.RawSources, len(tool.Sources)),
	}

	pageTypes := make([]string, 0, len(tool.Sources))
	for pageType := range tool.Sources {
		pageTypes = append(pageTypes, pageType)
	}
	sort.Strings(pageTypes)

	var nuggets []model.RawNugget
	for _, pageType := range pageTypes {
		urls := tool.Sources[pageType]
		raw.Sources[pageType] = model.StringList(urls)
		for _, pageURL := range urls {
			pageNuggets, err := c.collectPage(ctx, pageURL, pageType)
			if err != nil {
				c.verbose("  %s %s: %v\n", slug, pageURL, err)
				continue
			}
			nuggets = append(nuggets, pageNuggets...)
		}
	}

	raw.Nuggets = Select(Dedupe(nuggets), PreferredThemes, maxTotalNuggets)
	if err := c.writer.Write(slug, raw); err != nil {
		return fmt.Errorf("write evidence for %q: %w", slug, err)
	}
	c.verbose("  %s: %d nuggets from %d source pages\n", slug, len(raw.Nuggets), len(tool.Sources))
	return nil
}

func (c *Collector) collectPage(ctx context.Context, pageURL, pageType string) ([]model.RawNugget, error) {
	html, err := c.pageHTML(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return c.extractor.Extract(html, pageURL, pageType), nil
}

func (c *Collector) pageHTML(ctx context.Context, pageURL string) (string, error) {
	key := cache.Key("page", pageURL)
	if c.pageCache != nil {
		if data, found := c.pageCache.Get(key); found {
			return string(data), nil
		}
	}

	if c.robots != nil {
		allowed, delay, err := c.robots.CanFetch(ctx, pageURL)
		if err != nil {
			return "", err
		}
		if !allowed {
			return "", fmt.Errorf("disallowed by robots.txt")
		}
		if err := c.limiter.WaitWithDelay(ctx, pageURL, delay); err != nil {
			return "", err
		}
	} else if c.limiter != nil {
		if err := c.limiter.Wait(ctx, pageURL); err != nil {
			return "", err
		}
	}

	page, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}
	if c.pageCache != nil {
		_ = c.pageCache.Set(key, []byte(page.HTML), pageCacheTTL)
	}
	return page.HTML, nil
}
