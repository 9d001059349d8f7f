package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pricelens/pricelens/internal/cache"
	"github.com/pricelens/pricelens/internal/collect"
	"github.com/pricelens/pricelens/internal/evidence"
	"github.com/pricelens/pricelens/internal/translate"
	"github.com/pricelens/pricelens/internal/worker"
	"github.com/spf13/cobra"
)

var (
	collectSources  string
	collectWorkers  int
	collectNoCache  bool
	collectNoRobots bool
	collectTimeout  time.Duration
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect [slug...]",
	Short: "Collect evidence nuggets from tool source pages",
	Long: `Collect fetches each tool's registered source pages (pricing, help,
FAQ, terms), extracts candidate evidence nuggets from the HTML, and writes a
raw evidence file per slug. robots.txt is respected and requests are
rate-limited per host.

With no arguments every slug in the source registry is collected.

Example:
  pricelens collect fliki
  pricelens collect --workers 8
  pricelens collect fliki zebracat --no-cache`,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
	collectCmd.Flags().StringVar(&collectSources, "sources", "", "source registry file (default from config)")
	collectCmd.Flags().IntVar(&collectWorkers, "workers", 0, "concurrent slugs (default from config)")
	collectCmd.Flags().BoolVar(&collectNoCache, "no-cache", false, "disable the page snapshot cache")
	collectCmd.Flags().BoolVar(&collectNoRobots, "no-robots", false, "skip robots.txt checks")
	collectCmd.Flags().DurationVar(&collectTimeout, "timeout", 10*time.Minute, "overall collection timeout")
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if collectSources != "" {
		cfg.Data.SourcesFile = collectSources
	}
	if collectWorkers > 0 {
		cfg.Collect.Workers = collectWorkers
	}
	if collectNoCache {
		cfg.Cache.Enabled = false
	}
	if collectNoRobots {
		cfg.Collect.RespectRobots = false
	}

	sources, err := collect.LoadSources(cfg.Data.SourcesFile)
	if err != nil {
		return err
	}

	var pageCache cache.Cache
	if cfg.Cache.Enabled {
		pageCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}
	var robots *collect.RobotsChecker
	if cfg.Collect.RespectRobots {
		robots = collect.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	translator, err := translate.New(cfg.Translate)
	if err != nil {
		return err
	}

	collector := collect.NewCollector(
		sources,
		collect.NewFetcher(cfg.HTTP),
		collect.NewExtractor(nil),
		robots,
		worker.NewLimiter(cfg.Collect.RequestsPerSecond, cfg.Collect.Burst),
		pageCache,
		evidence.NewReader(cfg.Data.EvidenceDir, nil, translator),
		progress,
	)

	slugs := args
	if len(slugs) == 0 {
		slugs = collector.Slugs()
	}
	progress("Collecting evidence for %d tools with %d workers\n", len(slugs), cfg.Collect.Workers)

	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	batch := worker.NewBatchProcessor(collector, cfg.Collect.Workers)
	results := batch.ProcessSlugs(ctx, slugs)

	failed := 0
	for _, result := range results {
		if result.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "collect %s: %v\n", result.Slug, result.Error)
		}
	}
	fmt.Printf("Collected %d/%d tools\n", len(results)-failed, len(results))
	if failed > 0 {
		return fmt.Errorf("%d of %d tools failed", failed, len(results))
	}
	return nil
}
