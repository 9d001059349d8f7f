package cli

import (
	"fmt"

	"github.com/pricelens/pricelens/internal/store"
	"github.com/spf13/cobra"
)

var (
	syncToolsFile string
	syncDryRun    bool
)

// syncPricesCmd represents the sync-prices command
var syncPricesCmd = &cobra.Command{
	Use:   "sync-prices",
	Short: "Sync each tool's starting_price with its first paid plan",
	Long: `Sync-prices rewrites every tool's starting_price from the first paid
plan in its pricing_plans list, so listing cards quote the same price as the
detail page.

Example:
  pricelens sync-prices
  pricelens sync-prices --dry-run`,
	RunE: runSyncPrices,
}

func init() {
	rootCmd.AddCommand(syncPricesCmd)
	syncPricesCmd.Flags().StringVar(&syncToolsFile, "tools", "", "tools JSON file (default from config)")
	syncPricesCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "report changes without writing the file")
}

func runSyncPrices(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if syncToolsFile != "" {
		cfg.Data.ToolsFile = syncToolsFile
	}

	st, err := store.Load(cfg.Data.ToolsFile)
	if err != nil {
		return err
	}
	progress("Syncing starting prices for %d tools\n", st.Len())

	result := st.SyncStartingPrices()
	for _, name := range result.Updated {
		progress("  updated %s\n", name)
	}
	for _, name := range result.Skipped {
		progress("  skipped %s: no paid plan\n", name)
	}

	if !syncDryRun && len(result.Updated) > 0 {
		if err := st.Save(); err != nil {
			return err
		}
	}

	fmt.Printf("Updated %d, skipped %d of %d tools", len(result.Updated), len(result.Skipped), st.Len())
	if syncDryRun {
		fmt.Print(" (dry run, nothing written)")
	}
	fmt.Println()
	return nil
}
