package cli

import (
	"context"
	"fmt"

	"github.com/pricelens/pricelens/internal/evidence"
	"github.com/pricelens/pricelens/internal/store"
	"github.com/spf13/cobra"
)

var (
	altToolsFile string
	altCount     int
	altPromoted  []string
	altNuggets   int
)

// alternativesCmd represents the alternatives command
var alternativesCmd = &cobra.Command{
	Use:   "alternatives <slug>",
	Short: "Rank alternative tools for a tool",
	Long: `Alternatives ranks the rest of the catalog against one tool by
shared-tag count and attaches each alternative's non-pricing evidence claims.
Promoted slugs are pinned to the front in the order given.

Example:
  pricelens alternatives fliki
  pricelens alternatives fliki --count 5 --promote zebracat`,
	Args: cobra.ExactArgs(1),
	RunE: runAlternatives,
}

func init() {
	rootCmd.AddCommand(alternativesCmd)
	alternativesCmd.Flags().StringVar(&altToolsFile, "tools", "", "tools JSON file (default from config)")
	alternativesCmd.Flags().IntVar(&altCount, "count", 3, "number of alternatives")
	alternativesCmd.Flags().StringArrayVar(&altPromoted, "promote", nil, "slugs to pin first")
	alternativesCmd.Flags().IntVar(&altNuggets, "nuggets", 2, "evidence claims per alternative")
}

// alternativeView is one ranked alternative with its supporting claims
type alternativeView struct {
	Slug       string   `json:"slug"`
	Name       string   `json:"name"`
	SharedTags []string `json:"sharedTags,omitempty"`
	Claims     []string `json:"claims,omitempty"`
	Links      []string `json:"links,omitempty"`
}

func runAlternatives(cmd *cobra.Command, args []string) error {
	slug := args[0]
	cfg := loadConfig()
	if altToolsFile != "" {
		cfg.Data.ToolsFile = altToolsFile
	}

	st, err := store.Load(cfg.Data.ToolsFile)
	if err != nil {
		return err
	}
	tool := st.Tool(slug)
	if tool == nil {
		return fmt.Errorf("tool %q not found in %s", slug, cfg.Data.ToolsFile)
	}

	reader := evidence.NewReader(cfg.Data.EvidenceDir, nil, nil)
	ctx := context.Background()

	ranked := st.BestAlternatives(tool, altPromoted, altCount)
	progress("Ranked %d alternatives for %s\n", len(ranked), tool.Name)

	all := st.All()
	views := make([]alternativeView, 0, len(ranked))
	for _, alt := range ranked {
		view := alternativeView{
			Slug:       alt.Tool.Slug,
			Name:       alt.Tool.Name,
			SharedTags: alt.SharedTags,
			Links:      reader.Links(ctx, alt.Tool.Slug),
		}
		for _, nugget := range reader.ForAlternatives(ctx, alt.Tool.Slug, altNuggets) {
			// Claims were collected in the alternative's own context; strip or
			// rewrite any competitor comparisons before quoting them here.
			view.Claims = append(view.Claims, evidence.NormalizeText(nugget.Text, alt.Tool, all))
		}
		views = append(views, view)
	}
	return printJSON(views)
}
