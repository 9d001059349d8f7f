package cli

import (
	"encoding/json"
	"fmt"

	"github.com/pricelens/pricelens/internal/model"
	"github.com/pricelens/pricelens/internal/pricing"
	"github.com/pricelens/pricelens/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	deriveToolsFile string
	deriveFormat    string
	deriveMaxPlans  int
)

// planFields is the structured extract for one pricing plan
type planFields struct {
	Plan             string `json:"plan" yaml:"plan"`
	ExportQuality    string `json:"exportQuality,omitempty" yaml:"exportQuality,omitempty"`
	CommercialRights string `json:"commercialRights,omitempty" yaml:"commercialRights,omitempty"`
	BestFor          string `json:"bestFor,omitempty" yaml:"bestFor,omitempty"`
}

// derivation is everything the pricing page derives from one tool record
type derivation struct {
	Slug            string                 `json:"slug" yaml:"slug"`
	Name            string                 `json:"name" yaml:"name"`
	StartingPrice   string                 `json:"startingPrice,omitempty" yaml:"startingPrice,omitempty"`
	Recommendations []model.Recommendation `json:"recommendations" yaml:"recommendations"`
	Snapshot        model.PricingSnapshot  `json:"snapshot" yaml:"snapshot"`
	PlanFields      []planFields           `json:"planFields" yaml:"planFields"`
	UsageNotes      pricing.UsageNotes     `json:"usageNotes" yaml:"usageNotes"`
	Verdict         string                 `json:"verdict" yaml:"verdict"`
}

// deriveCmd represents the derive command
var deriveCmd = &cobra.Command{
	Use:   "derive <slug>",
	Short: "Derive pricing-page content for a tool",
	Long: `Derive computes everything the pricing page renders for one tool:
starting price, plan recommendations, the pricing snapshot, per-plan field
extracts, usage notes, and the verdict paragraph.

The derivation is deterministic: identical data store contents produce
byte-identical output.

Example:
  pricelens derive fliki
  pricelens derive fliki --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runDerive,
}

func init() {
	rootCmd.AddCommand(deriveCmd)
	deriveCmd.Flags().StringVar(&deriveToolsFile, "tools", "", "tools JSON file (default from config)")
	deriveCmd.Flags().StringVar(&deriveFormat, "format", "", "output format: json or yaml (default from config)")
	deriveCmd.Flags().IntVar(&deriveMaxPlans, "max-plans", 3, "maximum plans in the snapshot")
}

func runDerive(cmd *cobra.Command, args []string) error {
	slug := args[0]
	cfg := loadConfig()
	if deriveToolsFile != "" {
		cfg.Data.ToolsFile = deriveToolsFile
	}
	format := cfg.Output.Format
	if deriveFormat != "" {
		format = deriveFormat
	}

	st, err := store.Load(cfg.Data.ToolsFile)
	if err != nil {
		return err
	}
	tool := st.Tool(slug)
	if tool == nil {
		return fmt.Errorf("tool %q not found in %s", slug, cfg.Data.ToolsFile)
	}

	progress("Deriving pricing content for %s (%d plans)\n", tool.Name, len(tool.PricingPlans))

	result := deriveTool(tool, deriveMaxPlans)

	switch format {
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		fmt.Print(string(data))
	default:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		fmt.Println(string(data))
	}
	return nil
}

// deriveTool runs the full derivation pipeline for one tool
func deriveTool(tool *model.Tool, maxPlans int) derivation {
	snapshot := pricing.Snapshot(tool.PricingPlans, maxPlans)
	snapshotText := pricing.SnapshotText(snapshot)

	var snapshotBullets []string
	for _, plan := range snapshot.Plans {
		snapshotBullets = append(snapshotBullets, plan.Bullets...)
	}

	fields := make([]planFields, 0, len(tool.PricingPlans))
	for _, plan := range tool.PricingPlans {
		texts := plan.FeatureTexts()
		fields = append(fields, planFields{
			Plan:             plan.Name,
			ExportQuality:    pricing.ExportQuality(texts),
			CommercialRights: pricing.CommercialRights(texts),
			BestFor:          pricing.BestFor(plan.Name, plan, tool, snapshot.Plans),
		})
	}

	return derivation{
		Slug:            tool.Slug,
		Name:            tool.Name,
		StartingPrice:   pricing.StartingPrice(tool.PricingPlans),
		Recommendations: pricing.DeriveRecommendations(tool.PricingPlans, tool.KeyFacts),
		Snapshot:        snapshot,
		PlanFields:      fields,
		UsageNotes:      pricing.DeriveUsageNotes(tool, tool.PricingPlans, snapshotText, tool.Name, pricing.NewDedupeMap()),
		Verdict:         pricing.GenerateVerdictText(tool, tool.PricingPlans, tool.Name, tool.Slug, snapshotBullets, nil, nil),
	}
}
