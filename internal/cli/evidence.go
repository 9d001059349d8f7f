package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pricelens/pricelens/internal/evidence"
	"github.com/pricelens/pricelens/internal/model"
	"github.com/pricelens/pricelens/internal/quality"
	"github.com/spf13/cobra"
)

var (
	evidenceDir     string
	evidenceThemes  []string
	evidenceLinks   bool
	evidenceQuality bool
)

// evidenceCmd represents the evidence command
var evidenceCmd = &cobra.Command{
	Use:   "evidence <slug>",
	Short: "Show a tool's normalized evidence",
	Long: `Evidence loads a tool's raw evidence file, runs the normalization
pipeline, and prints the result. A missing or malformed file yields an empty
record, not an error.

Example:
  pricelens evidence fliki
  pricelens evidence fliki --theme usage --theme export
  pricelens evidence fliki --links
  pricelens evidence fliki --quality`,
	Args: cobra.ExactArgs(1),
	RunE: runEvidence,
}

func init() {
	rootCmd.AddCommand(evidenceCmd)
	evidenceCmd.Flags().StringVar(&evidenceDir, "evidence-dir", "", "evidence directory (default from config)")
	evidenceCmd.Flags().StringArrayVar(&evidenceThemes, "theme", nil, "only show nuggets with these themes")
	evidenceCmd.Flags().BoolVar(&evidenceLinks, "links", false, "show normalized evidence links instead of nuggets")
	evidenceCmd.Flags().BoolVar(&evidenceQuality, "quality", false, "score the evidence record")
}

func runEvidence(cmd *cobra.Command, args []string) error {
	slug := args[0]
	cfg := loadConfig()
	if evidenceDir != "" {
		cfg.Data.EvidenceDir = evidenceDir
	}

	reader := evidence.NewReader(cfg.Data.EvidenceDir, nil, nil)
	ctx := context.Background()

	ev, found := reader.Read(ctx, slug)
	if !found {
		progress("No evidence file for %s\n", slug)
	}

	switch {
	case evidenceLinks:
		for _, url := range reader.Links(ctx, slug) {
			fmt.Println(url)
		}
		return nil

	case evidenceQuality:
		report := quality.NewGate().Evaluate(ev)
		return printJSON(report)

	case len(evidenceThemes) > 0:
		themes := make([]model.Theme, 0, len(evidenceThemes))
		for _, t := range evidenceThemes {
			themes = append(themes, model.Theme(t))
		}
		return printJSON(reader.ByTheme(ctx, slug, themes...))

	default:
		return printJSON(ev)
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
