package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/pricelens/pricelens/internal/evidence"
	"github.com/pricelens/pricelens/internal/store"
	"github.com/pricelens/pricelens/internal/validate"
	"github.com/spf13/cobra"
)

var validateToolsFile string

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the tool data store",
	Long: `Validate checks every tool record for structural problems: malformed
or duplicate slugs, out-of-range ratings, unparseable paid prices, starting
prices out of sync with the plan list, and evidence links that reference the
wrong tool.

Warnings are reported; only errors fail the run.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateToolsFile, "tools", "", "tools JSON file (default from config)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if validateToolsFile != "" {
		cfg.Data.ToolsFile = validateToolsFile
	}

	st, err := store.Load(cfg.Data.ToolsFile)
	if err != nil {
		return err
	}
	progress("Validating %d tools\n", st.Len())

	v := validate.NewValidator()
	result := v.Validate(st.All())

	reader := evidence.NewReader(cfg.Data.EvidenceDir, nil, nil)
	ctx := context.Background()
	for _, tool := range st.All() {
		linkResult := v.ValidateEvidenceLinks(tool.Slug, reader.SourceURLs(ctx, tool.Slug))
		result.Issues = append(result.Issues, linkResult.Issues...)
	}

	for _, issue := range result.Issues {
		fmt.Fprintf(os.Stderr, "%s: %s/%s: %s\n", issue.Severity, issue.Slug, issue.Field, issue.Message)
	}

	errs := result.Errors()
	fmt.Printf("%d issues (%d errors) across %d tools\n", len(result.Issues), len(errs), st.Len())
	if len(errs) > 0 {
		return fmt.Errorf("validation failed with %d errors", len(errs))
	}
	return nil
}
