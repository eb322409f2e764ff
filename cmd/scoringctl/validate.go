package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adaptlearning/scoring/internal/cli"
	"github.com/adaptlearning/scoring/query"
)

var validateManifest string

var validateCmd = &cobra.Command{
	Use:   "validate [query-string]",
	Short: "Validate a course manifest or query-language string",
	Long: `Validate parses and sanity-checks its input without evaluating it against
live data.

With no arguments, it loads and builds the course manifest: parsing the
YAML, materializing the content-model tree, constructing every scoring
set, and the course TotalSet. With one argument, it instead parses that
argument as a query-language expression (spec.md §7) and reports its
structure.`,
	Args: cobra.MaximumNArgs(1),
	Example: `  # Validate the configured manifest
  scoringctl validate

  # Validate a specific manifest
  scoringctl validate --manifest fixtures/course.yaml

  # Validate a query-language string
  scoringctl validate 'quiz[#quiz-1](isComplete) total'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return validateQueryString(args[0])
		}
		return validateManifestFile()
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateManifest, "manifest", "", "path to course manifest")
}

func validateQueryString(input string) error {
	q, err := query.Parse(input)
	if err != nil {
		return cli.SchemaParseError("parsing query", err)
	}
	if !quiet {
		fmt.Printf("Query is valid. %d column(s):\n", len(q.Columns))
		for i, col := range q.Columns {
			primary := "(none)"
			if col.Primary != nil {
				if col.Primary.IsIDRef() {
					primary = "#" + col.Primary.ID
				} else {
					primary = col.Primary.Type
				}
			}
			fmt.Printf("  %d: primary=%s multiply=%d clause(s) filter=%d clause(s)\n",
				i, primary, len(col.Multiply), len(col.Filters))
		}
	}
	return nil
}

func validateManifestFile() error {
	path := manifestPath(validateManifest)

	fx, err := loadFixture(path, cfg.Passmark)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Printf("Manifest is valid. %d set(s) registered.\n", len(fx.reg.Sets()))
		for _, s := range fx.reg.Sets() {
			fmt.Printf("  - %s (%s)\n", s.ID(), s.Type())
		}
		fmt.Printf("TotalSet: %.1f/%.1f\n", fx.total.Score(), fx.total.MaxScore())
	}
	return nil
}
