package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adaptlearning/scoring"
	"github.com/adaptlearning/scoring/internal/cli"
	"github.com/adaptlearning/scoring/query"
)

var queryManifest string

var queryCmd = &cobra.Command{
	Use:   "query <query-string>",
	Short: "Evaluate a query-language expression against a manifest fixture",
	Long: `Query loads a course manifest, builds its registry, and evaluates the
given query-language expression (spec.md §7) against it, printing the id,
type, and (for scoring sets) the score of every matching set.`,
	Args: cobra.ExactArgs(1),
	Example: `  # Find every quiz scoring set
  scoringctl query 'quiz'

  # Intersect each quiz scoring set with the course total
  scoringctl query 'total quiz'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := manifestPath(queryManifest)

		fx, err := loadFixture(path, cfg.Passmark)
		if err != nil {
			return err
		}

		return runQuery(fx, args[0])
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryManifest, "manifest", "", "path to course manifest")
}

func runQuery(fx *fixture, input string) error {
	results, err := query.EvaluateString(fx.reg, input)
	if err != nil {
		return cli.GeneralError("evaluating query", err)
	}

	if len(results) == 0 {
		fmt.Println("No matching sets.")
		return nil
	}

	fmt.Printf("%d matching set(s):\n", len(results))
	for _, s := range results {
		fmt.Printf("  - %-24s type=%-10s%s\n", s.ID(), s.Type(), scoreSuffix(s))
	}
	return nil
}

// scoreSuffix reports a set's score when it aggregates one, for the
// ScoringSet/TotalSet hierarchy; other set kinds (LifecycleSet,
// AdaptModelSet) have no score to print.
func scoreSuffix(s scoring.Set) string {
	type scorer interface {
		Score() float64
		MaxScore() float64
	}
	if sc, ok := s.(scorer); ok {
		return fmt.Sprintf(" score=%.2f/%.2f", sc.Score(), sc.MaxScore())
	}
	return ""
}
