package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusManifest string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report registry and total-set status for a manifest",
	Long: `Status loads a course manifest and reports the resulting registry
contents and the course TotalSet's aggregate score, correctness, and
completion/pass state.`,
	Example: `  # Check status of the configured manifest
  scoringctl status --manifest fixtures/course.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := manifestPath(statusManifest)

		fx, err := loadFixture(path, cfg.Passmark)
		if err != nil {
			return err
		}

		return runStatus(fx)
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusManifest, "manifest", "", "path to course manifest")
}

func runStatus(fx *fixture) error {
	sets := fx.reg.Sets()
	fmt.Printf("Sets registered: %d (generation %d)\n", len(sets), fx.reg.Generation())
	for _, s := range sets {
		fmt.Printf("  - %-24s type=%-10s order=%d canReset=%t\n", s.ID(), s.Type(), s.Order(), s.CanReset())
	}

	fmt.Println()
	fmt.Println("Total set:")
	fmt.Printf("  score:        %.2f / %.2f (min %.2f)\n", fx.total.Score(), fx.total.MaxScore(), fx.total.MinScore())
	fmt.Printf("  correctness:  %d / %d\n", fx.total.Correctness(), fx.total.MaxCorrectness())
	fmt.Printf("  complete:     %t\n", fx.total.IsComplete())
	fmt.Printf("  passed:       %t\n", fx.total.IsPassed())
	fmt.Printf("  failed:       %t\n", fx.total.IsFailed())
	fmt.Printf("  can reset:    %t\n", fx.total.CanReset())

	return nil
}
