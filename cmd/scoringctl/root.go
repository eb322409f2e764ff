package main

import (
	"github.com/spf13/cobra"

	"github.com/adaptlearning/scoring/internal/cli"
)

var (
	// Global state set during PersistentPreRunE.
	cfg        *cli.Config
	configPath string

	// Persistent flags.
	cfgFile string
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "scoringctl",
	Short: "Inspect and validate scoring-set course manifests",
	Long: `scoringctl - scoring-set manifest inspection CLI

scoringctl loads a course manifest describing a content-model fixture and
its scoring sets, and lets you validate it, inspect the resulting
registry/total-set state, and evaluate query-language expressions against
it, all without a live Adapt runtime.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" || cmd.Name() == "license" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

const (
	groupFixture = "fixture"
	groupUtility = "utility"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover scoring.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupFixture, Title: "Fixture:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	validateCmd.GroupID = groupFixture
	statusCmd.GroupID = groupFixture
	queryCmd.GroupID = groupFixture
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(queryCmd)

	configCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	licenseCmd.GroupID = groupUtility
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(licenseCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}

// resolveString returns the first non-empty string from the provided
// values, implementing flag > config > default precedence.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
