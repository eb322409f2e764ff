package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaptlearning/scoring/internal/cli"
)

const fixtureManifest = `
course:
  id: course-1
  type: course
  children:
    - id: block-1
      type: block
      children:
        - id: quiz-1
          type: component
          componentType: quiz
sets:
  - id: quiz-1-scoring
    type: quiz
    model: quiz-1
    isScoreIncluded: true
    isCompletionRequired: true
`

func writeFixtureManifest(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "course.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureManifest), 0o644))
	return path
}

// runCmd executes rootCmd with the given args against a fresh in-memory
// config, capturing any output cobra itself writes (help text, errors).
// The fixture subcommands print their reports via fmt.Printf rather than
// cmd.OutOrStdout(), matching the teacher's validate/status commands, so
// this only asserts on the returned error for those.
func runCmd(t *testing.T, args ...string) error {
	t.Helper()
	cfg = &cli.Config{Schema: "course.yaml"}
	configPath = ""

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	prev := rootCmd.PersistentPreRunE
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, a []string) error { return nil }
	defer func() { rootCmd.PersistentPreRunE = prev }()

	return rootCmd.Execute()
}

func TestValidate_Manifest(t *testing.T) {
	path := writeFixtureManifest(t)
	err := runCmd(t, "validate", "--manifest", path)
	assert.NoError(t, err)
}

func TestValidate_QueryString(t *testing.T) {
	err := runCmd(t, "validate", "component[componentType=quiz]")
	assert.NoError(t, err)
}

func TestValidate_InvalidQueryString(t *testing.T) {
	err := runCmd(t, "validate", "[[[")
	assert.Error(t, err)
}

func TestStatus_Manifest(t *testing.T) {
	path := writeFixtureManifest(t)
	err := runCmd(t, "status", "--manifest", path)
	assert.NoError(t, err)
}

func TestQuery_Manifest(t *testing.T) {
	path := writeFixtureManifest(t)
	err := runCmd(t, "query", "--manifest", path, "#quiz-1-scoring")
	assert.NoError(t, err)
}

func TestQuery_ByType(t *testing.T) {
	path := writeFixtureManifest(t)
	err := runCmd(t, "query", "--manifest", path, "quiz")
	assert.NoError(t, err)
}

func TestQuery_MissingManifest(t *testing.T) {
	err := runCmd(t, "query", "--manifest", "/does/not/exist.yaml", "quiz-1-scoring")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	err := runCmd(t, "version")
	assert.NoError(t, err)
}

func TestLicense(t *testing.T) {
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"license"})
	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Third-Party Notices")
}
