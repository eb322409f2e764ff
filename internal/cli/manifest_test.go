package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaptlearning/scoring"
	"github.com/adaptlearning/scoring/internal/eventbus"
)

const testManifestYAML = `
course:
  id: course-1
  type: course
  children:
    - id: block-1
      type: block
      children:
        - id: q1
          type: component
          componentType: mcq
sets:
  - id: quiz-1
    type: quiz
    model: block-1
    isScoreIncluded: true
    isCompletionRequired: true
passmark:
  isEnabled: true
  score: 0.5
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "course.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadManifest_Valid(t *testing.T) {
	path := writeManifest(t, testManifestYAML)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "course-1", m.Course.ID)
	assert.Len(t, m.Course.Children, 1)
	assert.Len(t, m.Sets, 1)
	require.NotNil(t, m.Passmark)
	assert.Equal(t, 0.5, *m.Passmark.Score)
}

func TestLoadManifest_MissingCourseID(t *testing.T) {
	path := writeManifest(t, "course:\n  type: course\n")

	_, err := LoadManifest(path)
	assert.Error(t, err)
}

func TestLoadManifest_FileNotFound(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestManifest_BuildTree(t *testing.T) {
	path := writeManifest(t, testManifestYAML)
	m, err := LoadManifest(path)
	require.NoError(t, err)

	bus := eventbus.New()
	root, index := m.BuildTree(bus)

	assert.Equal(t, scoring.ObjectID("course-1"), root.ID())
	assert.Len(t, index, 3)
	assert.Equal(t, "mcq", index["q1"].ComponentType())
}

func TestManifest_BuildScoringSets(t *testing.T) {
	path := writeManifest(t, testManifestYAML)
	m, err := LoadManifest(path)
	require.NoError(t, err)

	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)
	_, index := m.BuildTree(bus)

	sets, err := m.BuildScoringSets(reg, bus, nil, index)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, scoring.SetID("quiz-1"), sets[0].ID())
}

func TestManifest_BuildScoringSets_UnknownModel(t *testing.T) {
	path := writeManifest(t, `
course:
  id: course-1
  type: course
sets:
  - id: quiz-1
    type: quiz
    model: missing
`)
	m, err := LoadManifest(path)
	require.NoError(t, err)

	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)
	_, index := m.BuildTree(bus)

	_, err = m.BuildScoringSets(reg, bus, nil, index)
	assert.Error(t, err)
}

func TestManifest_ResolvePassmark_MergesOverDefaults(t *testing.T) {
	path := writeManifest(t, testManifestYAML)
	m, err := LoadManifest(path)
	require.NoError(t, err)

	defaults := PassmarkConfig{IsEnabled: false, Score: 0, Correctness: 0.2, IsScaled: true}
	got := m.ResolvePassmark(defaults)

	assert.True(t, got.IsEnabled, "manifest overrides isEnabled")
	assert.Equal(t, 0.5, got.Score, "manifest overrides score")
	assert.Equal(t, 0.2, got.Correctness, "unset field falls back to defaults")
}
