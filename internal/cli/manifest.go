package cli

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/adaptlearning/scoring"
	"github.com/adaptlearning/scoring/internal/contentmodel"
)

// Manifest is the course-manifest document decoded by LoadManifest: a
// fixture content-model tree plus the scoring sets built over it, kept
// distinct from the flag/env configuration layer the way the teacher
// keeps melange.yaml (viper) separate from .fga schema files (a dedicated
// parser), per SPEC_FULL.md §2.3.
type Manifest struct {
	Course   ManifestModel  `json:"course"`
	Sets     []ManifestSet  `json:"sets"`
	Passmark *PassmarkInput `json:"passmark,omitempty"`
}

// ManifestModel is one node of the fixture content-model tree.
type ManifestModel struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	ComponentType string          `json:"componentType,omitempty"`
	Optional      bool            `json:"optional,omitempty"`
	Trackable     *bool           `json:"trackable,omitempty"`
	Children      []ManifestModel `json:"children,omitempty"`
}

// ManifestSet describes one scoring set to construct over the decoded
// content-model tree, keyed by the model id it anchors to.
type ManifestSet struct {
	ID                   string `json:"id"`
	Type                 string `json:"type"`
	Model                string `json:"model"`
	IsScoreIncluded      bool   `json:"isScoreIncluded,omitempty"`
	IsCompletionRequired bool   `json:"isCompletionRequired,omitempty"`
	CanReset             bool   `json:"canReset,omitempty"`
}

// PassmarkInput is the manifest's wire form of scoring.Passmark; absent
// fields fall back to the Config-level PassmarkConfig default (spec.md
// §6.5 applies the per-course object when present, the CLI default
// otherwise).
type PassmarkInput struct {
	IsEnabled             *bool    `json:"isEnabled,omitempty"`
	RequiresPassedSubsets *bool    `json:"requiresPassedSubsets,omitempty"`
	Score                 *float64 `json:"score,omitempty"`
	Correctness           *float64 `json:"correctness,omitempty"`
	IsScaled              *bool    `json:"isScaled,omitempty"`
}

// LoadManifest reads and decodes a course manifest via sigs.k8s.io/yaml,
// the same library the teacher's cmd/melange/config.go uses to print its
// own effective configuration.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if m.Course.ID == "" {
		return nil, fmt.Errorf("manifest %s: course.id is required", path)
	}
	return &m, nil
}

// BuildTree materializes the manifest's content-model tree as
// *contentmodel.Model nodes, wired to bus for change-event emission, and
// returns the course root plus a lookup from model id to node.
func (m *Manifest) BuildTree(bus scoring.EventBus) (*contentmodel.Model, map[string]*contentmodel.Model) {
	index := make(map[string]*contentmodel.Model)
	root := buildModel(m.Course, bus, index)
	return root, index
}

func buildModel(node ManifestModel, bus scoring.EventBus, index map[string]*contentmodel.Model) *contentmodel.Model {
	built := contentmodel.New(scoring.ObjectID(node.ID), node.Type).
		WithComponentType(node.ComponentType).
		WithOptional(node.Optional).
		WithBus(bus)
	if node.Trackable != nil {
		built = built.WithTrackable(*node.Trackable)
	}
	index[node.ID] = built

	for _, child := range node.Children {
		built.AddChild(buildModel(child, bus, index))
	}
	return built
}

// ResolvePassmark merges the manifest's optional per-course passmark over
// defaults (typically Config.Passmark), field by field.
func (m *Manifest) ResolvePassmark(defaults PassmarkConfig) scoring.Passmark {
	p := scoring.Passmark{
		IsEnabled:             defaults.IsEnabled,
		RequiresPassedSubsets: defaults.RequiresPassedSubsets,
		Score:                 defaults.Score,
		Correctness:           defaults.Correctness,
		IsScaled:              defaults.IsScaled,
	}
	if m.Passmark == nil {
		return p
	}
	if m.Passmark.IsEnabled != nil {
		p.IsEnabled = *m.Passmark.IsEnabled
	}
	if m.Passmark.RequiresPassedSubsets != nil {
		p.RequiresPassedSubsets = *m.Passmark.RequiresPassedSubsets
	}
	if m.Passmark.Score != nil {
		p.Score = *m.Passmark.Score
	}
	if m.Passmark.Correctness != nil {
		p.Correctness = *m.Passmark.Correctness
	}
	if m.Passmark.IsScaled != nil {
		p.IsScaled = *m.Passmark.IsScaled
	}
	return p
}

// BuildScoringSets constructs a scoring.ScoringSet for every entry in
// m.Sets, anchored to its named model via index. Unknown model ids are
// reported as an error rather than silently skipped, since a manifest is
// an explicit, hand-authored fixture (unlike a live content-model event
// the registry tolerates dropping per spec.md §7).
func (m *Manifest) BuildScoringSets(reg *scoring.Registry, bus scoring.EventBus, storage scoring.OfflineStorage, index map[string]*contentmodel.Model) ([]*scoring.ScoringSet, error) {
	sets := make([]*scoring.ScoringSet, 0, len(m.Sets))
	for _, sc := range m.Sets {
		model, ok := index[sc.Model]
		if !ok {
			return nil, fmt.Errorf("manifest set %s: unknown model id %q", sc.ID, sc.Model)
		}

		set, err := scoring.NewScoringSet(reg, bus, storage, scoring.ScoringSetConfig{
			SetConfig: scoring.SetConfig{
				ID:    sc.ID,
				Type:  scoring.SetType(sc.Type),
				Model: model,
			},
			IsScoreIncluded:      sc.IsScoreIncluded,
			IsCompletionRequired: sc.IsCompletionRequired,
			CanReset:             sc.CanReset,
			IsPassedFunc:         model.IsComplete,
		})
		if err != nil {
			return nil, fmt.Errorf("manifest set %s: %w", sc.ID, err)
		}
		sets = append(sets, set)
	}
	return sets, nil
}
