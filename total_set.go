package scoring

import "context"

// Passmark configures the TotalSet's aggregate pass/fail threshold
// (spec.md §3 "Total set", §4.5).
type Passmark struct {
	IsEnabled             bool
	RequiresPassedSubsets bool
	Score                 float64
	Correctness           float64
	IsScaled              bool
}

// TotalSet is the singleton ScoringSet of type "total", anchored to the
// course model, aggregating every registered set whose IsScoreIncluded or
// IsCompletionRequired is true (spec.md §4.5).
type TotalSet struct {
	ScoringSet

	// registry is kept directly (not just via Base.reg, which is nil on
	// intersected clones) so a cloned TotalSet can still re-intersect its
	// member sets against itself (spec.md §4.5 "When this TotalSet is
	// itself an intersected clone, each member set is re-intersected
	// against it before scoring").
	registry *Registry
	passmark Passmark

	// outcome and useContextOutcome back the admin/test override in
	// override.go; both are zero-value (no override) unless NewTotalSet
	// is given WithOutcome/WithContextOutcomeEnabled.
	outcome           Outcome
	useContextOutcome bool
}

// NewTotalSet constructs and registers the course's TotalSet. id defaults
// to "total" and type to "total" per spec.md §4.6's query defaults.
func NewTotalSet(reg *Registry, bus EventBus, storage OfflineStorage, course ContentModel, passmark Passmark, opts ...TotalSetOption) (*TotalSet, error) {
	t := &TotalSet{registry: reg, passmark: passmark}
	t.scoringSelf = t

	cfg := SetConfig{ID: "total", Type: "total", Model: course}
	t.Base = newBase(t, reg, cfg, 500)
	t.LifecycleSet = newLifecycleSet(t.Base, bus, storage)

	for _, opt := range opts {
		opt(t)
	}

	if reg != nil {
		if err := reg.Register(t); err != nil {
			return nil, err
		}
		reg.setTotal(t)
	}
	return t, nil
}

// Clone implements the dynamic-class clone for TotalSet (spec.md §9); see
// ScoringSet.Clone for the general pattern.
func (t *TotalSet) Clone(parent Set) Set {
	clone := &TotalSet{registry: t.registry, passmark: t.passmark, outcome: t.outcome, useContextOutcome: t.useContextOutcome}
	clone.scoringSelf = clone
	base := cloneBase(t.Base, clone, parent)
	clone.LifecycleSet = cloneLifecycleSet(t.LifecycleSet, base)
	return clone
}

// candidateModels is the TotalSet's own span (course, intersected with any
// parent) before member selection; it is intentionally the Base's
// non-overridden EffectiveModels so scoringSets/completionSets don't
// recurse into TotalSet's own EffectiveModels override.
func (t *TotalSet) candidateModels() []ContentModel {
	return t.Base.EffectiveModels()
}

// scoringSets is every other registered *ScoringSet with IsScoreIncluded
// true whose models hierarchy-intersect candidateModels (spec.md §4.5).
func (t *TotalSet) scoringSets() []Set {
	return t.filterMembers(func(ss *ScoringSet) bool { return ss.IsScoreIncluded() })
}

// completionSets is every other registered *ScoringSet with
// IsCompletionRequired true whose models hierarchy-intersect
// candidateModels (spec.md §4.5).
func (t *TotalSet) completionSets() []Set {
	return t.filterMembers(func(ss *ScoringSet) bool { return ss.IsCompletionRequired() })
}

func (t *TotalSet) filterMembers(include func(*ScoringSet) bool) []Set {
	if t.registry == nil {
		return nil
	}
	candidate := t.candidateModels()

	var out []Set
	for _, s := range t.registry.Sets() {
		if s.ID() == t.ID() {
			continue
		}
		ss, ok := s.(*ScoringSet)
		if !ok || !include(ss) {
			continue
		}
		if len(FilterByIntersectingHierarchy(ss.Models(), candidate)) == 0 {
			continue
		}
		out = append(out, s)
	}

	if !t.isIntersected() {
		return out
	}
	reintersected := make([]Set, 0, len(out))
	for _, s := range out {
		reintersected = append(reintersected, s.Intersect(t.self))
	}
	return reintersected
}

// EffectiveModels is the union of scoringSets.Models and
// completionSets.Models, de-duplicated and filtered by the intersection
// parent (spec.md §4.5), shadowing Base's own-model-only default.
func (t *TotalSet) EffectiveModels() []ContentModel {
	var all []ContentModel
	for _, s := range t.scoringSets() {
		all = append(all, s.Models()...)
	}
	for _, s := range t.completionSets() {
		all = append(all, s.Models()...)
	}
	all = uniqueModels(all)

	if parent, ok := t.IntersectionParent(); ok {
		return FilterByIntersectingHierarchy(all, parent.EffectiveModels())
	}
	return all
}

// MinScore sums MinScore across scoringSets, shadowing ScoringSet's
// sum-over-availableQuestions.
func (t *TotalSet) MinScore() float64 { return t.sumMembers(t.scoringSets(), func(s *ScoringSet) float64 { return s.MinScore() }) }

// MaxScore sums MaxScore across scoringSets.
func (t *TotalSet) MaxScore() float64 { return t.sumMembers(t.scoringSets(), func(s *ScoringSet) float64 { return s.MaxScore() }) }

// Score sums Score across scoringSets.
func (t *TotalSet) Score() float64 { return t.sumMembers(t.scoringSets(), func(s *ScoringSet) float64 { return s.Score() }) }

func (t *TotalSet) sumMembers(members []Set, f func(*ScoringSet) float64) float64 {
	var total float64
	for _, m := range members {
		if ss, ok := m.(*ScoringSet); ok {
			total += f(ss)
		}
	}
	return total
}

// Correctness sums Correctness across scoringSets.
func (t *TotalSet) Correctness() int {
	var total int
	for _, m := range t.scoringSets() {
		if ss, ok := m.(*ScoringSet); ok {
			total += ss.Correctness()
		}
	}
	return total
}

// MaxCorrectness sums MaxCorrectness across scoringSets.
func (t *TotalSet) MaxCorrectness() int {
	var total int
	for _, m := range t.scoringSets() {
		if ss, ok := m.(*ScoringSet); ok {
			total += ss.MaxCorrectness()
		}
	}
	return total
}

// IsComplete holds iff every completionSet is complete (spec.md §4.5). A
// TotalSet with no completion-required members is not complete: vacuous
// truth would mark an empty course complete on load, before any content
// model has even reported in (see DESIGN.md).
func (t *TotalSet) IsComplete() bool {
	sets := t.completionSets()
	if len(sets) == 0 {
		return false
	}
	for _, m := range sets {
		ss, ok := m.(*ScoringSet)
		if !ok {
			continue
		}
		if !ss.IsComplete() {
			return false
		}
	}
	return true
}

// IsPassed holds iff the (possibly scaled) score and correctness both meet
// the passmark, and, if RequiresPassedSubsets is set, every scoring subset
// is itself passed (spec.md §4.5).
func (t *TotalSet) IsPassed() bool {
	if !t.passmark.IsEnabled {
		return false
	}

	score := t.Score()
	correctness := float64(t.Correctness())
	if t.passmark.IsScaled {
		score = float64(t.ScaledScore())
		correctness = float64(t.ScaledCorrectness())
	}
	if score < t.passmark.Score || correctness < t.passmark.Correctness {
		return false
	}

	if t.passmark.RequiresPassedSubsets {
		for _, m := range t.scoringSets() {
			ss, ok := m.(*ScoringSet)
			if !ok {
				continue
			}
			if !ss.IsPassed() {
				return false
			}
		}
	}
	return true
}

// IsFailed adds the canReset exemption on top of ScoringSet's
// IsComplete && !IsPassed (spec.md §4.5: "isFailed = isComplete ∧
// ¬isPassed ∧ ¬canReset").
func (t *TotalSet) IsFailed() bool {
	return t.IsComplete() && !t.IsPassed() && !t.CanReset()
}

// CanReset holds iff any scoringSet can reset (spec.md §4.5).
func (t *TotalSet) CanReset() bool {
	for _, m := range t.scoringSets() {
		if ss, ok := m.(*ScoringSet); ok && ss.CanReset() {
			return true
		}
	}
	return false
}

// IsCompleteCtx is IsComplete with the admin/test outcome override
// (override.go) applied: an OutcomePass or OutcomeFail override always
// reports complete, since both represent an assessment that has
// concluded; only OutcomeUnset falls through to real aggregation.
func (t *TotalSet) IsCompleteCtx(ctx context.Context) bool {
	if o := t.resolveOutcome(ctx); o != OutcomeUnset {
		return true
	}
	return t.IsComplete()
}

// IsPassedCtx is IsPassed with the admin/test outcome override
// (override.go) applied.
func (t *TotalSet) IsPassedCtx(ctx context.Context) bool {
	switch t.resolveOutcome(ctx) {
	case OutcomePass:
		return true
	case OutcomeFail:
		return false
	default:
		return t.IsPassed()
	}
}

// OnUpdate runs ScoringSet's onCompleted/onPassed dispatch (which, with
// Type()=="total", emits scoring:total:complete/scoring:set:complete and
// scoring:total:passed/scoring:set:passed) and additionally emits the
// root-only scoring:complete/scoring:pass events on the same transitions
// (spec.md §4.5, §6.2).
func (t *TotalSet) OnUpdate(ctx context.Context) error {
	completeNow := t.IsCompleteCtx(ctx)
	passedNow := t.IsPassedCtx(ctx)
	wasComplete := t.wasComplete
	wasPassed := t.wasPassed

	err := t.ScoringSet.OnUpdate(ctx)

	if !t.isIntersected() {
		if completeNow && !wasComplete {
			publishAll(t.bus, t.self, "scoring:complete")
		}
		if passedNow && !wasPassed {
			publishAll(t.bus, t.self, "scoring:pass")
		}
	}
	return err
}
