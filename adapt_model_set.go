package scoring

// AdaptModelSet wraps a single content model as a queryable set (spec.md
// §2, §4.6). It is a sibling of ScoringSet under LifecycleSet, not a
// scoring subclass (spec.md §9 REDESIGN FLAGS: "Prototype stitching of
// AdaptModelSet into ScoringSet"); its lifecycle callbacks stay at
// LifecycleSet's no-op defaults, and it answers isComplete/isPassed/
// isFailed by reading the model directly rather than aggregating
// questions.
type AdaptModelSet struct {
	LifecycleSet
}

// NewAdaptModelSet constructs and registers an AdaptModelSet anchored to
// model. The id defaults to the model's own id, so the lifecycle
// controller's entry rules ("on content-model removed: deregister the
// corresponding AdaptModelSet") can address it by model id directly.
func NewAdaptModelSet(reg *Registry, bus EventBus, storage OfflineStorage, model ContentModel) (*AdaptModelSet, error) {
	a := &AdaptModelSet{}
	cfg := SetConfig{
		ID:    string(model.ID()),
		Type:  "adaptModel",
		Model: model,
	}
	a.Base = newBase(a, reg, cfg, adaptModelOrder(model))
	a.LifecycleSet = newLifecycleSet(a.Base, bus, storage)
	if reg != nil {
		if err := reg.Register(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// adaptModelOrder implements spec.md §3's "AdaptModelSet uses
// 100 − ancestorDepth so descendants run first".
func adaptModelOrder(model ContentModel) int {
	return 100 - len(model.Ancestors(false))
}

// Clone implements the dynamic-class clone (spec.md §9); see
// ScoringSet.Clone for the general pattern.
func (a *AdaptModelSet) Clone(parent Set) Set {
	clone := &AdaptModelSet{}
	base := cloneBase(a.Base, clone, parent)
	clone.LifecycleSet = cloneLifecycleSet(a.LifecycleSet, base)
	return clone
}

// ModelType is the anchor model's content type (course, menu, page,
// article, block, component), distinct from the set's own Type()
// ("adaptModel").
func (a *AdaptModelSet) ModelType() string {
	if a.model == nil {
		return ""
	}
	return a.model.Type()
}

// ModelComponent is the anchor model's component sub-type (e.g. "mcq").
func (a *AdaptModelSet) ModelComponent() string {
	if a.model == nil {
		return ""
	}
	return a.model.ComponentType()
}

// ModelTypeGroup reports whether the anchor model belongs to the named
// type-group. It is exposed as a callable attribute to the query language
// (spec.md §4.6 "If the set's property is callable... call it with the
// value and require truthy result").
func (a *AdaptModelSet) ModelTypeGroup(group string) bool {
	if a.model == nil {
		return false
	}
	return a.model.IsTypeGroup(group)
}

// IsComplete reads the anchor model's own completion flag directly
// (spec.md §4.6 attribute table).
func (a *AdaptModelSet) IsComplete() bool {
	if a.model == nil {
		return false
	}
	return a.model.IsComplete()
}

// IsIncomplete is the negation of IsComplete.
func (a *AdaptModelSet) IsIncomplete() bool { return !a.IsComplete() }

// IsPassed aliases IsComplete: an AdaptModelSet has no pass/fail concept
// of its own (spec.md §4.6 "isPassed (alias of isComplete)").
func (a *AdaptModelSet) IsPassed() bool { return a.IsComplete() }

// IsFailed is always false for an AdaptModelSet (spec.md §4.6
// "isFailed (always false)").
func (a *AdaptModelSet) IsFailed() bool { return false }
