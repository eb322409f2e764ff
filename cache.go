package scoring

import "sync"

// viewCache memoizes a set's derived views (EffectiveModels, AvailableModels,
// AvailableQuestions) for the duration of one lifecycle batch, grounded on
// the teacher's melange/cache.go TTL cache but keyed by a dirty-stamp
// instead of a wall-clock TTL (spec.md §9 design note: "cache per-batch
// derived views over mutable model state... recompute on access if
// stale").
//
// An intersected clone's cache is never invalidated by a registry
// generation bump (clones have no registry, see cloneBase); this is
// harmless because clones are built fresh for the duration of a single
// query or subset lookup and discarded afterward.
type viewCache struct {
	mu sync.Mutex

	effModelsGen uint64
	effModelsSet bool
	effModels    []ContentModel

	availModelsGen uint64
	availModelsSet bool
	availModels    []ContentModel

	availQuestionsGen uint64
	availQuestionsSet bool
	availQuestions    []ContentModel
}

func newViewCache() *viewCache {
	return &viewCache{}
}

func (c *viewCache) effectiveModels(compute func() []ContentModel) []ContentModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.effModelsSet {
		c.effModels = compute()
		c.effModelsSet = true
	}
	return c.effModels
}

func (c *viewCache) availableModels(compute func() []ContentModel) []ContentModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.availModelsSet {
		c.availModels = compute()
		c.availModelsSet = true
	}
	return c.availModels
}

func (c *viewCache) availableQuestions(compute func() []ContentModel) []ContentModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.availQuestionsSet {
		c.availQuestions = compute()
		c.availQuestionsSet = true
	}
	return c.availQuestions
}

// invalidate drops every memoized view, forcing recomputation on next
// access. Called when a set observes a registry generation bump.
func (c *viewCache) invalidate() {
	c.mu.Lock()
	c.effModelsSet = false
	c.availModelsSet = false
	c.availQuestionsSet = false
	c.mu.Unlock()
}
