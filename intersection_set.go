package scoring

// Set is the query-surface every scoring-set type implements (spec.md
// §4.1, "IntersectionSet"). Concrete types are *AdaptModelSet, *ScoringSet,
// and *TotalSet; all three embed Base.
type Set interface {
	ID() SetID
	Type() SetType
	Title() string

	// Model returns the set's anchor content model, if it has one.
	Model() (ContentModel, bool)
	// ModelID is a convenience accessor over Model, used by the query
	// language's modelId attribute (spec.md §4.6) and by the lifecycle
	// controller's "local to an object" rule (spec.md §4.7).
	ModelID() (ObjectID, bool)

	// Models is the set's explicit or model-derived membership, before
	// any intersection or availability filtering (spec.md §3).
	Models() []ContentModel

	// IntersectionParent is non-nil iff this instance is an intersected
	// clone rather than a registered root set (spec.md Invariant 2).
	IntersectionParent() (Set, bool)

	// Order is the lifecycle sort key (spec.md §3, default 400).
	Order() int

	// EffectiveModels, AvailableModels and the projections below are the
	// derived views in spec.md §3, all computed lazily from Models and
	// IntersectionParent.
	EffectiveModels() []ContentModel
	AvailableModels() []ContentModel
	Components() []ContentModel
	AvailableComponents() []ContentModel
	Questions() []ContentModel
	AvailableQuestions() []ContentModel
	PresentationComponents() []ContentModel
	TrackableComponents() []ContentModel

	IsEnabled() bool
	IsOptional() bool
	IsAvailable() bool
	IsPopulated() bool
	IsNotPopulated() bool
	IsModelAvailableInHierarchy() bool

	// CanReset reports whether the renderer resets this set when it drains
	// the "reset" phase; the controller's global reset enqueues every set
	// into that phase, and sets reporting false are skipped. Only
	// ScoringSet (and TotalSet, via it) ever returns true; spec.md §9
	// leaves the base-vs-subclass placement open, resolved in favor of the
	// base interface so callers never need a type switch (see SPEC_FULL.md
	// §4).
	CanReset() bool

	// Intersect builds a clone of this set's concrete type anchored to
	// parent. The clone is never registered (spec.md Invariant 2,
	// Invariant 6).
	Intersect(parent Set) Set

	// Clone rebuilds this set's concrete type from its own stable state
	// plus a new intersection parent (spec.md §9 "Dynamic class resolution
	// on clone"). Intersect calls Clone on the set's own concrete type;
	// callers normally use Intersect.
	Clone(parent Set) Set

	// SubsetPath is the chain from the root ancestor to this set,
	// inclusive (spec.md §4.1).
	SubsetPath() []Set

	// GetSubsetByID, GetSubsetsByType and GetSubsetsByIntersectingModelID
	// return this-intersected clones of matching registered sets, excluding
	// this set itself (spec.md §4.1).
	GetSubsetByID(id SetID) (Set, bool)
	GetSubsetsByType(t SetType) []Set
	GetSubsetsByIntersectingModelID(id ObjectID) []Set
	IntersectedSubsets() []Set
	PopulatedIntersectedSubsets() []Set
}

// Base implements the common IntersectionSet state and derived-view
// plumbing shared by AdaptModelSet, ScoringSet, and TotalSet (spec.md
// §4.1). It is always embedded, never used standalone: a concrete type
// must call newBase with itself as the self parameter so Intersect can
// dispatch to the concrete type's Clone (the "self" trick substitutes for
// the dynamic-class clone the teacher's source relies on; see spec.md §9).
type Base struct {
	self Set

	reg   *Registry
	cache *viewCache

	id                 SetID
	typ                SetType
	title              string
	model              ContentModel
	models             []ContentModel
	intersectionParent Set
	order              int

	cacheGen uint64
}

// refreshCache invalidates the memoized derived views if the registry's
// dirty-stamp has moved on since they were last computed (spec.md §9
// per-batch derived-view cache). Root sets track the registry's
// generation; intersected clones (reg == nil) never invalidate, since they
// are built fresh for one query and discarded.
func (b *Base) refreshCache() {
	if b.reg == nil {
		return
	}
	gen := b.reg.Generation()
	if gen != b.cacheGen {
		b.cache.invalidate()
		b.cacheGen = gen
	}
}

// SetConfig is the shared constructor input for every concrete set type
// (spec.md §4.1 constructor contract).
type SetConfig struct {
	ID     string
	Type   SetType
	Title  string
	Model  ContentModel
	Models []ContentModel
	// Order overrides the type's default order when non-nil.
	Order *int
}

// newBase wires up shared state for a root (non-intersected) set and
// performs §4.1 id generation when cfg.ID is empty. reg may be nil only
// when constructing an intersected clone via cloneBase.
func newBase(self Set, reg *Registry, cfg SetConfig, defaultOrder int) Base {
	b := Base{
		self:   self,
		reg:    reg,
		cache:  newViewCache(),
		typ:    cfg.Type,
		title:  cfg.Title,
		model:  cfg.Model,
		models: cfg.Models,
		order:  defaultOrder,
	}
	if cfg.Order != nil {
		b.order = *cfg.Order
	}
	b.id = resolveSetID(reg, cfg.ID, cfg.Type, cfg.Model)
	return b
}

// resolveSetID implements spec.md §4.1's id-generation rule: scan the
// registry and pick the first free "{prefix}-{n}", where prefix is
// type || modelId || "unknown". If neither type nor modelId is set, log a
// non-fatal error (spec.md §7 MissingOverride is the closest analogue:
// this is not a MissingOverride but shares its "log and continue" policy).
func resolveSetID(reg *Registry, explicit string, typ SetType, model ContentModel) SetID {
	if explicit != "" {
		return SetID(explicit)
	}

	prefix := string(typ)
	if prefix == "" && model != nil {
		prefix = string(model.ID())
	}
	if prefix == "" {
		logf("scoring: set has neither type nor model; generating id from \"unknown\"")
		prefix = "unknown"
	}
	if reg == nil {
		return SetID(prefix + "-1")
	}
	return reg.nextFreeID(prefix)
}

// cloneBase builds the Base portion of an intersected clone: shallow-copy
// the enumerable own state, point intersectionParent at parent, and drop
// the registry/cache (clones never register and never share a cache with
// their source, spec.md Invariant 3).
func cloneBase(src Base, self Set, parent Set) Base {
	return Base{
		self:               self,
		reg:                nil,
		cache:              newViewCache(),
		id:                 src.id,
		typ:                src.typ,
		title:              src.title,
		model:              src.model,
		models:             src.models,
		intersectionParent: parent,
		order:              src.order,
	}
}

func (b *Base) ID() SetID      { return b.id }
func (b *Base) Type() SetType  { return b.typ }
func (b *Base) Title() string  { return b.title }
func (b *Base) Order() int     { return b.order }
func (b *Base) CanReset() bool { return false }

func (b *Base) Model() (ContentModel, bool) {
	return b.model, b.model != nil
}

func (b *Base) ModelID() (ObjectID, bool) {
	if b.model == nil {
		return "", false
	}
	return b.model.ID(), true
}

// Models returns the set's explicit membership, or every descendant
// (including detached) of Model when no explicit list was given (spec.md
// §3 "models"). Detached models are allowed here; AvailableModels and
// IsModelAvailableInHierarchy strictly exclude them (spec.md §7
// DetachedModel).
func (b *Base) Models() []ContentModel {
	if b.models != nil {
		return b.models
	}
	if b.model == nil {
		return nil
	}
	return allDescendants(b.model)
}

func allDescendants(m ContentModel) []ContentModel {
	var out []ContentModel
	for _, c := range m.Children() {
		out = append(out, c)
		out = append(out, allDescendants(c)...)
	}
	return out
}

func (b *Base) IntersectionParent() (Set, bool) {
	return b.intersectionParent, b.intersectionParent != nil
}

// EffectiveModels is Models() restricted to the overlapping-hierarchy
// intersection with the intersection parent's EffectiveModels (spec.md §3,
// Invariant 4). Results are memoized per batch (spec.md §9 derived-view
// cache); see cache.go.
func (b *Base) EffectiveModels() []ContentModel {
	b.refreshCache()
	return b.cache.effectiveModels(func() []ContentModel {
		models := uniqueModels(b.Models())
		if b.intersectionParent == nil {
			return models
		}
		return FilterByIntersectingHierarchy(models, b.intersectionParent.EffectiveModels())
	})
}

// AvailableModels is EffectiveModels restricted to nodes whose ancestors
// are all attached and available (spec.md §3, Invariant 5 "filtering
// order").
// AvailableModels and the projections below call b.self.EffectiveModels(),
// not b.EffectiveModels(), so that a type overriding EffectiveModels (e.g.
// TotalSet, spec.md §4.5) is reflected throughout every derived view
// without each concrete type having to re-implement the projections too.
func (b *Base) AvailableModels() []ContentModel {
	b.refreshCache()
	return b.cache.availableModels(func() []ContentModel {
		return availableModels(b.self.EffectiveModels())
	})
}

func (b *Base) Components() []ContentModel {
	return filterType(b.self.EffectiveModels(), "component")
}

func (b *Base) AvailableComponents() []ContentModel {
	return filterType(b.self.AvailableModels(), "component")
}

func (b *Base) Questions() []ContentModel {
	return filterTypeGroup(b.self.EffectiveModels(), "questions")
}

func (b *Base) AvailableQuestions() []ContentModel {
	b.refreshCache()
	return b.cache.availableQuestions(func() []ContentModel {
		return filterTypeGroup(b.self.AvailableModels(), "questions")
	})
}

func (b *Base) PresentationComponents() []ContentModel {
	return filterTypeGroup(b.self.EffectiveModels(), "presentationComponents")
}

func (b *Base) TrackableComponents() []ContentModel {
	out := make([]ContentModel, 0)
	for _, m := range b.self.EffectiveModels() {
		if m.IsTrackable() {
			out = append(out, m)
		}
	}
	return out
}

func filterType(models []ContentModel, typ string) []ContentModel {
	out := make([]ContentModel, 0)
	for _, m := range models {
		if m.Type() == typ {
			out = append(out, m)
		}
	}
	return out
}

func filterTypeGroup(models []ContentModel, group string) []ContentModel {
	out := make([]ContentModel, 0)
	for _, m := range models {
		if m.IsTypeGroup(group) {
			out = append(out, m)
		}
	}
	return out
}

func (b *Base) IsEnabled() bool { return true }

func (b *Base) IsOptional() bool {
	if b.model == nil {
		return false
	}
	return b.model.IsOptional()
}

func (b *Base) IsAvailable() bool {
	if b.model == nil {
		return true
	}
	return b.model.IsAvailable()
}

func (b *Base) IsPopulated() bool    { return len(b.Models()) > 0 }
func (b *Base) IsNotPopulated() bool { return !b.self.IsPopulated() }

func (b *Base) IsModelAvailableInHierarchy() bool {
	return modelIsAvailableInHierarchy(b.model)
}

// Intersect builds a clone of self's concrete type anchored to parent
// (spec.md §4.1 "intersect"). It delegates to self.Clone so the returned
// value has the same concrete type as self, not Base (spec.md Invariant 6
// "chain reduction returns the rightmost type" relies on every link in the
// chain preserving its own concrete type).
func (b *Base) Intersect(parent Set) Set {
	return b.self.Clone(parent)
}

// SubsetPath returns the chain from the root ancestor to self, inclusive.
func (b *Base) SubsetPath() []Set {
	var chain []Set
	cur := b.self
	for {
		chain = append([]Set{cur}, chain...)
		parent, ok := cur.IntersectionParent()
		if !ok {
			return chain
		}
		cur = parent
	}
}

// GetSubsetByID returns an id-intersected clone of the matching registered
// root set, excluding self.
func (b *Base) GetSubsetByID(id SetID) (Set, bool) {
	if b.reg == nil {
		return nil, false
	}
	s, ok := b.reg.GetSetByID(id)
	if !ok || s.ID() == b.id {
		return nil, false
	}
	return s.Intersect(b.self), true
}

// GetSubsetsByType returns type-matching registered root sets, intersected
// against self, excluding self.
func (b *Base) GetSubsetsByType(t SetType) []Set {
	if b.reg == nil {
		return nil
	}
	var out []Set
	for _, s := range b.reg.GetSetsByType(t) {
		if s.ID() == b.id {
			continue
		}
		out = append(out, s.Intersect(b.self))
	}
	return out
}

// GetSubsetsByIntersectingModelID returns registered root sets whose
// Models() hierarchy-intersects modelID, intersected against self,
// excluding self.
func (b *Base) GetSubsetsByIntersectingModelID(id ObjectID) []Set {
	if b.reg == nil {
		return nil
	}
	var out []Set
	for _, s := range b.reg.GetSetsByIntersectingModelID(id) {
		if s.ID() == b.id {
			continue
		}
		out = append(out, s.Intersect(b.self))
	}
	return out
}

// IntersectedSubsets returns self-intersected clones of every other
// registered root set.
func (b *Base) IntersectedSubsets() []Set {
	if b.reg == nil {
		return nil
	}
	var out []Set
	for _, s := range b.reg.Sets() {
		if s.ID() == b.id {
			continue
		}
		out = append(out, s.Intersect(b.self))
	}
	return out
}

// PopulatedIntersectedSubsets filters IntersectedSubsets to those whose
// EffectiveModels is non-empty.
func (b *Base) PopulatedIntersectedSubsets() []Set {
	var out []Set
	for _, s := range b.self.IntersectedSubsets() {
		if len(s.EffectiveModels()) > 0 {
			out = append(out, s)
		}
	}
	return out
}
