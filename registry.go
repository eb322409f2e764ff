package scoring

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Registry holds all root (non-intersected) sets by unique id, enforces
// id uniqueness, and publishes register/deregister events (spec.md §2 "Set
// registry", Invariant 1).
//
// A Registry is not safe for concurrent use from multiple goroutines; the
// engine is single-threaded cooperative (spec.md §5) and all registry
// access happens from the renderer's drain loop or the goroutine that owns
// it. The mutex guards against accidental concurrent use rather than
// enabling it.
type Registry struct {
	mu   sync.Mutex
	bus  EventBus
	sets map[SetID]Set
	// order preserves registration order for stable sorts and for
	// enqueue-order tie-breaking further up the lifecycle stack.
	order []SetID

	total      *TotalSet
	generation uint64
}

// NewRegistry constructs an empty registry publishing through bus. bus may
// be nil, in which case register/deregister events are dropped.
func NewRegistry(bus EventBus) *Registry {
	return &Registry{
		bus:  bus,
		sets: make(map[SetID]Set),
	}
}

// Register adds a root set to the registry. It is an error to register an
// intersected clone (IntersectionParent != nil) or a duplicate id
// (spec.md Invariant 1, Invariant 2).
func (r *Registry) Register(s Set) error {
	if _, ok := s.IntersectionParent(); ok {
		return ErrIntersectedClone
	}

	r.mu.Lock()
	if _, exists := r.sets[s.ID()]; exists {
		r.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrDuplicateSetID, s.ID())
	}
	r.sets[s.ID()] = s
	r.order = append(r.order, s.ID())
	r.mu.Unlock()

	publishAll(r.bus, s, fmt.Sprintf("scoring:%s:register", s.Type()), "scoring:register")
	return nil
}

// Deregister removes a root set, e.g. because its backing content model
// was removed, or the host called Registry.Clear() (spec.md "Lifecycle":
// "destroyed by deregistration"). Passing an intersected clone returns
// ErrIntersectedClone.
func (r *Registry) Deregister(s Set) error {
	if _, ok := s.IntersectionParent(); ok {
		return ErrIntersectedClone
	}

	r.mu.Lock()
	if _, exists := r.sets[s.ID()]; !exists {
		r.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrNotRegistered, s.ID())
	}
	delete(r.sets, s.ID())
	for i, id := range r.order {
		if id == s.ID() {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	publishAll(r.bus, s, fmt.Sprintf("scoring:%s:deregister", s.Type()), "scoring:deregister")
	return nil
}

// Clear deregisters every root set.
func (r *Registry) Clear() {
	for _, s := range r.Sets() {
		_ = r.Deregister(s)
	}
}

// Sets returns every registered root set, sorted ascending by Order(),
// ties broken by registration order (spec.md §2 "Set registry": "orders by
// order").
func (r *Registry) Sets() []Set {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Set, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.sets[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order() < out[j].Order()
	})
	return out
}

// GetSetByID returns the registered root set with the given id.
func (r *Registry) GetSetByID(id SetID) (Set, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sets[id]
	return s, ok
}

// HasID reports whether id is already taken by a registered root set.
func (r *Registry) HasID(id SetID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sets[id]
	return ok
}

// nextFreeID scans for the first unused "{prefix}-{n}" id, n starting at 1
// (spec.md §4.1 id generation).
func (r *Registry) nextFreeID(prefix string) SetID {
	for n := 1; ; n++ {
		candidate := SetID(fmt.Sprintf("%s-%d", prefix, n))
		if !r.HasID(candidate) {
			return candidate
		}
	}
}

// GetSetsByType returns every registered root set of the given type.
func (r *Registry) GetSetsByType(t SetType) []Set {
	var out []Set
	for _, s := range r.Sets() {
		if s.Type() == t {
			out = append(out, s)
		}
	}
	return out
}

// GetSetsByIntersectingModelID returns every registered root set whose
// Models() hierarchy-intersects modelID.
func (r *Registry) GetSetsByIntersectingModelID(id ObjectID) []Set {
	var out []Set
	for _, s := range r.Sets() {
		for _, m := range s.Models() {
			if m.ID() == id {
				out = append(out, s)
				break
			}
			if modelIntersectsID(m, id) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

func modelIntersectsID(m ContentModel, id ObjectID) bool {
	for _, anc := range m.Ancestors(false) {
		if anc.ID() == id {
			return true
		}
	}
	return hasDescendantID(m, id)
}

func hasDescendantID(m ContentModel, id ObjectID) bool {
	for _, c := range m.Children() {
		if c.ID() == id || hasDescendantID(c, id) {
			return true
		}
	}
	return false
}

// Update broadcasts the public update() trigger to every registered root
// set (spec.md §6.4: "update()" on the scoring root).
func (r *Registry) Update(ctx context.Context) {
	for _, s := range r.Sets() {
		if u, ok := s.(interface{ Update(context.Context) }); ok {
			u.Update(ctx)
		}
	}
}

// Reset broadcasts the reset() trigger by calling Reset on every registered
// root set, whatever its CanReset; each set then notifies its installed
// observer, which enqueues the sets on the same model into restart. It
// does not enqueue anything into the "reset" phase and does not consult
// CanReset: the lifecycle controller's GlobalReset is what enqueues every
// set into that phase, where only sets whose CanReset is true are reset.
func (r *Registry) Reset(ctx context.Context) {
	for _, s := range r.Sets() {
		if rs, ok := s.(interface{ Reset(context.Context) }); ok {
			rs.Reset(ctx)
		}
	}
}

// Total returns the registry's singleton TotalSet, if one has been
// constructed via NewTotalSet against this registry.
func (r *Registry) Total() (*TotalSet, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total, r.total != nil
}

func (r *Registry) setTotal(t *TotalSet) {
	r.mu.Lock()
	r.total = t
	r.mu.Unlock()
}

// Generation returns the registry's current dirty-stamp. Every set's
// derived-view cache compares against this value to decide whether a
// memoized EffectiveModels/AvailableModels/AvailableQuestions is still
// fresh (spec.md §9 "cache per-batch derived views... keyed by a
// dirty-stamp bumped by the controller").
func (r *Registry) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// BumpGeneration invalidates every set's derived-view cache. The lifecycle
// controller calls this whenever it observes a content model being added,
// removed, or changing an attribute.
func (r *Registry) BumpGeneration() {
	r.mu.Lock()
	r.generation++
	r.mu.Unlock()
}
