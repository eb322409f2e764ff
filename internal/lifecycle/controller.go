package lifecycle

import (
	"context"

	"github.com/adaptlearning/scoring"
)

// Controller implements scoring.Observer and translates content-model and
// navigation events into Renderer enqueues per the entry rules of
// spec.md §4.7. It is the Go port of the teacher's notion of a runtime
// that owns the registry and drives sets through their phases; this repo
// has no UI-rendering counterpart to the teacher's checker/migrator pair,
// so Controller+Renderer is the closest domain analogue.
type Controller struct {
	reg      *scoring.Registry
	bus      scoring.EventBus
	storage  scoring.OfflineStorage
	renderer *Renderer
	started  bool
}

// NewController wires a Controller to reg and renderer. bus/storage are
// forwarded to AdaptModelSets created via OnModelAdded.
func NewController(reg *scoring.Registry, bus scoring.EventBus, storage scoring.OfflineStorage, renderer *Renderer) *Controller {
	return &Controller{reg: reg, bus: bus, storage: storage, renderer: renderer}
}

// Started reports whether Start has completed (spec.md §4.7 "only then
// mark the system started").
func (c *Controller) Started() bool { return c.started }

// OnSetUpdate implements scoring.Observer: a set's programmatic update()
// enqueues every set whose Models() intersect the triggering set's anchor
// model into the update phase (spec.md §4.7 "On set.update()").
func (c *Controller) OnSetUpdate(ctx context.Context, s scoring.Set) {
	modelID, ok := s.ModelID()
	if !ok {
		return
	}
	c.renderer.Enqueue(PhaseUpdate, c.reg.GetSetsByIntersectingModelID(modelID))
}

// OnSetReset implements scoring.Observer: a set's programmatic reset()
// enqueues every set anchored to the same model into restart (spec.md
// §4.7 "On set.reset()").
func (c *Controller) OnSetReset(ctx context.Context, s scoring.Set) {
	modelID, ok := s.ModelID()
	if !ok {
		return
	}
	c.renderer.Enqueue(PhaseRestart, c.setsOnModel(modelID))
}

func (c *Controller) setsOnModel(modelID scoring.ObjectID) []scoring.Set {
	var out []scoring.Set
	for _, other := range c.reg.Sets() {
		if id, ok := other.ModelID(); ok && id == modelID {
			out = append(out, other)
		}
	}
	return out
}

// installObserver attaches c to s, if s exposes the LifecycleHooks
// surface (always true for the three concrete set types this package
// knows about).
func (c *Controller) installObserver(s scoring.Set) {
	if hooks, ok := s.(scoring.LifecycleHooks); ok {
		hooks.InstallObserver(c)
	}
}

// OnModelAdded implements spec.md §4.7 "On content-model added": it
// constructs the model's AdaptModelSet, installs the controller as its
// observer, and (once started) enqueues it into init.
func (c *Controller) OnModelAdded(model scoring.ContentModel) (*scoring.AdaptModelSet, error) {
	set, err := scoring.NewAdaptModelSet(c.reg, c.bus, c.storage, model)
	if err != nil {
		return nil, err
	}
	c.reg.BumpGeneration()
	c.installObserver(set)
	if c.started {
		c.renderer.Enqueue(PhaseInit, []scoring.Set{set})
	}
	return set, nil
}

// OnModelRemoved implements spec.md §4.7 "On content-model removed":
// deregisters the model's AdaptModelSet.
func (c *Controller) OnModelRemoved(model scoring.ContentModel) error {
	set, ok := c.reg.GetSetByID(scoring.SetID(model.ID()))
	if !ok {
		return nil
	}
	c.reg.BumpGeneration()
	return c.reg.Deregister(set)
}

// modelChangeAttrs are the content-model attribute changes that enqueue
// intersecting sets into update (spec.md §4.7).
var modelChangeAttrs = map[string]bool{
	"isAvailable":           true,
	"isInteractionComplete": true,
	"isActive":              true,
	"isVisited":             true,
}

// OnModelAttrChanged implements spec.md §4.7 "On content-model change in
// isAvailable, isInteractionComplete, isActive, isVisited". Events prior
// to Start are dropped, matching "Prior to started, change events are
// dropped." Every call, dropped or not, bumps the registry's dirty stamp
// so derived-view caches recompute against the changed model.
func (c *Controller) OnModelAttrChanged(attr string, model scoring.ContentModel) {
	c.reg.BumpGeneration()
	if !c.started || !modelChangeAttrs[attr] {
		return
	}
	c.renderer.Enqueue(PhaseUpdate, c.reg.GetSetsByIntersectingModelID(model.ID()))
}

// OnNavigate implements spec.md §4.7 "On navigation change": sets local to
// previous enqueue into leave, sets local to current enqueue into visit.
func (c *Controller) OnNavigate(previous, current scoring.ObjectID) {
	if !c.started {
		return
	}
	var leave, visit []scoring.Set
	for _, s := range c.reg.Sets() {
		if previous != "" && isLocalTo(s, previous) {
			leave = append(leave, s)
		}
		if current != "" && isLocalTo(s, current) {
			visit = append(visit, s)
		}
	}
	c.renderer.Enqueue(PhaseLeave, leave)
	c.renderer.Enqueue(PhaseVisit, visit)
}

// isLocalTo implements the "local" predicate of spec.md §4.7: a set is
// local to location iff its modelId equals location, or its anchor
// model's ancestors include location.
func isLocalTo(s scoring.Set, location scoring.ObjectID) bool {
	if id, ok := s.ModelID(); ok && id == location {
		return true
	}
	model, ok := s.Model()
	if !ok {
		return false
	}
	for _, anc := range model.Ancestors(false) {
		if anc.ID() == location {
			return true
		}
	}
	return false
}

// OnModelReset implements spec.md §4.7 "On modelReset": enqueue sets
// whose modelId equals the reset model into restart.
func (c *Controller) OnModelReset(modelID scoring.ObjectID) {
	if !c.started {
		return
	}
	c.renderer.Enqueue(PhaseRestart, c.setsOnModel(modelID))
}

// GlobalReset implements spec.md §4.7 "On global scoring.reset(): enqueue
// all sets into reset."
func (c *Controller) GlobalReset() {
	c.renderer.Enqueue(PhaseReset, c.reg.Sets())
}

// Start runs the startup sequence of spec.md §4.7: init, then restore,
// then start (only for sets whose wasRestored came back false — the
// Renderer's dispatch table enforces that filter), then update for every
// set, flushing the renderer synchronously after each phase rather than
// waiting on frame timing. The controller is marked started only once
// this sequence has fully drained, so any OnModelAttrChanged/OnNavigate
// events observed during content load are safely dropped up to this
// point (spec.md §4.7 "Prior to started, change events are dropped").
func (c *Controller) Start(ctx context.Context) error {
	sets := c.reg.Sets()
	for _, s := range sets {
		c.installObserver(s)
	}

	for _, phase := range []Phase{PhaseInit, PhaseRestore, PhaseStart, PhaseUpdate} {
		c.renderer.Enqueue(phase, sets)
		if err := c.renderer.Flush(ctx); err != nil {
			return err
		}
	}

	c.started = true
	return nil
}
