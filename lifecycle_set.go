package scoring

import "context"

// LifecycleCallbacks is implemented by every concrete set type and invoked
// by the lifecycle controller during phase dispatch (spec.md §4.3, §4.7).
// All six callbacks may suspend (they take a context.Context and may do
// blocking work before returning).
type LifecycleCallbacks interface {
	OnInit(ctx context.Context) error
	// OnRestore returns wasRestored: whether prior state was found and
	// applied (spec.md §4.3).
	OnRestore(ctx context.Context) (bool, error)
	OnStart(ctx context.Context) error
	OnVisit(ctx context.Context) error
	OnLeave(ctx context.Context) error
	OnUpdate(ctx context.Context) error
}

// LifecycleSet extends Base with the six cooperative callbacks, the
// update()/reset() triggers, and lazy state persistence (spec.md §4.3).
// Concrete types embed LifecycleSet and may override any of the six
// callback hooks by setting the corresponding *Func field; a nil field
// keeps LifecycleSet's default (spec.md §4.3 "Default semantics").
type LifecycleSet struct {
	Base

	bus     EventBus
	storage OfflineStorage
	state   *State

	observer Observer

	wasRestored bool
	wasComplete bool
	wasPassed   bool

	OnInitFunc    func(ctx context.Context) error
	OnRestoreFunc func(ctx context.Context) (bool, error)
	OnStartFunc   func(ctx context.Context) error
	OnVisitFunc   func(ctx context.Context) error
	OnLeaveFunc   func(ctx context.Context) error
	OnUpdateFunc  func(ctx context.Context) error
}

func newLifecycleSet(base Base, bus EventBus, storage OfflineStorage) LifecycleSet {
	return LifecycleSet{Base: base, bus: bus, storage: storage}
}

func cloneLifecycleSet(src LifecycleSet, base Base) LifecycleSet {
	// Intersected clones skip all event emission and state side effects
	// (spec.md §4.3 "Intersected clones skip all event emissions and
	// state side effects"), so bus/storage/state/observer are not copied.
	return LifecycleSet{
		Base:          base,
		OnInitFunc:    src.OnInitFunc,
		OnRestoreFunc: src.OnRestoreFunc,
		OnStartFunc:   src.OnStartFunc,
		OnVisitFunc:   src.OnVisitFunc,
		OnLeaveFunc:   src.OnLeaveFunc,
		OnUpdateFunc:  src.OnUpdateFunc,
	}
}

// InstallObserver attaches the lifecycle controller so update()/reset()
// triggers reach it directly instead of through a string-topic side
// channel (spec.md §9 "Event-bus side channel for triggers").
func (l *LifecycleSet) InstallObserver(o Observer) {
	l.observer = o
}

// WasRestored reports the outcome of the most recent OnRestore call.
func (l *LifecycleSet) WasRestored() bool { return l.wasRestored }

// State lazily constructs the set's per-id restoration-state adapter over
// the offline-storage port (spec.md §4.3, §6.3). Returns nil if no
// OfflineStorage was configured.
func (l *LifecycleSet) State() *State {
	if l.storage == nil {
		return nil
	}
	if l.state == nil {
		l.state = &State{storage: l.storage, setType: l.Type(), setID: l.ID()}
	}
	return l.state
}

func (l *LifecycleSet) isIntersected() bool {
	_, ok := l.IntersectionParent()
	return ok
}

// OnInit runs the set's init phase hook. Default: no-op.
func (l *LifecycleSet) OnInit(ctx context.Context) error {
	if l.OnInitFunc != nil {
		return l.OnInitFunc(ctx)
	}
	return nil
}

// OnRestore runs the set's restore phase hook. Default: emit the restored
// events and report wasRestored = false (spec.md §4.3).
func (l *LifecycleSet) OnRestore(ctx context.Context) (bool, error) {
	var (
		restored bool
		err      error
	)
	if l.OnRestoreFunc != nil {
		restored, err = l.OnRestoreFunc(ctx)
	}
	l.wasRestored = restored
	if l.isIntersected() {
		return restored, err
	}
	publishAll(l.bus, l.self, "scoring:"+string(l.Type())+":restored", "scoring:set:restored")
	return restored, err
}

// OnStart runs the set's start phase hook (only dispatched by the
// controller for sets whose wasRestored was false, spec.md §4.7). Default:
// no-op.
func (l *LifecycleSet) OnStart(ctx context.Context) error {
	if l.OnStartFunc != nil {
		return l.OnStartFunc(ctx)
	}
	return nil
}

// OnVisit runs the set's visit phase hook. Default: no-op.
func (l *LifecycleSet) OnVisit(ctx context.Context) error {
	if l.OnVisitFunc != nil {
		return l.OnVisitFunc(ctx)
	}
	return nil
}

// OnLeave runs the set's leave phase hook. Default: no-op.
func (l *LifecycleSet) OnLeave(ctx context.Context) error {
	if l.OnLeaveFunc != nil {
		return l.OnLeaveFunc(ctx)
	}
	return nil
}

// OnUpdate runs the set's update phase hook. Default: no-op. ScoringSet
// overrides this to dispatch OnCompleted/OnPassed (spec.md §4.4).
func (l *LifecycleSet) OnUpdate(ctx context.Context) error {
	if l.OnUpdateFunc != nil {
		return l.OnUpdateFunc(ctx)
	}
	return nil
}

// Update is the set's programmatic trigger (spec.md §4.3 "update()"):
// emits scoring:{type}:update and scoring:set:update, then notifies the
// installed observer so the controller can enqueue intersecting sets into
// the update phase. No-op on intersected clones.
func (l *LifecycleSet) Update(ctx context.Context) {
	if l.isIntersected() {
		return
	}
	publishAll(l.bus, l.self, "scoring:"+string(l.Type())+":update", "scoring:set:update")
	if l.observer != nil {
		l.observer.OnSetUpdate(ctx, l.self)
	}
}

// Reset is the set's programmatic trigger (spec.md §4.3 "reset()"): emits
// scoring:{type}:reset and scoring:set:reset (spec.md §6.2's topic list is
// authoritative over §4.3's abbreviated prose), then
// notifies the installed observer so the controller can enqueue sets on
// the same model into restart. No-op on intersected clones.
func (l *LifecycleSet) Reset(ctx context.Context) {
	if l.isIntersected() {
		return
	}
	publishAll(l.bus, l.self, "scoring:"+string(l.Type())+":reset", "scoring:set:reset")
	if l.observer != nil {
		l.observer.OnSetReset(ctx, l.self)
	}
}
