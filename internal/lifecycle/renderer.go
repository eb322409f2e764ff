package lifecycle

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/adaptlearning/scoring"
)

// callbackSet is the subset of a concrete set's promoted LifecycleSet
// methods the renderer dispatches against (spec.md §4.3, §4.7). Every
// *AdaptModelSet, *ScoringSet, and *TotalSet satisfies it by embedding
// LifecycleSet.
type callbackSet interface {
	scoring.Set

	OnInit(ctx context.Context) error
	OnRestore(ctx context.Context) (bool, error)
	OnStart(ctx context.Context) error
	OnVisit(ctx context.Context) error
	OnLeave(ctx context.Context) error
	OnUpdate(ctx context.Context) error
	WasRestored() bool
	Reset(ctx context.Context)
}

// WaitToken is the host runtime's back-pressure signal (spec.md §4.7,
// §5 "Startup back-pressure"): held from the first enqueue until every
// phase queue has drained empty.
type WaitToken interface {
	Acquire()
	Release()
}

// RenderObserver is notified once per phase after a batch of sets has
// finished that phase (spec.md §4.7 "a rendered event notifies waiters").
type RenderObserver interface {
	Rendered(phase Phase, sets []scoring.Set)
}

// Renderer is the single-threaded cooperative drain loop (spec.md §4.7,
// §5). Enqueue is safe to call from whatever goroutine observes
// content-model or set-trigger events; Tick/Flush must be called from the
// single logical thread that owns the registry.
type Renderer struct {
	mu          sync.Mutex
	minInterval time.Duration
	lastTick    time.Time

	queues map[Phase][]callbackSet
	queued map[Phase]map[scoring.SetID]bool

	waitToken WaitToken
	tokenHeld bool

	observer RenderObserver
}

// NewRenderer constructs a Renderer throttled to at most one drain per
// 1/fps (default 30 if fps <= 0). waitToken may be nil.
func NewRenderer(fps int, waitToken WaitToken) *Renderer {
	if fps <= 0 {
		fps = 30
	}
	return &Renderer{
		minInterval: time.Second / time.Duration(fps),
		queues:      make(map[Phase][]callbackSet),
		queued:      make(map[Phase]map[scoring.SetID]bool),
		waitToken:   waitToken,
	}
}

// InstallObserver attaches a RenderObserver notified after each drained
// phase.
func (r *Renderer) InstallObserver(o RenderObserver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer = o
}

// Enqueue appends every set not already queued for phase into phase's
// queue (spec.md §4.7 "ordered unique queue"). Intersected clones are
// filtered out; they never enter any phase queue. Sets that don't satisfy
// callbackSet (shouldn't happen for the three concrete types this package
// knows about) are silently skipped.
func (r *Renderer) Enqueue(phase Phase, sets []scoring.Set) {
	if len(sets) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := r.queued[phase]
	if seen == nil {
		seen = make(map[scoring.SetID]bool)
		r.queued[phase] = seen
	}
	for _, s := range sets {
		if s == nil {
			continue
		}
		if _, intersected := s.IntersectionParent(); intersected {
			continue
		}
		cs, ok := s.(callbackSet)
		if !ok {
			continue
		}
		if seen[cs.ID()] {
			continue
		}
		seen[cs.ID()] = true
		r.queues[phase] = append(r.queues[phase], cs)
	}
	r.acquireTokenLocked()
}

func (r *Renderer) acquireTokenLocked() {
	if r.tokenHeld || r.waitToken == nil {
		return
	}
	if r.hasWorkLocked() {
		r.waitToken.Acquire()
		r.tokenHeld = true
	}
}

func (r *Renderer) hasWorkLocked() bool {
	for _, q := range r.queues {
		if len(q) > 0 {
			return true
		}
	}
	return false
}

// Tick drains every non-empty phase queue once, provided at least
// 1/fps has elapsed since the last drain (spec.md §4.7 "a throttled tick
// runs at most once per 1/fps"). ok is false if the tick was skipped for
// throttling; callers driving an animation-frame loop call Tick every
// frame and rely on the throttle.
func (r *Renderer) Tick(ctx context.Context) (ok bool, err error) {
	r.mu.Lock()
	now := time.Now()
	if !r.lastTick.IsZero() && now.Sub(r.lastTick) < r.minInterval {
		r.mu.Unlock()
		return false, nil
	}
	r.lastTick = now
	r.mu.Unlock()

	return true, r.Flush(ctx)
}

// Flush drains every non-empty phase queue immediately, ignoring the fps
// throttle. Used by the controller's startup sequence (spec.md §4.7
// "Startup sequence"), which must not wait on frame timing, and by tests.
func (r *Renderer) Flush(ctx context.Context) error {
	batch := r.snapshotAndClear()
	if len(batch) == 0 {
		return nil
	}

	var firstErr error
	for _, phase := range Phases {
		sets, ok := batch[phase]
		if !ok {
			continue
		}
		for _, s := range sets {
			if err := dispatch(ctx, phase, s); err != nil {
				log.Printf("lifecycle: %v callback for set %q: %v", phase, s.ID(), err)
				if firstErr == nil {
					firstErr = err
				}
			}
		}
		r.notifyRendered(phase, sets)
	}

	r.mu.Lock()
	if r.tokenHeld && !r.hasWorkLocked() {
		if r.waitToken != nil {
			r.waitToken.Release()
		}
		r.tokenHeld = false
	}
	r.mu.Unlock()

	// A callback that errors still releases the wait token (spec.md §4.7
	// "the renderer should ensure the wait token is released on error,
	// fail-open"): an error never stops the drain above, so whether the
	// token is released depends only on whether new work was enqueued
	// while the drain ran, not on any callback's result.
	return firstErr
}

func (r *Renderer) snapshotAndClear() map[Phase][]callbackSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make(map[Phase][]callbackSet, len(r.queues))
	for phase, q := range r.queues {
		if len(q) == 0 {
			continue
		}
		snapshot := append([]callbackSet(nil), q...)
		sort.SliceStable(snapshot, func(i, j int) bool { return snapshot[i].Order() < snapshot[j].Order() })
		batch[phase] = snapshot
		r.queues[phase] = nil
		r.queued[phase] = nil
	}
	return batch
}

func (r *Renderer) notifyRendered(phase Phase, sets []callbackSet) {
	r.mu.Lock()
	obs := r.observer
	r.mu.Unlock()
	if obs == nil {
		return
	}
	out := make([]scoring.Set, len(sets))
	for i, s := range sets {
		out[i] = s
	}
	obs.Rendered(phase, out)
}

// dispatch invokes the callback for phase on s (spec.md §4.7 "Entry
// rules" / per-phase callback table).
func dispatch(ctx context.Context, phase Phase, s callbackSet) error {
	switch phase {
	case PhaseInit:
		return s.OnInit(ctx)
	case PhaseRestore:
		_, err := s.OnRestore(ctx)
		return err
	case PhaseStart:
		if s.WasRestored() {
			return nil
		}
		return s.OnStart(ctx)
	case PhaseReset:
		if s.CanReset() {
			s.Reset(ctx)
		}
		return nil
	case PhaseRestart:
		return s.OnStart(ctx)
	case PhaseLeave:
		return s.OnLeave(ctx)
	case PhaseVisit:
		return s.OnVisit(ctx)
	case PhaseUpdate:
		return s.OnUpdate(ctx)
	default:
		return nil
	}
}
