package scoring

import (
	"context"
	"fmt"
	"math"
)

// scoringSelf is the narrow virtual-dispatch surface ScoringSet needs for
// its own aggregate methods to see a subclass's overrides, the same "self"
// trick Base uses for Intersect/Clone (spec.md §9). TotalSet points this at
// itself so ScaledScore, IsFailed, onUpdate and friends see TotalSet's
// aggregate Score/IsComplete/IsPassed instead of ScoringSet's
// sum-over-availableQuestions defaults.
type scoringSelf interface {
	Score() float64
	MinScore() float64
	MaxScore() float64
	Correctness() int
	MaxCorrectness() int
	IsComplete() bool
	IsPassed() bool
}

// ScoringSetConfig is the constructor input for NewScoringSet (spec.md
// §4.4). IsScoreIncluded and IsCompletionRequired are the host-configured
// flags; the query-surface getters of the same name additionally require
// the set to be available and not optional.
type ScoringSetConfig struct {
	SetConfig

	IsScoreIncluded      bool
	IsCompletionRequired bool

	// CanReset overrides the default false (spec.md §9 Open Question:
	// ScoringSet is the only concrete type that ever reports true).
	CanReset bool

	// IsCompleteFunc overrides the default `model.isComplete` (spec.md
	// §4.4 "isComplete defaults to model.isComplete; concrete subclasses
	// override").
	IsCompleteFunc func() bool
	// IsPassedFunc is required: spec.md §4.4 "isPassed is abstract —
	// subclasses must override." A nil func logs MissingOverride and
	// always reports false (spec.md §7).
	IsPassedFunc func() bool
}

// ScoringSet extends LifecycleSet with score/correctness/pass/fail
// aggregation over availableQuestions (spec.md §4.4). TotalSet embeds
// ScoringSet and shadows IsComplete/IsPassed/IsFailed/CanReset/Score/
// MinScore/MaxScore/Correctness/MaxCorrectness with its aggregate
// semantics (spec.md §4.5).
type ScoringSet struct {
	LifecycleSet

	scoringSelf scoringSelf
	objective   *Objective

	isScoreIncludedFlag      bool
	isCompletionRequiredFlag bool
	canResetFlag             bool

	IsCompleteFunc func() bool
	IsPassedFunc   func() bool
}

// NewScoringSet constructs and registers a root ScoringSet.
func NewScoringSet(reg *Registry, bus EventBus, storage OfflineStorage, cfg ScoringSetConfig) (*ScoringSet, error) {
	s := &ScoringSet{
		isScoreIncludedFlag:      cfg.IsScoreIncluded,
		isCompletionRequiredFlag: cfg.IsCompletionRequired,
		canResetFlag:             cfg.CanReset,
		IsCompleteFunc:           cfg.IsCompleteFunc,
		IsPassedFunc:             cfg.IsPassedFunc,
	}
	s.scoringSelf = s
	s.Base = newBase(s, reg, cfg.SetConfig, 500)
	s.LifecycleSet = newLifecycleSet(s.Base, bus, storage)
	if reg != nil {
		if err := reg.Register(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Clone implements the dynamic-class clone (spec.md §9): the returned Set
// has concrete type *ScoringSet, carrying over the stable config flags and
// overrides but none of the bus/storage/observer wiring (spec.md §4.3
// "Intersected clones skip all event emissions and state side effects").
func (s *ScoringSet) Clone(parent Set) Set {
	clone := &ScoringSet{
		isScoreIncludedFlag:      s.isScoreIncludedFlag,
		isCompletionRequiredFlag: s.isCompletionRequiredFlag,
		canResetFlag:             s.canResetFlag,
		IsCompleteFunc:           s.IsCompleteFunc,
		IsPassedFunc:             s.IsPassedFunc,
	}
	clone.scoringSelf = clone
	base := cloneBase(s.Base, clone, parent)
	clone.LifecycleSet = cloneLifecycleSet(s.LifecycleSet, base)
	return clone
}

// Scale implements spec.md §4.4's scale(v, min, max): non-negative v is
// expressed as a percentage of max (0 when max is 0); negative v is
// expressed as a percentage of |min| (0 when min is 0). Result is rounded
// to the nearest integer.
func Scale(v, min, max float64) int {
	if v >= 0 {
		if max == 0 {
			return 0
		}
		return int(math.Round(v / max * 100))
	}
	if min == 0 {
		return 0
	}
	return int(math.Round(v / math.Abs(min) * 100))
}

// MinScore sums availableQuestions[i].MinScore().
func (s *ScoringSet) MinScore() float64 {
	return s.sumQuestions(func(c ContentModel) float64 { return c.MinScore() })
}

// MaxScore sums availableQuestions[i].MaxScore().
func (s *ScoringSet) MaxScore() float64 {
	return s.sumQuestions(func(c ContentModel) float64 { return c.MaxScore() })
}

// Score sums availableQuestions[i].Score().
func (s *ScoringSet) Score() float64 {
	return s.sumQuestions(func(c ContentModel) float64 { return c.Score() })
}

func (s *ScoringSet) sumQuestions(f func(ContentModel) float64) float64 {
	var total float64
	for _, q := range s.self.AvailableQuestions() {
		total += f(q)
	}
	return total
}

// Correctness counts availableQuestions[i].IsCorrect().
func (s *ScoringSet) Correctness() int {
	var n int
	for _, q := range s.self.AvailableQuestions() {
		if q.IsCorrect() {
			n++
		}
	}
	return n
}

// MaxCorrectness is len(availableQuestions).
func (s *ScoringSet) MaxCorrectness() int { return len(s.self.AvailableQuestions()) }

// ScaledScore is Scale(Score, MinScore, MaxScore).
func (s *ScoringSet) ScaledScore() int {
	return Scale(s.scoringSelf.Score(), s.scoringSelf.MinScore(), s.scoringSelf.MaxScore())
}

// ScaledCorrectness is Scale(Correctness, 0, MaxCorrectness).
func (s *ScoringSet) ScaledCorrectness() int {
	return Scale(float64(s.scoringSelf.Correctness()), 0, float64(s.scoringSelf.MaxCorrectness()))
}

// ScoreAsString renders Score with an explicit leading "+" for positive
// values (spec.md §4.4).
func (s *ScoringSet) ScoreAsString() string {
	score := s.scoringSelf.Score()
	if score > 0 {
		return fmt.Sprintf("+%v", score)
	}
	return fmt.Sprintf("%v", score)
}

// IsScoreIncluded is true only when the set is available, not optional,
// and the host configured the flag (spec.md §4.4).
func (s *ScoringSet) IsScoreIncluded() bool {
	return s.isScoreIncludedFlag && s.self.IsAvailable() && !s.self.IsOptional()
}

// IsCompletionRequired mirrors IsScoreIncluded for the completion flag.
func (s *ScoringSet) IsCompletionRequired() bool {
	return s.isCompletionRequiredFlag && s.self.IsAvailable() && !s.self.IsOptional()
}

// IsComplete defaults to the anchor model's IsComplete(); an
// IsCompleteFunc override replaces it. TotalSet shadows this method
// entirely instead of using the override hook (spec.md §4.5).
func (s *ScoringSet) IsComplete() bool {
	if s.IsCompleteFunc != nil {
		return s.IsCompleteFunc()
	}
	if m, ok := s.Model(); ok {
		return m.IsComplete()
	}
	return false
}

// IsPassed is abstract in spec.md §4.4; a concrete ScoringSet must supply
// IsPassedFunc (or, like TotalSet, shadow this method entirely). A missing
// override logs and reports false rather than panicking (spec.md §7
// MissingOverride).
func (s *ScoringSet) IsPassed() bool {
	if s.IsPassedFunc == nil {
		logf("scoring: set %q has no IsPassed override; defaulting to false", s.ID())
		return false
	}
	return s.IsPassedFunc()
}

// IsFailed is IsComplete && !IsPassed.
func (s *ScoringSet) IsFailed() bool {
	return s.scoringSelf.IsComplete() && !s.scoringSelf.IsPassed()
}

// CanReset reports the host-configured reset flag, shadowing Base's
// always-false default (spec.md §9 Open Question resolution).
func (s *ScoringSet) CanReset() bool { return s.canResetFlag }

// Objective lazily constructs the per-set offline-storage writer.
// Intersected clones never touch objectives (spec.md §4.4) and always get
// nil.
func (s *ScoringSet) Objective() *Objective {
	if s.isIntersected() {
		return nil
	}
	if s.objective == nil {
		s.objective = &Objective{storage: s.storage, id: s.ID()}
	}
	return s.objective
}

// OnUpdate shadows LifecycleSet.OnUpdate: it detects the isComplete and
// isPassed transitions (via scoringSelf, so TotalSet's aggregate state is
// observed rather than ScoringSet's own) and dispatches onCompleted/
// onPassed (spec.md §4.4), then still honours any OnUpdateFunc override.
func (s *ScoringSet) OnUpdate(ctx context.Context) error {
	completeNow := s.scoringSelf.IsComplete()
	passedNow := s.scoringSelf.IsPassed()

	if completeNow && !s.wasComplete {
		s.onCompleted(ctx)
	}
	if passedNow && !s.wasPassed {
		s.onPassed(ctx)
	}
	s.wasComplete = completeNow
	s.wasPassed = passedNow

	if s.OnUpdateFunc != nil {
		return s.OnUpdateFunc(ctx)
	}
	return nil
}

func (s *ScoringSet) onCompleted(ctx context.Context) {
	if s.isIntersected() {
		return
	}
	publishAll(s.bus, s.self, "scoring:"+string(s.Type())+":complete", "scoring:set:complete")

	success := SuccessFailed
	if s.scoringSelf.IsPassed() {
		success = SuccessPassed
	}
	if obj := s.Objective(); obj != nil {
		if err := obj.WriteScore(ctx, s.scoringSelf.Score(), s.scoringSelf.MinScore(), s.scoringSelf.MaxScore()); err != nil {
			logf("scoring: writing objective score for %q: %v", s.ID(), err)
		}
		if err := obj.WriteStatus(ctx, CompletionCompleted, success); err != nil {
			logf("scoring: writing objective status for %q: %v", s.ID(), err)
		}
	}
}

func (s *ScoringSet) onPassed(ctx context.Context) {
	if s.isIntersected() {
		return
	}
	publishAll(s.bus, s.self, "scoring:"+string(s.Type())+":passed", "scoring:set:passed")
}
