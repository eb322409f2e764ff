package scoring

import "context"

// ContentModel is the external content-tree node consumed by this package
// (spec.md §6.1). Implementations are supplied by the host runtime;
// internal/contentmodel ships an in-memory fixture for tests.
type ContentModel interface {
	ID() ObjectID
	Type() string
	ComponentType() string
	IsTypeGroup(group string) bool

	IsAvailable() bool
	IsComplete() bool
	IsInteractionComplete() bool
	IsActive() bool
	IsVisited() bool
	IsCorrect() bool
	IsOptional() bool
	IsTrackable() bool

	Score() float64
	MinScore() float64
	MaxScore() float64

	// IsAttached reports whether the model is still linked into the live
	// tree (false for a detached/removed node kept around for teardown).
	IsAttached() bool

	Parent() (ContentModel, bool)
	Children() []ContentModel

	// Ancestors returns the chain from this model's parent (or from this
	// model, if includeSelf) up to the root, nearest first.
	Ancestors(includeSelf bool) []ContentModel

	// TrackingPosition is an opaque identifier used to relocate this model
	// across sessions for state restoration (spec.md Glossary).
	TrackingPosition() string
}

// EventBus is the host's topic-based publish surface (spec.md §6.2).
// Topics may be space-separated lists; implementations must publish to
// each topic independently. internal/eventbus ships an in-memory fixture.
type EventBus interface {
	Publish(topic string, payload any)
}

// publishAll splits a space-separated topic list and publishes payload to
// each one, matching the "two events with the same payload" pattern used
// throughout spec.md §6.2 (e.g. "scoring:{type}:register scoring:register").
func publishAll(bus EventBus, payload any, topics ...string) {
	if bus == nil {
		return
	}
	for _, t := range topics {
		if t == "" {
			continue
		}
		bus.Publish(t, payload)
	}
}

// CompletionStatus is the SCORM-style completion status written to the
// offline-storage port (spec.md §6.3).
type CompletionStatus string

// Recognised completion statuses.
const (
	CompletionNotAttempted CompletionStatus = "not attempted"
	CompletionIncomplete   CompletionStatus = "incomplete"
	CompletionCompleted    CompletionStatus = "completed"
	CompletionUnknown      CompletionStatus = "unknown"
)

// SuccessStatus is the SCORM-style pass/fail status written alongside a
// CompletionStatus.
type SuccessStatus string

// Recognised success statuses.
const (
	SuccessPassed  SuccessStatus = "passed"
	SuccessFailed  SuccessStatus = "failed"
	SuccessUnknown SuccessStatus = "unknown"
)

// OfflineStorage is the external typed key/value persistence port
// (spec.md §6.3), backed by SCORM objectives in a real Adapt runtime.
// storage/postgres provides one concrete binding; callers that have no
// offline storage configured may pass a nil OfflineStorage, in which case
// writes silently no-op and reads return (nil, false) per spec.md §7
// (OfflineStorageUnavailable).
type OfflineStorage interface {
	// Ready reports whether the store is ready to accept reads/writes.
	Ready(ctx context.Context) bool

	SetObjectiveDescription(ctx context.Context, setID SetID, title string) error
	SetObjectiveScore(ctx context.Context, setID SetID, score, minScore, maxScore float64) error
	SetObjectiveStatus(ctx context.Context, setID SetID, completion CompletionStatus, success SuccessStatus) error

	// SetState persists the per-set restoration value under
	// {setType}[{setID}]. value must already satisfy the shape restriction
	// in spec.md §4.3 (enforced by State, see state.go).
	SetState(ctx context.Context, setType SetType, setID SetID, value any) error
	// GetState reads the value back; ok is false if nothing has been
	// written yet or the store is unavailable.
	GetState(ctx context.Context, setType SetType, setID SetID) (any, bool, error)
}
