// Package scoring provides a scoring-set algebra and lifecycle engine for
// an e-learning runtime's content-model tree.
//
// # Core Concepts
//
// A content tree (course -> page -> article -> block -> component) is
// consumed through the ContentModel port; this package never constructs or
// mutates that tree. On top of it, scoring defines named "sets" -
// projections over content models with an intersection operator based on
// hierarchy overlap rather than equality:
//
//	perf, err := scoring.NewScoringSet(reg, bus, storage, scoring.ScoringSetConfig{
//		SetConfig:    scoring.SetConfig{ID: "performance", Type: "performance", Model: course},
//		IsPassedFunc: func() bool { return false },
//	})
//
// NewScoringSet registers the new set with reg. Sets compose through
// Intersect, which builds a non-registered clone anchored to a parent set:
//
//	subset := perf.Intersect(articleSet) // perf ∩ hierarchy-of(articleSet)
//
// # Query Language
//
// Package query builds on the registry to parse and evaluate the
// selection/intersection query language described in the package doc of
// query.
//
// # Lifecycle
//
// Package internal/lifecycle drives registered sets through phases
// (init, restore, start, reset, restart, leave, visit, update) in response
// to content-model changes, navigation, and explicit triggers, batched and
// ordered by a cooperative single-threaded renderer.
//
// # External Ports
//
// Three collaborators are consumed, never defined, by this package:
//
//   - ContentModel: the content tree node (see ports.go).
//   - EventBus: topic-based publish (see ports.go).
//   - OfflineStorage: typed key/value persistence, SCORM objectives in
//     practice (see state.go, objective.go). storage/postgres ships one
//     concrete binding.
package scoring

import "context"

// ObjectID identifies a content model uniquely within its tree.
type ObjectID string

// String returns the canonical string form of the id.
func (id ObjectID) String() string {
	return string(id)
}

// SetID identifies a registered root set uniquely within a Registry.
type SetID string

// String returns the canonical string form of the id.
func (id SetID) String() string {
	return string(id)
}

// SetType names the concrete kind of a set ("total", "adaptModel", or a
// concrete scoring-set type registered by the host application).
type SetType string

// String returns the canonical string form of the type.
func (t SetType) String() string {
	return string(t)
}

// LifecycleHooks lets the lifecycle controller attach itself to a set
// without the set depending on the controller package, replacing the
// teacher's event-bus side channel (spec.md §9: "model as a typed observer
// interface the controller installs on each set during registration").
// LifecycleSet implements this; AdaptModelSet, ScoringSet, and TotalSet
// inherit it by embedding LifecycleSet.
type LifecycleHooks interface {
	InstallObserver(o Observer)
}

// Observer receives a set's programmatic update()/reset() triggers.
// The lifecycle controller implements this and installs itself on every
// set registered when its Start runs, and on each AdaptModelSet it creates
// in OnModelAdded; a set registered any other way after Start has no
// observer installed.
type Observer interface {
	OnSetUpdate(ctx context.Context, s Set)
	OnSetReset(ctx context.Context, s Set)
}
