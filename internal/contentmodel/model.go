// Package contentmodel is an in-memory fixture implementing the
// scoring.ContentModel port (spec.md §6.1), for tests and local
// experimentation. It is not a production content-model implementation;
// hosts embedding a real Adapt framework tree supply their own binding.
package contentmodel

import (
	"fmt"

	"github.com/adaptlearning/scoring"
)

// Model is a mutable tree node satisfying scoring.ContentModel.
type Model struct {
	id            scoring.ObjectID
	typ           string
	componentType string
	typeGroups    map[string]bool

	available            bool
	complete             bool
	interactionComplete  bool
	active               bool
	visited              bool
	correct              bool
	optional             bool
	trackable            bool
	attached             bool
	score, min, max      float64
	trackingPosition     string

	parent   *Model
	children []*Model

	bus scoring.EventBus
}

// New constructs a root-capable node. By default it is available,
// attached, and trackable, matching a freshly-rendered component.
func New(id scoring.ObjectID, typ string) *Model {
	return &Model{
		id:         id,
		typ:        typ,
		typeGroups: make(map[string]bool),
		available:  true,
		attached:   true,
		trackable:  true,
	}
}

// WithComponentType sets the component sub-type (e.g. "mcq") and returns m
// for chaining.
func (m *Model) WithComponentType(c string) *Model { m.componentType = c; return m }

// WithTypeGroups marks m as a member of each named type-group.
func (m *Model) WithTypeGroups(groups ...string) *Model {
	for _, g := range groups {
		m.typeGroups[g] = true
	}
	return m
}

// WithTrackingPosition sets the opaque restoration identifier.
func (m *Model) WithTrackingPosition(pos string) *Model { m.trackingPosition = pos; return m }

// WithOptional marks m optional.
func (m *Model) WithOptional(v bool) *Model { m.optional = v; return m }

// WithTrackable overrides the default trackable=true.
func (m *Model) WithTrackable(v bool) *Model { m.trackable = v; return m }

// WithBus wires an event bus for change-event emission (spec.md §6.1).
func (m *Model) WithBus(bus scoring.EventBus) *Model { m.bus = bus; return m }

// AddChild appends child to m's children and sets child's parent (and
// propagates m's bus, if any, so bubbled events reach the same root).
func (m *Model) AddChild(child *Model) *Model {
	child.parent = m
	if child.bus == nil {
		child.bus = m.bus
	}
	m.children = append(m.children, child)
	return m
}

func (m *Model) ID() scoring.ObjectID { return m.id }
func (m *Model) Type() string         { return m.typ }
func (m *Model) ComponentType() string {
	return m.componentType
}

func (m *Model) IsTypeGroup(group string) bool { return m.typeGroups[group] }

func (m *Model) IsAvailable() bool           { return m.available }
func (m *Model) IsComplete() bool            { return m.complete }
func (m *Model) IsInteractionComplete() bool { return m.interactionComplete }
func (m *Model) IsActive() bool              { return m.active }
func (m *Model) IsVisited() bool             { return m.visited }
func (m *Model) IsCorrect() bool             { return m.correct }
func (m *Model) IsOptional() bool            { return m.optional }
func (m *Model) IsTrackable() bool           { return m.trackable }
func (m *Model) IsAttached() bool            { return m.attached }

func (m *Model) Score() float64    { return m.score }
func (m *Model) MinScore() float64 { return m.min }
func (m *Model) MaxScore() float64 { return m.max }

func (m *Model) Parent() (scoring.ContentModel, bool) {
	if m.parent == nil {
		return nil, false
	}
	return m.parent, true
}

func (m *Model) Children() []scoring.ContentModel {
	out := make([]scoring.ContentModel, 0, len(m.children))
	for _, c := range m.children {
		out = append(out, c)
	}
	return out
}

func (m *Model) Ancestors(includeSelf bool) []scoring.ContentModel {
	var out []scoring.ContentModel
	if includeSelf {
		out = append(out, m)
	}
	for p := m.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

func (m *Model) TrackingPosition() string { return m.trackingPosition }

// SetAvailable mutates isAvailable and emits change:isAvailable, bubbled
// to the root (spec.md §6.1).
func (m *Model) SetAvailable(v bool) { m.available = v; m.emitChange("isAvailable") }

// SetComplete mutates isComplete and emits change:isComplete.
func (m *Model) SetComplete(v bool) { m.complete = v; m.emitChange("isComplete") }

// SetInteractionComplete mutates isInteractionComplete and emits the
// matching change event.
func (m *Model) SetInteractionComplete(v bool) {
	m.interactionComplete = v
	m.emitChange("isInteractionComplete")
}

// SetActive mutates isActive and emits change:isActive.
func (m *Model) SetActive(v bool) { m.active = v; m.emitChange("isActive") }

// SetVisited mutates isVisited and emits change:isVisited.
func (m *Model) SetVisited(v bool) { m.visited = v; m.emitChange("isVisited") }

// SetCorrect mutates isCorrect.
func (m *Model) SetCorrect(v bool) { m.correct = v }

// SetAttached mutates isAttached (detach/reattach, spec.md §7
// DetachedModel).
func (m *Model) SetAttached(v bool) { m.attached = v }

// SetScore sets the score/minScore/maxScore triple.
func (m *Model) SetScore(score, min, max float64) { m.score, m.min, m.max = score, min, max }

func (m *Model) emitChange(attr string) {
	if m.bus == nil {
		return
	}
	topic := fmt.Sprintf("change:%s", attr)
	m.bus.Publish(topic, m)
	bubbleTopic := fmt.Sprintf("bubble:change:%s", attr)
	for n := m; n != nil; n = n.parent {
		m.bus.Publish(bubbleTopic, n)
	}
}
