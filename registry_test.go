package scoring_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaptlearning/scoring"
	"github.com/adaptlearning/scoring/internal/contentmodel"
	"github.com/adaptlearning/scoring/internal/eventbus"
)

func TestRegistry_RegisterRejectsDuplicateID(t *testing.T) {
	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)
	model := contentmodel.New("m1", "block")

	_, err := scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig: scoring.SetConfig{ID: "dup", Type: "quiz", Model: model},
	})
	require.NoError(t, err)

	_, err = scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig: scoring.SetConfig{ID: "dup", Type: "quiz", Model: model},
	})
	assert.True(t, scoring.IsDuplicateSetIDErr(err))
}

func TestRegistry_DeregisterUnknownSet(t *testing.T) {
	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)
	model := contentmodel.New("m1", "block")
	set, err := scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig: scoring.SetConfig{ID: "s1", Type: "quiz", Model: model},
	})
	require.NoError(t, err)
	require.NoError(t, reg.Deregister(set))

	err = reg.Deregister(set)
	assert.True(t, scoring.IsNotRegisteredErr(err))
}

func TestRegistry_SetsOrdersByOrderThenRegistration(t *testing.T) {
	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)
	model := contentmodel.New("m1", "block")

	low := 100
	high := 900
	_, err := scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig: scoring.SetConfig{ID: "second", Type: "quiz", Model: model, Order: &high},
	})
	require.NoError(t, err)
	_, err = scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig: scoring.SetConfig{ID: "first", Type: "quiz", Model: model, Order: &low},
	})
	require.NoError(t, err)

	sets := reg.Sets()
	require.Len(t, sets, 2)
	assert.Equal(t, scoring.SetID("first"), sets[0].ID())
	assert.Equal(t, scoring.SetID("second"), sets[1].ID())
}

func TestRegistry_GetSetsByIntersectingModelID(t *testing.T) {
	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)
	block := contentmodel.New("block-1", "block")
	q1 := contentmodel.New("q1", "component")
	block.AddChild(q1)

	set, err := scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig: scoring.SetConfig{ID: "quiz-1", Type: "quiz", Model: block},
	})
	require.NoError(t, err)

	matches := reg.GetSetsByIntersectingModelID(q1.ID())
	require.Len(t, matches, 1)
	assert.Equal(t, set.ID(), matches[0].ID())

	none := reg.GetSetsByIntersectingModelID("unrelated")
	assert.Empty(t, none)
}

func TestRegistry_BumpGenerationIncrements(t *testing.T) {
	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)

	start := reg.Generation()
	reg.BumpGeneration()
	assert.Equal(t, start+1, reg.Generation())
}

func TestRegistry_UpdateAndResetBroadcast(t *testing.T) {
	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)
	model := contentmodel.New("m1", "block")
	_, err := scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig:    scoring.SetConfig{ID: "s1", Type: "quiz", Model: model},
		IsPassedFunc: func() bool { return false },
	})
	require.NoError(t, err)

	// Update/Reset broadcast without panicking even though nothing
	// observes the trigger at the registry layer directly; the lifecycle
	// controller is what translates these into phase enqueues.
	ctx := context.Background()
	reg.Update(ctx)
	reg.Reset(ctx)
}
