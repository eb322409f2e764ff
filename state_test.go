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

func TestState_SetRejectsUnsupportedShape(t *testing.T) {
	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)
	storage := newMemStorage()
	model := contentmodel.New("m1", "block")

	set, err := scoring.NewScoringSet(reg, bus, storage, scoring.ScoringSetConfig{
		SetConfig:    scoring.SetConfig{ID: "s1", Type: "quiz", Model: model},
		IsPassedFunc: func() bool { return false },
	})
	require.NoError(t, err)

	state := set.State()
	err = state.Set(context.Background(), map[string]bool{"not": true})
	assert.True(t, scoring.IsUnsupportedStateShapeErr(err))
}

func TestState_SetAndGetRoundTrip(t *testing.T) {
	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)
	storage := newMemStorage()
	model := contentmodel.New("m1", "block")

	set, err := scoring.NewScoringSet(reg, bus, storage, scoring.ScoringSetConfig{
		SetConfig:    scoring.SetConfig{ID: "s1", Type: "quiz", Model: model},
		IsPassedFunc: func() bool { return false },
	})
	require.NoError(t, err)

	state := set.State()
	ctx := context.Background()
	require.NoError(t, state.Set(ctx, []float64{1, 2, 3}))

	got, ok, err := state.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3}, got)
}

func TestState_SetWithNilStorageDropsSilently(t *testing.T) {
	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)
	model := contentmodel.New("m1", "block")

	set, err := scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig:    scoring.SetConfig{ID: "s1", Type: "quiz", Model: model},
		IsPassedFunc: func() bool { return false },
	})
	require.NoError(t, err)

	state := set.State()
	assert.NoError(t, state.Set(context.Background(), []bool{true, false}))
}
