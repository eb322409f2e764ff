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

func newQuizModel(t *testing.T) (*contentmodel.Model, *contentmodel.Model, *contentmodel.Model) {
	t.Helper()
	block := contentmodel.New("block-1", "block")
	q1 := contentmodel.New("q1", "component").WithTypeGroups("questions")
	q2 := contentmodel.New("q2", "component").WithTypeGroups("questions")
	block.AddChild(q1)
	block.AddChild(q2)
	return block, q1, q2
}

func TestScoringSet_ScoreSumsAvailableQuestions(t *testing.T) {
	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)
	block, q1, q2 := newQuizModel(t)
	q1.SetScore(5, 0, 10)
	q1.SetCorrect(true)
	q2.SetScore(3, 0, 10)

	set, err := scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig:       scoring.SetConfig{ID: "quiz-1", Type: "quiz", Model: block},
		IsScoreIncluded: true,
		IsPassedFunc:    func() bool { return false },
	})
	require.NoError(t, err)

	assert.Equal(t, float64(8), set.Score())
	assert.Equal(t, float64(20), set.MaxScore())
	assert.Equal(t, 1, set.Correctness())
	assert.Equal(t, 2, set.MaxCorrectness())
	assert.Equal(t, 40, set.ScaledScore())
}

func TestScoringSet_IsCompleteDefaultsToModel(t *testing.T) {
	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)
	block, _, _ := newQuizModel(t)

	set, err := scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig:    scoring.SetConfig{ID: "quiz-1", Type: "quiz", Model: block},
		IsPassedFunc: func() bool { return false },
	})
	require.NoError(t, err)

	assert.False(t, set.IsComplete())
	block.SetComplete(true)
	assert.True(t, set.IsComplete())
}

func TestScoringSet_IsCompleteFuncOverride(t *testing.T) {
	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)
	block, _, _ := newQuizModel(t)

	set, err := scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig:      scoring.SetConfig{ID: "quiz-1", Type: "quiz", Model: block},
		IsCompleteFunc: func() bool { return true },
		IsPassedFunc:   func() bool { return false },
	})
	require.NoError(t, err)

	assert.True(t, set.IsComplete())
}

func TestScoringSet_IsPassedMissingOverrideDefaultsFalse(t *testing.T) {
	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)
	block, _, _ := newQuizModel(t)

	set, err := scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig: scoring.SetConfig{ID: "quiz-1", Type: "quiz", Model: block},
	})
	require.NoError(t, err)

	assert.False(t, set.IsPassed())
}

func TestScoringSet_IsFailedRequiresCompleteAndNotPassed(t *testing.T) {
	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)
	block, _, _ := newQuizModel(t)

	set, err := scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig:      scoring.SetConfig{ID: "quiz-1", Type: "quiz", Model: block},
		IsCompleteFunc: func() bool { return true },
		IsPassedFunc:   func() bool { return false },
	})
	require.NoError(t, err)

	assert.True(t, set.IsFailed())
}

func TestScoringSet_CanResetReflectsConfig(t *testing.T) {
	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)
	block, _, _ := newQuizModel(t)

	set, err := scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig:    scoring.SetConfig{ID: "quiz-1", Type: "quiz", Model: block},
		CanReset:     true,
		IsPassedFunc: func() bool { return false },
	})
	require.NoError(t, err)

	assert.True(t, set.CanReset())
}

func TestScoringSet_OnCompletedWritesObjective(t *testing.T) {
	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)
	block, _, _ := newQuizModel(t)
	storage := newMemStorage()

	set, err := scoring.NewScoringSet(reg, bus, storage, scoring.ScoringSetConfig{
		SetConfig:      scoring.SetConfig{ID: "quiz-1", Type: "quiz", Model: block},
		IsCompleteFunc: func() bool { return true },
		IsPassedFunc:   func() bool { return true },
	})
	require.NoError(t, err)

	require.NoError(t, set.OnUpdate(context.Background()))

	status, ok := storage.statuses["quiz-1"]
	require.True(t, ok)
	assert.Equal(t, string(scoring.CompletionCompleted), status[0])
	assert.Equal(t, string(scoring.SuccessPassed), status[1])
}

func TestScale(t *testing.T) {
	assert.Equal(t, 50, scoring.Scale(5, 0, 10))
	assert.Equal(t, 0, scoring.Scale(5, 0, 0))
	assert.Equal(t, -50, scoring.Scale(-5, -10, 0))
	assert.Equal(t, 0, scoring.Scale(-5, 0, 10))
}
