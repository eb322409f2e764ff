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

func newCourseFixture(t *testing.T) (*scoring.Registry, *contentmodel.Model, *contentmodel.Model) {
	t.Helper()
	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)

	course := contentmodel.New("course-1", "course")
	block := contentmodel.New("block-1", "block")
	q1 := contentmodel.New("q1", "component").WithTypeGroups("questions")
	course.AddChild(block)
	block.AddChild(q1)
	q1.SetScore(8, 0, 10)
	q1.SetCorrect(true)

	return reg, course, block
}

func TestTotalSet_AggregatesScoreAcrossMembers(t *testing.T) {
	reg, course, block := newCourseFixture(t)
	bus := eventbus.New()

	_, err := scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig:            scoring.SetConfig{ID: "quiz-1", Type: "quiz", Model: block},
		IsScoreIncluded:      true,
		IsCompletionRequired: true,
		IsPassedFunc:         func() bool { return true },
		IsCompleteFunc:       func() bool { return true },
	})
	require.NoError(t, err)

	total, err := scoring.NewTotalSet(reg, bus, nil, course, scoring.Passmark{})
	require.NoError(t, err)

	assert.Equal(t, float64(8), total.Score())
	assert.Equal(t, float64(10), total.MaxScore())
	assert.Equal(t, 1, total.Correctness())
	assert.Equal(t, 1, total.MaxCorrectness())
}

func TestTotalSet_IsCompleteFalseWithNoCompletionMembers(t *testing.T) {
	reg, course, _ := newCourseFixture(t)
	bus := eventbus.New()

	total, err := scoring.NewTotalSet(reg, bus, nil, course, scoring.Passmark{})
	require.NoError(t, err)

	assert.False(t, total.IsComplete(), "an empty total set is not vacuously complete")
}

func TestTotalSet_IsPassedRequiresEnabledPassmark(t *testing.T) {
	reg, course, block := newCourseFixture(t)
	bus := eventbus.New()

	_, err := scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig:       scoring.SetConfig{ID: "quiz-1", Type: "quiz", Model: block},
		IsScoreIncluded: true,
		IsPassedFunc:    func() bool { return true },
	})
	require.NoError(t, err)

	disabled, err := scoring.NewTotalSet(reg, bus, nil, course, scoring.Passmark{IsEnabled: false})
	require.NoError(t, err)
	assert.False(t, disabled.IsPassed())
}

func TestTotalSet_IsPassedRequiresPassedSubsets(t *testing.T) {
	reg, course, block := newCourseFixture(t)
	bus := eventbus.New()

	_, err := scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig:       scoring.SetConfig{ID: "quiz-1", Type: "quiz", Model: block},
		IsScoreIncluded: true,
		IsPassedFunc:    func() bool { return false },
	})
	require.NoError(t, err)

	total, err := scoring.NewTotalSet(reg, bus, nil, course, scoring.Passmark{
		IsEnabled:             true,
		RequiresPassedSubsets: true,
		IsScaled:              true,
	})
	require.NoError(t, err)

	// Score threshold (0) is met, but the one scoring subset reports
	// isPassed=false, so RequiresPassedSubsets should fail the total.
	assert.False(t, total.IsPassed())
}

func TestTotalSet_CanResetReflectsAnyMember(t *testing.T) {
	reg, course, block := newCourseFixture(t)
	bus := eventbus.New()

	_, err := scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig:       scoring.SetConfig{ID: "quiz-1", Type: "quiz", Model: block},
		IsScoreIncluded: true,
		CanReset:        true,
		IsPassedFunc:    func() bool { return false },
	})
	require.NoError(t, err)

	total, err := scoring.NewTotalSet(reg, bus, nil, course, scoring.Passmark{})
	require.NoError(t, err)

	assert.True(t, total.CanReset())
}

func TestTotalSet_OutcomeOverrideForcesIsPassed(t *testing.T) {
	reg, course, block := newCourseFixture(t)
	bus := eventbus.New()

	_, err := scoring.NewScoringSet(reg, bus, nil, scoring.ScoringSetConfig{
		SetConfig:       scoring.SetConfig{ID: "quiz-1", Type: "quiz", Model: block},
		IsScoreIncluded: true,
		IsPassedFunc:    func() bool { return false },
	})
	require.NoError(t, err)

	total, err := scoring.NewTotalSet(reg, bus, nil, course, scoring.Passmark{IsEnabled: true, RequiresPassedSubsets: true},
		scoring.WithOutcome(scoring.OutcomePass))
	require.NoError(t, err)

	assert.True(t, total.IsPassedCtx(context.Background()))
	assert.True(t, total.IsCompleteCtx(context.Background()))
	// The unqualified accessors still report real aggregation.
	assert.False(t, total.IsPassed())
}

func TestTotalSet_ContextOutcomeTakesPrecedenceOverConstructor(t *testing.T) {
	reg, course, _ := newCourseFixture(t)
	bus := eventbus.New()

	total, err := scoring.NewTotalSet(reg, bus, nil, course, scoring.Passmark{},
		scoring.WithOutcome(scoring.OutcomeFail),
		scoring.WithContextOutcomeEnabled())
	require.NoError(t, err)

	ctx := scoring.WithContextOutcome(context.Background(), scoring.OutcomePass)
	assert.True(t, total.IsPassedCtx(ctx))
}
