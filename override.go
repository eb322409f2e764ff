package scoring

import "context"

// Outcome lets an admin tool or test force a TotalSet's IsPassed/IsComplete
// result instead of deriving it from member-set aggregation, the same
// bypass shape the teacher's Decision gives its authorization checks
// (checker.go), repurposed here from permission bypass to assessment
// outcome bypass (spec.md §9 Open Question).
type Outcome int

const outcomeContextKey = "scoring_outcome"

const (
	// OutcomeUnset means no override; aggregate normally.
	OutcomeUnset Outcome = iota
	// OutcomePass forces IsPassed true and IsComplete true.
	OutcomePass
	// OutcomeFail forces IsPassed false and IsComplete true.
	OutcomeFail
)

// WithContextOutcome returns a new context carrying outcome, letting an
// override propagate through host middleware without threading a
// constructor option through every layer (mirrors the teacher's
// WithDecisionContext/GetDecisionContext).
func WithContextOutcome(ctx context.Context, outcome Outcome) context.Context {
	return context.WithValue(ctx, outcomeContextKey, outcome)
}

// GetContextOutcome retrieves the outcome set by WithContextOutcome,
// returning OutcomeUnset if none is set.
func GetContextOutcome(ctx context.Context) Outcome {
	if o, ok := ctx.Value(outcomeContextKey).(Outcome); ok {
		return o
	}
	return OutcomeUnset
}

// WithOutcome sets a constructor-time outcome override on a TotalSet,
// bypassing member-set aggregation for IsPassed/IsComplete. Precedence
// when both an in-context outcome (via useContextOutcome, enabled by
// WithContextOutcomeEnabled) and a constructor override are present: the
// context value wins, matching the teacher's context-over-constructor
// precedence for Decision.
func WithOutcome(outcome Outcome) TotalSetOption {
	return func(t *TotalSet) {
		t.outcome = outcome
	}
}

// WithContextOutcomeEnabled opts a TotalSet into consulting
// GetContextOutcome(ctx) during IsPassed/IsComplete, ahead of any
// constructor-time WithOutcome value.
func WithContextOutcomeEnabled() TotalSetOption {
	return func(t *TotalSet) {
		t.useContextOutcome = true
	}
}

// TotalSetOption configures optional TotalSet behavior not covered by the
// required NewTotalSet arguments.
type TotalSetOption func(*TotalSet)

// resolveOutcome returns the effective override for ctx, or OutcomeUnset
// if neither a context nor constructor override applies.
func (t *TotalSet) resolveOutcome(ctx context.Context) Outcome {
	if t.useContextOutcome {
		if o := GetContextOutcome(ctx); o != OutcomeUnset {
			return o
		}
	}
	return t.outcome
}
