package scoring

import "context"

// Objective is the per-set writer over the offline-storage port's
// objectiveDescription/objectiveScore/objectiveStatus keys (spec.md §6.3,
// §4.4). Intersected clones never construct an Objective: ScoringSet.
// objective() returns nil for them.
type Objective struct {
	storage OfflineStorage
	id      SetID
}

// WriteDescription writes the objectiveDescription/{id} = title key.
func (o *Objective) WriteDescription(ctx context.Context, title string) error {
	if o.storage == nil {
		logf("scoring: objective %q has no offline storage; description write dropped", o.id)
		return nil
	}
	return o.storage.SetObjectiveDescription(ctx, o.id, title)
}

// WriteScore writes the objectiveScore/{id} = (score, minScore, maxScore) key.
func (o *Objective) WriteScore(ctx context.Context, score, minScore, maxScore float64) error {
	if o.storage == nil {
		logf("scoring: objective %q has no offline storage; score write dropped", o.id)
		return nil
	}
	return o.storage.SetObjectiveScore(ctx, o.id, score, minScore, maxScore)
}

// WriteStatus writes the objectiveStatus/{id} = (completionStatus, successStatus) key.
func (o *Objective) WriteStatus(ctx context.Context, completion CompletionStatus, success SuccessStatus) error {
	if o.storage == nil {
		logf("scoring: objective %q has no offline storage; status write dropped", o.id)
		return nil
	}
	return o.storage.SetObjectiveStatus(ctx, o.id, completion, success)
}
