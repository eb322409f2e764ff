package scoring

import "context"

// State is the lazy per-set restoration-state adapter described in
// spec.md §4.3: it reads/writes a single value under
// offlineStorage[setType][setID], restricted to []bool, []float64, or a
// slice of either (spec.md §4.3 "Values are restricted to arrays of
// booleans, arrays of numbers, or arrays of such arrays").
type State struct {
	storage OfflineStorage
	setType SetType
	setID   SetID
}

// Get reads back the previously stored value. ok is false if nothing has
// been written yet or the store is unavailable.
func (s *State) Get(ctx context.Context) (any, bool, error) {
	if s.storage == nil {
		return nil, false, nil
	}
	return s.storage.GetState(ctx, s.setType, s.setID)
}

// Set validates value's shape and persists it. Returns
// ErrUnsupportedStateShape if value is not a []bool, []float64, [][]bool,
// or [][]float64.
func (s *State) Set(ctx context.Context, value any) error {
	if err := validateStateShape(value); err != nil {
		return err
	}
	if s.storage == nil {
		logf("scoring: state %s[%s] has no offline storage; write dropped", s.setType, s.setID)
		return nil
	}
	return s.storage.SetState(ctx, s.setType, s.setID, value)
}

func validateStateShape(value any) error {
	switch value.(type) {
	case []bool, []float64, [][]bool, [][]float64:
		return nil
	default:
		return ErrUnsupportedStateShape
	}
}
