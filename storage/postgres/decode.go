package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// isNoRows reports whether err is either driver's no-rows sentinel, so
// GetState/GetStateSQL can share the same (nil, false, nil) contract
// regardless of which Store variant is in use.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

// decodeState restores the shape scoring.State.Set validated before the
// write: []bool, []float64, [][]bool, or [][]float64 (spec.md §4.3). JSON
// round-trips all of those as []any, so the element types must be
// recovered by inspection.
func decodeState(blob []byte) (any, error) {
	var raw []any
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []float64{}, nil
	}

	switch raw[0].(type) {
	case bool:
		out := make([]bool, len(raw))
		for i, v := range raw {
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("postgres: mixed-type state array at index %d", i)
			}
			out[i] = b
		}
		return out, nil
	case float64:
		out := make([]float64, len(raw))
		for i, v := range raw {
			f, ok := v.(float64)
			if !ok {
				return nil, fmt.Errorf("postgres: mixed-type state array at index %d", i)
			}
			out[i] = f
		}
		return out, nil
	case []any:
		return decodeNestedState(raw)
	default:
		return nil, fmt.Errorf("postgres: unsupported state element type %T", raw[0])
	}
}

func decodeNestedState(raw []any) (any, error) {
	inner, ok := raw[0].([]any)
	if !ok || len(inner) == 0 {
		return [][]float64{}, nil
	}

	switch inner[0].(type) {
	case bool:
		out := make([][]bool, len(raw))
		for i, row := range raw {
			decoded, err := decodeState(mustMarshal(row))
			if err != nil {
				return nil, err
			}
			bools, ok := decoded.([]bool)
			if !ok {
				return nil, fmt.Errorf("postgres: mixed-type nested state array at index %d", i)
			}
			out[i] = bools
		}
		return out, nil
	case float64:
		out := make([][]float64, len(raw))
		for i, row := range raw {
			decoded, err := decodeState(mustMarshal(row))
			if err != nil {
				return nil, err
			}
			floats, ok := decoded.([]float64)
			if !ok {
				return nil, fmt.Errorf("postgres: mixed-type nested state array at index %d", i)
			}
			out[i] = floats
		}
		return out, nil
	default:
		return nil, fmt.Errorf("postgres: unsupported nested state element type %T", inner[0])
	}
}

func mustMarshal(v any) []byte {
	blob, err := json.Marshal(v)
	if err != nil {
		// v was itself just decoded from JSON, so re-marshalling cannot fail.
		panic(err)
	}
	return blob
}
