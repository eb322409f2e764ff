package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adaptlearning/scoring"
)

// Store is a pgx/v5 pool backed scoring.OfflineStorage. It is the
// recommended binding for new code; SQLStore exists for callers already
// standardised on database/sql and lib/pq.
type Store struct {
	pool *pgxpool.Pool
}

// Open creates a pgxpool.Pool against dsn and applies schemaDDL, the way
// the teacher's migrator.Migrate runs idempotent DDL on every startup.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: opening pool: %w", err)
	}
	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an already-constructed pool, for callers that manage
// pgxpool lifecycle themselves (tests, shared pools).
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("postgres: applying schema: %w", err)
	}
	return nil
}

// Close releases the underlying pool.
func (s *Store) Close() { s.pool.Close() }

// Ready implements scoring.OfflineStorage.
func (s *Store) Ready(ctx context.Context) bool {
	if s.pool == nil {
		return false
	}
	return s.pool.Ping(ctx) == nil
}

// SetObjectiveDescription implements scoring.OfflineStorage.
func (s *Store) SetObjectiveDescription(ctx context.Context, setID scoring.SetID, title string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO scoring_objectives (set_id, title)
		VALUES ($1, $2)
		ON CONFLICT (set_id) DO UPDATE SET title = EXCLUDED.title, updated_at = now()
	`, string(setID), title)
	if err != nil {
		return fmt.Errorf("postgres: setting objective description for %s: %w", setID, err)
	}
	return nil
}

// SetObjectiveScore implements scoring.OfflineStorage.
func (s *Store) SetObjectiveScore(ctx context.Context, setID scoring.SetID, score, minScore, maxScore float64) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO scoring_objectives (set_id, score, min_score, max_score)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (set_id) DO UPDATE SET
			score = EXCLUDED.score, min_score = EXCLUDED.min_score, max_score = EXCLUDED.max_score,
			updated_at = now()
	`, string(setID), score, minScore, maxScore)
	if err != nil {
		return fmt.Errorf("postgres: setting objective score for %s: %w", setID, err)
	}
	return nil
}

// SetObjectiveStatus implements scoring.OfflineStorage.
func (s *Store) SetObjectiveStatus(ctx context.Context, setID scoring.SetID, completion scoring.CompletionStatus, success scoring.SuccessStatus) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO scoring_objectives (set_id, completion, success)
		VALUES ($1, $2, $3)
		ON CONFLICT (set_id) DO UPDATE SET
			completion = EXCLUDED.completion, success = EXCLUDED.success, updated_at = now()
	`, string(setID), string(completion), string(success))
	if err != nil {
		return fmt.Errorf("postgres: setting objective status for %s: %w", setID, err)
	}
	return nil
}

// SetState implements scoring.OfflineStorage. value has already passed
// State.Set's shape validation by the time it reaches here.
func (s *Store) SetState(ctx context.Context, setType scoring.SetType, setID scoring.SetID, value any) error {
	blob, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("postgres: marshalling state for %s[%s]: %w", setType, setID, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO scoring_state (set_type, set_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (set_type, set_id) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, string(setType), string(setID), blob)
	if err != nil {
		return fmt.Errorf("postgres: writing state for %s[%s]: %w", setType, setID, err)
	}
	return nil
}

// GetState implements scoring.OfflineStorage.
func (s *Store) GetState(ctx context.Context, setType scoring.SetType, setID scoring.SetID) (any, bool, error) {
	var blob []byte
	err := s.pool.QueryRow(ctx, `
		SELECT value FROM scoring_state WHERE set_type = $1 AND set_id = $2
	`, string(setType), string(setID)).Scan(&blob)
	if err != nil {
		if isNoRows(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("postgres: reading state for %s[%s]: %w", setType, setID, err)
	}

	value, err := decodeState(blob)
	if err != nil {
		return nil, false, fmt.Errorf("postgres: decoding state for %s[%s]: %w", setType, setID, err)
	}
	return value, true, nil
}
