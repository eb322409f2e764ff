package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	// Registers the "postgres" database/sql driver.
	_ "github.com/lib/pq"

	"github.com/adaptlearning/scoring"
)

// SQLStore is a database/sql + lib/pq backed scoring.OfflineStorage, for
// callers already standardised on *sql.DB rather than pgx (the teacher's
// migrator.Execer accepts either *sql.DB or *sql.Tx for exactly this
// reason).
type SQLStore struct {
	db *sql.DB
}

// OpenSQL opens a "postgres" driver connection against dsn and applies
// schemaDDL.
func OpenSQL(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: opening sql.DB: %w", err)
	}
	s := &SQLStore{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore wraps an already-open *sql.DB.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("postgres: applying schema: %w", err)
	}
	return nil
}

// Close releases the underlying *sql.DB.
func (s *SQLStore) Close() error { return s.db.Close() }

// Ready implements scoring.OfflineStorage.
func (s *SQLStore) Ready(ctx context.Context) bool {
	if s.db == nil {
		return false
	}
	return s.db.PingContext(ctx) == nil
}

// SetObjectiveDescription implements scoring.OfflineStorage.
func (s *SQLStore) SetObjectiveDescription(ctx context.Context, setID scoring.SetID, title string) error {
	_, err := s.db.ExecContext(ctx, `
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
func (s *SQLStore) SetObjectiveScore(ctx context.Context, setID scoring.SetID, score, minScore, maxScore float64) error {
	_, err := s.db.ExecContext(ctx, `
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
func (s *SQLStore) SetObjectiveStatus(ctx context.Context, setID scoring.SetID, completion scoring.CompletionStatus, success scoring.SuccessStatus) error {
	_, err := s.db.ExecContext(ctx, `
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

// SetState implements scoring.OfflineStorage.
func (s *SQLStore) SetState(ctx context.Context, setType scoring.SetType, setID scoring.SetID, value any) error {
	blob, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("postgres: marshalling state for %s[%s]: %w", setType, setID, err)
	}
	_, err = s.db.ExecContext(ctx, `
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
func (s *SQLStore) GetState(ctx context.Context, setType scoring.SetType, setID scoring.SetID) (any, bool, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `
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
