// Package postgres implements scoring.OfflineStorage against PostgreSQL,
// the way the teacher's pkg/migrator applies generated SQL: idempotent DDL
// run once at startup, then plain parameterized statements for the hot
// path. Store is backed by pgx/v5's pool; SQLStore gives the same surface
// over database/sql for callers wedded to lib/pq.
package postgres

// schemaDDL creates the two tables this store needs. Safe to run on every
// startup, mirroring the teacher's "safe to run on every application
// startup" migrator contract.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS scoring_objectives (
	set_id      TEXT PRIMARY KEY,
	title       TEXT NOT NULL DEFAULT '',
	score       DOUBLE PRECISION NOT NULL DEFAULT 0,
	min_score   DOUBLE PRECISION NOT NULL DEFAULT 0,
	max_score   DOUBLE PRECISION NOT NULL DEFAULT 0,
	completion  TEXT NOT NULL DEFAULT 'not attempted',
	success     TEXT NOT NULL DEFAULT 'unknown',
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS scoring_state (
	set_type    TEXT NOT NULL,
	set_id      TEXT NOT NULL,
	value       JSONB NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (set_type, set_id)
);
`
