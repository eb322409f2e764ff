//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/adaptlearning/scoring"
	"github.com/adaptlearning/scoring/storage/postgres"
)

// startContainer spins up a throwaway PostgreSQL instance the way the
// teacher's test/testutil singleton does, minus the template-database
// fast path this package's much smaller schema doesn't need.
func startContainer(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:18-alpine",
		tcpostgres.WithDatabase("scoring"),
		tcpostgres.WithUsername("scoring"),
		tcpostgres.WithPassword("scoring"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestStore_ObjectiveAndStateRoundTrip(t *testing.T) {
	dsn := startContainer(t)
	ctx := context.Background()

	store, err := postgres.Open(ctx, dsn)
	require.NoError(t, err)
	defer store.Close()

	require.True(t, store.Ready(ctx))

	require.NoError(t, store.SetObjectiveDescription(ctx, scoring.SetID("quiz-1"), "Quiz 1"))
	require.NoError(t, store.SetObjectiveScore(ctx, scoring.SetID("quiz-1"), 8, 0, 10))
	require.NoError(t, store.SetObjectiveStatus(ctx, scoring.SetID("quiz-1"), scoring.CompletionCompleted, scoring.SuccessPassed))

	require.NoError(t, store.SetState(ctx, scoring.SetType("quiz"), scoring.SetID("quiz-1"), []bool{true, false, true}))
	value, ok, err := store.GetState(ctx, scoring.SetType("quiz"), scoring.SetID("quiz-1"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []bool{true, false, true}, value)

	_, ok, err = store.GetState(ctx, scoring.SetType("quiz"), scoring.SetID("missing"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_NestedFloatState(t *testing.T) {
	dsn := startContainer(t)
	ctx := context.Background()

	store, err := postgres.Open(ctx, dsn)
	require.NoError(t, err)
	defer store.Close()

	want := [][]float64{{1, 2}, {3, 4, 5}}
	require.NoError(t, store.SetState(ctx, scoring.SetType("objective"), scoring.SetID("obj-1"), want))

	value, ok, err := store.GetState(ctx, scoring.SetType("objective"), scoring.SetID("obj-1"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, value)
}

func TestSQLStore_ObjectiveAndStateRoundTrip(t *testing.T) {
	dsn := startContainer(t)
	ctx := context.Background()

	store, err := postgres.OpenSQL(ctx, dsn)
	require.NoError(t, err)
	defer store.Close()

	require.True(t, store.Ready(ctx))

	require.NoError(t, store.SetState(ctx, scoring.SetType("quiz"), scoring.SetID("quiz-2"), []float64{0.5, 1, 1.5}))
	value, ok, err := store.GetState(ctx, scoring.SetType("quiz"), scoring.SetID("quiz-2"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []float64{0.5, 1, 1.5}, value)
}
