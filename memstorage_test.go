package scoring_test

import (
	"context"
	"sync"

	"github.com/adaptlearning/scoring"
)

// memStorage is a minimal in-memory scoring.OfflineStorage fixture for
// root-package tests, mirroring the shape storage/postgres.Store
// implements but without a database.
type memStorage struct {
	mu    sync.Mutex
	ready bool

	descriptions map[scoring.SetID]string
	scores       map[scoring.SetID][3]float64
	statuses     map[scoring.SetID][2]string
	state        map[string]any
}

func newMemStorage() *memStorage {
	return &memStorage{
		ready:        true,
		descriptions: make(map[scoring.SetID]string),
		scores:       make(map[scoring.SetID][3]float64),
		statuses:     make(map[scoring.SetID][2]string),
		state:        make(map[string]any),
	}
}

func (m *memStorage) Ready(ctx context.Context) bool { return m.ready }

func (m *memStorage) SetObjectiveDescription(ctx context.Context, setID scoring.SetID, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.descriptions[setID] = title
	return nil
}

func (m *memStorage) SetObjectiveScore(ctx context.Context, setID scoring.SetID, score, minScore, maxScore float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[setID] = [3]float64{score, minScore, maxScore}
	return nil
}

func (m *memStorage) SetObjectiveStatus(ctx context.Context, setID scoring.SetID, completion scoring.CompletionStatus, success scoring.SuccessStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[setID] = [2]string{string(completion), string(success)}
	return nil
}

func (m *memStorage) SetState(ctx context.Context, setType scoring.SetType, setID scoring.SetID, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state[string(setType)+"/"+string(setID)] = value
	return nil
}

func (m *memStorage) GetState(ctx context.Context, setType scoring.SetType, setID scoring.SetID) (any, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.state[string(setType)+"/"+string(setID)]
	return v, ok, nil
}
